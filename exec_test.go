package svg2ico

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/optools/svg2ico/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_WritesIcon(t *testing.T) {
	utils.EnableColors(false)
	t.Cleanup(func() { utils.EnableColors(true) })

	var stderr bytes.Buffer
	dst := filepath.Join(t.TempDir(), "chip_icon.ico")

	c := &Converter{Sizes: []int{16, 32}}
	err := c.Execute(&Ops{Src: sampleSVG, Dst: dst, Stderr: &stderr})
	require.NoError(t, err)
	assert.FileExists(t, dst)

	out := stderr.String()
	assert.Contains(t, out, "Created 16x16 image")
	assert.Contains(t, out, "Created 32x32 image")
	assert.Contains(t, out, "The icon has been saved as: chip_icon.ico")
	assert.NotContains(t, out, "\x1b[")
}

func TestExecute_RestoresConverter(t *testing.T) {
	dir := t.TempDir()

	c := &Converter{Sizes: []int{16}}
	require.NoError(t, c.Execute(&Ops{Src: sampleSVG, Dst: filepath.Join(dir, "a.ico"), Stderr: &bytes.Buffer{}}))
	assert.Nil(t, c.Logger)
	assert.Nil(t, c.created)

	logger := &captureLogger{}
	c = &Converter{Sizes: []int{16}, Logger: logger}
	require.NoError(t, c.Execute(&Ops{Src: sampleSVG, Dst: filepath.Join(dir, "b.ico"), Stderr: &bytes.Buffer{}}))
	assert.Same(t, logger, c.Logger)
	assert.Contains(t, logger.String(), "Created 16x16 image")
}

func TestRemoveIncomplete(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "chip_icon.ico")
	require.NoError(t, os.WriteFile(dst, []byte("previous icon"), 0644))

	var written atomic.Bool
	assert.False(t, removeIncomplete(dst, &written))
	assert.FileExists(t, dst)

	written.Store(true)
	assert.True(t, removeIncomplete(dst, &written))
	assert.NoFileExists(t, dst)
}

func TestExecute_MissingSource(t *testing.T) {
	var stderr bytes.Buffer
	dst := filepath.Join(t.TempDir(), "chip_icon.ico")

	c := &Converter{}
	err := c.Execute(&Ops{Src: filepath.Join("testdata", "missing.svg"), Dst: dst, Stderr: &stderr})

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "SVG file not found")
	assert.NoFileExists(t, dst)
	assert.Zero(t, stderr.Len())
}
