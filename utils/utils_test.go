package utils

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer guards the buffer, since the spinner writes from its own goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestUtils_DecorateText(t *testing.T) {
	defer EnableColors(true)

	EnableColors(true)
	assert.Equal(t, ErrorColor+"failed"+DefaultColor, DecorateText("failed", ErrorMessage))
	assert.Equal(t, WarningColor+"careful"+DefaultColor, DecorateText("careful", WarningMessage))

	EnableColors(false)
	assert.Equal(t, "failed", DecorateText("failed", ErrorMessage))
}

func TestUtils_FormatTime(t *testing.T) {
	assert.Equal(t, "1.50s", FormatTime(1500*time.Millisecond))
	assert.Equal(t, "2m 5.00s", FormatTime(2*time.Minute+5*time.Second))
	assert.Equal(t, "1h 1m 1.00s", FormatTime(time.Hour+time.Minute+time.Second))
}

func TestUtils_MinMaxClamp(t *testing.T) {
	assert.Equal(t, 2, Min(2, 5))
	assert.Equal(t, 2, Min(5, 2))
	assert.Equal(t, 5, Max(2, 5))
	assert.Equal(t, 0.5, Max(0.5, -1.0))
	assert.Equal(t, 1, Clamp(-3, 1, 8))
	assert.Equal(t, 8, Clamp(12, 1, 8))
	assert.Equal(t, 4, Clamp(4, 1, 8))
}

func TestSpinner_StartStop(t *testing.T) {
	out := &syncBuffer{}
	s := NewSpinner(out, "rendering", time.Millisecond)
	s.StopMsg = "done"

	s.Start()
	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.Printf("Created %dx%d image", 16, 16)
	s.Stop()
	s.Stop()

	result := out.String()
	assert.Contains(t, result, "rendering")
	assert.Contains(t, result, "Created 16x16 image\n")
	assert.True(t, strings.HasSuffix(result, "done"))
}
