package svg2ico

import (
	"image"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/optools/svg2ico/ico"
	"github.com/optools/svg2ico/utils"
	"github.com/pkg/errors"
)

// DefaultSizes holds the icon edge lengths rendered when no sizes are provided.
var DefaultSizes = []int{16, 32, 48, 64, 96, 128, 256}

// DefaultReferenceSize is the native edge length of the source artwork.
const DefaultReferenceSize = 256

// maxWorkers sets the maximum number of concurrently rendered sizes.
const maxWorkers = 16

// Logger is used by the Converter to report its progress.
type Logger interface {
	Printf(format string, v ...any)
}

// Frame is a single rendered icon image.
type Frame struct {
	Size  int
	Mode  Mode
	Image image.Image
}

// Converter options
type Converter struct {
	// Sizes lists the icon edge lengths in the order they are rendered.
	Sizes []int
	// ReferenceSize is the edge length the artwork has been designed for.
	ReferenceSize float64
	// Filter is the name of the resampling filter applied when a rendered image
	// doesn't match the requested size.
	Filter string
	// Format is the encoding of the icon payloads.
	Format ico.Format
	// Workers is the number of sizes rendered concurrently.
	Workers int
	// Strict makes unsupported SVG elements fail the loading.
	Strict bool
	Logger Logger

	// created is invoked once the destination file exists on disk.
	created func(path string)
}

// result holds the outcome of rendering a single size.
type result struct {
	frame Frame
	err   error
}

// Convert renders the SVG file found at src in every requested size
// and writes the resulting icon file to dst, overwriting it if it exists.
func (c *Converter) Convert(src, dst string) ([]Frame, error) {
	c.logf("Converting %s to ICO with sizes: %v", src, c.sizes())

	d, err := LoadDrawing(src, c.Strict)
	if err != nil {
		return nil, err
	}

	frames, err := c.Render(d)
	if err != nil {
		return nil, err
	}

	if err := c.writeFile(dst, frames); err != nil {
		return nil, err
	}
	c.logf("%s", utils.DecorateText("Successfully created ICO file: "+dst, utils.SuccessMessage))

	return frames, nil
}

// Process reads the SVG document from r and encodes the icon into w.
func (c *Converter) Process(r io.Reader, w io.Writer) ([]Frame, error) {
	d, err := ReadDrawing(r, c.Strict)
	if err != nil {
		return nil, &LoadError{Path: "-", Err: err}
	}

	return c.Encode(w, d)
}

// Encode renders every requested size using r and writes the icon holding
// the successfully rendered frames into w.
func (c *Converter) Encode(w io.Writer, r Rasterizer) ([]Frame, error) {
	frames, err := c.Render(r)
	if err != nil {
		return nil, err
	}

	if err := ico.Encode(w, images(frames), c.Format); err != nil {
		return nil, &EncodeError{Path: "-", Err: err}
	}
	return frames, nil
}

// Render rasterizes every requested size. A size which fails is reported and skipped,
// the returned frames keep the order of the requested sizes.
// It returns ErrNoImages if none of the sizes could be rendered.
func (c *Converter) Render(r Rasterizer) ([]Frame, error) {
	filter, err := resampleFilter(c.Filter)
	if err != nil {
		return nil, err
	}

	sizes := c.sizes()
	results := make([]result, len(sizes))

	workers := utils.Clamp(c.Workers, 1, utils.Min(maxWorkers, utils.Max(len(sizes), 1)))
	if workers == 1 {
		for i, size := range sizes {
			results[i] = c.renderFrame(r, size, filter)
		}
	} else {
		var wg sync.WaitGroup
		jobs := make(chan int)

		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				for idx := range jobs {
					results[idx] = c.renderFrame(r, sizes[idx], filter)
				}
			}()
		}
		for idx := range sizes {
			jobs <- idx
		}
		close(jobs)
		wg.Wait()
	}

	frames := make([]Frame, 0, len(sizes))
	for _, res := range results {
		if res.err != nil {
			c.logf("  %s", utils.DecorateText("Warning: "+res.err.Error(), utils.WarningMessage))
			continue
		}
		frames = append(frames, res.frame)
		c.logf("  Created %dx%d image", res.frame.Size, res.frame.Size)
	}

	if len(frames) == 0 {
		return nil, ErrNoImages
	}
	return frames, nil
}

// renderFrame produces the icon image of a single size.
// Every failure, including a panic raised by the rasterizer, is returned as a *RenderError.
func (c *Converter) renderFrame(r Rasterizer, size int, filter imaging.ResampleFilter) (res result) {
	defer func() {
		if v := recover(); v != nil {
			res = result{err: &RenderError{Size: size, Err: errors.Errorf("rasterizer panic: %v", v)}}
		}
	}()

	if size < 1 || size > ico.MaxSize {
		return result{err: &RenderError{
			Size: size,
			Err:  errors.Errorf("size must be between 1 and %d", ico.MaxSize),
		}}
	}

	scale := float64(size) / c.referenceSize()
	img, err := r.Render(size, scale)
	if err != nil {
		return result{err: &RenderError{Size: size, Err: err}}
	}
	if img == nil {
		return result{err: &RenderError{Size: size, Err: errors.New("rasterizer returned no image")}}
	}

	// The pixel mode is decided on the rendered image, since resampling always yields NRGBA.
	// Resizing only happens for rasterizers which don't honor the requested canvas size.
	mode := ModeOf(img)
	img = fitSquare(img, size, filter)

	return result{frame: Frame{
		Size:  size,
		Mode:  mode,
		Image: Normalize(img, mode),
	}}
}

// writeFile encodes the frames into the file at path.
// In case of an error the partially written file is removed.
func (c *Converter) writeFile(path string, frames []Frame) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	if c.created != nil {
		c.created(path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = &EncodeError{Path: path, Err: cerr}
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	if err := ico.Encode(f, images(frames), c.Format); err != nil {
		return &EncodeError{Path: path, Err: err}
	}
	return nil
}

func (c *Converter) sizes() []int {
	if len(c.Sizes) == 0 {
		return DefaultSizes
	}
	return c.Sizes
}

func (c *Converter) referenceSize() float64 {
	if c.ReferenceSize <= 0 {
		return DefaultReferenceSize
	}
	return c.ReferenceSize
}

func (c *Converter) logf(format string, v ...any) {
	if c.Logger == nil {
		log.Printf(format, v...)
		return
	}
	c.Logger.Printf(format, v...)
}

func images(frames []Frame) []image.Image {
	imgs := make([]image.Image, len(frames))
	for i, f := range frames {
		imgs[i] = f.Image
	}
	return imgs
}

// ParseSizes parses a comma separated list of icon sizes, e.g. "16,32,48".
func ParseSizes(s string) ([]int, error) {
	var sizes []int
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.Atoi(field)
		if err != nil || v <= 0 {
			return nil, errors.Errorf("invalid icon size: %q", field)
		}
		sizes = append(sizes, v)
	}
	if len(sizes) == 0 {
		return nil, errors.New("no icon sizes provided")
	}
	return sizes, nil
}
