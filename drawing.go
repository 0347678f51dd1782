package svg2ico

import (
	"image"
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Rasterizer renders a vector image onto a square canvas of size x size pixels,
// applying the same scale factor to both axes.
// A scale of 1 renders the artwork at its native size, one user unit per pixel.
type Rasterizer interface {
	Render(size int, scale float64) (image.Image, error)
}

var _ Rasterizer = (*Drawing)(nil)

// Drawing is a parsed SVG document. It's never modified after loading,
// every Render call works on its own copy of the icon.
type Drawing struct {
	icon *oksvg.SvgIcon
}

// LoadDrawing opens and parses the SVG file found at path.
// In strict mode unsupported SVG elements are reported as errors, otherwise they are ignored.
func LoadDrawing(path string, strict bool) (*Drawing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	d, err := ReadDrawing(f, strict)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return d, nil
}

// ReadDrawing parses an SVG document from r.
func ReadDrawing(r io.Reader, strict bool) (*Drawing, error) {
	mode := oksvg.IgnoreErrorMode
	if strict {
		mode = oksvg.StrictErrorMode
	}

	icon, err := oksvg.ReadIconStream(r, mode)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse the SVG document")
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, errors.Errorf("invalid view box %gx%g", icon.ViewBox.W, icon.ViewBox.H)
	}
	if len(icon.SVGPaths) == 0 {
		return nil, errors.New("the SVG document contains no drawable paths")
	}
	return &Drawing{icon: icon}, nil
}

// Width returns the native width of the artwork.
func (d *Drawing) Width() float64 { return d.icon.ViewBox.W }

// Height returns the native height of the artwork.
func (d *Drawing) Height() float64 { return d.icon.ViewBox.H }

// Render rasterizes the drawing onto a transparent size x size canvas. The artwork is
// anchored at the top-left corner and keeps its proportions: whatever falls outside
// the canvas is clipped and the uncovered area stays transparent.
func (d *Drawing) Render(size int, scale float64) (image.Image, error) {
	if size < 1 {
		return nil, errors.Errorf("invalid canvas size %d", size)
	}
	if scale <= 0 || math.IsInf(scale, 0) || math.IsNaN(scale) {
		return nil, errors.Errorf("invalid scale factor %g", scale)
	}

	icon := d.clone()
	icon.SetTarget(0, 0, d.Width()*scale, d.Height()*scale)

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	raster := rasterx.NewDasher(size, size, scanner)
	icon.Draw(raster, 1.0)

	return img, nil
}

// clone returns a copy of the icon owning its transform and path list,
// because drawing a path temporarily alters its matrix.
func (d *Drawing) clone() *oksvg.SvgIcon {
	icon := *d.icon
	icon.SVGPaths = append([]oksvg.SvgPath(nil), d.icon.SVGPaths...)
	return &icon
}
