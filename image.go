package svg2ico

import (
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Mode is the pixel mode of a rendered icon frame.
type Mode int

const (
	// ModeRGBA keeps the alpha channel of the rendered image.
	ModeRGBA Mode = iota
	// ModeRGB is a fully opaque image.
	ModeRGB
)

func (m Mode) String() string {
	if m == ModeRGB {
		return "RGB"
	}
	return "RGBA"
}

// filters maps the supported resampling filter names to their implementation.
var filters = map[string]imaging.ResampleFilter{
	"lanczos":    imaging.Lanczos,
	"catmullrom": imaging.CatmullRom,
	"mitchell":   imaging.MitchellNetravali,
	"linear":     imaging.Linear,
	"box":        imaging.Box,
	"nearest":    imaging.NearestNeighbor,
}

// resampleFilter returns the resampling filter registered under name.
// An empty name selects the Lanczos filter.
func resampleFilter(name string) (imaging.ResampleFilter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return imaging.Lanczos, nil
	}
	f, ok := filters[name]
	if !ok {
		return imaging.ResampleFilter{}, errors.Errorf("unsupported resampling filter: %q", name)
	}
	return f, nil
}

// ModeOf reports the pixel mode of the image. Only the RGBA family carries transparency,
// any other color model (gray, paletted, YCbCr, CMYK...) is treated as RGB.
func ModeOf(img image.Image) Mode {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		return ModeRGBA
	}
	return ModeRGB
}

// Normalize converts the image to the representation used for the provided mode:
// *image.NRGBA for ModeRGBA and an opaque *image.RGBA for ModeRGB.
func Normalize(img image.Image, mode Mode) image.Image {
	if mode == ModeRGBA {
		return imgToNRGBA(img)
	}
	return imgToRGB(img)
}

// fitSquare resizes the image to exactly size x size pixels, unless it already has that size.
func fitSquare(img image.Image, size int, filter imaging.ResampleFilter) image.Image {
	b := img.Bounds()
	if b.Min == (image.Point{}) && b.Dx() == size && b.Dy() == size {
		return img
	}
	return imaging.Resize(img, size, size, filter)
}

// imgToNRGBA converts any image type to *image.NRGBA with min-point at (0, 0).
func imgToNRGBA(img image.Image) *image.NRGBA {
	srcBounds := img.Bounds()
	if srcBounds.Min.X == 0 && srcBounds.Min.Y == 0 {
		if src0, ok := img.(*image.NRGBA); ok {
			return src0
		}
	}
	srcMinX := srcBounds.Min.X
	srcMinY := srcBounds.Min.Y

	dstBounds := srcBounds.Sub(srcBounds.Min)
	dstW := dstBounds.Dx()
	dstH := dstBounds.Dy()
	dst := image.NewNRGBA(dstBounds)

	switch src := img.(type) {
	case *image.NRGBA:
		rowSize := dstW * 4
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			si := src.PixOffset(srcMinX, srcMinY+dstY)
			copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		}
	case *image.YCbCr:
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				srcX := srcMinX + dstX
				srcY := srcMinY + dstY
				siy := src.YOffset(srcX, srcY)
				sic := src.COffset(srcX, srcY)
				r, g, b := color.YCbCrToRGB(src.Y[siy], src.Cb[sic], src.Cr[sic])
				dst.Pix[di+0] = r
				dst.Pix[di+1] = g
				dst.Pix[di+2] = b
				dst.Pix[di+3] = 0xff
				di += 4
			}
		}
	case *image.Paletted:
		// Palette entries are looked up directly, so that the colors of
		// transparent entries survive when the alpha channel is dropped later.
		pal := make([]color.NRGBA, len(src.Palette))
		for i, c := range src.Palette {
			pal[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
		}
		for dstY := 0; dstY < dstH; dstY++ {
			di := dst.PixOffset(0, dstY)
			for dstX := 0; dstX < dstW; dstX++ {
				idx := int(src.ColorIndexAt(srcMinX+dstX, srcMinY+dstY))
				var c color.NRGBA
				if idx < len(pal) {
					c = pal[idx]
				}
				dst.Pix[di+0] = c.R
				dst.Pix[di+1] = c.G
				dst.Pix[di+2] = c.B
				dst.Pix[di+3] = c.A
				di += 4
			}
		}
	default:
		draw.Draw(dst, dstBounds, img, srcBounds.Min, draw.Src)
	}

	return dst
}

// imgToRGB drops the alpha channel of the image. The color channels are kept as they are,
// without blending them against any background.
func imgToRGB(img image.Image) *image.RGBA {
	src := imgToNRGBA(img)
	dst := image.NewRGBA(src.Bounds())
	rowSize := src.Bounds().Dx() * 4
	for y := 0; y < src.Bounds().Dy(); y++ {
		di := dst.PixOffset(0, y)
		si := src.PixOffset(0, y)
		copy(dst.Pix[di:di+rowSize], src.Pix[si:si+rowSize])
		for i := di + 3; i < di+rowSize; i += 4 {
			dst.Pix[i] = 0xff
		}
	}
	return dst
}
