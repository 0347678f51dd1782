package svg2ico

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/draw"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImage_ModeOf(t *testing.T) {
	rect := image.Rect(0, 0, 4, 4)
	testCases := []struct {
		name string
		img  image.Image
		mode Mode
	}{
		{name: "RGBA", img: image.NewRGBA(rect), mode: ModeRGBA},
		{name: "NRGBA", img: image.NewNRGBA(rect), mode: ModeRGBA},
		{name: "RGBA64", img: image.NewRGBA64(rect), mode: ModeRGBA},
		{name: "NRGBA64", img: image.NewNRGBA64(rect), mode: ModeRGBA},
		{name: "Gray", img: image.NewGray(rect), mode: ModeRGB},
		{name: "Paletted", img: image.NewPaletted(rect, palette.Plan9), mode: ModeRGB},
		{name: "YCbCr", img: image.NewYCbCr(rect, image.YCbCrSubsampleRatio444), mode: ModeRGB},
		{name: "CMYK", img: image.NewCMYK(rect), mode: ModeRGB},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.mode, ModeOf(tc.img))
		})
	}
}

func TestImage_NormalizeKeepsAlpha(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{R: 200, A: 128})

	res := Normalize(img, ModeRGBA)
	require.IsType(t, &image.NRGBA{}, res)

	c := res.(*image.NRGBA).NRGBAAt(0, 0)
	assert.Equal(t, uint8(128), c.A)
	assert.InDelta(t, 200, int(c.R), 1)
	assert.Equal(t, uint8(0), res.(*image.NRGBA).NRGBAAt(1, 1).A)
}

func TestImage_NormalizeConvertsToRGB(t *testing.T) {
	pal := color.Palette{color.NRGBA{R: 10, G: 20, B: 30, A: 0}, color.NRGBA{R: 255, G: 255, B: 255, A: 255}}
	paletted := image.NewPaletted(image.Rect(0, 0, 3, 3), pal)
	paletted.SetColorIndex(1, 1, 1)

	gray := image.NewGray(image.Rect(0, 0, 3, 3))
	draw.Draw(gray, gray.Bounds(), &image.Uniform{color.Gray{Y: 90}}, image.Point{}, draw.Src)

	for _, img := range []image.Image{paletted, gray} {
		res := Normalize(img, ModeOf(img))
		require.IsType(t, &image.RGBA{}, res)
		assert.True(t, res.(*image.RGBA).Opaque())
	}

	c := Normalize(gray, ModeRGB).(*image.RGBA).RGBAAt(2, 2)
	assert.Equal(t, color.RGBA{R: 90, G: 90, B: 90, A: 255}, c)

	// The alpha channel is dropped without blending the color against a background.
	rgb := Normalize(paletted, ModeRGB).(*image.RGBA)
	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 255}, rgb.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, rgb.RGBAAt(1, 1))
}

func TestImage_ImgToNRGBA(t *testing.T) {
	src := image.NewRGBA(image.Rect(-2, -2, 6, 6))
	src.Set(-2, -2, color.RGBA{R: 255, A: 255})
	src.Set(5, 5, color.RGBA{B: 255, A: 255})

	dst := imgToNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 8, 8), dst.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, dst.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, dst.NRGBAAt(7, 7))

	sub := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	sub.SetNRGBA(4, 4, color.NRGBA{G: 255, A: 255})
	cropped := imgToNRGBA(sub.SubImage(image.Rect(3, 3, 6, 6)))
	assert.Equal(t, image.Rect(0, 0, 3, 3), cropped.Bounds())
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, cropped.NRGBAAt(1, 1))
}

func TestImage_FitSquare(t *testing.T) {
	same := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	assert.Same(t, same, fitSquare(same, 16, imaging.Lanczos))

	wide := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	res := fitSquare(wide, 16, imaging.Lanczos)
	assert.Equal(t, image.Rect(0, 0, 16, 16), res.Bounds())
}

func TestImage_ResampleFilter(t *testing.T) {
	f, err := resampleFilter("")
	require.NoError(t, err)
	assert.Equal(t, imaging.Lanczos.Support, f.Support)

	f, err = resampleFilter("CatmullRom")
	require.NoError(t, err)
	assert.Equal(t, imaging.CatmullRom.Support, f.Support)

	_, err = resampleFilter("bicubic-ish")
	assert.Error(t, err)
}
