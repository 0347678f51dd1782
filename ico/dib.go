package ico

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
)

const bitmapInfoHeaderSize = 40

// bitmapInfoHeader is the BITMAPINFOHEADER structure preceding the DIB pixel data.
type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// encodeDIB encodes the image as a bottom-up 32 bit BGRA bitmap followed by the AND mask.
// The header height covers both the color bitmap and the mask, hence it's doubled.
func encodeDIB(img image.Image) []byte {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	maskStride := ((w + 31) / 32) * 4
	pixels := make([]byte, w*h*4)
	mask := make([]byte, maskStride*h)

	for y := 0; y < h; y++ {
		row := h - 1 - y
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			off := (row*w + x) * 4
			pixels[off+0] = c.B
			pixels[off+1] = c.G
			pixels[off+2] = c.R
			pixels[off+3] = c.A

			// Transparent pixels are set in the AND mask.
			if c.A == 0 {
				mask[row*maskStride+x/8] |= 0x80 >> uint(x%8)
			}
		}
	}

	header := bitmapInfoHeader{
		Size:      bitmapInfoHeaderSize,
		Width:     int32(w),
		Height:    int32(h * 2),
		Planes:    1,
		BitCount:  32,
		SizeImage: uint32(len(pixels) + len(mask)),
	}

	var buf bytes.Buffer
	buf.Grow(bitmapInfoHeaderSize + len(pixels) + len(mask))
	// Writing into a bytes.Buffer never fails.
	_ = binary.Write(&buf, binary.LittleEndian, header)
	buf.Write(pixels)
	buf.Write(mask)

	return buf.Bytes()
}
