// Package ico implements an encoder for the Windows ICO container format.
// An ICO file starts with a small header (ICONDIR) followed by one directory entry
// (ICONDIRENTRY) per image and then the image payloads themselves.
// Each payload is either a complete PNG stream or a 32 bit DIB with an AND mask,
// the two encodings accepted by the Windows icon loader.
package ico

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// MaxSize is the largest edge length an ICO directory entry can describe.
// A stored width or height of 0 stands for 256.
const MaxSize = 256

const (
	iconDirSize   = 6
	dirEntrySize  = 16
	iconTypeIcon  = 1
	maxImageCount = 1<<16 - 1
)

// Format is the encoding used for the image payloads.
type Format int

const (
	// PNG stores every entry as a PNG stream.
	PNG Format = iota
	// BMP stores every entry as a 32 bit BGRA DIB followed by the 1 bit AND mask.
	BMP
)

func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case BMP:
		return "bmp"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat returns the payload format matching the provided name.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "png":
		return PNG, nil
	case "bmp", "dib":
		return BMP, nil
	}
	return PNG, errors.Errorf("unsupported icon payload format: %q", name)
}

// iconDir is the on-disk ICONDIR header.
type iconDir struct {
	Reserved uint16
	Type     uint16
	Count    uint16
}

// iconDirEntry is the on-disk ICONDIRENTRY record.
type iconDirEntry struct {
	Width       uint8
	Height      uint8
	ColorCount  uint8
	Reserved    uint8
	Planes      uint16
	BitCount    uint16
	BytesInRes  uint32
	ImageOffset uint32
}

// Entry describes a single image of an ICO file as listed in its directory.
type Entry struct {
	Width    int
	Height   int
	Colors   int
	Planes   int
	BitCount int
	Size     uint32
	Offset   uint32
}

// Encode writes the images into w as a single ICO file. The first image is the base frame
// and the directory lists the images in the order they are provided.
func Encode(w io.Writer, images []image.Image, format Format) error {
	if len(images) == 0 {
		return errors.New("ico: no images to encode")
	}
	if len(images) > maxImageCount {
		return errors.Errorf("ico: too many images: %d", len(images))
	}

	payloads := make([][]byte, len(images))
	for i, img := range images {
		b := img.Bounds()
		if b.Dx() < 1 || b.Dy() < 1 || b.Dx() > MaxSize || b.Dy() > MaxSize {
			return errors.Errorf("ico: image %d has unsupported dimensions %dx%d", i, b.Dx(), b.Dy())
		}
		data, err := encodePayload(img, format)
		if err != nil {
			return errors.Wrapf(err, "ico: encoding image %d", i)
		}
		payloads[i] = data
	}

	bw := bufio.NewWriter(w)
	header := iconDir{Type: iconTypeIcon, Count: uint16(len(images))}
	if err := binary.Write(bw, binary.LittleEndian, header); err != nil {
		return err
	}

	offset := uint32(iconDirSize + len(images)*dirEntrySize)
	for i, img := range images {
		b := img.Bounds()
		entry := iconDirEntry{
			Width:       dimension(b.Dx()),
			Height:      dimension(b.Dy()),
			Planes:      1,
			BitCount:    32,
			BytesInRes:  uint32(len(payloads[i])),
			ImageOffset: offset,
		}
		if err := binary.Write(bw, binary.LittleEndian, entry); err != nil {
			return err
		}
		offset += entry.BytesInRes
	}

	for _, data := range payloads {
		if _, err := bw.Write(data); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadDir reads the ICO header and directory from r and returns its entries.
// The image payloads are not decoded.
func ReadDir(r io.Reader) ([]Entry, error) {
	var header iconDir
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, errors.Wrap(err, "ico: reading header")
	}
	if header.Reserved != 0 || header.Type != iconTypeIcon {
		return nil, errors.New("ico: not an icon file")
	}

	entries := make([]Entry, 0, header.Count)
	for i := 0; i < int(header.Count); i++ {
		var e iconDirEntry
		if err := binary.Read(r, binary.LittleEndian, &e); err != nil {
			return nil, errors.Wrapf(err, "ico: reading directory entry %d", i)
		}
		entries = append(entries, Entry{
			Width:    edge(e.Width),
			Height:   edge(e.Height),
			Colors:   int(e.ColorCount),
			Planes:   int(e.Planes),
			BitCount: int(e.BitCount),
			Size:     e.BytesInRes,
			Offset:   e.ImageOffset,
		})
	}
	return entries, nil
}

func encodePayload(img image.Image, format Format) ([]byte, error) {
	switch format {
	case PNG:
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case BMP:
		return encodeDIB(img), nil
	}
	return nil, errors.Errorf("unsupported payload format %v", format)
}

// dimension converts an edge length to its directory representation.
func dimension(n int) uint8 {
	if n >= MaxSize {
		return 0
	}
	return uint8(n)
}

func edge(b uint8) int {
	if b == 0 {
		return MaxSize
	}
	return int(b)
}
