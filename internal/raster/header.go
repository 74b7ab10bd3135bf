package raster

import (
	"encoding/binary"
	"fmt"
)

const (
	FileHeaderLen = 14
	InfoHeaderLen = 40
	HeaderLen     = FileHeaderLen + InfoHeaderLen
	BitsPerPixel  = 24
	bytesPerPixel = BitsPerPixel / 8
)

var magic = [2]byte{'B', 'M'}

// Header carries the fields of the two fixed headers this codec reads or
// writes. Everything else is written as zero.
type Header struct {
	Magic        [2]byte
	FileSize     uint32
	PixelOffset  uint32
	InfoSize     uint32
	Width        int32
	Height       int32
	Planes       uint16
	BitsPerPixel uint16
}

// RowPadding returns the zero bytes appended to each row of the given width.
func RowPadding(width int) int {
	return (4 - (width*bytesPerPixel)%4) % 4
}

// FileSize returns the encoded size of an h×w image.
func FileSize(height, width int) int {
	return HeaderLen + height*(width*bytesPerPixel+RowPadding(width))
}

func newHeader(height, width int) Header {
	return Header{
		Magic:        magic,
		FileSize:     uint32(FileSize(height, width)),
		PixelOffset:  HeaderLen,
		InfoSize:     InfoHeaderLen,
		Width:        int32(width),
		Height:       int32(height),
		Planes:       1,
		BitsPerPixel: BitsPerPixel,
	}
}

func EncodeHeader(h Header) []byte {
	buf := make([]byte, HeaderLen)
	buf[0], buf[1] = h.Magic[0], h.Magic[1]
	binary.LittleEndian.PutUint32(buf[2:6], h.FileSize)
	binary.LittleEndian.PutUint32(buf[10:14], h.PixelOffset)
	info := buf[FileHeaderLen:]
	binary.LittleEndian.PutUint32(info[0:4], h.InfoSize)
	binary.LittleEndian.PutUint32(info[4:8], uint32(h.Width))
	binary.LittleEndian.PutUint32(info[8:12], uint32(h.Height))
	binary.LittleEndian.PutUint16(info[12:14], h.Planes)
	binary.LittleEndian.PutUint16(info[14:16], h.BitsPerPixel)
	return buf
}

// DecodeHeader parses the fixed headers. Bit depth is validated before the
// magic, so a non-24-bit file is reported as such even when it is not a
// raster at all.
func DecodeHeader(b []byte) (Header, error) {
	if len(b) != HeaderLen {
		return Header{}, fmt.Errorf("%w: header length %d", ErrTruncated, len(b))
	}
	info := b[FileHeaderLen:]
	h := Header{
		Magic:        [2]byte{b[0], b[1]},
		FileSize:     binary.LittleEndian.Uint32(b[2:6]),
		PixelOffset:  binary.LittleEndian.Uint32(b[10:14]),
		InfoSize:     binary.LittleEndian.Uint32(info[0:4]),
		Width:        int32(binary.LittleEndian.Uint32(info[4:8])),
		Height:       int32(binary.LittleEndian.Uint32(info[8:12])),
		Planes:       binary.LittleEndian.Uint16(info[12:14]),
		BitsPerPixel: binary.LittleEndian.Uint16(info[14:16]),
	}
	if h.BitsPerPixel != BitsPerPixel {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, h.BitsPerPixel)
	}
	if h.Magic != magic {
		return Header{}, fmt.Errorf("%w: magic %q", ErrNotARasterFile, h.Magic[:])
	}
	if h.Width < 0 || h.Height < 0 {
		return Header{}, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, h.Width, h.Height)
	}
	return h, nil
}
