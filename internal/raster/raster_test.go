package raster

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/danmuck/midcrack/internal/grid"
	"github.com/danmuck/midcrack/internal/testutil/testlog"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

func sampleGrid(t *testing.T) *grid.Grid {
	t.Helper()
	g, err := grid.FromRows(
		".....",
		".##..",
		"..#..",
	)
	require.NoError(t, err)
	return g
}

func TestRowPaddingAndFileSize(t *testing.T) {
	cases := []struct {
		width   int
		padding int
	}{
		{width: 0, padding: 0},
		{width: 1, padding: 1},
		{width: 2, padding: 2},
		{width: 3, padding: 3},
		{width: 4, padding: 0},
		{width: 5, padding: 1},
	}
	for _, tc := range cases {
		require.Equal(t, tc.padding, RowPadding(tc.width), "width=%d", tc.width)
	}
	require.Equal(t, 54+3*(5*3+1), FileSize(3, 5))
}

func TestEncodeWidthFivePadsEachRow(t *testing.T) {
	testlog.Start(t)
	g := sampleGrid(t)
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, g, DefaultOptions()))
	require.Equal(t, 54+g.Height()*(5*3+1), buf.Len())

	b := buf.Bytes()
	require.Equal(t, []byte("BM"), b[0:2])
	require.Equal(t, uint32(buf.Len()), binary.LittleEndian.Uint32(b[2:6]))
	require.Equal(t, uint32(54), binary.LittleEndian.Uint32(b[10:14]))
	require.Equal(t, uint16(24), binary.LittleEndian.Uint16(b[28:30]))
	// padding byte after the first row
	require.Equal(t, byte(0), b[54+15])
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	testlog.Start(t)
	for _, o := range []Orientation{FileOrder, BottomUp} {
		g := sampleGrid(t)
		opts := DefaultOptions()
		opts.Orientation = o
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, g, opts))
		got, err := Decode(&buf, opts)
		require.NoError(t, err)
		require.Equal(t, g.Rows(), got.Rows(), "orientation=%s", o)
	}
}

func TestEncodedFileReadsWithIndependentDecoder(t *testing.T) {
	testlog.Start(t)
	g := sampleGrid(t)
	for _, o := range []Orientation{FileOrder, BottomUp} {
		opts := DefaultOptions()
		opts.Orientation = o
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, g, opts))

		img, err := bmp.Decode(&buf)
		require.NoError(t, err)
		require.Equal(t, g.Bounds(), img.Bounds())
		for y := 0; y < g.Height(); y++ {
			// a positive height stores rows bottom-up for conventional readers
			imgY := y
			if o == FileOrder {
				imgY = g.Height() - 1 - y
			}
			for x := 0; x < g.Width(); x++ {
				r, _, _, _ := img.At(x, imgY).RGBA()
				want := uint32(0xFFFF)
				if g.IsForeground(y, x) {
					want = 0
				}
				require.Equal(t, want, r, "orientation=%s x=%d y=%d", o, x, y)
			}
		}
	}
}

func headerWithDepth(depth uint16, magicBytes string) []byte {
	h := newHeader(1, 1)
	copy(h.Magic[:], magicBytes)
	h.BitsPerPixel = depth
	return EncodeHeader(h)
}

func TestDecodeUnsupportedBitDepthStopsReading(t *testing.T) {
	data := append(headerWithDepth(32, "BM"), 0xAA, 0xBB, 0xCC, 0xDD)
	r := bytes.NewReader(data)
	_, err := Decode(r, DefaultOptions())
	require.ErrorIs(t, err, ErrUnsupportedBitDepth)
	require.Equal(t, 4, r.Len(), "no pixel bytes may be consumed")
}

func TestDecodeBitDepthCheckedBeforeMagic(t *testing.T) {
	_, err := Decode(bytes.NewReader(headerWithDepth(8, "XX")), DefaultOptions())
	require.ErrorIs(t, err, ErrUnsupportedBitDepth)

	_, err = Decode(bytes.NewReader(headerWithDepth(24, "XX")), DefaultOptions())
	require.ErrorIs(t, err, ErrNotARasterFile)
}

func TestDecodeRejectsOtherColors(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleGrid(t), DefaultOptions()))
	b := buf.Bytes()
	// second pixel of the first stored row: B, G, R
	b[54+3], b[54+4], b[54+5] = 10, 20, 30

	_, err := Decode(bytes.NewReader(b), DefaultOptions())
	require.ErrorIs(t, err, ErrInvalidPixelColor)
	var pe *PixelColorError
	require.True(t, errors.As(err, &pe))
	require.Equal(t, PixelColorError{X: 1, Y: 0, R: 30, G: 20, B: 10}, *pe)
}

func TestDecodeTruncated(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleGrid(t), DefaultOptions()))
	b := buf.Bytes()

	_, err := Decode(bytes.NewReader(b[:20]), DefaultOptions())
	require.ErrorIs(t, err, ErrTruncated)
	_, err = Decode(bytes.NewReader(b[:len(b)-1]), DefaultOptions())
	require.ErrorIs(t, err, ErrTruncated)
}

func TestDecodeRejectsOversizedImage(t *testing.T) {
	h := newHeader(1000, 1000)
	opts := DefaultOptions()
	opts.MaxPixels = 10
	_, err := Decode(bytes.NewReader(EncodeHeader(h)), opts)
	require.ErrorIs(t, err, ErrImageTooLarge)
}

func TestDecodeRejectsNegativeDimensions(t *testing.T) {
	h := newHeader(1, 1)
	h.Height = -4
	_, err := Decode(bytes.NewReader(EncodeHeader(h)), DefaultOptions())
	require.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestLoadAndSave(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "shape.bmp")
	g := sampleGrid(t)
	require.NoError(t, Save(path, g, DefaultOptions()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, int64(FileSize(g.Height(), g.Width())), info.Size())

	got, err := Load(path, DefaultOptions())
	require.NoError(t, err)
	require.True(t, g.Equal(got))

	_, err = Load(filepath.Join(dir, "missing.bmp"), DefaultOptions())
	require.ErrorIs(t, err, ErrFileUnreadable)

	err = Save(filepath.Join(dir, "no", "such", "dir.bmp"), g, DefaultOptions())
	require.ErrorIs(t, err, ErrFileUnwritable)
}

func TestParseOrientation(t *testing.T) {
	o, err := ParseOrientation("bottom-up")
	require.NoError(t, err)
	require.Equal(t, BottomUp, o)
	o, err = ParseOrientation("")
	require.NoError(t, err)
	require.Equal(t, FileOrder, o)
	_, err = ParseOrientation("sideways")
	require.Error(t, err)
}
