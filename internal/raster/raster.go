package raster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/danmuck/midcrack/internal/grid"
	"github.com/rs/zerolog/log"
)

var (
	ErrFileUnreadable      = errors.New("raster: file unreadable")
	ErrFileUnwritable      = errors.New("raster: file unwritable")
	ErrUnsupportedBitDepth = errors.New("raster: unsupported bit depth")
	ErrNotARasterFile      = errors.New("raster: not a raster file")
	ErrInvalidPixelColor   = errors.New("raster: invalid pixel color")
	ErrInvalidDimensions   = errors.New("raster: invalid dimensions")
	ErrImageTooLarge       = errors.New("raster: image too large")
	ErrTruncated           = errors.New("raster: truncated data")
)

// Orientation selects how stored rows map to grid rows.
type Orientation int

const (
	// FileOrder maps the first stored row to grid row 0.
	FileOrder Orientation = iota
	// BottomUp maps the last stored row to grid row 0, the conventional
	// reading of a positive-height bitmap.
	BottomUp
)

func (o Orientation) String() string {
	switch o {
	case FileOrder:
		return "file-order"
	case BottomUp:
		return "bottom-up"
	default:
		return fmt.Sprintf("orientation(%d)", int(o))
	}
}

// ParseOrientation accepts the String forms.
func ParseOrientation(raw string) (Orientation, error) {
	switch raw {
	case "file-order", "":
		return FileOrder, nil
	case "bottom-up":
		return BottomUp, nil
	default:
		return FileOrder, fmt.Errorf("raster: unknown orientation %q", raw)
	}
}

// Options tunes Decode and Encode.
type Options struct {
	Orientation Orientation
	MaxPixels   int64
}

func DefaultOptions() Options {
	return Options{
		Orientation: FileOrder,
		MaxPixels:   1 << 28,
	}
}

// PixelColorError locates the first pixel that is neither black nor white.
type PixelColorError struct {
	X, Y    int
	R, G, B uint8
}

func (e *PixelColorError) Error() string {
	return fmt.Sprintf("%v: r=%d g=%d b=%d at (x=%d, y=%d)", ErrInvalidPixelColor, e.R, e.G, e.B, e.X, e.Y)
}

func (e *PixelColorError) Unwrap() error {
	return ErrInvalidPixelColor
}

func (o Options) storedRow(row, height int) int {
	if o.Orientation == BottomUp {
		return height - 1 - row
	}
	return row
}

// Decode reads a 24-bit raster. Pixel data is taken to follow the fixed
// headers directly.
func Decode(r io.Reader, opts Options) (*grid.Grid, error) {
	var fixed [HeaderLen]byte
	if _, err := io.ReadFull(r, fixed[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: short header", ErrTruncated)
		}
		return nil, err
	}
	h, err := DecodeHeader(fixed[:])
	if err != nil {
		return nil, err
	}
	width, height := int(h.Width), int(h.Height)
	if opts.MaxPixels > 0 && int64(width)*int64(height) > opts.MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrImageTooLarge, width, height, opts.MaxPixels)
	}
	g, err := grid.New(height, width)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDimensions, err)
	}

	row := make([]byte, width*bytesPerPixel+RowPadding(width))
	for stored := 0; stored < height; stored++ {
		if _, err := io.ReadFull(r, row); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: row %d of %d", ErrTruncated, stored, height)
			}
			return nil, err
		}
		y := opts.storedRow(stored, height)
		for x := 0; x < width; x++ {
			px := row[x*bytesPerPixel : (x+1)*bytesPerPixel]
			b, gr, rd := px[0], px[1], px[2]
			switch {
			case rd == 0xFF && gr == 0xFF && b == 0xFF:
			case rd == 0 && gr == 0 && b == 0:
				if err := g.Set(y, x, grid.Foreground); err != nil {
					return nil, err
				}
			default:
				return nil, &PixelColorError{X: x, Y: y, R: rd, G: gr, B: b}
			}
		}
	}
	return g, nil
}

// Encode writes g as a 24-bit raster; foreground is black.
func Encode(w io.Writer, g *grid.Grid, opts Options) error {
	height, width := g.Height(), g.Width()
	if _, err := w.Write(EncodeHeader(newHeader(height, width))); err != nil {
		return err
	}
	row := make([]byte, width*bytesPerPixel+RowPadding(width))
	for stored := 0; stored < height; stored++ {
		y := opts.storedRow(stored, height)
		for x := 0; x < width; x++ {
			v := byte(0xFF)
			if g.IsForeground(y, x) {
				v = 0
			}
			row[x*bytesPerPixel] = v
			row[x*bytesPerPixel+1] = v
			row[x*bytesPerPixel+2] = v
		}
		if _, err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Load opens and decodes the raster at path.
func Load(path string, opts Options) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileUnreadable, err)
	}
	defer f.Close()

	g, err := Decode(bufio.NewReader(f), opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	log.Debug().
		Str("path", path).
		Int("height", g.Height()).
		Int("width", g.Width()).
		Stringer("orientation", opts.Orientation).
		Msg("raster loaded")
	return g, nil
}

// Save encodes g to path, replacing any existing file.
func Save(path string, g *grid.Grid, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileUnwritable, err)
	}
	bw := bufio.NewWriter(f)
	if err := Encode(bw, g, opts); err != nil {
		_ = f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	log.Debug().
		Str("path", path).
		Int("height", g.Height()).
		Int("width", g.Width()).
		Int("bytes", FileSize(g.Height(), g.Width())).
		Msg("raster saved")
	return nil
}
