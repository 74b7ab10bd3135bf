package grid

import (
	"errors"
	"fmt"
)

var (
	ErrOutOfBounds       = errors.New("grid: cell out of bounds")
	ErrInvalidLabel      = errors.New("grid: invalid label")
	ErrInvalidDimensions = errors.New("grid: invalid dimensions")
)

// Label classifies one cell.
type Label uint8

const (
	Background Label = 0
	Foreground Label = 1
)

func (l Label) Valid() bool {
	return l == Background || l == Foreground
}

func (l Label) String() string {
	switch l {
	case Background:
		return "background"
	case Foreground:
		return "foreground"
	default:
		return fmt.Sprintf("label(%d)", uint8(l))
	}
}

// Point is a cell coordinate, row first.
type Point struct {
	Y int
	X int
}

// Grid is an H×W buffer of labels stored row-major with a fixed stride.
type Grid struct {
	height int
	width  int
	stride int
	cells  []Label
}

// New allocates an all-background grid.
func New(height, width int) (*Grid, error) {
	if height < 0 || width < 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, height, width)
	}
	return &Grid{
		height: height,
		width:  width,
		stride: width,
		cells:  make([]Label, height*width),
	}, nil
}

// MustNew is New for dimensions known to be valid.
func MustNew(height, width int) *Grid {
	g, err := New(height, width)
	if err != nil {
		panic(err)
	}
	return g
}

// FromRows builds a grid from text rows where '#' or '1' marks foreground and
// '.', '0' or ' ' marks background.
func FromRows(rows ...string) (*Grid, error) {
	width := 0
	if len(rows) > 0 {
		width = len(rows[0])
	}
	g, err := New(len(rows), width)
	if err != nil {
		return nil, err
	}
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has width %d, want %d", ErrInvalidDimensions, y, len(row), width)
		}
		for x := 0; x < len(row); x++ {
			switch row[x] {
			case '#', '1':
				g.cells[y*g.stride+x] = Foreground
			case '.', '0', ' ':
			default:
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrInvalidLabel, row[x], y, x)
			}
		}
	}
	return g, nil
}

func (g *Grid) Height() int { return g.height }
func (g *Grid) Width() int  { return g.width }

func (g *Grid) InBounds(y, x int) bool {
	return y >= 0 && x >= 0 && y < g.height && x < g.width
}

// Cell returns the label at (y, x).
func (g *Grid) Cell(y, x int) (Label, error) {
	if !g.InBounds(y, x) {
		return Background, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, y, x, g.height, g.width)
	}
	return g.cells[y*g.stride+x], nil
}

// IsForeground reports whether (y, x) is in bounds and foreground.
func (g *Grid) IsForeground(y, x int) bool {
	return g.InBounds(y, x) && g.cells[y*g.stride+x] == Foreground
}

// Set stores a label. Only Background and Foreground are accepted.
func (g *Grid) Set(y, x int, l Label) error {
	if !l.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidLabel, l)
	}
	if !g.InBounds(y, x) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, y, x, g.height, g.width)
	}
	g.cells[y*g.stride+x] = l
	return nil
}

// FirstForeground scans row-major and returns the first foreground cell.
func (g *Grid) FirstForeground() (Point, bool) {
	for y := 0; y < g.height; y++ {
		row := g.cells[y*g.stride : y*g.stride+g.width]
		for x, l := range row {
			if l == Foreground {
				return Point{Y: y, X: x}, true
			}
		}
	}
	return Point{}, false
}

// Foreground lists foreground cells in row-major order.
func (g *Grid) Foreground() []Point {
	out := make([]Point, 0)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.stride+x] == Foreground {
				out = append(out, Point{Y: y, X: x})
			}
		}
	}
	return out
}

// Count returns the number of foreground cells.
func (g *Grid) Count() int {
	n := 0
	for _, l := range g.cells {
		if l == Foreground {
			n++
		}
	}
	return n
}

// Crop returns a copy trimmed to the foreground bounding box. A grid with no
// foreground crops to 0x0.
func (g *Grid) Crop() *Grid {
	minY, minX := g.height, g.width
	maxY, maxX := -1, -1
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.stride+x] != Foreground {
				continue
			}
			minY = min(minY, y)
			maxY = max(maxY, y)
			minX = min(minX, x)
			maxX = max(maxX, x)
		}
	}
	if maxY < 0 {
		return MustNew(0, 0)
	}
	out := MustNew(maxY-minY+1, maxX-minX+1)
	for y := minY; y <= maxY; y++ {
		copy(out.cells[(y-minY)*out.stride:(y-minY+1)*out.stride], g.cells[y*g.stride+minX:y*g.stride+maxX+1])
	}
	return out
}

// Clone returns an independent copy.
func (g *Grid) Clone() *Grid {
	out := &Grid{height: g.height, width: g.width, stride: g.stride, cells: make([]Label, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// Equal reports whether both grids have the same size and labels.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.height != o.height || g.width != o.width {
		return false
	}
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.stride+x] != o.cells[y*o.stride+x] {
				return false
			}
		}
	}
	return true
}

// Rows renders the grid in the FromRows notation.
func (g *Grid) Rows() []string {
	out := make([]string, g.height)
	buf := make([]byte, g.width)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.stride+x] == Foreground {
				buf[x] = '#'
			} else {
				buf[x] = '.'
			}
		}
		out[y] = string(buf)
	}
	return out
}
