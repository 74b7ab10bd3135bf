package chaincode

import (
	"fmt"

	"github.com/danmuck/midcrack/internal/grid"
)

// Cursor deltas in half-pixel units.
var (
	halfStepX = [numDirections]int{2, 1, 0, -1, -2, -1, 0, 1}
	halfStepY = [numDirections]int{0, -1, -2, -1, 0, 1, 2, 1}
)

// Pixel moves indexed by turn + 3*(edge/2). Each edge direction owns three
// entries: stay on the pixel, step straight, step diagonally.
var (
	moveY = [12]int{0, 1, 1, 0, 0, -1, 0, -1, -1, 0, 0, 1}
	moveX = [12]int{0, 0, 1, 0, 1, 1, 0, 0, -1, 0, -1, -1}
)

// Options tunes Decode.
type Options struct {
	// OutlineOnly leaves the enclosed interior as background.
	OutlineOnly bool
}

// Extent is the reconstructed grid size and start cell for a code.
type Extent struct {
	Height int
	Width  int
	Start  grid.Point
}

// Measure walks the code on the crack lattice and derives the grid extent.
// The start crack sits on row 0; the walk may never rise above it.
func Measure(code Code) (Extent, error) {
	// doubled coordinates keep half steps integral
	var x2, y2, minX2, maxX2, maxY2 int
	for i, d := range code {
		if !d.Valid() {
			return Extent{}, &DigitError{Offset: i, Byte: byte(d)}
		}
		x2 += halfStepX[d]
		y2 += halfStepY[d]
		minX2 = min(minX2, x2)
		maxX2 = max(maxX2, x2)
		maxY2 = max(maxY2, y2)
		if y2 < 0 {
			return Extent{}, fmt.Errorf("%w: y=%.1f at offset %d", ErrNegativeYBound, float64(y2)/2, i)
		}
	}
	// integer division truncates toward zero
	minX, maxX, maxY := minX2/2, maxX2/2, maxY2/2
	return Extent{
		Height: maxY,
		Width:  1 + maxX - minX,
		Start:  grid.Point{Y: 0, X: -minX},
	}, nil
}

// Decode rebuilds the region described by code.
func Decode(code Code, opts Options) (*grid.Grid, error) {
	if len(code) == 0 {
		return nil, ErrEmptyCode
	}
	ext, err := Measure(code)
	if err != nil {
		return nil, err
	}
	g, err := grid.New(ext.Height, ext.Width)
	if err != nil {
		return nil, err
	}
	cur := ext.Start
	if err := g.Set(cur.Y, cur.X, grid.Foreground); err != nil {
		return nil, fmt.Errorf("%w: start %+v in %dx%d", ErrCodeOutOfBounds, cur, ext.Height, ext.Width)
	}

	dir := int(Up)
	for i, d := range code {
		turn := (int(d) + 3 - dir + numDirections) % numDirections
		if turn > 2 {
			return nil, fmt.Errorf("%w: %s after %s edge at offset %d", ErrDiscontinuousCode, d, Direction(dir), i)
		}
		k := turn + 3*(dir/2)
		cur = grid.Point{Y: cur.Y + moveY[k], X: cur.X + moveX[k]}
		if err := g.Set(cur.Y, cur.X, grid.Foreground); err != nil {
			return nil, fmt.Errorf("%w: %+v at offset %d", ErrCodeOutOfBounds, cur, i)
		}
		dir = (12 - dir + 2*int(d)) % numDirections
	}

	if !opts.OutlineOnly {
		fillInterior(g)
	}
	return g, nil
}

// fillInterior marks every background cell that is not 4-connected to the
// grid border.
func fillInterior(g *grid.Grid) {
	h, w := g.Height(), g.Width()
	outside := make([]bool, h*w)
	stack := make([]grid.Point, 0, 2*(h+w))
	push := func(y, x int) {
		if !g.InBounds(y, x) || outside[y*w+x] || g.IsForeground(y, x) {
			return
		}
		outside[y*w+x] = true
		stack = append(stack, grid.Point{Y: y, X: x})
	}
	for x := 0; x < w; x++ {
		push(0, x)
		push(h-1, x)
	}
	for y := 0; y < h; y++ {
		push(y, 0)
		push(y, w-1)
	}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push(p.Y-1, p.X)
		push(p.Y+1, p.X)
		push(p.Y, p.X-1)
		push(p.Y, p.X+1)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !outside[y*w+x] {
				_ = g.Set(y, x, grid.Foreground)
			}
		}
	}
}
