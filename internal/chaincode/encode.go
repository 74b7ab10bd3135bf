package chaincode

import (
	"fmt"

	"github.com/danmuck/midcrack/internal/grid"
)

// Clockwise neighbor offsets, starting south-east.
var (
	neighborY = [numDirections]int{1, 1, 1, 0, -1, -1, -1, 0}
	neighborX = [numDirections]int{1, 0, -1, -1, -1, 0, 1, 1}
)

// closing brings the final edge direction back to the top edge of the start
// pixel.
var closing = [numDirections]Code{
	Right: {DownLeft, UpLeft, UpRight},
	Down:  {UpLeft, UpRight},
	Left:  {UpRight},
}

// Encode traces the outer boundary of the region containing the row-major
// first foreground pixel of g.
func Encode(g *grid.Grid) (Code, error) {
	start, ok := g.FirstForeground()
	if !ok {
		return nil, ErrNoForegroundPixel
	}

	code := make(Code, 0, 4*(g.Height()+g.Width()))
	limit := 4*g.Height()*g.Width() + 8
	dir := Up
	cur := start
	for steps := 0; ; steps++ {
		if steps > limit {
			return nil, fmt.Errorf("%w after %d steps", ErrTraceDiverged, steps)
		}
		first := numDirections - int(dir)
		for i := 0; i < numDirections-1; i++ {
			k := (first + i) % numDirections
			y, x := cur.Y+neighborY[k], cur.X+neighborX[k]
			digit := Direction((int(dir) - i + 7) % numDirections)
			if i != 0 && i%2 == 0 {
				code = append(code, digit)
			}
			if !g.IsForeground(y, x) {
				continue
			}
			cur = grid.Point{Y: y, X: x}
			code = append(code, digit)
			turn := 2 - 2*((i+1)/2)
			dir = Direction((int(dir) + turn + numDirections) % numDirections)
			break
		}
		if cur == start {
			break
		}
	}
	return append(code, closing[dir]...), nil
}
