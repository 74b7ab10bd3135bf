package grid

import (
	"image"
	"image/color"
)

// Palette maps Background to white and Foreground to black.
func Palette() color.Palette {
	return color.Palette{color.White, color.Black}
}

var _ image.PalettedImage = (*Grid)(nil)

func (g *Grid) ColorModel() color.Model {
	return Palette()
}

func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.width, g.height)
}

// At uses image coordinates (x first). Cells outside the grid read as white.
func (g *Grid) At(x, y int) color.Color {
	return Palette()[g.ColorIndexAt(x, y)]
}

func (g *Grid) ColorIndexAt(x, y int) uint8 {
	if g.IsForeground(y, x) {
		return 1
	}
	return 0
}
