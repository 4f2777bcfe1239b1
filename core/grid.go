package core

// Grid is the fixed-size board, the outermost ring of cells is the border
type Grid struct {
	Width, Height int
}

// NewGrid creates a grid with the given dimensions
func NewGrid(width, height int) Grid {
	return Grid{Width: width, Height: height}
}

// IsBorder reports whether p lies on or outside the border ring
func (g Grid) IsBorder(p Point) bool {
	return p.X <= 0 || p.X >= g.Width-1 || p.Y <= 0 || p.Y >= g.Height-1
}

// IsInterior reports whether p is a playable cell
func (g Grid) IsInterior(p Point) bool {
	return !g.IsBorder(p)
}

// InteriorCells returns the number of playable cells
func (g Grid) InteriorCells() int {
	w, h := g.Width-2, g.Height-2
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Center returns the middle cell of the grid
func (g Grid) Center() Point {
	return Point{X: g.Width / 2, Y: g.Height / 2}
}
