package core

// Point is a grid coordinate, (0,0) is the top-left cell
type Point struct {
	X, Y int
}

// Add returns the neighbor one cell away in direction d
func (p Point) Add(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// In reports whether p is present in points
func (p Point) In(points []Point) bool {
	for _, q := range points {
		if q == p {
			return true
		}
	}
	return false
}
