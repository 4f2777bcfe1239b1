package engine

import (
	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/render"
)

// Starting placement: three segments on row 10, head right-most
var initialBody = [...]core.Point{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}

// Snake is an ordered body, head first
// Every method except Initialize requires an initialized body
type Snake struct {
	grid core.Grid
	body []core.Point
}

// NewSnake creates an uninitialized snake on the grid
func NewSnake(grid core.Grid) *Snake {
	return &Snake{grid: grid}
}

// Initialize resets the body to the three-segment starting row facing right
func (s *Snake) Initialize() {
	s.body = append(s.body[:0], initialBody[:]...)
}

// Head returns the foremost segment
func (s *Snake) Head() core.Point {
	return s.body[0]
}

// Body returns a copy of the segments, head first
func (s *Snake) Body() []core.Point {
	out := make([]core.Point, len(s.body))
	copy(out, s.body)
	return out
}

// Len returns the number of segments, duplicates included
func (s *Snake) Len() int {
	return len(s.body)
}

// Occupies reports whether any segment is at p
func (s *Snake) Occupies(p core.Point) bool {
	return p.In(s.body)
}

// Move shifts the whole body one cell toward dir, length is unchanged
func (s *Snake) Move(dir core.Direction) {
	head := s.Head().Add(dir)
	// Shift in place: drop the tail, slide everything back, write the new head
	copy(s.body[1:], s.body[:len(s.body)-1])
	s.body[0] = head
}

// Grow appends a copy of the tail; the duplicate separates on the next Move
func (s *Snake) Grow() {
	s.body = append(s.body, s.body[len(s.body)-1])
}

// HasCollidedWithWall reports whether the head is on the border ring
func (s *Snake) HasCollidedWithWall() bool {
	return s.grid.IsBorder(s.Head())
}

// HasCollidedWithItself reports whether the head overlaps any other segment
func (s *Snake) HasCollidedWithItself() bool {
	return s.Head().In(s.body[1:])
}

// Draw renders the head glyph then the body glyph for the remaining segments
func (s *Snake) Draw(d render.Display, g render.Glyphs) {
	body := string(g.Body)
	for _, p := range s.body[1:] {
		render.WriteRoleAt(d, render.RoleBody, p.X, p.Y, body)
	}

	// Head last so it stays visible over a just-grown duplicate
	head := s.Head()
	render.WriteRoleAt(d, render.RoleHead, head.X, head.Y, string(g.Head))
}
