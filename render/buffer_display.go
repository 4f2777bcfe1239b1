package render

import "strings"

// BufferDisplay is an in-memory Display for headless runs and tests
type BufferDisplay struct {
	cells  []rune
	roles  []Role
	role   Role
	width  int
	height int
	x, y   int
	frames int
}

// NewBufferDisplay creates a blank buffer with the specified dimensions
func NewBufferDisplay(width, height int) *BufferDisplay {
	b := &BufferDisplay{
		cells:  make([]rune, width*height),
		roles:  make([]Role, width*height),
		width:  width,
		height: height,
	}
	b.Clear()
	return b
}

// Clear resets all cells to blank and homes the cursor
func (b *BufferDisplay) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = ' '
	// Exponential copy
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
	clear(b.roles)
	b.x, b.y = 0, 0
	b.role = RoleText
}

// SetRole records the role for following writes
func (b *BufferDisplay) SetRole(r Role) {
	b.role = r
}

// MoveTo positions the cursor, out of bounds positions are kept and clip writes
func (b *BufferDisplay) MoveTo(x, y int) {
	b.x, b.y = x, y
}

// Write stores runes at the cursor; wide runes occupy their width in cells
func (b *BufferDisplay) Write(s string) {
	for _, r := range s {
		if b.inBounds(b.x, b.y) {
			b.cells[b.y*b.width+b.x] = r
			b.roles[b.y*b.width+b.x] = b.role
		}
		b.x += RuneCells(r)
	}
}

// Show counts presented frames
func (b *BufferDisplay) Show() {
	b.frames++
}

// Frames returns the number of Show calls
func (b *BufferDisplay) Frames() int {
	return b.frames
}

// At returns the rune at a cell, zero when out of bounds
func (b *BufferDisplay) At(x, y int) rune {
	if !b.inBounds(x, y) {
		return 0
	}
	return b.cells[y*b.width+x]
}

// RoleAt returns the role a cell was written with, RoleText when out of bounds
func (b *BufferDisplay) RoleAt(x, y int) Role {
	if !b.inBounds(x, y) {
		return RoleText
	}
	return b.roles[y*b.width+x]
}

// Row returns one line with trailing blanks trimmed
func (b *BufferDisplay) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	return strings.TrimRight(string(b.cells[y*b.width:(y+1)*b.width]), " ")
}

// Contains reports whether any row holds the text
func (b *BufferDisplay) Contains(text string) bool {
	for y := 0; y < b.height; y++ {
		if strings.Contains(b.Row(y), text) {
			return true
		}
	}
	return false
}

// Size returns buffer dimensions
func (b *BufferDisplay) Size() (int, int) {
	return b.width, b.height
}

// String renders the buffer as newline separated rows
func (b *BufferDisplay) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		sb.WriteString(b.Row(y))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *BufferDisplay) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}
