package render

import "github.com/gdamore/tcell/v2"

// TcellDisplay adapts a tcell.Screen to Display
type TcellDisplay struct {
	screen  tcell.Screen
	palette Palette
	role    Role
	x, y    int
}

// NewTcellDisplay wraps an initialized screen; the text cursor is hidden
func NewTcellDisplay(screen tcell.Screen, palette Palette) *TcellDisplay {
	screen.HideCursor()
	screen.SetStyle(palette.Default)
	return &TcellDisplay{
		screen:  screen,
		palette: palette,
	}
}

// Clear blanks the back buffer
func (d *TcellDisplay) Clear() {
	d.screen.Clear()
	d.x, d.y = 0, 0
	d.role = RoleText
}

// SetRole selects the style for following writes
func (d *TcellDisplay) SetRole(r Role) {
	d.role = r
}

// MoveTo positions the write cursor
func (d *TcellDisplay) MoveTo(x, y int) {
	d.x, d.y = x, y
}

// Write sets cells at the cursor in the current role's style
func (d *TcellDisplay) Write(s string) {
	width, height := d.screen.Size()
	for _, r := range s {
		if d.x >= 0 && d.x < width && d.y >= 0 && d.y < height {
			d.screen.SetContent(d.x, d.y, r, nil, d.palette.StyleFor(d.role))
		}
		d.x += RuneCells(r)
	}
}

// Show flushes the back buffer to the terminal
func (d *TcellDisplay) Show() {
	d.screen.Show()
}
