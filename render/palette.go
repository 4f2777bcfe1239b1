package render

import "github.com/gdamore/tcell/v2"

// Glyphs holds the characters used for each board element
type Glyphs struct {
	Head   rune
	Body   rune
	Food   rune
	Border rune
}

// DefaultGlyphs returns the classic console glyph set
func DefaultGlyphs() Glyphs {
	return Glyphs{
		Head:   'O',
		Body:   '■',
		Food:   '■',
		Border: '▒',
	}
}

// Role is what a written cell depicts; displays style cells by role, never by rune
type Role uint8

const (
	RoleText Role = iota
	RoleBorder
	RoleBody
	RoleHead
	RoleFood
	roleCount
)

// Palette maps roles to terminal styles
type Palette struct {
	Default tcell.Style
	styles  [roleCount]tcell.Style
}

// NewPalette builds the color scheme
func NewPalette() Palette {
	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)
	p := Palette{Default: base}
	p.styles[RoleText] = base
	p.styles[RoleBorder] = base.Foreground(tcell.ColorGray)
	p.styles[RoleBody] = base.Foreground(tcell.ColorGreen)
	p.styles[RoleHead] = base.Foreground(tcell.ColorLime).Bold(true)
	p.styles[RoleFood] = base.Foreground(tcell.ColorRed)
	return p
}

// StyleFor returns the style of a role, the default style for unknown roles
func (p Palette) StyleFor(r Role) tcell.Style {
	if r >= roleCount {
		return p.Default
	}
	return p.styles[r]
}
