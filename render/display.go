package render

// Display is the minimal character-grid surface the game draws on
// Write places text at the cursor and advances it by the text's cell width
type Display interface {
	Clear()
	MoveTo(x, y int)
	Write(s string)
	Show()
}

// Styler is implemented by displays that color cells by role
// Writes use the last role set; Clear returns to RoleText
type Styler interface {
	SetRole(r Role)
}

// SetRole switches the write role when d supports styling
func SetRole(d Display, r Role) {
	if s, ok := d.(Styler); ok {
		s.SetRole(r)
	}
}
