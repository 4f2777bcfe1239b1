package render

import "strings"

// WriteAt moves the cursor and writes text in one step
func WriteAt(d Display, x, y int, s string) {
	d.MoveTo(x, y)
	d.Write(s)
}

// WriteRoleAt writes s in role, then returns the display to RoleText
func WriteRoleAt(d Display, role Role, x, y int, s string) {
	SetRole(d, role)
	WriteAt(d, x, y, s)
	SetRole(d, RoleText)
}

// WriteCentered writes text horizontally centered on a row of the given width
func WriteCentered(d Display, width, y int, s string) {
	x := (width - TextCells(s)) / 2
	if x < 0 {
		x = 0
	}
	WriteAt(d, x, y, s)
}

// WriteCenteredBlock word-wraps each paragraph to width and writes the lines
// centered both ways around row midY. Returns the number of lines written.
func WriteCenteredBlock(d Display, width, midY int, paragraphs ...string) int {
	var lines []string
	for _, p := range paragraphs {
		lines = append(lines, WrapText(p, width)...)
	}

	top := max(midY-len(lines)/2, 0)
	for i, line := range lines {
		WriteCentered(d, width, top+i, line)
	}
	return len(lines)
}

// WrapText breaks s into lines no wider than width cells, splitting at spaces.
// Words wider than a line are split at the cell limit.
func WrapText(s string, width int) []string {
	if width <= 0 {
		return nil
	}

	var lines []string
	var line string
	for _, word := range strings.Fields(s) {
		if TextCells(word) > width {
			if line != "" {
				lines = append(lines, line)
			}
			pieces := strings.Split(widthCond.Wrap(word, width), "\n")
			lines = append(lines, pieces[:len(pieces)-1]...)
			line = pieces[len(pieces)-1]
			continue
		}

		switch {
		case line == "":
			line = word
		case TextCells(line)+1+TextCells(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// DrawBorder draws a one-cell thick rectangle outline along all four edges
func DrawBorder(d Display, width, height int, glyph rune) {
	if width <= 0 || height <= 0 {
		return
	}
	SetRole(d, RoleBorder)
	defer SetRole(d, RoleText)

	row := strings.Repeat(string(glyph), width)
	WriteAt(d, 0, 0, row)
	WriteAt(d, 0, height-1, row)

	cell := string(glyph)
	for y := 1; y < height-1; y++ {
		WriteAt(d, 0, y, cell)
		WriteAt(d, width-1, y, cell)
	}
}
