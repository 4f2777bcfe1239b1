package render

import "github.com/mattn/go-runewidth"

// widthCond measures text in terminal cells; board glyphs such as '■' and '▒' are
// East Asian ambiguous and always occupy one cell on the board
var widthCond = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = false
	return c
}()

// RuneCells returns the cell width of a rune, at least 1
func RuneCells(r rune) int {
	if w := widthCond.RuneWidth(r); w > 0 {
		return w
	}
	return 1
}

// TextCells returns the cell width of a string
func TextCells(s string) int {
	n := 0
	for _, r := range s {
		n += RuneCells(r)
	}
	return n
}
