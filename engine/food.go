package engine

import (
	"errors"
	"math/rand"

	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/render"
)

// ErrBoardFull is returned when the snake covers every interior cell
var ErrBoardFull = errors.New("no free interior cell for food")

// sampleAttemptsPerCell bounds rejection sampling before falling back to a free-cell scan
const sampleAttemptsPerCell = 4

// Food is the single edible item on the board
type Food struct {
	grid     core.Grid
	rng      *rand.Rand
	position core.Point
	placed   bool
}

// NewFood creates unplaced food; rng must not be shared across goroutines
func NewFood(grid core.Grid, rng *rand.Rand) *Food {
	return &Food{grid: grid, rng: rng}
}

// Position returns the current food cell
func (f *Food) Position() core.Point {
	return f.position
}

// Placed reports whether Generate has succeeded at least once
func (f *Food) Placed() bool {
	return f.placed
}

// Generate moves the food to a uniformly random interior cell not in body
// Returns ErrBoardFull and keeps the old position when no cell is free
func (f *Food) Generate(body []core.Point) error {
	interior := f.grid.InteriorCells()
	if interior == 0 {
		return ErrBoardFull
	}

	occupied := make(map[core.Point]struct{}, len(body))
	for _, p := range body {
		occupied[p] = struct{}{}
	}

	// Rejection sampling is cheap while the board is mostly empty
	for attempt := 0; attempt < interior*sampleAttemptsPerCell; attempt++ {
		p := core.Point{
			X: 1 + f.rng.Intn(f.grid.Width-2),
			Y: 1 + f.rng.Intn(f.grid.Height-2),
		}
		if _, taken := occupied[p]; !taken {
			f.commit(p)
			return nil
		}
	}

	// Crowded board: pick uniformly among the remaining free cells
	free := make([]core.Point, 0, interior)
	for y := 1; y < f.grid.Height-1; y++ {
		for x := 1; x < f.grid.Width-1; x++ {
			p := core.Point{X: x, Y: y}
			if _, taken := occupied[p]; !taken {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return ErrBoardFull
	}
	f.commit(free[f.rng.Intn(len(free))])
	return nil
}

func (f *Food) commit(p core.Point) {
	f.position = p
	f.placed = true
}

// Draw renders the food glyph at its position
func (f *Food) Draw(d render.Display, g render.Glyphs) {
	if !f.placed {
		return
	}
	render.WriteRoleAt(d, render.RoleFood, f.position.X, f.position.Y, string(g.Food))
}
