package engine

import (
	"math/rand"
	"testing"

	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillInterior returns every interior cell of g except the skipped ones
func fillInterior(g core.Grid, skip ...core.Point) []core.Point {
	var out []core.Point
	for y := 1; y < g.Height-1; y++ {
		for x := 1; x < g.Width-1; x++ {
			p := core.Point{X: x, Y: y}
			if !p.In(skip) {
				out = append(out, p)
			}
		}
	}
	return out
}

// TestFoodGenerateAvoidsBody verifies food lands on a free interior cell across many seeds
func TestFoodGenerateAvoidsBody(t *testing.T) {
	grid := core.NewGrid(80, 25)
	s := NewSnake(grid)
	s.Initialize()
	body := s.Body()

	for seed := int64(0); seed < 200; seed++ {
		f := NewFood(grid, rand.New(rand.NewSource(seed)))
		require.NoError(t, f.Generate(body))
		require.True(t, f.Placed())

		p := f.Position()
		assert.False(t, p.In(body), "seed %d placed food on body at %v", seed, p)
		assert.True(t, grid.IsInterior(p), "seed %d placed food on border at %v", seed, p)
	}
}

// TestFoodGenerateCrowdedBoard verifies the free-cell fallback finds the last open cells
func TestFoodGenerateCrowdedBoard(t *testing.T) {
	grid := core.NewGrid(12, 12)
	open := []core.Point{{X: 4, Y: 7}, {X: 9, Y: 2}}
	body := fillInterior(grid, open...)

	for seed := int64(0); seed < 20; seed++ {
		f := NewFood(grid, rand.New(rand.NewSource(seed)))
		require.NoError(t, f.Generate(body))
		assert.True(t, f.Position().In(open), "seed %d picked %v", seed, f.Position())
	}
}

// TestFoodGenerateFullBoard verifies a full board reports ErrBoardFull and keeps the old position
func TestFoodGenerateFullBoard(t *testing.T) {
	grid := core.NewGrid(6, 5)
	f := NewFood(grid, rand.New(rand.NewSource(1)))

	require.NoError(t, f.Generate(nil))
	before := f.Position()

	err := f.Generate(fillInterior(grid))
	assert.ErrorIs(t, err, ErrBoardFull)
	assert.Equal(t, before, f.Position())
}

func TestFoodGenerateDegenerateGrid(t *testing.T) {
	f := NewFood(core.NewGrid(2, 2), rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, f.Generate(nil), ErrBoardFull)
	assert.False(t, f.Placed())
}

func TestFoodDraw(t *testing.T) {
	grid := core.NewGrid(10, 10)
	d := render.NewBufferDisplay(10, 10)
	g := render.DefaultGlyphs()
	f := NewFood(grid, rand.New(rand.NewSource(3)))

	// Unplaced food draws nothing
	f.Draw(d, g)
	assert.False(t, d.Contains(string(g.Food)))

	require.NoError(t, f.Generate(nil))
	f.Draw(d, g)
	p := f.Position()
	assert.Equal(t, g.Food, d.At(p.X, p.Y))
	assert.Equal(t, render.RoleFood, d.RoleAt(p.X, p.Y))
}
