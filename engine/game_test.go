package engine

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/input"
	"github.com/lixenwraith/term-snake/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSounds counts cues
type recordingSounds struct {
	eat, speedUp, crash, win int
}

func (r *recordingSounds) Eat()     { r.eat++ }
func (r *recordingSounds) SpeedUp() { r.speedUp++ }
func (r *recordingSounds) Crash()   { r.crash++ }
func (r *recordingSounds) Win()     { r.win++ }

type testGame struct {
	*Game
	display *render.BufferDisplay
	keys    *input.MemorySource
	clock   *MockTimeProvider
	sounds  *recordingSounds
}

func newTestGame(t *testing.T, settings Settings) *testGame {
	t.Helper()
	tg := &testGame{
		display: render.NewBufferDisplay(settings.Grid.Width, settings.Grid.Height),
		keys:    input.NewMemorySource(),
		clock:   NewMockTimeProvider(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		sounds:  &recordingSounds{},
	}
	tg.Game = NewGame(settings, tg.display, tg.keys,
		WithClock(tg.clock),
		WithSounds(tg.sounds),
		WithRand(rand.New(rand.NewSource(42))),
	)
	return tg
}

// resetWithFoodAt starts a session and moves the food to p
func (tg *testGame) resetWithFoodAt(t *testing.T, p core.Point) {
	t.Helper()
	require.NoError(t, tg.Reset())
	tg.food.commit(p)
}

func headlessSettings() Settings {
	s := DefaultSettings()
	s.StartScreen = false
	return s
}

// TestResetInitialState verifies the session, snake, food and border before the first tick
func TestResetInitialState(t *testing.T) {
	tg := newTestGame(t, headlessSettings())
	require.NoError(t, tg.Reset())

	sess := tg.Session()
	assert.Equal(t, core.DirRight, sess.Direction)
	assert.Equal(t, 0, sess.Score)
	assert.Equal(t, 100*time.Millisecond, sess.Interval)
	assert.Equal(t, []core.Point{{X: 10, Y: 10}, {X: 9, Y: 10}, {X: 8, Y: 10}}, tg.Snake().Body())

	require.True(t, tg.Food().Placed())
	assert.False(t, tg.Food().Position().In(tg.Snake().Body()))

	g := render.DefaultGlyphs()
	assert.Equal(t, g.Border, tg.display.At(0, 0))
	assert.Equal(t, g.Border, tg.display.At(79, 24))
	assert.Equal(t, 1, tg.display.Frames())
}

// TestTickMovesAndRenders verifies one tick advances right and draws the frame
func TestTickMovesAndRenders(t *testing.T) {
	tg := newTestGame(t, headlessSettings())
	tg.resetWithFoodAt(t, core.Point{X: 40, Y: 20})

	require.Equal(t, OutcomeNone, tg.Tick())
	assert.Equal(t, []core.Point{{X: 11, Y: 10}, {X: 10, Y: 10}, {X: 9, Y: 10}}, tg.Snake().Body())

	g := render.DefaultGlyphs()
	d := tg.display
	assert.Equal(t, g.Head, d.At(11, 10))
	assert.Equal(t, g.Body, d.At(10, 10))
	assert.Equal(t, g.Body, d.At(9, 10))
	assert.Equal(t, ' ', d.At(8, 10), "old tail cleared")
	assert.Equal(t, g.Food, d.At(40, 20))
	assert.Equal(t, g.Border, d.At(0, 12))
	assert.Equal(t, g.Border, d.At(79, 12))
	assert.Contains(t, d.Row(24), "Score: 0")
	assert.Equal(t, 'S', d.At(2, 24))
}

// TestTickEatScenario verifies eating at (11,10) scores, grows and relocates food off the body
func TestTickEatScenario(t *testing.T) {
	tg := newTestGame(t, headlessSettings())
	tg.resetWithFoodAt(t, core.Point{X: 11, Y: 10})

	require.Equal(t, OutcomeNone, tg.Tick()) // head reaches (11,10)
	require.Equal(t, core.Point{X: 11, Y: 10}, tg.Snake().Head())

	require.Equal(t, OutcomeNone, tg.Tick()) // consume, then move
	assert.Equal(t, 1, tg.Session().Score)
	assert.Equal(t, 4, tg.Snake().Len())
	assert.Equal(t, 1, tg.sounds.eat)

	grown := []core.Point{{X: 11, Y: 10}, {X: 10, Y: 10}, {X: 9, Y: 10}, {X: 9, Y: 10}}
	assert.False(t, tg.Food().Position().In(grown), "food at %v overlaps the grown body", tg.Food().Position())
	assert.Equal(t, []core.Point{{X: 12, Y: 10}, {X: 11, Y: 10}, {X: 10, Y: 10}, {X: 9, Y: 10}}, tg.Snake().Body())
	assert.Contains(t, tg.display.Row(24), "Score: 1")
}

// TestTickSpeedsUpEveryFifthFood verifies the fifth food shortens the tick interval
func TestTickSpeedsUpEveryFifthFood(t *testing.T) {
	tg := newTestGame(t, headlessSettings())
	require.NoError(t, tg.Reset())

	for i := 0; i < 5; i++ {
		// Drop food in front of the head so the next tick consumes it
		tg.food.commit(tg.Snake().Head())
		require.Equal(t, OutcomeNone, tg.Tick())
	}

	assert.Equal(t, 5, tg.Session().Score)
	assert.Equal(t, 90*time.Millisecond, tg.Session().Interval)
	assert.Equal(t, 1, tg.sounds.speedUp)
	assert.Equal(t, 5, tg.sounds.eat)
	assert.Equal(t, 8, tg.Snake().Len())
}

// TestTickRejectsReversal verifies a reverse key is ignored
func TestTickRejectsReversal(t *testing.T) {
	tg := newTestGame(t, headlessSettings())
	tg.resetWithFoodAt(t, core.Point{X: 40, Y: 20})

	tg.keys.Push(input.ActionLeft)
	require.Equal(t, OutcomeNone, tg.Tick())

	assert.Equal(t, core.DirRight, tg.Session().Direction)
	assert.Equal(t, core.Point{X: 11, Y: 10}, tg.Snake().Head())
	assert.False(t, tg.Snake().HasCollidedWithItself())
}

// TestTickDrainPolicy verifies all queued keys are consumed and the newest valid turn wins
func TestTickDrainPolicy(t *testing.T) {
	cases := []struct {
		name string
		keys []input.Action
		want core.Direction
	}{
		{"newest wins", []input.Action{input.ActionUp, input.ActionDown}, core.DirDown},
		{"reverse of tick start ignored", []input.Action{input.ActionUp, input.ActionLeft}, core.DirUp},
		{"unbound keys ignored", []input.Action{input.ActionDown, input.ActionNone}, core.DirDown},
		{"only reversal", []input.Action{input.ActionLeft}, core.DirRight},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tg := newTestGame(t, headlessSettings())
			tg.resetWithFoodAt(t, core.Point{X: 40, Y: 20})

			tg.keys.Push(tc.keys...)
			require.Equal(t, OutcomeNone, tg.Tick())

			assert.Equal(t, tc.want, tg.Session().Direction)
			assert.False(t, tg.keys.KeyAvailable(), "queue drained")
		})
	}
}

// TestTickQuitBypassesSimulation verifies quit returns before anything moves
func TestTickQuitBypassesSimulation(t *testing.T) {
	tg := newTestGame(t, headlessSettings())
	tg.resetWithFoodAt(t, core.Point{X: 40, Y: 20})

	tg.keys.Push(input.ActionUp, input.ActionQuit, input.ActionDown)
	assert.Equal(t, OutcomeQuit, tg.Tick())
	assert.Equal(t, core.Point{X: 10, Y: 10}, tg.Snake().Head())
	assert.Equal(t, 0, tg.sounds.crash)
}

// TestTickWallCollision verifies the border is detected on the tick after the head reaches it
func TestTickWallCollision(t *testing.T) {
	tg := newTestGame(t, headlessSettings())
	tg.resetWithFoodAt(t, core.Point{X: 40, Y: 20})

	tg.keys.Push(input.ActionUp)
	for i := 0; i < 10; i++ {
		require.Equal(t, OutcomeNone, tg.Tick(), "tick %d", i)
	}
	assert.Equal(t, core.Point{X: 10, Y: 0}, tg.Snake().Head())

	assert.Equal(t, OutcomeGameOver, tg.Tick())
	assert.Equal(t, 1, tg.sounds.crash)
}

// TestTickSelfCollision verifies turning into the body ends the game
func TestTickSelfCollision(t *testing.T) {
	tg := newTestGame(t, headlessSettings())
	tg.resetWithFoodAt(t, core.Point{X: 40, Y: 20})
	tg.snake.body = []core.Point{{X: 10, Y: 10}, {X: 11, Y: 10}, {X: 11, Y: 11}, {X: 10, Y: 11}, {X: 10, Y: 10}}

	assert.Equal(t, OutcomeGameOver, tg.Tick())
}

// TestTickWinOnFullBoard verifies eating the last free cell ends the game as a win
func TestTickWinOnFullBoard(t *testing.T) {
	settings := headlessSettings()
	settings.Grid = core.NewGrid(5, 4)
	tg := newTestGame(t, settings)

	// 3x2 interior, fully covered once the head eats the food under it
	tg.session = NewSession(settings.Speed)
	tg.snake.body = []core.Point{{X: 1, Y: 1}, {X: 2, Y: 1}, {X: 3, Y: 1}, {X: 3, Y: 2}, {X: 2, Y: 2}, {X: 1, Y: 2}}
	tg.food.commit(core.Point{X: 1, Y: 1})

	assert.Equal(t, OutcomeWin, tg.Tick())
	assert.Equal(t, 1, tg.Session().Score)
	assert.Equal(t, 1, tg.sounds.win)
}

// TestRunGameOverFlow verifies a full run: start key, ticks paced by the interval, end screen
func TestRunGameOverFlow(t *testing.T) {
	settings := DefaultSettings()
	settings.Grid = core.NewGrid(30, 15)
	tg := newTestGame(t, settings)

	var logs bytes.Buffer
	log.SetOutput(&logs)
	defer log.SetOutput(io.Discard)

	tg.keys.Push(input.ActionNone) // any key starts
	tg.keys.Close()                // acknowledges the end screen

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	outcome, err := tg.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, OutcomeGameOver, outcome)

	// Head walks from x=10 to the border at x=29, detected on the next tick
	sleeps := tg.clock.Sleeps()
	assert.Len(t, sleeps, 19)
	for _, d := range sleeps {
		assert.GreaterOrEqual(t, d, settings.Speed.Floor)
	}
	assert.Equal(t, 19, tg.Session().Ticks)

	assert.True(t, tg.display.Contains("Game Over"))
	assert.True(t, tg.display.Contains("Press any key to exit"))
	assert.True(t, tg.display.Contains("Score: "))

	// Summary reports the ticks and the mocked elapsed time
	elapsed := tg.clock.Now().Sub(tg.Session().Started)
	assert.Contains(t, logs.String(), fmt.Sprintf("game over after 19 ticks in %v", elapsed))
}

// TestEndScreenOnMinimumBoard verifies prompts wrap rather than clip on a 12x12 board
func TestEndScreenOnMinimumBoard(t *testing.T) {
	settings := DefaultSettings()
	settings.Grid = core.NewGrid(12, 12)
	tg := newTestGame(t, settings)

	tg.keys.Push(input.ActionNone)
	tg.keys.Close()

	outcome, err := tg.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeGameOver, outcome)

	rows := make([]string, 0, 12)
	for y := 0; y < 12; y++ {
		if row := strings.TrimSpace(tg.display.Row(y)); row != "" {
			rows = append(rows, row)
		}
	}
	assert.Equal(t, []string{"Game Over", "Score: 0", "Press any", "key to exit"}, rows)

	// Title text is plain even though it contains the head glyph
	for x := 0; x < 12; x++ {
		for y := 0; y < 12; y++ {
			assert.Equal(t, render.RoleText, tg.display.RoleAt(x, y))
		}
	}
}

// TestStartScreenOnMinimumBoard verifies the start prompt is shown in full on a narrow board
func TestStartScreenOnMinimumBoard(t *testing.T) {
	settings := DefaultSettings()
	settings.Grid = core.NewGrid(12, 12)
	tg := newTestGame(t, settings)
	tg.keys.Push(input.ActionQuit)

	outcome, err := tg.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeQuit, outcome)
	assert.True(t, tg.display.Contains("Press any"))
	assert.True(t, tg.display.Contains("key to start"))
}

// TestRunQuitOnStartScreen verifies the quit key leaves before a session starts
func TestRunQuitOnStartScreen(t *testing.T) {
	tg := newTestGame(t, DefaultSettings())
	tg.keys.Push(input.ActionQuit)

	outcome, err := tg.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeQuit, outcome)
	assert.Nil(t, tg.Session())
	assert.True(t, tg.display.Contains("Press any key to start"))
}

// TestRunQuitMidGame verifies quit skips the end screen
func TestRunQuitMidGame(t *testing.T) {
	tg := newTestGame(t, headlessSettings())
	tg.keys.Push(input.ActionQuit)

	outcome, err := tg.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeQuit, outcome)
	assert.Empty(t, tg.clock.Sleeps())
	assert.False(t, tg.display.Contains("Game Over"))
}

// TestRunCancelledContext verifies cancellation during the pace sleep stops the loop
func TestRunCancelledContext(t *testing.T) {
	tg := newTestGame(t, headlessSettings())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome, err := tg.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, OutcomeQuit, outcome)
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "game over", OutcomeGameOver.String())
	assert.Equal(t, "win", OutcomeWin.String())
	assert.Equal(t, "Outcome(9)", Outcome(9).String())
}
