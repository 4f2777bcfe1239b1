package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/input"
	"github.com/lixenwraith/term-snake/render"
)

// Outcome is how a tick or a run ended
type Outcome uint8

const (
	OutcomeNone     Outcome = iota // keep playing
	OutcomeQuit                    // quit key or cancellation
	OutcomeGameOver                // wall or self collision
	OutcomeWin                     // snake fills the board
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeQuit:
		return "quit"
	case OutcomeGameOver:
		return "game over"
	case OutcomeWin:
		return "win"
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

// Settings are the fixed parameters of a game
type Settings struct {
	Grid        core.Grid
	Speed       SpeedRule
	Glyphs      render.Glyphs
	StartScreen bool
}

// DefaultSettings returns the classic 80x25 board
func DefaultSettings() Settings {
	return Settings{
		Grid:        core.NewGrid(80, 25),
		Speed:       DefaultSpeedRule(),
		Glyphs:      render.DefaultGlyphs(),
		StartScreen: true,
	}
}

// Option customizes a Game
type Option func(*Game)

// WithClock replaces the wall clock used for pacing
func WithClock(c Clock) Option {
	return func(g *Game) { g.clock = c }
}

// WithSounds attaches audio cues
func WithSounds(s Sounds) Option {
	return func(g *Game) { g.sounds = s }
}

// WithRand sets the food placement source
func WithRand(rng *rand.Rand) Option {
	return func(g *Game) { g.rng = rng }
}

// Game is the loop controller: it owns the session, the snake and the food
type Game struct {
	settings Settings
	display  render.Display
	keys     input.Source
	clock    Clock
	sounds   Sounds
	rng      *rand.Rand

	snake   *Snake
	food    *Food
	session *Session
}

// NewGame wires a controller to its display and input
func NewGame(settings Settings, display render.Display, keys input.Source, opts ...Option) *Game {
	g := &Game{
		settings: settings,
		display:  display,
		keys:     keys,
		clock:    NewTimeProvider(),
		sounds:   silentSounds{},
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	g.snake = NewSnake(settings.Grid)
	g.food = NewFood(settings.Grid, g.rng)
	return g
}

// Snake returns the controlled snake
func (g *Game) Snake() *Snake { return g.snake }

// Food returns the food item
func (g *Game) Food() *Food { return g.food }

// Session returns the current session, nil before Reset
func (g *Game) Session() *Session { return g.session }

// Reset starts a new session: snake at the start row, food placed, border drawn
func (g *Game) Reset() error {
	g.session = NewSession(g.settings.Speed)
	g.session.Started = g.clock.Now()
	g.snake.Initialize()
	if err := g.food.Generate(g.snake.Body()); err != nil {
		return fmt.Errorf("place initial food: %w", err)
	}

	g.display.Clear()
	g.drawBorder()
	g.display.Show()
	return nil
}

// Tick advances the simulation one step: input, collision, consumption, move, render
// Returns OutcomeNone while the game continues
func (g *Game) Tick() Outcome {
	if g.pollInput() {
		return OutcomeQuit
	}

	// Collisions are checked on the pre-move head
	if g.snake.HasCollidedWithWall() || g.snake.HasCollidedWithItself() {
		log.Printf("[GAME] [INFO] session %s: collision at %v, score %d",
			g.session.ID, g.snake.Head(), g.session.Score)
		g.sounds.Crash()
		return OutcomeGameOver
	}

	if g.snake.Head() == g.food.Position() {
		g.snake.Grow()
		spedUp := g.session.RecordFood()
		if err := g.food.Generate(g.snake.Body()); err != nil {
			log.Printf("[GAME] [INFO] session %s: board full at score %d", g.session.ID, g.session.Score)
			g.sounds.Win()
			return OutcomeWin
		}
		g.sounds.Eat()
		if spedUp {
			g.sounds.SpeedUp()
			log.Printf("[GAME] [DEBUG] session %s: score %d, interval now %v",
				g.session.ID, g.session.Score, g.session.Interval)
		}
	}

	g.snake.Move(g.session.Direction)
	g.session.Ticks++
	g.render()
	return OutcomeNone
}

// pollInput drains every queued key and reports whether quit was requested
// The newest direction that does not reverse the tick-start heading wins
func (g *Game) pollInput() bool {
	start := g.session.Direction
	next, steer := start, false

	for g.keys.KeyAvailable() {
		k, err := g.keys.ReadKey(context.Background())
		if err != nil {
			break
		}
		if k.Action == input.ActionQuit {
			return true
		}
		if d, ok := k.Action.Direction(); ok && d != start.Opposite() {
			next, steer = d, true
		}
	}

	if steer {
		g.session.Steer(next)
	}
	return false
}

func (g *Game) render() {
	d := g.display
	d.Clear()
	g.drawBorder()
	render.WriteAt(d, 2, g.settings.Grid.Height-1, fmt.Sprintf("Score: %d", g.session.Score))
	g.snake.Draw(d, g.settings.Glyphs)
	g.food.Draw(d, g.settings.Glyphs)
	d.Show()
}

func (g *Game) drawBorder() {
	grid := g.settings.Grid
	render.DrawBorder(g.display, grid.Width, grid.Height, g.settings.Glyphs.Border)
}

// Run plays one full game: start screen, ticks paced by the session interval, end screen
// Quit returns at once; game over and win wait for a key before returning
func (g *Game) Run(ctx context.Context) (Outcome, error) {
	if g.settings.StartScreen {
		quit, err := g.startScreen(ctx)
		if err != nil {
			return OutcomeQuit, err
		}
		if quit {
			return OutcomeQuit, nil
		}
	}

	if err := g.Reset(); err != nil {
		return OutcomeNone, err
	}
	log.Printf("[GAME] [INFO] session %s: started on %dx%d board",
		g.session.ID, g.settings.Grid.Width, g.settings.Grid.Height)

	for {
		switch outcome := g.Tick(); outcome {
		case OutcomeNone:
		case OutcomeQuit:
			g.logSummary(outcome)
			return outcome, nil
		default:
			g.logSummary(outcome)
			return outcome, g.endScreen(ctx, outcome)
		}

		if err := g.clock.Sleep(ctx, g.session.Interval); err != nil {
			return OutcomeQuit, err
		}
	}
}

func (g *Game) logSummary(outcome Outcome) {
	s := g.session
	log.Printf("[GAME] [INFO] session %s: %s after %d ticks in %v, score %d",
		s.ID, outcome, s.Ticks, g.clock.Now().Sub(s.Started), s.Score)
}

// showCentered clears the board and writes wrapped lines around the center row
func (g *Game) showCentered(paragraphs ...string) {
	grid := g.settings.Grid
	g.display.Clear()
	render.WriteCenteredBlock(g.display, grid.Width, grid.Center().Y, paragraphs...)
	g.display.Show()
}

// startScreen waits for a key; quit keys leave without playing
func (g *Game) startScreen(ctx context.Context) (bool, error) {
	g.showCentered("Press any key to start")

	k, err := g.keys.ReadKey(ctx)
	if err != nil {
		return false, err
	}
	return k.Action == input.ActionQuit, nil
}

// endScreen shows the result with the final score and waits for any key
func (g *Game) endScreen(ctx context.Context, outcome Outcome) error {
	title := "Game Over"
	if outcome == OutcomeWin {
		title = "You Win"
	}
	g.showCentered(title, fmt.Sprintf("Score: %d", g.session.Score), "Press any key to exit")

	// Keys typed before the screen appeared don't dismiss it
	for g.keys.KeyAvailable() {
		if _, err := g.keys.ReadKey(ctx); err != nil {
			break
		}
	}

	if _, err := g.keys.ReadKey(ctx); err != nil && !errors.Is(err, input.ErrClosed) {
		return err
	}
	return nil
}
