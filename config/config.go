// Package config loads game settings from defaults, a TOML file and the environment.
//
// Precedence, lowest first: Default, the TOML file, .env entries, process
// environment, command-line flags (applied by the caller).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/term-snake/audio"
	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/engine"
	"github.com/lixenwraith/term-snake/input"
	"github.com/lixenwraith/term-snake/render"
)

// MinBoardSize fits the starting body at (8..10, 10) inside the border
const MinBoardSize = 12

// Environment variable names
const (
	EnvWidth   = "SNAKE_WIDTH"
	EnvHeight  = "SNAKE_HEIGHT"
	EnvBaseMs  = "SNAKE_BASE_MS"
	EnvStepMs  = "SNAKE_STEP_MS"
	EnvFloorMs = "SNAKE_FLOOR_MS"
	EnvMute    = "SNAKE_MUTE"
	EnvDebug   = "SNAKE_DEBUG"
	EnvConfig  = "SNAKE_CONFIG"
)

// Config is the on-disk and in-memory configuration
type Config struct {
	Board  BoardConfig       `toml:"board"`
	Speed  SpeedConfig       `toml:"speed"`
	Glyphs GlyphConfig       `toml:"glyphs"`
	Audio  AudioConfig       `toml:"audio"`
	Game   GameConfig        `toml:"game"`
	Keys   map[string]string `toml:"keys"`
	Runes  map[string]string `toml:"runes"`
	Log    LogConfig         `toml:"log"`
}

type BoardConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// SpeedConfig holds tick timings in milliseconds
type SpeedConfig struct {
	BaseMs  int `toml:"base_ms"`
	StepMs  int `toml:"step_ms"`
	FloorMs int `toml:"floor_ms"`
	Every   int `toml:"every"`
}

// GlyphConfig holds single-character strings for each board element
type GlyphConfig struct {
	Head   string `toml:"head"`
	Body   string `toml:"body"`
	Food   string `toml:"food"`
	Border string `toml:"border"`
}

type AudioConfig struct {
	Enabled bool    `toml:"enabled"`
	Volume  float64 `toml:"volume"`
}

type GameConfig struct {
	StartScreen bool `toml:"start_screen"`
}

type LogConfig struct {
	Debug bool `toml:"debug"`
}

// Default returns the classic game configuration
func Default() *Config {
	return &Config{
		Board: BoardConfig{Width: 80, Height: 25},
		Speed: SpeedConfig{BaseMs: 100, StepMs: 10, FloorMs: 50, Every: 5},
		Glyphs: GlyphConfig{
			Head:   "O",
			Body:   "■",
			Food:   "■",
			Border: "▒",
		},
		Audio: AudioConfig{Enabled: true, Volume: 0.5},
		Game:  GameConfig{StartScreen: true},
	}
}

// Load reads a TOML file over the defaults. An empty path returns Default.
// Unknown keys are rejected so typos surface at startup.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.decode(data); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	log.Printf("[CONFIG] [INFO] loaded %s", path)
	return cfg, nil
}

// Parse decodes TOML data over the defaults
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(data []byte) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return fmt.Errorf("line %d column %d: %w", row, col, err)
		}
		return err
	}
	return nil
}

// Env resolves variables from the process environment, falling back to .env files
type Env struct {
	file map[string]string
}

// ReadEnv reads dotenv files without touching the process environment.
// Missing files are skipped; with no arguments ".env" is tried.
func ReadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}

	env := Env{file: make(map[string]string)}
	for _, f := range files {
		vars, err := godotenv.Read(f)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Env{}, fmt.Errorf("read %s: %w", f, err)
		}
		for k, v := range vars {
			if _, seen := env.file[k]; !seen {
				env.file[k] = v
			}
		}
	}
	return env, nil
}

// Lookup returns the process value if set, else the dotenv value
func (e Env) Lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok {
		return v, true
	}
	v, ok := e.file[key]
	return v, ok
}

// ConfigPath returns flagValue when set, else SNAKE_CONFIG
func (e Env) ConfigPath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	v, _ := e.Lookup(EnvConfig)
	return v
}

// ApplyEnv overlays SNAKE_* variables onto the configuration
func (c *Config) ApplyEnv(env Env) error {
	ints := []struct {
		key string
		dst *int
	}{
		{EnvWidth, &c.Board.Width},
		{EnvHeight, &c.Board.Height},
		{EnvBaseMs, &c.Speed.BaseMs},
		{EnvStepMs, &c.Speed.StepMs},
		{EnvFloorMs, &c.Speed.FloorMs},
	}
	for _, v := range ints {
		raw, ok := env.Lookup(v.key)
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", v.key, err)
		}
		*v.dst = n
	}

	if raw, ok := env.Lookup(EnvMute); ok && raw != "" {
		mute, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMute, err)
		}
		if mute {
			c.Audio.Enabled = false
		}
	}
	if raw, ok := env.Lookup(EnvDebug); ok && raw != "" {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Log.Debug = c.Log.Debug || debug
	}
	return nil
}

// Validate reports every invalid setting at once
func (c *Config) Validate() error {
	var errs []error

	if c.Board.Width < MinBoardSize || c.Board.Height < MinBoardSize {
		errs = append(errs, fmt.Errorf("board %dx%d is smaller than %dx%d",
			c.Board.Width, c.Board.Height, MinBoardSize, MinBoardSize))
	}
	if c.Speed.BaseMs <= 0 {
		errs = append(errs, fmt.Errorf("speed.base_ms must be positive, got %d", c.Speed.BaseMs))
	}
	if c.Speed.StepMs <= 0 {
		errs = append(errs, fmt.Errorf("speed.step_ms must be positive, got %d", c.Speed.StepMs))
	}
	if c.Speed.FloorMs <= 0 {
		errs = append(errs, fmt.Errorf("speed.floor_ms must be positive, got %d", c.Speed.FloorMs))
	} else if c.Speed.FloorMs > c.Speed.BaseMs {
		errs = append(errs, fmt.Errorf("speed.floor_ms %d exceeds base_ms %d", c.Speed.FloorMs, c.Speed.BaseMs))
	}
	if c.Speed.Every < 0 {
		errs = append(errs, fmt.Errorf("speed.every must not be negative, got %d", c.Speed.Every))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be within [0, 1], got %g", c.Audio.Volume))
	}

	glyphs := []struct{ name, value string }{
		{"head", c.Glyphs.Head},
		{"body", c.Glyphs.Body},
		{"food", c.Glyphs.Food},
		{"border", c.Glyphs.Border},
	}
	for _, g := range glyphs {
		if utf8.RuneCountInString(g.value) != 1 {
			errs = append(errs, fmt.Errorf("glyphs.%s must be a single character, got %q", g.name, g.value))
		}
	}

	if _, err := c.KeyTable(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Settings converts the configuration into game parameters; call Validate first
func (c *Config) Settings() engine.Settings {
	return engine.Settings{
		Grid: core.NewGrid(c.Board.Width, c.Board.Height),
		Speed: engine.SpeedRule{
			Base:  ms(c.Speed.BaseMs),
			Step:  ms(c.Speed.StepMs),
			Floor: ms(c.Speed.FloorMs),
			Every: c.Speed.Every,
		},
		Glyphs: render.Glyphs{
			Head:   firstRune(c.Glyphs.Head),
			Body:   firstRune(c.Glyphs.Body),
			Food:   firstRune(c.Glyphs.Food),
			Border: firstRune(c.Glyphs.Border),
		},
		StartScreen: c.Game.StartScreen,
	}
}

// AudioSettings returns the speaker configuration
func (c *Config) AudioSettings() *audio.AudioConfig {
	ac := audio.DefaultAudioConfig()
	ac.Enabled = c.Audio.Enabled
	ac.MasterVolume = c.Audio.Volume
	return ac
}

// KeyTable merges [keys] and [runes] over the default bindings
func (c *Config) KeyTable() (*input.KeyTable, error) {
	return input.ParseBindings(c.Keys, c.Runes)
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	return r
}
