package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/term-snake/audio"
	"github.com/lixenwraith/term-snake/config"
	"github.com/lixenwraith/term-snake/core"
	"github.com/lixenwraith/term-snake/engine"
	"github.com/lixenwraith/term-snake/input"
	"github.com/lixenwraith/term-snake/render"
)

// newScreen is swapped for a simulation screen in tests
var newScreen = tcell.NewScreen

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// run plays one game and returns the process exit code
func run(ctx context.Context, args []string, stderr io.Writer) int {
	// Nothing may reach the terminal until logging is configured
	log.SetOutput(io.Discard)

	fs := flag.NewFlagSet("term-snake", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML config file (default $SNAKE_CONFIG)")
	keymapPath := fs.String("keymap", "", "TOML keymap replacing the config's [keys] and [runes]")
	debug := fs.Bool("debug", false, "write logs to "+logDir+"/"+logFileName)
	mute := fs.Bool("mute", false, "disable sound")
	noStart := fs.Bool("no-start", false, "skip the start screen")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	env, err := config.ReadEnv()
	if err != nil {
		fmt.Fprintf(stderr, "term-snake: %v\n", err)
		return 1
	}
	cfg, err := config.Load(env.ConfigPath(*configPath))
	if err != nil {
		fmt.Fprintf(stderr, "term-snake: %v\n", err)
		return 1
	}
	if err := cfg.ApplyEnv(env); err != nil {
		fmt.Fprintf(stderr, "term-snake: %v\n", err)
		return 1
	}
	if *debug {
		cfg.Log.Debug = true
	}
	if *mute {
		cfg.Audio.Enabled = false
	}
	if *noStart {
		cfg.Game.StartScreen = false
	}

	if logFile := setupLogging(cfg.Log.Debug); logFile != nil {
		defer logFile.Close()
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "term-snake: invalid configuration:\n%v\n", err)
		return 1
	}

	keys, err := keyTable(cfg, *keymapPath)
	if err != nil {
		fmt.Fprintf(stderr, "term-snake: %v\n", err)
		return 1
	}

	screen, err := newScreen()
	if err != nil {
		fmt.Fprintf(stderr, "term-snake: create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(stderr, "term-snake: initialize terminal: %v\n", err)
		return 1
	}
	core.SetResetHook(screen.Fini)
	defer core.RestoreTerminal()
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	settings := cfg.Settings()
	if w, h := screen.Size(); w < settings.Grid.Width || h < settings.Grid.Height {
		core.RestoreTerminal()
		fmt.Fprintf(stderr, "term-snake: terminal is %dx%d, board needs %dx%d\n",
			w, h, settings.Grid.Width, settings.Grid.Height)
		return 1
	}

	sounds := audio.NewSoundManager(cfg.AudioSettings())
	if err := sounds.Initialize(); err != nil {
		log.Printf("[AUDIO] [WARN] %v, continuing without sound", err)
	}
	defer sounds.Cleanup()

	display := render.NewTcellDisplay(screen, render.NewPalette())
	source := input.NewTcellSource(screen, keys)
	game := engine.NewGame(settings, display, source, engine.WithSounds(sounds))

	outcome, err := game.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, input.ErrClosed) {
		core.RestoreTerminal()
		fmt.Fprintf(stderr, "term-snake: %v\n", err)
		return 1
	}

	if s := game.Session(); s != nil {
		log.Printf("[GAME] [INFO] session %s: exit with %s, score %d", s.ID, outcome, s.Score)
	}
	return 0
}

// keyTable prefers a standalone keymap file over the config's bindings
func keyTable(cfg *config.Config, keymapPath string) (*input.KeyTable, error) {
	if keymapPath == "" {
		return cfg.KeyTable()
	}
	data, err := os.ReadFile(keymapPath)
	if err != nil {
		return nil, fmt.Errorf("read keymap: %w", err)
	}
	return input.LoadKeyConfig(data)
}
