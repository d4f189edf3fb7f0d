package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"iter"
	"math/rand"
	"os"
	"time"

	"github.com/mrsobakin/battleships/internal/config"
	"github.com/mrsobakin/battleships/internal/console"
	"github.com/mrsobakin/battleships/internal/game"
	"github.com/mrsobakin/battleships/internal/game/field"
	"github.com/mrsobakin/battleships/internal/game/placement"
	"github.com/mrsobakin/battleships/internal/match"
	"github.com/mrsobakin/battleships/internal/stats"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitInvalid = -1
)

type PlayConfig struct {
	StatsFile    string `env:"BATTLESHIP_STATS_FILE"    envDefault:"stats.txt"`
	StatsBackend string `env:"BATTLESHIP_STATS_BACKEND" envDefault:"text"`
	// Zero picks a time based seed.
	Seed     int64  `env:"BATTLESHIP_SEED"`
	Reveal   bool   `env:"BATTLESHIP_REVEAL"`
	LogLevel string `env:"BATTLESHIP_LOG_LEVEL" envDefault:"warn"`
	Color    bool   `env:"BATTLESHIP_COLOR"     envDefault:"true"`

	// Fleet of player 1, one `<length> <h|v> <row> <col>` line per ship.
	Layout     string `env:"BATTLESHIP_LAYOUT"`
	SaveLayout string `env:"BATTLESHIP_SAVE_LAYOUT"`
}

func ParsePlayConfig(fs *flag.FlagSet, args []string) (PlayConfig, error) {
	var cfg PlayConfig
	if err := config.ParseEnv(&cfg); err != nil {
		return PlayConfig{}, err
	}

	fs.StringVar(&cfg.StatsFile, "stats", cfg.StatsFile, "path to the stats file")
	fs.StringVar(&cfg.StatsBackend, "backend", cfg.StatsBackend, "stats backend: text or sqlite")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 for time based")
	fs.BoolVar(&cfg.Reveal, "reveal", cfg.Reveal, "show every ship on both boards")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.BoolVar(&cfg.Color, "color", cfg.Color, "colour the boards")
	fs.StringVar(&cfg.Layout, "layout", cfg.Layout, "place player 1's fleet from this file")
	fs.StringVar(&cfg.SaveLayout, "save-layout", cfg.SaveLayout, "write player 1's fleet to this file")
	if err := fs.Parse(args); err != nil {
		return PlayConfig{}, err
	}
	return cfg, nil
}

func saveLayout(path string, fleet *field.Fleet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := field.FormatPlacements(f, fleet.Placements()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// runPlay plays one interactive session and returns the process exit code.
func runPlay(cfg PlayConfig, in io.Reader, out, errOut io.Writer) int {
	logger, err := config.NewLogger(errOut, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return exitInvalid
	}

	ctx := context.Background()
	prompter := console.NewPrompter(in, out)

	fmt.Fprintln(out, "####### BATTLESHIPS #######")

	humans, err := prompter.PlayerCount()
	if err != nil {
		fmt.Fprintln(errOut, "Invalid input")
		logger.Error("player count", "err", err)
		return exitInvalid
	}

	size, err := prompter.GameMode()
	if errors.Is(err, console.ErrExit) {
		return exitOK
	}
	if err != nil {
		fmt.Fprintln(errOut, "Invalid input")
		logger.Error("game mode", "err", err)
		return exitInvalid
	}

	var layouts [2]iter.Seq[field.Placement]
	if cfg.Layout != "" {
		f, err := os.Open(cfg.Layout)
		if err != nil {
			fmt.Fprintln(errOut, "Invalid layout")
			logger.Error("open layout", "err", err)
			return exitInvalid
		}
		defer f.Close()

		layouts[game.SeatOne] = field.ParsePlacements(f)
	}

	store, closer, err := stats.Open(cfg.StatsBackend, cfg.StatsFile)
	if err != nil {
		logger.Error("open stats", "err", err)
		fmt.Fprintln(errOut, "\n!Error while handling stats file!")
		return exitFailure
	}
	defer closer.Close()

	loaded, err := store.Load(ctx)
	if err != nil {
		logger.Error("load stats", "err", err)
		fmt.Fprintln(errOut, "\n!Error while handling stats file!")
		return exitFailure
	}
	logger.Info("stats loaded", "backend", cfg.StatsBackend, "path", cfg.StatsFile)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	players := [2]game.Player{
		game.NewHuman(game.SeatOne, prompter),
		game.NewComputer(rng),
	}
	if humans == 2 {
		players[1] = game.NewHuman(game.SeatTwo, prompter)
	}

	catalog := field.DefaultCatalog()
	announcer := console.NewAnnouncer(out, console.NewRenderer(out, catalog, cfg.Color))

	m, err := match.New(match.Config{
		Size:    size,
		Players: players,
		Rand:    rng,
		Catalog: catalog,
		Stats:   loaded,
		Layouts: layouts,
		View:    announcer,
		Logger:  logger,
		Reveal:  cfg.Reveal,
	})
	if err != nil {
		fmt.Fprintln(errOut, "Out of Memory")
		logger.Error("new match", "err", err)
		return exitInvalid
	}

	if err := m.Setup(); err != nil {
		logger.Error("setup", "err", err)
		if errors.Is(err, placement.ErrLayout) {
			fmt.Fprintln(errOut, "Invalid layout")
			return exitInvalid
		}
		return exitFailure
	}

	if cfg.SaveLayout != "" {
		if err := saveLayout(cfg.SaveLayout, m.Fleet(game.SeatOne)); err != nil {
			logger.Error("save layout", "err", err)
			return exitFailure
		}
	}

	if cfg.Reveal {
		for _, seat := range []game.Seat{game.SeatOne, game.SeatTwo} {
			fmt.Fprintf(out, "\n<DEBUG> PLAYER%d:\n", seat.Number())
			announcer.RenderBoards(m.Board(seat), m.Board(seat.Other()), true)
		}
	}

	verdict, err := m.Play()
	if err != nil {
		logger.Error("play", "err", err)
		return exitFailure
	}

	if err := store.Save(ctx, verdict.Stats); err != nil {
		logger.Error("save stats", "err", err)
		fmt.Fprintln(errOut, "\n!Error while handling stats file!")
		return exitFailure
	}
	logger.Info("stats saved", "match", verdict.ID.String())

	fmt.Fprintln(out, "> Updated stats.")
	return exitOK
}
