package match

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"math/rand"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mrsobakin/battleships/internal/game"
	"github.com/mrsobakin/battleships/internal/game/field"
)

type SimConfig struct {
	Games   int
	Workers int
	Size    int
	// Match i is seeded with Seed+i.
	Seed int64

	Logger *slog.Logger

	// Called once per finished match. Calls never overlap.
	OnResult func(Record)
}

type Record struct {
	Seed    int64
	Verdict Verdict
}

// Automated plays one computer against computer match on a board of the
// given size, fully determined by seed.
func Automated(size int, seed int64, logger *slog.Logger) (Verdict, error) {
	return Replay(size, seed, [2]SeatScript{}, logger)
}

// SeatScript pins down part of a seat in an automated match. Without a
// layout the fleet is placed at random, without targets the seat fires
// at random cells.
type SeatScript struct {
	Layout  iter.Seq[field.Placement]
	Targets []field.Coord
}

// Replay is Automated with scripted seats. A seat that runs out of targets
// before the match is over fails it with game.ErrScriptExhausted, an
// unusable layout with placement.ErrLayout.
func Replay(size int, seed int64, seats [2]SeatScript, logger *slog.Logger) (Verdict, error) {
	rng := rand.New(rand.NewSource(seed))
	cpu := game.NewComputer(rng)

	players := [2]game.Player{cpu, cpu}
	var layouts [2]iter.Seq[field.Placement]
	for i, s := range seats {
		if len(s.Targets) > 0 {
			players[i] = &game.Scripted{Targets: s.Targets}
		}
		layouts[i] = s.Layout
	}

	m, err := New(Config{
		Size:    size,
		Players: players,
		Rand:    rng,
		Catalog: field.DefaultCatalog(),
		Layouts: layouts,
		Logger:  logger,
	})
	if err != nil {
		return Verdict{}, err
	}

	return m.Run()
}

// Simulate runs cfg.Games automated matches on up to cfg.Workers
// goroutines. Records are returned in match order.
func Simulate(ctx context.Context, cfg SimConfig) ([]Record, error) {
	if _, err := field.NewBoard(cfg.Size); err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	records := make([]Record, max(cfg.Games, 0))

	var mu sync.Mutex
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for i := range records {
		seed := cfg.Seed + int64(i)

		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			verdict, err := Automated(cfg.Size, seed, cfg.Logger)
			if err != nil {
				return fmt.Errorf("match %d: %w", i, err)
			}

			records[i] = Record{seed, verdict}

			if cfg.OnResult != nil {
				mu.Lock()
				cfg.OnResult(records[i])
				mu.Unlock()
			}

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}
