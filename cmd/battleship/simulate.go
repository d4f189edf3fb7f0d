package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mrsobakin/battleships/internal/config"
	"github.com/mrsobakin/battleships/internal/match"
	"github.com/mrsobakin/battleships/internal/report"
)

type SimulateConfig struct {
	Games    int    `env:"BATTLESHIP_SIM_GAMES"   envDefault:"100"`
	Workers  int    `env:"BATTLESHIP_SIM_WORKERS"`
	Size     int    `env:"BATTLESHIP_SIM_SIZE"    envDefault:"10"`
	Seed     int64  `env:"BATTLESHIP_SEED"`
	Out      string `env:"BATTLESHIP_SIM_OUT"`
	TUI      bool   `env:"BATTLESHIP_SIM_TUI"`
	LogLevel string `env:"BATTLESHIP_LOG_LEVEL"   envDefault:"warn"`
}

func ParseSimulateConfig(fs *flag.FlagSet, args []string) (SimulateConfig, error) {
	var cfg SimulateConfig
	if err := config.ParseEnv(&cfg); err != nil {
		return SimulateConfig{}, err
	}

	fs.IntVar(&cfg.Games, "games", cfg.Games, "number of matches to play")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "matches played at once, 0 for one per CPU")
	fs.IntVar(&cfg.Size, "size", cfg.Size, "board size")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "seed of the first match, 0 for time based")
	fs.StringVar(&cfg.Out, "out", cfg.Out, "parquet file to export matches to")
	fs.BoolVar(&cfg.TUI, "tui", cfg.TUI, "show live progress")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	if err := fs.Parse(args); err != nil {
		return SimulateConfig{}, err
	}

	if cfg.Games <= 0 {
		return SimulateConfig{}, fmt.Errorf("games must be positive, got %d", cfg.Games)
	}
	return cfg, nil
}

type summary struct {
	games int
	wins  [2]int
	turns int
}

func (s *summary) add(r match.Record) {
	s.games++
	s.wins[r.Verdict.Winner]++
	s.turns += r.Verdict.Turns
}

func (s *summary) meanTurns() float64 {
	if s.games == 0 {
		return 0
	}
	return float64(s.turns) / float64(s.games)
}

func (s *summary) String() string {
	return fmt.Sprintf("Games: %d\nPlayer 1 wins: %d\nPlayer 2 wins: %d\nMean turns: %.1f\n",
		s.games, s.wins[0], s.wins[1], s.meanTurns())
}

func runSimulate(ctx context.Context, cfg SimulateConfig, out, errOut io.Writer) error {
	logger, err := config.NewLogger(errOut, cfg.LogLevel)
	if err != nil {
		return err
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}

	simCfg := match.SimConfig{
		Games:   cfg.Games,
		Workers: cfg.Workers,
		Size:    cfg.Size,
		Seed:    cfg.Seed,
		Logger:  logger,
	}

	var records []match.Record
	if cfg.TUI {
		records, err = simulateWithProgress(ctx, simCfg, out)
	} else {
		records, err = match.Simulate(ctx, simCfg)
	}
	if err != nil {
		return err
	}

	var sum summary
	for _, r := range records {
		sum.add(r)
	}
	fmt.Fprint(out, sum.String())

	logger.Info("simulation finished", "games", sum.games, "seed", cfg.Seed)

	if cfg.Out != "" {
		if err := report.WriteMatches(cfg.Out, report.Rows(records)); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", cfg.Out)
	}

	return nil
}

type simulationResult struct {
	records []match.Record
	err     error
}

func simulateWithProgress(ctx context.Context, simCfg match.SimConfig, out io.Writer) ([]match.Record, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates := make(chan tea.Msg)
	send := func(msg tea.Msg) {
		select {
		case updates <- msg:
		case <-ctx.Done():
		}
	}

	simCfg.OnResult = func(r match.Record) {
		send(matchDoneMsg(r))
	}

	results := make(chan simulationResult, 1)
	go func() {
		records, err := match.Simulate(ctx, simCfg)
		results <- simulationResult{records, err}
		send(simulationDoneMsg{err})
	}()

	p := tea.NewProgram(newProgressModel(simCfg.Games, updates, cancel), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		cancel()
		<-results
		return nil, fmt.Errorf("progress view: %w", err)
	}

	res := <-results
	return res.records, res.err
}
