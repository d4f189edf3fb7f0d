package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsobakin/battleships/internal/game"
	"github.com/mrsobakin/battleships/internal/match"
	"github.com/mrsobakin/battleships/internal/stats"
)

func testPlayConfig(t *testing.T) PlayConfig {
	cfg, err := ParsePlayConfig(flag.NewFlagSet("play", flag.ContinueOnError), []string{
		"-stats", filepath.Join(t.TempDir(), "stats.txt"),
		"-seed", "17",
		"-color=false",
	})
	require.NoError(t, err)
	return cfg
}

// everyCell lists every coordinate of an n by n board, row by row.
func everyCell(n int) string {
	var sb strings.Builder
	for r := 1; r <= n; r++ {
		for c := 1; c <= n; c++ {
			fmt.Fprintf(&sb, "%d,%d\n", r, c)
		}
	}
	return sb.String()
}

func TestParsePlayConfig(t *testing.T) {
	t.Setenv("BATTLESHIP_STATS_BACKEND", "sqlite")

	cfg, err := ParsePlayConfig(flag.NewFlagSet("play", flag.ContinueOnError), []string{"-reveal"})
	require.NoError(t, err)

	assert.Equal(t, "stats.txt", cfg.StatsFile)
	assert.Equal(t, "sqlite", cfg.StatsBackend)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.Reveal)
	assert.True(t, cfg.Color)
}

func TestPlayAgainstComputer(t *testing.T) {
	cfg := testPlayConfig(t)

	// One human, easy mode, random placement, then shoot every cell.
	in := "1\n1\n1\n" + everyCell(5)

	var out, errOut bytes.Buffer
	code := runPlay(cfg, strings.NewReader(in), &out, &errOut)
	require.Equal(t, exitOK, code, errOut.String())

	assert.Contains(t, out.String(), "Game starts!")
	assert.Contains(t, out.String(), "** ROUND 1 STARTS")
	assert.Contains(t, out.String(), "> Updated stats.")
	assert.Contains(t, out.String(), " wins!")

	p, err := stats.NewTextStore(cfg.StatsFile).Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, p[0].GamesPlayed)
	assert.Equal(t, 1, p[1].GamesPlayed)
	assert.Equal(t, 1, p[0].GamesWon+p[1].GamesWon)
	assert.Equal(t, 7, max(p[0].Hits, p[1].Hits))

	// A second session adds to the same file.
	code = runPlay(cfg, strings.NewReader(in), io.Discard, io.Discard)
	require.Equal(t, exitOK, code)

	p, err = stats.NewTextStore(cfg.StatsFile).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, p[0].GamesPlayed)
}

func TestPlayLayout(t *testing.T) {
	dir := t.TempDir()
	layout := filepath.Join(dir, "fleet.txt")
	saved := filepath.Join(dir, "saved.txt")
	require.NoError(t, os.WriteFile(layout, []byte("# player 1\n2 h 1 1\n2 h 3 1\n\n3 v 1 5\n"), 0o644))

	t.Run("ReplaysPlayerOne", func(t *testing.T) {
		cfg := testPlayConfig(t)
		cfg.Layout = layout
		cfg.SaveLayout = saved

		// No placement prompt for player 1, straight to shooting.
		var out, errOut bytes.Buffer
		code := runPlay(cfg, strings.NewReader("1\n1\n"+everyCell(5)), &out, &errOut)
		require.Equal(t, exitOK, code, errOut.String())
		assert.NotContains(t, out.String(), "Player 1 do you want")

		data, err := os.ReadFile(saved)
		require.NoError(t, err)
		assert.Equal(t, "2 h 1 1\n2 h 3 1\n3 v 1 5\n", string(data))
	})

	t.Run("SavesRandomFleet", func(t *testing.T) {
		cfg := testPlayConfig(t)
		cfg.SaveLayout = filepath.Join(t.TempDir(), "random.txt")

		code := runPlay(cfg, strings.NewReader("1\n1\n1\n"+everyCell(5)), io.Discard, io.Discard)
		require.Equal(t, exitOK, code)

		data, err := os.ReadFile(cfg.SaveLayout)
		require.NoError(t, err)
		assert.Len(t, strings.Split(strings.TrimSpace(string(data)), "\n"), 3)
	})

	t.Run("TouchingShips", func(t *testing.T) {
		cfg := testPlayConfig(t)
		cfg.Layout = filepath.Join(t.TempDir(), "bad.txt")
		require.NoError(t, os.WriteFile(cfg.Layout, []byte("2 h 1 1\n2 h 2 1\n3 v 1 5\n"), 0o644))

		var errOut bytes.Buffer
		code := runPlay(cfg, strings.NewReader("1\n1\n"+everyCell(5)), io.Discard, &errOut)
		assert.Equal(t, exitInvalid, code)
		assert.Contains(t, errOut.String(), "Invalid layout")

		_, err := os.Stat(cfg.StatsFile)
		assert.True(t, os.IsNotExist(err), "nothing is persisted")
	})

	t.Run("MissingFile", func(t *testing.T) {
		cfg := testPlayConfig(t)
		cfg.Layout = filepath.Join(t.TempDir(), "absent.txt")

		code := runPlay(cfg, strings.NewReader("1\n1\n"), io.Discard, io.Discard)
		assert.Equal(t, exitInvalid, code)
	})
}

func TestPlayExitCodes(t *testing.T) {
	t.Run("MenuExit", func(t *testing.T) {
		cfg := testPlayConfig(t)
		code := runPlay(cfg, strings.NewReader("1\n0\n"), io.Discard, io.Discard)
		assert.Equal(t, exitOK, code)

		_, err := os.Stat(cfg.StatsFile)
		assert.True(t, os.IsNotExist(err), "nothing is persisted")
	})

	t.Run("TrailingGarbage", func(t *testing.T) {
		code := runPlay(testPlayConfig(t), strings.NewReader("2x\n"), io.Discard, io.Discard)
		assert.Equal(t, exitInvalid, code)
	})

	t.Run("NoInput", func(t *testing.T) {
		code := runPlay(testPlayConfig(t), strings.NewReader(""), io.Discard, io.Discard)
		assert.Equal(t, exitInvalid, code)
	})

	t.Run("InputEndsMidGame", func(t *testing.T) {
		cfg := testPlayConfig(t)
		code := runPlay(cfg, strings.NewReader("1\n1\n1\n1,1\n"), io.Discard, io.Discard)
		assert.Equal(t, exitFailure, code)

		_, err := os.Stat(cfg.StatsFile)
		assert.True(t, os.IsNotExist(err), "no partial state is persisted")
	})

	t.Run("BrokenStatsPath", func(t *testing.T) {
		cfg := testPlayConfig(t)
		blocker := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(blocker, nil, 0o644))
		cfg.StatsFile = filepath.Join(blocker, "stats.txt")

		code := runPlay(cfg, strings.NewReader("1\n1\n1\n"+everyCell(5)), io.Discard, io.Discard)
		assert.Equal(t, exitFailure, code)
	})
}

func TestParseSimulateConfig(t *testing.T) {
	cfg, err := ParseSimulateConfig(flag.NewFlagSet("simulate", flag.ContinueOnError), []string{"-games", "3", "-size", "7"})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Games)
	assert.Equal(t, 7, cfg.Size)

	_, err = ParseSimulateConfig(flag.NewFlagSet("simulate", flag.ContinueOnError), []string{"-games", "0"})
	assert.Error(t, err)
}

func TestRunSimulate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "matches.parquet")

	var buf bytes.Buffer
	err := runSimulate(context.Background(), SimulateConfig{
		Games:    8,
		Workers:  2,
		Size:     7,
		Seed:     1,
		Out:      out,
		LogLevel: "error",
	}, &buf, io.Discard)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "Games: 8\n")
	_, err = os.Stat(out)
	assert.NoError(t, err)

	err = runSimulate(context.Background(), SimulateConfig{Games: 1, Size: 20, LogLevel: "error"}, io.Discard, io.Discard)
	assert.Error(t, err)
}

func TestProgressModel(t *testing.T) {
	updates := make(chan tea.Msg)
	cancelled := false
	m := newProgressModel(2, updates, func() { cancelled = true })

	record := match.Record{Seed: 4, Verdict: match.Verdict{Winner: game.SeatTwo, Turns: 30}}

	next, cmd := m.Update(matchDoneMsg(record))
	assert.NotNil(t, cmd)
	m = next.(progressModel)

	view := m.View()
	assert.Contains(t, view, "Matches:        1/2")
	assert.Contains(t, view, "Player 2 wins:  1")
	assert.Contains(t, view, "Seed 4: player 2 won in 30 turns")

	next, cmd = m.Update(simulationDoneMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	m = next.(progressModel)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.True(t, cancelled)
}
