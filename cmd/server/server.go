package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/semaphore"

	"github.com/mrsobakin/battleships/internal/game"
	"github.com/mrsobakin/battleships/internal/game/field"
	"github.com/mrsobakin/battleships/internal/game/placement"
	"github.com/mrsobakin/battleships/internal/match"
	"github.com/mrsobakin/battleships/internal/stats"
)

const (
	ErrBadFormat string = "bad_format"
	ErrBadConfig string = "bad_config"
	ErrUnknown   string = "unknown"
)

type server struct {
	store  stats.Store
	jobs   *semaphore.Weighted
	logger *slog.Logger

	// Serializes load-add-save of the stats store.
	statsMu sync.Mutex
}

func NewServer(store stats.Store, jobs int, logger *slog.Logger) *server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &server{
		store:  store,
		jobs:   semaphore.NewWeighted(int64(max(jobs, 1))),
		logger: logger,
	}
}

func (s *server) recordStats(c *gin.Context, p stats.Pair) error {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	total, err := s.store.Load(c)
	if err != nil {
		return err
	}

	total.Add(p)

	return s.store.Save(c, total)
}

type seatParams struct {
	// One `<length> <h|v> <row> <col>` line per ship, 1-based.
	Layout string `json:"layout"`
	// 1-based [row, col] pairs, fired in order.
	Targets [][2]int `json:"targets"`
}

func badConfig(c *gin.Context, err error) {
	c.JSON(400, map[string]any{
		"error":   ErrBadConfig,
		"details": err.Error(),
	})
}

func seatScripts(b *field.Board, seats [2]seatParams) ([2]match.SeatScript, error) {
	var scripts [2]match.SeatScript

	for i, seat := range seats {
		if seat.Layout != "" {
			scripts[i].Layout = field.ParsePlacements(strings.NewReader(seat.Layout))
		}

		for _, t := range seat.Targets {
			at := field.Coord{Row: t[0] - 1, Col: t[1] - 1}
			if err := field.CheckTarget(b, at); err != nil {
				return scripts, fmt.Errorf("%s: %w", game.Seat(i), err)
			}
			scripts[i].Targets = append(scripts[i].Targets, at)
		}
	}

	return scripts, nil
}

func (s *server) handleMatch(c *gin.Context) {
	var params struct {
		BoardSize int    `json:"board_size" binding:"required"`
		Seed      *int64 `json:"seed"`

		// Seats without a layout or targets are played by the computer.
		Seats [2]seatParams `json:"seats"`
	}

	if !tryBindParams(c, &params) {
		return
	}

	board, err := field.NewBoard(params.BoardSize)
	if err != nil {
		badConfig(c, err)
		return
	}

	scripts, err := seatScripts(board, params.Seats)
	if err != nil {
		badConfig(c, err)
		return
	}

	seed := time.Now().UnixNano()
	if params.Seed != nil {
		seed = *params.Seed
	}

	if err := s.jobs.Acquire(c, 1); err != nil {
		return
	}
	defer s.jobs.Release(1)

	verdict, err := match.Replay(params.BoardSize, seed, scripts, s.logger)
	if errors.Is(err, placement.ErrLayout) || errors.Is(err, game.ErrScriptExhausted) {
		badConfig(c, err)
		return
	}
	if err == nil {
		err = s.recordStats(c, verdict.Stats)
	}

	if err != nil {
		s.logger.Error("run match", "err", err)
		c.JSON(500, map[string]any{
			"error":   ErrUnknown,
			"details": err.Error(),
		})
		return
	}

	c.JSON(200, map[string]any{
		"seed":    seed,
		"verdict": verdict,
	})
}

func (s *server) handleStats(c *gin.Context) {
	s.statsMu.Lock()
	p, err := s.store.Load(c)
	s.statsMu.Unlock()

	if err != nil {
		c.JSON(500, map[string]any{
			"error":   ErrUnknown,
			"details": err.Error(),
		})
		return
	}

	c.JSON(200, p)
}

func (s *server) RegisterEndpoints(e *gin.Engine) {
	e.POST("/run_match", s.handleMatch)
	e.GET("/stats", s.handleStats)
}
