// Package stats keeps per-seat shooting and game statistics across
// sessions.
package stats

import (
	"context"

	"github.com/mrsobakin/battleships/internal/game/field"
)

type Stats struct {
	Hits        int     `json:"hits"`
	ShotsTaken  int     `json:"shots_taken"`
	Misses      int     `json:"misses"`
	HitRatio    float64 `json:"hit_ratio"`
	GamesPlayed int     `json:"games_played"`
	GamesWon    int     `json:"games_won"`
	GamesLost   int     `json:"games_lost"`
}

// RecordShot counts a definitive shot. Already targeted shots are ignored.
func (s *Stats) RecordShot(result field.ShotResult) {
	switch result {
	case field.Hit:
		s.ShotsTaken++
		s.Hits++
	case field.Miss:
		s.ShotsTaken++
		s.Misses++
	}
}

func (s *Stats) updateRatio() {
	if s.ShotsTaken == 0 {
		s.HitRatio = 0
		return
	}
	s.HitRatio = float64(s.Hits) / float64(s.ShotsTaken)
}

// Pair holds stats for both seats, indexed by seat.
type Pair [2]Stats

// Finish records the end of a game won by seat `winner` and recomputes
// both hit ratios.
func (p *Pair) Finish(winner int) {
	loser := 1 - winner

	p[winner].GamesWon++
	p[loser].GamesLost++

	for i := range p {
		p[i].GamesPlayed++
		p[i].updateRatio()
	}
}

// Add folds the counters of other into p and recomputes the ratios.
func (p *Pair) Add(other Pair) {
	for i := range p {
		p[i].Hits += other[i].Hits
		p[i].ShotsTaken += other[i].ShotsTaken
		p[i].Misses += other[i].Misses
		p[i].GamesPlayed += other[i].GamesPlayed
		p[i].GamesWon += other[i].GamesWon
		p[i].GamesLost += other[i].GamesLost
		p[i].updateRatio()
	}
}

type Store interface {
	// Loads the persisted pair. A store that was never written
	// yields zero stats and no error.
	Load(ctx context.Context) (Pair, error)

	Save(ctx context.Context, p Pair) error
}
