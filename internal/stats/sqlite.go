package stats

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS seat_stats (
	seat         INTEGER PRIMARY KEY,
	hits         INTEGER NOT NULL,
	shots_taken  INTEGER NOT NULL,
	misses       INTEGER NOT NULL,
	hit_ratio    REAL    NOT NULL,
	games_played INTEGER NOT NULL,
	games_won    INTEGER NOT NULL,
	games_lost   INTEGER NOT NULL
)`

// SQLiteStore keeps one row per seat in a SQLite database.
type SQLiteStore struct {
	sqlDB *sql.DB
}

// OpenSQLite opens the database at path and creates the stats table.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLiteStore{sqlDB: sqlDB}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *SQLiteStore) Load(ctx context.Context) (Pair, error) {
	if s == nil || s.sqlDB == nil {
		return Pair{}, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT seat, hits, shots_taken, misses, hit_ratio, games_played, games_won, games_lost
		 FROM seat_stats`,
	)
	if err != nil {
		return Pair{}, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var p Pair
	for rows.Next() {
		var seat int
		var st Stats
		if err := rows.Scan(
			&seat,
			&st.Hits,
			&st.ShotsTaken,
			&st.Misses,
			&st.HitRatio,
			&st.GamesPlayed,
			&st.GamesWon,
			&st.GamesLost,
		); err != nil {
			return Pair{}, fmt.Errorf("scan stats: %w", err)
		}
		if seat < 0 || seat >= len(p) {
			return Pair{}, fmt.Errorf("unexpected seat %d", seat)
		}
		p[seat] = st
	}

	if err := rows.Err(); err != nil {
		return Pair{}, fmt.Errorf("iterate stats: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) Save(ctx context.Context, p Pair) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for seat, st := range p {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO seat_stats (seat, hits, shots_taken, misses, hit_ratio, games_played, games_won, games_lost)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(seat) DO UPDATE SET
				hits = excluded.hits,
				shots_taken = excluded.shots_taken,
				misses = excluded.misses,
				hit_ratio = excluded.hit_ratio,
				games_played = excluded.games_played,
				games_won = excluded.games_won,
				games_lost = excluded.games_lost`,
			seat, st.Hits, st.ShotsTaken, st.Misses, st.HitRatio, st.GamesPlayed, st.GamesWon, st.GamesLost,
		)
		if err != nil {
			return fmt.Errorf("save seat %d: %w", seat, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit stats: %w", err)
	}
	return nil
}
