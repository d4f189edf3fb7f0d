// Package report exports simulated matches for offline analysis.
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/mrsobakin/battleships/internal/match"
)

// MatchRow is a single finished match. Seat columns are 1-based.
type MatchRow struct {
	MatchID   string `parquet:"match_id,dict"`
	BoardSize int32  `parquet:"board_size"`
	Seed      int64  `parquet:"seed"`
	Winner    int32  `parquet:"winner"`
	Rounds    int32  `parquet:"rounds"`
	Turns     int32  `parquet:"turns"`

	Shots1  int32 `parquet:"shots_1"`
	Hits1   int32 `parquet:"hits_1"`
	Misses1 int32 `parquet:"misses_1"`

	Shots2  int32 `parquet:"shots_2"`
	Hits2   int32 `parquet:"hits_2"`
	Misses2 int32 `parquet:"misses_2"`
}

func RowFromRecord(r match.Record) MatchRow {
	v := r.Verdict
	one, two := v.Stats[0], v.Stats[1]

	return MatchRow{
		MatchID:   v.ID.String(),
		BoardSize: int32(v.BoardSize),
		Seed:      r.Seed,
		Winner:    int32(v.Winner.Number()),
		Rounds:    int32(v.Rounds),
		Turns:     int32(v.Turns),

		Shots1:  int32(one.ShotsTaken),
		Hits1:   int32(one.Hits),
		Misses1: int32(one.Misses),

		Shots2:  int32(two.ShotsTaken),
		Hits2:   int32(two.Hits),
		Misses2: int32(two.Misses),
	}
}

func Rows(records []match.Record) []MatchRow {
	rows := make([]MatchRow, len(records))
	for i, r := range records {
		rows[i] = RowFromRecord(r)
	}
	return rows
}

// WriteMatches writes rows to outPath through a temporary file.
func WriteMatches(outPath string, rows []MatchRow) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "match_row_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}
