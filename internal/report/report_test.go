package report_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsobakin/battleships/internal/match"
	"github.com/mrsobakin/battleships/internal/report"
)

func TestWriteMatches(t *testing.T) {
	records, err := match.Simulate(context.Background(), match.SimConfig{
		Games:   6,
		Workers: 2,
		Size:    5,
		Seed:    9,
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "matches.parquet")
	require.NoError(t, report.WriteMatches(path, report.Rows(records)))

	rows, err := parquet.ReadFile[report.MatchRow](path)
	require.NoError(t, err)
	require.Len(t, rows, 6)

	for i, row := range rows {
		v := records[i].Verdict

		assert.Equal(t, v.ID.String(), row.MatchID)
		assert.Equal(t, int32(5), row.BoardSize)
		assert.Equal(t, int64(9+i), row.Seed)
		assert.Equal(t, int32(v.Winner.Number()), row.Winner)
		assert.Equal(t, int32(v.Turns), row.Turns)
		assert.Equal(t, row.Hits1+row.Misses1, row.Shots1)
		assert.Equal(t, row.Hits2+row.Misses2, row.Shots2)

		winnerHits := row.Hits1
		if row.Winner == 2 {
			winnerHits = row.Hits2
		}
		assert.Equal(t, int32(7), winnerHits)
	}
}

func TestWriteMatchesBadDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "matches.parquet")
	require.NoError(t, report.WriteMatches(path, nil))

	assert.Error(t, report.WriteMatches(filepath.Join(path, "nested.parquet"), nil))
}
