package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsobakin/battleships/internal/stats"
)

func newTestRouter(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	store := stats.NewTextStore(filepath.Join(t.TempDir(), "stats.txt"))
	router := gin.New()
	NewServer(store, 2, nil).RegisterEndpoints(router)
	return router
}

func do(router *gin.Engine, method, path string, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestRunMatch(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodPost, "/run_match", `{"board_size": 7, "seed": 42}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Seed    int64 `json:"seed"`
		Verdict struct {
			ID        string         `json:"id"`
			BoardSize int            `json:"board_size"`
			Winner    string         `json:"winner"`
			Loser     string         `json:"loser"`
			Turns     int            `json:"turns"`
			Stats     [2]stats.Stats `json:"stats"`
		} `json:"verdict"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, int64(42), resp.Seed)
	assert.Equal(t, 7, resp.Verdict.BoardSize)
	assert.NotEmpty(t, resp.Verdict.ID)
	assert.Contains(t, []string{"player 1", "player 2"}, resp.Verdict.Winner)
	assert.NotEqual(t, resp.Verdict.Winner, resp.Verdict.Loser)
	assert.Equal(t, 1, resp.Verdict.Stats[0].GamesPlayed)

	do(router, http.MethodPost, "/run_match", `{"board_size": 5}`)

	w = do(router, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var p stats.Pair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, 2, p[0].GamesPlayed)
	assert.Equal(t, 2, p[1].GamesPlayed)
	assert.Equal(t, 2, p[0].GamesWon+p[1].GamesWon)
}

func TestRunMatchErrors(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodPost, "/run_match", `{"board_size": "big"}`)
	assert.Equal(t, 422, w.Code)
	assert.Contains(t, w.Body.String(), ErrBadFormat)

	w = do(router, http.MethodPost, "/run_match", `{}`)
	assert.Equal(t, 422, w.Code)

	w = do(router, http.MethodPost, "/run_match", `{"board_size": 14}`)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), ErrBadConfig)
}

// A A . . C
// . . . . C
// B B . . C
// . . . . .
// . . . . .
const testLayout = "2 h 1 1\n2 h 3 1\n3 v 1 5\n"

func TestRunMatchScripted(t *testing.T) {
	router := newTestRouter(t)

	body := `{
		"board_size": 5,
		"seed": 3,
		"seats": [
			{"layout": "` + strings.ReplaceAll(testLayout, "\n", `\n`) + `", "targets": [[1,1],[1,2],[3,1],[3,2],[1,5],[2,5],[3,5]]},
			{"layout": "` + strings.ReplaceAll(testLayout, "\n", `\n`) + `", "targets": [[5,1],[5,2],[5,3],[5,4],[5,5],[4,1],[4,2]]}
		]
	}`

	w := do(router, http.MethodPost, "/run_match", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Verdict struct {
			Winner string         `json:"winner"`
			Stats  [2]stats.Stats `json:"stats"`
		} `json:"verdict"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, "player 1", resp.Verdict.Winner)
	assert.Equal(t, 7, resp.Verdict.Stats[0].Hits)
	assert.Equal(t, 7, resp.Verdict.Stats[0].ShotsTaken)
	assert.Zero(t, resp.Verdict.Stats[1].Hits)
}

func TestRunMatchScriptErrors(t *testing.T) {
	router := newTestRouter(t)

	for name, body := range map[string]string{
		"TouchingShips": `{"board_size": 5, "seats": [{"layout": "2 h 1 1\n2 h 2 1\n3 v 1 5\n"}]}`,
		"TooFewShips":   `{"board_size": 5, "seats": [{"layout": "2 h 1 1\n"}]}`,
		"TargetOffGrid": `{"board_size": 5, "seats": [{}, {"targets": [[6,1]]}]}`,
		"TargetsRunOut": `{"board_size": 5, "seats": [{"targets": [[1,1]]}, {"targets": [[1,1]]}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			w := do(router, http.MethodPost, "/run_match", body)
			assert.Equal(t, 400, w.Code, w.Body.String())
			assert.Contains(t, w.Body.String(), ErrBadConfig)
		})
	}

	w := do(router, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var p stats.Pair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, stats.Pair{}, p, "failed matches are not recorded")
}

func TestEmptyStats(t *testing.T) {
	w := do(newTestRouter(t), http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, w.Code)

	var p stats.Pair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, stats.Pair{}, p)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:4239", cfg.Addr)
	assert.Positive(t, cfg.Jobs)

	t.Setenv("BATTLESHIP_JOBS", "3")
	cfg, err = ParseConfig([]string{"0.0.0.0:80"})
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:80", cfg.Addr)
	assert.Equal(t, 3, cfg.Jobs)
}
