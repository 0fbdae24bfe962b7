package rest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/metrics"
	"github.com/rocketscienceinc/tictactoe-history/internal/repository"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

type testServer struct {
	t   *testing.T
	srv *httptest.Server
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	reg := prometheus.NewRegistry()
	manager := usecase.NewSessionManager(logger, repository.NewMemorySessionRepository(), metrics.New(reg))

	srv := httptest.NewServer(NewRouter(logger, manager, promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	t.Cleanup(srv.Close)

	return &testServer{t: t, srv: srv}
}

func (that *testServer) do(method, path string) (int, Response) {
	that.t.Helper()

	req, err := http.NewRequest(method, that.srv.URL+path, nil)
	require.NoError(that.t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(that.t, err)
	defer resp.Body.Close()

	var body Response
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(that.t, json.NewDecoder(resp.Body).Decode(&body))
	}

	return resp.StatusCode, body
}

func (that *testServer) newGame() string {
	that.t.Helper()

	status, body := that.do(http.MethodPost, "/games")
	require.Equal(that.t, http.StatusCreated, status)
	require.NotNil(that.t, body.Game)
	require.NotEmpty(that.t, body.Game.ID)

	return body.Game.ID
}

func TestPing(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.srv.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "pong", string(data))
}

func TestGames(t *testing.T) {
	t.Run("Create and get", func(t *testing.T) {
		ts := newTestServer(t)
		id := ts.newGame()

		status, body := ts.do(http.MethodGet, "/games/"+id)

		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Next player: X", body.Game.Status)
		assert.Equal(t, 1, body.Game.Length)
		assert.Equal(t, "Go to game start", body.Game.Moves[0].Label)
	})

	t.Run("Unknown game", func(t *testing.T) {
		ts := newTestServer(t)

		status, body := ts.do(http.MethodGet, "/games/nope")

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "session not found", body.Error)
	})

	t.Run("Play to a win", func(t *testing.T) {
		// Given: a new game
		ts := newTestServer(t)
		id := ts.newGame()

		// When: X@0, O@4, X@1, O@5, X@2 are clicked
		var body Response
		for _, cell := range []string{"0", "4", "1", "5", "2"} {
			var status int
			status, body = ts.do(http.MethodPost, "/games/"+id+"/cells/"+cell)
			require.Equal(t, http.StatusOK, status)
			require.Empty(t, body.Rejected)
		}

		// Then: X has won on the top row
		assert.Equal(t, "Winner: X", body.Game.Status)
		assert.Equal(t, []int{0, 1, 2}, body.Game.WinLine)
		assert.True(t, body.Game.Squares[2].Highlight)

		// And: a further click is rejected without changing the game
		status, rejected := ts.do(http.MethodPost, "/games/"+id+"/cells/8")
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, rejected.Rejected, "game is already finished")
		assert.Equal(t, 5, rejected.Game.Cursor)
		assert.Empty(t, rejected.Game.Squares[8].Value)
	})

	t.Run("Jump and branch", func(t *testing.T) {
		ts := newTestServer(t)
		id := ts.newGame()
		for _, cell := range []string{"0", "4", "1"} {
			ts.do(http.MethodPost, "/games/"+id+"/cells/"+cell)
		}

		status, body := ts.do(http.MethodPost, "/games/"+id+"/history/1")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, 1, body.Game.Cursor)
		assert.Equal(t, 4, body.Game.Length)

		_, body = ts.do(http.MethodPost, "/games/"+id+"/cells/8")
		assert.Equal(t, 3, body.Game.Length)
		assert.Equal(t, "O", body.Game.Squares[8].Value)
		assert.Empty(t, body.Game.Squares[4].Value)
	})

	t.Run("Out of range values are rejected", func(t *testing.T) {
		ts := newTestServer(t)
		id := ts.newGame()

		status, body := ts.do(http.MethodPost, "/games/"+id+"/cells/9")
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, body.Rejected, "invalid cell index")

		status, body = ts.do(http.MethodPost, "/games/"+id+"/history/3")
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, body.Rejected, "invalid move number")
		assert.Equal(t, 0, body.Game.Cursor)
	})

	t.Run("Non-integer path values are bad requests", func(t *testing.T) {
		ts := newTestServer(t)
		id := ts.newGame()

		status, _ := ts.do(http.MethodPost, "/games/"+id+"/cells/center")
		assert.Equal(t, http.StatusBadRequest, status)

		status, _ = ts.do(http.MethodPost, "/games/"+id+"/history/start")
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Reset and delete", func(t *testing.T) {
		ts := newTestServer(t)
		id := ts.newGame()
		ts.do(http.MethodPost, "/games/"+id+"/cells/0")

		status, body := ts.do(http.MethodPost, "/games/"+id+"/reset")
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, 1, body.Game.Length)

		status, _ = ts.do(http.MethodDelete, "/games/"+id)
		assert.Equal(t, http.StatusNoContent, status)

		status, _ = ts.do(http.MethodGet, "/games/"+id)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	id := ts.newGame()
	ts.do(http.MethodPost, "/games/"+id+"/cells/0")
	ts.do(http.MethodPost, "/games/"+id+"/cells/0")

	resp, err := http.Get(ts.srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	exposition := string(data)
	assert.True(t, strings.Contains(exposition, "tictactoe_moves_played_total 1"), exposition)
	assert.Contains(t, exposition, `tictactoe_moves_rejected_total{reason="cell_occupied"} 1`)
	assert.Contains(t, exposition, "tictactoe_sessions_created_total 1")
}
