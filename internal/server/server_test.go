package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/physlab/internal/sims"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := New(sims.DefaultRegistry(), nil, 60)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func wsURL(ts *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(ts.URL, "http") + path
}

func TestCatalogListsAllSimulations(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/sims")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var items []struct {
		Slug     string `json:"slug"`
		Name     string `json:"name"`
		Category string `json:"category"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 6)

	slugs := make(map[string]bool)
	for _, item := range items {
		assert.NotEmpty(t, item.Name)
		assert.NotEmpty(t, item.Category)
		slugs[item.Slug] = true
	}
	assert.True(t, slugs["three-body-problem"])
	assert.True(t, slugs["rlc-circuit"])
}

func TestSocketRejectsUnknownSim(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/ws?sim=no-such-sim")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSocketSendsConfigThenFrames(t *testing.T) {
	ts := newTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "/ws?sim=tides"), nil)
	require.NoError(t, err)
	defer conn.Close()

	var hello struct {
		Type   string `json:"type"`
		Config struct {
			Slug       string `json:"slug"`
			ParamSpecs []struct {
				Key string `json:"key"`
			} `json:"paramSpecs"`
		} `json:"config"`
	}
	require.NoError(t, conn.ReadJSON(&hello))
	require.Equal(t, "config", hello.Type)
	assert.Equal(t, "tides", hello.Config.Slug)
	assert.NotEmpty(t, hello.Config.ParamSpecs)

	var frame Frame
	require.NoError(t, conn.ReadJSON(&frame))
	assert.Equal(t, "frame", frame.Type)
	assert.Greater(t, frame.T, 0.0)
	assert.NotEmpty(t, frame.Frame)
	assert.NotEmpty(t, frame.Description)
	assert.Equal(t, "tide_height", frame.Probe)
}

func TestSocketAppliesParamUpdates(t *testing.T) {
	ts := newTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "/ws?sim=gas-laws"), nil)
	require.NoError(t, err)
	defer conn.Close()

	var hello json.RawMessage
	require.NoError(t, conn.ReadJSON(&hello))

	// Out-of-range values must be clamped server-side, so the description
	// reflects the temperature ceiling rather than the raw request.
	msg := ClientMessage{Type: "params", Params: map[string]float64{"temperature": 99999}}
	require.NoError(t, conn.WriteJSON(msg))

	found := false
	for i := 0; i < 30 && !found; i++ {
		var frame Frame
		require.NoError(t, conn.ReadJSON(&frame))
		found = strings.Contains(frame.Description, "1200 K")
	}
	assert.True(t, found, "expected frames to reflect the clamped temperature")
}

func TestSocketResetRestartsClock(t *testing.T) {
	ts := newTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "/ws?sim=rlc-circuit"), nil)
	require.NoError(t, err)
	defer conn.Close()

	var hello json.RawMessage
	require.NoError(t, conn.ReadJSON(&hello))

	var frame Frame
	for i := 0; i < 10; i++ {
		require.NoError(t, conn.ReadJSON(&frame))
	}
	before := frame.T

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "reset"}))

	// The clock restarts at the first frame after the reset is applied.
	restarted := false
	for i := 0; i < 30 && !restarted; i++ {
		require.NoError(t, conn.ReadJSON(&frame))
		restarted = frame.T < before
	}
	assert.True(t, restarted, "expected frame clock to restart after reset")
}

func TestSocketResize(t *testing.T) {
	ts := newTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(ts, "/ws?sim=diffusion"), nil)
	require.NoError(t, err)
	defer conn.Close()

	var hello json.RawMessage
	require.NoError(t, conn.ReadJSON(&hello))

	require.NoError(t, conn.WriteJSON(ClientMessage{Type: "resize", Cols: 40, Rows: 10}))

	// Frame text settles at the requested grid: 10 rows of 40 cells.
	settled := false
	for i := 0; i < 30 && !settled; i++ {
		var frame Frame
		require.NoError(t, conn.ReadJSON(&frame))
		lines := strings.Split(strings.TrimRight(frame.Frame, "\n"), "\n")
		settled = len(lines) == 10 && len([]rune(lines[0])) == 40
	}
	assert.True(t, settled, "expected frames at the resized grid")
}
