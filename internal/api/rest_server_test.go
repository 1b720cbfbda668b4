package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/annel0/voxelcraft/internal/config"
	"github.com/annel0/voxelcraft/internal/game"
	"github.com/annel0/voxelcraft/internal/world/item"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type response struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func startServer(t *testing.T) (*RestServer, *game.Session) {
	t.Helper()
	cfg := config.Default()
	cfg.World.Width, cfg.World.Height, cfg.World.Depth = 16, 16, 16
	cfg.World.SeaLevel = 5
	cfg.Simulation.Mobs = map[string]int{}

	s, err := game.NewSession(context.Background(), cfg, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = s.Run(ctx, nil)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	rs := NewRestServer(Config{Session: s, Registerer: prometheus.NewRegistry()})
	return rs, s
}

func do(t *testing.T, rs *RestServer, method, path, body string) (int, response) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	rs.Handler().ServeHTTP(rec, req)

	var resp response
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec.Code, resp
}

func give(t *testing.T, s *game.Session, id item.ID, n int) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Exec(ctx, func(s *game.Session) { s.Give(id, n) }))
}

func TestHealth(t *testing.T) {
	rs, _ := startServer(t)

	rec := httptest.NewRecorder()
	rs.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rec.Header().Get("X-Trace-Id"))
}

func TestCraftingFlow(t *testing.T) {
	rs, s := startServer(t)
	give(t, s, item.Log, 1)

	code, resp := do(t, rs, http.MethodPost, "/api/crafting/grid", `{"cell":0,"slot":0}`)
	require.Equal(t, http.StatusOK, code, resp.Message)

	code, resp = do(t, rs, http.MethodGet, "/api/crafting", "")
	require.Equal(t, http.StatusOK, code)
	var view game.CraftingView
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	assert.Equal(t, "planks", view.Recipe)

	code, resp = do(t, rs, http.MethodPost, "/api/crafting/craft", "")
	require.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"item":"planks","count":4}`, string(resp.Data))

	code, resp = do(t, rs, http.MethodPost, "/api/crafting/craft", "")
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.False(t, resp.Success)

	code, resp = do(t, rs, http.MethodGet, "/api/inventory", "")
	require.Equal(t, http.StatusOK, code)
	var inv game.InventoryView
	require.NoError(t, json.Unmarshal(resp.Data, &inv))
	assert.Equal(t, item.Stack{Item: item.Planks, Count: 4}, inv.Slots[0])
}

func TestGridTake(t *testing.T) {
	rs, s := startServer(t)
	give(t, s, item.Planks, 2)

	code, _ := do(t, rs, http.MethodPost, "/api/crafting/grid", `{"cell":4,"slot":0}`)
	require.Equal(t, http.StatusOK, code)

	code, _ = do(t, rs, http.MethodDelete, "/api/crafting/grid/4", "")
	assert.Equal(t, http.StatusOK, code)
	code, _ = do(t, rs, http.MethodDelete, "/api/crafting/grid/4", "")
	assert.Equal(t, http.StatusUnprocessableEntity, code, "клетка уже пуста")
	code, _ = do(t, rs, http.MethodDelete, "/api/crafting/grid/abc", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestHotbar(t *testing.T) {
	rs, _ := startServer(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"valid", `{"slot":3}`, http.StatusOK},
		{"zero", `{"slot":0}`, http.StatusOK},
		{"out of hotbar", `{"slot":9}`, http.StatusUnprocessableEntity},
		{"missing", `{}`, http.StatusBadRequest},
		{"garbage", `not json`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := do(t, rs, http.MethodPost, "/api/hotbar", tt.body)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestWorldBlock(t *testing.T) {
	rs, _ := startServer(t)

	code, resp := do(t, rs, http.MethodGet, "/api/world/block?x=0&y=0&z=0", "")
	require.Equal(t, http.StatusOK, code)
	var view game.BlockView
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	assert.True(t, view.Inside)
	assert.Equal(t, "bedrock", view.Block)

	code, resp = do(t, rs, http.MethodGet, "/api/world/block?x=-1&y=0&z=0", "")
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	assert.False(t, view.Inside)

	code, _ = do(t, rs, http.MethodGet, "/api/world/block?x=1", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestClosedSession(t *testing.T) {
	rs, s := startServer(t)
	s.Close()

	code, _ := do(t, rs, http.MethodGet, "/api/inventory", "")
	assert.Equal(t, http.StatusServiceUnavailable, code)
}

func TestGridClear(t *testing.T) {
	rs, s := startServer(t)
	give(t, s, item.Planks, 2)

	for _, body := range []string{`{"cell":0,"slot":0}`, `{"cell":8,"slot":0}`} {
		code, resp := do(t, rs, http.MethodPost, "/api/crafting/grid", body)
		require.Equal(t, http.StatusOK, code, resp.Message)
	}

	code, resp := do(t, rs, http.MethodDelete, "/api/crafting/grid", "")
	require.Equal(t, http.StatusOK, code, resp.Message)
	var view game.CraftingView
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	for i, cell := range view.Grid {
		assert.True(t, cell.Empty(), "клетка %d пуста", i)
	}

	code, resp = do(t, rs, http.MethodGet, "/api/inventory", "")
	require.Equal(t, http.StatusOK, code)
	var inv game.InventoryView
	require.NoError(t, json.Unmarshal(resp.Data, &inv))
	assert.Equal(t, item.Stack{Item: item.Planks, Count: 2}, inv.Slots[0])
}

func TestStopBeforeStart(t *testing.T) {
	rs := NewRestServer(Config{Port: "127.0.0.1:0", Registerer: prometheus.NewRegistry()})
	require.NoError(t, rs.Stop(context.Background()))

	done := make(chan error, 1)
	go func() { done <- rs.Start() }()
	select {
	case err := <-done:
		assert.NoError(t, err, "остановленный сервер не начинает слушать")
	case <-time.After(2 * time.Second):
		t.Fatal("Start после Stop должен вернуться сразу")
	}
}
