package server

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sihoon-0077/lotto-pattern2242289/internal/history"
	"github.com/sihoon-0077/lotto-pattern2242289/internal/modules/generator"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	store := history.NewStore([]history.Provider{
		history.NewFileProvider("bundled", "testdata/missing.json", false),
	}, nil, 1100, zerolog.Nop())
	store.Load()

	svc := generator.NewService(store, generator.Options{
		Attempts:      50,
		Threshold:     85.0,
		HistoryWindow: 200,
		Rand:          rand.New(rand.NewSource(5)),
	}, zerolog.Nop())

	return New(Config{
		Port:            0,
		Log:             zerolog.Nop(),
		Service:         svc,
		SuggestionCount: 5,
		DevMode:         true,
	})
}

func doGet(t *testing.T, srv *Server, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestHandleHealth(t *testing.T) {
	rec, body := doGet(t, newTestServer(t), "/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", body["status"])
}

func TestHandleGenerate(t *testing.T) {
	rec, body := doGet(t, newTestServer(t), "/api/generate")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])

	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 5)

	prevScore := 101.0
	for _, item := range data {
		suggestion, ok := item.(map[string]interface{})
		require.True(t, ok)

		numbers, ok := suggestion["numbers"].([]interface{})
		require.True(t, ok)
		require.Len(t, numbers, 6)
		prev := 0.0
		for _, raw := range numbers {
			n := raw.(float64)
			assert.GreaterOrEqual(t, n, 1.0)
			assert.LessOrEqual(t, n, 45.0)
			assert.Greater(t, n, prev)
			prev = n
		}

		score, ok := suggestion["resonance_score"].(float64)
		require.True(t, ok)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 100.0)
		assert.LessOrEqual(t, score, prevScore, "suggestions must arrive ranked")
		prevScore = score

		assert.NotEmpty(t, suggestion["id"])
		assert.NotEmpty(t, suggestion["details"])
	}
}

func TestHandleStats(t *testing.T) {
	rec, body := doGet(t, newTestServer(t), "/api/stats")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)

	weights, ok := data["weights"].(map[string]interface{})
	require.True(t, ok)
	assert.Len(t, weights, 10)
	for name, raw := range weights {
		w := raw.(float64)
		assert.GreaterOrEqual(t, w, 0.0, name)
		assert.LessOrEqual(t, w, 1.0, name)
	}

	assert.Equal(t, 0.0, data["history_count"])
}

func TestHandleSystemStatus(t *testing.T) {
	rec, body := doGet(t, newTestServer(t), "/api/system/status")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", body["status"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, data, "uptime_seconds")
	assert.Contains(t, data, "history_count")
	assert.Equal(t, []interface{}{"bundled"}, data["storage_tiers"])
}
