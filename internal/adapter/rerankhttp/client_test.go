package rerankhttp_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyaya-rag/internal/adapter/rerankhttp"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestClient_Score(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/score", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req rerankhttp.ScoreRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "theft punishment", req.Query)
		assert.Equal(t, "Theft Whoever commits theft", req.Text)
		assert.Equal(t, "ms-marco-MiniLM-L-12-v2", req.Model)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(rerankhttp.ScoreResponse{
			Score: 0.87,
			Model: req.Model,
		})
	}))
	defer server.Close()

	client := rerankhttp.NewClient(server.URL, "ms-marco-MiniLM-L-12-v2", 5*time.Second, discardLogger())

	score, err := client.Score(context.Background(), "theft punishment", "Theft Whoever commits theft")
	require.NoError(t, err)
	assert.Equal(t, 0.87, score)
}

func TestClient_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("model loading"))
	}))
	defer server.Close()

	client := rerankhttp.NewClient(server.URL, "ms-marco-MiniLM-L-12-v2", 5*time.Second, discardLogger())

	_, err := client.Score(context.Background(), "q", "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "model loading")
}

func TestClient_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	client := rerankhttp.NewClient(server.URL, "ms-marco-MiniLM-L-12-v2", time.Second, discardLogger())

	_, err := client.Score(context.Background(), "q", "text")
	require.Error(t, err)
}

func TestClient_ModelName(t *testing.T) {
	client := rerankhttp.NewClient("http://localhost:9022", "ms-marco-MiniLM-L-12-v2", time.Second, discardLogger())
	assert.Equal(t, "ms-marco-MiniLM-L-12-v2", client.ModelName())
}
