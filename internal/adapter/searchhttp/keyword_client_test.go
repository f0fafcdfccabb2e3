package searchhttp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyaya-rag/internal/adapter/searchhttp"
)

func TestKeywordSearchClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "theft punishment", r.URL.Query().Get("q"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"query": "theft punishment",
			"hits": []map[string]any{
				{
					"chunk_id":          "bns_s_303",
					"law_code":          "bns",
					"law_name":          "Bharatiya Nyaya Sanhita, 2023",
					"identifier_type":   "Section",
					"identifier_number": "303",
					"title":             "Theft",
					"text":              "Whoever commits theft shall be punished.",
					"source_url":        "https://example.org/bns/303",
					"score":             12.4,
				},
			},
		})
	}))
	defer server.Close()

	client := searchhttp.NewKeywordSearchClient(server.URL, 5*time.Second)

	hits, err := client.Search(context.Background(), "theft punishment", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)

	assert.Equal(t, "bns_s_303", hits[0].Chunk.ChunkID)
	assert.Equal(t, "bns", hits[0].Chunk.LawCode)
	assert.Equal(t, "Theft", hits[0].Chunk.Title)
	assert.Equal(t, 12.4, hits[0].Score)
}

func TestKeywordSearchClient_DropsIncompleteHits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"query": "q",
			"hits": []map[string]any{
				{
					"chunk_id": "broken",
					"law_code": "bns",
					"score":    9.0,
				},
				{
					"chunk_id":          "ok",
					"law_code":          "bns",
					"law_name":          "Bharatiya Nyaya Sanhita, 2023",
					"identifier_type":   "Section",
					"identifier_number": "303",
					"text":              "body",
					"source_url":        "https://example.org/bns/303",
					"score":             8.0,
				},
			},
		})
	}))
	defer server.Close()

	client := searchhttp.NewKeywordSearchClient(server.URL, 5*time.Second)

	hits, err := client.Search(context.Background(), "q", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "ok", hits[0].Chunk.ChunkID)
}

func TestKeywordSearchClient_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := searchhttp.NewKeywordSearchClient(server.URL, 5*time.Second)

	hits, err := client.Search(context.Background(), "q", 10)
	require.Error(t, err)
	assert.Nil(t, hits)
	assert.Contains(t, err.Error(), "500")
}

func TestKeywordSearchClient_TrimsTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"query": "q", "hits": []map[string]any{}})
	}))
	defer server.Close()

	client := searchhttp.NewKeywordSearchClient(server.URL+"/", 5*time.Second)

	hits, err := client.Search(context.Background(), "q", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
