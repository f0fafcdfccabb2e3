package searchhttp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nyaya-rag/internal/domain"
)

// KeywordSearchClient implements lexical (BM25) search via the keyword index
// service's HTTP API.
type KeywordSearchClient struct {
	BaseURL string
	Client  *http.Client
}

// NewKeywordSearchClient constructs a client for the keyword index service.
// If client is nil, a default http.Client is created with the given timeout.
func NewKeywordSearchClient(baseURL string, timeout time.Duration, client ...*http.Client) *KeywordSearchClient {
	var c *http.Client
	if len(client) > 0 && client[0] != nil {
		c = client[0]
	} else {
		c = &http.Client{Timeout: timeout}
	}
	return &KeywordSearchClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  c,
	}
}

type keywordSearchResponse struct {
	Query string       `json:"query"`
	Hits  []keywordHit `json:"hits"`
}

type keywordHit struct {
	ChunkID          string  `json:"chunk_id"`
	LawCode          string  `json:"law_code"`
	LawName          string  `json:"law_name"`
	IdentifierType   string  `json:"identifier_type"`
	IdentifierNumber string  `json:"identifier_number"`
	Title            string  `json:"title"`
	Text             string  `json:"text"`
	Proviso          string  `json:"proviso"`
	Explanation      string  `json:"explanation"`
	SourceURL        string  `json:"source_url"`
	Score            float64 `json:"score"`
}

// Search queries the keyword index and maps hits to the domain shape.
// Incomplete hits are dropped before they reach the caller.
func (c *KeywordSearchClient) Search(ctx context.Context, query string, k int) ([]domain.SearchHit, error) {
	u, err := url.Parse(c.BaseURL + "/v1/search")
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(k))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("keyword search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("keyword search returned status: %d", resp.StatusCode)
	}

	var sResp keywordSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	hits := make([]domain.SearchHit, 0, len(sResp.Hits))
	for _, h := range sResp.Hits {
		chunk := domain.LegalChunk{
			ChunkID:          h.ChunkID,
			LawCode:          h.LawCode,
			LawName:          h.LawName,
			IdentifierType:   h.IdentifierType,
			IdentifierNumber: h.IdentifierNumber,
			Title:            h.Title,
			Text:             h.Text,
			Proviso:          h.Proviso,
			Explanation:      h.Explanation,
			SourceURL:        h.SourceURL,
		}
		if !chunk.Complete() {
			continue
		}
		hits = append(hits, domain.SearchHit{Chunk: chunk, Score: h.Score})
	}

	return hits, nil
}

var _ domain.KeywordSearcher = (*KeywordSearchClient)(nil)
