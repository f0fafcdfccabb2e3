package rerankhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"nyaya-rag/internal/domain"
)

// ScoreRequest is the request payload for the pairwise scoring endpoint.
type ScoreRequest struct {
	Query string `json:"query"`
	Text  string `json:"text"`
	Model string `json:"model,omitempty"`
}

// ScoreResponse is the response from the pairwise scoring endpoint.
type ScoreResponse struct {
	Score float64 `json:"score"`
	Model string  `json:"model"`
}

// Client implements domain.PairwiseScorer via HTTP calls to the cross-encoder
// scoring service.
type Client struct {
	BaseURL string
	Model   string
	Client  *http.Client
	logger  *slog.Logger
}

// NewClient constructs a scoring client. model is the cross-encoder model name
// (e.g. ms-marco-MiniLM-L-12-v2). If client is nil, a default http.Client is
// created with the given timeout.
func NewClient(baseURL, model string, timeout time.Duration, logger *slog.Logger, client ...*http.Client) *Client {
	var c *http.Client
	if len(client) > 0 && client[0] != nil {
		c = client[0]
	} else {
		c = &http.Client{Timeout: timeout}
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Model:   model,
		Client:  c,
		logger:  logger,
	}
}

// Score sends one query/document pair to the scoring service.
func (c *Client) Score(ctx context.Context, query, text string) (float64, error) {
	start := time.Now()

	payload, err := json.Marshal(ScoreRequest{
		Query: query,
		Text:  text,
		Model: c.Model,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal score request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/score", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("failed to create score request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		c.logger.Warn("pairwise_scoring_failed",
			slog.String("error", err.Error()),
			slog.Int64("elapsed_ms", time.Since(start).Milliseconds()))
		return 0, fmt.Errorf("failed to call score endpoint: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Warn("pairwise_scoring_failed",
			slog.Int("status_code", resp.StatusCode),
			slog.String("body", truncateString(string(body), 500)),
			slog.Int64("elapsed_ms", time.Since(start).Milliseconds()))
		return 0, fmt.Errorf("score endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var scoreResp ScoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&scoreResp); err != nil {
		return 0, fmt.Errorf("failed to decode score response: %w", err)
	}

	return scoreResp.Score, nil
}

// ModelName returns the model identifier for logging.
func (c *Client) ModelName() string {
	return c.Model
}

func truncateString(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

var _ domain.PairwiseScorer = (*Client)(nil)
