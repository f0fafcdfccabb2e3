package webapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"nyaya-rag/internal/usecase"
)

// QueryRunner is the single operation the pipeline exposes to its callers.
type QueryRunner interface {
	Run(ctx context.Context, query string) *usecase.QueryState
}

// Handler exposes the query pipeline over HTTP.
type Handler struct {
	pipeline QueryRunner
	logger   *slog.Logger
}

// NewHandler wires the pipeline into the HTTP surface.
func NewHandler(pipeline QueryRunner, logger *slog.Logger) *Handler {
	return &Handler{pipeline: pipeline, logger: logger}
}

type queryRequest struct {
	Query string `json:"query"`
}

type intentPayload struct {
	Domain           string   `json:"domain"`
	LawType          string   `json:"law_type"`
	SpecificSections []string `json:"specific_sections,omitempty"`
	Keywords         []string `json:"keywords,omitempty"`
	QueryType        string   `json:"query_type"`
}

type citationPayload struct {
	ChunkID          string  `json:"chunk_id"`
	LawCode          string  `json:"law_code"`
	LawName          string  `json:"law_name"`
	IdentifierType   string  `json:"identifier_type"`
	IdentifierNumber string  `json:"identifier_number"`
	Title            string  `json:"title,omitempty"`
	SourceURL        string  `json:"source_url"`
	FinalScore       float64 `json:"final_score"`
	RerankScore      float64 `json:"rerank_score"`
}

type validationPayload struct {
	Valid      bool     `json:"valid"`
	Errors     []string `json:"errors,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	Confidence string   `json:"confidence"`
}

type queryResponse struct {
	QueryID    string             `json:"query_id"`
	Query      string             `json:"query"`
	Intent     *intentPayload     `json:"intent,omitempty"`
	Answer     string             `json:"answer,omitempty"`
	Chunks     []citationPayload  `json:"chunks,omitempty"`
	Validation *validationPayload `json:"validation,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// Query runs the pipeline for one request. A state carrying an error is
// surfaced as a failed query with the recorded message, not as a best-effort
// partial answer.
func (h *Handler) Query(c echo.Context) error {
	var req queryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Query) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "query is required"})
	}

	state := h.pipeline.Run(c.Request().Context(), req.Query)

	resp := toResponse(state)
	if state.Failed() {
		return c.JSON(http.StatusBadGateway, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

func toResponse(state *usecase.QueryState) queryResponse {
	resp := queryResponse{
		QueryID: state.QueryID,
		Query:   state.Query,
		Answer:  state.Answer,
		Error:   state.Err,
	}

	if state.Intent != nil {
		resp.Intent = &intentPayload{
			Domain:           string(state.Intent.Domain),
			LawType:          state.Intent.LawType,
			SpecificSections: state.Intent.SpecificSections,
			Keywords:         state.Intent.Keywords,
			QueryType:        string(state.Intent.QueryType),
		}
	}

	for _, cand := range state.FinalChunks {
		resp.Chunks = append(resp.Chunks, citationPayload{
			ChunkID:          cand.Chunk.ChunkID,
			LawCode:          cand.Chunk.LawCode,
			LawName:          cand.Chunk.LawName,
			IdentifierType:   cand.Chunk.IdentifierType,
			IdentifierNumber: cand.Chunk.IdentifierNumber,
			Title:            cand.Chunk.Title,
			SourceURL:        cand.Chunk.SourceURL,
			FinalScore:       cand.FinalScore,
			RerankScore:      cand.RerankScore,
		})
	}

	if state.Validation != nil {
		resp.Validation = &validationPayload{
			Valid:      state.Validation.Valid,
			Errors:     state.Validation.Errors,
			Warnings:   state.Validation.Warnings,
			Confidence: string(state.Validation.Confidence),
		}
	}

	return resp
}
