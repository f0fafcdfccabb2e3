package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"nyaya-rag/internal/domain"
)

// ChunkSearcher implements dense similarity search over the legal_chunks table
// using pgvector cosine distance. The table is written by the offline ingestion
// pipeline and is read-only at query time.
type ChunkSearcher struct {
	pool    *pgxpool.Pool
	encoder domain.VectorEncoder
}

// NewChunkSearcher creates a searcher backed by the given pool and encoder.
func NewChunkSearcher(pool *pgxpool.Pool, encoder domain.VectorEncoder) *ChunkSearcher {
	return &ChunkSearcher{pool: pool, encoder: encoder}
}

// Search embeds the query and returns the k nearest chunks with their cosine
// similarity. Incomplete rows are dropped before they reach the caller.
func (s *ChunkSearcher) Search(ctx context.Context, query string, k int) ([]domain.SearchHit, error) {
	embeddings, err := s.encoder.Encode(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to encode query: %w", err)
	}
	if len(embeddings) != 1 {
		return nil, fmt.Errorf("expected 1 embedding, got %d", len(embeddings))
	}

	sql := `
		SELECT chunk_id, law_code, law_name, identifier_type, identifier_number,
		       COALESCE(title, ''), text, COALESCE(proviso, ''), COALESCE(explanation, ''),
		       source_url,
		       1 - (embedding <=> $1) AS score
		FROM legal_chunks
		ORDER BY embedding <=> $1
		LIMIT $2
	`
	rows, err := s.pool.Query(ctx, sql, pgvector.NewVector(embeddings[0]), k)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	var hits []domain.SearchHit
	for rows.Next() {
		var chunk domain.LegalChunk
		var score float64
		if err := rows.Scan(
			&chunk.ChunkID, &chunk.LawCode, &chunk.LawName,
			&chunk.IdentifierType, &chunk.IdentifierNumber,
			&chunk.Title, &chunk.Text, &chunk.Proviso, &chunk.Explanation,
			&chunk.SourceURL, &score,
		); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		if !chunk.Complete() {
			continue
		}
		hits = append(hits, domain.SearchHit{Chunk: chunk, Score: score})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return hits, nil
}

var _ domain.VectorSearcher = (*ChunkSearcher)(nil)
