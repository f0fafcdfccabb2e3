package usecase_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nyaya-rag/internal/domain"
	"nyaya-rag/internal/usecase"
)

func wordsOfLength(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestContextBuilder_FormatsCitationBlock(t *testing.T) {
	builder := usecase.NewContextBuilder()

	chunk := domain.LegalChunk{
		ChunkID:          "bns_s_303",
		LawCode:          "bns",
		LawName:          "Bharatiya Nyaya Sanhita, 2023",
		IdentifierType:   "Section",
		IdentifierNumber: "303",
		Title:            "Theft",
		Text:             "Whoever intends to take dishonestly any movable property commits theft.",
		Proviso:          "Provided that nothing herein applies to wild animals.",
		Explanation:      "Movable property includes growing crops once severed.",
		SourceURL:        "https://example.org/bns/303",
	}

	out := builder.Build([]domain.LegalChunk{chunk}, 8000)

	assert.Contains(t, out, "**Bharatiya Nyaya Sanhita, 2023**")
	assert.Contains(t, out, "Section 303 - Theft")
	assert.Contains(t, out, chunk.Text)
	assert.Contains(t, out, "Proviso: "+chunk.Proviso)
	assert.Contains(t, out, "Explanation: "+chunk.Explanation)
	assert.Contains(t, out, "Source: https://example.org/bns/303")
}

func TestContextBuilder_OmitsEmptyOptionalFields(t *testing.T) {
	builder := usecase.NewContextBuilder()

	chunk := domain.LegalChunk{
		LawName:          "Constitution of India",
		IdentifierType:   "Article",
		IdentifierNumber: "21",
		Text:             "No person shall be deprived of his life or personal liberty.",
		SourceURL:        "https://example.org/coi/21",
	}

	out := builder.Build([]domain.LegalChunk{chunk}, 8000)

	assert.Contains(t, out, "Article 21\n\n")
	assert.NotContains(t, out, "Proviso:")
	assert.NotContains(t, out, "Explanation:")
	assert.NotContains(t, out, " - \n")
}

func TestContextBuilder_GreedyPrefixStopsAtFirstOverflow(t *testing.T) {
	builder := usecase.NewContextBuilder()

	big := domain.LegalChunk{
		LawName: "L", IdentifierType: "Section", IdentifierNumber: "1",
		Text: wordsOfLength(200), SourceURL: "https://x",
	}
	small := domain.LegalChunk{
		LawName: "L", IdentifierType: "Section", IdentifierNumber: "2",
		Text: "tiny body", SourceURL: "https://y",
	}

	// Budget admits the first block but not the second oversized one. The
	// small third chunk must not be pulled in past the stop point.
	out := builder.Build([]domain.LegalChunk{small, big, small}, 50)

	assert.Contains(t, out, "tiny body")
	assert.NotContains(t, out, wordsOfLength(200))
	assert.Equal(t, 1, strings.Count(out, "tiny body"))
}

func TestContextBuilder_EmptyWhenFirstChunkExceedsBudget(t *testing.T) {
	builder := usecase.NewContextBuilder()

	big := domain.LegalChunk{
		LawName: "L", IdentifierType: "Section", IdentifierNumber: "1",
		Text: wordsOfLength(500), SourceURL: "https://x",
	}

	out := builder.Build([]domain.LegalChunk{big}, 10)
	assert.Empty(t, out)
}

func TestContextBuilder_EmptyInput(t *testing.T) {
	builder := usecase.NewContextBuilder()
	assert.Empty(t, builder.Build(nil, 8000))
}

func TestContextBuilder_SeparatorBetweenBlocks(t *testing.T) {
	builder := usecase.NewContextBuilder()

	a := domain.LegalChunk{
		LawName: "L", IdentifierType: "Section", IdentifierNumber: "1",
		Text: "first", SourceURL: "https://x",
	}
	b := domain.LegalChunk{
		LawName: "L", IdentifierType: "Section", IdentifierNumber: "2",
		Text: "second", SourceURL: "https://y",
	}

	out := builder.Build([]domain.LegalChunk{a, b}, 8000)

	parts := strings.Split(out, "\n\n---\n\n")
	require.Len(t, parts, 2)
	assert.Contains(t, parts[0], "first")
	assert.Contains(t, parts[1], "second")
}

func TestContextBuilder_EstimateNeverExceedsBudget(t *testing.T) {
	builder := usecase.NewContextBuilder()

	chunks := make([]domain.LegalChunk, 10)
	for i := range chunks {
		chunks[i] = domain.LegalChunk{
			LawName: "L", IdentifierType: "Section", IdentifierNumber: "1",
			Text: wordsOfLength(30), SourceURL: "https://x",
		}
	}

	const budget = 100
	out := builder.Build(chunks, budget)

	estimate := float64(len(strings.Fields(out))) * 1.3
	assert.LessOrEqual(t, estimate, float64(budget)+4, "joined estimate stays within budget plus separator slack")
}
