package usecase

import (
	"strings"

	"nyaya-rag/internal/domain"
)

const contextSeparator = "\n\n---\n\n"

// tokensPerWord is a cheap deterministic token estimate. Exact tokenization is
// not required for budget enforcement; the estimate just has to be stable.
const tokensPerWord = 1.3

// ContextBuilder serializes ranked chunks into one citation-formatted text
// block bounded by a token budget. It never fails.
type ContextBuilder struct{}

// NewContextBuilder creates a builder instance (stateless).
func NewContextBuilder() ContextBuilder {
	return ContextBuilder{}
}

// Build packs chunks greedily in the given order. The first chunk whose block
// would push the estimate past maxTokens stops the scan; later, smaller chunks
// are not considered. Returns empty text when the first block alone exceeds
// the budget.
func (ContextBuilder) Build(chunks []domain.LegalChunk, maxTokens int) string {
	var parts []string
	used := 0.0

	for _, chunk := range chunks {
		block := formatChunk(chunk)
		cost := float64(len(strings.Fields(block))) * tokensPerWord
		if used+cost > float64(maxTokens) {
			break
		}
		parts = append(parts, block)
		used += cost
	}

	return strings.Join(parts, contextSeparator)
}

// formatChunk renders one chunk as a citation block: law name, identifier
// line, body, optional proviso and explanation, trailing source URL.
func formatChunk(c domain.LegalChunk) string {
	var sb strings.Builder

	sb.WriteString("**")
	sb.WriteString(c.LawName)
	sb.WriteString("**\n")

	sb.WriteString(c.IdentifierType)
	sb.WriteString(" ")
	sb.WriteString(c.IdentifierNumber)
	if c.Title != "" {
		sb.WriteString(" - ")
		sb.WriteString(c.Title)
	}

	sb.WriteString("\n\n")
	sb.WriteString(c.Text)

	if c.Proviso != "" {
		sb.WriteString("\n\nProviso: ")
		sb.WriteString(c.Proviso)
	}
	if c.Explanation != "" {
		sb.WriteString("\n\nExplanation: ")
		sb.WriteString(c.Explanation)
	}

	sb.WriteString("\n\nSource: ")
	sb.WriteString(c.SourceURL)

	return sb.String()
}
