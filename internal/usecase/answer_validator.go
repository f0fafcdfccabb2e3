package usecase

import (
	"regexp"
	"strings"

	"nyaya-rag/internal/domain"
)

// Confidence is the verdict attached to a validated answer. It is independent
// of validity: an answer can pass every hard rule and still be low-confidence.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// ValidationResult is the structural/citation compliance judgment for one
// generated answer. Produced once, immutable thereafter.
type ValidationResult struct {
	Valid      bool
	Errors     []string
	Warnings   []string
	Confidence Confidence
}

// requiredSections must all appear as literal substrings of a valid answer.
var requiredSections = []string{
	"Legal Position:",
	"Relevant Provisions:",
	"Disclaimer:",
}

// speculativePhrases are soft-rule flags; any hit downgrades confidence to at
// most medium.
var speculativePhrases = []string{
	"i think", "probably", "maybe", "might be",
	"could be interpreted", "in my opinion",
}

var (
	citationRe = regexp.MustCompile(`(Article|Section)\s+\d+`)
	urlRe      = regexp.MustCompile(`https?://\S+`)
)

// AnswerValidator structurally inspects a generated answer for citation
// presence, required sections, and speculative-language risk. Pure and
// deterministic, no external calls.
//
// Cited identifiers are checked for shape only; they are not cross-referenced
// against the retrieved chunk set. The retrieved list stays in the contract so
// that a correspondence rule can be added without changing callers.
type AnswerValidator struct{}

// NewAnswerValidator creates a validator instance (stateless).
func NewAnswerValidator() AnswerValidator {
	return AnswerValidator{}
}

// Validate applies the hard and soft rules and derives the confidence verdict.
func (AnswerValidator) Validate(answer string, retrieved []domain.ScoredCandidate) ValidationResult {
	_ = retrieved

	result := ValidationResult{
		Valid:      true,
		Confidence: ConfidenceHigh,
	}

	for _, section := range requiredSections {
		if !strings.Contains(answer, section) {
			result.Valid = false
			result.Errors = append(result.Errors, "missing required section: "+section)
		}
	}

	hasCitations := citationRe.MatchString(answer)
	if !hasCitations {
		result.Valid = false
		result.Errors = append(result.Errors, "no Article/Section citations found")
	}

	if !urlRe.MatchString(answer) {
		result.Valid = false
		result.Errors = append(result.Errors, "no source URLs found")
	}

	lower := strings.ToLower(answer)
	for _, phrase := range speculativePhrases {
		if strings.Contains(lower, phrase) {
			result.Warnings = append(result.Warnings, "speculative language detected: "+phrase)
			result.Confidence = ConfidenceMedium
		}
	}

	// No citation of the {Type} {Number} shape anywhere means the answer is
	// ungrounded regardless of how the hard rules came out.
	if !hasCitations {
		result.Confidence = ConfidenceLow
	}

	return result
}
