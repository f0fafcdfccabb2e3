package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nyaya-rag/internal/domain"
	"nyaya-rag/internal/usecase"
)

func TestIntentClassifier_ExplicitIPCSection(t *testing.T) {
	classifier := usecase.NewIntentClassifier()

	intent := classifier.Classify("Section 302 IPC punishment")

	assert.Equal(t, domain.DomainCriminal, intent.Domain)
	assert.Equal(t, "ipc", intent.LawType)
	assert.Contains(t, intent.SpecificSections, "section_302")
	assert.Equal(t, domain.QueryTypePenalty, intent.QueryType)
	assert.Contains(t, intent.Keywords, "punishment")
}

func TestIntentClassifier_Determinism(t *testing.T) {
	classifier := usecase.NewIntentClassifier()

	first := classifier.Classify("Section 302 IPC punishment")
	second := classifier.Classify("Section 302 IPC punishment")

	assert.Equal(t, first, second)
}

func TestIntentClassifier_DomainDetection(t *testing.T) {
	classifier := usecase.NewIntentClassifier()

	tests := []struct {
		name      string
		query     string
		domain    domain.LegalDomain
		lawType   string
		queryType domain.QueryType
	}{
		{
			name:      "article citation wins over keyword lists",
			query:     "Explain Article 21 and the right to life",
			domain:    domain.DomainConstitutional,
			lawType:   "constitution",
			queryType: domain.QueryTypeRights,
		},
		{
			name:      "bns citation maps to criminal",
			query:     "What is BNS 303?",
			domain:    domain.DomainCriminal,
			lawType:   "bns",
			queryType: domain.QueryTypeDefinition,
		},
		{
			name:      "crpc citation maps to procedure with crpc law",
			query:     "CrPC 154 FIR registration",
			domain:    domain.DomainProcedureCriminal,
			lawType:   "crpc",
			queryType: domain.QueryTypeGeneral,
		},
		{
			name:      "procedure keywords without citation default to bnss",
			query:     "investigation after arrest",
			domain:    domain.DomainProcedureCriminal,
			lawType:   "bnss",
			queryType: domain.QueryTypeGeneral,
		},
		{
			name:      "civil keywords",
			query:     "how to file a civil suit",
			domain:    domain.DomainCivil,
			lawType:   "cpc",
			queryType: domain.QueryTypeProcedure,
		},
		{
			name:      "cyber keywords",
			query:     "hacking and digital signature rules",
			domain:    domain.DomainCyber,
			lawType:   "it_act",
			queryType: domain.QueryTypeGeneral,
		},
		{
			name:      "no matches falls back to general",
			query:     "hello there",
			domain:    domain.DomainGeneral,
			lawType:   "bns",
			queryType: domain.QueryTypeGeneral,
		},
		{
			name:      "criminal keywords default to bns",
			query:     "What is the punishment for theft under BNS?",
			domain:    domain.DomainCriminal,
			lawType:   "bns",
			queryType: domain.QueryTypeDefinition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			intent := classifier.Classify(tt.query)
			assert.Equal(t, tt.domain, intent.Domain)
			assert.Equal(t, tt.lawType, intent.LawType)
			assert.Equal(t, tt.queryType, intent.QueryType)
		})
	}
}

func TestIntentClassifier_SectionExtractionOrder(t *testing.T) {
	classifier := usecase.NewIntentClassifier()

	intent := classifier.Classify("Compare Article 14 with Section 302 and IPC 420")

	// Pattern order is fixed: article, section, then per-law variants.
	assert.Equal(t, []string{"article_14", "section_302", "ipc_420"}, intent.SpecificSections)
}

func TestIntentClassifier_KeywordExtraction(t *testing.T) {
	classifier := usecase.NewIntentClassifier()

	intent := classifier.Classify("Is the offense bailable or cognizable? Can a warrant issue?")

	assert.Contains(t, intent.Keywords, "bailable")
	assert.Contains(t, intent.Keywords, "cognizable")
	assert.Contains(t, intent.Keywords, "warrant")
}
