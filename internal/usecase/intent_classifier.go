package usecase

import (
	"regexp"
	"strings"

	"nyaya-rag/internal/domain"
)

// sectionPattern ties a citation pattern name to its regexp. Order matters:
// extracted citations keep pattern order, and domain detection inspects the
// article/ipc/bns/crpc/bnss prefixes of the tags built here.
type sectionPattern struct {
	name string
	re   *regexp.Regexp
}

var sectionPatterns = []sectionPattern{
	{"article", regexp.MustCompile(`article\s+(\d+[a-z]?)`)},
	{"section", regexp.MustCompile(`section\s+(\d+[a-z]?)`)},
	{"ipc", regexp.MustCompile(`ipc\s+(\d+[a-z]?)`)},
	{"bns", regexp.MustCompile(`bns\s+(\d+[a-z]?)`)},
	{"crpc", regexp.MustCompile(`crpc\s+(\d+[a-z]?)`)},
	{"bnss", regexp.MustCompile(`bnss\s+(\d+[a-z]?)`)},
}

// domainKeywordLists is scanned in order; the first list with a hit wins.
var domainKeywordLists = []struct {
	dom      domain.LegalDomain
	keywords []string
}{
	{domain.DomainConstitutional, []string{"article", "fundamental rights", "directive principles", "constitution"}},
	{domain.DomainCriminal, []string{"ipc", "bns", "offense", "punishment", "cognizable", "bailable", "section"}},
	{domain.DomainProcedureCriminal, []string{"crpc", "bnss", "arrest", "bail", "investigation", "trial"}},
	{domain.DomainCivil, []string{"cpc", "suit", "decree", "appeal", "civil procedure"}},
	{domain.DomainCyber, []string{"it act", "cyber", "electronic", "digital signature", "hacking"}},
}

var legalKeywords = []string{
	"bailable", "cognizable", "non-bailable", "non-cognizable",
	"imprisonment", "fine", "punishment", "offense",
	"arrest", "warrant", "summons", "bail",
}

// queryTypeGroups is scanned in order; the first group with a hit wins.
var queryTypeGroups = []struct {
	qt      domain.QueryType
	phrases []string
}{
	{domain.QueryTypeDefinition, []string{"what is", "define", "meaning"}},
	{domain.QueryTypePenalty, []string{"punishment", "penalty", "fine", "imprisonment"}},
	{domain.QueryTypeProcedure, []string{"procedure", "process", "how to"}},
	{domain.QueryTypeRights, []string{"right", "can i", "am i allowed"}},
}

// IntentClassifier maps raw query text to a structured legal intent. It is a
// pure function of the lower-cased query and has no failure path.
type IntentClassifier struct{}

// NewIntentClassifier creates a classifier instance (stateless).
func NewIntentClassifier() IntentClassifier {
	return IntentClassifier{}
}

// Classify derives the legal intent for a query.
func (IntentClassifier) Classify(query string) domain.LegalIntent {
	lower := strings.ToLower(query)

	sections := extractSections(lower)
	dom := detectDomain(lower, sections)

	return domain.LegalIntent{
		Domain:           dom,
		LawType:          mapToLaw(dom, lower, sections),
		SpecificSections: sections,
		Keywords:         extractKeywords(lower),
		QueryType:        classifyQueryType(lower),
	}
}

func extractSections(query string) []string {
	var sections []string
	for _, p := range sectionPatterns {
		for _, m := range p.re.FindAllStringSubmatch(query, -1) {
			sections = append(sections, p.name+"_"+m[1])
		}
	}
	return sections
}

func detectDomain(query string, sections []string) domain.LegalDomain {
	for _, s := range sections {
		if strings.HasPrefix(s, "article_") {
			return domain.DomainConstitutional
		}
	}
	for _, s := range sections {
		if strings.HasPrefix(s, "ipc_") || strings.HasPrefix(s, "bns_") {
			return domain.DomainCriminal
		}
	}
	for _, s := range sections {
		if strings.HasPrefix(s, "crpc_") || strings.HasPrefix(s, "bnss_") {
			return domain.DomainProcedureCriminal
		}
	}

	for _, list := range domainKeywordLists {
		for _, kw := range list.keywords {
			if strings.Contains(query, kw) {
				return list.dom
			}
		}
	}

	return domain.DomainGeneral
}

// mapToLaw resolves the domain to a concrete law code. Criminal queries map to
// the BNS unless the IPC is explicitly mentioned; procedure queries map to the
// BNSS unless the CrPC is explicitly mentioned.
func mapToLaw(dom domain.LegalDomain, query string, sections []string) string {
	switch dom {
	case domain.DomainConstitutional:
		return "constitution"
	case domain.DomainCriminal:
		if strings.Contains(query, "ipc") || hasSectionPrefix(sections, "ipc_") {
			return "ipc"
		}
		return "bns"
	case domain.DomainProcedureCriminal:
		if strings.Contains(query, "crpc") || hasSectionPrefix(sections, "crpc_") {
			return "crpc"
		}
		return "bnss"
	case domain.DomainCivil:
		return "cpc"
	case domain.DomainCyber:
		return "it_act"
	default:
		return "bns"
	}
}

func hasSectionPrefix(sections []string, prefix string) bool {
	for _, s := range sections {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

func extractKeywords(query string) []string {
	var found []string
	for _, kw := range legalKeywords {
		if strings.Contains(query, kw) {
			found = append(found, kw)
		}
	}
	return found
}

func classifyQueryType(query string) domain.QueryType {
	for _, group := range queryTypeGroups {
		for _, phrase := range group.phrases {
			if strings.Contains(query, phrase) {
				return group.qt
			}
		}
	}
	return domain.QueryTypeGeneral
}
