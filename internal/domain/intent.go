package domain

// LegalDomain identifies the area of law a query falls into.
type LegalDomain string

const (
	DomainConstitutional    LegalDomain = "constitutional"
	DomainCriminal          LegalDomain = "criminal"
	DomainProcedureCriminal LegalDomain = "procedure_criminal"
	DomainCivil             LegalDomain = "civil"
	DomainCyber             LegalDomain = "cyber"
	DomainGeneral           LegalDomain = "general"
)

// QueryType classifies what kind of answer the user is asking for.
type QueryType string

const (
	QueryTypeDefinition QueryType = "definition"
	QueryTypePenalty    QueryType = "penalty"
	QueryTypeProcedure  QueryType = "procedure"
	QueryTypeRights     QueryType = "rights"
	QueryTypeGeneral    QueryType = "general"
)

// LegalIntent is the structured classification of a single query. It is
// derived fresh per request, never persisted, and consumed downstream for
// logging and diagnostics.
type LegalIntent struct {
	Domain           LegalDomain
	LawType          string   // law code: constitution, ipc, bns, crpc, bnss, cpc, it_act
	SpecificSections []string // explicit citations found in the query text, "{pattern}_{number}"
	Keywords         []string
	QueryType        QueryType
}
