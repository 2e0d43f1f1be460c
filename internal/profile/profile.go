// Package profile defines the fixed company profile schema, the sentinel
// rules for absent values, and the pure aggregation of extraction outcomes.
package profile

// Sentinel marks an absent or failed extraction result. It is distinct from
// genuine extracted text that happens to read "unknown" only by convention:
// extraction instructions ask the model for the literal value on uncertainty.
const Sentinel = "Unknown"

// Field names the extraction slots of a CompanyProfile.
type Field string

// All profile fields. TierTwoKeywords is the only field whose extraction
// depends on another field's settled result (TierOneKeywords).
const (
	FieldCompanyName        Field = "company_name"
	FieldServiceLines       Field = "service_lines"
	FieldCompanyDescription Field = "company_description"
	FieldTierOneKeywords    Field = "tier1_keywords"
	FieldTierTwoKeywords    Field = "tier2_keywords"
	FieldEmails             Field = "emails"
	FieldPointOfContact     Field = "point_of_contact"
)

// IndependentFields lists the fields extracted concurrently with no ordering
// constraints between them.
var IndependentFields = []Field{
	FieldCompanyName,
	FieldServiceLines,
	FieldCompanyDescription,
	FieldTierOneKeywords,
	FieldEmails,
	FieldPointOfContact,
}

// CompanyProfile is the response shape returned to callers. Every field is
// either a concrete value (or sequence) or sentinel-shaped per its type:
// scalar fields hold Sentinel, list fields hold the one-element [Sentinel].
type CompanyProfile struct {
	CompanyName        string   `json:"company_name"`
	ServiceLines       []string `json:"service_lines"`
	CompanyDescription string   `json:"company_description"`
	TierOneKeywords    []string `json:"tier1_keywords"`
	TierTwoKeywords    []string `json:"tier2_keywords"`
	Emails             []string `json:"emails"`
	PointOfContact     string   `json:"point_of_contact"`
}

// SentinelProfile returns the profile used when no source document survives
// normalization: every field sentinel-shaped, no extraction attempted.
func SentinelProfile() CompanyProfile {
	return CompanyProfile{
		CompanyName:        Sentinel,
		ServiceLines:       []string{Sentinel},
		CompanyDescription: Sentinel,
		TierOneKeywords:    []string{Sentinel},
		TierTwoKeywords:    []string{Sentinel},
		Emails:             []string{Sentinel},
		PointOfContact:     Sentinel,
	}
}
