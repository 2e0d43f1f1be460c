package profile

import "strings"

// Aggregate merges settled extraction outcomes into a CompanyProfile. It is
// a pure function: missing outcomes are treated as failed and become
// sentinel-shaped like any other absent value.
func Aggregate(outcomes map[Field]Outcome) CompanyProfile {
	return CompanyProfile{
		CompanyName:        scalar(outcomes, FieldCompanyName),
		ServiceLines:       list(outcomes, FieldServiceLines),
		CompanyDescription: scalar(outcomes, FieldCompanyDescription),
		TierOneKeywords:    list(outcomes, FieldTierOneKeywords),
		TierTwoKeywords:    list(outcomes, FieldTierTwoKeywords),
		Emails:             list(outcomes, FieldEmails),
		PointOfContact:     scalar(outcomes, FieldPointOfContact),
	}
}

func scalar(outcomes map[Field]Outcome, field Field) string {
	outcome, ok := outcomes[field]
	if !ok {
		return Sentinel
	}
	return outcome.Settled()
}

func list(outcomes map[Field]Outcome, field Field) []string {
	outcome, ok := outcomes[field]
	if !ok {
		return []string{Sentinel}
	}
	return SplitList(outcome.Settled())
}

// SplitList turns a comma-separated raw extraction string into trimmed,
// non-empty tokens in their original order. A sentinel raw value yields the
// one-element sentinel list, never an empty list.
func SplitList(raw string) []string {
	if raw == Sentinel {
		return []string{Sentinel}
	}
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	if len(tokens) == 0 {
		return []string{Sentinel}
	}
	return tokens
}
