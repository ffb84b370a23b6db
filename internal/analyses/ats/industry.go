package ats

import "strings"

// IndustryRequirements are role-specific signals extracted from a job
// description. Absent fields are empty, never nil, once normalized.
type IndustryRequirements struct {
	TechnicalSkills []string `json:"technicalSkills"`
	SoftSkills      []string `json:"softSkills"`
	Tools           []string `json:"tools"`
	ActionVerbs     []string `json:"actionVerbs"`
	Certifications  []string `json:"certifications"`
	MetricKeywords  []string `json:"metricKeywords"`
	IndustryTerms   []string `json:"industryTerms"`
}

// Normalized returns a copy with blank entries removed and nil lists
// replaced by empty ones.
func (r IndustryRequirements) Normalized() IndustryRequirements {
	return IndustryRequirements{
		TechnicalSkills: cleanList(r.TechnicalSkills),
		SoftSkills:      cleanList(r.SoftSkills),
		Tools:           cleanList(r.Tools),
		ActionVerbs:     cleanList(r.ActionVerbs),
		Certifications:  cleanList(r.Certifications),
		MetricKeywords:  cleanList(r.MetricKeywords),
		IndustryTerms:   cleanList(r.IndustryTerms),
	}
}

// Empty reports whether no list carries any term.
func (r IndustryRequirements) Empty() bool {
	n := r.Normalized()
	return len(n.TechnicalSkills)+len(n.SoftSkills)+len(n.Tools)+len(n.ActionVerbs)+
		len(n.Certifications)+len(n.MetricKeywords)+len(n.IndustryTerms) == 0
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// countFound returns how many terms occur, case-insensitively, in lower.
func countFound(lower string, terms []string) int {
	found := 0
	for _, t := range terms {
		if strings.Contains(lower, strings.ToLower(t)) {
			found++
		}
	}
	return found
}

// fractionScore returns found/len×100 and the found count. ok is false for
// an empty list so callers can apply their fallback.
func fractionScore(lower string, terms []string) (score float64, found int, ok bool) {
	if len(terms) == 0 {
		return 0, 0, false
	}
	found = countFound(lower, terms)
	return float64(found) / float64(len(terms)) * 100, found, true
}
