package matcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Suggestion types.
const (
	TypeSkill       = "skill"
	TypeVerb        = "verb"
	TypeMetrics     = "metrics"
	TypePositioning = "positioning"
)

var errInvalidSuggestions = errors.New("invalid suggestion list")

// Suggestion is one targeted change to make the resume fit the JD.
type Suggestion struct {
	Type       string `json:"type"`
	Suggestion string `json:"suggestion"`
	Keyword    string `json:"keyword,omitempty"`
}

// TargetedSuggestions uses the suggestion source when one is installed and
// its answer is well formed; otherwise it applies the static rules.
func (m *Matcher) TargetedSuggestions(ctx context.Context, resumeText, jdText string) []Suggestion {
	if m.suggestions != nil {
		out, err := m.suggestions.TargetedSuggestions(ctx, resumeText, jdText)
		if err == nil {
			err = validateSuggestions(out)
		}
		if err == nil {
			return out
		}
		m.fallback("targeted_suggestions", err)
	}
	return m.staticSuggestions(resumeText, jdText)
}

func validateSuggestions(list []Suggestion) error {
	if len(list) == 0 {
		return errInvalidSuggestions
	}
	for _, s := range list {
		switch s.Type {
		case TypeSkill, TypeVerb, TypeMetrics, TypePositioning:
		default:
			return fmt.Errorf("%w: type %q", errInvalidSuggestions, s.Type)
		}
		if strings.TrimSpace(s.Suggestion) == "" {
			return fmt.Errorf("%w: empty text", errInvalidSuggestions)
		}
	}
	return nil
}

func (m *Matcher) staticSuggestions(resumeText, jdText string) []Suggestion {
	out := []Suggestion{}

	resumeKeywords := newOrderedSet()
	for _, kw := range m.ExtractKeywords(resumeText) {
		resumeKeywords.add(kw)
	}
	for _, kw := range m.ExtractKeywords(jdText) {
		if resumeKeywords.has(kw) {
			continue
		}
		out = append(out, Suggestion{
			Type:       TypeSkill,
			Suggestion: fmt.Sprintf("Add %q to your skills section if you have experience with it", kw),
			Keyword:    kw,
		})
	}

	lowerJD := strings.ToLower(jdText)
	lowerResume := strings.ToLower(resumeText)
	if containsAny(lowerJD, m.dict.LeadershipCues) && !containsAny(lowerResume, m.dict.LeadershipVerbs) {
		out = append(out, Suggestion{
			Type:       TypeVerb,
			Suggestion: `Emphasize leadership experience with action verbs like "Led", "Managed", "Coordinated"`,
		})
	}

	if !containsAny(lowerResume, m.dict.MetricVerbs) {
		out = append(out, Suggestion{
			Type:       TypeMetrics,
			Suggestion: `Add quantifiable metrics to your achievements (e.g., "Increased performance by 40%")`,
		})
	}
	return out
}

func containsAny(lower string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}
