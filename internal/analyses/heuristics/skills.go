package heuristics

import "strings"

// SkillCoverage reports catalog skills found in the resume and the focus
// skills that were not.
type SkillCoverage struct {
	Detected []string `json:"detected"`
	Missing  []string `json:"missing"`
	Coverage int      `json:"coverage"`
}

// SkillCoverage matches catalog skills as case-insensitive substrings.
// Missing is every skill of the dictionary's focus categories that was not
// detected, in catalog order, optionally capped by MissingSkillLimit.
func (a *Analyzer) SkillCoverage(text string) SkillCoverage {
	lower := strings.ToLower(text)

	detected := []string{}
	found := make(map[string]bool)
	for _, cat := range a.dict.SkillCatalog {
		for _, skill := range cat.Skills {
			key := strings.ToLower(skill)
			if found[key] {
				continue
			}
			if strings.Contains(lower, key) {
				found[key] = true
				detected = append(detected, skill)
			}
		}
	}

	focus := make(map[string]bool, len(a.dict.MissingSkillCategories))
	for _, name := range a.dict.MissingSkillCategories {
		focus[name] = true
	}
	missing := []string{}
	listed := make(map[string]bool)
	for _, cat := range a.dict.SkillCatalog {
		if !focus[cat.Name] {
			continue
		}
		for _, skill := range cat.Skills {
			key := strings.ToLower(skill)
			if found[key] || listed[key] {
				continue
			}
			listed[key] = true
			missing = append(missing, skill)
		}
	}
	if limit := a.dict.MissingSkillLimit; limit > 0 && len(missing) > limit {
		missing = missing[:limit]
	}

	return SkillCoverage{Detected: detected, Missing: missing, Coverage: len(detected)}
}
