package matcher

import (
	"context"
	"strings"
)

// SkillMatch splits JD skills into those the resume shows and those it lacks.
type SkillMatch struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
}

// MatchedSkills classifies JD skills as matched or missing. With a skill
// extractor installed both texts are extracted independently and compared
// case-insensitively; otherwise, or when extraction fails, the static regex
// battery is used.
func (m *Matcher) MatchedSkills(ctx context.Context, resumeText, jdText string) SkillMatch {
	if m.skills != nil {
		match, err := m.extractedSkills(ctx, resumeText, jdText)
		if err == nil {
			return match
		}
		m.fallback("skill_extraction", err)
	}
	return m.staticSkills(resumeText, jdText)
}

func (m *Matcher) extractedSkills(ctx context.Context, resumeText, jdText string) (SkillMatch, error) {
	resumeSkills, err := m.skills.ExtractSkills(ctx, resumeText)
	if err != nil {
		return SkillMatch{}, err
	}
	jdSkills, err := m.skills.ExtractSkills(ctx, jdText)
	if err != nil {
		return SkillMatch{}, err
	}

	have := newOrderedSet()
	for _, s := range resumeSkills {
		if key := strings.ToLower(strings.TrimSpace(s)); key != "" {
			have.add(key)
		}
	}
	matched, missing := newOrderedSet(), newOrderedSet()
	for _, s := range jdSkills {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" {
			continue
		}
		if have.has(key) {
			matched.add(key)
		} else {
			missing.add(key)
		}
	}
	return SkillMatch{Matched: matched.items, Missing: missing.items}, nil
}

func (m *Matcher) staticSkills(resumeText, jdText string) SkillMatch {
	matched, missing := newOrderedSet(), newOrderedSet()
	for _, re := range m.skillRes {
		inResume := newOrderedSet()
		for _, r := range re.FindAllString(resumeText, -1) {
			inResume.add(strings.ToLower(r))
		}
		for _, j := range re.FindAllString(jdText, -1) {
			key := strings.ToLower(j)
			if inResume.has(key) {
				matched.add(key)
			} else {
				missing.add(key)
			}
		}
	}
	return SkillMatch{Matched: matched.items, Missing: missing.items}
}
