package matcher

// KeywordGaps lists JD keywords absent from and present in the resume.
type KeywordGaps struct {
	Missing []string `json:"missing"`
	Present []string `json:"present"`
}

// KeywordGaps compares extracted keywords. Missing is capped by the
// dictionary's MissingKeywords limit in extraction order.
func (m *Matcher) KeywordGaps(resumeText, jdText string) KeywordGaps {
	jd := m.ExtractKeywords(jdText)
	resume := newOrderedSet()
	for _, kw := range m.ExtractKeywords(resumeText) {
		resume.add(kw)
	}

	gaps := KeywordGaps{Missing: []string{}, Present: []string{}}
	for _, kw := range jd {
		if resume.has(kw) {
			gaps.Present = append(gaps.Present, kw)
		} else {
			gaps.Missing = append(gaps.Missing, kw)
		}
	}
	if limit := m.dict.MissingKeywords; limit > 0 && len(gaps.Missing) > limit {
		gaps.Missing = gaps.Missing[:limit]
	}
	return gaps
}
