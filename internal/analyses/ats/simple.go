// Package ats scores a resume against a job description the way an
// applicant tracking system would: a simple keyword/section score and a
// nine-factor weighted score with a full breakdown.
package ats

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode"

	"resume-analysis/internal/analyses/dictionary"
)

// SimpleResult is the keyword-match plus section-completeness score.
type SimpleResult struct {
	Score             int `json:"score"`
	KeywordMatch      int `json:"keywordMatch"`
	SectionCompletion int `json:"sectionCompletion"`
	MatchedKeywords   int `json:"matchedKeywords"`
	TotalKeywords     int `json:"totalKeywords"`
}

// Scorer holds the dictionary and compiled metric patterns. It has no
// mutable state and is safe for concurrent use.
type Scorer struct {
	dict      dictionary.Dictionary
	metricRes []*regexp.Regexp
}

// New compiles the dictionary's metric patterns.
func New(dict dictionary.Dictionary) (*Scorer, error) {
	s := &Scorer{dict: dict}
	for _, p := range dict.MetricPatterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("compile metric pattern %q: %w", p, err)
		}
		s.metricRes = append(s.metricRes, re)
	}
	return s, nil
}

// Simple computes keywordMatch×0.6 + sectionCompletion×0.4.
func (s *Scorer) Simple(resumeText, jdText string) SimpleResult {
	matched, total, ratio := keywordOverlap(resumeText, jdText)

	lower := strings.ToLower(resumeText)
	section := 0
	for _, name := range s.dict.SimpleSections {
		if strings.Contains(lower, name) {
			section += 25
		}
	}
	if section > 100 {
		section = 100
	}

	return SimpleResult{
		Score:             int(math.Round(ratio*0.6 + float64(section)*0.4)),
		KeywordMatch:      int(math.Round(ratio)),
		SectionCompletion: section,
		MatchedKeywords:   matched,
		TotalKeywords:     total,
	}
}

// keywordOverlap counts JD tokens, duplicates included, that also appear in
// the resume token set. An empty JD scores 0.
func keywordOverlap(resumeText, jdText string) (matched, total int, ratio float64) {
	resume := make(map[string]struct{})
	for _, w := range tokenize(resumeText) {
		resume[w] = struct{}{}
	}
	jd := tokenize(jdText)
	for _, w := range jd {
		if _, ok := resume[w]; ok {
			matched++
		}
	}
	total = len(jd)
	if total == 0 {
		return 0, 0, 0
	}
	return matched, total, float64(matched) / float64(total) * 100
}

// tokenize lowercases, drops everything but ASCII letters, digits and
// whitespace, then keeps tokens longer than two characters.
func tokenize(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', unicode.IsSpace(r):
			return r
		default:
			return -1
		}
	}, strings.ToLower(text))

	out := []string{}
	for _, w := range strings.Fields(cleaned) {
		if len(w) > 2 {
			out = append(out, w)
		}
	}
	return out
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
