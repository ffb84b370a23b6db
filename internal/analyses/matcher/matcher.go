// Package matcher compares resume text against a job description: keyword
// extraction, skill matching, keyword gaps and targeted suggestions.
package matcher

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"resume-analysis/internal/analyses/dictionary"
)

// SkillExtractor pulls a free-form skill list out of one text.
type SkillExtractor interface {
	ExtractSkills(ctx context.Context, text string) ([]string, error)
}

// SuggestionSource produces structured suggestions for a resume/JD pair.
type SuggestionSource interface {
	TargetedSuggestions(ctx context.Context, resumeText, jdText string) ([]Suggestion, error)
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithSkillExtractor installs an AI-backed skill extraction strategy.
func WithSkillExtractor(se SkillExtractor) Option {
	return func(m *Matcher) { m.skills = se }
}

// WithSuggestionSource installs an AI-backed targeted suggestion strategy.
func WithSuggestionSource(src SuggestionSource) Option {
	return func(m *Matcher) { m.suggestions = src }
}

// WithFallbackHook registers a callback for strategy failures.
func WithFallbackHook(fn func(capability string, err error)) Option {
	return func(m *Matcher) { m.onFallback = fn }
}

// Matcher holds compiled pattern batteries and is safe for concurrent use.
type Matcher struct {
	dict        dictionary.Dictionary
	keywordRes  []*regexp.Regexp
	skillRes    []*regexp.Regexp
	skills      SkillExtractor
	suggestions SuggestionSource
	onFallback  func(capability string, err error)
}

// New compiles the dictionary's pattern batteries.
func New(dict dictionary.Dictionary, opts ...Option) (*Matcher, error) {
	keywordRes, err := compileAll(dict.KeywordPatterns)
	if err != nil {
		return nil, err
	}
	skillRes, err := compileAll(dict.SkillPatterns)
	if err != nil {
		return nil, err
	}
	m := &Matcher{dict: dict, keywordRes: keywordRes, skillRes: skillRes}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func compileAll(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func (m *Matcher) fallback(capability string, err error) {
	if m.onFallback != nil {
		m.onFallback(capability, err)
	}
}

// ExtractKeywords returns the lowercase, de-duplicated matches of the keyword
// battery in pattern order, then match order.
func (m *Matcher) ExtractKeywords(text string) []string {
	set := newOrderedSet()
	for _, re := range m.keywordRes {
		for _, match := range re.FindAllString(text, -1) {
			set.add(strings.ToLower(match))
		}
	}
	return set.items
}

type orderedSet struct {
	seen  map[string]bool
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]bool), items: []string{}}
}

func (s *orderedSet) add(v string) {
	if s.seen[v] {
		return
	}
	s.seen[v] = true
	s.items = append(s.items, v)
}

func (s *orderedSet) has(v string) bool {
	return s.seen[v]
}
