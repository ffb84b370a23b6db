// Package heuristics runs the rule-based resume quality checks: repeated
// words, weak and strong phrasing, bullet brevity and skill coverage.
package heuristics

import (
	"context"

	"resume-analysis/internal/analyses/dictionary"
)

// SynonymSource proposes alternatives for an overused word.
type SynonymSource interface {
	Synonyms(ctx context.Context, word string) ([]string, error)
}

// VerbSuggester proposes a stronger verb for a weak phrase found on a line.
type VerbSuggester interface {
	SuggestVerb(ctx context.Context, weakPhrase, line string) (string, error)
}

// FallbackFunc is told when a pluggable strategy failed and the static
// default was used instead.
type FallbackFunc func(capability string, err error)

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithSynonymSource installs an AI-backed synonym strategy.
func WithSynonymSource(src SynonymSource) Option {
	return func(a *Analyzer) { a.synonyms = src }
}

// WithVerbSuggester installs an AI-backed verb strategy.
func WithVerbSuggester(vs VerbSuggester) Option {
	return func(a *Analyzer) { a.verbs = vs }
}

// WithFallbackHook registers a callback for strategy failures.
func WithFallbackHook(fn FallbackFunc) Option {
	return func(a *Analyzer) { a.onFallback = fn }
}

// Analyzer is safe for concurrent use once constructed.
type Analyzer struct {
	dict       dictionary.Dictionary
	synonyms   SynonymSource
	verbs      VerbSuggester
	onFallback FallbackFunc
}

// New builds an Analyzer over the given dictionary.
func New(dict dictionary.Dictionary, opts ...Option) *Analyzer {
	a := &Analyzer{dict: dict}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Analyzer) fallback(capability string, err error) {
	if a.onFallback != nil {
		a.onFallback(capability, err)
	}
}
