package heuristics

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"resume-analysis/internal/analyses/textnorm"
)

const (
	maxVerbSuggestionLen = 50
	maxVerbCalls         = 4
)

var errBadVerb = errors.New("verb suggestion empty or too long")

// WeakWordInstance is one weak phrase found on one line.
type WeakWordInstance struct {
	Word       string `json:"word"`
	Suggestion string `json:"suggestion"`
	Count      int    `json:"count"`
	Line       string `json:"line"`
}

// StrongWordInstance is one strong verb found on one line.
type StrongWordInstance struct {
	Line       string `json:"line"`
	StrongWord string `json:"strongWord"`
}

// ImpactAnalysis lists the weak and strong phrasing found in a resume.
type ImpactAnalysis struct {
	Weak   []WeakWordInstance   `json:"weak"`
	Strong []StrongWordInstance `json:"strong"`
}

// ImpactWords scans every non-blank line for weak phrases and strong verbs.
// Matching is case-insensitive substring matching, so overlapping phrases
// such as "involved" and "involved in" are both reported.
func (a *Analyzer) ImpactWords(ctx context.Context, text string) ImpactAnalysis {
	report := ImpactAnalysis{
		Weak:   []WeakWordInstance{},
		Strong: []StrongWordInstance{},
	}
	for _, line := range textnorm.Lines(text) {
		lower := strings.ToLower(line)
		for _, phrase := range a.dict.WeakPhrases {
			n := strings.Count(lower, strings.ToLower(phrase))
			if n == 0 {
				continue
			}
			report.Weak = append(report.Weak, WeakWordInstance{
				Word:  phrase,
				Count: n,
				Line:  line,
			})
		}
		for _, verb := range a.dict.StrongVerbs {
			if strings.Contains(lower, strings.ToLower(verb)) {
				report.Strong = append(report.Strong, StrongWordInstance{Line: line, StrongWord: verb})
			}
		}
	}
	a.fillSuggestions(ctx, report.Weak)
	return report
}

type verbKey struct{ phrase, line string }

// fillSuggestions resolves one replacement verb per distinct (phrase, line).
// Suggester calls run concurrently, at most maxVerbCalls at a time; the
// fallback hook is never called concurrently.
func (a *Analyzer) fillSuggestions(ctx context.Context, weak []WeakWordInstance) {
	def := a.dict.DefaultStrongVerb()
	if a.verbs == nil {
		for i := range weak {
			weak[i].Suggestion = def
		}
		return
	}

	verbs := make(map[verbKey]string)
	var keys []verbKey
	for _, w := range weak {
		key := verbKey{w.Word, w.Line}
		if _, ok := verbs[key]; !ok {
			verbs[key] = def
			keys = append(keys, key)
		}
	}
	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxVerbCalls)
	for _, key := range keys {
		g.Go(func() error {
			verb, err := a.suggestVerb(gctx, key.phrase, key.line)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				a.fallback("verb_suggestion", err)
				return nil
			}
			verbs[key] = verb
			return nil
		})
	}
	_ = g.Wait()

	for i := range weak {
		weak[i].Suggestion = verbs[verbKey{weak[i].Word, weak[i].Line}]
	}
}

func (a *Analyzer) suggestVerb(ctx context.Context, phrase, line string) (string, error) {
	verb, err := a.verbs.SuggestVerb(ctx, phrase, line)
	if err != nil {
		return "", err
	}
	verb = strings.TrimSpace(verb)
	if verb == "" || len(verb) >= maxVerbSuggestionLen {
		return "", errBadVerb
	}
	return verb, nil
}
