package heuristics

import (
	"context"
	"errors"
	"sort"
	"strings"
	"unicode/utf8"
)

const maxSynonyms = 5

var errNoSynonyms = errors.New("empty synonym list")

// WordFrequency is a token used at least threshold times. Suggestions come
// either from the synonym source or from the static table, never both.
type WordFrequency struct {
	Word        string   `json:"word"`
	Frequency   int      `json:"frequency"`
	Suggestions []string `json:"suggestions"`
}

// RepeatedWords counts lowercase whitespace-delimited tokens and reports those
// occurring at least threshold times, most frequent first. Ties keep the order
// in which the words first appear. threshold <= 0 uses the dictionary default.
func (a *Analyzer) RepeatedWords(ctx context.Context, text string, threshold int) []WordFrequency {
	if threshold <= 0 {
		threshold = a.dict.RepeatedThreshold
	}

	counts := make(map[string]int)
	var order []string
	for _, tok := range strings.Fields(strings.ToLower(text)) {
		if utf8.RuneCountInString(tok) < a.dict.RepeatedMinLength {
			continue
		}
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
	}

	out := []WordFrequency{}
	for _, w := range order {
		if counts[w] >= threshold {
			out = append(out, WordFrequency{Word: w, Frequency: counts[w]})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Frequency > out[j].Frequency })

	for i := range out {
		out[i].Suggestions = a.suggestSynonyms(ctx, out[i].Word)
	}
	return out
}

func (a *Analyzer) suggestSynonyms(ctx context.Context, word string) []string {
	if a.synonyms != nil {
		alts, err := a.synonyms.Synonyms(ctx, word)
		if err == nil && len(alts) == 0 {
			err = errNoSynonyms
		}
		if err == nil {
			if len(alts) > maxSynonyms {
				alts = alts[:maxSynonyms]
			}
			return alts
		}
		a.fallback("synonyms", err)
	}
	return a.dict.SynonymsFor(word)
}
