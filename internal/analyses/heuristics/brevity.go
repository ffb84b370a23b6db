package heuristics

import (
	"strings"

	"resume-analysis/internal/analyses/textnorm"
)

const (
	longBulletWords  = 25
	shortBulletWords = 5
	longPenalty      = 5
	shortPenalty     = 3
)

// BrevityIssue describes one bullet that is too long or too vague.
type BrevityIssue struct {
	Original   string `json:"original"`
	Issue      string `json:"issue"`
	WordCount  int    `json:"wordCount"`
	Suggestion string `json:"suggestion"`
}

// BrevityResult scores bullet length. Score starts at 100 and never drops below 0.
type BrevityResult struct {
	Score        int            `json:"score"`
	TotalBullets int            `json:"totalBullets"`
	Improvements []BrevityIssue `json:"improvements"`
}

// BrevityScore inspects lines that start with "-" or "•". The marker counts
// as a word, matching a plain whitespace split of the bullet.
func (a *Analyzer) BrevityScore(text string) BrevityResult {
	report := BrevityResult{Score: 100, Improvements: []BrevityIssue{}}
	for _, line := range textnorm.Lines(text) {
		if !isBullet(line) {
			continue
		}
		report.TotalBullets++
		words := len(strings.Fields(line))
		switch {
		case words > longBulletWords:
			report.Score -= longPenalty
			report.Improvements = append(report.Improvements, BrevityIssue{
				Original:   line,
				Issue:      "Too long",
				WordCount:  words,
				Suggestion: "Condense to 15-20 words max",
			})
		case words < shortBulletWords:
			report.Score -= shortPenalty
			report.Improvements = append(report.Improvements, BrevityIssue{
				Original:   line,
				Issue:      "Too vague",
				WordCount:  words,
				Suggestion: "Add specific details and metrics",
			})
		}
	}
	if report.Score < 0 {
		report.Score = 0
	}
	return report
}

func isBullet(line string) bool {
	return strings.HasPrefix(line, "-") || strings.HasPrefix(line, "•")
}
