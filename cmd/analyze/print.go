package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"resume-analysis/internal/ai"
	"resume-analysis/internal/analyses"
	"resume-analysis/internal/analyses/ats"
)

const maxListed = 5

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// scoreString colors a 0-100 score: green from 75, yellow from 50.
func scoreString(score int) string {
	switch {
	case score >= 75:
		return color.GreenString("%d", score)
	case score >= 50:
		return color.YellowString("%d", score)
	default:
		return color.RedString("%d", score)
	}
}

func heading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", color.New(color.Bold, color.Underline).Sprint(title))
}

func bullet(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s %s\n", color.CyanString("→"), fmt.Sprintf(format, args...))
}

func listed(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	if len(items) > maxListed {
		return strings.Join(items[:maxListed], ", ") + fmt.Sprintf(" (+%d more)", len(items)-maxListed)
	}
	return strings.Join(items, ", ")
}

func printBasic(w io.Writer, basic analyses.BasicAnalysis) {
	heading(w, "Skills")
	bullet(w, "coverage %s%%", scoreString(basic.Skills.Coverage))
	bullet(w, "detected: %s", listed(basic.Skills.Detected))
	bullet(w, "missing: %s", listed(basic.Skills.Missing))

	heading(w, "Brevity")
	bullet(w, "score %s across %d bullets", scoreString(basic.Brevity.Score), basic.Brevity.TotalBullets)
	for i, issue := range basic.Brevity.Improvements {
		if i == maxListed {
			break
		}
		bullet(w, "%s: %s", issue.Issue, issue.Original)
	}

	heading(w, "Impact")
	bullet(w, "%d strong, %d weak", len(basic.Impact.Strong), len(basic.Impact.Weak))
	for i, weak := range basic.Impact.Weak {
		if i == maxListed {
			break
		}
		bullet(w, "%q → %s", weak.Word, color.GreenString(weak.Suggestion))
	}

	if len(basic.Repeated) > 0 {
		heading(w, "Repeated words")
		for i, rep := range basic.Repeated {
			if i == maxListed {
				break
			}
			bullet(w, "%s ×%d (try %s)", rep.Word, rep.Frequency, listed(rep.Suggestions))
		}
	}
}

func printImprovements(w io.Writer, title string, imp *ai.Improvements) {
	if imp == nil || len(imp.Improvements) == 0 {
		return
	}
	heading(w, title)
	for i, item := range imp.Improvements {
		if i == maxListed {
			break
		}
		bullet(w, "%s", item.Original)
		fmt.Fprintf(w, "      %s\n", color.GreenString(item.Improved))
	}
}

func printQuality(w io.Writer, result analyses.QualityResult) {
	fmt.Fprintf(w, "%s %s/100\n", color.New(color.Bold).Sprint("Overall score:"), scoreString(result.OverallScore))
	printBasic(w, result.BasicAnalysis)
	printImprovements(w, "Suggested rewrites", result.AIInsights)
}

func printJDMatch(w io.Writer, role string, result analyses.JDMatchResult) {
	fmt.Fprintf(w, "%s %s/100 for %s\n", color.New(color.Bold).Sprint("ATS score:"), scoreString(result.ATSScore.Score), color.CyanString(role))

	heading(w, "Breakdown")
	b := result.ATSScore.Breakdown
	bullet(w, "keywords %s, sections %s, skills %s", scoreString(b.Keyword), scoreString(b.Section), scoreString(b.Skills))
	bullet(w, "technical %s, tools %s, action verbs %s", scoreString(b.Technical), scoreString(b.Tools), scoreString(b.ActionVerbs))
	bullet(w, "metrics %s, certifications %s, industry terms %s", scoreString(b.Metrics), scoreString(b.Certifications), scoreString(b.IndustryTerms))

	heading(w, "Keywords")
	bullet(w, "matched skills: %s", listed(result.MatchedSkills))
	bullet(w, "present: %s", listed(result.KeywordGaps.Present))
	bullet(w, "missing: %s", color.RedString(listed(result.KeywordGaps.Missing)))

	if len(result.TargetedSuggestions) > 0 {
		heading(w, "Suggestions")
		for i, s := range result.TargetedSuggestions {
			if i == maxListed {
				break
			}
			bullet(w, "%s", s.Suggestion)
		}
	}
	printImprovements(w, "Suggested rewrites", result.AIRecommendations)
}

func printScore(w io.Writer, result ats.SimpleResult) {
	fmt.Fprintf(w, "%s %s/100\n", color.New(color.Bold).Sprint("ATS score:"), scoreString(result.Score))
	bullet(w, "keyword match %s%% (%d of %d)", scoreString(result.KeywordMatch), result.MatchedKeywords, result.TotalKeywords)
	bullet(w, "section completion %s%%", scoreString(result.SectionCompletion))
}
