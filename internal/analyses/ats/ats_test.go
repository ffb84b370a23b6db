package ats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-analysis/internal/analyses/dictionary"
	"resume-analysis/internal/analyses/matcher"
)

func newScorer(t *testing.T) *Scorer {
	t.Helper()
	s, err := New(dictionary.Default())
	require.NoError(t, err)
	return s
}

// tableScore recomputes the final score from the published factor weights.
func tableScore(b Breakdown) int {
	sum := 0.15*float64(b.Keyword) + 0.15*float64(b.Section) + 0.25*float64(b.Skills) +
		0.15*float64(b.Technical) + 0.10*float64(b.Tools) + 0.10*float64(b.ActionVerbs) +
		0.10*float64(b.Metrics) + 0.05*float64(b.Certifications) + 0.05*float64(b.IndustryTerms)
	return int(math.Round(math.Max(0, math.Min(100, sum))))
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"nodejs"}, tokenize("C++ & Node.js!!"))
	assert.Equal(t, []string{"python", "python", "java"}, tokenize("Python, python; Java go"))
	assert.Empty(t, tokenize(""))
}

func TestSimpleTenKeywordsFourMatched(t *testing.T) {
	jd := "alpha bravo charlie delta echoes foxtrot golf hotel india juliet"
	got := newScorer(t).Simple("alpha bravo charlie delta", jd)

	assert.Equal(t, 40, got.KeywordMatch)
	assert.Equal(t, 4, got.MatchedKeywords)
	assert.Equal(t, 10, got.TotalKeywords)
	assert.Equal(t, 0, got.SectionCompletion)
	assert.Equal(t, 24, got.Score)
}

func TestSimpleEmptyJobDescription(t *testing.T) {
	got := newScorer(t).Simple("Experience, Education, Skills, Contact", "")
	assert.Equal(t, 0, got.KeywordMatch)
	assert.Equal(t, 0, got.TotalKeywords)
	assert.Equal(t, 100, got.SectionCompletion)
	assert.Equal(t, 40, got.Score)
}

func TestSimpleCountsDuplicateJDWords(t *testing.T) {
	got := newScorer(t).Simple("python", "python python java")
	assert.Equal(t, 2, got.MatchedKeywords)
	assert.Equal(t, 3, got.TotalKeywords)
	assert.Equal(t, 67, got.KeywordMatch)
}

func TestScoreJDNeutralWithoutIndustry(t *testing.T) {
	in := Input{
		ResumeText:    "Experience\nEducation\nSkills: Go, Docker\n- Led a team and increased revenue by 40%",
		JDText:        "Go Docker Kubernetes engineer",
		MatchedSkills: matcher.SkillMatch{Matched: []string{"go", "docker"}, Missing: []string{"kubernetes"}},
	}
	got := newScorer(t).ScoreJD(in)

	assert.Equal(t, 50, got.Breakdown.Technical)
	assert.Equal(t, 50, got.Breakdown.Tools)
	assert.Equal(t, 50, got.Breakdown.IndustryTerms)
	assert.Nil(t, got.IndustryInsights)
	assert.Equal(t, 67, got.Breakdown.Skills)
	assert.Equal(t, 100, got.Breakdown.Section)
	assert.Equal(t, tableScore(got.Breakdown), got.Score)
}

func TestScoreJDWithIndustry(t *testing.T) {
	ind := &IndustryRequirements{
		TechnicalSkills: []string{"go", "rust"},
		Tools:           []string{"kubernetes", "terraform"},
		ActionVerbs:     []string{"led", "spearheaded"},
		Certifications:  []string{"AWS Certified"},
		MetricKeywords:  []string{"latency"},
	}
	in := Input{
		ResumeText: "Go, Kubernetes, Terraform. Led migrations. AWS Certified. Reduced latency by 40% saving $2M",
		JDText:     "Go engineer",
		Industry:   ind,
	}
	got := newScorer(t).ScoreJD(in)

	assert.Equal(t, 50, got.Breakdown.Technical)
	assert.Equal(t, 100, got.Breakdown.Tools)
	assert.Equal(t, 50, got.Breakdown.ActionVerbs)
	assert.Equal(t, 100, got.Breakdown.Certifications)
	assert.Equal(t, 50, got.Breakdown.IndustryTerms, "empty list stays neutral")
	assert.Equal(t, 2, got.Details.MetricPatterns)
	assert.Equal(t, 1, got.Details.MetricKeywordsFound)
	assert.Equal(t, 20, got.Breakdown.Metrics)
	assert.Equal(t, 0, got.Breakdown.Skills, "no matched skills")

	require.NotNil(t, got.IndustryInsights)
	assert.Equal(t, []string{}, got.IndustryInsights.IndustryTerms)
	assert.Equal(t, []string{"go", "rust"}, got.IndustryInsights.TechnicalSkills)
	assert.Equal(t, tableScore(got.Breakdown), got.Score)
}

func TestScoreJDGenericFallbacks(t *testing.T) {
	s := newScorer(t)

	got := s.ScoreJD(Input{ResumeText: "Led and managed teams, developed services"})
	assert.Equal(t, 3, got.Details.ActionVerbsFound)
	assert.Equal(t, 50, got.Breakdown.ActionVerbs)
	assert.Equal(t, 25, got.Breakdown.Certifications)
	assert.Equal(t, 0, got.Breakdown.Keyword)

	got = s.ScoreJD(Input{ResumeText: "Bachelor of Science"})
	assert.Equal(t, 75, got.Breakdown.Certifications)
}

func TestScoreJDSections(t *testing.T) {
	s := newScorer(t)
	assert.Equal(t, 40, s.ScoreJD(Input{ResumeText: "Experience Summary"}).Breakdown.Section)
	assert.Equal(t, 100, s.ScoreJD(Input{
		ResumeText: "experience education skills summary certifications projects achievements",
	}).Breakdown.Section)
}

func TestScoreJDBoundsAndWeightedSum(t *testing.T) {
	s := newScorer(t)
	full := &IndustryRequirements{
		TechnicalSkills: []string{"go"},
		Tools:           []string{"docker"},
		ActionVerbs:     []string{"led"},
		Certifications:  []string{"cka"},
		MetricKeywords:  []string{"latency", "revenue", "uptime", "cost", "users"},
		IndustryTerms:   []string{"saas"},
	}
	inputs := []Input{
		{},
		{ResumeText: "", JDText: "go docker kubernetes"},
		{
			ResumeText:    "experience education skills summary go docker led cka saas latency revenue uptime cost users 10% 20% 30% 40% 50% 60% 2x $5M 1,000,000 50+",
			JDText:        "experience education skills",
			MatchedSkills: matcher.SkillMatch{Matched: []string{"go", "docker"}},
			Industry:      full,
		},
	}
	for _, in := range inputs {
		got := s.ScoreJD(in)
		assert.GreaterOrEqual(t, got.Score, 0)
		assert.LessOrEqual(t, got.Score, 100)
		assert.Equal(t, tableScore(got.Breakdown), got.Score)
	}

	top := s.ScoreJD(inputs[2])
	assert.Equal(t, 100, top.Breakdown.Metrics)
	assert.Equal(t, 100, top.Score)
}
