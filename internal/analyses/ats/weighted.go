package ats

import (
	"math"
	"strings"

	"resume-analysis/internal/analyses/dictionary"
	"resume-analysis/internal/analyses/matcher"
)

const (
	neutralScore      = 50
	requiredSection   = 33.33
	optionalSection   = 12.5
	optionalWeight    = 0.5
	genericVerbTarget = 6
	degreeScore       = 75
	noDegreeScore     = 25
)

// Input is everything the weighted scorer consults. Industry is optional.
type Input struct {
	ResumeText    string
	JDText        string
	MatchedSkills matcher.SkillMatch
	KeywordGaps   matcher.KeywordGaps
	Industry      *IndustryRequirements
}

// Breakdown holds the nine rounded sub-scores, each in [0,100].
type Breakdown struct {
	Keyword        int `json:"keyword"`
	Section        int `json:"section"`
	Skills         int `json:"skills"`
	Technical      int `json:"technical"`
	Tools          int `json:"tools"`
	ActionVerbs    int `json:"actionVerbs"`
	Metrics        int `json:"metrics"`
	Certifications int `json:"certifications"`
	IndustryTerms  int `json:"industryTerms"`
}

// Weighted returns Σ weight×sub-score, unclamped.
func (b Breakdown) Weighted(w dictionary.Weights) float64 {
	return w.Keyword*float64(b.Keyword) +
		w.Section*float64(b.Section) +
		w.Skills*float64(b.Skills) +
		w.Technical*float64(b.Technical) +
		w.Tools*float64(b.Tools) +
		w.ActionVerbs*float64(b.ActionVerbs) +
		w.Metrics*float64(b.Metrics) +
		w.Certifications*float64(b.Certifications) +
		w.IndustryTerms*float64(b.IndustryTerms)
}

// Details are the raw counts behind the breakdown.
type Details struct {
	MatchedKeywords     int `json:"matchedKeywords"`
	TotalKeywords       int `json:"totalKeywords"`
	MissingKeywords     int `json:"missingKeywords"`
	PresentKeywords     int `json:"presentKeywords"`
	MatchedSkills       int `json:"matchedSkills"`
	MissingSkills       int `json:"missingSkills"`
	RequiredSections    int `json:"requiredSections"`
	OptionalSections    int `json:"optionalSections"`
	TechnicalFound      int `json:"technicalFound"`
	ToolsFound          int `json:"toolsFound"`
	ActionVerbsFound    int `json:"actionVerbsFound"`
	MetricPatterns      int `json:"metricPatterns"`
	MetricKeywordsFound int `json:"metricKeywordsFound"`
	CertificationsFound int `json:"certificationsFound"`
	IndustryTermsFound  int `json:"industryTermsFound"`
}

// Result is the weighted score with its breakdown.
type Result struct {
	Score            int                   `json:"score"`
	Breakdown        Breakdown             `json:"breakdown"`
	Details          Details               `json:"details"`
	IndustryInsights *IndustryRequirements `json:"industryInsights"`
}

// ScoreJD computes the weighted score. It is pure and never fails.
func (s *Scorer) ScoreJD(in Input) Result {
	lower := strings.ToLower(in.ResumeText)
	var d Details
	var ind *IndustryRequirements
	if in.Industry != nil {
		n := in.Industry.Normalized()
		ind = &n
	}

	var keyword float64
	d.MatchedKeywords, d.TotalKeywords, keyword = keywordOverlap(in.ResumeText, in.JDText)
	d.MissingKeywords = len(in.KeywordGaps.Missing)
	d.PresentKeywords = len(in.KeywordGaps.Present)

	d.RequiredSections = countFound(lower, s.dict.RequiredSections)
	d.OptionalSections = countFound(lower, s.dict.OptionalSections)
	section := float64(d.RequiredSections)*requiredSection +
		float64(d.OptionalSections)*optionalSection*optionalWeight

	d.MatchedSkills = len(in.MatchedSkills.Matched)
	d.MissingSkills = len(in.MatchedSkills.Missing)
	var skills float64
	if d.MatchedSkills > 0 {
		skills = float64(d.MatchedSkills) / float64(d.MatchedSkills+d.MissingSkills) * 100
	}

	technical := industryFactor(lower, ind, func(r *IndustryRequirements) []string { return r.TechnicalSkills }, &d.TechnicalFound)
	tools := industryFactor(lower, ind, func(r *IndustryRequirements) []string { return r.Tools }, &d.ToolsFound)
	terms := industryFactor(lower, ind, func(r *IndustryRequirements) []string { return r.IndustryTerms }, &d.IndustryTermsFound)

	var verbs float64
	if ind != nil && len(ind.ActionVerbs) > 0 {
		verbs, d.ActionVerbsFound, _ = fractionScore(lower, ind.ActionVerbs)
	} else {
		d.ActionVerbsFound = countFound(lower, s.dict.GenericActionVerbs)
		verbs = math.Min(float64(d.ActionVerbsFound)/genericVerbTarget*100, 100)
	}

	for _, re := range s.metricRes {
		d.MetricPatterns += len(re.FindAllString(in.ResumeText, -1))
	}
	if ind != nil {
		d.MetricKeywordsFound = countFound(lower, ind.MetricKeywords)
	}
	metrics := math.Min(float64(d.MetricPatterns*10+d.MetricKeywordsFound*20)/2, 100)

	var certs float64
	if ind != nil && len(ind.Certifications) > 0 {
		certs, d.CertificationsFound, _ = fractionScore(lower, ind.Certifications)
	} else if countFound(lower, s.dict.EducationCues) > 0 {
		certs = degreeScore
	} else {
		certs = noDegreeScore
	}

	b := Breakdown{
		Keyword:        roundScore(keyword),
		Section:        roundScore(section),
		Skills:         roundScore(skills),
		Technical:      roundScore(technical),
		Tools:          roundScore(tools),
		ActionVerbs:    roundScore(verbs),
		Metrics:        roundScore(metrics),
		Certifications: roundScore(certs),
		IndustryTerms:  roundScore(terms),
	}
	return Result{
		Score:            roundScore(b.Weighted(s.dict.Weights)),
		Breakdown:        b,
		Details:          d,
		IndustryInsights: ind,
	}
}

// industryFactor scores one role-specific list, neutral when the list or
// the requirements are missing.
func industryFactor(lower string, ind *IndustryRequirements, pick func(*IndustryRequirements) []string, found *int) float64 {
	if ind == nil {
		return neutralScore
	}
	score, n, ok := fractionScore(lower, pick(ind))
	if !ok {
		return neutralScore
	}
	*found = n
	return score
}

func roundScore(v float64) int {
	return int(math.Round(clamp(v)))
}
