package analyses

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"resume-analysis/internal/ai"
	"resume-analysis/internal/analyses/ats"
	"resume-analysis/internal/analyses/dictionary"
	"resume-analysis/internal/analyses/heuristics"
	"resume-analysis/internal/analyses/matcher"
	"resume-analysis/internal/resumes"
	"resume-analysis/internal/shared/metrics"
	"resume-analysis/internal/shared/telemetry"
)

// Capability names reported to the fallback hook by the engine itself. The
// sub-analyzers report their own.
const (
	capabilityResumeParse   = "resume_parse"
	capabilityImprovements  = "improvements"
	capabilityJDSuggestions = "jd_suggestions"
	capabilityIndustry      = "industry_requirements"
)

var errAIDisabled = errors.New("ai disabled")

// Insights is the AI surface the engine can use. *ai.Service implements it.
type Insights interface {
	heuristics.SynonymSource
	heuristics.VerbSuggester
	matcher.SkillExtractor
	matcher.SuggestionSource
	ParseResume(ctx context.Context, resumeText string) (ai.ResumeMetadata, error)
	Improvements(ctx context.Context, resumeText, extra string) (ai.Improvements, error)
	JDSuggestions(ctx context.Context, resumeText, jdText string) (ai.Improvements, error)
	IndustryRequirements(ctx context.Context, jobRole, jdText string) (ats.IndustryRequirements, error)
}

// BasicAnalysis is the rule-based quality report shared by both modes.
type BasicAnalysis struct {
	Repeated []heuristics.WordFrequency `json:"repeated"`
	Impact   heuristics.ImpactAnalysis  `json:"impact"`
	Brevity  heuristics.BrevityResult   `json:"brevity"`
	Skills   heuristics.SkillCoverage   `json:"skills"`
}

// QualityResult is the quality-mode response body.
type QualityResult struct {
	BasicAnalysis
	OverallScore int               `json:"overallScore"`
	AIInsights   *ai.Improvements `json:"aiInsights"`
}

// JDMatchResult is the jd-match response body.
type JDMatchResult struct {
	ATSScore             ats.Result                `json:"atsScore"`
	MatchedSkills        []string                  `json:"matchedSkills"`
	KeywordGaps          matcher.KeywordGaps       `json:"keywordGaps"`
	TargetedSuggestions  []matcher.Suggestion      `json:"targetedSuggestions"`
	BasicAnalysis        BasicAnalysis             `json:"basicAnalysis"`
	AIRecommendations    *ai.Improvements          `json:"aiRecommendations"`
	IndustryRequirements *ats.IndustryRequirements `json:"industryRequirements"`
}

// Engine runs the two analysis modes. It is safe for concurrent use.
type Engine struct {
	insights   Insights
	heuristics *heuristics.Analyzer
	matcher    *matcher.Matcher
	scorer     *ats.Scorer
}

// NewEngine wires the analyzers over dict. A nil insights runs every
// analysis on the static rules only.
func NewEngine(dict dictionary.Dictionary, insights Insights) (*Engine, error) {
	heurOpts := []heuristics.Option{heuristics.WithFallbackHook(reportFallback)}
	matchOpts := []matcher.Option{matcher.WithFallbackHook(reportFallback)}
	if insights != nil {
		heurOpts = append(heurOpts,
			heuristics.WithSynonymSource(insights),
			heuristics.WithVerbSuggester(insights),
		)
		matchOpts = append(matchOpts,
			matcher.WithSkillExtractor(insights),
			matcher.WithSuggestionSource(insights),
		)
	}

	m, err := matcher.New(dict, matchOpts...)
	if err != nil {
		return nil, err
	}
	scorer, err := ats.New(dict)
	if err != nil {
		return nil, err
	}
	return &Engine{
		insights:   insights,
		heuristics: heuristics.New(dict, heurOpts...),
		matcher:    m,
		scorer:     scorer,
	}, nil
}

// AIEnabled reports whether an AI strategy is installed.
func (e *Engine) AIEnabled() bool {
	return e.insights != nil
}

// reportFallback logs and counts a strategy failure.
func reportFallback(capability string, err error) {
	fields := map[string]any{"capability": capability}
	if err != nil {
		fields["error"] = err.Error()
	}
	telemetry.Warn("ai.fallback", fields)
	metrics.IncAIFallback(capability)
}

// RunQuality analyzes a normalized resume on its own. The profile is parsed
// alongside so callers can persist it. Only context cancellation fails a run.
func (e *Engine) RunQuality(ctx context.Context, resumeText string) (QualityResult, resumes.Metadata, error) {
	var (
		result  QualityResult
		profile resumes.Metadata
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		result.Repeated = e.heuristics.RepeatedWords(gctx, resumeText, 0)
		return nil
	})
	g.Go(func() error {
		result.Impact = e.heuristics.ImpactWords(gctx, resumeText)
		return nil
	})
	g.Go(func() error {
		profile = e.parseProfile(gctx, resumeText)
		return nil
	})
	g.Go(func() error {
		result.AIInsights = e.improvements(gctx, resumeText)
		return nil
	})
	result.Brevity = e.heuristics.BrevityScore(resumeText)
	result.Skills = e.heuristics.SkillCoverage(resumeText)
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return QualityResult{}, resumes.Metadata{}, err
	}

	result.OverallScore = heuristics.OverallScore(result.Repeated, result.Impact, result.Brevity, result.Skills)
	return result, profile, nil
}

// RunJDMatch scores a normalized resume against a cleaned job description.
// Industry requirements, skill matching, suggestions and the basic analysis
// run concurrently; the weighted score is computed once they join.
func (e *Engine) RunJDMatch(ctx context.Context, resumeText, jdText, jobRole string) (JDMatchResult, resumes.Metadata, error) {
	var (
		result   JDMatchResult
		profile  resumes.Metadata
		skills   matcher.SkillMatch
		industry *ats.IndustryRequirements
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		profile = e.parseProfile(gctx, resumeText)
		return nil
	})
	g.Go(func() error {
		industry = e.industry(gctx, jobRole, jdText)
		return nil
	})
	g.Go(func() error {
		skills = e.matcher.MatchedSkills(gctx, resumeText, jdText)
		return nil
	})
	g.Go(func() error {
		result.TargetedSuggestions = e.matcher.TargetedSuggestions(gctx, resumeText, jdText)
		return nil
	})
	g.Go(func() error {
		result.AIRecommendations = e.jdSuggestions(gctx, resumeText, jdText)
		return nil
	})
	g.Go(func() error {
		result.BasicAnalysis.Repeated = e.heuristics.RepeatedWords(gctx, resumeText, 0)
		return nil
	})
	g.Go(func() error {
		result.BasicAnalysis.Impact = e.heuristics.ImpactWords(gctx, resumeText)
		return nil
	})
	result.KeywordGaps = e.matcher.KeywordGaps(resumeText, jdText)
	result.BasicAnalysis.Brevity = e.heuristics.BrevityScore(resumeText)
	result.BasicAnalysis.Skills = e.heuristics.SkillCoverage(resumeText)
	_ = g.Wait()
	if err := ctx.Err(); err != nil {
		return JDMatchResult{}, resumes.Metadata{}, err
	}

	result.MatchedSkills = skills.Matched
	result.IndustryRequirements = industry
	result.ATSScore = e.scorer.ScoreJD(ats.Input{
		ResumeText:    resumeText,
		JDText:        jdText,
		MatchedSkills: skills,
		KeywordGaps:   result.KeywordGaps,
		Industry:      industry,
	})
	return result, profile, nil
}

// Score is the simple-mode ATS score.
func (e *Engine) Score(resumeText, jdText string) ats.SimpleResult {
	return e.scorer.Simple(resumeText, jdText)
}

func (e *Engine) parseProfile(ctx context.Context, resumeText string) resumes.Metadata {
	if e.insights == nil {
		return resumes.Metadata{Error: errAIDisabled.Error()}
	}
	meta, err := e.insights.ParseResume(ctx, resumeText)
	if err != nil {
		reportFallback(capabilityResumeParse, err)
		return resumes.Metadata{Error: err.Error()}
	}
	return resumes.Metadata{ResumeMetadata: meta}
}

func (e *Engine) improvements(ctx context.Context, resumeText string) *ai.Improvements {
	if e.insights == nil {
		return nil
	}
	out, err := e.insights.Improvements(ctx, resumeText, "")
	if err != nil {
		reportFallback(capabilityImprovements, err)
		return nil
	}
	return &out
}

func (e *Engine) jdSuggestions(ctx context.Context, resumeText, jdText string) *ai.Improvements {
	if e.insights == nil {
		return nil
	}
	out, err := e.insights.JDSuggestions(ctx, resumeText, jdText)
	if err != nil {
		reportFallback(capabilityJDSuggestions, err)
		return nil
	}
	return &out
}

func (e *Engine) industry(ctx context.Context, jobRole, jdText string) *ats.IndustryRequirements {
	if e.insights == nil {
		return nil
	}
	req, err := e.insights.IndustryRequirements(ctx, jobRole, jdText)
	if err != nil {
		reportFallback(capabilityIndustry, err)
		return nil
	}
	// The echoed requirements and the scorer share one normalized value.
	n := req.Normalized()
	return &n
}
