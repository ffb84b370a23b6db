package analyses

import (
	"encoding/json"
	"time"
)

// Type is the analysis mode.
type Type string

const (
	TypeQuality Type = "quality"
	TypeJDMatch Type = "jd-match"
)

// Analysis is a stored analysis run. Results holds the mode's report without
// the AI text, which lives in AISuggestions.
type Analysis struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	ResumeID       string          `json:"resumeId,omitempty"`
	Type           Type            `json:"analysisType"`
	JobDescription string          `json:"jobDescription,omitempty"`
	JobRole        string          `json:"jobRole,omitempty"`
	Results        json.RawMessage `json:"results"`
	AIEnhanced     bool            `json:"aiEnhanced"`
	AISuggestions  json.RawMessage `json:"aiSuggestions,omitempty"`
	CreatedAt      time.Time       `json:"analyzedAt"`
}

// storedQuality is the persisted quality report.
type storedQuality struct {
	BasicAnalysis
	OverallScore int `json:"overallScore"`
}

// storedJDMatch is the persisted jd-match report: the scores plus the basic
// analysis inlined.
type storedJDMatch struct {
	ATSScore             any `json:"atsScore"`
	MatchedSkills        any `json:"matchedSkills"`
	KeywordGaps          any `json:"keywordGaps"`
	TargetedSuggestions  any `json:"targetedSuggestions"`
	IndustryRequirements any `json:"industryRequirements,omitempty"`
	BasicAnalysis
}
