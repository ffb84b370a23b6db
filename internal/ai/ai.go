// Package ai implements the optional model-backed capabilities used by the
// analysis engine. Every method returns structured data or an error; callers
// own the fallback.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"resume-analysis/internal/analyses/ats"
	"resume-analysis/internal/analyses/matcher"
	"resume-analysis/internal/llm"
	"resume-analysis/internal/shared/cache"
)

const (
	maxInputChars = 12000
	maxTokens     = 2000
	maxSynonyms   = 5
	defaultRole   = "General"
)

var (
	// ErrDisabled is returned when no model client is configured.
	ErrDisabled = errors.New("ai capabilities disabled")
	// ErrEmpty is returned when the model answered with nothing usable.
	ErrEmpty = errors.New("empty model result")

	creativeTemp   = float32(0.7)
	extractionTemp = float32(0.2)
)

// Service wraps a chat client with the capability prompts.
type Service struct {
	client llm.Client
	cache  *cache.Tiered
}

// Option configures a Service.
type Option func(*Service)

// WithCache caches industry requirements by role and JD hash.
func WithCache(c *cache.Tiered) Option {
	return func(s *Service) { s.cache = c }
}

// NewService returns a Service. A nil client disables every capability.
func NewService(client llm.Client, opts ...Option) *Service {
	s := &Service{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Enabled reports whether a model client is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.client != nil
}

func (s *Service) complete(ctx context.Context, capability, system, user string, temp float32) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}
	out, err := s.client.Complete(ctx, llm.Request{
		System:      system,
		User:        user,
		JSON:        true,
		Temperature: &temp,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", capability, err)
	}
	return out, nil
}

// Experience is one role parsed from a resume.
type Experience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Education is one degree parsed from a resume.
type Education struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year"`
}

// ResumeMetadata is the structured form of a resume.
type ResumeMetadata struct {
	Name           string       `json:"name"`
	Email          string       `json:"email"`
	Phone          string       `json:"phone"`
	Summary        string       `json:"summary"`
	Experience     []Experience `json:"experience"`
	Education      []Education  `json:"education"`
	Skills         []string     `json:"skills"`
	Certifications []string     `json:"certifications"`
}

// ParseResume extracts contact details, history and skills.
func (s *Service) ParseResume(ctx context.Context, resumeText string) (ResumeMetadata, error) {
	out, err := s.complete(ctx, "resume_parse", promptResumeParse, truncate(resumeText, maxInputChars), extractionTemp)
	if err != nil {
		return ResumeMetadata{}, err
	}
	return decode[ResumeMetadata](out)
}

// Improvement is one rewritten resume line.
type Improvement struct {
	Original string `json:"original"`
	Improved string `json:"improved"`
	Reason   string `json:"reason"`
}

// Improvements is the model's list of rewrites.
type Improvements struct {
	Improvements []Improvement `json:"improvements"`
}

// Improvements suggests rewrites for a resume. extra is optional context.
func (s *Service) Improvements(ctx context.Context, resumeText, extra string) (Improvements, error) {
	user := "Resume:\n" + truncate(resumeText, maxInputChars)
	if strings.TrimSpace(extra) != "" {
		user += "\n\nContext:\n" + extra
	}
	out, err := s.complete(ctx, "improvements", promptImprovements, user, creativeTemp)
	if err != nil {
		return Improvements{}, err
	}
	return decodeImprovements(out)
}

// JDSuggestions suggests rewrites that bring a resume closer to a JD.
func (s *Service) JDSuggestions(ctx context.Context, resumeText, jdText string) (Improvements, error) {
	user := fmt.Sprintf("Job Description:\n%s\n\n---\n\nResume:\n%s\n\n---\n\nAnalyze the resume against the job description and provide specific suggestions to improve alignment.",
		truncate(jdText, maxInputChars), truncate(resumeText, maxInputChars))
	out, err := s.complete(ctx, "jd_suggestions", promptJDSuggestions, user, creativeTemp)
	if err != nil {
		return Improvements{}, err
	}
	return decodeImprovements(out)
}

func decodeImprovements(raw string) (Improvements, error) {
	res, err := decode[Improvements](raw)
	if err != nil {
		return Improvements{}, err
	}
	kept := make([]Improvement, 0, len(res.Improvements))
	for _, imp := range res.Improvements {
		if strings.TrimSpace(imp.Improved) == "" {
			continue
		}
		kept = append(kept, imp)
	}
	return Improvements{Improvements: kept}, nil
}

// IndustryRequirements extracts role-specific signals for weighted scoring.
// Results are cached by role and JD when a cache is configured.
func (s *Service) IndustryRequirements(ctx context.Context, jobRole, jdText string) (ats.IndustryRequirements, error) {
	role := strings.TrimSpace(jobRole)
	if role == "" {
		role = defaultRole
	}
	key := cache.Key("industry", strings.ToLower(role), jdText)
	if s.cache != nil {
		if hit, ok := cache.GetJSON[ats.IndustryRequirements](ctx, s.cache, key); ok {
			return hit, nil
		}
	}

	user := fmt.Sprintf("Job Role: %s\n\nJob Description:\n%s\n\n---\n\nFocus on skills and terms specific to the %s role and industry. Return comprehensive lists.",
		role, truncate(jdText, maxInputChars), role)
	out, err := s.complete(ctx, "industry_requirements", promptIndustry, user, extractionTemp)
	if err != nil {
		return ats.IndustryRequirements{}, err
	}
	res, err := decode[ats.IndustryRequirements](out)
	if err != nil {
		return ats.IndustryRequirements{}, err
	}
	res = res.Normalized()
	if res.Empty() {
		return ats.IndustryRequirements{}, fmt.Errorf("industry_requirements: %w", ErrEmpty)
	}
	if s.cache != nil {
		cache.SetJSON(ctx, s.cache, key, res)
	}
	return res, nil
}

// ExtractSkills lists the skills mentioned in text.
func (s *Service) ExtractSkills(ctx context.Context, text string) ([]string, error) {
	out, err := s.complete(ctx, "skill_extraction", promptSkills, truncate(text, maxInputChars), extractionTemp)
	if err != nil {
		return nil, err
	}
	res, err := decode[struct {
		Skills []string `json:"skills"`
	}](out)
	if err != nil {
		return nil, err
	}
	return res.Skills, nil
}

// TargetedSuggestions proposes typed changes for a resume/JD pair.
func (s *Service) TargetedSuggestions(ctx context.Context, resumeText, jdText string) ([]matcher.Suggestion, error) {
	user := fmt.Sprintf("Job Description:\n%s\n\n---\n\nResume:\n%s", truncate(jdText, maxInputChars), truncate(resumeText, maxInputChars))
	out, err := s.complete(ctx, "targeted_suggestions", promptTargeted, user, creativeTemp)
	if err != nil {
		return nil, err
	}
	res, err := decode[struct {
		Suggestions []matcher.Suggestion `json:"suggestions"`
	}](out)
	if err != nil {
		return nil, err
	}
	for i := range res.Suggestions {
		res.Suggestions[i].Type = strings.ToLower(strings.TrimSpace(res.Suggestions[i].Type))
		if res.Suggestions[i].Type != matcher.TypeSkill {
			res.Suggestions[i].Keyword = ""
		}
	}
	return res.Suggestions, nil
}

// Synonyms returns up to five alternatives for an overused word.
func (s *Service) Synonyms(ctx context.Context, word string) ([]string, error) {
	out, err := s.complete(ctx, "synonyms", promptSynonyms, "Word: "+word, creativeTemp)
	if err != nil {
		return nil, err
	}
	res, err := decode[struct {
		Synonyms []string `json:"synonyms"`
	}](out)
	if err != nil {
		return nil, err
	}
	kept := make([]string, 0, maxSynonyms)
	for _, syn := range res.Synonyms {
		if syn = strings.TrimSpace(syn); syn != "" && len(kept) < maxSynonyms {
			kept = append(kept, syn)
		}
	}
	return kept, nil
}

// SuggestVerb returns one replacement verb for a weak phrase in line.
func (s *Service) SuggestVerb(ctx context.Context, weakPhrase, line string) (string, error) {
	user := fmt.Sprintf("Weak phrase: %s\nLine: %s", weakPhrase, truncate(line, 1000))
	out, err := s.complete(ctx, "verb_suggestion", promptVerb, user, extractionTemp)
	if err != nil {
		return "", err
	}
	res, err := decode[struct {
		Verb string `json:"verb"`
	}](out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(res.Verb), nil
}
