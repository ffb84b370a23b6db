package analyses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-analysis/internal/analyses/ats"
	"resume-analysis/internal/analyses/textnorm"
	"resume-analysis/internal/audit"
	"resume-analysis/internal/extract"
	"resume-analysis/internal/jobdesc"
	"resume-analysis/internal/resumes"
	"resume-analysis/internal/shared/metrics"
	"resume-analysis/internal/shared/telemetry"
)

// DefaultJobRole is used when a jd-match request names no role.
const DefaultJobRole = "General"

// Service runs analyses on uploads and keeps their history. Resumes and Audit
// are optional; without Resumes nothing is persisted.
type Service struct {
	Engine  *Engine
	Repo    Repo
	Resumes *resumes.Service
	Audit   *audit.Recorder
	now     func() time.Time
}

func NewService(engine *Engine, repo Repo, resumeSvc *resumes.Service, recorder *audit.Recorder) *Service {
	return &Service{Engine: engine, Repo: repo, Resumes: resumeSvc, Audit: recorder, now: time.Now}
}

// UploadInput is an uploaded resume file.
type UploadInput struct {
	UserID   string
	FileName string
	MimeType string
	Data     []byte
}

// QualityOutcome is a finished quality run. The IDs are empty when the run
// could not be persisted.
type QualityOutcome struct {
	AnalysisID string
	ResumeID   string
	Result     QualityResult
}

// JDMatchOutcome is a finished jd-match run.
type JDMatchOutcome struct {
	AnalysisID string
	ResumeID   string
	Result     JDMatchResult
}

// AnalyzeQuality extracts, analyzes and records a resume on its own.
func (s *Service) AnalyzeQuality(ctx context.Context, in UploadInput) (QualityOutcome, error) {
	text, err := s.readText(ctx, in)
	if err != nil {
		return QualityOutcome{}, err
	}

	done := s.track(TypeQuality)
	result, profile, err := s.Engine.RunQuality(ctx, text)
	done(err)
	if err != nil {
		return QualityOutcome{}, err
	}

	out := QualityOutcome{Result: result}
	resume, ok := s.saveResume(ctx, in, text, profile)
	if !ok {
		return out, nil
	}
	out.ResumeID = resume.ID
	out.AnalysisID = s.record(ctx, Analysis{
		UserID:   in.UserID,
		ResumeID: resume.ID,
		Type:     TypeQuality,
	}, storedQuality{BasicAnalysis: result.BasicAnalysis, OverallScore: result.OverallScore}, result.AIInsights != nil, result.AIInsights)
	return out, nil
}

// AnalyzeJD scores a resume against a job description.
func (s *Service) AnalyzeJD(ctx context.Context, in UploadInput, jobDescription, jobRole string) (JDMatchOutcome, error) {
	jd := jobdesc.Clean(jobDescription)
	if jd == "" {
		return JDMatchOutcome{}, fmt.Errorf("%w: job description is required", ErrInvalidInput)
	}
	jobRole = strings.TrimSpace(jobRole)
	if jobRole == "" {
		jobRole = DefaultJobRole
	}
	text, err := s.readText(ctx, in)
	if err != nil {
		return JDMatchOutcome{}, err
	}

	done := s.track(TypeJDMatch)
	result, profile, err := s.Engine.RunJDMatch(ctx, text, jd, jobRole)
	done(err)
	if err != nil {
		return JDMatchOutcome{}, err
	}

	out := JDMatchOutcome{Result: result}
	resume, ok := s.saveResume(ctx, in, text, profile)
	if !ok {
		return out, nil
	}
	out.ResumeID = resume.ID

	stored := storedJDMatch{
		ATSScore:            result.ATSScore,
		MatchedSkills:       result.MatchedSkills,
		KeywordGaps:         result.KeywordGaps,
		TargetedSuggestions: result.TargetedSuggestions,
		BasicAnalysis:       result.BasicAnalysis,
	}
	if result.IndustryRequirements != nil {
		stored.IndustryRequirements = result.IndustryRequirements
	}
	out.AnalysisID = s.record(ctx, Analysis{
		UserID:         in.UserID,
		ResumeID:       resume.ID,
		Type:           TypeJDMatch,
		JobDescription: jd,
		JobRole:        jobRole,
	}, stored, result.AIRecommendations != nil, result.AIRecommendations)
	return out, nil
}

// Score is the simple keyword-and-section score for pasted text.
func (s *Service) Score(ctx context.Context, resumeText, jobDescription string) (ats.SimpleResult, error) {
	if err := ctx.Err(); err != nil {
		return ats.SimpleResult{}, err
	}
	resumeText = textnorm.Normalize(resumeText)
	if resumeText == "" {
		return ats.SimpleResult{}, fmt.Errorf("%w: resume text is required", ErrInvalidInput)
	}
	return s.Engine.Score(resumeText, jobdesc.Clean(jobDescription)), nil
}

// List returns the user's analyses, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]Analysis, error) {
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Get returns an analysis owned by userID. Other users' analyses are
// reported as not found.
func (s *Service) Get(ctx context.Context, userID, analysisID string) (Analysis, error) {
	analysis, err := s.Repo.GetByID(ctx, analysisID)
	if err != nil {
		return Analysis{}, err
	}
	if analysis.UserID != userID {
		return Analysis{}, ErrNotFound
	}
	return analysis, nil
}

// Delete removes an analysis owned by userID.
func (s *Service) Delete(ctx context.Context, userID, analysisID string) error {
	analysis, err := s.Get(ctx, userID, analysisID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, analysis.ID); err != nil {
		return err
	}
	s.Audit.Record(ctx, audit.Entry{
		UserID:      userID,
		Action:      audit.ActionAnalysisDeleted,
		ResumeID:    analysis.ResumeID,
		AnalysisID:  analysis.ID,
		Description: "Deleted " + string(analysis.Type) + " analysis",
	})
	return nil
}

func (s *Service) readText(ctx context.Context, in UploadInput) (string, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return "", fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if len(in.Data) == 0 {
		return "", fmt.Errorf("%w: file is empty", ErrInvalidInput)
	}
	raw, err := extract.Text(ctx, in.Data, in.MimeType, in.FileName)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedFile), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return "", err
		default:
			return "", fmt.Errorf("%w: %v", ErrUnreadableFile, err)
		}
	}
	text := textnorm.Normalize(raw)
	if text == "" {
		return "", ErrUnreadableFile
	}
	return text, nil
}

// track counts a run and returns the func that closes it.
func (s *Service) track(kind Type) func(error) {
	metrics.IncAnalysisStarted(string(kind))
	start := time.Now()
	return func(err error) {
		metrics.ObserveAnalysisDurationMs(float64(time.Since(start).Milliseconds()))
		if err != nil {
			metrics.IncAnalysisFailed(string(kind))
			return
		}
		metrics.IncAnalysisCompleted(string(kind))
	}
}

// saveResume persists the upload. Failures are logged and reported as !ok so
// the caller still returns the analysis.
func (s *Service) saveResume(ctx context.Context, in UploadInput, text string, profile resumes.Metadata) (resumes.Resume, bool) {
	if s.Resumes == nil {
		return resumes.Resume{}, false
	}
	resume, err := s.Resumes.Save(ctx, resumes.Upload{
		UserID:   in.UserID,
		FileName: in.FileName,
		MimeType: in.MimeType,
		Data:     in.Data,
		Text:     text,
		Metadata: profile,
	})
	if err != nil {
		telemetry.Error("resume.save_failed", map[string]any{
			"user_id": in.UserID,
			"error":   err.Error(),
		})
		return resumes.Resume{}, false
	}
	return resume, true
}

// record stores the analysis and returns its ID, or "" when it could not be
// written.
func (s *Service) record(ctx context.Context, analysis Analysis, results any, aiEnhanced bool, suggestions any) string {
	if s.Repo == nil {
		return ""
	}
	now := time.Now
	if s.now != nil {
		now = s.now
	}
	analysis.ID = uuid.NewString()
	analysis.AIEnhanced = aiEnhanced
	analysis.CreatedAt = now().UTC()

	body, err := json.Marshal(results)
	if err != nil {
		telemetry.Error("analysis.encode_failed", map[string]any{"error": err.Error()})
		return ""
	}
	analysis.Results = body
	if aiEnhanced {
		if raw, err := json.Marshal(suggestions); err == nil {
			analysis.AISuggestions = raw
		}
	}

	if err := s.Repo.Create(ctx, analysis); err != nil {
		telemetry.Error("analysis.save_failed", map[string]any{
			"user_id":   analysis.UserID,
			"resume_id": analysis.ResumeID,
			"error":     err.Error(),
		})
		return ""
	}
	s.Audit.Record(ctx, audit.Entry{
		UserID:      analysis.UserID,
		Action:      audit.ActionAnalysisRun,
		ResumeID:    analysis.ResumeID,
		AnalysisID:  analysis.ID,
		Description: "Ran " + string(analysis.Type) + " analysis",
	})
	return analysis.ID
}
