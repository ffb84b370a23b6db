package analyses

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-analysis/internal/extract"
	"resume-analysis/internal/shared/server/middleware"
	"resume-analysis/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the analyses service.
type Handler struct {
	Svc            *Service
	MaxUploadBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc, MaxUploadBytes: maxUploadSize}
}

// RegisterRoutes attaches resume analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resume/analyze", h.analyze)
	rg.POST("/resume/analyze-with-jd", h.analyzeWithJD)
	rg.POST("/resume/score", h.score)

	history := rg.Group("/resume/history", middleware.RequireUser())
	history.GET("", h.listHistory)
	history.GET("/:analysisId", h.getAnalysis)
	history.DELETE("/:analysisId", h.deleteAnalysis)
}

func (h *Handler) analyze(c *gin.Context) {
	c.Set(middleware.AnalysisTypeKey, string(TypeQuality))
	in, ok := h.readUpload(c)
	if !ok {
		return
	}

	out, err := h.Svc.AnalyzeQuality(c.Request.Context(), in)
	if err != nil {
		h.analysisError(c, err)
		return
	}
	c.Set(middleware.ResumeIDKey, out.ResumeID)
	c.Set(middleware.AnalysisIDKey, out.AnalysisID)

	respond.Success(c, http.StatusOK, gin.H{
		"analysis":   out.Result,
		"analysisId": nullable(out.AnalysisID),
		"resumeId":   nullable(out.ResumeID),
	})
}

func (h *Handler) analyzeWithJD(c *gin.Context) {
	c.Set(middleware.AnalysisTypeKey, string(TypeJDMatch))
	in, ok := h.readUpload(c)
	if !ok {
		return
	}
	jd := c.PostForm("jobDescription")
	if strings.TrimSpace(jd) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Job description is required", nil)
		return
	}

	out, err := h.Svc.AnalyzeJD(c.Request.Context(), in, jd, c.PostForm("jobRole"))
	if err != nil {
		h.analysisError(c, err)
		return
	}
	c.Set(middleware.ResumeIDKey, out.ResumeID)
	c.Set(middleware.AnalysisIDKey, out.AnalysisID)

	respond.Success(c, http.StatusOK, gin.H{
		"analysis":   out.Result,
		"analysisId": nullable(out.AnalysisID),
		"resumeId":   nullable(out.ResumeID),
	})
}

type scoreRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
}

func (h *Handler) score(c *gin.Context) {
	var req scoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	result, err := h.Svc.Score(c.Request.Context(), req.ResumeText, req.JobDescription)
	if err != nil {
		h.analysisError(c, err)
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"atsScore": result})
}

func (h *Handler) listHistory(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	analyses, err := h.Svc.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch history", nil)
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"analyses": analyses})
}

func (h *Handler) getAnalysis(c *gin.Context) {
	analysisID := strings.TrimSpace(c.Param("analysisId"))
	c.Set(middleware.AnalysisIDKey, analysisID)

	analysis, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), analysisID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch analysis", nil)
		}
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"analysis": analysis})
}

func (h *Handler) deleteAnalysis(c *gin.Context) {
	analysisID := strings.TrimSpace(c.Param("analysisId"))
	c.Set(middleware.AnalysisIDKey, analysisID)

	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), analysisID); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Analysis not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to delete analysis", nil)
		}
		return
	}
	respond.Success(c, http.StatusOK, gin.H{"message": "Analysis deleted"})
}

// readUpload reads the multipart "resume" field. It writes the error response
// itself and reports false when the request cannot proceed.
func (h *Handler) readUpload(c *gin.Context) (UploadInput, bool) {
	limit := h.MaxUploadBytes
	if limit <= 0 {
		limit = maxUploadSize
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		if isTooLarge(err) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "File exceeds the 10MB limit", nil)
			return UploadInput{}, false
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "No file uploaded", nil)
		return UploadInput{}, false
	}
	if fileHeader.Size > limit {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "File exceeds the 10MB limit", nil)
		return UploadInput{}, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return UploadInput{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return UploadInput{}, false
	}

	return UploadInput{
		UserID:   middleware.UserIDFromContext(c),
		FileName: fileHeader.Filename,
		MimeType: fileHeader.Header.Get("Content-Type"),
		Data:     data,
	}, true
}

func (h *Handler) analysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, extract.ErrUnsupportedFile):
		respond.Error(c, http.StatusBadRequest, "unsupported_file", "Invalid file type. Only PDF, DOCX, and TXT are allowed.", nil)
	case errors.Is(err, ErrUnreadableFile):
		respond.Error(c, http.StatusUnprocessableEntity, "unreadable_file", "Could not read text from the uploaded file", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "analysis_failed", "Analysis failed", nil)
	}
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}

func nullable(id string) any {
	if id == "" {
		return nil
	}
	return id
}
