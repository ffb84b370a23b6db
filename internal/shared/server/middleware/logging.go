package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"resume-analysis/internal/shared/telemetry"
)

// Context keys handlers set so the request log can carry them.
const (
	ResumeIDKey     = "resumeId"
	AnalysisIDKey   = "analysisId"
	AnalysisTypeKey = "analysisType"
)

// Logging emits one structured line per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		telemetry.Info("request.complete", map[string]any{
			"request_id":    RequestIDFromContext(c),
			"method":        c.Request.Method,
			"path":          c.Request.URL.Path,
			"route":         c.FullPath(),
			"status":        c.Writer.Status(),
			"duration_ms":   float64(latency.Microseconds()) / 1000.0,
			"user_id":       UserIDFromContext(c),
			"is_guest":      IsGuest(c),
			"resume_id":     c.GetString(ResumeIDKey),
			"analysis_id":   c.GetString(AnalysisIDKey),
			"analysis_type": c.GetString(AnalysisTypeKey),
			"client_ip":     c.ClientIP(),
			"user_agent":    c.Request.UserAgent(),
		})
	}
}
