package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"resume-analysis/internal/shared/metrics"
	"resume-analysis/internal/shared/server/respond"
	"resume-analysis/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 error body. Analysis panics
// never take the process down.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			metrics.IncPanic()
			fields := map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      rec,
				"path":       c.Request.URL.Path,
				"method":     c.Request.Method,
				"stack":      string(debug.Stack()),
			}
			if analysisType := c.GetString(AnalysisTypeKey); analysisType != "" {
				fields["analysis_type"] = analysisType
			}
			telemetry.Error("http.panic", fields)
			if c.Writer.Written() {
				c.Abort()
				return
			}
			respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
		}()
		c.Next()
	}
}
