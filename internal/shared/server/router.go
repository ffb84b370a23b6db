package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-analysis/internal/analyses"
	googleauth "resume-analysis/internal/auth"
	"resume-analysis/internal/services/health"
	"resume-analysis/internal/shared/config"
	"resume-analysis/internal/shared/metrics"
	"resume-analysis/internal/shared/server/middleware"
	"resume-analysis/internal/users"
)

// RouterDeps are the handlers mounted by NewRouter. Nil handlers are skipped.
type RouterDeps struct {
	Config          config.Config
	AnalysisHandler *analyses.Handler
	UserHandler     *users.Handler
	GoogleAuth      *googleauth.GoogleService
	Health          *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: rateLimitGroup,
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: deps.Config.RateLimitRPS, Burst: deps.Config.RateLimitBurst},
				middleware.AnalyzeRateLimitGroup: {Rate: analyzeRate(deps.Config.RateLimitRPS), Burst: analyzeBurst(deps.Config.RateLimitBurst)},
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if !status.OK {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api)
	}

	return r
}

// rateLimitGroup puts the upload-and-analyze endpoints in the stricter group.
func rateLimitGroup(c *gin.Context) string {
	if c.Request.Method != http.MethodPost {
		return ""
	}
	switch c.FullPath() {
	case "/api/v1/resume/analyze", "/api/v1/resume/analyze-with-jd":
		return middleware.AnalyzeRateLimitGroup
	}
	return ""
}

// Analyses call the model several times each, so they get a fifth of the
// default budget.
func analyzeRate(rps float64) float64 {
	return rps / 5
}

func analyzeBurst(burst int) int {
	if burst/5 < 1 {
		return 1
	}
	return burst / 5
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
