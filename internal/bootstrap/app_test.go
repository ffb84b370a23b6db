package bootstrap_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-analysis/internal/bootstrap"
	"resume-analysis/internal/shared/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
		LLMProvider:     "none",
		RateLimitRPS:    100,
		RateLimitBurst:  100,
	}
}

func buildApp(t *testing.T, cfg config.Config) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	app := buildApp(t, testConfig(t))

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"database":"memory"`) {
		t.Fatalf("unexpected health body %s", resp.Body.String())
	}

	metrics := httptest.NewRecorder()
	app.Router.ServeHTTP(metrics, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if metrics.Code != http.StatusOK || !strings.Contains(metrics.Body.String(), "analysis_started_total") {
		t.Fatalf("unexpected metrics %d %s", metrics.Code, metrics.Body.String())
	}
}

func TestAnalyzeRequiresIdentity(t *testing.T) {
	app := buildApp(t, testConfig(t))

	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/resume/analyze", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestGuestAnalyzeStoresUpload(t *testing.T) {
	cfg := testConfig(t)
	app := buildApp(t, cfg)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	fw, err := writer.CreateFormFile("resume", "resume.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	_, _ = fw.Write([]byte("Experience\n- Led a team of 4 and increased revenue by 20%\nEducation\nSkills: Go, React\nContact: a@b.c"))
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/resume/analyze", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Guest-Id", "guest-123")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var out struct {
		Success  bool   `json:"success"`
		ResumeID string `json:"resumeId"`
		Analysis struct {
			OverallScore int `json:"overallScore"`
		} `json:"analysis"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !out.Success || out.ResumeID == "" {
		t.Fatalf("unexpected response %s", resp.Body.String())
	}

	var files int
	_ = filepath.Walk(cfg.LocalStoreDir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			files++
		}
		return nil
	})
	if files != 1 {
		t.Fatalf("expected 1 stored file, got %d", files)
	}

	history := httptest.NewRequest(http.MethodGet, "/api/v1/resume/history", nil)
	history.Header.Set("X-Guest-Id", "guest-123")
	historyResp := httptest.NewRecorder()
	app.Router.ServeHTTP(historyResp, history)
	if historyResp.Code != http.StatusUnauthorized {
		t.Fatalf("expected guests to be refused history, got %d", historyResp.Code)
	}
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	cfg := testConfig(t)
	cfg.Env = "production"
	if _, err := bootstrap.Build(context.Background(), cfg); err == nil {
		t.Fatal("expected error without DATABASE_URL in production")
	}
}

func TestBuildRejectsBadDictionary(t *testing.T) {
	cfg := testConfig(t)
	cfg.DictionaryFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := bootstrap.Build(context.Background(), cfg); err == nil {
		t.Fatal("expected error for missing dictionary file")
	}
}
