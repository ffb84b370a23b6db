package analyses

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// newTestRouter mounts the handler behind a stub identity middleware. An
// empty user leaves the caller anonymous; a "guest:" prefix marks a guest.
func newTestRouter(t *testing.T, h *Handler, userID string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("userId", userID)
			c.Set("isGuest", strings.HasPrefix(userID, "guest:"))
		}
		c.Next()
	})
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func multipartBody(t *testing.T, fileName string, content []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if fileName != "" {
		fw, err := writer.CreateFormFile("resume", fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(content); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func postUpload(t *testing.T, r *gin.Engine, path, fileName string, content []byte, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, fileName, content, fields)
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body %q: %v", resp.Body.String(), err)
	}
	return out
}

func errorCode(t *testing.T, resp *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, resp)
	errObj, _ := body["error"].(map[string]any)
	code, _ := errObj["code"].(string)
	return code
}

func TestAnalyzeReturnsQualityReport(t *testing.T) {
	deps := newTestService(t, nil)
	r := newTestRouter(t, NewHandler(deps.svc), "guest:abc")

	resp := postUpload(t, r, "/api/v1/resume/analyze", "resume.txt", []byte(sampleResume), nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	body := decodeBody(t, resp)
	if body["success"] != true {
		t.Fatalf("expected success envelope, got %v", body)
	}
	analysis, ok := body["analysis"].(map[string]any)
	if !ok {
		t.Fatalf("expected analysis object, got %v", body)
	}
	for _, key := range []string{"repeated", "impact", "brevity", "skills", "overallScore", "aiInsights"} {
		if _, ok := analysis[key]; !ok {
			t.Fatalf("missing %q in %v", key, analysis)
		}
	}
	if id, _ := body["analysisId"].(string); id == "" {
		t.Fatalf("expected analysisId, got %v", body["analysisId"])
	}
}

func TestAnalyzeRequiresFile(t *testing.T) {
	deps := newTestService(t, nil)
	r := newTestRouter(t, NewHandler(deps.svc), "guest:abc")

	resp := postUpload(t, r, "/api/v1/resume/analyze", "", nil, map[string]string{"other": "x"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestAnalyzeRejectsUnsupportedFile(t *testing.T) {
	deps := newTestService(t, nil)
	r := newTestRouter(t, NewHandler(deps.svc), "guest:abc")

	resp := postUpload(t, r, "/api/v1/resume/analyze", "photo.png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	if code := errorCode(t, resp); code != "unsupported_file" {
		t.Fatalf("expected unsupported_file, got %q", code)
	}
}

func TestAnalyzeRejectsEmptyText(t *testing.T) {
	deps := newTestService(t, nil)
	r := newTestRouter(t, NewHandler(deps.svc), "guest:abc")

	resp := postUpload(t, r, "/api/v1/resume/analyze", "blank.txt", []byte("  \n  "), nil)
	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.Code)
	}
}

func TestAnalyzeRejectsLargeUpload(t *testing.T) {
	deps := newTestService(t, nil)
	h := NewHandler(deps.svc)
	h.MaxUploadBytes = 512
	r := newTestRouter(t, h, "guest:abc")

	resp := postUpload(t, r, "/api/v1/resume/analyze", "big.txt", bytes.Repeat([]byte("word "), 400), nil)
	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d", resp.Code)
	}
}

func TestAnalyzeWithJD(t *testing.T) {
	deps := newTestService(t, nil)
	r := newTestRouter(t, NewHandler(deps.svc), "guest:abc")

	missing := postUpload(t, r, "/api/v1/resume/analyze-with-jd", "resume.txt", []byte(sampleResume), nil)
	if missing.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without job description, got %d", missing.Code)
	}

	resp := postUpload(t, r, "/api/v1/resume/analyze-with-jd", "resume.txt", []byte(sampleResume), map[string]string{
		"jobDescription": sampleJD,
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	analysis, _ := decodeBody(t, resp)["analysis"].(map[string]any)
	for _, key := range []string{"atsScore", "matchedSkills", "keywordGaps", "targetedSuggestions", "basicAnalysis", "aiRecommendations", "industryRequirements"} {
		if _, ok := analysis[key]; !ok {
			t.Fatalf("missing %q in %v", key, analysis)
		}
	}
	ats, _ := analysis["atsScore"].(map[string]any)
	if score, _ := ats["score"].(float64); score < 0 || score > 100 {
		t.Fatalf("score out of range: %v", ats["score"])
	}
}

func TestScoreEndpoint(t *testing.T) {
	deps := newTestService(t, nil)
	r := newTestRouter(t, NewHandler(deps.svc), "guest:abc")

	payload := `{"resumeText":"alpha bravo charlie delta","jobDescription":"alpha bravo charlie delta echoes foxtrot golf hotel india juliet"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/resume/score", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	score, _ := decodeBody(t, resp)["atsScore"].(map[string]any)
	if score["keywordMatch"] != float64(40) || score["matchedKeywords"] != float64(4) {
		t.Fatalf("unexpected score %v", score)
	}

	bad := httptest.NewRequest(http.MethodPost, "/api/v1/resume/score", strings.NewReader(`{"resumeText":""}`))
	bad.Header.Set("Content-Type", "application/json")
	badResp := httptest.NewRecorder()
	r.ServeHTTP(badResp, bad)
	if badResp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty resume, got %d", badResp.Code)
	}
}

func TestHistoryRequiresLogin(t *testing.T) {
	deps := newTestService(t, nil)
	r := newTestRouter(t, NewHandler(deps.svc), "guest:abc")

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/resume/history", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestHistoryLifecycle(t *testing.T) {
	deps := newTestService(t, nil)
	h := NewHandler(deps.svc)
	owner := newTestRouter(t, h, "google:owner")
	other := newTestRouter(t, h, "google:other")

	created := postUpload(t, owner, "/api/v1/resume/analyze", "resume.txt", []byte(sampleResume), nil)
	if created.Code != http.StatusOK {
		t.Fatalf("analyze: %d", created.Code)
	}
	analysisID, _ := decodeBody(t, created)["analysisId"].(string)

	list := httptest.NewRecorder()
	owner.ServeHTTP(list, httptest.NewRequest(http.MethodGet, "/api/v1/resume/history?limit=5", nil))
	if list.Code != http.StatusOK {
		t.Fatalf("list: %d", list.Code)
	}
	analyses, _ := decodeBody(t, list)["analyses"].([]any)
	if len(analyses) != 1 {
		t.Fatalf("expected 1 analysis, got %d", len(analyses))
	}

	foreign := httptest.NewRecorder()
	other.ServeHTTP(foreign, httptest.NewRequest(http.MethodGet, "/api/v1/resume/history/"+analysisID, nil))
	if foreign.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for other user, got %d", foreign.Code)
	}

	get := httptest.NewRecorder()
	owner.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/api/v1/resume/history/"+analysisID, nil))
	if get.Code != http.StatusOK {
		t.Fatalf("get: %d", get.Code)
	}
	analysis, _ := decodeBody(t, get)["analysis"].(map[string]any)
	if analysis["analysisType"] != "quality" {
		t.Fatalf("unexpected analysis %v", analysis)
	}

	foreignDelete := httptest.NewRecorder()
	other.ServeHTTP(foreignDelete, httptest.NewRequest(http.MethodDelete, "/api/v1/resume/history/"+analysisID, nil))
	if foreignDelete.Code != http.StatusNotFound {
		t.Fatalf("expected 404 on foreign delete, got %d", foreignDelete.Code)
	}

	del := httptest.NewRecorder()
	owner.ServeHTTP(del, httptest.NewRequest(http.MethodDelete, "/api/v1/resume/history/"+analysisID, nil))
	if del.Code != http.StatusOK {
		t.Fatalf("delete: %d", del.Code)
	}
	if msg := decodeBody(t, del)["message"]; msg != "Analysis deleted" {
		t.Fatalf("unexpected delete body %v", msg)
	}

	gone := httptest.NewRecorder()
	owner.ServeHTTP(gone, httptest.NewRequest(http.MethodGet, "/api/v1/resume/history/"+analysisID, nil))
	if gone.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", gone.Code)
	}
}
