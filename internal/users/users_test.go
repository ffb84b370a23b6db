package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func newRouter(svc *Service, claims map[string]any) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		for k, v := range claims {
			c.Set(k, v)
		}
		c.Next()
	})
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func signedIn() map[string]any {
	return map[string]any{
		"userId":    "google:42",
		"userEmail": "ada@example.com",
		"userName":  "Ada",
		"isGuest":   false,
	}
}

func TestSyncUsesClaimsAndBodyOverrides(t *testing.T) {
	repo := NewMemoryRepo()
	r := newRouter(NewService(repo), signedIn())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/sync", strings.NewReader(`{"name":"Ada Lovelace","profileImage":"https://img/ada.png"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body map[string]any
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body["success"] != true || body["userId"] != "google:42" {
		t.Fatalf("unexpected body %v", body)
	}

	user, err := repo.GetByID(context.Background(), "google:42")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.Email != "ada@example.com" || user.Name != "Ada Lovelace" || user.PictureURL != "https://img/ada.png" {
		t.Fatalf("unexpected user %+v", user)
	}

	// A second sync without a body keeps the stored picture.
	again := httptest.NewRecorder()
	r.ServeHTTP(again, httptest.NewRequest(http.MethodPost, "/api/v1/auth/sync", nil))
	if again.Code != http.StatusOK {
		t.Fatalf("expected 200 on resync, got %d", again.Code)
	}
	user, _ = repo.GetByID(context.Background(), "google:42")
	if user.PictureURL != "https://img/ada.png" || user.Name != "Ada" {
		t.Fatalf("unexpected user after resync %+v", user)
	}
}

func TestRoutesRejectGuests(t *testing.T) {
	r := newRouter(NewService(NewMemoryRepo()), map[string]any{"userId": "guest:abc", "isGuest": true})
	for _, path := range []string{"/api/v1/auth/user", "/api/v1/me"} {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", path, resp.Code)
		}
	}
}

func TestMeAndCurrentUser(t *testing.T) {
	repo := NewMemoryRepo()
	r := newRouter(NewService(repo), signedIn())

	missing := httptest.NewRecorder()
	r.ServeHTTP(missing, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	if missing.Code != http.StatusNotFound {
		t.Fatalf("expected 404 before sync, got %d", missing.Code)
	}

	_ = repo.Upsert(context.Background(), User{ID: "google:42", Email: "ada@example.com", Name: "Ada"})
	me := httptest.NewRecorder()
	r.ServeHTTP(me, httptest.NewRequest(http.MethodGet, "/api/v1/me", nil))
	if me.Code != http.StatusOK || !strings.Contains(me.Body.String(), `"email":"ada@example.com"`) {
		t.Fatalf("unexpected /me %d %s", me.Code, me.Body.String())
	}

	current := httptest.NewRecorder()
	r.ServeHTTP(current, httptest.NewRequest(http.MethodGet, "/api/v1/auth/user", nil))
	if !strings.Contains(current.Body.String(), `"id":"google:42"`) {
		t.Fatalf("unexpected /auth/user %s", current.Body.String())
	}

	logout := httptest.NewRecorder()
	r.ServeHTTP(logout, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))
	if logout.Code != http.StatusOK || !strings.Contains(logout.Body.String(), "Logged out successfully") {
		t.Fatalf("unexpected logout %d %s", logout.Code, logout.Body.String())
	}
}

func TestSyncRequiresEmail(t *testing.T) {
	r := newRouter(NewService(NewMemoryRepo()), map[string]any{"userId": "google:1", "isGuest": false})
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/api/v1/auth/sync", nil))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestPGRepoUpsertAndGet(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	repo := &PGRepo{DB: db}

	mock.ExpectExec("INSERT INTO users").
		WithArgs("google:1", "ada@example.com", "Ada", nil).
		WillReturnResult(sqlmock.NewResult(1, 1))
	if err := repo.Upsert(context.Background(), User{ID: "google:1", Email: "ada@example.com", Name: "Ada"}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, email, name, picture_url").
		WithArgs("google:1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "picture_url", "created_at", "updated_at"}).
			AddRow("google:1", "ada@example.com", "Ada", nil, now, now))
	user, err := repo.GetByID(context.Background(), "google:1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if user.Name != "Ada" || user.PictureURL != "" {
		t.Fatalf("unexpected user %+v", user)
	}

	mock.ExpectQuery("SELECT id, email, name, picture_url").
		WithArgs("google:2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "picture_url", "created_at", "updated_at"}))
	if _, err := repo.GetByID(context.Background(), "google:2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
