package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"resume-analysis/internal/shared/auth"
)

func identityRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth())
	router.GET("/api/v1/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"userId":  UserIDFromContext(c),
			"isGuest": IsGuest(c),
			"email":   UserEmailFromContext(c),
		})
	})
	router.GET("/api/v1/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/api/v1/private", RequireUser(), func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth())
	called := false
	router.OPTIONS("/api/v1/resume/analyze", func(c *gin.Context) {
		called = true
		c.Status(http.StatusOK)
	})

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodOptions, "/api/v1/resume/analyze", nil))
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	if called {
		t.Fatal("expected preflight to stop before the route handler")
	}
}

func TestAuthRequiresIdentity(t *testing.T) {
	resp := httptest.NewRecorder()
	identityRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthPublicPaths(t *testing.T) {
	resp := httptest.NewRecorder()
	identityRouter().ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected health to be public, got %d", resp.Code)
	}
}

func TestAuthGuestHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	req.Header.Set("X-Guest-Id", "abc")
	resp := httptest.NewRecorder()
	identityRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != `{"email":"","isGuest":true,"userId":"guest:abc"}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestAuthBearerToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	token, err := auth.SignJWT(auth.Claims{
		Email:            "ada@example.com",
		RegisteredClaims: jwt.RegisteredClaims{Subject: "google:1"},
	})
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	identityRouter().ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != `{"email":"ada@example.com","isGuest":false,"userId":"google:1"}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestAuthRejectsMalformedBearer(t *testing.T) {
	for _, header := range []string{"Token abc", "Bearer ", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
		req.Header.Set("Authorization", header)
		req.Header.Set("X-Guest-Id", "fallback")
		resp := httptest.NewRecorder()
		identityRouter().ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("%q: expected 401, got %d", header, resp.Code)
		}
	}
}

func TestRequireUserRejectsGuests(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/private", nil)
	req.Header.Set("X-Guest-Id", "abc")
	resp := httptest.NewRecorder()
	identityRouter().ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}
