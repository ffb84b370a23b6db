package users

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-analysis/internal/shared/server/middleware"
	"resume-analysis/internal/shared/server/respond"
	"resume-analysis/internal/shared/telemetry"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	signedIn := rg.Group("", middleware.RequireUser())
	signedIn.POST("/auth/sync", h.sync)
	signedIn.GET("/auth/user", h.current)
	signedIn.POST("/auth/logout", h.logout)
	signedIn.GET("/me", h.me)
}

type syncRequest struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	ProfileImage string `json:"profileImage"`
}

// sync stores the caller. Body fields override the token claims when set.
func (h *Handler) sync(c *gin.Context) {
	var req syncRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	user := User{
		ID:         middleware.UserIDFromContext(c),
		Email:      firstNonEmpty(req.Email, middleware.UserEmailFromContext(c)),
		Name:       firstNonEmpty(req.Name, middleware.UserNameFromContext(c)),
		PictureURL: firstNonEmpty(req.ProfileImage, middleware.UserPictureFromContext(c)),
	}
	if user.Email == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "email is required", nil)
		return
	}

	stored, err := h.Svc.Sync(c.Request.Context(), user)
	if err != nil {
		telemetry.Error("users.sync_failed", map[string]any{
			"user_id": user.ID,
			"error":   err.Error(),
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to sync user", nil)
		return
	}
	respond.Success(c, http.StatusOK, gin.H{
		"userId":  stored.ID,
		"message": "User synchronized successfully",
	})
}

// current echoes the identity carried by the token.
func (h *Handler) current(c *gin.Context) {
	respond.Success(c, http.StatusOK, gin.H{
		"user": gin.H{
			"id":         middleware.UserIDFromContext(c),
			"email":      middleware.UserEmailFromContext(c),
			"name":       middleware.UserNameFromContext(c),
			"pictureUrl": middleware.UserPictureFromContext(c),
		},
	})
}

func (h *Handler) logout(c *gin.Context) {
	respond.Success(c, http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.Svc.GetByID(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load user", nil)
		return
	}
	respond.JSON(c, http.StatusOK, user)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
