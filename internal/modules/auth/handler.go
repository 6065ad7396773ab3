package auth

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"inspectdesk/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const maxAvatarSize = 5 << 20 // 5 MiB

// Handler manages all HTTP interactions for authentication and the profile
// screen.
type Handler struct {
	service   *Service
	uploadDir string
}

func NewHandler(service *Service, uploadDir string) *Handler {
	return &Handler{service: service, uploadDir: uploadDir}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	userGroup := protected.Group("/users")
	{
		userGroup.GET("/me", h.GetMe)
		userGroup.PUT("/me", h.UpdateProfile)
		userGroup.PUT("/me/password", h.ChangePassword)
		userGroup.POST("/me/avatar", h.UploadAvatar)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REGISTRATION_FAILED", "Failed to register user")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":  user,
		"token": token,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		case errors.Is(err, ErrAccountInactive):
			response.Error(c, http.StatusForbidden, "ACCOUNT_INACTIVE", "This account has been deactivated")
		default:
			response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to sign in")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":  result.User,
		"token": result.Token,
	})
}

func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.service.GetCurrentUser(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "PROFILE_FAILED", "Failed to load profile")
		return
	}
	response.Success(c, http.StatusOK, user)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.UpdateProfile(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "PROFILE_FAILED", "Failed to update profile")
		return
	}
	response.Success(c, http.StatusOK, user)
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), c.GetInt64("user_id"), req); err != nil {
		if errors.Is(err, ErrWrongPassword) {
			response.Error(c, http.StatusUnauthorized, "WRONG_PASSWORD", "Current password is incorrect")
			return
		}
		response.Error(c, http.StatusInternalServerError, "PASSWORD_FAILED", "Failed to change password")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"changed": true})
}

// UploadAvatar stores a profile photo on disk under a per-user name, so a
// re-upload overwrites the previous photo, and records its public URL.
func (h *Handler) UploadAvatar(c *gin.Context) {
	userID := c.GetInt64("user_id")

	file, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "avatar file is required")
		return
	}
	if file.Size > maxAvatarSize {
		response.Error(c, http.StatusBadRequest, "FILE_TOO_LARGE", "avatar must be at most 5 MiB")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		response.Error(c, http.StatusBadRequest, "UNSUPPORTED_TYPE", "avatar must be jpg, png or webp")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store avatar")
		return
	}

	filename := fmt.Sprintf("avatar_%d%s", userID, ext)
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store avatar")
		return
	}

	user, err := h.service.SetAvatarURL(c.Request.Context(), userID, "/uploads/"+filename)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "Failed to store avatar")
		return
	}

	response.Success(c, http.StatusOK, user)
}
