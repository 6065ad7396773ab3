package admin

import (
	"errors"
	"net/http"
	"strconv"

	"inspectdesk/internal/domain"
	"inspectdesk/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/admin/users")
	{
		group.GET("", h.ListUsers)
		group.POST("", h.CreateUser)
		group.PUT("/:id", h.UpdateUser)
		group.DELETE("/:id", h.DeleteUser)
	}
}

// ListUsers serves both privilege levels: admins get full accounts, other
// roles fall back to the profile projection instead of a 403.
func (h *Handler) ListUsers(c *gin.Context) {
	if isAdmin(c) {
		users, err := h.service.ListAccounts(c.Request.Context())
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list users")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"users": users, "scope": "full"})
		return
	}

	profiles, err := h.service.ListProfiles(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list users")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"users": profiles, "scope": "profiles"})
}

func (h *Handler) CreateUser(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "email, password and name are required")
		return
	}

	user, err := h.service.CreateUser(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, user)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	id, ok := idParam(c)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	user, err := h.service.UpdateUser(c.Request.Context(), id, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, user)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	if !requireAdmin(c) {
		return
	}

	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(c.Request.Context(), c.GetInt64("user_id"), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
	case errors.Is(err, ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
	case errors.Is(err, ErrInvalidRole):
		response.Error(c, http.StatusBadRequest, "INVALID_ROLE", "Invalid role")
	case errors.Is(err, ErrCannotDeleteSelf):
		response.Error(c, http.StatusBadRequest, "CANNOT_DELETE_SELF", "You cannot delete your own account")
	default:
		response.Error(c, http.StatusInternalServerError, "OPERATION_FAILED", "Operation failed")
	}
}

func isAdmin(c *gin.Context) bool {
	return c.GetString("user_role") == string(domain.RoleAdmin)
}

func requireAdmin(c *gin.Context) bool {
	if !isAdmin(c) {
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Administrator role required")
		return false
	}
	return true
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}
