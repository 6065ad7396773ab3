package registry

import (
	"errors"
	"net/http"
	"strconv"

	"inspectdesk/internal/pkg/response"
	"inspectdesk/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler exposes one catalog entity over HTTP. All four catalogs mount the
// same routes; only the bound type and descriptor differ.
type Handler[T any] struct {
	service *Service[T]
}

func NewHandler[T any](service *Service[T]) *Handler[T] {
	return &Handler[T]{service: service}
}

func (h *Handler[T]) RegisterRoutes(protected *gin.RouterGroup, resource string) {
	group := protected.Group("/" + resource)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
		group.PUT("/:id", h.Update)
		group.PATCH("/:id/active", h.SetActive)
		group.DELETE("/:id", h.Delete)
	}
}

func (h *Handler[T]) List(c *gin.Context) {
	var active *bool
	if raw := c.Query("active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "active must be true or false")
			return
		}
		active = &parsed
	}

	items, err := h.service.List(c.Request.Context(), c.Query("search"), active)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "LIST_FAILED", "Failed to list records")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler[T]) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	entity, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, entity)
}

func (h *Handler[T]) Create(c *gin.Context) {
	var entity T
	if err := c.ShouldBindJSON(&entity); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(&entity); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	if err := h.service.Create(c.Request.Context(), &entity); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, entity)
}

func (h *Handler[T]) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var entity T
	if err := c.ShouldBindJSON(&entity); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if details := validator.Validate(&entity); details != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Validation failed", details)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &entity)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

func (h *Handler[T]) SetActive(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "active is required")
		return
	}

	updated, err := h.service.SetActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

func (h *Handler[T]) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler[T]) fail(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Record not found")
		return
	}
	response.Error(c, http.StatusInternalServerError, "OPERATION_FAILED", "Operation failed")
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}
