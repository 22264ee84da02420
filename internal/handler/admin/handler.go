package admin

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fisiotrack/ward-api/internal/handler"
	"github.com/fisiotrack/ward-api/internal/middleware"
	"github.com/fisiotrack/ward-api/internal/model"
	"github.com/fisiotrack/ward-api/internal/service/user"
)

// SessionInvalidator drops cached account lookups after admin changes.
type SessionInvalidator interface {
	Invalidate(userID string)
}

type Handler struct {
	service  *user.Service
	sessions SessionInvalidator
}

func NewHandler(service *user.Service, sessions SessionInvalidator) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.POST("", h.CreateUser)
		users.PUT("/:id", h.EditUser)
		users.POST("/:id/reset-password", h.ResetPassword)
		users.POST("/:id/deactivate", h.DeactivateUser)
		users.POST("/:id/reactivate", h.ReactivateUser)
	}
}

func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(users))
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req model.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	created, err := h.service.CreateUser(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(created))
}

func (h *Handler) EditUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid user ID"))
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	updated, err := h.service.EditUser(c.Request.Context(), id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	h.sessions.Invalidate(id.String())
	c.JSON(http.StatusOK, handler.NewSuccessResponse(updated))
}

// ResetPassword issues a new password, generating a one-time one when none is
// supplied. The plaintext appears in this response and nowhere else.
func (h *Handler) ResetPassword(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid user ID"))
		return
	}

	// No body at all means "generate one for me".
	var req model.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	plaintext, err := h.service.ResetPassword(c.Request.Context(), id, req.NewPassword)
	if err != nil {
		handler.Error(c, err)
		return
	}

	h.sessions.Invalidate(id.String())
	c.JSON(http.StatusOK, handler.NewSuccessResponse(&model.ResetPasswordResponse{Password: plaintext}))
}

func (h *Handler) DeactivateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid user ID"))
		return
	}

	actor, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	if err := h.service.DeactivateUser(c.Request.Context(), id, actor.ID); err != nil {
		handler.Error(c, err)
		return
	}

	h.sessions.Invalidate(id.String())
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "user deactivated"}))
}

func (h *Handler) ReactivateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid user ID"))
		return
	}

	if err := h.service.ReactivateUser(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	h.sessions.Invalidate(id.String())
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "user reactivated"}))
}
