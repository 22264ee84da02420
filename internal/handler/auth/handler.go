package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fisiotrack/ward-api/internal/handler"
	"github.com/fisiotrack/ward-api/internal/middleware"
	"github.com/fisiotrack/ward-api/internal/model"
	"github.com/fisiotrack/ward-api/internal/service/auth"
)

// SessionInvalidator drops cached account lookups after credential changes.
type SessionInvalidator interface {
	Invalidate(userID string)
}

type CookieConfig struct {
	Name   string
	MaxAge int
	Secure bool
}

type Handler struct {
	service  *auth.Service
	cookie   CookieConfig
	sessions SessionInvalidator
}

func NewHandler(service *auth.Service, cookie CookieConfig, sessions SessionInvalidator) *Handler {
	return &Handler{
		service:  service,
		cookie:   cookie,
		sessions: sessions,
	}
}

// RegisterPublicRoutes mounts login outside the auth gate, behind the limiter.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup, limiter gin.HandlerFunc) {
	r.POST("/login", limiter, h.Login)
}

// RegisterRoutes mounts the authenticated routes that stay reachable while a
// password change is pending.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/logout", h.Logout)
	r.POST("/change-password", h.ChangePassword)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.SetCookie(h.cookie.Name, tokens.Token, h.cookie.MaxAge, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "logged out"}))
}

func (h *Handler) ChangePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("not authenticated"))
		return
	}

	var req model.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), user.ID, req.OldPassword, req.NewPassword, req.ConfirmPassword); err != nil {
		handler.Error(c, err)
		return
	}

	h.sessions.Invalidate(user.ID.String())
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "password changed"}))
}
