package attendance

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fisiotrack/ward-api/internal/handler"
	"github.com/fisiotrack/ward-api/internal/model"
	"github.com/fisiotrack/ward-api/internal/service/attendance"
)

type Handler struct {
	service *attendance.Service
}

func NewHandler(service *attendance.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/attendance/toggle", h.Toggle)
}

// Toggle flips one shift flag from the manual panel, independent of notes.
func (h *Handler) Toggle(c *gin.Context) {
	var req model.ToggleVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.service.ToggleVisit(c.Request.Context(), req.PatientID, req.Date, req.Shift); err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"message": "attendance updated"}))
}
