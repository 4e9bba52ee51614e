package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

type dashboardService interface {
	Teacher(ctx context.Context, teacherID int64) (*models.TeacherDashboard, error)
	Student(ctx context.Context, studentID int64) (*models.StudentDashboard, error)
	Stats(ctx context.Context) (*models.AdminStats, error)
}

// DashboardHandler serves the portal dashboards.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs a dashboard handler.
func NewDashboardHandler(svc dashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Teacher godoc
// @Summary Teacher dashboard
// @Description Weekly load, upcoming sessions and wish progress.
// @Tags Dashboard
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/dashboard [get]
func (h *DashboardHandler) Teacher(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	dashboard, err := h.service.Teacher(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dashboard)
}

// Student godoc
// @Summary Student dashboard
// @Description Next session of the student's class and recent resources.
// @Tags Dashboard
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/dashboard [get]
func (h *DashboardHandler) Student(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	dashboard, err := h.service.Student(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dashboard)
}

// Stats godoc
// @Summary Administration counters
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, stats)
}
