package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/service"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

type timetableExporter interface {
	ExportClass(ctx context.Context, classID int64, format string) (*service.ExportResult, error)
}

// ExportHandler renders class timetables as downloadable files.
type ExportHandler struct {
	service timetableExporter
}

// NewExportHandler constructs an export handler.
func NewExportHandler(svc timetableExporter) *ExportHandler {
	return &ExportHandler{service: svc}
}

// ClassTimetable godoc
// @Summary Export a class timetable
// @Tags Sessions
// @Produce octet-stream
// @Param id path int true "Class ID"
// @Param format query string false "csv, pdf or xlsx" default(csv)
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classes/{id}/timetable/export [get]
func (h *ExportHandler) ClassTimetable(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.service.ExportClass(c.Request.Context(), id, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, result.ContentType, result.Data)
}
