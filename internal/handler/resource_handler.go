package handler

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	appErrors "github.com/noah-isme/uni-timetable-api/pkg/errors"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

type resourceService interface {
	Upload(ctx context.Context, actor service.Actor, meta dto.ResourceUpload, body io.Reader) (*models.ResourceDetail, error)
	Get(ctx context.Context, id int64) (*models.ResourceDetail, error)
	ListForTeacher(ctx context.Context, teacherID int64) ([]models.ResourceDetail, error)
	Open(ctx context.Context, id int64, token string) (*models.ResourceDetail, *os.File, error)
	Delete(ctx context.Context, actor service.Actor, id int64) error
}

// ResourceHandler exposes course file upload and download.
type ResourceHandler struct {
	service resourceService
}

// NewResourceHandler constructs a resource handler.
func NewResourceHandler(svc resourceService) *ResourceHandler {
	return &ResourceHandler{service: svc}
}

// Upload godoc
// @Summary Upload a course resource
// @Tags Resources
// @Accept mpfd
// @Produce json
// @Param file formData file true "Resource file"
// @Param nom formData string true "Display name"
// @Param ueId formData int true "Teaching unit ID"
// @Param teacherId formData int false "Owner, defaults to the caller"
// @Param categorie formData string false "Category, defaults to Cours"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /resources [post]
func (h *ResourceHandler) Upload(c *gin.Context) {
	actor := actorFromContext(c)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "file is required"))
		return
	}
	unitID, err := dto.ParseID(c.PostForm("ueId"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "ueId must be a positive integer"))
		return
	}
	teacherID := actor.UserID
	if raw := strings.TrimSpace(c.PostForm("teacherId")); raw != "" {
		if teacherID, err = dto.ParseID(raw); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "teacherId must be a positive integer"))
			return
		}
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open file"))
		return
	}
	defer src.Close()

	meta := dto.ResourceUpload{
		Name:           strings.TrimSpace(c.PostForm("nom")),
		Category:       c.PostForm("categorie"),
		TeacherID:      teacherID,
		TeachingUnitID: unitID,
		FileName:       fileHeader.Filename,
		MimeType:       uploadMIME(fileHeader.Header.Get("Content-Type"), fileHeader.Filename),
		Size:           fileHeader.Size,
	}
	res, err := h.service.Upload(c.Request.Context(), actor, meta, src)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, res)
}

// Get godoc
// @Summary Resource metadata with a signed download URL
// @Tags Resources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /resources/{id} [get]
func (h *ResourceHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	res, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// ListForTeacher godoc
// @Summary List a teacher's resources, newest first
// @Tags Resources
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/resources [get]
func (h *ResourceHandler) ListForTeacher(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	items, err := h.service.ListForTeacher(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// Download godoc
// @Summary Download a resource file
// @Tags Resources
// @Produce octet-stream
// @Param id path int true "Resource ID"
// @Param token query string true "Signed download token"
// @Success 200 {file} binary
// @Failure 401 {object} response.Envelope
// @Router /resources/{id}/download [get]
func (h *ResourceHandler) Download(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "token is required"))
		return
	}
	res, file, err := h.service.Open(c.Request.Context(), id, token)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close() //nolint:errcheck

	filename := res.Name + filepath.Ext(res.StorageRef)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", strconv.Quote(filename)))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, res.SizeBytes, res.MimeType, file, nil)
}

// Delete godoc
// @Summary Delete a resource
// @Tags Resources
// @Produce json
// @Param id path int true "Resource ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /resources/{id} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actorFromContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "resource deleted")
}

// uploadMIME prefers the part's declared type and falls back to the file extension.
func uploadMIME(declared, filename string) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}
