package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/uni-timetable-api/internal/dto"
	"github.com/noah-isme/uni-timetable-api/internal/models"
	"github.com/noah-isme/uni-timetable-api/internal/service"
	"github.com/noah-isme/uni-timetable-api/pkg/response"
)

type wishService interface {
	ListForTeacher(ctx context.Context, teacherID int64) ([]models.WishDetail, error)
	Create(ctx context.Context, actor service.Actor, req dto.WishRequest) (*models.Wish, error)
	Delete(ctx context.Context, actor service.Actor, id int64) error
}

// WishHandler exposes teacher slot preferences.
type WishHandler struct {
	service wishService
}

// NewWishHandler constructs a wish handler.
func NewWishHandler(svc wishService) *WishHandler {
	return &WishHandler{service: svc}
}

// ListForTeacher godoc
// @Summary List a teacher's wishes
// @Tags Wishes
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/wishes [get]
func (h *WishHandler) ListForTeacher(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	wishes, err := h.service.ListForTeacher(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, wishes)
}

// Create godoc
// @Summary Record a wish
// @Tags Wishes
// @Accept json
// @Produce json
// @Param payload body dto.WishRequest true "Wish payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /wishes [post]
func (h *WishHandler) Create(c *gin.Context) {
	var req dto.WishRequest
	if !bindJSON(c, &req) {
		return
	}
	wish, err := h.service.Create(c.Request.Context(), actorFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, wish)
}

// Delete godoc
// @Summary Delete a wish
// @Tags Wishes
// @Produce json
// @Param id path int true "Wish ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /wishes/{id} [delete]
func (h *WishHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), actorFromContext(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "wish deleted")
}
