package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bagspec-api/internal/dto"
	"github.com/noah-isme/bagspec-api/internal/models"
	"github.com/noah-isme/bagspec-api/internal/service"
	"github.com/noah-isme/bagspec-api/pkg/response"
)

type sizeService interface {
	Add(ctx context.Context, req dto.CreateSizeRequest) (*models.BagSize, error)
	List(ctx context.Context, bagType string) ([]models.BagSize, error)
	Delete(ctx context.Context, id string) (*models.BagSize, error)
}

// SizeHandler manages the size catalog.
type SizeHandler struct {
	service sizeService
}

// NewSizeHandler constructs a size handler.
func NewSizeHandler(service sizeService) *SizeHandler {
	return &SizeHandler{service: service}
}

// Create godoc
// @Summary Add a size to the catalog
// @Tags Sizes
// @Accept json
// @Produce json
// @Param payload body dto.CreateSizeRequest true "Size payload"
// @Success 201 {object} response.Envelope{data=models.BagSize}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /api/sizes [post]
func (h *SizeHandler) Create(c *gin.Context) {
	var req dto.CreateSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	size, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, service.SizeAddedMessage(size.SizeName), size)
}

// List godoc
// @Summary List sizes for a bag type
// @Tags Sizes
// @Produce json
// @Param bag_type path string true "collar, snap or ring"
// @Success 200 {object} response.Envelope{data=[]models.BagSize}
// @Router /api/sizes/{bag_type} [get]
func (h *SizeHandler) List(c *gin.Context) {
	sizes, err := h.service.List(c.Request.Context(), c.Param("bag_type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "", sizes)
}

// Delete godoc
// @Summary Delete a size
// @Tags Sizes
// @Produce json
// @Param id path string true "Size ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/sizes/{id} [delete]
func (h *SizeHandler) Delete(c *gin.Context) {
	if _, err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Size deleted successfully", nil)
}
