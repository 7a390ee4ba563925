package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bagspec-api/internal/dto"
	"github.com/noah-isme/bagspec-api/internal/models"
	"github.com/noah-isme/bagspec-api/internal/service"
	appErrors "github.com/noah-isme/bagspec-api/pkg/errors"
	"github.com/noah-isme/bagspec-api/pkg/response"
)

type formService interface {
	IssueInvite(ctx context.Context, req dto.SendFormRequest) (*dto.FormLinkResponse, error)
	IssueRawLink(ctx context.Context, req dto.GenerateLinkRequest) (*dto.FormLinkResponse, error)
	GetForm(ctx context.Context, token string) (*models.Submission, error)
	Submit(ctx context.Context, token string, req dto.SubmitFormRequest) (*models.Submission, error)
	List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, error)
}

// FormHandler exposes the form link and submission endpoints.
type FormHandler struct {
	service formService
}

// NewFormHandler constructs a form handler.
func NewFormHandler(service formService) *FormHandler {
	return &FormHandler{service: service}
}

func invalidPayload(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid request payload")
}

// SendForm godoc
// @Summary Email a single-use form link
// @Tags Forms
// @Accept json
// @Produce json
// @Param payload body dto.SendFormRequest true "Invite payload"
// @Success 200 {object} response.Envelope{data=dto.FormLinkResponse}
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope{data=dto.FormLinkResponse}
// @Router /api/send-form [post]
func (h *FormHandler) SendForm(c *gin.Context) {
	var req dto.SendFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	req.RecipientEmail = strings.TrimSpace(req.RecipientEmail)
	req.PONumber = strings.TrimSpace(req.PONumber)
	link, err := h.service.IssueInvite(c.Request.Context(), req)
	if err != nil {
		if link != nil && errors.Is(err, appErrors.ErrDelivery) {
			response.ErrorWithData(c, err, link)
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, service.InviteMessage(req.RecipientEmail, req.PONumber), link)
}

// GenerateLink godoc
// @Summary Generate a form link without sending email
// @Tags Forms
// @Accept json
// @Produce json
// @Param payload body dto.GenerateLinkRequest false "Optional PO number"
// @Success 200 {object} response.Envelope{data=dto.FormLinkResponse}
// @Router /api/generate-link [post]
func (h *FormHandler) GenerateLink(c *gin.Context) {
	var req dto.GenerateLinkRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, invalidPayload(err))
			return
		}
	}
	req.PONumber = strings.TrimSpace(req.PONumber)
	link, err := h.service.IssueRawLink(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, service.RawLinkMessage(req.PONumber), link)
}

// Submit godoc
// @Summary Submit the bag specification for a form link
// @Tags Forms
// @Accept json
// @Produce json
// @Param token path string true "Form token"
// @Param payload body dto.SubmitFormRequest true "Bag specification"
// @Success 200 {object} response.Envelope{data=dto.SubmitFormResponse}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/submit-form/{token} [post]
func (h *FormHandler) Submit(c *gin.Context) {
	var req dto.SubmitFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	finalized, err := h.service.Submit(c.Request.Context(), c.Param("token"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, service.MsgSubmitted, dto.SubmitFormResponse{SubmissionID: finalized.ID, BagsCount: 1})
}
