package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bagspec-api/internal/models"
	"github.com/noah-isme/bagspec-api/internal/service"
	"github.com/noah-isme/bagspec-api/pkg/response"
)

type exportService interface {
	Export(ctx context.Context, filter models.SubmissionFilter, format string) (*service.ExportFile, error)
}

// ExportHandler streams submission exports.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs an export handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export godoc
// @Summary Download submissions as CSV or PDF
// @Tags Submissions
// @Produce text/csv,application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Param status query string false "pending or submitted"
// @Param po query string false "PO number contains"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /submissions/export [get]
func (h *ExportHandler) Export(c *gin.Context) {
	file, err := h.service.Export(c.Request.Context(), submissionFilter(c), c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, file.ContentType, file.Data)
}
