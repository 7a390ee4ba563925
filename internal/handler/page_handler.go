package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bagspec-api/internal/models"
	"github.com/noah-isme/bagspec-api/internal/view"
	appErrors "github.com/noah-isme/bagspec-api/pkg/errors"
)

// PageHandler renders the server side HTML pages.
type PageHandler struct {
	forms formService
}

// NewPageHandler constructs a page handler.
func NewPageHandler(forms formService) *PageHandler {
	return &PageHandler{forms: forms}
}

// Admin renders the admin console.
func (h *PageHandler) Admin(c *gin.Context) {
	c.HTML(http.StatusOK, view.PageAdmin, view.AdminPage{BagTypes: models.BagTypes})
}

// Form renders the client form for a token. Consumed links render the
// form in its submitted state; unknown tokens get the invalid link page.
func (h *PageHandler) Form(c *gin.Context) {
	token := c.Param("token")
	submission, err := h.forms.GetForm(c.Request.Context(), token)
	if err != nil {
		status, message := http.StatusNotFound, "This form link is not valid."
		if !errors.Is(err, appErrors.ErrNotFound) {
			_ = c.Error(err)
			status, message = http.StatusInternalServerError, "Something went wrong. Please try again later."
		}
		c.HTML(status, view.PageInvalidLink, view.InvalidLinkPage{Message: message})
		return
	}
	c.HTML(http.StatusOK, view.PageForm, view.FormPage{
		Token:         submission.Token,
		SubmitURL:     "/api/submit-form/" + url.PathEscape(submission.Token),
		PONumber:      submission.PONumber,
		AdminQuantity: submission.AdminQuantity,
		AdminSize:     submission.AdminSize,
		Submitted:     submission.Submitted,
		AskEmail:      submission.IsDirectLink(),
		BagTypes:      models.BagTypes,
	})
}

// Submissions renders the submission list, newest first.
func (h *PageHandler) Submissions(c *gin.Context) {
	filter := submissionFilter(c)
	submissions, err := h.forms.List(c.Request.Context(), filter)
	if err != nil {
		appErr := appErrors.FromError(err)
		if appErr.Err != nil {
			_ = c.Error(appErr.Err)
		}
		c.HTML(appErr.Status, view.PageInvalidLink, view.InvalidLinkPage{Message: appErr.Message})
		return
	}
	c.HTML(http.StatusOK, view.PageSubmissions, view.SubmissionsPage{
		Submissions: submissions,
		Status:      string(filter.Status),
		PONumber:    filter.PONumber,
		CSVURL:      exportURL("csv", filter),
		PDFURL:      exportURL("pdf", filter),
	})
}

func submissionFilter(c *gin.Context) models.SubmissionFilter {
	return models.SubmissionFilter{
		Status:   models.SubmissionStatus(strings.ToLower(strings.TrimSpace(c.Query("status")))),
		PONumber: strings.TrimSpace(c.Query("po")),
	}
}

func exportURL(format string, filter models.SubmissionFilter) string {
	q := url.Values{}
	q.Set("format", format)
	if filter.Status != "" {
		q.Set("status", string(filter.Status))
	}
	if filter.PONumber != "" {
		q.Set("po", filter.PONumber)
	}
	return "/submissions/export?" + q.Encode()
}
