package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bagspec-api/internal/models"
	"github.com/noah-isme/bagspec-api/internal/service"
	appErrors "github.com/noah-isme/bagspec-api/pkg/errors"
)

type exportServiceMock struct {
	err        error
	lastFormat string
	lastFilter models.SubmissionFilter
}

func (m *exportServiceMock) Export(ctx context.Context, filter models.SubmissionFilter, format string) (*service.ExportFile, error) {
	m.lastFormat, m.lastFilter = format, filter
	if m.err != nil {
		return nil, m.err
	}
	return &service.ExportFile{Filename: "submissions.csv", ContentType: "text/csv; charset=utf-8", Data: []byte("a,b\n")}, nil
}

func newExportRouter(svc exportService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/submissions/export", NewExportHandler(svc).Export)
	return r
}

func TestExportHandler(t *testing.T) {
	svc := &exportServiceMock{}
	w := get(newExportRouter(svc), "/submissions/export?format=csv&status=submitted")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="submissions.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "a,b\n", w.Body.String())
	assert.Equal(t, "csv", svc.lastFormat)
	assert.Equal(t, models.SubmissionStatusSubmitted, svc.lastFilter.Status)
}

func TestExportHandlerBadFormat(t *testing.T) {
	svc := &exportServiceMock{err: appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")}
	w := get(newExportRouter(svc), "/submissions/export?format=xlsx")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
