package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/bagspec-api/internal/models"
	appErrors "github.com/noah-isme/bagspec-api/pkg/errors"
	"github.com/noah-isme/bagspec-api/pkg/export"
)

type submissionLister interface {
	List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

var submissionExportHeaders = []string{
	"Created At", "Status", "Recipient", "PO Number", "Quantity", "Size", "Bag Type",
	"Collar OD", "Collar ID", "Tubesheet Data", "Tubesheet Dia", "Client Name", "Client Email", "Remarks", "Submitted At",
}

// ExportService renders the submission list as CSV or PDF.
type ExportService struct {
	submissions submissionLister
	exporters   map[string]export.Exporter
	logger      *zap.Logger
	now         func() time.Time
}

// NewExportService constructs an ExportService with the CSV and PDF exporters.
func NewExportService(submissions submissionLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		submissions: submissions,
		exporters: map[string]export.Exporter{
			"csv": export.NewCSVExporter(),
			"pdf": export.NewPDFExporter(),
		},
		logger: logger,
		now:    time.Now,
	}
}

// Export renders the filtered submissions in the requested format.
func (s *ExportService) Export(ctx context.Context, filter models.SubmissionFilter, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	submissions, err := s.submissions.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	data, err := exporter.Render(submissionDataset(submissions), "Filter Bag Submissions")
	if err != nil {
		s.logger.Error("render export failed", zap.String("format", format), zap.Error(err))
		return nil, appErrors.Internal(err, "failed to render export")
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("submissions-%s.%s", s.now().UTC().Format("20060102-150405"), exporter.Extension()),
		ContentType: exporter.ContentType(),
		Data:        data,
	}, nil
}

func submissionDataset(submissions []models.Submission) export.Dataset {
	rows := make([]map[string]string, 0, len(submissions))
	for _, sub := range submissions {
		status := string(models.SubmissionStatusPending)
		if sub.Submitted {
			status = string(models.SubmissionStatusSubmitted)
		}
		submittedAt := ""
		if sub.SubmittedAt != nil {
			submittedAt = sub.SubmittedAt.UTC().Format(time.RFC3339)
		}
		rows = append(rows, map[string]string{
			"Created At":     sub.CreatedAt.UTC().Format(time.RFC3339),
			"Status":         status,
			"Recipient":      sub.RecipientEmail,
			"PO Number":      models.StringValue(sub.PONumber),
			"Quantity":       intString(sub.AdminQuantity),
			"Size":           models.StringValue(sub.AdminSize),
			"Bag Type":       models.StringValue(sub.BagType),
			"Collar OD":      models.StringValue(sub.CollarOD),
			"Collar ID":      models.StringValue(sub.CollarID),
			"Tubesheet Data": models.StringValue(sub.TubesheetData),
			"Tubesheet Dia":  models.StringValue(sub.TubesheetDia),
			"Client Name":    models.StringValue(sub.ClientName),
			"Client Email":   models.StringValue(sub.ClientEmail),
			"Remarks":        models.StringValue(sub.Remarks),
			"Submitted At":   submittedAt,
		})
	}
	return export.Dataset{Headers: submissionExportHeaders, Rows: rows}
}

func intString(p *int) string {
	if p == nil {
		return ""
	}
	return strconv.Itoa(*p)
}
