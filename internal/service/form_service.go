package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/bagspec-api/internal/dto"
	"github.com/noah-isme/bagspec-api/internal/models"
	appErrors "github.com/noah-isme/bagspec-api/pkg/errors"
)

type submissionRepository interface {
	Create(ctx context.Context, submission *models.Submission) error
	FindByToken(ctx context.Context, token string) (*models.Submission, error)
	FindPendingByToken(ctx context.Context, token string) (*models.Submission, error)
	Finalize(ctx context.Context, token string, build func(pending *models.Submission) *models.Submission) (*models.Submission, error)
	List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, error)
}

type tokenIssuer interface {
	Issue() (string, error)
}

type linkBuilder interface {
	FormURL(token string) string
}

type formNotifier interface {
	SendInvite(ctx context.Context, pending *models.Submission, formURL string) error
	NotifySubmission(ctx context.Context, finalized *models.Submission, formURL string)
}

// Messages returned to API callers.
const (
	MsgSubmitted        = "Successfully submitted bag specification! Thank you for your response."
	MsgEmailFailed      = "Failed to send email. Please check SMTP settings."
	msgMissingRecipient = "Please provide recipient email"
	msgMissingQtySize   = "Please provide Quantity and Size"
	msgBadQuantity      = "Quantity must be a valid positive number"
	msgNoBag            = "Please add bag specification"
	msgManyBags         = "Only one bag specification can be submitted per link"
	msgInvalidFormLink  = "This form link is not valid."
)

// FormService implements the token gated form workflow.
type FormService struct {
	repo      submissionRepository
	tokens    tokenIssuer
	links     linkBuilder
	notifier  formNotifier
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFormService creates a new form service.
func NewFormService(repo submissionRepository, tokens tokenIssuer, links linkBuilder, notifier formNotifier, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *FormService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FormService{
		repo:      repo,
		tokens:    tokens,
		links:     links,
		notifier:  notifier,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// InviteMessage is the success message of an emailed invite.
func InviteMessage(recipient, po string) string {
	return fmt.Sprintf("Form link sent successfully to %s!", recipient) + poSuffix(po)
}

// RawLinkMessage is the success message of a generated link.
func RawLinkMessage(po string) string {
	return "Form link generated successfully!" + poSuffix(po)
}

func poSuffix(po string) string {
	if po == "" {
		return ""
	}
	return fmt.Sprintf(" (PO: %s)", po)
}

// IssueInvite stores a pending record and emails its link. When delivery
// fails the record is kept, and the link is returned with an ErrDelivery.
func (s *FormService) IssueInvite(ctx context.Context, req dto.SendFormRequest) (*dto.FormLinkResponse, error) {
	req.RecipientEmail = strings.TrimSpace(req.RecipientEmail)
	req.PONumber = strings.TrimSpace(req.PONumber)
	req.AdminSize = strings.TrimSpace(req.AdminSize)

	if req.RecipientEmail == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, msgMissingRecipient)
	}
	if req.AdminQuantity.Empty() || req.AdminSize == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, msgMissingQtySize)
	}
	quantity, err := req.AdminQuantity.Int()
	if err != nil || quantity <= 0 {
		return nil, appErrors.Validation(err, msgBadQuantity)
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, inviteValidationMessage(err))
	}

	pending := &models.Submission{
		RecipientEmail: req.RecipientEmail,
		PONumber:       models.StringPtr(req.PONumber),
		AdminQuantity:  &quantity,
		AdminSize:      models.StringPtr(req.AdminSize),
	}
	link, err := s.createPending(ctx, pending)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordLinkIssued("email")

	if err := s.notifier.SendInvite(ctx, pending, link.FormURL); err != nil {
		s.logger.Warn("invite stored but email failed",
			zap.String("submission_id", pending.ID),
			zap.String("recipient", pending.RecipientEmail),
			zap.Error(err))
		return link, appErrors.Wrap(err, appErrors.ErrDelivery.Code, appErrors.ErrDelivery.Status, MsgEmailFailed)
	}
	return link, nil
}

// IssueRawLink stores a pending record without an addressee or admin defaults.
func (s *FormService) IssueRawLink(ctx context.Context, req dto.GenerateLinkRequest) (*dto.FormLinkResponse, error) {
	req.PONumber = strings.TrimSpace(req.PONumber)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "PO number is too long")
	}

	pending := &models.Submission{
		RecipientEmail: models.RecipientDirectLink,
		PONumber:       models.StringPtr(req.PONumber),
	}
	link, err := s.createPending(ctx, pending)
	if err != nil {
		return nil, err
	}
	s.metrics.RecordLinkIssued("direct")
	return link, nil
}

func (s *FormService) createPending(ctx context.Context, pending *models.Submission) (*dto.FormLinkResponse, error) {
	token, err := s.tokens.Issue()
	if err != nil {
		return nil, appErrors.Internal(err, "failed to generate form link")
	}
	pending.Token = token
	if err := s.repo.Create(ctx, pending); err != nil {
		return nil, appErrors.Internal(err, "failed to create form link")
	}
	return &dto.FormLinkResponse{FormURL: s.links.FormURL(token), Token: token}, nil
}

// GetForm returns the record a form link was issued with. Consumed links are
// still returned; the caller decides how to present them.
func (s *FormService) GetForm(ctx context.Context, token string) (*models.Submission, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, msgInvalidFormLink)
	}
	submission, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, msgInvalidFormLink)
		}
		return nil, appErrors.Internal(err, "failed to load form")
	}
	return submission, nil
}

// Submit finalizes the pending record behind token with one bag answer.
// Unknown and already used tokens fail with the same ErrInvalidLink.
func (s *FormService) Submit(ctx context.Context, token string, req dto.SubmitFormRequest) (*models.Submission, error) {
	finalized, err := s.submit(ctx, strings.TrimSpace(token), req)
	if err != nil {
		s.metrics.RecordSubmission(submissionOutcome(err))
		return nil, err
	}
	s.metrics.RecordSubmission("accepted")

	s.notifier.NotifySubmission(ctx, finalized, s.links.FormURL(finalized.Token))
	return finalized, nil
}

func (s *FormService) submit(ctx context.Context, token string, req dto.SubmitFormRequest) (*models.Submission, error) {
	if token == "" {
		return nil, appErrors.Clone(appErrors.ErrInvalidLink, "")
	}
	if _, err := s.repo.FindPendingByToken(ctx, token); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidLink, "")
		}
		return nil, appErrors.Internal(err, "failed to load form")
	}

	bag, err := s.normalizeBag(req)
	if err != nil {
		return nil, err
	}
	remarks := strings.TrimSpace(req.GlobalRemarks)

	finalized, err := s.repo.Finalize(ctx, token, func(pending *models.Submission) *models.Submission {
		return buildFinalized(pending, bag, remarks)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidLink, "")
		}
		return nil, appErrors.Internal(err, "failed to submit form")
	}
	return finalized, nil
}

// buildFinalized copies the admin defaults of pending into a new record
// carrying the client's answer. Quantity always equals the admin quantity.
func buildFinalized(pending *models.Submission, bag dto.BagSpec, remarks string) *models.Submission {
	finalized := &models.Submission{
		Token:          pending.Token,
		RecipientEmail: pending.RecipientEmail,
		PONumber:       copyString(pending.PONumber),
		AdminQuantity:  copyInt(pending.AdminQuantity),
		AdminSize:      copyString(pending.AdminSize),
		Quantity:       copyInt(pending.AdminQuantity),
		BagType:        models.StringPtr(bag.BagType),
		ClientName:     models.StringPtr(bag.ClientName),
		ClientEmail:    models.StringPtr(bag.ClientEmail),
		Remarks:        models.StringPtr(remarks),
	}
	switch models.BagType(bag.BagType) {
	case models.BagTypeCollar:
		finalized.CollarOD = models.StringPtr(bag.CollarOD)
		finalized.CollarID = models.StringPtr(bag.CollarID)
	case models.BagTypeSnap:
		finalized.TubesheetData = models.StringPtr(bag.TubesheetData)
	case models.BagTypeRing:
		finalized.TubesheetDia = models.StringPtr(bag.TubesheetDia)
	}
	return finalized
}

func (s *FormService) normalizeBag(req dto.SubmitFormRequest) (dto.BagSpec, error) {
	bags := req.Bags
	if req.Bag != nil {
		bags = append(bags, *req.Bag)
	}
	switch {
	case len(bags) == 0:
		return dto.BagSpec{}, appErrors.Clone(appErrors.ErrValidation, msgNoBag)
	case len(bags) > 1:
		return dto.BagSpec{}, appErrors.Clone(appErrors.ErrValidation, msgManyBags)
	}

	bag := bags[0]
	bag.BagType = strings.ToLower(strings.TrimSpace(bag.BagType))
	bag.CollarOD = strings.TrimSpace(bag.CollarOD)
	bag.CollarID = strings.TrimSpace(bag.CollarID)
	bag.TubesheetData = strings.TrimSpace(bag.TubesheetData)
	bag.TubesheetDia = strings.TrimSpace(bag.TubesheetDia)
	bag.ClientName = strings.TrimSpace(bag.ClientName)
	bag.ClientEmail = strings.TrimSpace(bag.ClientEmail)

	if err := s.validator.Struct(bag); err != nil {
		return dto.BagSpec{}, appErrors.Validation(err, bagValidationMessage(err))
	}

	switch models.BagType(bag.BagType) {
	case models.BagTypeCollar:
		if bag.CollarOD == "" || bag.CollarID == "" {
			return dto.BagSpec{}, appErrors.Clone(appErrors.ErrValidation, "Collar OD and Collar ID are required for collar bags")
		}
	case models.BagTypeSnap:
		if bag.TubesheetData == "" {
			return dto.BagSpec{}, appErrors.Clone(appErrors.ErrValidation, "Tubesheet data is required for snap bags")
		}
	case models.BagTypeRing:
		if bag.TubesheetDia == "" {
			return dto.BagSpec{}, appErrors.Clone(appErrors.ErrValidation, "Tubesheet diameter is required for ring bags")
		}
	}
	return bag, nil
}

// List returns submissions newest first.
func (s *FormService) List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, error) {
	switch filter.Status {
	case "", models.SubmissionStatusPending, models.SubmissionStatusSubmitted:
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "status must be pending or submitted")
	}
	submissions, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list submissions")
	}
	return submissions, nil
}

func submissionOutcome(err error) string {
	switch {
	case errors.Is(err, appErrors.ErrValidation):
		return "invalid"
	case errors.Is(err, appErrors.ErrNotFound):
		return "invalid_link"
	default:
		return "error"
	}
}

func inviteValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		switch verrs[0].Field() {
		case "RecipientEmail":
			return "Please provide a valid recipient email"
		case "PONumber":
			return "PO number is too long"
		case "AdminSize":
			return "Size is too long"
		}
	}
	return "invalid invite payload"
}

func bagValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Field() {
		case "BagType":
			if fe.Tag() == "required" {
				return "Please select a bag type"
			}
			return "Bag type must be one of collar, snap, ring"
		case "ClientName":
			if fe.Tag() == "required" {
				return "Please provide your name"
			}
			return "Name is too long"
		case "ClientEmail":
			return "Please provide a valid email address"
		default:
			return fmt.Sprintf("%s is too long", fe.Field())
		}
	}
	return "invalid bag specification"
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyInt(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
