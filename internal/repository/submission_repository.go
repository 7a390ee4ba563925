package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/bagspec-api/internal/models"
)

const submissionColumns = `id, token, recipient_email, po_number, admin_quantity, admin_size, bag_type, collar_od, collar_id,
	tubesheet_data, tubesheet_dia, client_name, client_email, quantity, remarks, submitted, created_at, submitted_at`

const insertSubmission = `INSERT INTO filter_bag_submissions (` + submissionColumns + `)
	VALUES (:id, :token, :recipient_email, :po_number, :admin_quantity, :admin_size, :bag_type, :collar_od, :collar_id,
	:tubesheet_data, :tubesheet_dia, :client_name, :client_email, :quantity, :remarks, :submitted, :created_at, :submitted_at)`

// SubmissionRepository persists pending invites and finalized answers.
type SubmissionRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

// NewSubmissionRepository creates a new repository instance.
func NewSubmissionRepository(db *sqlx.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db, now: time.Now}
}

// Create inserts a pending submission.
func (r *SubmissionRepository) Create(ctx context.Context, submission *models.Submission) error {
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	if submission.CreatedAt.IsZero() {
		submission.CreatedAt = r.now().UTC()
	}
	if _, err := r.db.NamedExecContext(ctx, insertSubmission, submission); err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

// FindByToken returns the pending record a token was issued with, submitted or not.
func (r *SubmissionRepository) FindByToken(ctx context.Context, token string) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM filter_bag_submissions
		WHERE token = $1 AND bag_type IS NULL ORDER BY created_at ASC LIMIT 1`
	var submission models.Submission
	if err := r.db.GetContext(ctx, &submission, query, token); err != nil {
		return nil, err
	}
	return &submission, nil
}

// FindPendingByToken returns the record only while it still accepts an answer.
func (r *SubmissionRepository) FindPendingByToken(ctx context.Context, token string) (*models.Submission, error) {
	query := `SELECT ` + submissionColumns + ` FROM filter_bag_submissions
		WHERE token = $1 AND submitted = FALSE AND bag_type IS NULL ORDER BY created_at ASC LIMIT 1`
	var submission models.Submission
	if err := r.db.GetContext(ctx, &submission, query, token); err != nil {
		return nil, err
	}
	return &submission, nil
}

// Finalize locks the pending record for token, inserts the record produced by
// build and flips the pending flag in one transaction. sql.ErrNoRows is
// returned when the token is unknown or was consumed concurrently.
func (r *SubmissionRepository) Finalize(ctx context.Context, token string, build func(pending *models.Submission) *models.Submission) (*models.Submission, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin finalize tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	lockQuery := `SELECT ` + submissionColumns + ` FROM filter_bag_submissions
		WHERE token = $1 AND submitted = FALSE AND bag_type IS NULL ORDER BY created_at ASC LIMIT 1 FOR UPDATE`
	var pending models.Submission
	if err = tx.GetContext(ctx, &pending, lockQuery, token); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("lock pending submission: %w", err)
	}

	now := r.now().UTC()
	finalized := build(&pending)
	if finalized.ID == "" {
		finalized.ID = uuid.NewString()
	}
	finalized.Token = pending.Token
	finalized.Submitted = true
	finalized.CreatedAt = now
	finalized.SubmittedAt = &now

	if _, err = tx.NamedExecContext(ctx, insertSubmission, finalized); err != nil {
		return nil, fmt.Errorf("insert finalized submission: %w", err)
	}

	res, err := tx.ExecContext(ctx, `UPDATE filter_bag_submissions SET submitted = TRUE, submitted_at = $1 WHERE id = $2 AND submitted = FALSE`, now, pending.ID)
	if err != nil {
		return nil, fmt.Errorf("mark submission submitted: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("mark submission submitted: %w", err)
	}
	if affected == 0 {
		err = sql.ErrNoRows
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit finalize tx: %w", err)
	}
	return finalized, nil
}

// List returns submissions newest first.
func (r *SubmissionRepository) List(ctx context.Context, filter models.SubmissionFilter) ([]models.Submission, error) {
	var conditions []string
	var args []interface{}

	switch filter.Status {
	case models.SubmissionStatusPending:
		conditions = append(conditions, "submitted = FALSE")
	case models.SubmissionStatusSubmitted:
		conditions = append(conditions, "submitted = TRUE")
	}
	if po := strings.TrimSpace(filter.PONumber); po != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(po_number) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(po)+"%")
	}

	query := `SELECT ` + submissionColumns + ` FROM filter_bag_submissions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	submissions := []models.Submission{}
	if err := r.db.SelectContext(ctx, &submissions, query, args...); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return submissions, nil
}

// Ping checks database connectivity for readiness probes.
func (r *SubmissionRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
