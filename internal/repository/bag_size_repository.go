package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/bagspec-api/internal/models"
)

// BagSizeRepository handles persistence for the size catalog.
type BagSizeRepository struct {
	db *sqlx.DB
}

// NewBagSizeRepository creates a new repository instance.
func NewBagSizeRepository(db *sqlx.DB) *BagSizeRepository {
	return &BagSizeRepository{db: db}
}

// ListByType returns sizes for a bag type, newest first.
func (r *BagSizeRepository) ListByType(ctx context.Context, bagType string) ([]models.BagSize, error) {
	const query = `SELECT id, size_name, bag_type, created_at FROM bag_sizes WHERE bag_type = $1 ORDER BY created_at DESC`
	sizes := []models.BagSize{}
	if err := r.db.SelectContext(ctx, &sizes, query, bagType); err != nil {
		return nil, fmt.Errorf("list bag sizes: %w", err)
	}
	return sizes, nil
}

// Exists checks whether the (size name, bag type) pair is already stored.
func (r *BagSizeRepository) Exists(ctx context.Context, sizeName, bagType string) (bool, error) {
	const query = `SELECT 1 FROM bag_sizes WHERE size_name = $1 AND bag_type = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, sizeName, bagType); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check bag size: %w", err)
	}
	return true, nil
}

// Create persists a new size.
func (r *BagSizeRepository) Create(ctx context.Context, size *models.BagSize) error {
	if size.ID == "" {
		size.ID = uuid.NewString()
	}
	if size.CreatedAt.IsZero() {
		size.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO bag_sizes (id, size_name, bag_type, created_at) VALUES (:id, :size_name, :bag_type, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, size); err != nil {
		return fmt.Errorf("create bag size: %w", err)
	}
	return nil
}

// Delete removes a size. sql.ErrNoRows is returned when nothing matched.
func (r *BagSizeRepository) Delete(ctx context.Context, id string) (*models.BagSize, error) {
	const query = `DELETE FROM bag_sizes WHERE id = $1 RETURNING id, size_name, bag_type, created_at`
	var size models.BagSize
	if err := r.db.GetContext(ctx, &size, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("delete bag size: %w", err)
	}
	return &size, nil
}
