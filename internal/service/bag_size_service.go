package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/bagspec-api/internal/dto"
	"github.com/noah-isme/bagspec-api/internal/models"
	appErrors "github.com/noah-isme/bagspec-api/pkg/errors"
)

type bagSizeRepository interface {
	ListByType(ctx context.Context, bagType string) ([]models.BagSize, error)
	Exists(ctx context.Context, sizeName, bagType string) (bool, error)
	Create(ctx context.Context, size *models.BagSize) error
	Delete(ctx context.Context, id string) (*models.BagSize, error)
}

const msgSizeNotFound = "Size not found"

// BagSizeService maintains the per bag type size catalog.
type BagSizeService struct {
	repo      bagSizeRepository
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBagSizeService creates a new size catalog service. cache may be nil.
func NewBagSizeService(repo bagSizeRepository, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *BagSizeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BagSizeService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// SizeAddedMessage is the success message for a new size.
func SizeAddedMessage(name string) string {
	return fmt.Sprintf("Size %q added successfully", name)
}

func sizeCacheKey(bagType string) string {
	return "sizes:" + bagType
}

// Add creates a size unless the same name already exists for the bag type.
func (s *BagSizeService) Add(ctx context.Context, req dto.CreateSizeRequest) (*models.BagSize, error) {
	req.SizeName = strings.TrimSpace(req.SizeName)
	req.BagType = strings.ToLower(strings.TrimSpace(req.BagType))
	if req.SizeName == "" || req.BagType == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Size name and bag type required")
	}
	if err := s.validator.Struct(req); err != nil {
		msg := "Size name is too long"
		if !models.BagType(req.BagType).Valid() {
			msg = "Bag type must be one of collar, snap, ring"
		}
		return nil, appErrors.Validation(err, msg)
	}

	exists, err := s.repo.Exists(ctx, req.SizeName, req.BagType)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to check size")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "This size already exists")
	}

	size := &models.BagSize{SizeName: req.SizeName, BagType: req.BagType}
	if err := s.repo.Create(ctx, size); err != nil {
		return nil, appErrors.Internal(err, "failed to create size")
	}
	s.cache.Invalidate(ctx, sizeCacheKey(size.BagType))
	return size, nil
}

// List returns sizes for a bag type, newest first.
func (s *BagSizeService) List(ctx context.Context, bagType string) ([]models.BagSize, error) {
	bagType = strings.ToLower(strings.TrimSpace(bagType))
	if !models.BagType(bagType).Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "Bag type must be one of collar, snap, ring")
	}

	key := sizeCacheKey(bagType)
	var cached []models.BagSize
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	sizes, err := s.repo.ListByType(ctx, bagType)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list sizes")
	}
	s.cache.Set(ctx, key, sizes, 0)
	return sizes, nil
}

// Delete removes a size by id.
func (s *BagSizeService) Delete(ctx context.Context, id string) (*models.BagSize, error) {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, msgSizeNotFound)
	}
	size, err := s.repo.Delete(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, msgSizeNotFound)
		}
		return nil, appErrors.Internal(err, "failed to delete size")
	}
	s.cache.Invalidate(ctx, sizeCacheKey(size.BagType))
	return size, nil
}
