package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/bagspec-api/internal/dto"
	"github.com/noah-isme/bagspec-api/internal/models"
	appErrors "github.com/noah-isme/bagspec-api/pkg/errors"
)

func newBagSizeFixture(cached bool) (*BagSizeService, *fakeBagSizeRepo, *memoryCache) {
	repo := &fakeBagSizeRepo{}
	store := newMemoryCache()
	var cache *CacheService
	if cached {
		cache = NewCacheService(store, NewMetricsService(), 0, zap.NewNop(), true)
	}
	return NewBagSizeService(repo, cache, validator.New(), zap.NewNop()), repo, store
}

func TestBagSizeAddAndList(t *testing.T) {
	svc, _, _ := newBagSizeFixture(false)
	ctx := context.Background()

	first, err := svc.Add(ctx, dto.CreateSizeRequest{SizeName: " 150mm x 120mm ", BagType: "Collar"})
	require.NoError(t, err)
	assert.Equal(t, "150mm x 120mm", first.SizeName)
	assert.Equal(t, "collar", first.BagType)
	assert.NotEmpty(t, first.ID)

	_, err = svc.Add(ctx, dto.CreateSizeRequest{SizeName: "200mm", BagType: "collar"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, dto.CreateSizeRequest{SizeName: "300mm", BagType: "ring"})
	require.NoError(t, err)

	sizes, err := svc.List(ctx, "collar")
	require.NoError(t, err)
	require.Len(t, sizes, 2)
	assert.Equal(t, "200mm", sizes[0].SizeName)
	assert.Equal(t, "150mm x 120mm", sizes[1].SizeName)

	empty, err := svc.List(ctx, "snap")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestBagSizeAddDuplicate(t *testing.T) {
	svc, repo, _ := newBagSizeFixture(false)
	ctx := context.Background()
	_, err := svc.Add(ctx, dto.CreateSizeRequest{SizeName: "150mm", BagType: "snap"})
	require.NoError(t, err)

	_, err = svc.Add(ctx, dto.CreateSizeRequest{SizeName: "150mm", BagType: "snap"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, appErrors.ErrConflict))
	assert.Equal(t, "This size already exists", appErrors.FromError(err).Message)

	_, err = svc.Add(ctx, dto.CreateSizeRequest{SizeName: "150mm", BagType: "ring"})
	require.NoError(t, err)
	assert.Len(t, repo.sizes, 2)
}

func TestBagSizeAddValidation(t *testing.T) {
	svc, _, _ := newBagSizeFixture(false)
	cases := []struct {
		req dto.CreateSizeRequest
		msg string
	}{
		{dto.CreateSizeRequest{SizeName: "", BagType: "collar"}, "Size name and bag type required"},
		{dto.CreateSizeRequest{SizeName: "150mm", BagType: " "}, "Size name and bag type required"},
		{dto.CreateSizeRequest{SizeName: "150mm", BagType: "pleated"}, "Bag type must be one of collar, snap, ring"},
	}
	for _, tc := range cases {
		_, err := svc.Add(context.Background(), tc.req)
		require.Error(t, err)
		assert.True(t, errors.Is(err, appErrors.ErrValidation))
		assert.Equal(t, tc.msg, appErrors.FromError(err).Message)
	}

	_, err := svc.List(context.Background(), "pleated")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestBagSizeDelete(t *testing.T) {
	svc, repo, _ := newBagSizeFixture(false)
	ctx := context.Background()
	size, err := svc.Add(ctx, dto.CreateSizeRequest{SizeName: "150mm", BagType: "ring"})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, size.ID)
	require.NoError(t, err)
	assert.Equal(t, size.ID, deleted.ID)
	assert.Empty(t, repo.sizes)

	for _, id := range []string{size.ID, "not-a-uuid", ""} {
		_, err = svc.Delete(ctx, id)
		require.Error(t, err)
		assert.True(t, errors.Is(err, appErrors.ErrNotFound))
		assert.Equal(t, "Size not found", appErrors.FromError(err).Message)
	}
}

func TestBagSizeListReadsThroughCache(t *testing.T) {
	svc, repo, store := newBagSizeFixture(true)
	ctx := context.Background()
	_, err := svc.Add(ctx, dto.CreateSizeRequest{SizeName: "150mm", BagType: "collar"})
	require.NoError(t, err)

	first, err := svc.List(ctx, "collar")
	require.NoError(t, err)
	second, err := svc.List(ctx, "collar")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listCalls)
	assert.Contains(t, store.values, "sizes:collar")

	added, err := svc.Add(ctx, dto.CreateSizeRequest{SizeName: "200mm", BagType: "collar"})
	require.NoError(t, err)
	assert.NotContains(t, store.values, "sizes:collar")

	sizes, err := svc.List(ctx, "collar")
	require.NoError(t, err)
	assert.Len(t, sizes, 2)
	assert.Equal(t, 2, repo.listCalls)

	_, err = svc.Delete(ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"sizes:collar", "sizes:collar"}, store.deleted)
}

func TestCacheServiceDisabled(t *testing.T) {
	store := newMemoryCache()
	cache := NewCacheService(store, nil, 0, nil, false)
	assert.False(t, cache.Enabled())

	cache.Set(context.Background(), "sizes:ring", []models.BagSize{{SizeName: "x"}}, 0)
	var out []models.BagSize
	assert.False(t, cache.Get(context.Background(), "sizes:ring", &out))
	assert.Empty(t, store.values)

	var nilCache *CacheService
	assert.False(t, nilCache.Enabled())
	assert.NotPanics(t, func() { nilCache.Invalidate(context.Background(), "sizes:ring") })
}
