package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bagspec-api/internal/models"
)

func TestBagSizeRepositoryListByType(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBagSizeRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "size_name", "bag_type", "created_at"}).
		AddRow("s-2", "120mm", "ring", now).
		AddRow("s-1", "100mm", "ring", now.Add(-time.Minute))
	mock.ExpectQuery("SELECT id, size_name, bag_type, created_at FROM bag_sizes").WithArgs("ring").WillReturnRows(rows)

	sizes, err := repo.ListByType(context.Background(), "ring")
	require.NoError(t, err)
	require.Len(t, sizes, 2)
	assert.Equal(t, "120mm", sizes[0].SizeName)
}

func TestBagSizeRepositoryExists(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBagSizeRepository(db)

	mock.ExpectQuery("SELECT 1 FROM bag_sizes").WithArgs("100mm", "ring").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
	mock.ExpectQuery("SELECT 1 FROM bag_sizes").WithArgs("90mm", "ring").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	exists, err := repo.Exists(context.Background(), "100mm", "ring")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(context.Background(), "90mm", "ring")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestBagSizeRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBagSizeRepository(db)

	mock.ExpectExec("INSERT INTO bag_sizes").
		WithArgs(sqlmock.AnyArg(), "100mm", "ring", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	size := &models.BagSize{SizeName: "100mm", BagType: "ring"}
	require.NoError(t, repo.Create(context.Background(), size))
	assert.NotEmpty(t, size.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBagSizeRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewBagSizeRepository(db)

	mock.ExpectQuery("DELETE FROM bag_sizes").WithArgs("s-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "size_name", "bag_type", "created_at"}).AddRow("s-1", "100mm", "ring", time.Now()))
	mock.ExpectQuery("DELETE FROM bag_sizes").WithArgs("s-404").
		WillReturnRows(sqlmock.NewRows([]string{"id", "size_name", "bag_type", "created_at"}))

	deleted, err := repo.Delete(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, "ring", deleted.BagType)

	_, err = repo.Delete(context.Background(), "s-404")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
