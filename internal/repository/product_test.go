package repository

import (
	"context"
	"regexp"
	"testing"

	"tomati/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestProductRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := &models.Product{
		UserID:   uuid.NewString(),
		Title:    "Vélo de montagne",
		Price:    "250",
		Location: "Tunis",
		Category: "sports",
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "products"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Create(ctx, product)
	assert.NoError(t, err)
	assert.NotEmpty(t, product.ID, "BeforeCreate should assign a UUID")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_GetByID(t *testing.T) {
	ctx := context.Background()
	productID := uuid.NewString()
	ownerID := uuid.NewString()
	viewerID := uuid.NewString()

	t.Run("Anonymous Viewer", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewProductRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT products.*, false as liked FROM "products"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "like_count", "is_promoted", "liked"}).
				AddRow(productID, ownerID, "Vélo", 2, false, false))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
			WithArgs(ownerID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(ownerID, "seller@tomati.tn"))

		product, err := repo.GetByID(ctx, productID, "")
		assert.NoError(t, err)
		assert.Equal(t, "Vélo", product.Title)
		assert.Equal(t, 2, product.LikeCount)
		assert.False(t, product.Liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Signed-In Viewer Gets Liked Flag", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewProductRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT products.*, EXISTS(SELECT 1 FROM product_likes`)).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "like_count", "liked"}).
				AddRow(productID, ownerID, "Vélo", 3, true))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users"`)).
			WithArgs(ownerID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "email"}).AddRow(ownerID, "seller@tomati.tn"))

		product, err := repo.GetByID(ctx, productID, viewerID)
		assert.NoError(t, err)
		assert.True(t, product.Liked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Not Found", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewProductRepository(db)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT products.*, false as liked FROM "products"`)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		product, err := repo.GetByID(ctx, productID, "")
		assert.Nil(t, product)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestProductRepository_IncrementViews(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewProductRepository(db)
	productID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET "view_count"=view_count + 1`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.IncrementViews(context.Background(), productID)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
