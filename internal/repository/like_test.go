package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestLikeRepository_RecordLike(t *testing.T) {
	productID := uuid.NewString()
	userID := uuid.NewString()

	t.Run("First Like Below Threshold", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewLikeRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "product_likes"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		// recount from product_likes
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET "like_count"=`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		// conditional promotion does not fire below threshold
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT "like_count" FROM "products"`)).
			WillReturnRows(sqlmock.NewRows([]string{"like_count"}).AddRow(1))
		mock.ExpectCommit()

		result, err := repo.RecordLike(context.Background(), productID, userID, 3)
		assert.NoError(t, err)
		assert.Equal(t, 1, result.NewLikeCount)
		assert.False(t, result.WasPromoted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Third Like Promotes", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewLikeRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "product_likes"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET "like_count"=`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		// promotion UPDATE affects exactly one row on the threshold transition
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT "like_count" FROM "products"`)).
			WillReturnRows(sqlmock.NewRows([]string{"like_count"}).AddRow(3))
		mock.ExpectCommit()

		result, err := repo.RecordLike(context.Background(), productID, userID, 3)
		assert.NoError(t, err)
		assert.Equal(t, 3, result.NewLikeCount)
		assert.True(t, result.WasPromoted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Like Beyond Threshold Does Not Re-Promote", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewLikeRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "product_likes"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET "like_count"=`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		// is_promoted already true, conditional update matches nothing
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT "like_count" FROM "products"`)).
			WillReturnRows(sqlmock.NewRows([]string{"like_count"}).AddRow(4))
		mock.ExpectCommit()

		result, err := repo.RecordLike(context.Background(), productID, userID, 3)
		assert.NoError(t, err)
		assert.Equal(t, 4, result.NewLikeCount)
		assert.False(t, result.WasPromoted)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Duplicate Like Rejected By Constraint", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewLikeRepository(db)

		mock.ExpectBegin()
		// ON CONFLICT DO NOTHING swallows the duplicate: zero rows affected
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "product_likes"`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		result, err := repo.RecordLike(context.Background(), productID, userID, 3)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrDuplicateLike)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing Product Rolls Back", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewLikeRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "product_likes"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "products" SET "like_count"=`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		result, err := repo.RecordLike(context.Background(), productID, userID, 3)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insert Failure Propagates", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewLikeRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "product_likes"`)).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		result, err := repo.RecordLike(context.Background(), productID, userID, 3)
		assert.Nil(t, result)
		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLikeRepository_HasLiked(t *testing.T) {
	productID := uuid.NewString()
	userID := uuid.NewString()

	tests := []struct {
		name     string
		count    int64
		expected bool
	}{
		{"Liked", 1, true},
		{"Not Liked", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewLikeRepository(db)

			mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "product_likes"`)).
				WithArgs(productID, userID).
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.count))

			liked, err := repo.HasLiked(context.Background(), productID, userID)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, liked)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLikeRepository_GetLikedProductIDs(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLikeRepository(db)
	userID := uuid.NewString()

	t.Run("Empty Input Short-Circuits", func(t *testing.T) {
		ids, err := repo.GetLikedProductIDs(context.Background(), userID, nil)
		assert.NoError(t, err)
		assert.Nil(t, ids)
	})

	t.Run("Returns Matching IDs", func(t *testing.T) {
		p1, p2 := uuid.NewString(), uuid.NewString()
		mock.ExpectQuery(regexp.QuoteMeta(`SELECT "product_id" FROM "product_likes"`)).
			WillReturnRows(sqlmock.NewRows([]string{"product_id"}).AddRow(p1))

		ids, err := repo.GetLikedProductIDs(context.Background(), userID, []string{p1, p2})
		assert.NoError(t, err)
		assert.Equal(t, []string{p1}, ids)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
