// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"time"

	"tomati/internal/cache"
	"tomati/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateLike is returned when the acting user has already liked the
// product. Duplicates are detected solely by the composite unique index on
// (product_id, user_id); there is no read-before-write check, so concurrent
// duplicate requests collapse to a single accepted like.
var ErrDuplicateLike = errors.New("like already recorded")

// LikeResult carries the outcome of an accepted like.
type LikeResult struct {
	NewLikeCount int
	WasPromoted  bool
}

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	RecordLike(ctx context.Context, productID, userID string, threshold int) (*LikeResult, error)
	HasLiked(ctx context.Context, productID, userID string) (bool, error)
	GetLikedProductIDs(ctx context.Context, userID string, productIDs []string) ([]string, error)
	CountAll(ctx context.Context) (int64, error)
}

// likeRepository implements LikeRepository
type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository creates a new like repository
func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// RecordLike inserts the like, recounts the product's likes and promotes the
// product once the count reaches threshold. Everything runs in a single
// transaction:
//
//  1. INSERT ... ON CONFLICT DO NOTHING. Zero rows affected means the unique
//     index rejected a duplicate and the transaction is abandoned.
//  2. The like count is recomputed with COUNT(*) over product_likes, never
//     incremented, so the stored count always matches the rows that exist.
//     The UPDATE also takes the row lock that serializes concurrent likers.
//  3. A conditional UPDATE flips is_promoted only while it is still false and
//     the count has reached threshold. Its affected-row count is the one-shot
//     promotion signal: exactly one caller ever observes it.
func (r *likeRepository) RecordLike(ctx context.Context, productID, userID string, threshold int) (*LikeResult, error) {
	var result LikeResult

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := models.ProductLike{ProductID: productID, UserID: userID}
		ins := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(&like)
		if ins.Error != nil {
			return ins.Error
		}
		if ins.RowsAffected == 0 {
			return ErrDuplicateLike
		}

		recount := tx.Model(&models.Product{}).
			Where("id = ?", productID).
			Update("like_count", gorm.Expr(
				"(SELECT COUNT(*) FROM product_likes WHERE product_likes.product_id = ?)", productID,
			))
		if recount.Error != nil {
			return recount.Error
		}
		if recount.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		now := time.Now()
		promote := tx.Model(&models.Product{}).
			Where("id = ? AND is_promoted = ? AND like_count >= ?", productID, false, threshold).
			Updates(map[string]interface{}{
				"is_promoted": true,
				"promoted_at": now,
			})
		if promote.Error != nil {
			return promote.Error
		}
		result.WasPromoted = promote.RowsAffected == 1

		var product models.Product
		if err := tx.Select("like_count").First(&product, "id = ?", productID).Error; err != nil {
			return err
		}
		result.NewLikeCount = product.LikeCount
		return nil
	})
	if err != nil {
		return nil, err
	}

	cache.InvalidateProduct(ctx, productID)
	return &result, nil
}

func (r *likeRepository) HasLiked(ctx context.Context, productID, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductLike{}).
		Where("product_id = ? AND user_id = ?", productID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) GetLikedProductIDs(ctx context.Context, userID string, productIDs []string) ([]string, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	var likedIDs []string
	err := r.db.WithContext(ctx).
		Model(&models.ProductLike{}).
		Where("user_id = ? AND product_id IN ?", userID, productIDs).
		Pluck("product_id", &likedIDs).Error
	return likedIDs, err
}

func (r *likeRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ProductLike{}).Count(&count).Error
	return count, err
}
