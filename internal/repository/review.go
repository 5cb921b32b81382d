package repository

import (
	"context"
	"errors"

	"tomati/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateReview is returned when the reviewer has already rated the
// product. Like likes, duplicates are detected solely by the composite unique
// index on (product_id, reviewer_id).
var ErrDuplicateReview = errors.New("review already recorded")

// RatingSummary aggregates the reviews of one product.
type RatingSummary struct {
	Average float64
	Count   int64
}

// ReviewRepository defines the interface for review data operations
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListForProduct(ctx context.Context, productID string, limit, offset int) ([]*models.Review, error)
	SummaryForProduct(ctx context.Context, productID string) (*RatingSummary, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	ins := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "reviewer_id"}},
		DoNothing: true,
	}).Create(review)
	if ins.Error != nil {
		return ins.Error
	}
	if ins.RowsAffected == 0 {
		return ErrDuplicateReview
	}
	return nil
}

func (r *reviewRepository) ListForProduct(ctx context.Context, productID string, limit, offset int) ([]*models.Review, error) {
	var reviews []*models.Review
	err := r.db.WithContext(ctx).
		Preload("Reviewer").
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error
	if err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) SummaryForProduct(ctx context.Context, productID string) (*RatingSummary, error) {
	var summary RatingSummary
	err := r.db.WithContext(ctx).
		Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&summary).Error
	if err != nil {
		return nil, err
	}
	return &summary, nil
}
