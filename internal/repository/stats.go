package repository

import (
	"context"

	"tomati/internal/models"

	"gorm.io/gorm"
)

// DashboardStats aggregates marketplace counters for the admin dashboard.
type DashboardStats struct {
	Users            int64 `json:"users"`
	Products         int64 `json:"products"`
	PromotedProducts int64 `json:"promoted_products"`
	Likes            int64 `json:"likes"`
	Notifications    int64 `json:"notifications"`
	Advertisements   int64 `json:"advertisements"`
	TotalViews       int64 `json:"total_views"`
	TotalAdClicks    int64 `json:"total_ad_clicks"`
	TotalImpressions int64 `json:"total_ad_impressions"`
}

// StatsRepository reads aggregate counters.
type StatsRepository interface {
	Dashboard(ctx context.Context) (*DashboardStats, error)
}

type statsRepository struct {
	db       *gorm.DB
	users    UserRepository
	products ProductRepository
	likes    LikeRepository
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{
		db:       db,
		users:    NewUserRepository(db),
		products: NewProductRepository(db),
		likes:    NewLikeRepository(db),
	}
}

func (r *statsRepository) Dashboard(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	var err error
	db := r.db.WithContext(ctx)

	if stats.Users, err = r.users.Count(ctx); err != nil {
		return nil, err
	}
	if stats.Products, err = r.products.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PromotedProducts, err = r.products.CountPromoted(ctx); err != nil {
		return nil, err
	}
	if stats.Likes, err = r.likes.CountAll(ctx); err != nil {
		return nil, err
	}
	if err := db.Model(&models.Notification{}).Count(&stats.Notifications).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Advertisement{}).Count(&stats.Advertisements).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Product{}).Select("COALESCE(SUM(view_count), 0)").Scan(&stats.TotalViews).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Advertisement{}).Select("COALESCE(SUM(click_count), 0)").Scan(&stats.TotalAdClicks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Advertisement{}).Select("COALESCE(SUM(impression_count), 0)").Scan(&stats.TotalImpressions).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}
