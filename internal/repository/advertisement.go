package repository

import (
	"context"

	"tomati/internal/cache"
	"tomati/internal/models"

	"gorm.io/gorm"
)

// AdvertisementRepository defines the interface for advertisement data operations
type AdvertisementRepository interface {
	Create(ctx context.Context, ad *models.Advertisement) error
	GetByID(ctx context.Context, id string) (*models.Advertisement, error)
	ListActive(ctx context.Context, position string) ([]*models.Advertisement, error)
	ListAll(ctx context.Context, limit, offset int) ([]*models.Advertisement, error)
	Update(ctx context.Context, ad *models.Advertisement) error
	Delete(ctx context.Context, id string) error
	IncrementImpressions(ctx context.Context, id string) error
	IncrementClicks(ctx context.Context, id string) error
}

// advertisementRepository implements AdvertisementRepository
type advertisementRepository struct {
	db *gorm.DB
}

// NewAdvertisementRepository creates a new advertisement repository
func NewAdvertisementRepository(db *gorm.DB) AdvertisementRepository {
	return &advertisementRepository{db: db}
}

func (r *advertisementRepository) Create(ctx context.Context, ad *models.Advertisement) error {
	if err := r.db.WithContext(ctx).Create(ad).Error; err != nil {
		return err
	}
	cache.InvalidateAdvertisements(ctx, ad.Position)
	return nil
}

func (r *advertisementRepository) GetByID(ctx context.Context, id string) (*models.Advertisement, error) {
	var ad models.Advertisement
	if err := r.db.WithContext(ctx).First(&ad, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ad, nil
}

func (r *advertisementRepository) ListActive(ctx context.Context, position string) ([]*models.Advertisement, error) {
	var ads []*models.Advertisement
	err := cache.Aside(ctx, cache.AdvertisementKey(position), &ads, cache.AdvertisementTTL, func() error {
		return r.db.WithContext(ctx).
			Where("position = ? AND is_active = ?", position, true).
			Order("created_at DESC").
			Find(&ads).Error
	})
	if err != nil {
		return nil, err
	}
	return ads, nil
}

func (r *advertisementRepository) ListAll(ctx context.Context, limit, offset int) ([]*models.Advertisement, error) {
	var ads []*models.Advertisement
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&ads).Error
	return ads, err
}

func (r *advertisementRepository) Update(ctx context.Context, ad *models.Advertisement) error {
	if err := r.db.WithContext(ctx).Save(ad).Error; err != nil {
		return err
	}
	cache.InvalidateAdvertisements(ctx, ad.Position)
	return nil
}

func (r *advertisementRepository) Delete(ctx context.Context, id string) error {
	ad, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Advertisement{}, "id = ?", id).Error; err != nil {
		return err
	}
	cache.InvalidateAdvertisements(ctx, ad.Position)
	return nil
}

// Impression and click counters are advisory analytics; plain atomic
// increments are sufficient, unlike the recounted product like counter.
func (r *advertisementRepository) IncrementImpressions(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&models.Advertisement{}).
		Where("id = ?", id).
		Update("impression_count", gorm.Expr("impression_count + 1")).Error
}

func (r *advertisementRepository) IncrementClicks(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&models.Advertisement{}).
		Where("id = ?", id).
		Update("click_count", gorm.Expr("click_count + 1")).Error
}
