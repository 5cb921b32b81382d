package repository

import (
	"context"

	"tomati/internal/cache"
	"tomati/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository defines the interface for category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *models.Category) error
	List(ctx context.Context) ([]*models.Category, error)
	GetByName(ctx context.Context, name string) (*models.Category, error)
}

// categoryRepository implements CategoryRepository
type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return err
	}
	cache.InvalidateCategories(ctx)
	return nil
}

func (r *categoryRepository) List(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := cache.Aside(ctx, cache.CategoriesKey, &categories, cache.CategoriesTTL, func() error {
		return r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &category, nil
}
