package repository

import (
	"context"

	"tomati/internal/cache"
	"tomati/internal/models"

	"gorm.io/gorm"
)

// ProductFilter narrows product listings.
type ProductFilter struct {
	Category string
	Search   string
	UserID   string
	Limit    int
	Offset   int
}

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id string, currentUserID string) (*models.Product, error)
	List(ctx context.Context, filter ProductFilter, currentUserID string) ([]*models.Product, error)
	GetPromoted(ctx context.Context, limit int) ([]*models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountPromoted(ctx context.Context) (int64, error)
}

// productRepository implements ProductRepository
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// applyProductDetails adds the liked flag for the viewing user in a single query.
func (r *productRepository) applyProductDetails(db *gorm.DB, currentUserID string) *gorm.DB {
	if currentUserID != "" {
		return db.Select("products.*, EXISTS(SELECT 1 FROM product_likes WHERE product_likes.product_id = products.id AND product_likes.user_id = ?) as liked", currentUserID)
	}
	return db.Select("products.*, false as liked")
}

func (r *productRepository) GetByID(ctx context.Context, id string, currentUserID string) (*models.Product, error) {
	var product models.Product
	key := cache.ProductKey(id)

	var err error
	if currentUserID == "" {
		// Anonymous reads share a cache entry; the liked flag is always false.
		err = cache.Aside(ctx, key, &product, cache.ProductTTL, func() error {
			return r.applyProductDetails(r.db.WithContext(ctx), "").
				Preload("User").
				First(&product, "products.id = ?", id).Error
		})
	} else {
		err = r.applyProductDetails(r.db.WithContext(ctx), currentUserID).
			Preload("User").
			First(&product, "products.id = ?", id).Error
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter ProductFilter, currentUserID string) ([]*models.Product, error) {
	var products []*models.Product
	q := r.applyProductDetails(r.db.WithContext(ctx), currentUserID).
		Preload("User")

	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}

	err := q.Order("is_promoted DESC, created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) GetPromoted(ctx context.Context, limit int) ([]*models.Product, error) {
	var products []*models.Product
	err := cache.Aside(ctx, cache.PromotedProductsKey, &products, cache.PromotedTTL, func() error {
		return r.applyProductDetails(r.db.WithContext(ctx), "").
			Preload("User").
			Where("is_promoted = ?", true).
			Order("promoted_at DESC").
			Limit(limit).
			Find(&products).Error
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) Update(ctx context.Context, product *models.Product) error {
	// Only owner-editable columns are written. like_count, is_promoted and
	// promoted_at belong to the like flow; a stale in-memory product must not
	// overwrite them.
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", product.ID).
		Select("title", "description", "price", "location", "category", "image_url", "is_reserved").
		Updates(product).Error
	if err != nil {
		return err
	}
	cache.InvalidateProduct(ctx, product.ID)
	return nil
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id).Error; err != nil {
		return err
	}
	cache.InvalidateProduct(ctx, id)
	return nil
}

func (r *productRepository) IncrementViews(ctx context.Context, id string) error {
	// View counts are advisory; a plain atomic increment is fine here.
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error
	return count, err
}

func (r *productRepository) CountPromoted(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("is_promoted = ?", true).
		Count(&count).Error
	return count, err
}
