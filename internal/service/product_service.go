package service

import (
	"context"
	"errors"
	"strings"

	"tomati/internal/models"
	"tomati/internal/repository"
	"tomati/internal/validation"

	"gorm.io/gorm"
)

// ProductService handles listing lifecycle: create, read, update, delete.
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	isAdmin      func(ctx context.Context, userID string) (bool, error)
}

// CreateProductInput is the payload for creating a listing.
type CreateProductInput struct {
	UserID      string
	Title       string
	Description string
	Price       string
	Location    string
	Category    string
	ImageURL    string
	IsFree      bool
}

// UpdateProductInput is the payload for updating a listing.
type UpdateProductInput struct {
	UserID      string
	ProductID   string
	Title       string
	Description string
	Price       string
	Location    string
	Category    string
	ImageURL    string
	IsReserved  *bool
}

// NewProductService creates a new product service
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	isAdmin func(ctx context.Context, userID string) (bool, error),
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		isAdmin:      isAdmin,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, in CreateProductInput) (*models.Product, error) {
	if err := validation.ValidateProductTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateProductDescription(in.Description); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.IsFree {
		in.Price = "0"
	}
	if err := validation.ValidatePrice(in.Price); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if strings.TrimSpace(in.Location) == "" {
		return nil, models.NewValidationError("location is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return nil, models.NewValidationError("category is required")
	}
	if s.categoryRepo != nil {
		if _, err := s.categoryRepo.GetByName(ctx, in.Category); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, models.NewValidationError("unknown category")
			}
			return nil, err
		}
	}

	product := &models.Product{
		UserID:      in.UserID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Price:       in.Price,
		Location:    strings.TrimSpace(in.Location),
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		IsFree:      in.IsFree,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(ctx, product.ID, in.UserID)
}

// GetProduct returns the listing and bumps its view counter. View increment
// failures do not fail the read.
func (s *ProductService) GetProduct(ctx context.Context, id string, currentUserID string, countView bool) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id, currentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product", id)
		}
		return nil, err
	}
	if countView {
		_ = s.productRepo.IncrementViews(ctx, id)
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, filter repository.ProductFilter, currentUserID string) ([]*models.Product, error) {
	if filter.Limit <= 0 || filter.Limit > 100 {
		filter.Limit = 20
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.productRepo.List(ctx, filter, currentUserID)
}

func (s *ProductService) UpdateProduct(ctx context.Context, in UpdateProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, in.ProductID, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product", in.ProductID)
		}
		return nil, err
	}

	if product.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own products")
	}

	if in.Title != "" {
		if err := validation.ValidateProductTitle(in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		product.Title = strings.TrimSpace(in.Title)
	}
	if in.Description != "" {
		if err := validation.ValidateProductDescription(in.Description); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		product.Description = in.Description
	}
	if in.Price != "" {
		if err := validation.ValidatePrice(in.Price); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		product.Price = in.Price
	}
	if in.Location != "" {
		product.Location = strings.TrimSpace(in.Location)
	}
	if in.Category != "" {
		product.Category = in.Category
	}
	if in.ImageURL != "" {
		product.ImageURL = in.ImageURL
	}
	if in.IsReserved != nil {
		product.IsReserved = *in.IsReserved
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, productID, userID string) error {
	product, err := s.productRepo.GetByID(ctx, productID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Product", productID)
		}
		return err
	}

	if product.UserID != userID {
		if s.isAdmin == nil {
			return models.NewForbiddenError("You can only delete your own products")
		}
		admin, err := s.isAdmin(ctx, userID)
		if err != nil {
			return err
		}
		if !admin {
			return models.NewForbiddenError("You can only delete your own products")
		}
	}

	return s.productRepo.Delete(ctx, productID)
}
