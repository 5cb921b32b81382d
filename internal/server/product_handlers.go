package server

import (
	"tomati/internal/models"
	"tomati/internal/repository"
	"tomati/internal/service"

	"github.com/gofiber/fiber/v2"
)

type productRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	ImageURL    string `json:"image_url"`
	IsFree      bool   `json:"is_free"`
	IsReserved  *bool  `json:"is_reserved"`
}

// CreateProduct creates a listing owned by the authenticated user.
func (s *Server) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	product, err := s.productService.CreateProduct(c.UserContext(), service.CreateProductInput{
		UserID:      currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsFree:      req.IsFree,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// GetProduct returns a single listing. Public; a valid bearer token enriches
// the response with the viewer's like status.
func (s *Server) GetProduct(c *fiber.Ctx) error {
	product, err := s.productService.GetProduct(c.UserContext(), c.Params("id"), currentUserID(c), true)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(product)
}

// ListProducts returns listings, promoted first, with optional category and
// search filters.
func (s *Server) ListProducts(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	filter := repository.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		UserID:   c.Query("user_id"),
		Limit:    limit,
		Offset:   offset,
	}

	products, err := s.productService.ListProducts(c.UserContext(), filter, currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"products": products,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetPromotedProducts returns the currently promoted listings.
func (s *Server) GetPromotedProducts(c *fiber.Ctx) error {
	limit, _ := parsePagination(c)
	products, err := s.promotionService.GetPromotedProducts(c.UserContext(), limit)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"products": products})
}

// UpdateProduct updates a listing. Only the owner may update it.
func (s *Server) UpdateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	product, err := s.productService.UpdateProduct(c.UserContext(), service.UpdateProductInput{
		UserID:      currentUserID(c),
		ProductID:   c.Params("id"),
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Location:    req.Location,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsReserved:  req.IsReserved,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(product)
}

// DeleteProduct removes a listing. The owner or an admin may delete it.
func (s *Server) DeleteProduct(c *fiber.Ctx) error {
	if err := s.productService.DeleteProduct(c.UserContext(), c.Params("id"), currentUserID(c)); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Produit supprimé"})
}
