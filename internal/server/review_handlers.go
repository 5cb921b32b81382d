package server

import (
	"errors"

	"tomati/internal/models"
	"tomati/internal/repository"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type reviewRequest struct {
	ProductID string `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// CreateReview records the authenticated user's rating of a product. Sellers
// cannot rate their own listings and each user rates a product at most once.
func (s *Server) CreateReview(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var req reviewRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}
	if req.ProductID == "" {
		return models.RespondWithAppError(c, models.NewValidationError("product_id is required"))
	}
	if req.Rating < 1 || req.Rating > 5 {
		return models.RespondWithAppError(c, models.NewValidationError("La note doit être comprise entre 1 et 5"))
	}

	product, err := s.productRepo.GetByID(c.UserContext(), req.ProductID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithAppError(c, models.NewNotFoundError("Product", req.ProductID))
		}
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	if product.UserID == userID {
		return models.RespondWithAppError(c, models.NewForbiddenError("Vous ne pouvez pas évaluer votre propre produit"))
	}

	review := &models.Review{
		ProductID:  req.ProductID,
		ReviewerID: userID,
		Rating:     req.Rating,
		Comment:    req.Comment,
	}
	if err := s.reviewRepo.Create(c.UserContext(), review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return models.RespondWithAppError(c, models.NewConflictError("Vous avez déjà évalué ce produit"))
		}
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(review)
}

// ListProductReviews returns a product's reviews with the aggregate rating.
func (s *Server) ListProductReviews(c *fiber.Ctx) error {
	productID := c.Params("id")

	if _, err := s.productRepo.GetByID(c.UserContext(), productID, ""); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithAppError(c, models.NewNotFoundError("Product", productID))
		}
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	limit, offset := parsePagination(c)
	reviews, err := s.reviewRepo.ListForProduct(c.UserContext(), productID, limit, offset)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	summary, err := s.reviewRepo.SummaryForProduct(c.UserContext(), productID)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"reviews":        reviews,
		"average_rating": summary.Average,
		"review_count":   summary.Count,
	})
}
