package server

import (
	"strings"

	"tomati/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LikeProduct records the authenticated user's like on a product. The response
// carries the authoritative like count and whether this like triggered the
// automatic promotion.
func (s *Server) LikeProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	userID := currentUserID(c)

	result, err := s.promotionService.RecordLike(c.UserContext(), productID, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	message := "Produit aimé avec succès"
	if result.WasPromoted {
		message = "Produit aimé et promu automatiquement !"
	}

	return c.JSON(fiber.Map{
		"message":      message,
		"newLikeCount": result.NewLikeCount,
		"wasPromoted":  result.WasPromoted,
	})
}

// GetLikedProducts reports which of the requested products the authenticated
// user has liked. Clients batch this for listing screens instead of issuing
// one status request per card.
func (s *Server) GetLikedProducts(c *fiber.Ctx) error {
	ids := strings.Split(c.Query("ids"), ",")
	productIDs := ids[:0]
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			productIDs = append(productIDs, id)
		}
	}
	if len(productIDs) == 0 {
		return models.RespondWithAppError(c, models.NewValidationError("ids query parameter is required"))
	}

	likedIDs, err := s.likeRepo.GetLikedProductIDs(c.UserContext(), currentUserID(c), productIDs)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	if likedIDs == nil {
		likedIDs = []string{}
	}
	return c.JSON(fiber.Map{"liked_ids": likedIDs})
}

// GetLikeStatus reports whether the authenticated user already liked the product.
func (s *Server) GetLikeStatus(c *fiber.Ctx) error {
	productID := c.Params("id")
	userID := currentUserID(c)

	liked, err := s.promotionService.HasLiked(c.UserContext(), productID, userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.JSON(fiber.Map{"liked": liked})
}
