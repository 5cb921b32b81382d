package server

import (
	"errors"
	"strings"

	"tomati/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type advertisementRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	LinkURL  string `json:"link_url"`
	Position string `json:"position"`
	Category string `json:"category"`
	IsActive *bool  `json:"is_active"`
}

// ListAdvertisements returns the active banners for a screen position,
// optionally narrowed to one category.
func (s *Server) ListAdvertisements(c *fiber.Ctx) error {
	position := c.Query("position", "home")
	ads, err := s.adRepo.ListActive(c.UserContext(), position)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	// The per-position list is cached; the category cut is cheap to apply here.
	if category := c.Query("category"); category != "" {
		filtered := ads[:0]
		for _, ad := range ads {
			if ad.Category == "" || ad.Category == category {
				filtered = append(filtered, ad)
			}
		}
		ads = filtered
	}
	return c.JSON(fiber.Map{"advertisements": ads})
}

// RecordAdImpression counts one banner display.
func (s *Server) RecordAdImpression(c *fiber.Ctx) error {
	if err := s.adRepo.IncrementImpressions(c.UserContext(), c.Params("id")); err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecordAdClick counts one banner click.
func (s *Server) RecordAdClick(c *fiber.Ctx) error {
	if err := s.adRepo.IncrementClicks(c.UserContext(), c.Params("id")); err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListAllAdvertisements returns every banner, active or not. Admin only.
func (s *Server) ListAllAdvertisements(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	ads, err := s.adRepo.ListAll(c.UserContext(), limit, offset)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"advertisements": ads})
}

// CreateAdvertisement adds a banner. Admin only.
func (s *Server) CreateAdvertisement(c *fiber.Ctx) error {
	var req advertisementRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}
	if strings.TrimSpace(req.Title) == "" {
		return models.RespondWithAppError(c, models.NewValidationError("title is required"))
	}
	if strings.TrimSpace(req.Position) == "" {
		return models.RespondWithAppError(c, models.NewValidationError("position is required"))
	}

	ad := &models.Advertisement{
		Title:    strings.TrimSpace(req.Title),
		ImageURL: req.ImageURL,
		LinkURL:  req.LinkURL,
		Position: req.Position,
		Category: req.Category,
		IsActive: true,
	}
	if req.IsActive != nil {
		ad.IsActive = *req.IsActive
	}
	if err := s.adRepo.Create(c.UserContext(), ad); err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.Status(fiber.StatusCreated).JSON(ad)
}

// UpdateAdvertisement updates a banner. Admin only.
func (s *Server) UpdateAdvertisement(c *fiber.Ctx) error {
	var req advertisementRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	ad, err := s.adRepo.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithAppError(c, models.NewNotFoundError("Advertisement", c.Params("id")))
		}
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	if req.Title != "" {
		ad.Title = strings.TrimSpace(req.Title)
	}
	if req.ImageURL != "" {
		ad.ImageURL = req.ImageURL
	}
	if req.LinkURL != "" {
		ad.LinkURL = req.LinkURL
	}
	if req.Position != "" {
		ad.Position = req.Position
	}
	if req.Category != "" {
		ad.Category = req.Category
	}
	if req.IsActive != nil {
		ad.IsActive = *req.IsActive
	}

	if err := s.adRepo.Update(c.UserContext(), ad); err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.JSON(ad)
}

// DeleteAdvertisement removes a banner. Admin only.
func (s *Server) DeleteAdvertisement(c *fiber.Ctx) error {
	if err := s.adRepo.Delete(c.UserContext(), c.Params("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithAppError(c, models.NewNotFoundError("Advertisement", c.Params("id")))
		}
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"message": "Publicité supprimée"})
}
