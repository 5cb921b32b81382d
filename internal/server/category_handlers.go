package server

import (
	"strings"

	"tomati/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ListCategories returns all categories.
func (s *Server) ListCategories(c *fiber.Ctx) error {
	categories, err := s.categoryRepo.List(c.UserContext())
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// CreateCategory adds a category. Admin only.
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
		Icon string `json:"icon"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	req.Name = strings.TrimSpace(strings.ToLower(req.Name))
	if req.Name == "" {
		return models.RespondWithAppError(c, models.NewValidationError("name is required"))
	}

	category := &models.Category{Name: req.Name, Icon: req.Icon}
	if err := s.categoryRepo.Create(c.UserContext(), category); err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}
