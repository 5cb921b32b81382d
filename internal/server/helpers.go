package server

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// currentUserID returns the authenticated user's ID from the request locals,
// or "" when the request is anonymous.
func currentUserID(c *fiber.Ctx) string {
	if id, ok := c.Locals("userID").(string); ok {
		return id
	}
	return ""
}

// parsePagination reads limit/offset query parameters with sane bounds.
func parsePagination(c *fiber.Ctx) (limit, offset int) {
	limit = 20
	offset = 0

	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
