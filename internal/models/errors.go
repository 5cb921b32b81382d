package models

import (
	"errors"
	"fmt"
	"log/slog"

	"tomati/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across the API. Every rejected request maps to exactly one
// of these so clients can distinguish outcomes without parsing messages.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

func NewForbiddenError(message string) *AppError {
	return &AppError{
		Code:    CodeForbidden,
		Message: message,
	}
}

func NewConflictError(message string) *AppError {
	return &AppError{
		Code:    CodeConflict,
		Message: message,
	}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    CodeInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

// HTTPStatus maps an error to its HTTP status code. Non-AppError values are
// treated as internal failures.
func HTTPStatus(err error) int {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return fiber.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeNotFound:
		return fiber.StatusNotFound
	case CodeValidation:
		return fiber.StatusBadRequest
	case CodeUnauthorized:
		return fiber.StatusUnauthorized
	case CodeForbidden:
		return fiber.StatusForbidden
	case CodeConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// RespondWithError creates a standardized error response. Wrapped causes stay
// server-side: raw driver or storage error text is logged, never serialized
// into the response body.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return c.Status(status).JSON(ErrorResponse{Error: err.Error()})
	}

	if appErr.Err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "request failed",
			slog.String("code", appErr.Code),
			slog.String("error", appErr.Err.Error()),
		)
	}

	return c.Status(status).JSON(ErrorResponse{
		Error: appErr.Message,
		Code:  appErr.Code,
	})
}

// RespondWithAppError writes the response using the status derived from the error code.
func RespondWithAppError(c *fiber.Ctx, err error) error {
	return RespondWithError(c, HTTPStatus(err), err)
}
