package server

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"tomati/internal/middleware"
	"tomati/internal/models"
	"tomati/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type signupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Signup registers a new account and returns a signed token.
func (s *Server) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError(err.Error()))
	}

	if _, err := s.userRepo.GetByEmail(c.UserContext(), req.Email); err == nil {
		return models.RespondWithAppError(c, models.NewConflictError("Un compte existe déjà avec cet email"))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	user := &models.User{
		Email:       req.Email,
		Password:    string(hash),
		DisplayName: strings.TrimSpace(req.DisplayName),
		Role:        models.RoleUser,
	}
	if err := s.userRepo.Create(c.UserContext(), user); err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	middleware.Logger.InfoContext(c.UserContext(), "user signed up", slog.String("user_id", user.ID))

	token, err := s.issueToken(user.ID)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.Status(fiber.StatusCreated).JSON(authResponse{Token: token, User: user})
}

// Signin authenticates an existing account and returns a signed token.
func (s *Server) Signin(c *fiber.Ctx) error {
	var req signinRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithAppError(c, models.NewValidationError("Invalid request body"))
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.GetByEmail(c.UserContext(), req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RespondWithAppError(c, models.NewUnauthorizedError("Email ou mot de passe incorrect"))
		}
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return models.RespondWithAppError(c, models.NewUnauthorizedError("Email ou mot de passe incorrect"))
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return models.RespondWithAppError(c, models.NewInternalError(err))
	}
	return c.JSON(authResponse{Token: token, User: user})
}

// issueToken signs a short-lived HS256 access token for the user.
func (s *Server) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"iss": "tomati-api",
		"aud": "tomati-client",
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}
