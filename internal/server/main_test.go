package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"tomati/internal/config"
	"tomati/internal/database"
	"tomati/internal/middleware"
	"tomati/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		Port:      "0",
		Env:       "test",
		JWTSecret: "test-secret-which-is-long-enough-0123456789",
	}
	middleware.InitMiddleware(cfg)

	db, err := database.Connect(cfg)
	require.NoError(t, err)

	return NewServerWithDeps(cfg, db, nil)
}

// createTestUser inserts a user and returns it along with a valid bearer token.
func createTestUser(t *testing.T, s *Server, email string) (*models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("motdepasse1"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:       email,
		Password:    string(hash),
		DisplayName: "Testeur",
		Role:        models.RoleUser,
	}
	require.NoError(t, s.userRepo.Create(t.Context(), user))

	token, err := s.issueToken(user.ID)
	require.NoError(t, err)
	return user, token
}

func createTestProduct(t *testing.T, s *Server, ownerID string) *models.Product {
	t.Helper()

	product := &models.Product{
		UserID:   ownerID,
		Title:    "Table en bois",
		Price:    "120",
		Location: "Sfax",
		Category: "maison",
	}
	require.NoError(t, s.productRepo.Create(t.Context(), product))
	return product
}

// doJSON performs a request against the app and decodes the JSON response body
// into out (when out is non-nil).
func doJSON(t *testing.T, s *Server, method, target, token string, body, out any) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.App().Test(req, -1)
	require.NoError(t, err)

	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}
