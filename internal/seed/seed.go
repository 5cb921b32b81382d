// Package seed populates the development database with realistic sample data.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"tomati/internal/models"
	"tomati/internal/repository"
	"tomati/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var categories = []models.Category{
	{Name: "voitures", Icon: "🚗"},
	{Name: "immobilier", Icon: "🏠"},
	{Name: "electronique", Icon: "📱"},
	{Name: "maison", Icon: "🛋️"},
	{Name: "vetements", Icon: "👕"},
	{Name: "sports", Icon: "⚽"},
	{Name: "emploi", Icon: "💼"},
	{Name: "services", Icon: "🔧"},
}

var locations = []string{
	"Tunis", "Sfax", "Sousse", "Kairouan", "Bizerte",
	"Gabès", "Ariana", "Gafsa", "Monastir", "Nabeul",
}

// Options controls how much data Run generates.
type Options struct {
	Users    int
	Products int
	Likes    int
}

// DefaultOptions is a small but representative data set.
func DefaultOptions() Options {
	return Options{Users: 20, Products: 50, Likes: 120}
}

// Run seeds categories, users, products and likes. Likes go through the
// repository so promotions fire exactly as they would in production.
func Run(ctx context.Context, db *gorm.DB, opts Options) error {
	gofakeit.Seed(42)

	categoryRepo := repository.NewCategoryRepository(db)
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	for i := range categories {
		c := categories[i]
		if err := categoryRepo.Create(ctx, &c); err != nil {
			// Categories are unique by name; reseeding an existing DB is fine.
			log.Printf("category %q skipped: %v", c.Name, err)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("motdepasse1"), bcrypt.MinCost)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.Users+1)

	admin := &models.User{
		Email:       "admin@tomati.tn",
		Password:    string(hash),
		DisplayName: "Administrateur",
		Role:        models.RoleAdmin,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	users = append(users, admin)

	for i := 0; i < opts.Users; i++ {
		user := &models.User{
			Email:       fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password:    string(hash),
			DisplayName: gofakeit.Name(),
			Role:        models.RoleUser,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		users = append(users, user)
	}

	products := make([]*models.Product, 0, opts.Products)
	for i := 0; i < opts.Products; i++ {
		isFree := gofakeit.Number(0, 9) == 0
		price := fmt.Sprintf("%d", gofakeit.Number(5, 5000))
		if isFree {
			price = "0"
		}

		product := &models.Product{
			UserID:      users[rand.Intn(len(users))].ID,
			Title:       gofakeit.ProductName(),
			Description: gofakeit.ProductDescription(),
			Price:       price,
			Location:    locations[rand.Intn(len(locations))],
			Category:    categories[rand.Intn(len(categories))].Name,
			ImageURL:    gofakeit.ImageURL(640, 480),
			IsFree:      isFree,
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return fmt.Errorf("seed product: %w", err)
		}
		products = append(products, product)
	}

	liked := 0
	promoted := 0
	for liked < opts.Likes {
		product := products[rand.Intn(len(products))]
		user := users[rand.Intn(len(users))]
		if user.ID == product.UserID {
			continue
		}

		result, err := likeRepo.RecordLike(ctx, product.ID, user.ID, service.PromotionThreshold)
		if err != nil {
			// Duplicate picks are expected with random pairs.
			continue
		}
		liked++
		if result.WasPromoted {
			promoted++
		}
	}

	log.Printf("Seeded %d users, %d products, %d likes (%d promotions)",
		len(users), len(products), liked, promoted)
	return nil
}
