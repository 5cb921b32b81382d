// Package service contains the application's business logic.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"tomati/internal/middleware"
	"tomati/internal/models"
	"tomati/internal/notifications"
	"tomati/internal/observability"
	"tomati/internal/repository"

	"gorm.io/gorm"
)

// PromotionThreshold is the like count at which a product is promoted.
const PromotionThreshold = 3

// PromotionService owns the like/promotion flow: recording likes, the
// automatic one-shot promotion, and the seller notification that follows it.
type PromotionService struct {
	productRepo repository.ProductRepository
	likeRepo    repository.LikeRepository
	notifRepo   repository.NotificationRepository
	notifier    *notifications.Notifier
}

// NewPromotionService creates a new promotion service
func NewPromotionService(
	productRepo repository.ProductRepository,
	likeRepo repository.LikeRepository,
	notifRepo repository.NotificationRepository,
	notifier *notifications.Notifier,
) *PromotionService {
	return &PromotionService{
		productRepo: productRepo,
		likeRepo:    likeRepo,
		notifRepo:   notifRepo,
		notifier:    notifier,
	}
}

// RecordLike registers actingUserID's like on productID and returns the fresh
// like count plus whether this like promoted the product.
//
// The owner cannot like their own product, and a user can like a product only
// once; the second attempt surfaces as a conflict. The duplicate check lives
// in the storage layer's unique index, not here, so two concurrent requests
// from the same user cannot both get through.
func (s *PromotionService) RecordLike(ctx context.Context, productID, actingUserID string) (*repository.LikeResult, error) {
	product, err := s.productRepo.GetByID(ctx, productID, "")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Product", productID)
		}
		return nil, err
	}

	if product.UserID == actingUserID {
		return nil, models.NewForbiddenError("Vous ne pouvez pas aimer votre propre produit")
	}

	result, err := s.likeRepo.RecordLike(ctx, productID, actingUserID, PromotionThreshold)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateLike):
			return nil, models.NewConflictError("Vous avez déjà aimé ce produit")
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, models.NewNotFoundError("Product", productID)
		}
		return nil, err
	}

	observability.LikesRecorded.Inc()

	if result.WasPromoted {
		observability.ProductsPromoted.Inc()
		middleware.Logger.InfoContext(ctx, "product promoted",
			slog.String("product_id", productID),
			slog.Int("like_count", result.NewLikeCount),
		)
		s.notifyPromotion(ctx, product)
	}

	return result, nil
}

// notifyPromotion persists and pushes the seller's promotion notification.
// Side-effect failures are logged, never propagated: the like and the
// promotion are already committed.
func (s *PromotionService) notifyPromotion(ctx context.Context, product *models.Product) {
	notification := &models.Notification{
		UserID:    product.UserID,
		Title:     "🎉 Produit promu !",
		Message:   fmt.Sprintf("Félicitations ! Votre produit \"%s\" a été automatiquement promu après avoir reçu %d j'aimes !", product.Title, PromotionThreshold),
		Type:      models.NotificationProductUpdate,
		RelatedID: product.ID,
	}

	if s.notifRepo != nil {
		if err := s.notifRepo.Create(ctx, notification); err != nil {
			middleware.Logger.ErrorContext(ctx, "failed to persist promotion notification",
				slog.String("product_id", product.ID),
				slog.String("error", err.Error()),
			)
		} else {
			observability.NotificationsSent.WithLabelValues(models.NotificationProductUpdate).Inc()
		}
	}

	if s.notifier != nil {
		payload, err := json.Marshal(notification)
		if err == nil {
			err = s.notifier.PublishUser(ctx, product.UserID, string(payload))
		}
		if err != nil {
			middleware.Logger.ErrorContext(ctx, "failed to publish promotion notification",
				slog.String("product_id", product.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}

// HasLiked reports whether userID already liked productID.
func (s *PromotionService) HasLiked(ctx context.Context, productID, userID string) (bool, error) {
	if _, err := s.productRepo.GetByID(ctx, productID, ""); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, models.NewNotFoundError("Product", productID)
		}
		return false, err
	}
	return s.likeRepo.HasLiked(ctx, productID, userID)
}

// GetPromotedProducts returns the promoted listings, newest promotion first.
func (s *PromotionService) GetPromotedProducts(ctx context.Context, limit int) ([]*models.Product, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.productRepo.GetPromoted(ctx, limit)
}
