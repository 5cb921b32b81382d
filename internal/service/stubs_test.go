package service

import (
	"context"

	"tomati/internal/models"
	"tomati/internal/repository"
)

// productRepoStub is a stub for repository.ProductRepository.
type productRepoStub struct {
	createFn         func(context.Context, *models.Product) error
	getByIDFn        func(context.Context, string, string) (*models.Product, error)
	listFn           func(context.Context, repository.ProductFilter, string) ([]*models.Product, error)
	getPromotedFn    func(context.Context, int) ([]*models.Product, error)
	updateFn         func(context.Context, *models.Product) error
	deleteFn         func(context.Context, string) error
	incrementViewsFn func(context.Context, string) error
	countFn          func(context.Context) (int64, error)
	countPromotedFn  func(context.Context) (int64, error)
}

func (s *productRepoStub) Create(ctx context.Context, product *models.Product) error {
	return s.createFn(ctx, product)
}
func (s *productRepoStub) GetByID(ctx context.Context, id, currentUserID string) (*models.Product, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *productRepoStub) List(ctx context.Context, filter repository.ProductFilter, currentUserID string) ([]*models.Product, error) {
	return s.listFn(ctx, filter, currentUserID)
}
func (s *productRepoStub) GetPromoted(ctx context.Context, limit int) ([]*models.Product, error) {
	return s.getPromotedFn(ctx, limit)
}
func (s *productRepoStub) Update(ctx context.Context, product *models.Product) error {
	return s.updateFn(ctx, product)
}
func (s *productRepoStub) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}
func (s *productRepoStub) IncrementViews(ctx context.Context, id string) error {
	return s.incrementViewsFn(ctx, id)
}
func (s *productRepoStub) Count(ctx context.Context) (int64, error) {
	return s.countFn(ctx)
}
func (s *productRepoStub) CountPromoted(ctx context.Context) (int64, error) {
	return s.countPromotedFn(ctx)
}

func noopProductRepo() *productRepoStub {
	return &productRepoStub{
		createFn: func(_ context.Context, _ *models.Product) error { return nil },
		getByIDFn: func(_ context.Context, _, _ string) (*models.Product, error) {
			return &models.Product{}, nil
		},
		listFn: func(_ context.Context, _ repository.ProductFilter, _ string) ([]*models.Product, error) {
			return nil, nil
		},
		getPromotedFn:    func(_ context.Context, _ int) ([]*models.Product, error) { return nil, nil },
		updateFn:         func(_ context.Context, _ *models.Product) error { return nil },
		deleteFn:         func(_ context.Context, _ string) error { return nil },
		incrementViewsFn: func(_ context.Context, _ string) error { return nil },
		countFn:          func(_ context.Context) (int64, error) { return 0, nil },
		countPromotedFn:  func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// likeRepoStub is a stub for repository.LikeRepository.
type likeRepoStub struct {
	recordLikeFn         func(context.Context, string, string, int) (*repository.LikeResult, error)
	hasLikedFn           func(context.Context, string, string) (bool, error)
	getLikedProductIDsFn func(context.Context, string, []string) ([]string, error)
	countAllFn           func(context.Context) (int64, error)
}

func (s *likeRepoStub) RecordLike(ctx context.Context, productID, userID string, threshold int) (*repository.LikeResult, error) {
	return s.recordLikeFn(ctx, productID, userID, threshold)
}
func (s *likeRepoStub) HasLiked(ctx context.Context, productID, userID string) (bool, error) {
	return s.hasLikedFn(ctx, productID, userID)
}
func (s *likeRepoStub) GetLikedProductIDs(ctx context.Context, userID string, productIDs []string) ([]string, error) {
	return s.getLikedProductIDsFn(ctx, userID, productIDs)
}
func (s *likeRepoStub) CountAll(ctx context.Context) (int64, error) {
	return s.countAllFn(ctx)
}

func noopLikeRepo() *likeRepoStub {
	return &likeRepoStub{
		recordLikeFn: func(_ context.Context, _, _ string, _ int) (*repository.LikeResult, error) {
			return &repository.LikeResult{NewLikeCount: 1}, nil
		},
		hasLikedFn: func(_ context.Context, _, _ string) (bool, error) { return false, nil },
		getLikedProductIDsFn: func(_ context.Context, _ string, _ []string) ([]string, error) {
			return nil, nil
		},
		countAllFn: func(_ context.Context) (int64, error) { return 0, nil },
	}
}

// notifRepoStub is a stub for repository.NotificationRepository.
type notifRepoStub struct {
	createFn      func(context.Context, *models.Notification) error
	listForUserFn func(context.Context, string, int, int) ([]*models.Notification, error)
	unreadCountFn func(context.Context, string) (int64, error)
	markReadFn    func(context.Context, string, string) error
	markAllReadFn func(context.Context, string) error
}

func (s *notifRepoStub) Create(ctx context.Context, n *models.Notification) error {
	return s.createFn(ctx, n)
}
func (s *notifRepoStub) ListForUser(ctx context.Context, userID string, limit, offset int) ([]*models.Notification, error) {
	return s.listForUserFn(ctx, userID, limit, offset)
}
func (s *notifRepoStub) UnreadCount(ctx context.Context, userID string) (int64, error) {
	return s.unreadCountFn(ctx, userID)
}
func (s *notifRepoStub) MarkRead(ctx context.Context, id, userID string) error {
	return s.markReadFn(ctx, id, userID)
}
func (s *notifRepoStub) MarkAllRead(ctx context.Context, userID string) error {
	return s.markAllReadFn(ctx, userID)
}

func noopNotifRepo() *notifRepoStub {
	return &notifRepoStub{
		createFn: func(_ context.Context, _ *models.Notification) error { return nil },
		listForUserFn: func(_ context.Context, _ string, _, _ int) ([]*models.Notification, error) {
			return nil, nil
		},
		unreadCountFn: func(_ context.Context, _ string) (int64, error) { return 0, nil },
		markReadFn:    func(_ context.Context, _, _ string) error { return nil },
		markAllReadFn: func(_ context.Context, _ string) error { return nil },
	}
}

// categoryRepoStub is a stub for repository.CategoryRepository.
type categoryRepoStub struct {
	createFn    func(context.Context, *models.Category) error
	listFn      func(context.Context) ([]*models.Category, error)
	getByNameFn func(context.Context, string) (*models.Category, error)
}

func (s *categoryRepoStub) Create(ctx context.Context, category *models.Category) error {
	return s.createFn(ctx, category)
}
func (s *categoryRepoStub) List(ctx context.Context) ([]*models.Category, error) {
	return s.listFn(ctx)
}
func (s *categoryRepoStub) GetByName(ctx context.Context, name string) (*models.Category, error) {
	return s.getByNameFn(ctx, name)
}

func noopCategoryRepo() *categoryRepoStub {
	return &categoryRepoStub{
		createFn: func(_ context.Context, _ *models.Category) error { return nil },
		listFn:   func(_ context.Context) ([]*models.Category, error) { return nil, nil },
		getByNameFn: func(_ context.Context, name string) (*models.Category, error) {
			return &models.Category{Name: name}, nil
		},
	}
}
