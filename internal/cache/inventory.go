package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProductKeyPrefix       = "product:%s"
	PromotedProductsKey    = "products:promoted"
	CategoriesKey          = "categories:all"
	AdvertisementKeyPrefix = "ads:%s"
	UserKeyPrefix          = "user:%s"
)

const (
	ProductTTL       = 5 * time.Minute
	PromotedTTL      = 1 * time.Minute
	CategoriesTTL    = 30 * time.Minute
	AdvertisementTTL = 10 * time.Minute
	UserTTL          = 5 * time.Minute
)

func ProductKey(productID string) string {
	return fmt.Sprintf(ProductKeyPrefix, productID)
}

func AdvertisementKey(position string) string {
	return fmt.Sprintf(AdvertisementKeyPrefix, position)
}

func UserKey(userID string) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateProduct drops the cached product along with the promoted listing,
// which embeds product payloads and would otherwise serve stale like counts.
func InvalidateProduct(ctx context.Context, productID string) {
	Invalidate(ctx, ProductKey(productID))
	Invalidate(ctx, PromotedProductsKey)
}

func InvalidateCategories(ctx context.Context) {
	Invalidate(ctx, CategoriesKey)
}

func InvalidateAdvertisements(ctx context.Context, position string) {
	Invalidate(ctx, AdvertisementKey(position))
}
