package database

import (
	"testing"

	"tomati/internal/config"
	"tomati/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModels_IncludesProductLike(t *testing.T) {
	found := false
	for _, model := range Models() {
		if _, ok := model.(*models.ProductLike); ok {
			found = true
			break
		}
	}
	require.True(t, found, "Models should include ProductLike")
}

func TestConnect_TestEnvUsesSQLite(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	db, err := Connect(&config.Config{Env: "test"})
	require.NoError(t, err)
	require.NotNil(t, db)

	for _, model := range Models() {
		assert.True(t, db.Migrator().HasTable(model), "missing table for %T", model)
	}
}

func TestMigration_LikeUniqueConstraint(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	db, err := Connect(&config.Config{Env: "test"})
	require.NoError(t, err)

	user := models.User{Email: "seller@tomati.tn", Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	liker := models.User{Email: "buyer@tomati.tn", Password: "x"}
	require.NoError(t, db.Create(&liker).Error)

	product := models.Product{UserID: user.ID, Title: "Vélo", Price: "120", Location: "Tunis", Category: "sports"}
	require.NoError(t, db.Create(&product).Error)

	first := models.ProductLike{ProductID: product.ID, UserID: liker.ID}
	require.NoError(t, db.Create(&first).Error)

	// Same (product, user) pair must be rejected by the composite unique index.
	dup := models.ProductLike{ProductID: product.ID, UserID: liker.ID}
	assert.Error(t, db.Create(&dup).Error)
}
