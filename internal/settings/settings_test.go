package settings

import (
	"testing"

	"github.com/invitarte/invitarte-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Setting{}))
	return db
}

func TestLoadDefaults(t *testing.T) {
	db := setupDB(t)

	site, err := Load(db)
	require.NoError(t, err)
	assert.Equal(t, "Invitarte", site.SiteName)
	assert.Equal(t, "PEN", site.Currency)
	assert.Equal(t, "test", site.PaymentMode)

	price, ok := site.PriceFor("premium")
	require.True(t, ok)
	assert.Equal(t, 149.0, price)
}

func TestLoadOverrides(t *testing.T) {
	db := setupDB(t)
	db.Create(&models.Setting{Key: "site_name", Value: "MiBoda"})
	db.Create(&models.Setting{Key: "currency", Value: "MXN"})
	db.Create(&models.Setting{Key: "payment_mode", Value: "live"})
	db.Create(&models.Setting{Key: "price_premium", Value: "299.90"})
	db.Create(&models.Setting{Key: "price_deluxe", Value: "499"})

	site, err := Load(db)
	require.NoError(t, err)
	assert.Equal(t, "MiBoda", site.SiteName)
	assert.Equal(t, "MXN", site.Currency)
	assert.Equal(t, "live", site.PaymentMode)

	price, _ := site.PriceFor("premium")
	assert.Equal(t, 299.90, price)
	price, _ = site.PriceFor("deluxe")
	assert.Equal(t, 499.0, price)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("BadPaymentMode", func(t *testing.T) {
		db := setupDB(t)
		db.Create(&models.Setting{Key: "payment_mode", Value: "maybe"})
		_, err := Load(db)
		require.Error(t, err)
	})

	t.Run("BadCurrency", func(t *testing.T) {
		db := setupDB(t)
		db.Create(&models.Setting{Key: "currency", Value: "soles"})
		_, err := Load(db)
		require.Error(t, err)
	})

	t.Run("BadPrice", func(t *testing.T) {
		db := setupDB(t)
		db.Create(&models.Setting{Key: "price_premium", Value: "gratis"})
		_, err := Load(db)
		require.Error(t, err)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		db := setupDB(t)
		db.Create(&models.Setting{Key: "price_premium", Value: "-5"})
		_, err := Load(db)
		require.Error(t, err)
	})
}
