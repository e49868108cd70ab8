package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SHOP_NAME", "")
	t.Setenv("SESSION_TTL_HOURS", "")
	t.Setenv("RECENT_SALES_LIMIT", "")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "tea_shop_1", cfg.ShopName)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5, cfg.RecentSalesLimit)
	assert.Empty(t, cfg.JWTSecret, "no weak secret should be injected")
	assert.Equal(t, ":3000", cfg.Address())
}

func TestLoadRejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "0")
	t.Setenv("RECENT_SALES_LIMIT", "-3")

	cfg := Load()

	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5, cfg.RecentSalesLimit)
}

func TestDSNPrefersDatabaseURL(t *testing.T) {
	cfg := Config{DatabaseURL: "postgres://u:p@db/shop", DBHost: "ignored"}
	assert.Equal(t, "postgres://u:p@db/shop", cfg.DSN())

	cfg = Config{DBHost: "localhost", DBUser: "u", DBPassword: "p", DBName: "shop", DBPort: "5432"}
	assert.Contains(t, cfg.DSN(), "host=localhost")
	assert.Contains(t, cfg.DSN(), "dbname=shop")
}

func TestTablePrefix(t *testing.T) {
	assert.Equal(t, "tea_shop_1_", Config{ShopName: "tea_shop_1"}.TablePrefix())
	assert.Equal(t, "", Config{}.TablePrefix())
}

func TestShopNameIsNormalized(t *testing.T) {
	t.Setenv("SHOP_NAME", "  Tea Shop #1 ")

	cfg := Load()

	assert.Equal(t, "tea_shop_1", cfg.ShopName)
	assert.Equal(t, "tea_shop_1_", cfg.TablePrefix())
}

func TestNormalizeShopName(t *testing.T) {
	tests := map[string]string{
		"tea_shop_1":      "tea_shop_1",
		"CoffeeCorner":    "coffeecorner",
		"north-side cafe": "north_side_cafe",
		"__x__":           "x",
		"Café Ünï":        "caf_n",
		"!!!":             "tea_shop_1",
		"":                "tea_shop_1",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeShopName(in), in)
	}
}
