package config

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port             string
	ShopName         string
	DatabaseURL      string
	DBHost           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBPort           string
	JWTSecret        string
	SessionTTL       time.Duration
	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	LogLevel         string
	LogDevelopment   bool
	MachineCode      string
	RecentSalesLimit int
	SecureCookie     bool
}

// Load reads .env (when present) and the process environment.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "3000")
	v.SetDefault("SHOP_NAME", defaultShopName)
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("SESSION_TTL_HOURS", 24)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_DEVELOPMENT", false)
	v.SetDefault("RECENT_SALES_LIMIT", 5)
	v.SetDefault("COOKIE_SECURE", false)

	ttl := v.GetInt("SESSION_TTL_HOURS")
	if ttl < 1 {
		ttl = 24
	}
	recent := v.GetInt("RECENT_SALES_LIMIT")
	if recent < 1 {
		recent = 5
	}

	return Config{
		Port:             v.GetString("PORT"),
		ShopName:         NormalizeShopName(v.GetString("SHOP_NAME")),
		DatabaseURL:      v.GetString("DATABASE_URL"),
		DBHost:           v.GetString("DB_HOST"),
		DBUser:           v.GetString("DB_USER"),
		DBPassword:       v.GetString("DB_PASSWORD"),
		DBName:           v.GetString("DB_NAME"),
		DBPort:           v.GetString("DB_PORT"),
		JWTSecret:        strings.TrimSpace(v.GetString("JWT_SECRET")),
		SessionTTL:       time.Duration(ttl) * time.Hour,
		RedisAddr:        v.GetString("REDIS_ADDR"),
		RedisPassword:    v.GetString("REDIS_PASSWORD"),
		RedisDB:          v.GetInt("REDIS_DB"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogDevelopment:   v.GetBool("LOG_DEVELOPMENT"),
		MachineCode:      strings.TrimSpace(v.GetString("MACHINE_CODE")),
		RecentSalesLimit: recent,
		SecureCookie:     v.GetBool("COOKIE_SECURE"),
	}
}

const defaultShopName = "tea_shop_1"

var shopNameUnsafe = regexp.MustCompile(`[^a-z0-9_]+`)

// NormalizeShopName lower-cases name and folds every run of characters outside
// [a-z0-9_] into one underscore, so "Tea Shop #1" becomes "tea_shop_1" and the
// table prefix never needs quoting. A name with nothing usable left falls back
// to the default.
func NormalizeShopName(name string) string {
	name = shopNameUnsafe.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return defaultShopName
	}
	return name
}

func (c Config) Address() string {
	return fmt.Sprintf(":%s", c.Port)
}

// DSN returns DATABASE_URL or a keyword DSN assembled from the DB_* variables.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

// TablePrefix namespaces every shop-owned table, e.g. "tea_shop_1_products".
func (c Config) TablePrefix() string {
	if c.ShopName == "" {
		return ""
	}
	return c.ShopName + "_"
}
