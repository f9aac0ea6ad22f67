package config

import (
	"os"
	"time"
)

type Config struct {
	HTTPPort      string
	MongoURI      string
	MongoDBName   string
	RedisAddr     string
	RedisPassword string
	JWTSecret     string
	TokenTTL      time.Duration
	StripeKey     string
	ClientURL     string
	ServiceName   string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func Load() Config {
	return Config{
		HTTPPort:      getenv("PORT", "5000"),
		MongoURI:      getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:   getenv("MONGO_DB_NAME", "ecommerce"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		JWTSecret:     getenv("JWT_SECRET", ""),
		TokenTTL:      24 * time.Hour,
		StripeKey:     getenv("STRIPE_SECRET_KEY", ""),
		ClientURL:     getenv("CLIENT_URL", "http://localhost:3000"),
		ServiceName:   getenv("SERVICE_NAME", "storefront-api"),

		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
