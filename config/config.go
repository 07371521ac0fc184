package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Mongo       MongoConfig
	JWTSecret   string
	Pricing     PricingPolicy
	Stripe      StripeConfig
	SMTP        SMTPConfig
}

type MongoConfig struct {
	URI    string
	DBName string
}

// PricingPolicy is the server-held tax and shipping policy applied when a
// cart becomes an order. Client-supplied pricing fields are never trusted.
type PricingPolicy struct {
	TaxRate           float64
	ShippingFlat      float64
	FreeShippingAbove float64
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type SMTPConfig struct {
	Host string
	Port string
	From string
}

func Load() (*Config, error) {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()

	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("DB_NAME", "groceryshop")
	viper.SetDefault("TAX_RATE", 0.15)
	viper.SetDefault("SHIPPING_FLAT", 10.0)
	viper.SetDefault("FREE_SHIPPING_ABOVE", 100.0)
	viper.SetDefault("SMTP_PORT", "587")

	cfg := &Config{
		Port:        viper.GetString("PORT"),
		Environment: viper.GetString("ENVIRONMENT"),
		Mongo: MongoConfig{
			URI:    viper.GetString("MONGO_URI"),
			DBName: viper.GetString("DB_NAME"),
		},
		JWTSecret: viper.GetString("JWT_SECRET"),
		Pricing: PricingPolicy{
			TaxRate:           viper.GetFloat64("TAX_RATE"),
			ShippingFlat:      viper.GetFloat64("SHIPPING_FLAT"),
			FreeShippingAbove: viper.GetFloat64("FREE_SHIPPING_ABOVE"),
		},
		Stripe: StripeConfig{
			SecretKey:     viper.GetString("STRIPE_SECRET_KEY"),
			WebhookSecret: viper.GetString("STRIPE_WEBHOOK_SECRET"),
		},
		SMTP: SMTPConfig{
			Host: viper.GetString("SMTP_HOST"),
			Port: viper.GetString("SMTP_PORT"),
			From: viper.GetString("SMTP_FROM"),
		},
	}

	if cfg.Mongo.URI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}
