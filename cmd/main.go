package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hemahemapathi/Grocery-Shop-App-sub000/config"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/controllers"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/database"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/logger"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/mailer"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/middleware"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/payment"
	"github.com/hemahemapathi/Grocery-Shop-App-sub000/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := logger.Init(cfg.Environment); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if err := database.ConnectMongo(cfg.Mongo); err != nil {
		logger.L.Fatal("mongo connection failed", zap.Error(err))
	}
	database.InitCollections()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(ctx); err != nil {
		cancel()
		logger.L.Fatal("index bootstrap failed", zap.Error(err))
	}
	cancel()

	controllers.Init(cfg)
	middleware.InitAuth(cfg.JWTSecret)
	payment.Init(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)
	mailer.Init(cfg.SMTP)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.SetTrustedProxies(nil)
	routes.RegisterRoutes(r)

	logger.L.Info("listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.L.Fatal("server exited", zap.Error(err))
	}
}
