package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-ui/clients"
	"storefront-ui/config"
	"storefront-ui/controllers"
	"storefront-ui/logger"
	"storefront-ui/middleware"
	"storefront-ui/routes"
	"storefront-ui/session"
)

func main() {
	cfg := config.Load()

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync()

	timeout, err := time.ParseDuration(cfg.RequestTimeout)
	if err != nil {
		timeout = 10 * time.Second
	}
	sessionTTL, err := time.ParseDuration(cfg.SessionTTL)
	if err != nil {
		sessionTTL = 24 * time.Hour
	}

	redisClient := session.NewRedisClient(cfg.RedisURL)
	store := session.NewStore(redisClient, sessionTTL)

	shop := clients.NewShopClient(cfg.ShopAPIURL, timeout)
	ctrl := controllers.NewStorefrontController(shop, store, sessionTTL)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(middleware.LoadSession(store))
	r.LoadHTMLGlob("templates/*")

	routes.RegisterRoutes(r, ctrl)

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	go func() {
		logger.Log.Info("storefront-ui listening", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("forced shutdown", zap.Error(err))
	}
	_ = redisClient.Close()
}
