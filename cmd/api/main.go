package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/jmo7728/5-final-daynight-jam/config"
	"github.com/jmo7728/5-final-daynight-jam/internal/api"
	"github.com/jmo7728/5-final-daynight-jam/internal/catalog"
	"github.com/jmo7728/5-final-daynight-jam/internal/database"
	"github.com/jmo7728/5-final-daynight-jam/internal/logger"
	"github.com/jmo7728/5-final-daynight-jam/internal/middleware"
	"github.com/jmo7728/5-final-daynight-jam/internal/router"
	"github.com/jmo7728/5-final-daynight-jam/internal/server"
	"github.com/jmo7728/5-final-daynight-jam/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Init("info")
		logger.Error("failed to load configuration", zap.Error(err))
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)
	defer logger.Sync()

	db, err := database.New(cfg)
	if err != nil {
		logger.Error("failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("failed to migrate database", zap.Error(err))
		os.Exit(1)
	}

	cat, err := catalog.Load(cfg.RecipesCSVPath)
	if err != nil {
		logger.Error("failed to load recipe catalog", zap.Error(err))
		os.Exit(1)
	}

	llmService, err := service.NewLLMService(cfg)
	if err != nil {
		logger.Error("failed to create generation client", zap.Error(err))
		os.Exit(1)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db)
	recommendService := service.NewRecommendationService(cat, llmService)

	// Rate limiting stays off when Redis is not configured.
	var rateLimiter *middleware.RateLimiter
	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		logger.Error("failed to connect to redis", zap.Error(err))
		os.Exit(1)
	}
	if redisClient != nil {
		rateLimiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    cfg.RateLimitWindow,
			Limit:     cfg.RateLimitMax,
			KeyPrefix: "rate_limit:recommend",
		})
	}

	engine := router.SetupRouter(
		api.NewAuthHandler(authService),
		api.NewRecommendHandler(recommendService),
		api.NewRecipeHandler(recipeService),
		authService,
		rateLimiter,
		cfg.CORSOrigins,
	)

	srv := server.New(engine, net.JoinHostPort(cfg.ServerHost, cfg.ServerPort))

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
