package main

import (
	"context"
	"log"
	"net/http"

	_ "github.com/spidevmax/craterra/docs" // swagger docs

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/spidevmax/craterra/internal/assets"
	"github.com/spidevmax/craterra/internal/auth"
	"github.com/spidevmax/craterra/internal/cache"
	"github.com/spidevmax/craterra/internal/config"
	"github.com/spidevmax/craterra/internal/db"
	"github.com/spidevmax/craterra/internal/handler"
	"github.com/spidevmax/craterra/internal/middleware"
	"github.com/spidevmax/craterra/internal/repository"
	"github.com/spidevmax/craterra/internal/response"
	"github.com/spidevmax/craterra/internal/router"
	"github.com/spidevmax/craterra/internal/service"
)

// @title Craterra API
// @version 1.0
// @description Personal music album collection API with JWT authentication, per-user album shelves, and cover art uploads.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(echomw.RequestID())
	e.HTTPErrorHandler = response.HTTPErrorHandler

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	assetStore, err := assets.NewS3Store(context.Background(), cfg)
	if err != nil {
		log.Fatalf("asset store init: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	albumRepo := repository.NewAlbumRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, assetStore)
	albumService := service.NewAlbumService(albumRepo, assetStore, cacheClient)
	userService := service.NewUserService(userRepo, albumRepo, assetStore, cacheClient)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	albumHandler := handler.NewAlbumHandler(albumService)
	userHandler := handler.NewUserHandler(userService)
	adminHandler := handler.NewAdminHandler(albumService, userService)

	// Register routes
	authMiddleware := middleware.NewAuth(jwtService, userService, albumService)
	router.Register(e, authMiddleware, authHandler, albumHandler, userHandler, adminHandler)

	swaggerHost := cfg.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "http://localhost:" + cfg.ServerPort
	}
	log.Printf("Swagger documentation available at: %s/swagger/index.html", swaggerHost)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
