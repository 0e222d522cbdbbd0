package main

import (
	"log"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/handler"
	"inkwell/internal/model"
	"inkwell/internal/repository"
	"inkwell/internal/router"
	"inkwell/internal/service"
	"inkwell/internal/session"
	"inkwell/internal/upload"
	"inkwell/internal/view"
)

func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatalf("view init: %v", err)
	}
	e.Renderer = renderer

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Schema bootstrap is also available standalone via cmd/seed; the
	// migration here is idempotent.
	if err := gormDB.AutoMigrate(&model.User{}, &model.Post{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	redisClient := cache.Connect(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	cacheClient := cache.New(redisClient)

	// Initialize session components
	sessionStore := session.NewRedisStore(redisClient)
	signer := session.NewTokenSigner(cfg.SessionSecret)
	sessions := session.NewManager(sessionStore, signer)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)

	// Initialize services
	uploads := upload.NewSaver(cfg.UploadDir)
	authService := service.NewAuthService(userRepo)
	postService := service.NewPostService(postRepo, uploads, cacheClient)
	profileService := service.NewProfileService(userRepo, uploads)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, sessions)
	postHandler := handler.NewPostHandler(postService)
	profileHandler := handler.NewProfileHandler(profileService, sessions)

	// Register routes
	router.Register(e, cfg, sessions, authHandler, postHandler, profileHandler)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
