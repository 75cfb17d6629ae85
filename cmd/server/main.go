package main

import (
	"log"
	"net/http"

	_ "github.com/CWN221/Flask-To-Do-List/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/CWN221/Flask-To-Do-List/internal/auth"
	"github.com/CWN221/Flask-To-Do-List/internal/cache"
	"github.com/CWN221/Flask-To-Do-List/internal/config"
	"github.com/CWN221/Flask-To-Do-List/internal/db"
	"github.com/CWN221/Flask-To-Do-List/internal/handler"
	"github.com/CWN221/Flask-To-Do-List/internal/model"
	"github.com/CWN221/Flask-To-Do-List/internal/repository"
	"github.com/CWN221/Flask-To-Do-List/internal/router"
	"github.com/CWN221/Flask-To-Do-List/internal/service"
)

// @title To-Do List API
// @version 1.0
// @description Task list manager with session-based authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewSQLite(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.SessionSecret)
	sessionStore := auth.NewSessionStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService, sessionStore)
	taskService := service.NewTaskService(taskRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)

	// Register routes
	router.Register(e, cfg, taskHandler, authHandler, authService)

	if !cfg.AuthEnabled {
		log.Println("AUTH_ENABLED=false, task routes are served without authentication")
	}

	swaggerURL := "http://localhost:" + cfg.ServerPort + "/swagger/index.html"
	if cfg.SwaggerHost != "" {
		swaggerURL = cfg.SwaggerHost + "/swagger/index.html"
	}
	log.Printf("Swagger documentation available at: %s", swaggerURL)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
