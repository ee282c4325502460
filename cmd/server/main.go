package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docshare/filesystem/internal/config"
	"github.com/docshare/filesystem/internal/database"
	"github.com/docshare/filesystem/internal/handlers"
	"github.com/docshare/filesystem/internal/middleware"
	"github.com/docshare/filesystem/internal/repository"
	"github.com/docshare/filesystem/internal/services"
	"github.com/docshare/filesystem/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.LogLevel)

	db, err := database.Connect(cfg.DB)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}

	contentService := services.NewContentService(repository.NewContentRepository(db), cfg.Content.RootName)

	contentHandler := handlers.NewContentHandler(contentService)
	filesHandler := handlers.NewFilesHandler(contentService, cfg.Content.DefaultMaxRows)

	app := fiber.New(fiber.Config{BodyLimit: cfg.Server.BodyLimit})
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	app.Use(middleware.CORS())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.SecurityLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
	})

	handlers.Register(app.Group("/api"), contentHandler, filesHandler)

	listenAddr := fmt.Sprintf(":%s", cfg.Server.Port)

	logger.Info("server_starting", map[string]interface{}{
		"port":       cfg.Server.Port,
		"address":    listenAddr,
		"db_driver":  cfg.DB.Driver,
		"root_name":  contentService.RootName(),
		"body_limit": cfg.Server.BodyLimit,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(listenAddr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("shutting down server due to signal: %s", sig)
		shutdownDone := make(chan struct{})
		go func() {
			_ = app.Shutdown()
			close(shutdownDone)
		}()
		select {
		case <-shutdownDone:
		case <-time.After(cfg.Server.ShutdownTimeout):
			log.Print("forced shutdown timeout reached")
		}
	case err := <-errCh:
		if err != nil {
			log.Fatalf("server error: %v", err)
		}
	}
}
