package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"petchat/internal/app"
	"petchat/internal/config"
	"petchat/internal/handler"
	"petchat/internal/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("petchat server",
		"version", Version,
		"build_time", BuildTime,
		"git_commit", GitCommit,
	)
	for _, w := range cfg.Warnings {
		log.Warn("config: " + w)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	ctx := context.Background()
	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize application", "error", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Warn("failed to close resources", "error", err)
		}
	}()

	log.Info("services initialized",
		"intents", len(application.Catalog.Intents),
		"products", len(application.Catalog.Products),
		"context_store", cfg.Context.Store,
		"generator_mode", cfg.Generator.Mode,
	)

	// Initialize handlers
	chatHandler := handler.NewChatHandler(application.Chat)
	productHandler := handler.NewProductHandler(application.Chat)
	sessionHandler := handler.NewSessionHandler(application.Chat)

	// Setup Gin router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = splitList(cfg.Server.AllowedOrigins)
	corsConfig.AllowMethods = splitList(cfg.Server.AllowedMethods)
	corsConfig.AllowHeaders = splitList(cfg.Server.AllowedHeaders)
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		status := gin.H{
			"status":     "healthy",
			"service":    "petchat",
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
			"intents":    len(application.Catalog.Intents),
			"products":   len(application.Catalog.Products),
		}
		if application.Generator != nil {
			status["generator"] = application.Generator.State().String()
		}
		c.JSON(http.StatusOK, status)
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Compatibility route for the chat page
	router.POST("/chat", chatHandler.LegacyChat)

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/chat", chatHandler.Chat)

		apiV1.GET("/products", productHandler.List)
		apiV1.GET("/products/:id", productHandler.Get)

		apiV1.DELETE("/sessions/:id", sessionHandler.Reset)
	}

	// Serve the chat page
	// This function is implemented in embed.go (production) or static_dev.go (development)
	setupStaticFiles(router, cfg.Server.WebDir, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	log.Info("server stopped")
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
