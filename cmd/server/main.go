package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"partytale/backend/internal/config"
	"partytale/backend/internal/database"
	"partytale/backend/internal/handler"
	"partytale/backend/internal/middleware"
	"partytale/backend/internal/session"
	"partytale/backend/internal/story"

	"github.com/gin-gonic/gin"

	// Swagger imports
	_ "partytale/backend/docs"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const shutdownTimeout = 10 * time.Second

// @title           PartyTale API
// @version         1.0
// @description     Party registry, voting and story rounds for the PartyTale game.
// @host            localhost:3000
// @BasePath        /api
func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.LoadConfig(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	gemini := story.NewGeminiClient(story.GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
	})
	engine := story.NewEngine(gemini, story.EngineConfig{
		Model:     cfg.GeminiModel,
		WordLimit: cfg.StoryWordLimit,
		Logger:    logger,
	})
	images := story.NewImageEngine(gemini, story.ImageConfig{
		Model:   cfg.GeminiImageModel,
		Timeout: cfg.ImageTimeout,
		Logger:  logger,
	})
	if !engine.Online() {
		logger.Warn("GEMINI_API_KEY not set, serving offline stories only")
	}

	opts := []session.Option{
		session.WithLogger(logger),
		session.WithContentTimeout(cfg.ProviderTimeout),
	}
	var archive *database.Archive
	if cfg.DatabaseURL != "" {
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		archive = database.NewArchive(db)
		opts = append(opts, session.WithArchiver(archive))
		logger.Info("story archive enabled")
	}
	sessions := session.NewManager(session.NewStore(), engine, opts...)

	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.CORS(cfg.AllowedOrigins()))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handler.New(sessions, handler.Options{
		Images:  images,
		Archive: archive,
		Logger:  logger,
	}).Register(router, cfg.DebugEndpoints)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.PartyIdleTTL > 0 {
		go sessions.RunReaper(ctx, cfg.ReaperInterval, cfg.PartyIdleTTL)
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "swagger", fmt.Sprintf("http://localhost:%d/swagger/index.html", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
