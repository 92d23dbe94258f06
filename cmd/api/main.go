package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"

	"github.com/emilythestrangee/hasker/backend/internal/auth"
	"github.com/emilythestrangee/hasker/backend/internal/config"
	"github.com/emilythestrangee/hasker/backend/internal/database"
	"github.com/emilythestrangee/hasker/backend/internal/database/memory"
	"github.com/emilythestrangee/hasker/backend/internal/handlers"
	"github.com/emilythestrangee/hasker/backend/internal/logger"
	"github.com/emilythestrangee/hasker/backend/internal/server"
	"github.com/emilythestrangee/hasker/backend/internal/service"
)

// store is everything the services need from a storage backend.
type store interface {
	service.VoteRepository
	service.QuestionRepository
	service.TagRepository
	service.UserRepository
	Health() map[string]string
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", slog.String("error", err.Error()))
	}
	logger.Init(cfg.LogLevel)
	gin.SetMode(gin.ReleaseMode)

	var st store
	switch cfg.Storage {
	case "memory":
		logger.Warn("Using in-memory storage, data is lost on exit")
		st = memory.New()
	default:
		db, err := database.Open(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", slog.String("error", err.Error()))
		}
		defer db.Close()
		st = db
	}

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	handler := handlers.NewHandler(handlers.Services{
		Auth:      service.NewAuthService(st),
		Votes:     service.NewVoteService(st),
		Listings:  service.NewListingService(st, st, cfg.PaginateQuestions, cfg.PaginateAnswers),
		Questions: service.NewQuestionService(st, st),
	}, issuer)

	srv := server.New(cfg, handler, issuer, st).HTTPServer()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting server", slog.String("port", cfg.Port), slog.String("storage", cfg.Storage))
	if err := server.Serve(ctx, srv, 5*time.Second); err != nil {
		logger.Fatal("Server error", slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
}
