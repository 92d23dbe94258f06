package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emilythestrangee/hasker/backend/internal/auth"
	"github.com/emilythestrangee/hasker/backend/internal/config"
	"github.com/emilythestrangee/hasker/backend/internal/handlers"
	"github.com/emilythestrangee/hasker/backend/internal/middleware"
)

// HealthChecker reports storage health for /health.
type HealthChecker interface {
	Health() map[string]string
}

type Server struct {
	cfg     *config.Config
	handler *handlers.Handler
	issuer  *auth.Issuer
	health  HealthChecker
}

func New(cfg *config.Config, handler *handlers.Handler, issuer *auth.Issuer, health HealthChecker) *Server {
	return &Server{cfg: cfg, handler: handler, issuer: issuer, health: health}
}

// HTTPServer wraps the router in an http.Server configured from cfg.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         "0.0.0.0:" + s.cfg.Port,
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  s.cfg.IdleTimeout,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}
}

// Serve runs srv until ctx is done, then stops accepting connections and
// waits up to shutdownTimeout for in-flight requests. A listen failure is
// returned at once.
func Serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(middleware.Logging())

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: !allowsAnyOrigin(s.cfg.CORSOrigins),
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", s.healthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		// Auth routes (public)
		api.POST("/register", s.handler.Auth.Register)
		api.POST("/login", s.handler.Auth.Login)

		// Public reads; a valid token adds the caller's own vote stance
		public := api.Group("")
		public.Use(middleware.OptionalAuth(s.issuer))
		{
			public.GET("/questions", s.handler.Question.GetQuestions)
			public.GET("/questions/hot", s.handler.Question.GetHotQuestions)
			public.GET("/questions/:id", s.handler.Question.GetQuestion)
			public.GET("/tags/:name/questions", s.handler.Question.GetTaggedQuestions)
			public.GET("/tags/add", s.handler.Question.AddTag)
			public.GET("/search", s.handler.Question.Search)

			// The vote endpoint answers non-POST methods itself with 405
			// and unauthenticated callers with 403.
			public.Any("/vote", s.handler.Vote.Vote)
		}

		// Protected routes (authentication required)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(s.issuer))
		{
			protected.GET("/me", s.handler.Auth.GetMe)

			protected.POST("/questions", s.handler.Question.CreateQuestion)
			protected.PUT("/questions/:id", s.handler.Question.UpdateQuestion)
			protected.DELETE("/questions/:id", s.handler.Question.DeleteQuestion)
			protected.POST("/questions/:id/answers", s.handler.Question.CreateAnswer)
			protected.POST("/answers/:id/correct", s.handler.Question.ChooseCorrectAnswer)
		}
	}

	return r
}

func (s *Server) healthCheck(c *gin.Context) {
	stats := s.health.Health()
	status := http.StatusOK
	if stats["status"] != "up" {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, stats)
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
