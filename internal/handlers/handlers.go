package handlers

import (
	"github.com/emilythestrangee/hasker/backend/internal/auth"
	"github.com/emilythestrangee/hasker/backend/internal/service"
)

// Handler combines all handler types
type Handler struct {
	Auth     *AuthHandler
	Vote     *VoteHandler
	Question *QuestionHandler
}

// Services bundles the application services the handlers call into.
type Services struct {
	Auth      *service.AuthService
	Votes     *service.VoteService
	Listings  *service.ListingService
	Questions *service.QuestionService
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(svc Services, iss *auth.Issuer) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth, iss),
		Vote:     NewVoteHandler(svc.Votes),
		Question: NewQuestionHandler(svc.Listings, svc.Questions),
	}
}
