package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/hasker/backend/internal/database/memory"
	"github.com/emilythestrangee/hasker/backend/internal/models"
	"github.com/emilythestrangee/hasker/backend/internal/service"
)

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc := service.NewAuthService(memory.New())
	ctx := context.Background()

	user, err := svc.Register(ctx, models.RegisterRequest{
		Username: "alice",
		Email:    " Alice@Example.com ",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.NotEqual(t, "secret123", user.Password)

	got, err := svc.Login(ctx, models.LoginRequest{Email: "ALICE@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "alice@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestAuthService_RegisterValidation(t *testing.T) {
	svc := service.NewAuthService(memory.New())

	tests := []struct {
		name string
		req  models.RegisterRequest
	}{
		{"short username", models.RegisterRequest{Username: "al", Email: "a@example.com", Password: "secret123"}},
		{"bad email", models.RegisterRequest{Username: "alice", Email: "not-an-email", Password: "secret123"}},
		{"short password", models.RegisterRequest{Username: "alice", Email: "a@example.com", Password: "123"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.req)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	svc := service.NewAuthService(memory.New())
	ctx := context.Background()
	req := models.RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "secret123"}

	_, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, service.ErrUserExists)
	assert.ErrorIs(t, err, service.ErrConflict)
}
