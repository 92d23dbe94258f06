package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginMe(t *testing.T) {
	env := newTestEnv(t)

	w := env.postJSON("/api/register", "", gin.H{"username": "alice", "email": "alice@example.com", "password": "secret123"})
	require.Equal(t, http.StatusCreated, w.Code)
	registered := decode(t, w)
	assert.NotEmpty(t, registered["token"])
	assert.NotContains(t, registered["user"], "password")

	w = env.postJSON("/api/register", "", gin.H{"username": "alice", "email": "alice@example.com", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = env.postJSON("/api/login", "", gin.H{"email": "alice@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.postJSON("/api/login", "", gin.H{"email": "alice@example.com", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)
	token := decode(t, w)["token"].(string)

	w = env.get("/api/me", token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decode(t, w)["username"])

	assert.Equal(t, http.StatusUnauthorized, env.get("/api/me", "").Code)
}

func TestRegister_Validation(t *testing.T) {
	env := newTestEnv(t)

	w := env.postJSON("/api/register", "", gin.H{"username": "bob", "email": "nope", "password": "secret123"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
