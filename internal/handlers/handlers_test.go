package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/hasker/backend/internal/auth"
	"github.com/emilythestrangee/hasker/backend/internal/database/memory"
	"github.com/emilythestrangee/hasker/backend/internal/middleware"
	"github.com/emilythestrangee/hasker/backend/internal/models"
	"github.com/emilythestrangee/hasker/backend/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var epoch = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	router *gin.Engine
	store  *memory.Store
	issuer *auth.Issuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	st := memory.New()
	iss := auth.NewIssuer("test-secret", time.Hour)
	h := NewHandler(Services{
		Auth:      service.NewAuthService(st),
		Votes:     service.NewVoteService(st),
		Listings:  service.NewListingService(st, st, 2, 30),
		Questions: service.NewQuestionService(st, st),
	}, iss)

	r := gin.New()
	api := r.Group("/api")
	api.POST("/register", h.Auth.Register)
	api.POST("/login", h.Auth.Login)

	public := api.Group("", middleware.OptionalAuth(iss))
	public.GET("/questions", h.Question.GetQuestions)
	public.GET("/questions/hot", h.Question.GetHotQuestions)
	public.GET("/questions/:id", h.Question.GetQuestion)
	public.GET("/tags/:name/questions", h.Question.GetTaggedQuestions)
	public.GET("/tags/add", h.Question.AddTag)
	public.GET("/search", h.Question.Search)
	public.Any("/vote", h.Vote.Vote)

	protected := api.Group("", middleware.AuthMiddleware(iss))
	protected.GET("/me", h.Auth.GetMe)
	protected.POST("/questions", h.Question.CreateQuestion)
	protected.PUT("/questions/:id", h.Question.UpdateQuestion)
	protected.DELETE("/questions/:id", h.Question.DeleteQuestion)
	protected.POST("/questions/:id/answers", h.Question.CreateAnswer)
	protected.POST("/answers/:id/correct", h.Question.ChooseCorrectAnswer)

	return &testEnv{router: r, store: st, issuer: iss}
}

// user creates a user and returns it with a bearer token.
func (e *testEnv) user(t *testing.T, name string) (*models.User, string) {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@example.com"}
	require.NoError(t, e.store.CreateUser(context.Background(), u))
	token, err := e.issuer.Issue(u)
	require.NoError(t, err)
	return u, token
}

func (e *testEnv) question(t *testing.T, author int, title string, published time.Time, tags ...string) *models.Question {
	t.Helper()
	q := &models.Question{Title: title, Text: "about " + title, AuthorID: author, Published: published}
	require.NoError(t, e.store.CreateQuestion(context.Background(), q, tags))
	return q
}

func (e *testEnv) answer(t *testing.T, author, questionID int) *models.Answer {
	t.Helper()
	a := &models.Answer{Text: "answer", AuthorID: author, QuestionID: questionID, Published: epoch}
	require.NoError(t, e.store.CreateAnswer(context.Background(), a))
	return a
}

func (e *testEnv) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path, token string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil), token)
}

func (e *testEnv) postJSON(path, token string, body any) *httptest.ResponseRecorder {
	return e.sendJSON(http.MethodPost, path, token, body)
}

func (e *testEnv) sendJSON(method, path, token string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	return e.do(req, token)
}

// vote posts an asynchronous form-encoded vote.
func (e *testEnv) vote(token string, fields url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/vote", strings.NewReader(fields.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	return e.do(req, token)
}

func voteForm(kind models.Kind, id any, action string) url.Values {
	return url.Values{
		"vote_type":   {string(kind)},
		"vote_id":     {fmt.Sprint(id)},
		"vote_action": {action},
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	raw, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	return body
}
