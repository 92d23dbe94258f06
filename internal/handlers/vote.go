package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/hasker/backend/internal/logger"
	"github.com/emilythestrangee/hasker/backend/internal/metrics"
	"github.com/emilythestrangee/hasker/backend/internal/middleware"
	"github.com/emilythestrangee/hasker/backend/internal/service"
)

type VoteHandler struct {
	votes *service.VoteService
}

func NewVoteHandler(votes *service.VoteService) *VoteHandler {
	return &VoteHandler{votes: votes}
}

// Vote casts a like or dislike on a question ("q") or answer ("a").
// It only accepts asynchronous POSTs and answers with the new vote count
// as plain text.
func (h *VoteHandler) Vote(c *gin.Context) {
	req := service.VoteRequest{
		Type:   formValue(c, "vote_type"),
		ID:     formValue(c, "vote_id"),
		Action: formValue(c, "vote_action"),
	}

	if c.Request.Method != http.MethodPost || c.GetHeader("X-Requested-With") != "XMLHttpRequest" {
		c.Header("Allow", http.MethodPost)
		h.reject(c, req, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	callerID, ok := extractUserID(c)
	if !ok {
		h.reject(c, req, http.StatusForbidden, "not authenticated")
		return
	}

	votes, err := h.votes.Cast(c.Request.Context(), callerID, req)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logger.WithRequestID(middleware.GetRequestID(c)).ErrorContext(c.Request.Context(), "vote failed", "error", err)
			h.reject(c, req, status, "internal server error")
			return
		}
		h.reject(c, req, status, err.Error())
		return
	}

	metrics.RecordVote(req.Type, req.Action, "ok")
	c.String(http.StatusOK, strconv.Itoa(votes))
}

func (h *VoteHandler) reject(c *gin.Context, req service.VoteRequest, status int, reason string) {
	metrics.RecordVote(req.Type, req.Action, resultLabel(status))
	c.String(status, reason)
}

func resultLabel(status int) string {
	switch status {
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	default:
		return "error"
	}
}

// formValue reads key from the urlencoded body, falling back to the query
// string.
func formValue(c *gin.Context, key string) string {
	if v, ok := c.GetPostForm(key); ok {
		return v
	}
	return c.Query(key)
}
