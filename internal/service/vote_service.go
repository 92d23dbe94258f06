package service

import (
	"context"
	"errors"
	"strconv"

	"github.com/emilythestrangee/hasker/backend/internal/models"
)

// VoteRequest carries the raw vote fields as received from the client.
type VoteRequest struct {
	Type   string
	ID     string
	Action string
}

// VoteService validates vote requests and forwards them to storage. It is
// the only place self-votes are rejected.
type VoteService struct {
	repo VoteRepository
}

func NewVoteService(repo VoteRepository) *VoteService {
	return &VoteService{repo: repo}
}

// Cast checks req on behalf of an authenticated caller and applies the vote.
// Every failure returns before any state changes.
func (s *VoteService) Cast(ctx context.Context, callerID int, req VoteRequest) (int, error) {
	if req.Type == "" || req.ID == "" || req.Action == "" {
		return 0, ErrBadPostData
	}

	id, err := strconv.Atoi(req.ID)
	if err != nil {
		return 0, ErrBadVoteID
	}

	kind, ok := models.ParseKind(req.Type)
	if !ok {
		return 0, ErrBadVoteType
	}

	target, err := s.repo.FindVotable(ctx, models.Ref{Kind: kind, ID: id})
	if errors.Is(err, ErrNotFound) {
		return 0, ErrVoteTargetNotFound
	}
	if err != nil {
		return 0, err
	}

	if req.Action != "like" && req.Action != "dislike" {
		return 0, ErrBadVoteAction
	}

	if target.Owner() == callerID {
		return 0, ErrSelfVote
	}

	return s.repo.CastVote(ctx, target.Ref(), callerID, req.Action == "like")
}
