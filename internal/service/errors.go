package service

import (
	"errors"
	"fmt"
)

// Error categories. Handlers map these onto status codes with errors.Is.
var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrValidation       = errors.New("bad request")
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("already exists")
)

var (
	ErrBadPostData        = fmt.Errorf("%w: bad POST data", ErrValidation)
	ErrBadVoteID          = fmt.Errorf("%w: bad vote_id - not int", ErrValidation)
	ErrBadVoteType        = fmt.Errorf("%w: bad vote_type", ErrValidation)
	ErrBadVoteAction      = fmt.Errorf("%w: bad vote_action", ErrValidation)
	ErrVoteTargetNotFound = fmt.Errorf("%w: bad vote_id - obj not exist", ErrNotFound)
	ErrSelfVote           = fmt.Errorf("%w: can't vote own question/answer", ErrForbidden)

	ErrEmptySearch = fmt.Errorf("%w: empty search query", ErrValidation)
	ErrEmptyTag    = fmt.Errorf("%w: empty tag", ErrValidation)
	ErrOwnQuestion = fmt.Errorf("%w: can't answer own question", ErrForbidden)
	ErrNotAuthor   = fmt.Errorf("%w: only the question author can choose the correct answer", ErrForbidden)
	ErrNotOwner    = fmt.Errorf("%w: you can only delete your own questions", ErrForbidden)

	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrNotAuthenticated)
	ErrUserExists         = fmt.Errorf("%w: username or email already exists", ErrConflict)
)
