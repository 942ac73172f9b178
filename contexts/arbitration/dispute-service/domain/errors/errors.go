package errors

import "errors"

var (
	ErrInvalidDispute      = errors.New("invalid dispute reference")
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotAuthorized       = errors.New("caller is not an authorized arbiter")
	ErrDisputeClosed       = errors.New("dispute is closed")
	ErrInsufficientStake   = errors.New("stake is below the minimum")
	ErrAlreadyVoted        = errors.New("arbiter already voted on this dispute")
	ErrInvalidVote         = errors.New("invalid vote choice")
	ErrNoVotesCast         = errors.New("no votes cast on this dispute")
	ErrStakeTransferFailed = errors.New("stake transfer failed")
	ErrVoteNotFound        = errors.New("vote not found")
	ErrEvidenceNotFound    = errors.New("evidence not found")
	ErrIdempotencyConflict = errors.New("idempotency key conflict")
)
