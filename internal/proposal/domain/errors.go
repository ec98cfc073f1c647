package domain

import "errors"

var (
	ErrInvalidID        = errors.New("invalid_proposal_id")
	ErrProposalNotFound = errors.New("proposal_not_found")
	ErrInvalidPath      = errors.New("invalid_field_path")
	ErrInvalidField     = errors.New("invalid_field")
)
