package domain

import "errors"

var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrUnknownReceiver      = errors.New("receiver not found")
	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrSelfTransfer         = errors.New("cannot transfer to same account")
	ErrLoanNotEligible      = errors.New("no deposit covers 10% of the requested loan")
	ErrNotAuthenticated     = errors.New("no active session")
	ErrDuplicateUsername    = errors.New("username already taken")
	ErrInvalidAccount       = errors.New("invalid account")
)
