package util

import "errors"

var (
	ErrAccountNotFound      = errors.New("account not found")
	ErrEmailRegistered      = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrCaseNotFound         = errors.New("case not found")
	ErrJuniorNotFound       = errors.New("junior legal assistant not found")
	ErrAdvocateNotFound     = errors.New("advocate not found")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrInteractionNotFound  = errors.New("interaction not found")
	ErrInvalidAccountTypes  = errors.New("invalid account types")
	ErrInvalidAction        = errors.New("invalid action")
	ErrGracePeriodExpired   = errors.New("account deactivated: grace period expired without joining an advocate community")
)
