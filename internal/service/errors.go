package service

import "errors"

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrAllyNotFound     = errors.New("ally not found")
	ErrNoPendingWarden  = errors.New("no technonomicon warden has been defeated")
	ErrNegativeDamage   = errors.New("damage must not be negative")
	ErrStorageDisabled  = errors.New("session storage is not configured")
	ErrUnsupportedState = errors.New("unsupported session state version")
)
