package repository

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrRetryable = errors.New("transaction conflict, retry")
)
