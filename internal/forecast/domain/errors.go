package domain

import "errors"

var (
	ErrInvalidMonth   = errors.New("invalid_month")
	ErrInvalidHistory = errors.New("invalid_history")
)
