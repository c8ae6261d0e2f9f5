package domain

import "errors"

var (
	ErrInvalidYear  = errors.New("invalid_year")
	ErrInvalidMonth = errors.New("invalid_month")
)
