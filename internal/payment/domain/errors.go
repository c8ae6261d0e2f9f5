package domain

import "errors"

var ErrInvalidReference = errors.New("invalid_reference")
