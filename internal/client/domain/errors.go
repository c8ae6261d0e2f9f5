package domain

import "errors"

var ErrClientNotFound = errors.New("client_not_found")
