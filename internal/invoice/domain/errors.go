package domain

import "errors"

var (
	ErrDocumentNotFound    = errors.New("document_not_found")
	ErrInvalidDocumentKind = errors.New("invalid_document_kind")
)
