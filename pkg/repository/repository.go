package repository

import (
	"context"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/db/option"
	"gorm.io/gorm"
)

// Repository is a generic table accessor keyed by struct filters.
type Repository[T any] interface {
	WithTrx(tx *gorm.DB) Repository[T]
	Find(ctx context.Context, query *T, opts ...option.QueryOption) ([]*T, error)
	FindOne(ctx context.Context, query *T, opts ...option.QueryOption) (*T, error)
	Count(ctx context.Context, query *T) (int64, error)
	Create(ctx context.Context, resource *T) error
	BatchCreate(ctx context.Context, resources []*T) error
}
