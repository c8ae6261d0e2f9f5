package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Epoch is the open-ended lower bound used when a window has no older edge.
var Epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

type Bucket struct {
	Label    string          `json:"label"`
	FromDays int             `json:"from_days"`
	ToDays   *int            `json:"to_days"`
	Balance  decimal.Decimal `json:"balance"`
}

type Report struct {
	ClientID snowflake.ID    `json:"client_id"`
	AsOf     time.Time       `json:"as_of"`
	Buckets  []Bucket        `json:"buckets"`
	Total    decimal.Decimal `json:"total"`
}

// Service buckets outstanding invoice balances by age. A window [fromDays, toDays)
// selects invoices issued at least fromDays and fewer than toDays days ago.
type Service interface {
	WithTx(tx *gorm.DB) Service

	Balance(ctx context.Context, clientID snowflake.ID, fromDays int, toDays *int) (decimal.Decimal, error)
	Report(ctx context.Context, clientID snowflake.ID) (Report, error)
}
