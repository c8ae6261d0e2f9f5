package domain

import (
	"context"

	ageingdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ageing/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Summary is a point-in-time view of a client's account, read in one transaction.
type Summary struct {
	ClientID         snowflake.ID        `json:"client_id"`
	Name             string              `json:"name"`
	Balance          decimal.Decimal     `json:"balance"`
	PastDue          decimal.Decimal     `json:"past_due"`
	MonthlyRecurring decimal.Decimal     `json:"monthly_recurring"`
	Ageing           ageingdomain.Report `json:"ageing"`
}

type CollectionsEntry struct {
	ClientID snowflake.ID    `json:"client_id"`
	Name     string          `json:"name"`
	Balance  decimal.Decimal `json:"balance"`
	PastDue  decimal.Decimal `json:"past_due"`
}

type CollectionsPage struct {
	Entries []CollectionsEntry `json:"entries"`
	pagination.PageInfo
}

type Service interface {
	// MonthlyRecurringAmount sums product price times quantity over the client's subscriptions.
	MonthlyRecurringAmount(ctx context.Context, clientID snowflake.ID) (decimal.Decimal, error)
	Summary(ctx context.Context, clientID snowflake.ID) (Summary, error)
	// CollectionsReport lists balances for one page of clients ordered by id.
	CollectionsReport(ctx context.Context, page pagination.Pagination) (CollectionsPage, error)
}
