package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Sample is the realised profit i months before the forecast month.
type Sample struct {
	Index    int             `json:"index"`
	Year     int             `json:"year"`
	Month    time.Month      `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
	// Empty is set when the month had neither payments nor expenses.
	Empty bool `json:"empty"`
}

type Forecast struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	// Value is the blended forecast, or LastYear when Fallback is set.
	Value        decimal.Decimal `json:"value"`
	Base         decimal.Decimal `json:"base"`
	LastYear     decimal.Decimal `json:"last_year"`
	Coefficients []float64       `json:"coefficients,omitempty"`
	Samples      int             `json:"samples"`
	Policy       string          `json:"missing_months"`
	Fallback     bool            `json:"fallback"`
}

type Service interface {
	WithTx(tx *gorm.DB) Service

	// Profit is payments received less expenses spent in the month.
	Profit(ctx context.Context, year, month int) (decimal.Decimal, error)
	// History returns months samples ordered from the month before (year, month)
	// backwards, capped at config.MaxHistoryMonths.
	History(ctx context.Context, year, month, months int) ([]Sample, error)
	Forecast(ctx context.Context, year, month int) (Forecast, error)
}
