package domain

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MonthlyAmounts is keyed by calendar month (1-12), then tax name.
type MonthlyAmounts map[int]map[string]decimal.Decimal

func (m MonthlyAmounts) Add(month int, taxName string, amount decimal.Decimal) {
	byTax, ok := m[month]
	if !ok {
		byTax = make(map[string]decimal.Decimal)
		m[month] = byTax
	}
	byTax[taxName] = byTax[taxName].Add(amount)
}

// Total sums every month and tax name.
func (m MonthlyAmounts) Total() decimal.Decimal {
	total := decimal.Zero
	for _, byTax := range m {
		for _, amount := range byTax {
			total = total.Add(amount)
		}
	}
	return total
}

// Report apportions each payment across its invoice's line items by the share of the
// invoice total it settles. Amounts are full precision.
type Report struct {
	Year                     int            `json:"year"`
	Month                    *int           `json:"month,omitempty"`
	MonthlyFractionalPayment MonthlyAmounts `json:"monthly_fractional_payment"`
	MonthlyTaxOwed           MonthlyAmounts `json:"monthly_tax_owed"`
}

type Service interface {
	WithTx(tx *gorm.DB) Service

	Report(ctx context.Context, year int, month *int) (Report, error)
}
