package domain

import (
	"context"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/money"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DocumentKind string

const (
	KindInvoice DocumentKind = "invoice"
	KindQuote   DocumentKind = "quote"
)

// DocumentRef identifies an invoice or a quote.
type DocumentRef struct {
	Kind DocumentKind
	ID   snowflake.ID
}

func InvoiceRef(id snowflake.ID) DocumentRef { return DocumentRef{Kind: KindInvoice, ID: id} }
func QuoteRef(id snowflake.ID) DocumentRef   { return DocumentRef{Kind: KindQuote, ID: id} }

// Line is a priced line item. Amounts are full precision.
type Line struct {
	LineItemID snowflake.ID    `json:"line_item_id"`
	Name       string          `json:"name"`
	TaxName    string          `json:"tax_name"`
	TaxPercent decimal.Decimal `json:"tax_percent"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
}

// TotalOf sums line totals at full precision and rounds once.
func TotalOf(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Total)
	}
	return money.Round(total)
}

// Summary breaks an invoice down into its reported figures. Subtotal, Tax, Total,
// Paid and Balance are rounded to reporting precision.
type Summary struct {
	InvoiceID snowflake.ID    `json:"invoice_id"`
	ClientID  snowflake.ID    `json:"client_id"`
	Status    string          `json:"status"`
	Lines     []Line          `json:"lines"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	Paid      decimal.Decimal `json:"paid"`
	Balance   decimal.Decimal `json:"balance"`
}

type Service interface {
	// WithTx binds the service to a transaction for consistent multi-call reads.
	WithTx(tx *gorm.DB) Service

	DocumentTotal(ctx context.Context, ref DocumentRef) (decimal.Decimal, error)
	InvoiceTotal(ctx context.Context, invoiceID snowflake.ID) (decimal.Decimal, error)
	QuoteTotal(ctx context.Context, quoteID snowflake.ID) (decimal.Decimal, error)
	InvoiceBalance(ctx context.Context, invoiceID snowflake.ID) (decimal.Decimal, error)
	Lines(ctx context.Context, ref DocumentRef) ([]Line, error)
	Summary(ctx context.Context, invoiceID snowflake.ID) (Summary, error)
}
