package domain

import (
	"context"
	"time"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvoiceFilter narrows invoice reads. Lower bounds are inclusive, upper bounds exclusive.
type InvoiceFilter struct {
	ClientID     *snowflake.ID
	IssuedFrom   *time.Time
	IssuedBefore *time.Time
	DueBefore    *time.Time
	BillableOnly bool
}

// PaymentFilter narrows payment reads. Client and invoice constraints apply through the
// owning invoice.
type PaymentFilter struct {
	InvoiceID    *snowflake.ID
	ClientID     *snowflake.ID
	Reference    string
	PaidFrom     *time.Time
	PaidBefore   *time.Time
	DueBefore    *time.Time
	BillableOnly bool
}

// Repository is the read surface of the ledger store. Every method takes the handle to
// query so callers can pin a sequence of reads to one transaction.
type Repository interface {
	FindClient(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Client, error)
	ListClients(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*Client, error)
	FindInvoice(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Invoice, error)
	FindQuote(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Quote, error)
	ListInvoices(ctx context.Context, db *gorm.DB, filter InvoiceFilter) ([]Invoice, error)
	ListInvoiceLineItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]TaxedLineItem, error)
	ListQuoteLineItems(ctx context.Context, db *gorm.DB, quoteID snowflake.ID) ([]TaxedLineItem, error)
	ListPayments(ctx context.Context, db *gorm.DB, filter PaymentFilter) ([]Payment, error)
	PaymentAmounts(ctx context.Context, db *gorm.DB, filter PaymentFilter) ([]decimal.Decimal, error)
	ExpenseAmounts(ctx context.Context, db *gorm.DB, from, before time.Time) ([]decimal.Decimal, error)
	ListSubscriptionLines(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]SubscriptionLine, error)
}
