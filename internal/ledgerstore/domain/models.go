package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type InvoiceStatus string

const (
	StatusDraft     InvoiceStatus = "draft"
	StatusSent      InvoiceStatus = "sent"
	StatusViewed    InvoiceStatus = "viewed"
	StatusPartial   InvoiceStatus = "partial"
	StatusPaid      InvoiceStatus = "paid"
	StatusCancelled InvoiceStatus = "cancelled"
)

// NonBillableStatuses never contribute to balances or ageing.
var NonBillableStatuses = []InvoiceStatus{StatusDraft, StatusCancelled}

type Client struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name      string            `gorm:"not null" json:"name"`
	Email     string            `gorm:"column:email" json:"email,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Client) TableName() string { return "clients" }

type Tax struct {
	ID      snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name    string          `gorm:"not null" json:"name"`
	Percent decimal.Decimal `gorm:"type:decimal(7,4);not null" json:"percent"`
}

func (Tax) TableName() string { return "taxes" }

type Invoice struct {
	ID        snowflake.ID  `gorm:"primaryKey" json:"id"`
	ClientID  snowflake.ID  `gorm:"not null;index" json:"client_id"`
	Number    string        `gorm:"column:number" json:"number,omitempty"`
	Status    InvoiceStatus `gorm:"type:text;not null" json:"status"`
	IssuedAt  time.Time     `gorm:"not null;index" json:"issued_at"`
	DueAt     time.Time     `gorm:"not null" json:"due_at"`
	CreatedAt time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Invoice) TableName() string { return "invoices" }

// Billable reports whether the invoice counts towards client balances.
func (i Invoice) Billable() bool {
	for _, status := range NonBillableStatuses {
		if i.Status == status {
			return false
		}
	}
	return true
}

type Quote struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	ClientID  snowflake.ID `gorm:"not null;index" json:"client_id"`
	Number    string       `gorm:"column:number" json:"number,omitempty"`
	Status    string       `gorm:"type:text;not null" json:"status"`
	IssuedAt  time.Time    `gorm:"not null" json:"issued_at"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Quote) TableName() string { return "quotes" }

// LineItem belongs to exactly one invoice or quote.
type LineItem struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceID *snowflake.ID   `gorm:"index" json:"invoice_id,omitempty"`
	QuoteID   *snowflake.ID   `gorm:"index" json:"quote_id,omitempty"`
	Name      string          `gorm:"not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Discount  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"discount"`
	TaxID     *snowflake.ID   `json:"tax_id,omitempty"`
}

func (LineItem) TableName() string { return "line_items" }

// Subtotal is price*quantity-discount, unclamped.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(l.Quantity)).Sub(l.Discount)
}

// TaxedLineItem is a line item joined with its tax definition, if any.
type TaxedLineItem struct {
	LineItem
	TaxName    *string
	TaxPercent decimal.NullDecimal
}

// NoTaxName labels untaxed lines in tax reports.
const NoTaxName = "No Tax"

// Label returns the tax name, or NoTaxName for untaxed lines.
func (l TaxedLineItem) Label() string {
	if l.TaxName == nil || l.TaxID == nil {
		return NoTaxName
	}
	return *l.TaxName
}

// Rate returns the tax percentage, zero when the line is untaxed.
func (l TaxedLineItem) Rate() decimal.Decimal {
	if !l.TaxPercent.Valid {
		return decimal.Zero
	}
	return l.TaxPercent.Decimal
}

type Payment struct {
	ID        snowflake.ID    `gorm:"primaryKey" json:"id"`
	InvoiceID snowflake.ID    `gorm:"not null;index" json:"invoice_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	PaidAt    time.Time       `gorm:"not null;index" json:"paid_at"`
	Reference *string         `gorm:"index" json:"reference,omitempty"`
	CreatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Payment) TableName() string { return "payments" }

type Product struct {
	ID    snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name  string          `gorm:"not null" json:"name"`
	Price decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"price"`
}

func (Product) TableName() string { return "products" }

type Subscription struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	ClientID  snowflake.ID `gorm:"not null;index" json:"client_id"`
	ProductID snowflake.ID `gorm:"not null" json:"product_id"`
	Quantity  int64        `gorm:"not null" json:"quantity"`
}

func (Subscription) TableName() string { return "subscriptions" }

// SubscriptionLine pairs a subscription's quantity with its product price.
type SubscriptionLine struct {
	SubscriptionID snowflake.ID
	ProductID      snowflake.ID
	ProductName    string
	Price          decimal.Decimal
	Quantity       int64
}

type Expense struct {
	ID          snowflake.ID    `gorm:"primaryKey" json:"id"`
	Description string          `json:"description,omitempty"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	SpentAt     time.Time       `gorm:"not null;index" json:"spent_at"`
}

func (Expense) TableName() string { return "expenses" }

// Models lists every table owned by the ledger store, in dependency order.
func Models() []any {
	return []any{
		&Client{},
		&Tax{},
		&Invoice{},
		&Quote{},
		&LineItem{},
		&Payment{},
		&Product{},
		&Subscription{},
		&Expense{},
	}
}
