// Package ledgertest seeds an in-memory ledger store for tests.
package ledgertest

import (
	"context"
	"testing"
	"time"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/db"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Ledger struct {
	t    testing.TB
	DB   *gorm.DB
	node *snowflake.Node
}

// New opens a migrated in-memory ledger.
func New(t testing.TB) *Ledger {
	t.Helper()
	conn := db.NewTest(t)
	require.NoError(t, conn.AutoMigrate(domain.Models()...))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return &Ledger{t: t, DB: conn, node: node}
}

func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func D(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func create[T any](l *Ledger, resource *T) {
	l.t.Helper()
	require.NoError(l.t, repository.ProvideStore[T](l.DB).Create(context.Background(), resource))
}

func (l *Ledger) Client(name string) domain.Client {
	c := domain.Client{ID: l.node.Generate(), Name: name, Metadata: datatypes.JSONMap{}}
	create(l, &c)
	return c
}

func (l *Ledger) Tax(name, percent string) domain.Tax {
	tax := domain.Tax{ID: l.node.Generate(), Name: name, Percent: D(percent)}
	create(l, &tax)
	return tax
}

// Invoice inserts an invoice due thirty days after issue.
func (l *Ledger) Invoice(client domain.Client, status domain.InvoiceStatus, issued time.Time) domain.Invoice {
	return l.InvoiceDue(client, status, issued, issued.AddDate(0, 0, 30))
}

func (l *Ledger) InvoiceDue(client domain.Client, status domain.InvoiceStatus, issued, due time.Time) domain.Invoice {
	inv := domain.Invoice{
		ID:       l.node.Generate(),
		ClientID: client.ID,
		Status:   status,
		IssuedAt: issued,
		DueAt:    due,
	}
	create(l, &inv)
	return inv
}

func (l *Ledger) Quote(client domain.Client, issued time.Time) domain.Quote {
	q := domain.Quote{ID: l.node.Generate(), ClientID: client.ID, Status: "sent", IssuedAt: issued}
	create(l, &q)
	return q
}

// Line adds a line item to an invoice. tax may be nil.
func (l *Ledger) Line(inv domain.Invoice, price string, quantity int64, discount string, tax *domain.Tax) domain.LineItem {
	item := l.lineItem(price, quantity, discount, tax)
	item.InvoiceID = &inv.ID
	create(l, &item)
	return item
}

func (l *Ledger) QuoteLine(q domain.Quote, price string, quantity int64, discount string, tax *domain.Tax) domain.LineItem {
	item := l.lineItem(price, quantity, discount, tax)
	item.QuoteID = &q.ID
	create(l, &item)
	return item
}

func (l *Ledger) lineItem(price string, quantity int64, discount string, tax *domain.Tax) domain.LineItem {
	item := domain.LineItem{
		ID:       l.node.Generate(),
		Name:     "item",
		Price:    D(price),
		Quantity: quantity,
		Discount: D(discount),
	}
	if tax != nil {
		item.TaxID = &tax.ID
	}
	return item
}

func (l *Ledger) Payment(inv domain.Invoice, amount string, paid time.Time) domain.Payment {
	p := domain.Payment{ID: l.node.Generate(), InvoiceID: inv.ID, Amount: D(amount), PaidAt: paid}
	create(l, &p)
	return p
}

func (l *Ledger) PaymentRef(inv domain.Invoice, amount string, paid time.Time, reference string) domain.Payment {
	p := domain.Payment{ID: l.node.Generate(), InvoiceID: inv.ID, Amount: D(amount), PaidAt: paid, Reference: &reference}
	create(l, &p)
	return p
}

func (l *Ledger) Expense(amount string, spent time.Time) domain.Expense {
	e := domain.Expense{ID: l.node.Generate(), Amount: D(amount), SpentAt: spent}
	create(l, &e)
	return e
}

func (l *Ledger) Product(name, price string) domain.Product {
	p := domain.Product{ID: l.node.Generate(), Name: name, Price: D(price)}
	create(l, &p)
	return p
}

func (l *Ledger) Subscribe(client domain.Client, product domain.Product, quantity int64) domain.Subscription {
	s := domain.Subscription{ID: l.node.Generate(), ClientID: client.ID, ProductID: product.ID, Quantity: quantity}
	create(l, &s)
	return s
}
