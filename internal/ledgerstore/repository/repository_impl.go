package repository

import (
	"context"
	"strings"
	"time"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/db/option"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/db/pagination"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/repository"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindClient(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Client, error) {
	return repository.ProvideStore[domain.Client](db).FindOne(ctx, &domain.Client{ID: id})
}

func (r *repo) ListClients(ctx context.Context, db *gorm.DB, page pagination.Pagination) ([]*domain.Client, error) {
	return repository.ProvideStore[domain.Client](db).Find(ctx, nil,
		option.ApplyPagination(page),
		option.WithSortBy(option.WithQuerySortBy("id", "asc", map[string]bool{"id": true})),
	)
}

func (r *repo) FindInvoice(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Invoice, error) {
	return repository.ProvideStore[domain.Invoice](db).FindOne(ctx, &domain.Invoice{ID: id})
}

func (r *repo) FindQuote(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Quote, error) {
	return repository.ProvideStore[domain.Quote](db).FindOne(ctx, &domain.Quote{ID: id})
}

func (r *repo) ListInvoices(ctx context.Context, db *gorm.DB, filter domain.InvoiceFilter) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	stmt := db.WithContext(ctx).Model(&domain.Invoice{})
	if filter.ClientID != nil {
		stmt = stmt.Where("client_id = ?", *filter.ClientID)
	}
	if filter.IssuedFrom != nil {
		stmt = stmt.Where(timeCompare(db, "issued_at", ">="), *filter.IssuedFrom)
	}
	if filter.IssuedBefore != nil {
		stmt = stmt.Where(timeCompare(db, "issued_at", "<"), *filter.IssuedBefore)
	}
	if filter.DueBefore != nil {
		stmt = stmt.Where(timeCompare(db, "due_at", "<"), *filter.DueBefore)
	}
	if filter.BillableOnly {
		stmt = stmt.Where("status NOT IN ?", domain.NonBillableStatuses)
	}
	err := stmt.Order(instant(db, "issued_at") + " asc, id asc").Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

const taxedLineItemSelect = `SELECT li.id, li.invoice_id, li.quote_id, li.name, li.price, li.quantity, li.discount, li.tax_id,
	 t.name AS tax_name, t.percent AS tax_percent
	 FROM line_items li
	 LEFT JOIN taxes t ON t.id = li.tax_id`

func (r *repo) ListInvoiceLineItems(ctx context.Context, db *gorm.DB, invoiceID snowflake.ID) ([]domain.TaxedLineItem, error) {
	var items []domain.TaxedLineItem
	err := db.WithContext(ctx).Raw(
		taxedLineItemSelect+` WHERE li.invoice_id = ? ORDER BY li.id`,
		invoiceID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListQuoteLineItems(ctx context.Context, db *gorm.DB, quoteID snowflake.ID) ([]domain.TaxedLineItem, error) {
	var items []domain.TaxedLineItem
	err := db.WithContext(ctx).Raw(
		taxedLineItemSelect+` WHERE li.quote_id = ? ORDER BY li.id`,
		quoteID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListPayments(ctx context.Context, db *gorm.DB, filter domain.PaymentFilter) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := paymentQuery(ctx, db, filter).
		Select("payments.*").
		Order(instant(db, "payments.paid_at") + " asc, payments.id asc").
		Find(&payments).Error
	if err != nil {
		return nil, err
	}
	return payments, nil
}

// PaymentAmounts reads only the amount column.
func (r *repo) PaymentAmounts(ctx context.Context, db *gorm.DB, filter domain.PaymentFilter) ([]decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := paymentQuery(ctx, db, filter).Pluck("payments.amount", &amounts).Error
	if err != nil {
		return nil, err
	}
	return amounts, nil
}

func paymentQuery(ctx context.Context, db *gorm.DB, filter domain.PaymentFilter) *gorm.DB {
	stmt := db.WithContext(ctx).Model(&domain.Payment{})
	if filter.ClientID != nil || filter.DueBefore != nil || filter.BillableOnly {
		stmt = stmt.Joins("JOIN invoices ON invoices.id = payments.invoice_id")
		if filter.ClientID != nil {
			stmt = stmt.Where("invoices.client_id = ?", *filter.ClientID)
		}
		if filter.DueBefore != nil {
			stmt = stmt.Where(timeCompare(db, "invoices.due_at", "<"), *filter.DueBefore)
		}
		if filter.BillableOnly {
			stmt = stmt.Where("invoices.status NOT IN ?", domain.NonBillableStatuses)
		}
	}
	if filter.InvoiceID != nil {
		stmt = stmt.Where("payments.invoice_id = ?", *filter.InvoiceID)
	}
	if ref := strings.TrimSpace(filter.Reference); ref != "" {
		stmt = stmt.Where("payments.reference = ?", ref)
	}
	if filter.PaidFrom != nil {
		stmt = stmt.Where(timeCompare(db, "payments.paid_at", ">="), *filter.PaidFrom)
	}
	if filter.PaidBefore != nil {
		stmt = stmt.Where(timeCompare(db, "payments.paid_at", "<"), *filter.PaidBefore)
	}
	return stmt
}

func (r *repo) ExpenseAmounts(ctx context.Context, db *gorm.DB, from, before time.Time) ([]decimal.Decimal, error) {
	var amounts []decimal.Decimal
	err := db.WithContext(ctx).
		Model(&domain.Expense{}).
		Where(timeCompare(db, "spent_at", ">="), from).
		Where(timeCompare(db, "spent_at", "<"), before).
		Pluck("amount", &amounts).Error
	if err != nil {
		return nil, err
	}
	return amounts, nil
}

func (r *repo) ListSubscriptionLines(ctx context.Context, db *gorm.DB, clientID snowflake.ID) ([]domain.SubscriptionLine, error) {
	var lines []domain.SubscriptionLine
	err := db.WithContext(ctx).Raw(
		`SELECT s.id AS subscription_id, p.id AS product_id, p.name AS product_name, p.price, s.quantity
		 FROM subscriptions s
		 JOIN products p ON p.id = s.product_id
		 WHERE s.client_id = ?
		 ORDER BY s.id`,
		clientID,
	).Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// sqlite keeps timestamps as text with the writer's UTC offset, so both sides are
// compared as julian day numbers there.
func instant(db *gorm.DB, expr string) string {
	if db.Dialector != nil && db.Dialector.Name() == "sqlite" {
		return "julianday(" + expr + ")"
	}
	return expr
}

func timeCompare(db *gorm.DB, column, op string) string {
	return instant(db, column) + " " + op + " " + instant(db, "?")
}
