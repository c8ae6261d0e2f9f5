package service

import (
	"context"
	"fmt"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/config"
	invoicedomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/invoice/domain"
	ledgerdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/pricing"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/money"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	Repo       ledgerdomain.Repository
	Accounting *config.AccountingConfigHolder
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	repo       ledgerdomain.Repository
	accounting *config.AccountingConfigHolder
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("invoice.service"),
		repo:       p.Repo,
		accounting: p.Accounting,
	}
}

func (s *Service) WithTx(tx *gorm.DB) invoicedomain.Service {
	if tx == nil {
		return s
	}
	clone := *s
	clone.db = tx
	return &clone
}

func (s *Service) DocumentTotal(ctx context.Context, ref invoicedomain.DocumentRef) (decimal.Decimal, error) {
	lines, err := s.Lines(ctx, ref)
	if err != nil {
		return decimal.Zero, err
	}
	return invoicedomain.TotalOf(lines), nil
}

func (s *Service) InvoiceTotal(ctx context.Context, invoiceID snowflake.ID) (decimal.Decimal, error) {
	return s.DocumentTotal(ctx, invoicedomain.InvoiceRef(invoiceID))
}

func (s *Service) QuoteTotal(ctx context.Context, quoteID snowflake.ID) (decimal.Decimal, error) {
	return s.DocumentTotal(ctx, invoicedomain.QuoteRef(quoteID))
}

// InvoiceBalance is the invoice total less every payment against it. Magnitudes below
// the configured tolerance collapse to zero.
func (s *Service) InvoiceBalance(ctx context.Context, invoiceID snowflake.ID) (decimal.Decimal, error) {
	total, err := s.InvoiceTotal(ctx, invoiceID)
	if err != nil {
		return decimal.Zero, err
	}
	paid, err := s.paid(ctx, invoiceID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.balance(total, paid), nil
}

func (s *Service) Lines(ctx context.Context, ref invoicedomain.DocumentRef) ([]invoicedomain.Line, error) {
	var (
		items []ledgerdomain.TaxedLineItem
		err   error
	)
	switch ref.Kind {
	case invoicedomain.KindInvoice:
		inv, findErr := s.repo.FindInvoice(ctx, s.db, ref.ID)
		if findErr != nil {
			return nil, fmt.Errorf("find invoice %s: %w", ref.ID, findErr)
		}
		if inv == nil {
			return nil, invoicedomain.ErrDocumentNotFound
		}
		items, err = s.repo.ListInvoiceLineItems(ctx, s.db, ref.ID)
	case invoicedomain.KindQuote:
		quote, findErr := s.repo.FindQuote(ctx, s.db, ref.ID)
		if findErr != nil {
			return nil, fmt.Errorf("find quote %s: %w", ref.ID, findErr)
		}
		if quote == nil {
			return nil, invoicedomain.ErrDocumentNotFound
		}
		items, err = s.repo.ListQuoteLineItems(ctx, s.db, ref.ID)
	default:
		return nil, invoicedomain.ErrInvalidDocumentKind
	}
	if err != nil {
		return nil, fmt.Errorf("list %s line items: %w", ref.Kind, err)
	}

	lines := make([]invoicedomain.Line, 0, len(items))
	for _, item := range items {
		lines = append(lines, priceLine(item))
	}
	return lines, nil
}

func (s *Service) Summary(ctx context.Context, invoiceID snowflake.ID) (invoicedomain.Summary, error) {
	inv, err := s.repo.FindInvoice(ctx, s.db, invoiceID)
	if err != nil {
		return invoicedomain.Summary{}, fmt.Errorf("find invoice %s: %w", invoiceID, err)
	}
	if inv == nil {
		return invoicedomain.Summary{}, invoicedomain.ErrDocumentNotFound
	}

	lines, err := s.Lines(ctx, invoicedomain.InvoiceRef(invoiceID))
	if err != nil {
		return invoicedomain.Summary{}, err
	}
	paid, err := s.paid(ctx, invoiceID)
	if err != nil {
		return invoicedomain.Summary{}, err
	}

	subtotal, tax := decimal.Zero, decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.Subtotal)
		tax = tax.Add(line.Tax)
	}
	total := invoicedomain.TotalOf(lines)

	return invoicedomain.Summary{
		InvoiceID: inv.ID,
		ClientID:  inv.ClientID,
		Status:    string(inv.Status),
		Lines:     lines,
		Subtotal:  money.Round(subtotal),
		Tax:       money.Round(tax),
		Total:     total,
		Paid:      money.Round(paid),
		Balance:   s.balance(total, paid),
	}, nil
}

func (s *Service) paid(ctx context.Context, invoiceID snowflake.ID) (decimal.Decimal, error) {
	amounts, err := s.repo.PaymentAmounts(ctx, s.db, ledgerdomain.PaymentFilter{InvoiceID: &invoiceID})
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum payments for invoice %s: %w", invoiceID, err)
	}
	return money.Sum(amounts...), nil
}

func (s *Service) balance(total, paid decimal.Decimal) decimal.Decimal {
	tolerance := config.DefaultAccountingConfig().Tolerance()
	if s.accounting != nil {
		tolerance = s.accounting.Get().Tolerance()
	}
	return money.ZeroWithin(money.Round(total.Sub(paid)), tolerance)
}

func priceLine(item ledgerdomain.TaxedLineItem) invoicedomain.Line {
	subtotal := pricing.LineSubtotal(item.Price, item.Quantity, item.Discount)
	tax := pricing.LineTax(subtotal, item.Rate())
	return invoicedomain.Line{
		LineItemID: item.ID,
		Name:       item.Name,
		TaxName:    item.Label(),
		TaxPercent: item.Rate(),
		Subtotal:   subtotal,
		Tax:        tax,
		Total:      pricing.LineItemTotal(item.Price, item.Quantity, item.Discount, item.Rate()),
	}
}
