package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/clock"
	invoicedomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/invoice/domain"
	ledgerdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/domain"
	paymentdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/payment/domain"
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
	Clock      clock.Clock
	Repo       ledgerdomain.Repository
	InvoiceSvc invoicedomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	clock      clock.Clock
	repo       ledgerdomain.Repository
	invoiceSvc invoicedomain.Service
}

func NewService(p ServiceParam) paymentdomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("payment.service"),
		clock:      p.Clock,
		repo:       p.Repo,
		invoiceSvc: p.InvoiceSvc,
	}
}

func (s *Service) WithTx(tx *gorm.DB) paymentdomain.Service {
	if tx == nil {
		return s
	}
	clone := *s
	clone.db = tx
	clone.invoiceSvc = s.invoiceSvc.WithTx(tx)
	return &clone
}

func (s *Service) PaymentsForInvoice(ctx context.Context, invoiceID snowflake.ID) ([]paymentdomain.Payment, error) {
	payments, err := s.repo.ListPayments(ctx, s.db, ledgerdomain.PaymentFilter{InvoiceID: &invoiceID})
	if err != nil {
		return nil, fmt.Errorf("list payments for invoice %s: %w", invoiceID, err)
	}
	return payments, nil
}

func (s *Service) SumPaymentsForInvoice(ctx context.Context, invoiceID snowflake.ID) (decimal.Decimal, error) {
	return s.sum(ctx, ledgerdomain.PaymentFilter{InvoiceID: &invoiceID})
}

func (s *Service) PaymentsForClient(ctx context.Context, clientID snowflake.ID) ([]paymentdomain.Payment, error) {
	payments, err := s.repo.ListPayments(ctx, s.db, ledgerdomain.PaymentFilter{ClientID: &clientID})
	if err != nil {
		return nil, fmt.Errorf("list payments for client %s: %w", clientID, err)
	}
	return payments, nil
}

func (s *Service) SumPaymentsForClient(ctx context.Context, clientID snowflake.ID) (decimal.Decimal, error) {
	return s.sum(ctx, ledgerdomain.PaymentFilter{ClientID: &clientID})
}

func (s *Service) PaymentsByReference(ctx context.Context, reference string) ([]paymentdomain.Payment, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, paymentdomain.ErrInvalidReference
	}
	payments, err := s.repo.ListPayments(ctx, s.db, ledgerdomain.PaymentFilter{Reference: reference})
	if err != nil {
		return nil, fmt.Errorf("list payments by reference: %w", err)
	}
	return payments, nil
}

func (s *Service) ClientBalance(ctx context.Context, clientID snowflake.ID) (decimal.Decimal, error) {
	return s.clientBalance(ctx, clientID, nil)
}

func (s *Service) ClientPastDueBalance(ctx context.Context, clientID snowflake.ID) (decimal.Decimal, error) {
	dueBefore := clock.Today(s.clock).AddDate(0, 0, 1)
	return s.clientBalance(ctx, clientID, &dueBefore)
}

// clientBalance computes paid-invoiced over billable invoices and flips the sign so
// that a positive figure is owed by the client.
func (s *Service) clientBalance(ctx context.Context, clientID snowflake.ID, dueBefore *time.Time) (decimal.Decimal, error) {
	invoices, err := s.repo.ListInvoices(ctx, s.db, ledgerdomain.InvoiceFilter{
		ClientID:     &clientID,
		DueBefore:    dueBefore,
		BillableOnly: true,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("list invoices for client %s: %w", clientID, err)
	}
	if len(invoices) == 0 {
		return decimal.Zero, nil
	}

	invoiced := decimal.Zero
	for _, inv := range invoices {
		total, err := s.invoiceSvc.InvoiceTotal(ctx, inv.ID)
		if err != nil {
			return decimal.Zero, err
		}
		invoiced = invoiced.Add(total)
	}

	paid, err := s.sum(ctx, ledgerdomain.PaymentFilter{
		ClientID:     &clientID,
		DueBefore:    dueBefore,
		BillableOnly: true,
	})
	if err != nil {
		return decimal.Zero, err
	}

	return money.Round(paid.Sub(invoiced).Neg()), nil
}

func (s *Service) sum(ctx context.Context, filter ledgerdomain.PaymentFilter) (decimal.Decimal, error) {
	amounts, err := s.repo.PaymentAmounts(ctx, s.db, filter)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}
	return money.Sum(amounts...), nil
}
