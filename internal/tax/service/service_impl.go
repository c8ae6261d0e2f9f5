package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	invoicedomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/invoice/domain"
	ledgerdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/domain"
	obslogger "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/logger"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/metrics"
	taxdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/tax/domain"
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
	InvoiceSvc invoicedomain.Service
	Metrics    *metrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	repo       ledgerdomain.Repository
	invoiceSvc invoicedomain.Service
	metrics    *metrics.Metrics
}

func NewService(p ServiceParam) taxdomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("tax.service"),
		repo:       p.Repo,
		invoiceSvc: p.InvoiceSvc,
		metrics:    p.Metrics,
	}
}

func (s *Service) WithTx(tx *gorm.DB) taxdomain.Service {
	if tx == nil {
		return s
	}
	clone := *s
	clone.db = tx
	clone.invoiceSvc = s.invoiceSvc.WithTx(tx)
	return &clone
}

type pricedInvoice struct {
	lines []invoicedomain.Line
	total decimal.Decimal
}

func (s *Service) Report(ctx context.Context, year int, month *int) (taxdomain.Report, error) {
	from, before, err := period(year, month)
	if err != nil {
		return taxdomain.Report{}, err
	}

	payments, err := s.repo.ListPayments(ctx, s.db, ledgerdomain.PaymentFilter{
		PaidFrom:   &from,
		PaidBefore: &before,
	})
	if err != nil {
		return taxdomain.Report{}, fmt.Errorf("list payments for tax report: %w", err)
	}

	report := taxdomain.Report{
		Year:                     year,
		Month:                    month,
		MonthlyFractionalPayment: taxdomain.MonthlyAmounts{},
		MonthlyTaxOwed:           taxdomain.MonthlyAmounts{},
	}

	invoices := make(map[snowflake.ID]pricedInvoice)
	for _, payment := range payments {
		inv, ok := invoices[payment.InvoiceID]
		if !ok {
			lines, err := s.invoiceSvc.Lines(ctx, invoicedomain.InvoiceRef(payment.InvoiceID))
			if errors.Is(err, invoicedomain.ErrDocumentNotFound) {
				obslogger.WithContext(ctx, s.log).Warn("payment references missing invoice",
					zap.String("payment_id", payment.ID.String()),
					zap.String("invoice_id", payment.InvoiceID.String()),
				)
				continue
			}
			if err != nil {
				return taxdomain.Report{}, err
			}
			inv = pricedInvoice{lines: lines, total: invoicedomain.TotalOf(lines)}
			invoices[payment.InvoiceID] = inv
		}

		percentPaid := money.SafeDiv(payment.Amount, inv.total)
		paidMonth := int(payment.PaidAt.UTC().Month())
		for _, line := range inv.lines {
			fractional := line.Subtotal.Mul(percentPaid)
			report.MonthlyFractionalPayment.Add(paidMonth, line.TaxName, fractional)
			report.MonthlyTaxOwed.Add(paidMonth, line.TaxName, fractional.Mul(money.Percent(line.TaxPercent)))
		}
	}

	s.metrics.RecordReport(ctx, "tax")
	return report, nil
}

// period returns [from, before) covering the year, or one month of it.
func period(year int, month *int) (time.Time, time.Time, error) {
	if year < 1 || year > 9999 {
		return time.Time{}, time.Time{}, taxdomain.ErrInvalidYear
	}
	if month == nil {
		from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(1, 0, 0), nil
	}
	if *month < 1 || *month > 12 {
		return time.Time{}, time.Time{}, taxdomain.ErrInvalidMonth
	}
	from := time.Date(year, time.Month(*month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0), nil
}
