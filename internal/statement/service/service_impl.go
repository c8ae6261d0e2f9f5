package service

import (
	"context"
	"fmt"

	clientdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/client/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/config"
	invoicedomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/invoice/domain"
	ledgerdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/domain"
	obscontext "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/context"
	obslogger "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/logger"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/metrics"
	paymentdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/payment/domain"
	statementdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/statement/domain"
	pkgmoney "github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/money"
	"github.com/Rhymond/go-money"
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
	PaymentSvc paymentdomain.Service
	ClientSvc  clientdomain.Service
	Renderer   statementdomain.Renderer
	Accounting *config.AccountingConfigHolder
	Metrics    *metrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	repo       ledgerdomain.Repository
	invoiceSvc invoicedomain.Service
	paymentSvc paymentdomain.Service
	clientSvc  clientdomain.Service
	renderer   statementdomain.Renderer
	accounting *config.AccountingConfigHolder
	metrics    *metrics.Metrics
}

func NewService(p ServiceParam) statementdomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("statement.service"),
		repo:       p.Repo,
		invoiceSvc: p.InvoiceSvc,
		paymentSvc: p.PaymentSvc,
		clientSvc:  p.ClientSvc,
		renderer:   p.Renderer,
		accounting: p.Accounting,
		metrics:    p.Metrics,
	}
}

func (s *Service) Build(ctx context.Context, clientID snowflake.ID) (statementdomain.StatementData, error) {
	summary, err := s.clientSvc.Summary(ctx, clientID)
	if err != nil {
		return statementdomain.StatementData{}, err
	}

	currency := s.currency()
	data := statementdomain.StatementData{
		ClientID:         summary.ClientID,
		ClientName:       summary.Name,
		AsOf:             summary.Ageing.AsOf,
		Currency:         currency,
		Balance:          Format(summary.Balance, currency),
		PastDue:          Format(summary.PastDue, currency),
		MonthlyRecurring: Format(summary.MonthlyRecurring, currency),
	}
	for _, bucket := range summary.Ageing.Buckets {
		data.Ageing = append(data.Ageing, statementdomain.AgeingRow{
			Label:   bucket.Label,
			Balance: Format(bucket.Balance, currency),
		})
	}

	invoices, err := s.repo.ListInvoices(ctx, s.db, ledgerdomain.InvoiceFilter{
		ClientID:     &clientID,
		BillableOnly: true,
	})
	if err != nil {
		return statementdomain.StatementData{}, fmt.Errorf("list invoices for statement: %w", err)
	}

	numbers := make(map[snowflake.ID]string, len(invoices))
	for _, inv := range invoices {
		numbers[inv.ID] = invoiceNumber(inv)

		total, err := s.invoiceSvc.InvoiceTotal(ctx, inv.ID)
		if err != nil {
			return statementdomain.StatementData{}, err
		}
		balance, err := s.invoiceSvc.InvoiceBalance(ctx, inv.ID)
		if err != nil {
			return statementdomain.StatementData{}, err
		}
		data.Invoices = append(data.Invoices, statementdomain.InvoiceRow{
			Number:   numbers[inv.ID],
			Status:   string(inv.Status),
			IssuedAt: inv.IssuedAt,
			DueAt:    inv.DueAt,
			Total:    Format(total, currency),
			Balance:  Format(balance, currency),
		})
	}

	payments, err := s.paymentSvc.PaymentsForClient(ctx, clientID)
	if err != nil {
		return statementdomain.StatementData{}, err
	}
	for _, payment := range payments {
		number, ok := numbers[payment.InvoiceID]
		if !ok {
			number = payment.InvoiceID.String()
		}
		row := statementdomain.PaymentRow{
			InvoiceNumber: number,
			PaidAt:        payment.PaidAt,
			Amount:        Format(payment.Amount, currency),
		}
		if payment.Reference != nil {
			row.Reference = *payment.Reference
		}
		data.Payments = append(data.Payments, row)
	}

	return data, nil
}

func (s *Service) Render(ctx context.Context, clientID snowflake.ID) ([]byte, error) {
	ctx, scope := obscontext.WithScope(ctx)
	scope.SetEntity(obscontext.EntityClient, clientID)

	data, err := s.Build(ctx, clientID)
	if err != nil {
		return nil, err
	}

	out, err := s.renderer.Render(ctx, data)
	if err != nil {
		obslogger.WithContext(ctx, s.log).Error("render statement", zap.Error(err))
		return nil, fmt.Errorf("render statement: %w", err)
	}

	s.metrics.RecordReport(ctx, "statement")
	return out, nil
}

func (s *Service) currency() string {
	if s.accounting == nil {
		return money.USD
	}
	return s.accounting.Get().Currency
}

// Format renders an amount in the currency's display form, e.g. $1,234.50.
func Format(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		cur = money.GetCurrency(money.USD)
	}
	minor := pkgmoney.Round(amount).Shift(int32(cur.Fraction)).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}

func invoiceNumber(inv ledgerdomain.Invoice) string {
	if inv.Number != "" {
		return inv.Number
	}
	return inv.ID.String()
}
