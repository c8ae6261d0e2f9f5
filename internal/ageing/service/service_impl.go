package service

import (
	"context"
	"fmt"
	"time"

	ageingdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ageing/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/clock"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/config"
	invoicedomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/invoice/domain"
	ledgerdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/metrics"
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
	Accounting *config.AccountingConfigHolder
	Metrics    *metrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	clock      clock.Clock
	repo       ledgerdomain.Repository
	invoiceSvc invoicedomain.Service
	accounting *config.AccountingConfigHolder
	metrics    *metrics.Metrics
}

func NewService(p ServiceParam) ageingdomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("ageing.service"),
		clock:      p.Clock,
		repo:       p.Repo,
		invoiceSvc: p.InvoiceSvc,
		accounting: p.Accounting,
		metrics:    p.Metrics,
	}
}

func (s *Service) WithTx(tx *gorm.DB) ageingdomain.Service {
	if tx == nil {
		return s
	}
	clone := *s
	clone.db = tx
	clone.invoiceSvc = s.invoiceSvc.WithTx(tx)
	return &clone
}

func (s *Service) Balance(ctx context.Context, clientID snowflake.ID, fromDays int, toDays *int) (decimal.Decimal, error) {
	return s.balance(ctx, clientID, clock.Today(s.clock), fromDays, toDays)
}

func (s *Service) Report(ctx context.Context, clientID snowflake.ID) (ageingdomain.Report, error) {
	today := clock.Today(s.clock)
	buckets := config.DefaultAccountingConfig().AgeingBuckets
	if s.accounting != nil {
		buckets = s.accounting.Get().AgeingBuckets
	}

	report := ageingdomain.Report{
		ClientID: clientID,
		AsOf:     today,
		Buckets:  make([]ageingdomain.Bucket, 0, len(buckets)),
		Total:    decimal.Zero,
	}
	for _, bucket := range buckets {
		balance, err := s.balance(ctx, clientID, today, bucket.FromDays, bucket.ToDays)
		if err != nil {
			return ageingdomain.Report{}, err
		}
		report.Buckets = append(report.Buckets, ageingdomain.Bucket{
			Label:    bucket.Label,
			FromDays: bucket.FromDays,
			ToDays:   bucket.ToDays,
			Balance:  balance,
		})
		report.Total = report.Total.Add(balance)
	}

	s.metrics.RecordReport(ctx, "ageing")
	return report, nil
}

func (s *Service) balance(ctx context.Context, clientID snowflake.ID, today time.Time, fromDays int, toDays *int) (decimal.Decimal, error) {
	from, before := Window(today, fromDays, toDays)
	if !from.Before(before) {
		return decimal.Zero, nil
	}

	invoices, err := s.repo.ListInvoices(ctx, s.db, ledgerdomain.InvoiceFilter{
		ClientID:     &clientID,
		IssuedFrom:   &from,
		IssuedBefore: &before,
		BillableOnly: true,
	})
	if err != nil {
		return decimal.Zero, fmt.Errorf("list invoices for ageing: %w", err)
	}

	total := decimal.Zero
	for _, inv := range invoices {
		balance, err := s.invoiceSvc.InvoiceBalance(ctx, inv.ID)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(balance)
	}
	return total, nil
}

// Window converts a days-ago range into issue date bounds [from, before). toDays nil
// reaches back to the epoch.
func Window(today time.Time, fromDays int, toDays *int) (time.Time, time.Time) {
	before := today.AddDate(0, 0, 1-fromDays)
	from := ageingdomain.Epoch
	if toDays != nil {
		from = today.AddDate(0, 0, 1-*toDays)
	}
	return from, before
}
