package service

import (
	"context"
	"fmt"

	ageingdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ageing/domain"
	clientdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/client/domain"
	ledgerdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/metrics"
	paymentdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/payment/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/db/pagination"
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
	PaymentSvc paymentdomain.Service
	AgeingSvc  ageingdomain.Service
	Metrics    *metrics.Metrics `optional:"true"`
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	repo       ledgerdomain.Repository
	paymentSvc paymentdomain.Service
	ageingSvc  ageingdomain.Service
	metrics    *metrics.Metrics
}

func NewService(p ServiceParam) clientdomain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("client.service"),
		repo:       p.Repo,
		paymentSvc: p.PaymentSvc,
		ageingSvc:  p.AgeingSvc,
		metrics:    p.Metrics,
	}
}

func (s *Service) MonthlyRecurringAmount(ctx context.Context, clientID snowflake.ID) (decimal.Decimal, error) {
	return s.monthlyRecurring(ctx, s.db, clientID)
}

func (s *Service) monthlyRecurring(ctx context.Context, db *gorm.DB, clientID snowflake.ID) (decimal.Decimal, error) {
	lines, err := s.repo.ListSubscriptionLines(ctx, db, clientID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("list subscriptions for client %s: %w", clientID, err)
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return money.Round(total), nil
}

func (s *Service) Summary(ctx context.Context, clientID snowflake.ID) (clientdomain.Summary, error) {
	var summary clientdomain.Summary
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := s.repo.FindClient(ctx, tx, clientID)
		if err != nil {
			return fmt.Errorf("find client %s: %w", clientID, err)
		}
		if client == nil {
			return clientdomain.ErrClientNotFound
		}

		payments := s.paymentSvc.WithTx(tx)
		balance, err := payments.ClientBalance(ctx, clientID)
		if err != nil {
			return err
		}
		pastDue, err := payments.ClientPastDueBalance(ctx, clientID)
		if err != nil {
			return err
		}
		ageing, err := s.ageingSvc.WithTx(tx).Report(ctx, clientID)
		if err != nil {
			return err
		}
		recurring, err := s.monthlyRecurring(ctx, tx, clientID)
		if err != nil {
			return err
		}

		summary = clientdomain.Summary{
			ClientID:         client.ID,
			Name:             client.Name,
			Balance:          balance,
			PastDue:          pastDue,
			MonthlyRecurring: recurring,
			Ageing:           ageing,
		}
		return nil
	})
	if err != nil {
		return clientdomain.Summary{}, err
	}
	return summary, nil
}

func (s *Service) CollectionsReport(ctx context.Context, page pagination.Pagination) (clientdomain.CollectionsPage, error) {
	size := page.Size()
	items, err := s.repo.ListClients(ctx, s.db, page)
	if err != nil {
		return clientdomain.CollectionsPage{}, fmt.Errorf("list clients: %w", err)
	}

	items, pageInfo := pagination.BuildCursorPageInfo(items, size, func(client *ledgerdomain.Client) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{ID: client.ID.String()})
		if err != nil {
			return ""
		}
		return token
	})

	resp := clientdomain.CollectionsPage{
		Entries:  make([]clientdomain.CollectionsEntry, 0, len(items)),
		PageInfo: *pageInfo,
	}
	for _, client := range items {
		if client == nil {
			continue
		}
		balance, err := s.paymentSvc.ClientBalance(ctx, client.ID)
		if err != nil {
			return clientdomain.CollectionsPage{}, err
		}
		pastDue, err := s.paymentSvc.ClientPastDueBalance(ctx, client.ID)
		if err != nil {
			return clientdomain.CollectionsPage{}, err
		}
		resp.Entries = append(resp.Entries, clientdomain.CollectionsEntry{
			ClientID: client.ID,
			Name:     client.Name,
			Balance:  balance,
			PastDue:  pastDue,
		})
	}

	s.metrics.RecordReport(ctx, "collections")
	return resp, nil
}
