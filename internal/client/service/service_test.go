package service

import (
	"context"
	"testing"
	"time"

	ageingservice "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ageing/service"
	clientdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/client/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/clock"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/config"
	invoiceservice "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/invoice/service"
	ledgerdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/ledgertest"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/repository"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/metrics"
	paymentservice "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/payment/service"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var today = ledgertest.Date(2024, 6, 30)

func newService(t *testing.T) (*ledgertest.Ledger, clientdomain.Service) {
	l := ledgertest.New(t)
	repo := repository.Provide()
	clk := clock.NewFakeClock(today.Add(9 * time.Hour))
	accounting := config.NewStaticAccountingConfig(config.DefaultAccountingConfig())

	invoiceSvc := invoiceservice.NewService(invoiceservice.ServiceParam{
		DB: l.DB, Log: zap.NewNop(), Repo: repo, Accounting: accounting,
	})
	paymentSvc := paymentservice.NewService(paymentservice.ServiceParam{
		DB: l.DB, Log: zap.NewNop(), Clock: clk, Repo: repo, InvoiceSvc: invoiceSvc,
	})
	ageingSvc := ageingservice.NewService(ageingservice.ServiceParam{
		DB: l.DB, Log: zap.NewNop(), Clock: clk, Repo: repo, InvoiceSvc: invoiceSvc, Accounting: accounting,
	})
	return l, NewService(ServiceParam{
		DB:         l.DB,
		Log:        zap.NewNop(),
		Repo:       repo,
		PaymentSvc: paymentSvc,
		AgeingSvc:  ageingSvc,
		Metrics:    metrics.NewNoop(),
	})
}

func TestMonthlyRecurringAmount(t *testing.T) {
	l, svc := newService(t)
	ctx := context.Background()

	client := l.Client("Acme")
	other := l.Client("Globex")
	l.Subscribe(client, l.Product("Backup", "49.99"), 3)
	l.Subscribe(client, l.Product("Monitoring", "15"), 2)
	l.Subscribe(other, l.Product("Support", "500"), 1)

	got, err := svc.MonthlyRecurringAmount(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "179.97", got.StringFixed(2))

	got, err = svc.MonthlyRecurringAmount(ctx, l.Client("Initech").ID)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestSummary(t *testing.T) {
	l, svc := newService(t)
	ctx := context.Background()

	client := l.Client("Acme")
	old := l.InvoiceDue(client, ledgerdomain.StatusSent, today.AddDate(0, 0, -45), today.AddDate(0, 0, -15))
	l.Line(old, "300", 1, "0", nil)
	l.Payment(old, "100", today.AddDate(0, 0, -10))

	recent := l.InvoiceDue(client, ledgerdomain.StatusSent, today.AddDate(0, 0, -5), today.AddDate(0, 0, 25))
	l.Line(recent, "50", 1, "0", nil)

	draft := l.Invoice(client, ledgerdomain.StatusDraft, today.AddDate(0, 0, -5))
	l.Line(draft, "999", 1, "0", nil)

	l.Subscribe(client, l.Product("Backup", "20"), 1)

	summary, err := svc.Summary(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, client.ID, summary.ClientID)
	assert.Equal(t, "Acme", summary.Name)
	assert.Equal(t, "250.00", summary.Balance.StringFixed(2))
	assert.Equal(t, "200.00", summary.PastDue.StringFixed(2))
	assert.Equal(t, "20.00", summary.MonthlyRecurring.StringFixed(2))
	require.Len(t, summary.Ageing.Buckets, 4)
	assert.Equal(t, "50.00", summary.Ageing.Buckets[0].Balance.StringFixed(2))
	assert.Equal(t, "200.00", summary.Ageing.Buckets[1].Balance.StringFixed(2))
}

func TestSummaryUnknownClient(t *testing.T) {
	_, svc := newService(t)

	_, err := svc.Summary(context.Background(), snowflake.ID(42))
	assert.ErrorIs(t, err, clientdomain.ErrClientNotFound)
}

func TestCollectionsReportPages(t *testing.T) {
	l, svc := newService(t)
	ctx := context.Background()

	names := []string{"Acme", "Globex", "Initech"}
	for i, name := range names {
		client := l.Client(name)
		inv := l.Invoice(client, ledgerdomain.StatusSent, today.AddDate(0, 0, -60))
		l.Line(inv, "100", int64(i+1), "0", nil)
	}

	first, err := svc.CollectionsReport(ctx, pagination.Pagination{PageSize: 2})
	require.NoError(t, err)
	require.Len(t, first.Entries, 2)
	assert.True(t, first.HasMore)
	assert.NotEmpty(t, first.NextPageToken)
	assert.Equal(t, "Acme", first.Entries[0].Name)
	assert.Equal(t, "100.00", first.Entries[0].Balance.StringFixed(2))
	assert.Equal(t, "100.00", first.Entries[0].PastDue.StringFixed(2))

	second, err := svc.CollectionsReport(ctx, pagination.Pagination{PageSize: 2, PageToken: first.NextPageToken})
	require.NoError(t, err)
	require.Len(t, second.Entries, 1)
	assert.False(t, second.HasMore)
	assert.Equal(t, "Initech", second.Entries[0].Name)
	assert.Equal(t, "300.00", second.Entries[0].Balance.StringFixed(2))
}

func TestCollectionsReportInvalidToken(t *testing.T) {
	_, svc := newService(t)

	_, err := svc.CollectionsReport(context.Background(), pagination.Pagination{PageToken: "%%%"})
	assert.ErrorIs(t, err, pagination.ErrInvalidPageToken)
}
