package service

import (
	"context"
	"testing"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/config"
	invoicedomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/invoice/domain"
	ledgerdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/ledgertest"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
)

func newTestService(t *testing.T, l *ledgertest.Ledger) invoicedomain.Service {
	return NewService(ServiceParam{
		DB:         l.DB,
		Log:        zaptest.NewLogger(t),
		Repo:       repository.Provide(),
		Accounting: config.NewStaticAccountingConfig(config.DefaultAccountingConfig()),
	})
}

func TestInvoiceTotalSimpleInvoice(t *testing.T) {
	l := ledgertest.New(t)
	svc := newTestService(t, l)

	client := l.Client("Acme")
	vat := l.Tax("Sales", "8")
	inv := l.Invoice(client, ledgerdomain.StatusSent, ledgertest.Date(2024, 3, 1))
	l.Line(inv, "100", 2, "10", &vat)

	total, err := svc.InvoiceTotal(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "205.2", total.String())
}

func TestDocumentTotalRoundsOnceAfterSumming(t *testing.T) {
	l := ledgertest.New(t)
	svc := newTestService(t, l)

	client := l.Client("Acme")
	tax := l.Tax("Levy", "50")
	inv := l.Invoice(client, ledgerdomain.StatusSent, ledgertest.Date(2024, 3, 1))
	// 1.005 per line: rounding each line first would give 2.02
	l.Line(inv, "0.67", 1, "0", &tax)
	l.Line(inv, "0.67", 1, "0", &tax)

	total, err := svc.InvoiceTotal(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "2.01", total.String())
}

func TestDocumentWithoutItemsTotalsZero(t *testing.T) {
	l := ledgertest.New(t)
	svc := newTestService(t, l)

	client := l.Client("Acme")
	inv := l.Invoice(client, ledgerdomain.StatusSent, ledgertest.Date(2024, 3, 1))

	total, err := svc.InvoiceTotal(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	balance, err := svc.InvoiceBalance(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestQuoteTotal(t *testing.T) {
	l := ledgertest.New(t)
	svc := newTestService(t, l)

	client := l.Client("Acme")
	tax := l.Tax("VAT", "20")
	q := l.Quote(client, ledgertest.Date(2024, 4, 1))
	l.QuoteLine(q, "50", 3, "0", &tax)
	l.QuoteLine(q, "12.5", 2, "5", nil)

	total, err := svc.QuoteTotal(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, "200", total.String())

	viaRef, err := svc.DocumentTotal(context.Background(), invoicedomain.QuoteRef(q.ID))
	require.NoError(t, err)
	assert.True(t, total.Equal(viaRef))
}

func TestUnknownDocument(t *testing.T) {
	l := ledgertest.New(t)
	svc := newTestService(t, l)

	_, err := svc.InvoiceTotal(context.Background(), 4242)
	assert.ErrorIs(t, err, invoicedomain.ErrDocumentNotFound)

	_, err = svc.QuoteTotal(context.Background(), 4242)
	assert.ErrorIs(t, err, invoicedomain.ErrDocumentNotFound)

	_, err = svc.InvoiceBalance(context.Background(), 4242)
	assert.ErrorIs(t, err, invoicedomain.ErrDocumentNotFound)

	_, err = svc.DocumentTotal(context.Background(), invoicedomain.DocumentRef{Kind: "order", ID: 1})
	assert.ErrorIs(t, err, invoicedomain.ErrInvalidDocumentKind)
}

func TestInvoiceBalance(t *testing.T) {
	l := ledgertest.New(t)
	svc := newTestService(t, l)
	ctx := context.Background()

	client := l.Client("Acme")
	tax := l.Tax("Sales", "8")
	inv := l.Invoice(client, ledgerdomain.StatusPartial, ledgertest.Date(2024, 3, 1))
	l.Line(inv, "100", 2, "10", &tax)
	l.Payment(inv, "100", ledgertest.Date(2024, 3, 10))

	balance, err := svc.InvoiceBalance(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "105.2", balance.String())

	again, err := svc.InvoiceBalance(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(again))

	l.Payment(inv, "105.19", ledgertest.Date(2024, 3, 20))
	balance, err = svc.InvoiceBalance(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, balance.IsZero(), "0.01 residue is within tolerance, got %s", balance)
}

func TestInvoiceBalanceOverpaymentIsNegative(t *testing.T) {
	l := ledgertest.New(t)
	svc := newTestService(t, l)

	client := l.Client("Acme")
	inv := l.Invoice(client, ledgerdomain.StatusPaid, ledgertest.Date(2024, 3, 1))
	l.Line(inv, "10", 1, "0", nil)
	l.Payment(inv, "15", ledgertest.Date(2024, 3, 2))

	balance, err := svc.InvoiceBalance(context.Background(), inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "-5", balance.String())
}

func TestSummary(t *testing.T) {
	l := ledgertest.New(t)
	svc := newTestService(t, l)

	client := l.Client("Acme")
	tax := l.Tax("Sales", "8")
	inv := l.Invoice(client, ledgerdomain.StatusPartial, ledgertest.Date(2024, 3, 1))
	l.Line(inv, "100", 2, "10", &tax)
	l.Line(inv, "20", 1, "0", nil)
	l.Payment(inv, "50", ledgertest.Date(2024, 3, 3))

	summary, err := svc.Summary(context.Background(), inv.ID)
	require.NoError(t, err)

	require.Len(t, summary.Lines, 2)
	assert.Equal(t, "Sales", summary.Lines[0].TaxName)
	assert.Equal(t, ledgerdomain.NoTaxName, summary.Lines[1].TaxName)
	assert.Equal(t, "210", summary.Subtotal.String())
	assert.Equal(t, "15.2", summary.Tax.String())
	assert.Equal(t, "225.2", summary.Total.String())
	assert.Equal(t, "50", summary.Paid.String())
	assert.Equal(t, "175.2", summary.Balance.String())
	assert.Equal(t, client.ID, summary.ClientID)
}

func TestWithTxReadsThroughTransaction(t *testing.T) {
	l := ledgertest.New(t)
	svc := newTestService(t, l)

	client := l.Client("Acme")
	inv := l.Invoice(client, ledgerdomain.StatusSent, ledgertest.Date(2024, 3, 1))
	l.Line(inv, "10", 1, "0", nil)

	err := l.DB.Transaction(func(tx *gorm.DB) error {
		total, err := svc.WithTx(tx).InvoiceTotal(context.Background(), inv.ID)
		require.NoError(t, err)
		assert.Equal(t, "10", total.String())
		return nil
	})
	require.NoError(t, err)
}
