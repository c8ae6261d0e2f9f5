package service

import (
	"context"
	"testing"
	"time"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/config"
	invoicedomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/invoice/domain"
	invoiceservice "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/invoice/service"
	ledgerdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/ledgertest"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/repository"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/metrics"
	taxdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/tax/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/money"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fixture struct {
	ledger   *ledgertest.Ledger
	svc      taxdomain.Service
	invoices invoicedomain.Service
}

func newFixture(t *testing.T) fixture {
	l := ledgertest.New(t)
	repo := repository.Provide()
	invoiceSvc := invoiceservice.NewService(invoiceservice.ServiceParam{
		DB:         l.DB,
		Log:        zaptest.NewLogger(t),
		Repo:       repo,
		Accounting: config.NewStaticAccountingConfig(config.DefaultAccountingConfig()),
	})
	return fixture{
		ledger: l,
		svc: NewService(ServiceParam{
			DB:         l.DB,
			Log:        zaptest.NewLogger(t),
			Repo:       repo,
			InvoiceSvc: invoiceSvc,
			Metrics:    metrics.NewNoop(),
		}),
		invoices: invoiceSvc,
	}
}

func monthPtr(m int) *int { return &m }

func TestPartialPaymentApportionment(t *testing.T) {
	f := newFixture(t)
	client := f.ledger.Client("Acme")
	sales := f.ledger.Tax("Sales", "8")
	inv := f.ledger.Invoice(client, ledgerdomain.StatusPartial, ledgertest.Date(2024, 3, 1))
	f.ledger.Line(inv, "100", 2, "10", &sales)
	f.ledger.Payment(inv, "100", ledgertest.Date(2024, 3, 15))

	report, err := f.svc.Report(context.Background(), 2024, nil)
	require.NoError(t, err)

	// 100 / 205.20 settles 48.73% of the invoice
	fractional := report.MonthlyFractionalPayment[3]["Sales"]
	owed := report.MonthlyTaxOwed[3]["Sales"]
	assert.Equal(t, "92.59", money.Round(fractional).String())
	assert.Equal(t, "7.41", money.Round(owed).String())
	assert.Len(t, report.MonthlyTaxOwed, 1)
}

func TestFullPaymentRecoversLineTax(t *testing.T) {
	f := newFixture(t)
	client := f.ledger.Client("Acme")
	sales := f.ledger.Tax("Sales", "8")
	inv := f.ledger.Invoice(client, ledgerdomain.StatusPaid, ledgertest.Date(2024, 3, 1))
	f.ledger.Line(inv, "100", 2, "10", &sales)
	f.ledger.Payment(inv, "205.20", ledgertest.Date(2024, 4, 2))

	report, err := f.svc.Report(context.Background(), 2024, nil)
	require.NoError(t, err)
	assert.Equal(t, "190", money.Round(report.MonthlyFractionalPayment[4]["Sales"]).String())
	assert.Equal(t, "15.2", money.Round(report.MonthlyTaxOwed[4]["Sales"]).String())
}

func TestUntaxedLinesAccumulateUnderNoTax(t *testing.T) {
	f := newFixture(t)
	client := f.ledger.Client("Acme")
	sales := f.ledger.Tax("Sales", "10")
	inv := f.ledger.Invoice(client, ledgerdomain.StatusPaid, ledgertest.Date(2024, 1, 1))
	f.ledger.Line(inv, "100", 1, "0", &sales) // 110
	f.ledger.Line(inv, "90", 1, "0", nil)     // 90
	f.ledger.Payment(inv, "200", ledgertest.Date(2024, 2, 1))

	report, err := f.svc.Report(context.Background(), 2024, nil)
	require.NoError(t, err)

	assert.Equal(t, "90", money.Round(report.MonthlyFractionalPayment[2][ledgerdomain.NoTaxName]).String())
	assert.True(t, report.MonthlyTaxOwed[2][ledgerdomain.NoTaxName].IsZero())
	assert.Equal(t, "10", money.Round(report.MonthlyTaxOwed[2]["Sales"]).String())
}

func TestTaxConservation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.ledger.Client("Acme")
	gst := f.ledger.Tax("GST", "5")
	pst := f.ledger.Tax("PST", "7.5")

	first := f.ledger.Invoice(client, ledgerdomain.StatusPartial, ledgertest.Date(2024, 1, 10))
	f.ledger.Line(first, "19.99", 3, "1.50", &gst)
	f.ledger.Line(first, "250", 1, "0", &pst)
	f.ledger.Line(first, "12.34", 2, "0", nil)
	second := f.ledger.Invoice(client, ledgerdomain.StatusPartial, ledgertest.Date(2024, 2, 10))
	f.ledger.Line(second, "333.33", 1, "3.33", &pst)

	payments := []ledgerdomain.Payment{
		f.ledger.Payment(first, "77.77", ledgertest.Date(2024, 1, 20)),
		f.ledger.Payment(first, "101.01", ledgertest.Date(2024, 2, 5)),
		f.ledger.Payment(second, "150", ledgertest.Date(2024, 3, 1)),
		f.ledger.Payment(second, "42.42", ledgertest.Date(2024, 11, 30)),
	}

	report, err := f.svc.Report(ctx, 2024, nil)
	require.NoError(t, err)

	expected := decimal.Zero
	for _, payment := range payments {
		summary, err := f.invoices.Summary(ctx, payment.InvoiceID)
		require.NoError(t, err)
		tax := decimal.Zero
		for _, line := range summary.Lines {
			tax = tax.Add(line.Tax)
		}
		blendedRate := tax.Div(summary.Total)
		expected = expected.Add(payment.Amount.Mul(blendedRate))
	}

	diff := report.MonthlyTaxOwed.Total().Sub(expected).Abs()
	assert.True(t, diff.LessThan(decimal.New(1, -9)), "tax owed %s expected %s", report.MonthlyTaxOwed.Total(), expected)
	assert.Len(t, report.MonthlyTaxOwed, 4)
}

func TestMonthFilterAndYearBoundaries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	client := f.ledger.Client("Acme")
	vat := f.ledger.Tax("VAT", "20")
	inv := f.ledger.Invoice(client, ledgerdomain.StatusPartial, ledgertest.Date(2023, 12, 1))
	f.ledger.Line(inv, "100", 1, "0", &vat)
	f.ledger.Payment(inv, "12", ledgertest.Date(2023, 12, 31))
	f.ledger.Payment(inv, "24", ledgertest.Date(2024, 1, 1))
	f.ledger.Payment(inv, "36", ledgertest.Date(2024, 2, 29))

	january, err := f.svc.Report(ctx, 2024, monthPtr(1))
	require.NoError(t, err)
	require.Len(t, january.MonthlyTaxOwed, 1)
	assert.Equal(t, "4", money.Round(january.MonthlyTaxOwed[1]["VAT"]).String())

	year, err := f.svc.Report(ctx, 2024, nil)
	require.NoError(t, err)
	assert.Len(t, year.MonthlyTaxOwed, 2)
	assert.Equal(t, "10", money.Round(year.MonthlyTaxOwed.Total()).String())
}

func TestOffsetPaymentTimesFallInTheirUTCMonth(t *testing.T) {
	f := newFixture(t)
	client := f.ledger.Client("Acme")
	vat := f.ledger.Tax("VAT", "20")
	inv := f.ledger.Invoice(client, ledgerdomain.StatusPartial, ledgertest.Date(2023, 12, 1))
	f.ledger.Line(inv, "100", 1, "0", &vat)
	// 2024-01-01 01:00 UTC and 2024-01-31 22:00 UTC
	f.ledger.Payment(inv, "24", time.Date(2023, 12, 31, 20, 0, 0, 0, time.FixedZone("EST", -5*3600)))
	f.ledger.Payment(inv, "36", time.Date(2024, 2, 1, 1, 0, 0, 0, time.FixedZone("MSK", 3*3600)))

	january, err := f.svc.Report(context.Background(), 2024, monthPtr(1))
	require.NoError(t, err)
	require.Len(t, january.MonthlyTaxOwed, 1)
	assert.Equal(t, "50", money.Round(january.MonthlyFractionalPayment[1]["VAT"]).String())
	assert.Equal(t, "10", money.Round(january.MonthlyTaxOwed[1]["VAT"]).String())
}

func TestZeroTotalInvoiceDoesNotDivideByZero(t *testing.T) {
	f := newFixture(t)
	client := f.ledger.Client("Acme")
	vat := f.ledger.Tax("VAT", "20")
	inv := f.ledger.Invoice(client, ledgerdomain.StatusSent, ledgertest.Date(2024, 5, 1))
	f.ledger.Line(inv, "10", 1, "10", &vat)
	f.ledger.Payment(inv, "5", ledgertest.Date(2024, 5, 2))

	report, err := f.svc.Report(context.Background(), 2024, nil)
	require.NoError(t, err)
	assert.True(t, report.MonthlyFractionalPayment.Total().IsZero())
	assert.True(t, report.MonthlyTaxOwed.Total().IsZero())
}

func TestReportRejectsInvalidPeriod(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Report(context.Background(), 2024, monthPtr(13))
	assert.ErrorIs(t, err, taxdomain.ErrInvalidMonth)

	_, err = f.svc.Report(context.Background(), 0, nil)
	assert.ErrorIs(t, err, taxdomain.ErrInvalidYear)
}
