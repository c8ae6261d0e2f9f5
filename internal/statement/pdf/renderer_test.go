package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/statement/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderProducesPDF(t *testing.T) {
	asOf := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	out, err := NewRenderer().Render(context.Background(), domain.StatementData{
		ClientID:         1,
		ClientName:       "Acme",
		AsOf:             asOf,
		Currency:         "USD",
		Balance:          "$250.00",
		PastDue:          "$200.00",
		MonthlyRecurring: "$20.00",
		Ageing:           []domain.AgeingRow{{Label: "0-30", Balance: "$50.00"}},
		Invoices: []domain.InvoiceRow{{
			Number: "INV-1", Status: "sent", IssuedAt: asOf, DueAt: asOf, Total: "$300.00", Balance: "$200.00",
		}},
		Payments: []domain.PaymentRow{{InvoiceNumber: "INV-1", PaidAt: asOf, Amount: "$100.00"}},
	})
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderRequiresClientName(t *testing.T) {
	_, err := NewRenderer().Render(context.Background(), domain.StatementData{})
	assert.Error(t, err)
}

func TestRenderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRenderer().Render(ctx, domain.StatementData{ClientName: "Acme"})
	assert.ErrorIs(t, err, context.Canceled)
}
