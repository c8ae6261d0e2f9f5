package domain

import (
	"context"

	ledgerdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/domain"
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Payment = ledgerdomain.Payment

// Service allocates payments to invoices and clients. The Sum* variants read only
// payment amounts; the list variants return full records.
type Service interface {
	WithTx(tx *gorm.DB) Service

	PaymentsForInvoice(ctx context.Context, invoiceID snowflake.ID) ([]Payment, error)
	SumPaymentsForInvoice(ctx context.Context, invoiceID snowflake.ID) (decimal.Decimal, error)
	PaymentsForClient(ctx context.Context, clientID snowflake.ID) ([]Payment, error)
	SumPaymentsForClient(ctx context.Context, clientID snowflake.ID) (decimal.Decimal, error)
	PaymentsByReference(ctx context.Context, reference string) ([]Payment, error)

	// ClientBalance is positive when the client owes money.
	ClientBalance(ctx context.Context, clientID snowflake.ID) (decimal.Decimal, error)
	// ClientPastDueBalance restricts ClientBalance to invoices due on or before today.
	ClientPastDueBalance(ctx context.Context, clientID snowflake.ID) (decimal.Decimal, error)
}
