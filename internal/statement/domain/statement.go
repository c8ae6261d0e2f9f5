package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
)

type AgeingRow struct {
	Label   string
	Balance string
}

type InvoiceRow struct {
	Number   string
	Status   string
	IssuedAt time.Time
	DueAt    time.Time
	Total    string
	Balance  string
}

type PaymentRow struct {
	InvoiceNumber string
	PaidAt        time.Time
	Reference     string
	Amount        string
}

// StatementData carries display-ready figures for one client statement.
type StatementData struct {
	ClientID         snowflake.ID
	ClientName       string
	AsOf             time.Time
	Currency         string
	Balance          string
	PastDue          string
	MonthlyRecurring string
	Ageing           []AgeingRow
	Invoices         []InvoiceRow
	Payments         []PaymentRow
}

type Renderer interface {
	Render(ctx context.Context, data StatementData) ([]byte, error)
}

type Service interface {
	Build(ctx context.Context, clientID snowflake.ID) (StatementData, error)
	// Render builds the statement and renders it as a PDF document.
	Render(ctx context.Context, clientID snowflake.ID) ([]byte, error)
}
