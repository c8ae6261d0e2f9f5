package pdf

import (
	"context"
	"errors"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/statement/domain"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const dateLayout = "2006-01-02"

var (
	header = props.Text{Style: fontstyle.Bold, Size: 9}
	cell   = props.Text{Size: 9}
	amount = props.Text{Size: 9, Align: align.Right}
)

type Renderer struct{}

func NewRenderer() domain.Renderer {
	return &Renderer{}
}

func (r *Renderer) Render(ctx context.Context, data domain.StatementData) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if data.ClientName == "" {
		return nil, errors.New("statement client name is required")
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, "Statement of account", props.Text{Size: 18, Style: fontstyle.Bold}),
		text.NewCol(4, "As of "+data.AsOf.Format(dateLayout), props.Text{Size: 10, Align: align.Right, Top: 3}),
	)
	m.AddRow(16,
		col.New(6).Add(
			text.New(data.ClientName, props.Text{Style: fontstyle.Bold}),
			text.New("Client "+data.ClientID.String(), props.Text{Top: 5, Size: 9}),
		),
		col.New(6).Add(
			text.New("Balance "+data.Balance, props.Text{Align: align.Right, Style: fontstyle.Bold}),
			text.New("Past due "+data.PastDue, props.Text{Top: 5, Size: 9, Align: align.Right}),
			text.New("Monthly recurring "+data.MonthlyRecurring, props.Text{Top: 9, Size: 9, Align: align.Right}),
		),
	)

	addAgeing(m, data.Ageing)
	addInvoices(m, data.Invoices)
	addPayments(m, data.Payments)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func section(m core.Maroto, title string) {
	m.AddRow(12, text.NewCol(12, title, props.Text{Size: 12, Style: fontstyle.Bold, Top: 4}))
	m.AddRow(2, line.NewCol(12))
}

func addAgeing(m core.Maroto, rows []domain.AgeingRow) {
	if len(rows) == 0 {
		return
	}
	section(m, "Ageing")
	for _, row := range rows {
		m.AddRow(6,
			text.NewCol(8, row.Label+" days", cell),
			text.NewCol(4, row.Balance, amount),
		)
	}
}

func addInvoices(m core.Maroto, rows []domain.InvoiceRow) {
	section(m, "Invoices")
	m.AddRow(7,
		text.NewCol(3, "Number", header),
		text.NewCol(2, "Status", header),
		text.NewCol(2, "Issued", header),
		text.NewCol(2, "Due", header),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(1, "Open", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	if len(rows) == 0 {
		m.AddRow(6, text.NewCol(12, "No invoices", cell))
		return
	}
	for _, row := range rows {
		m.AddRow(6,
			text.NewCol(3, row.Number, cell),
			text.NewCol(2, row.Status, cell),
			text.NewCol(2, row.IssuedAt.Format(dateLayout), cell),
			text.NewCol(2, row.DueAt.Format(dateLayout), cell),
			text.NewCol(2, row.Total, amount),
			text.NewCol(1, row.Balance, amount),
		)
	}
}

func addPayments(m core.Maroto, rows []domain.PaymentRow) {
	section(m, "Payments")
	if len(rows) == 0 {
		m.AddRow(6, text.NewCol(12, "No payments", cell))
		return
	}
	for _, row := range rows {
		m.AddRow(6,
			text.NewCol(3, row.PaidAt.Format(dateLayout), cell),
			text.NewCol(3, row.InvoiceNumber, cell),
			text.NewCol(3, row.Reference, cell),
			text.NewCol(3, row.Amount, amount),
		)
	}
}
