package server

import (
	"time"

	ageingdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ageing/domain"
	clientdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/client/domain"
	forecastdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/forecast/domain"
	invoicedomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/invoice/domain"
	paymentdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/payment/domain"
	taxdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/tax/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/db/pagination"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/money"
	"github.com/shopspring/decimal"
)

// amount renders money at reporting precision.
func amount(d decimal.Decimal) string {
	return money.Round(d).StringFixed(money.ReportPlaces)
}

type paymentView struct {
	ID        string    `json:"id"`
	InvoiceID string    `json:"invoice_id"`
	Amount    string    `json:"amount"`
	PaidAt    time.Time `json:"paid_at"`
	Reference *string   `json:"reference,omitempty"`
}

func toPaymentViews(payments []paymentdomain.Payment) []paymentView {
	views := make([]paymentView, 0, len(payments))
	for _, p := range payments {
		views = append(views, paymentView{
			ID:        p.ID.String(),
			InvoiceID: p.InvoiceID.String(),
			Amount:    amount(p.Amount),
			PaidAt:    p.PaidAt,
			Reference: p.Reference,
		})
	}
	return views
}

type lineView struct {
	LineItemID string `json:"line_item_id"`
	Name       string `json:"name"`
	TaxName    string `json:"tax_name"`
	TaxPercent string `json:"tax_percent"`
	Subtotal   string `json:"subtotal"`
	Tax        string `json:"tax"`
	Total      string `json:"total"`
}

type invoiceSummaryView struct {
	InvoiceID string     `json:"invoice_id"`
	ClientID  string     `json:"client_id"`
	Status    string     `json:"status"`
	Lines     []lineView `json:"lines"`
	Subtotal  string     `json:"subtotal"`
	Tax       string     `json:"tax"`
	Total     string     `json:"total"`
	Paid      string     `json:"paid"`
	Balance   string     `json:"balance"`
}

func toInvoiceSummaryView(s invoicedomain.Summary) invoiceSummaryView {
	view := invoiceSummaryView{
		InvoiceID: s.InvoiceID.String(),
		ClientID:  s.ClientID.String(),
		Status:    s.Status,
		Lines:     make([]lineView, 0, len(s.Lines)),
		Subtotal:  amount(s.Subtotal),
		Tax:       amount(s.Tax),
		Total:     amount(s.Total),
		Paid:      amount(s.Paid),
		Balance:   amount(s.Balance),
	}
	for _, line := range s.Lines {
		view.Lines = append(view.Lines, lineView{
			LineItemID: line.LineItemID.String(),
			Name:       line.Name,
			TaxName:    line.TaxName,
			TaxPercent: line.TaxPercent.String(),
			Subtotal:   amount(line.Subtotal),
			Tax:        amount(line.Tax),
			Total:      amount(line.Total),
		})
	}
	return view
}

type bucketView struct {
	Label    string `json:"label"`
	FromDays int    `json:"from_days"`
	ToDays   *int   `json:"to_days"`
	Balance  string `json:"balance"`
}

type ageingView struct {
	ClientID string       `json:"client_id"`
	AsOf     string       `json:"as_of"`
	Buckets  []bucketView `json:"buckets"`
	Total    string       `json:"total"`
}

func toAgeingView(r ageingdomain.Report) ageingView {
	view := ageingView{
		ClientID: r.ClientID.String(),
		AsOf:     r.AsOf.Format(time.DateOnly),
		Buckets:  make([]bucketView, 0, len(r.Buckets)),
		Total:    amount(r.Total),
	}
	for _, b := range r.Buckets {
		view.Buckets = append(view.Buckets, bucketView{
			Label:    b.Label,
			FromDays: b.FromDays,
			ToDays:   b.ToDays,
			Balance:  amount(b.Balance),
		})
	}
	return view
}

type clientSummaryView struct {
	ClientID         string     `json:"client_id"`
	Name             string     `json:"name"`
	Balance          string     `json:"balance"`
	PastDue          string     `json:"past_due"`
	MonthlyRecurring string     `json:"monthly_recurring"`
	Ageing           ageingView `json:"ageing"`
}

func toClientSummaryView(s clientdomain.Summary) clientSummaryView {
	return clientSummaryView{
		ClientID:         s.ClientID.String(),
		Name:             s.Name,
		Balance:          amount(s.Balance),
		PastDue:          amount(s.PastDue),
		MonthlyRecurring: amount(s.MonthlyRecurring),
		Ageing:           toAgeingView(s.Ageing),
	}
}

type collectionsEntryView struct {
	ClientID string `json:"client_id"`
	Name     string `json:"name"`
	Balance  string `json:"balance"`
	PastDue  string `json:"past_due"`
}

type collectionsView struct {
	Entries []collectionsEntryView `json:"entries"`
	pagination.PageInfo
}

func toCollectionsView(page clientdomain.CollectionsPage) collectionsView {
	view := collectionsView{
		Entries:  make([]collectionsEntryView, 0, len(page.Entries)),
		PageInfo: page.PageInfo,
	}
	for _, e := range page.Entries {
		view.Entries = append(view.Entries, collectionsEntryView{
			ClientID: e.ClientID.String(),
			Name:     e.Name,
			Balance:  amount(e.Balance),
			PastDue:  amount(e.PastDue),
		})
	}
	return view
}

type taxReportView struct {
	Year                     int                          `json:"year"`
	Month                    *int                         `json:"month,omitempty"`
	MonthlyFractionalPayment map[int]map[string]string    `json:"monthly_fractional_payment"`
	MonthlyTaxOwed           map[int]map[string]string    `json:"monthly_tax_owed"`
	Totals                   map[string]map[string]string `json:"totals"`
}

func toTaxReportView(r taxdomain.Report) taxReportView {
	return taxReportView{
		Year:                     r.Year,
		Month:                    r.Month,
		MonthlyFractionalPayment: monthlyView(r.MonthlyFractionalPayment),
		MonthlyTaxOwed:           monthlyView(r.MonthlyTaxOwed),
		Totals: map[string]map[string]string{
			"fractional_payment": totalsView(r.MonthlyFractionalPayment),
			"tax_owed":           totalsView(r.MonthlyTaxOwed),
		},
	}
}

func monthlyView(m taxdomain.MonthlyAmounts) map[int]map[string]string {
	out := make(map[int]map[string]string, len(m))
	for month, byTax := range m {
		row := make(map[string]string, len(byTax))
		for name, value := range byTax {
			row[name] = amount(value)
		}
		out[month] = row
	}
	return out
}

// totalsView sums each tax name across months before rounding.
func totalsView(m taxdomain.MonthlyAmounts) map[string]string {
	sums := map[string]decimal.Decimal{}
	for _, byTax := range m {
		for name, value := range byTax {
			sums[name] = sums[name].Add(value)
		}
	}
	out := make(map[string]string, len(sums))
	for name, value := range sums {
		out[name] = amount(value)
	}
	return out
}

type sampleView struct {
	Index    int    `json:"index"`
	Year     int    `json:"year"`
	Month    int    `json:"month"`
	Income   string `json:"income"`
	Expenses string `json:"expenses"`
	Profit   string `json:"profit"`
	Empty    bool   `json:"empty"`
}

func toSampleViews(samples []forecastdomain.Sample) []sampleView {
	views := make([]sampleView, 0, len(samples))
	for _, s := range samples {
		views = append(views, sampleView{
			Index:    s.Index,
			Year:     s.Year,
			Month:    int(s.Month),
			Income:   amount(s.Income),
			Expenses: amount(s.Expenses),
			Profit:   amount(s.Profit),
			Empty:    s.Empty,
		})
	}
	return views
}

type forecastView struct {
	Year          int       `json:"year"`
	Month         int       `json:"month"`
	Value         string    `json:"value"`
	Base          string    `json:"base"`
	LastYear      string    `json:"last_year"`
	Coefficients  []float64 `json:"coefficients,omitempty"`
	Samples       int       `json:"samples"`
	MissingMonths string    `json:"missing_months"`
	Fallback      bool      `json:"fallback"`
}

func toForecastView(f forecastdomain.Forecast) forecastView {
	return forecastView{
		Year:          f.Year,
		Month:         int(f.Month),
		Value:         amount(f.Value),
		Base:          amount(f.Base),
		LastYear:      amount(f.LastYear),
		Coefficients:  f.Coefficients,
		Samples:       f.Samples,
		MissingMonths: f.Policy,
		Fallback:      f.Fallback,
	}
}
