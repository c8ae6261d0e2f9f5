package cli

import (
	"strings"
	"testing"

	ageingdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ageing/domain"
	clientdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/client/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/ledgertest"
	taxdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/tax/domain"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/db/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAgeingMarkdown(t *testing.T) {
	md := ageingMarkdown(ageingdomain.Report{
		ClientID: 7,
		AsOf:     ledgertest.Date(2024, 6, 30),
		Buckets: []ageingdomain.Bucket{
			{Label: "0-30", Balance: decimal.RequireFromString("50")},
			{Label: "30-60", Balance: decimal.RequireFromString("200.005")},
		},
		Total: decimal.RequireFromString("250.005"),
	})

	assert.Contains(t, md, "As of 2024-06-30")
	assert.Contains(t, md, "| 0-30 | 50.00 |")
	assert.Contains(t, md, "| 30-60 | 200.01 |")
	assert.Contains(t, md, "| **Total** | **250.01** |")
}

func TestTaxMarkdownOrdersMonthsAndTaxes(t *testing.T) {
	report := taxdomain.Report{
		Year:                     2024,
		MonthlyFractionalPayment: taxdomain.MonthlyAmounts{},
		MonthlyTaxOwed:           taxdomain.MonthlyAmounts{},
	}
	report.MonthlyFractionalPayment.Add(3, "VAT", decimal.RequireFromString("92.5925"))
	report.MonthlyTaxOwed.Add(3, "VAT", decimal.RequireFromString("7.4074"))
	report.MonthlyFractionalPayment.Add(1, "No Tax", decimal.RequireFromString("10"))
	report.MonthlyTaxOwed.Add(1, "No Tax", decimal.Zero)

	md := taxMarkdown(report)
	assert.Contains(t, md, "| January | No Tax | 10.00 | 0.00 |")
	assert.Contains(t, md, "| March | VAT | 92.59 | 7.41 |")
	assert.Less(t, strings.Index(md, "January"), strings.Index(md, "March"))
	assert.Contains(t, md, "Total tax owed: **7.41**")
}

func TestTaxMarkdownEmpty(t *testing.T) {
	md := taxMarkdown(taxdomain.Report{Year: 2024, MonthlyTaxOwed: taxdomain.MonthlyAmounts{}})
	assert.Contains(t, md, "No payments in period.")
}

func TestCollectionsMarkdownNextPage(t *testing.T) {
	md := collectionsMarkdown(clientdomain.CollectionsPage{
		Entries: []clientdomain.CollectionsEntry{
			{Name: "Acme", Balance: decimal.RequireFromString("10"), PastDue: decimal.Zero},
		},
		PageInfo: pagination.PageInfo{HasMore: true, NextPageToken: "abc"},
	})
	assert.Contains(t, md, "| Acme | 10.00 | 0.00 |")
	assert.Contains(t, md, "--page-token abc")
}
