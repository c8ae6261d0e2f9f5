package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"

	ageingdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ageing/domain"
	clientdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/client/domain"
	forecastdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/forecast/domain"
	taxdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/tax/domain"
)

func balanceMarkdown(v balanceView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Client %s\n\n", v.ClientID)
	fmt.Fprintf(&b, "| Balance | %s |\n|---|---:|\n", v.Balance)
	if v.PastDue != "" {
		fmt.Fprintf(&b, "| Past due | %s |\n", v.PastDue)
	}
	return b.String()
}

func windowMarkdown(v windowView) string {
	to := "∞"
	if v.ToDays != nil {
		to = fmt.Sprint(*v.ToDays)
	}
	return fmt.Sprintf("# Client %s\n\n| Days ago | Balance |\n|---|---:|\n| %d-%s | %s |\n",
		v.ClientID, v.FromDays, to, v.Balance)
}

func ageingMarkdown(r ageingdomain.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Ageing for client %s\n\nAs of %s\n\n", r.ClientID, r.AsOf.Format(time.DateOnly))
	b.WriteString("| Bucket | Balance |\n|---|---:|\n")
	for _, bucket := range r.Buckets {
		fmt.Fprintf(&b, "| %s | %s |\n", bucket.Label, amount(bucket.Balance))
	}
	fmt.Fprintf(&b, "| **Total** | **%s** |\n", amount(r.Total))
	return b.String()
}

func taxMarkdown(r taxdomain.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Tax report %d\n\n", r.Year)

	months := make([]int, 0, len(r.MonthlyTaxOwed))
	for month := range r.MonthlyTaxOwed {
		months = append(months, month)
	}
	sort.Ints(months)
	if len(months) == 0 {
		b.WriteString("No payments in period.\n")
		return b.String()
	}

	b.WriteString("| Month | Tax | Fractional payment | Tax owed |\n|---|---|---:|---:|\n")
	for _, month := range months {
		names := make([]string, 0, len(r.MonthlyTaxOwed[month]))
		for name := range r.MonthlyTaxOwed[month] {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
				time.Month(month), name,
				amount(r.MonthlyFractionalPayment[month][name]),
				amount(r.MonthlyTaxOwed[month][name]))
		}
	}
	fmt.Fprintf(&b, "\nTotal tax owed: **%s**\n", amount(r.MonthlyTaxOwed.Total()))
	return b.String()
}

func forecastMarkdown(f forecastdomain.Forecast, history []forecastdomain.Sample) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Forecast %s %d\n\n", f.Month, f.Year)
	b.WriteString("| | Amount |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Forecast | %s |\n", amount(f.Value))
	fmt.Fprintf(&b, "| Regression | %s |\n", amount(f.Base))
	fmt.Fprintf(&b, "| Same month last year | %s |\n", amount(f.LastYear))
	if f.Fallback {
		b.WriteString("\nRegression was singular; showing last year's figure.\n")
	}

	if len(history) > 0 {
		b.WriteString("\n## History\n\n| Month | Income | Expenses | Profit |\n|---|---:|---:|---:|\n")
		for _, s := range history {
			fmt.Fprintf(&b, "| %d-%02d | %s | %s | %s |\n",
				s.Year, int(s.Month), amount(s.Income), amount(s.Expenses), amount(s.Profit))
		}
	}
	return b.String()
}

func collectionsMarkdown(p clientdomain.CollectionsPage) string {
	var b strings.Builder
	b.WriteString("# Collections\n\n| Client | Balance | Past due |\n|---|---:|---:|\n")
	for _, e := range p.Entries {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", e.Name, amount(e.Balance), amount(e.PastDue))
	}
	if p.HasMore {
		fmt.Fprintf(&b, "\nNext page: `--page-token %s`\n", p.NextPageToken)
	}
	return b.String()
}
