package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/money"
	"github.com/charmbracelet/glamour"
	"github.com/shopspring/decimal"
)

type balanceView struct {
	ClientID string `json:"client_id"`
	Balance  string `json:"balance"`
	PastDue  string `json:"past_due,omitempty"`
}

type windowView struct {
	ClientID string `json:"client_id"`
	FromDays int    `json:"from_days"`
	ToDays   *int   `json:"to_days"`
	Balance  string `json:"balance"`
}

func amount(d decimal.Decimal) string {
	return money.Round(d).StringFixed(money.ReportPlaces)
}

// write prints value as indented JSON, or renders markdown through glamour.
func write(w io.Writer, format string, value any, markdown string) error {
	if format == FormatMarkdown {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			return fmt.Errorf("create markdown renderer: %w", err)
		}
		out, err := r.Render(markdown)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		_, err = io.WriteString(w, out)
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
