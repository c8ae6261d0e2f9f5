package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/db/pagination"
	"github.com/bwmarrin/snowflake"
	"github.com/spf13/cobra"
)

func parseClientID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(value)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid client id %q", value)
	}
	return id, nil
}

func newBalanceCmd(opts *options) *cobra.Command {
	var pastDue bool
	cmd := &cobra.Command{
		Use:   "balance <client-id>",
		Short: "Print the outstanding balance of a client",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseClientID(args[0])
			if err != nil {
				return err
			}
			return opts.withServices(cmd, func(ctx context.Context, svc *Services) error {
				balance, err := svc.Payment.ClientBalance(ctx, id)
				if err != nil {
					return err
				}
				view := balanceView{ClientID: id.String(), Balance: amount(balance)}
				if pastDue {
					due, err := svc.Payment.ClientPastDueBalance(ctx, id)
					if err != nil {
						return err
					}
					view.PastDue = amount(due)
				}
				return write(cmd.OutOrStdout(), opts.format, view, balanceMarkdown(view))
			})
		},
	}
	cmd.Flags().BoolVar(&pastDue, "past-due", false, "include the past-due balance")
	return cmd
}

func newAgeingCmd(opts *options) *cobra.Command {
	var fromDays, toDays int
	cmd := &cobra.Command{
		Use:   "ageing <client-id>",
		Short: "Print the ageing report of a client, or one window with --from-days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseClientID(args[0])
			if err != nil {
				return err
			}
			window := cmd.Flags().Changed("from-days")
			if !window && cmd.Flags().Changed("to-days") {
				return fmt.Errorf("--to-days requires --from-days")
			}
			return opts.withServices(cmd, func(ctx context.Context, svc *Services) error {
				if window {
					var to *int
					if cmd.Flags().Changed("to-days") {
						to = &toDays
					}
					balance, err := svc.Ageing.Balance(ctx, id, fromDays, to)
					if err != nil {
						return err
					}
					view := windowView{ClientID: id.String(), FromDays: fromDays, ToDays: to, Balance: amount(balance)}
					return write(cmd.OutOrStdout(), opts.format, view, windowMarkdown(view))
				}

				report, err := svc.Ageing.Report(ctx, id)
				if err != nil {
					return err
				}
				return write(cmd.OutOrStdout(), opts.format, report, ageingMarkdown(report))
			})
		},
	}
	cmd.Flags().IntVar(&fromDays, "from-days", 0, "window start in days ago")
	cmd.Flags().IntVar(&toDays, "to-days", 0, "window end in days ago, open ended when omitted")
	return cmd
}

func newTaxCmd(opts *options) *cobra.Command {
	var year, month int
	cmd := &cobra.Command{
		Use:   "tax",
		Short: "Print fractional payments and tax owed per month and tax",
		RunE: func(cmd *cobra.Command, args []string) error {
			var m *int
			if cmd.Flags().Changed("month") {
				m = &month
			}
			return opts.withServices(cmd, func(ctx context.Context, svc *Services) error {
				report, err := svc.Tax.Report(ctx, year, m)
				if err != nil {
					return err
				}
				return write(cmd.OutOrStdout(), opts.format, report, taxMarkdown(report))
			})
		},
	}
	cmd.Flags().IntVar(&year, "year", time.Now().UTC().Year(), "report year")
	cmd.Flags().IntVar(&month, "month", 0, "restrict the report to one month (1-12)")
	return cmd
}

func newForecastCmd(opts *options) *cobra.Command {
	var year, month, history int
	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast the profit of a month from the trailing history",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withServices(cmd, func(ctx context.Context, svc *Services) error {
				forecast, err := svc.Forecast.Forecast(ctx, year, month)
				if err != nil {
					return err
				}
				if history <= 0 {
					return write(cmd.OutOrStdout(), opts.format, forecast, forecastMarkdown(forecast, nil))
				}

				samples, err := svc.Forecast.History(ctx, year, month, history)
				if err != nil {
					return err
				}
				view := struct {
					Forecast any `json:"forecast"`
					History  any `json:"history"`
				}{forecast, samples}
				return write(cmd.OutOrStdout(), opts.format, view, forecastMarkdown(forecast, samples))
			})
		},
	}
	now := time.Now().UTC()
	cmd.Flags().IntVar(&year, "year", now.Year(), "forecast year")
	cmd.Flags().IntVar(&month, "month", int(now.Month()), "forecast month (1-12)")
	cmd.Flags().IntVar(&history, "history", 0, "also print this many months of history")
	return cmd
}

func newCollectionsCmd(opts *options) *cobra.Command {
	var page pagination.Pagination
	cmd := &cobra.Command{
		Use:   "collections",
		Short: "List client balances one page at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withServices(cmd, func(ctx context.Context, svc *Services) error {
				report, err := svc.Client.CollectionsReport(ctx, page)
				if err != nil {
					return err
				}
				return write(cmd.OutOrStdout(), opts.format, report, collectionsMarkdown(report))
			})
		},
	}
	cmd.Flags().StringVar(&page.PageToken, "page-token", "", "token from a previous page")
	cmd.Flags().IntVar(&page.PageSize, "page-size", pagination.DefaultPageSize, "clients per page")
	return cmd
}
