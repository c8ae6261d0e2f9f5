// Package cli implements ledgerctl, a command line front end for the ledger reports.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	ageingdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ageing/domain"
	clientdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/client/domain"
	forecastdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/forecast/domain"
	obscontext "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/context"
	paymentdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/payment/domain"
	taxdomain "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/tax/domain"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var version = "0.1.0"

const (
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Services are the ledger services the commands read from.
type Services struct {
	fx.In

	Payment  paymentdomain.Service
	Ageing   ageingdomain.Service
	Tax      taxdomain.Service
	Forecast forecastdomain.Service
	Client   clientdomain.Service
}

// Loader opens the ledger and returns its services with a release func.
type Loader func(ctx context.Context) (*Services, func(), error)

type options struct {
	format string
	load   Loader
}

func NewRootCmd(load Loader) *cobra.Command {
	opts := &options{load: load}

	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Query client balances, ageing, tax and forecast reports",
		Long: `ledgerctl reads the ledger database configured through the DATABASE_*
environment variables and prints financial reports as JSON or markdown.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case FormatJSON, FormatMarkdown:
				return nil
			default:
				return fmt.Errorf("unsupported format %q", opts.format)
			}
		},
	}
	root.PersistentFlags().StringVarP(&opts.format, "format", "f", FormatJSON, "output format: json or markdown")

	root.AddCommand(
		newBalanceCmd(opts),
		newAgeingCmd(opts),
		newTaxCmd(opts),
		newForecastCmd(opts),
		newCollectionsCmd(opts),
	)
	return root
}

func Execute() {
	if err := NewRootCmd(LoadServices).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// withServices runs fn against freshly loaded services and releases them afterwards.
func (o *options) withServices(cmd *cobra.Command, fn func(ctx context.Context, svc *Services) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()
	ctx, scope := obscontext.WithScope(ctx)
	scope.SetReport(cmd.Name())

	svc, release, err := o.load(ctx)
	if err != nil {
		return err
	}
	defer release()

	return fn(ctx, svc)
}
