package cli

import (
	"context"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ageing"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/client"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/clock"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/config"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/forecast"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/invoice"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/payment"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/tax"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/db"
	"go.uber.org/fx"
)

// LoadServices starts a headless fx app with the ledger services and no HTTP server.
func LoadServices(ctx context.Context) (*Services, func(), error) {
	var svc Services
	app := fx.New(
		fx.NopLogger,
		config.Module,
		observability.Module,
		db.Module,
		clock.Module,
		ledgerstore.Module,
		invoice.Module,
		payment.Module,
		ageing.Module,
		tax.Module,
		forecast.Module,
		client.Module,
		fx.Populate(&svc),
	)
	if err := app.Start(ctx); err != nil {
		return nil, nil, err
	}

	release := func() {
		_ = app.Stop(context.Background())
	}
	return &svc, release, nil
}
