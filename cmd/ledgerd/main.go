package main

import (
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/clock"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/config"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/migration"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/server"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		db.Module,
		clock.Module,
		ledgerstore.Module,
		migration.Module,

		// Report API; pulls in every ledger service module.
		server.Module,

		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
	)
	app.Run()
}
