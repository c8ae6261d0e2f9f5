package tax

import (
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/tax/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tax.service",
	fx.Provide(service.NewService),
)
