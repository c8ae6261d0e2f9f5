package forecast

import (
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/forecast/service"
	"go.uber.org/fx"
)

var Module = fx.Module("forecast.service",
	fx.Provide(service.NewService),
)
