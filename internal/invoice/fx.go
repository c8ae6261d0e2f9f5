package invoice

import (
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(service.NewService),
)
