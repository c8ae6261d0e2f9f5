package ageing

import (
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ageing/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ageing.service",
	fx.Provide(service.NewService),
)
