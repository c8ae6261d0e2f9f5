package client

import (
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/client/service"
	"go.uber.org/fx"
)

var Module = fx.Module("client.service",
	fx.Provide(service.NewService),
)
