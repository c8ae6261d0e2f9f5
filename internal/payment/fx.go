package payment

import (
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(service.NewService),
)
