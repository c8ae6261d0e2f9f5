package statement

import (
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/statement/pdf"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/statement/service"
	"go.uber.org/fx"
)

var Module = fx.Module("statement.service",
	fx.Provide(pdf.NewRenderer),
	fx.Provide(service.NewService),
)
