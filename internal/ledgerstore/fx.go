package ledgerstore

import (
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/ledgerstore/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("ledgerstore",
	fx.Provide(repository.Provide),
)
