package tariff

import (
	"go.uber.org/fx"
)

var Module = fx.Module("tariff.holder",
	fx.Provide(NewHolder),
)
