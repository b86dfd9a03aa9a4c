package service

import (
	"go.uber.org/fx"
)

var Module = fx.Module("tariff.service",
	fx.Provide(New),
)
