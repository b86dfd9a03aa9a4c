package meterreading

import (
	"github.com/parima/rentledger/internal/meterreading/repository"
	"github.com/parima/rentledger/internal/meterreading/service"
	"go.uber.org/fx"
)

var Module = fx.Module("meterreading.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
