package apartment

import (
	"github.com/parima/rentledger/internal/apartment/repository"
	"github.com/parima/rentledger/internal/apartment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("apartment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
