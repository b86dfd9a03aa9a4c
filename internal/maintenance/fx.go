package maintenance

import (
	"github.com/parima/rentledger/internal/maintenance/repository"
	"github.com/parima/rentledger/internal/maintenance/service"
	"go.uber.org/fx"
)

var Module = fx.Module("maintenance.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
