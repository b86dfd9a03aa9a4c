package tenant

import (
	"github.com/parima/rentledger/internal/tenant/repository"
	"github.com/parima/rentledger/internal/tenant/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tenant.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
