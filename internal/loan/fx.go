package loan

import (
	"github.com/parima/rentledger/internal/loan/repository"
	"github.com/parima/rentledger/internal/loan/service"
	"go.uber.org/fx"
)

var Module = fx.Module("loan.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
