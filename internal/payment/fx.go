package payment

import (
	"github.com/parima/rentledger/internal/payment/repository"
	"github.com/parima/rentledger/internal/payment/service"
	"go.uber.org/fx"
)

var Module = fx.Module("payment.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
