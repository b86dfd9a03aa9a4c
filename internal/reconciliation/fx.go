package reconciliation

import (
	apartmentdomain "github.com/parima/rentledger/internal/apartment/domain"
	loandomain "github.com/parima/rentledger/internal/loan/domain"
	maintenancedomain "github.com/parima/rentledger/internal/maintenance/domain"
	paymentdomain "github.com/parima/rentledger/internal/payment/domain"
	"github.com/parima/rentledger/internal/reconciliation/service"
	tenantdomain "github.com/parima/rentledger/internal/tenant/domain"
	"github.com/parima/rentledger/pkg/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("reconciliation.service",
	fx.Provide(
		repository.ProvideStore[tenantdomain.Tenant],
		repository.ProvideStore[apartmentdomain.Apartment],
		repository.ProvideStore[paymentdomain.RentPayment],
		repository.ProvideStore[maintenancedomain.MaintenanceCharge],
		repository.ProvideStore[loandomain.Loan],
	),
	fx.Provide(service.New),
)
