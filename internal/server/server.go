package server

import (
	"context"
	"net/http"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/parima/rentledger/internal/apartment"
	apartmentdomain "github.com/parima/rentledger/internal/apartment/domain"
	"github.com/parima/rentledger/internal/config"
	"github.com/parima/rentledger/internal/loan"
	loandomain "github.com/parima/rentledger/internal/loan/domain"
	"github.com/parima/rentledger/internal/maintenance"
	maintenancedomain "github.com/parima/rentledger/internal/maintenance/domain"
	"github.com/parima/rentledger/internal/meterreading"
	meterdomain "github.com/parima/rentledger/internal/meterreading/domain"
	"github.com/parima/rentledger/internal/observability"
	obsmiddleware "github.com/parima/rentledger/internal/observability/logger"
	obsmetrics "github.com/parima/rentledger/internal/observability/metrics"
	obstracing "github.com/parima/rentledger/internal/observability/tracing"
	"github.com/parima/rentledger/internal/payment"
	paymentdomain "github.com/parima/rentledger/internal/payment/domain"
	"github.com/parima/rentledger/internal/reconciliation"
	reconciliationdomain "github.com/parima/rentledger/internal/reconciliation/domain"
	"github.com/parima/rentledger/internal/tariff"
	tariffdomain "github.com/parima/rentledger/internal/tariff/domain"
	tariffservice "github.com/parima/rentledger/internal/tariff/service"
	"github.com/parima/rentledger/internal/tenant"
	tenantdomain "github.com/parima/rentledger/internal/tenant/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	tenant.Module,
	apartment.Module,
	payment.Module,
	maintenance.Module,
	loan.Module,
	meterreading.Module,
	tariff.Module,
	tariffservice.Module,
	reconciliation.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine
	cfg    config.Config
	db     *gorm.DB
	genID  *snowflake.Node

	tenantSvc         tenantdomain.Service
	apartmentSvc      apartmentdomain.Service
	paymentSvc        paymentdomain.Service
	maintenanceSvc    maintenancedomain.Service
	loanSvc           loandomain.Service
	meterReadingSvc   meterdomain.Service
	reconciliationSvc reconciliationdomain.Service
	tariffSvc         tariffdomain.Service
}

type ServerParams struct {
	fx.In

	Gin   *gin.Engine
	Cfg   config.Config
	DB    *gorm.DB
	GenID *snowflake.Node

	TenantSvc         tenantdomain.Service
	ApartmentSvc      apartmentdomain.Service
	PaymentSvc        paymentdomain.Service
	MaintenanceSvc    maintenancedomain.Service
	LoanSvc           loandomain.Service
	MeterReadingSvc   meterdomain.Service
	ReconciliationSvc reconciliationdomain.Service
	TariffSvc         tariffdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:            p.Gin,
		cfg:               p.Cfg,
		db:                p.DB,
		genID:             p.GenID,
		tenantSvc:         p.TenantSvc,
		apartmentSvc:      p.ApartmentSvc,
		paymentSvc:        p.PaymentSvc,
		maintenanceSvc:    p.MaintenanceSvc,
		loanSvc:           p.LoanSvc,
		meterReadingSvc:   p.MeterReadingSvc,
		reconciliationSvc: p.ReconciliationSvc,
		tariffSvc:         p.TariffSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	// -------- Tenants --------
	api.GET("/tenants", s.ListTenants)
	api.POST("/tenants", s.CreateTenant)
	api.GET("/tenants/:id", s.GetTenantByID)
	api.DELETE("/tenants/:id", s.DeleteTenant)

	// -------- Apartments --------
	api.GET("/apartments", s.ListApartments)
	api.POST("/apartments", s.CreateApartment)
	api.GET("/apartments/:id", s.GetApartmentByID)
	api.POST("/apartments/:id/assign", s.AssignTenant)
	api.POST("/apartments/:id/unassign", s.UnassignTenant)
	api.PATCH("/apartments/:id/rent", s.UpdateApartmentRent)
	api.GET("/apartments/:id/utility-costs", s.GetApartmentUtilityCosts)

	// -------- Payments --------
	api.GET("/payments", s.ListPayments)
	api.POST("/payments", s.CreatePayment)
	api.GET("/payments/:id", s.GetPaymentByID)

	// -------- Maintenance --------
	api.GET("/maintenance-charges", s.ListMaintenanceCharges)
	api.POST("/maintenance-charges", s.CreateMaintenanceCharge)
	api.GET("/maintenance-charges/:id", s.GetMaintenanceChargeByID)

	// -------- Loans --------
	api.GET("/loans", s.ListLoans)
	api.POST("/loans", s.CreateLoan)
	api.GET("/loans/:id", s.GetLoanByID)

	// -------- Meter readings --------
	api.GET("/meter-readings", s.ListMeterReadings)
	api.POST("/meter-readings", s.CreateMeterReading)

	// -------- Reconciliation --------
	api.GET("/reconciliation/periods", s.GetReconciliationPeriods)
	api.GET("/reconciliation/invoices", s.GetInvoice)
	api.GET("/reconciliation/balance", s.GetCumulativeBalance)
	api.GET("/reconciliation/summary", s.GetYearSummary)

	// -------- Tariffs --------
	api.GET("/tariffs", s.GetTariffs)
}
