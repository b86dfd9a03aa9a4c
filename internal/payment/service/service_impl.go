package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/parima/rentledger/internal/clock"
	"github.com/parima/rentledger/internal/payment/domain"
	"github.com/parima/rentledger/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("payment.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreatePaymentRequest) (domain.RentPayment, error) {
	tenantID, err := snowflake.ParseString(strings.TrimSpace(req.TenantID))
	if err != nil || tenantID == 0 {
		return domain.RentPayment{}, domain.ErrInvalidTenantID
	}
	if req.AmountCents <= 0 {
		return domain.RentPayment{}, domain.ErrInvalidAmount
	}

	paymentType, err := parsePaymentType(req.PaymentType)
	if err != nil {
		return domain.RentPayment{}, err
	}
	// Loan repayments carry no period fields; rent payments must
	// name the period they settle.
	if paymentType == domain.PaymentTypeRent {
		if req.PeriodMonth < 1 || req.PeriodMonth > 12 || req.PeriodYear < 1 {
			return domain.RentPayment{}, domain.ErrInvalidPeriod
		}
	}

	now := s.clock.Now()
	paymentDate := now
	if req.PaymentDate != nil && !req.PaymentDate.IsZero() {
		paymentDate = req.PaymentDate.UTC()
	}

	payment := domain.RentPayment{
		ID:          s.genID.Generate(),
		TenantID:    tenantID,
		AmountCents: req.AmountCents,
		PaymentType: paymentType,
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		PaymentDate: paymentDate,
		Note:        strings.TrimSpace(req.Note),
		CreatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &payment); err != nil {
		return domain.RentPayment{}, err
	}

	s.log.Info("payment recorded",
		zap.String("tenant_id", tenantID.String()),
		zap.String("payment_type", string(paymentType)),
		zap.Int64("amount_cents", payment.AmountCents),
	)
	return payment, nil
}

func (s *Service) List(ctx context.Context, req domain.ListPaymentRequest) (domain.ListPaymentResponse, error) {
	filter := domain.ListPaymentFilter{
		TenantID:    strings.TrimSpace(req.TenantID),
		PaymentType: strings.TrimSpace(req.PaymentType),
		PeriodYear:  req.PeriodYear,
	}

	pageSize := req.PageSize
	if pageSize <= 0 {
		pageSize = 50
	}

	items, err := s.repo.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  int(pageSize),
	})
	if err != nil {
		return domain.ListPaymentResponse{}, err
	}

	pageInfo := pagination.BuildCursorPageInfo(items, int(pageSize), func(payment *domain.RentPayment) string {
		token, err := pagination.EncodeCursor(pagination.Cursor{
			ID:        payment.ID.String(),
			CreatedAt: payment.CreatedAt.Format(time.RFC3339),
		})
		if err != nil {
			return ""
		}
		return token
	})
	if pageInfo != nil && pageInfo.HasMore && len(items) > int(pageSize) {
		items = items[:pageSize]
	}

	payments := make([]domain.RentPayment, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		payments = append(payments, *item)
	}

	resp := domain.ListPaymentResponse{Payments: payments}
	if pageInfo != nil {
		resp.PageInfo = *pageInfo
	}

	return resp, nil
}

func (s *Service) GetByID(ctx context.Context, req domain.GetPaymentRequest) (domain.RentPayment, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(req.ID))
	if err != nil || id == 0 {
		return domain.RentPayment{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.RentPayment{}, err
	}
	if item == nil {
		return domain.RentPayment{}, domain.ErrNotFound
	}

	return *item, nil
}

func parsePaymentType(value string) (domain.PaymentType, error) {
	switch domain.PaymentType(strings.ToLower(strings.TrimSpace(value))) {
	case domain.PaymentTypeLoan:
		return domain.PaymentTypeLoan, nil
	case domain.PaymentTypeRent, "":
		return domain.PaymentTypeRent, nil
	default:
		return "", domain.ErrInvalidType
	}
}
