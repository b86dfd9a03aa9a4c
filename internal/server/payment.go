package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	paymentdomain "github.com/parima/rentledger/internal/payment/domain"
	"github.com/parima/rentledger/pkg/db/pagination"
)

// parseOptionalDate accepts RFC3339 timestamps and bare dates. Empty input
// means the caller wants the server-side default.
func parseOptionalDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return &ts, nil
	}
	ts, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

type createPaymentRequest struct {
	TenantID    string `json:"tenant_id"`
	AmountCents int64  `json:"amount_cents"`
	PaymentType string `json:"payment_type"`
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
	PaymentDate string `json:"payment_date"`
	Note        string `json:"note"`
}

func (s *Server) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	paymentDate, err := parseOptionalDate(req.PaymentDate)
	if err != nil {
		AbortWithError(c, newValidationError("payment_date", "invalid_date", "invalid date"))
		return
	}

	resp, err := s.paymentSvc.Create(c.Request.Context(), paymentdomain.CreatePaymentRequest{
		TenantID:    strings.TrimSpace(req.TenantID),
		AmountCents: req.AmountCents,
		PaymentType: strings.TrimSpace(req.PaymentType),
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		PaymentDate: paymentDate,
		Note:        strings.TrimSpace(req.Note),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPayments(c *gin.Context) {
	var query struct {
		pagination.Pagination
		TenantID    string `form:"tenant_id"`
		PaymentType string `form:"payment_type"`
		PeriodYear  int    `form:"period_year"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.paymentSvc.List(c.Request.Context(), paymentdomain.ListPaymentRequest{
		PageToken:   query.PageToken,
		PageSize:    int32(query.PageSize),
		TenantID:    strings.TrimSpace(query.TenantID),
		PaymentType: strings.TrimSpace(query.PaymentType),
		PeriodYear:  query.PeriodYear,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetPaymentByID(c *gin.Context) {
	resp, err := s.paymentSvc.GetByID(c.Request.Context(), paymentdomain.GetPaymentRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
