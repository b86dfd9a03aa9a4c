package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	reconciliationdomain "github.com/parima/rentledger/internal/reconciliation/domain"
)

func (s *Server) GetReconciliationPeriods(c *gin.Context) {
	var query struct {
		Year int `form:"year"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.reconciliationSvc.Periods(c.Request.Context(), reconciliationdomain.PeriodsRequest{
		Year: query.Year,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetInvoice(c *gin.Context) {
	var query struct {
		TenantID string `form:"tenant_id"`
		Year     int    `form:"year"`
		Month    int    `form:"month"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.reconciliationSvc.Invoice(c.Request.Context(), reconciliationdomain.InvoiceRequest{
		TenantID: strings.TrimSpace(query.TenantID),
		Year:     query.Year,
		Month:    query.Month,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetCumulativeBalance(c *gin.Context) {
	var query struct {
		TenantID     string `form:"tenant_id"`
		Year         int    `form:"year"`
		Month        int    `form:"month"`
		BaselineYear int    `form:"baseline_year"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.reconciliationSvc.Balance(c.Request.Context(), reconciliationdomain.BalanceRequest{
		TenantID:     strings.TrimSpace(query.TenantID),
		ThroughYear:  query.Year,
		ThroughMonth: query.Month,
		BaselineYear: query.BaselineYear,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetYearSummary(c *gin.Context) {
	var query struct {
		Year int `form:"year"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.reconciliationSvc.Summary(c.Request.Context(), reconciliationdomain.SummaryRequest{
		Year: query.Year,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
