package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	loandomain "github.com/parima/rentledger/internal/loan/domain"
	"github.com/parima/rentledger/pkg/db/pagination"
)

type createLoanRequest struct {
	TenantID       string `json:"tenant_id"`
	PrincipalCents int64  `json:"principal_cents"`
	IssuedOn       string `json:"issued_on"`
	Note           string `json:"note"`
}

func (s *Server) CreateLoan(c *gin.Context) {
	var req createLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	issuedOn, err := parseOptionalDate(req.IssuedOn)
	if err != nil {
		AbortWithError(c, newValidationError("issued_on", "invalid_date", "invalid date"))
		return
	}

	resp, err := s.loanSvc.Create(c.Request.Context(), loandomain.CreateLoanRequest{
		TenantID:       strings.TrimSpace(req.TenantID),
		PrincipalCents: req.PrincipalCents,
		IssuedOn:       issuedOn,
		Note:           strings.TrimSpace(req.Note),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListLoans(c *gin.Context) {
	var query struct {
		pagination.Pagination
		TenantID string `form:"tenant_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.loanSvc.List(c.Request.Context(), loandomain.ListLoanRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		TenantID:  strings.TrimSpace(query.TenantID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetLoanByID(c *gin.Context) {
	resp, err := s.loanSvc.GetByID(c.Request.Context(), loandomain.GetLoanRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
