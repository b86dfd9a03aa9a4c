package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	maintenancedomain "github.com/parima/rentledger/internal/maintenance/domain"
	"github.com/parima/rentledger/pkg/db/pagination"
)

type createMaintenanceChargeRequest struct {
	TenantID    string         `json:"tenant_id"`
	CostCents   int64          `json:"cost_cents"`
	CostType    string         `json:"cost_type"`
	OccurredOn  string         `json:"occurred_on"`
	Description string         `json:"description"`
	Metadata    map[string]any `json:"metadata"`
}

func (s *Server) CreateMaintenanceCharge(c *gin.Context) {
	var req createMaintenanceChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	occurredOn, err := parseOptionalDate(req.OccurredOn)
	if err != nil {
		AbortWithError(c, newValidationError("occurred_on", "invalid_date", "invalid date"))
		return
	}

	resp, err := s.maintenanceSvc.Create(c.Request.Context(), maintenancedomain.CreateChargeRequest{
		TenantID:    strings.TrimSpace(req.TenantID),
		CostCents:   req.CostCents,
		CostType:    strings.TrimSpace(req.CostType),
		OccurredOn:  occurredOn,
		Description: strings.TrimSpace(req.Description),
		Metadata:    req.Metadata,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListMaintenanceCharges(c *gin.Context) {
	var query struct {
		pagination.Pagination
		TenantID string `form:"tenant_id"`
		CostType string `form:"cost_type"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.maintenanceSvc.List(c.Request.Context(), maintenancedomain.ListChargeRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		TenantID:  strings.TrimSpace(query.TenantID),
		CostType:  strings.TrimSpace(query.CostType),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetMaintenanceChargeByID(c *gin.Context) {
	resp, err := s.maintenanceSvc.GetByID(c.Request.Context(), maintenancedomain.GetChargeRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
