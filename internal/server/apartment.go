package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	apartmentdomain "github.com/parima/rentledger/internal/apartment/domain"
	tariffdomain "github.com/parima/rentledger/internal/tariff/domain"
	"github.com/parima/rentledger/pkg/db/pagination"
)

type createApartmentRequest struct {
	Label           string `json:"label"`
	RentAmountCents int64  `json:"rent_amount_cents"`
	Currency        string `json:"currency"`
}

func (s *Server) CreateApartment(c *gin.Context) {
	var req createApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.apartmentSvc.Create(c.Request.Context(), apartmentdomain.CreateApartmentRequest{
		Label:           strings.TrimSpace(req.Label),
		RentAmountCents: req.RentAmountCents,
		Currency:        strings.TrimSpace(req.Currency),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListApartments(c *gin.Context) {
	var query struct {
		pagination.Pagination
		TenantID     string `form:"tenant_id"`
		AssignedOnly bool   `form:"assigned_only"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.apartmentSvc.List(c.Request.Context(), apartmentdomain.ListApartmentRequest{
		PageToken:    query.PageToken,
		PageSize:     int32(query.PageSize),
		TenantID:     strings.TrimSpace(query.TenantID),
		AssignedOnly: query.AssignedOnly,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetApartmentByID(c *gin.Context) {
	resp, err := s.apartmentSvc.GetByID(c.Request.Context(), apartmentdomain.GetApartmentRequest{
		ID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type assignTenantRequest struct {
	TenantID string `json:"tenant_id"`
}

func (s *Server) AssignTenant(c *gin.Context) {
	var req assignTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.apartmentSvc.AssignTenant(c.Request.Context(), apartmentdomain.AssignTenantRequest{
		ApartmentID: strings.TrimSpace(c.Param("id")),
		TenantID:    strings.TrimSpace(req.TenantID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UnassignTenant(c *gin.Context) {
	resp, err := s.apartmentSvc.UnassignTenant(c.Request.Context(), apartmentdomain.UnassignTenantRequest{
		ApartmentID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type updateRentRequest struct {
	RentAmountCents int64 `json:"rent_amount_cents"`
}

func (s *Server) UpdateApartmentRent(c *gin.Context) {
	var req updateRentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.apartmentSvc.UpdateRent(c.Request.Context(), apartmentdomain.UpdateRentRequest{
		ApartmentID:     strings.TrimSpace(c.Param("id")),
		RentAmountCents: req.RentAmountCents,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetApartmentUtilityCosts(c *gin.Context) {
	resp, err := s.tariffSvc.ApartmentUtilityCosts(c.Request.Context(), tariffdomain.ApartmentUtilityCostsRequest{
		ApartmentID: strings.TrimSpace(c.Param("id")),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
