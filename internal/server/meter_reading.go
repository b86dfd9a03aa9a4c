package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	meterdomain "github.com/parima/rentledger/internal/meterreading/domain"
	"github.com/parima/rentledger/pkg/db/pagination"
)

type createMeterReadingRequest struct {
	ApartmentID string `json:"apartment_id"`
	ReadingDate string `json:"reading_date"`
	EBSReading  int64  `json:"ebs_reading"`
	SWMReading  int64  `json:"swm_reading"`
}

func (s *Server) CreateMeterReading(c *gin.Context) {
	var req createMeterReadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	readingDate, err := parseOptionalDate(req.ReadingDate)
	if err != nil {
		AbortWithError(c, newValidationError("reading_date", "invalid_date", "invalid date"))
		return
	}

	resp, err := s.meterReadingSvc.Create(c.Request.Context(), meterdomain.CreateReadingRequest{
		ApartmentID: strings.TrimSpace(req.ApartmentID),
		ReadingDate: readingDate,
		EBSReading:  req.EBSReading,
		SWMReading:  req.SWMReading,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListMeterReadings(c *gin.Context) {
	var query struct {
		pagination.Pagination
		ApartmentID string `form:"apartment_id"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.meterReadingSvc.List(c.Request.Context(), meterdomain.ListReadingRequest{
		PageToken:   query.PageToken,
		PageSize:    int32(query.PageSize),
		ApartmentID: strings.TrimSpace(query.ApartmentID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
