package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) GetTariffs(c *gin.Context) {
	tables := s.tariffSvc.Tables(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"data": tables})
}
