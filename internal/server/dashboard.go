package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Dashboard Overview
// @Description  Aggregate counts and amounts across quotes, invoices, payments and projects
// @Tags         dashboard
// @Accept       json
// @Produce      json
// @Success      200  {object}  dashboarddomain.Overview
// @Router       /dashboard [get]
func (s *Server) Dashboard(c *gin.Context) {
	overview, err := s.dashboardSvc.Overview(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": overview})
}
