package server

import (
	"net/http"
	"strings"

	clientdomain "github.com/batidesk/batidesk/internal/client/domain"
	"github.com/batidesk/batidesk/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

// @Summary      List Clients
// @Description  List the organization's clients
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        name        query  string  false  "Name filter"
// @Param        email       query  string  false  "Email filter"
// @Param        city        query  string  false  "City filter"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  clientdomain.ListClientResponse
// @Router       /clients [get]
func (s *Server) ListClients(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Name  string `form:"name"`
		Email string `form:"email"`
		City  string `form:"city"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.clientSvc.List(c.Request.Context(), clientdomain.ListClientRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		Name:      strings.TrimSpace(query.Name),
		Email:     strings.TrimSpace(query.Email),
		City:      strings.TrimSpace(query.City),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Create Client
// @Description  Register a client with optional address details
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        request body clientdomain.CreateClientRequest true "Create Client Request"
// @Success      200  {object}  clientdomain.Client
// @Router       /clients [post]
func (s *Server) CreateClient(c *gin.Context) {
	var req clientdomain.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	client, err := s.clientSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "client.create", "client", client.ID.String(), map[string]interface{}{
		"email": client.Email,
	})
	c.JSON(http.StatusOK, gin.H{"data": client})
}

// @Summary      Get Client
// @Description  Get client by ID
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Client ID"
// @Success      200  {object}  clientdomain.Client
// @Router       /clients/{id} [get]
func (s *Server) GetClientByID(c *gin.Context) {
	client, err := s.clientSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": client})
}

// @Summary      Update Client
// @Description  Update client contact or address fields
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id      path  string                            true  "Client ID"
// @Param        request body  clientdomain.UpdateClientRequest  true  "Update Client Request"
// @Success      200  {object}  clientdomain.Client
// @Router       /clients/{id} [patch]
func (s *Server) UpdateClient(c *gin.Context) {
	var req clientdomain.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	client, err := s.clientSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "client.update", "client", client.ID.String(), nil)
	c.JSON(http.StatusOK, gin.H{"data": client})
}
