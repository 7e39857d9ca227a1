package server

import (
	"net/http"
	"strings"

	apikeydomain "github.com/batidesk/batidesk/internal/apikey/domain"
	"github.com/gin-gonic/gin"
)

// @Summary      List API Keys
// @Description  List the organization's API keys. Secrets are never returned.
// @Tags         api-keys
// @Accept       json
// @Produce      json
// @Success      200  {array}  apikeydomain.APIKey
// @Router       /api-keys [get]
func (s *Server) ListAPIKeys(c *gin.Context) {
	keys, err := s.apikeySvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": keys})
}

// @Summary      Create API Key
// @Description  Create an API key. The raw secret is returned once and never stored.
// @Tags         api-keys
// @Accept       json
// @Produce      json
// @Param        request body apikeydomain.CreateRequest true "Create API Key Request"
// @Success      200  {object}  apikeydomain.CreateResponse
// @Router       /api-keys [post]
func (s *Server) CreateAPIKey(c *gin.Context) {
	var req apikeydomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.apikeySvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "api_key.create", "api_key", resp.Key.KeyID, map[string]interface{}{
		"name": resp.Key.Name,
	})
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Revoke API Key
// @Description  Deactivate an API key
// @Tags         api-keys
// @Accept       json
// @Produce      json
// @Param        id   path  string  true  "Key ID"
// @Success      200  {object}  map[string]string
// @Router       /api-keys/{id} [delete]
func (s *Server) RevokeAPIKey(c *gin.Context) {
	keyID := strings.TrimSpace(c.Param("id"))
	if err := s.apikeySvc.Revoke(c.Request.Context(), keyID); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "api_key.revoke", "api_key", keyID, nil)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "revoked"}})
}
