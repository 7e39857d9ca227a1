package server

import (
	"net/http"
	"strings"

	projectdomain "github.com/batidesk/batidesk/internal/project/domain"
	"github.com/batidesk/batidesk/pkg/db/pagination"
	"github.com/gin-gonic/gin"
)

// @Summary      List Projects
// @Description  List construction projects
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        status      query  string  false  "Status filter"
// @Param        client_id   query  string  false  "Client ID filter"
// @Param        name        query  string  false  "Name filter"
// @Param        page_token  query  string  false  "Page Token"
// @Param        page_size   query  int     false  "Page Size"
// @Success      200  {object}  projectdomain.ListProjectResponse
// @Router       /projects [get]
func (s *Server) ListProjects(c *gin.Context) {
	var query struct {
		pagination.Pagination
		Status   string `form:"status"`
		ClientID string `form:"client_id"`
		Name     string `form:"name"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.projectSvc.List(c.Request.Context(), projectdomain.ListProjectRequest{
		PageToken: query.PageToken,
		PageSize:  int32(query.PageSize),
		Status:    strings.TrimSpace(query.Status),
		ClientID:  strings.TrimSpace(query.ClientID),
		Name:      strings.TrimSpace(query.Name),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Create Project
// @Description  Create a construction project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        request body projectdomain.CreateProjectRequest true "Create Project Request"
// @Success      200  {object}  projectdomain.Project
// @Router       /projects [post]
func (s *Server) CreateProject(c *gin.Context) {
	var req projectdomain.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	project, err := s.projectSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "project.create", "project", project.ID.String(), map[string]interface{}{
		"name": project.Name,
	})
	c.JSON(http.StatusOK, gin.H{"data": project})
}

// @Summary      Get Project
// @Description  Get project by ID
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Project ID"
// @Success      200  {object}  projectdomain.Project
// @Router       /projects/{id} [get]
func (s *Server) GetProjectByID(c *gin.Context) {
	project, err := s.projectSvc.GetByID(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": project})
}

// @Summary      Update Project
// @Description  Update project fields
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id      path  string                              true  "Project ID"
// @Param        request body  projectdomain.UpdateProjectRequest  true  "Update Project Request"
// @Success      200  {object}  projectdomain.Project
// @Router       /projects/{id} [patch]
func (s *Server) UpdateProject(c *gin.Context) {
	var req projectdomain.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	req.ID = strings.TrimSpace(c.Param("id"))

	project, err := s.projectSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "project.update", "project", project.ID.String(), map[string]interface{}{
		"status": string(project.Status),
	})
	c.JSON(http.StatusOK, gin.H{"data": project})
}

// @Summary      Delete Project
// @Description  Delete a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        id   path  string  true  "Project ID"
// @Success      200  {object}  map[string]string
// @Router       /projects/{id} [delete]
func (s *Server) DeleteProject(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.projectSvc.Delete(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}

	s.audit(c, "project.delete", "project", id, nil)
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "deleted"}})
}
