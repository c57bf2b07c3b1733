package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/skillforge/bids-service/internal/http/middleware"
	"github.com/skillforge/bids-service/internal/model"
	"github.com/skillforge/bids-service/internal/service"
)

type ProjectHandler struct {
	projects *service.ProjectService
	log      zerolog.Logger
}

func NewProjectHandler(projects *service.ProjectService, log zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, log: log}
}

func (h *ProjectHandler) Register(protected gin.IRouter) {
	protected.POST("/projects", h.create)
	protected.GET("/projects", h.list)
	protected.GET("/projects/:id", h.get)
	protected.PUT("/projects/:id/status", h.updateStatus)
}

type createProjectRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Budget      float64 `json:"budget"`
}

func (h *ProjectHandler) create(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projects.Create(c.Request.Context(), principal, service.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
	})
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": project})
}

func (h *ProjectHandler) list(c *gin.Context) {
	var status *model.ProjectStatus
	if raw := c.Query("status"); raw != "" {
		parsed, valid := model.ParseProjectStatus(raw)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project status"})
			return
		}
		status = &parsed
	}

	limit, offset, err := parseLimitOffset(c.Query("limit"), c.Query("offset"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	projects, err := h.projects.List(c.Request.Context(), status, limit, offset)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *ProjectHandler) get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	project, err := h.projects.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

type updateProjectStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *ProjectHandler) updateStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project id"})
		return
	}

	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req updateProjectStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status, valid := model.ParseProjectStatus(req.Status)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid project status"})
		return
	}

	project, err := h.projects.UpdateStatus(c.Request.Context(), principal, id, status)
	if err != nil {
		handleError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project})
}

func parseLimitOffset(limitRaw, offsetRaw string) (int, int, error) {
	limit := 20
	offset := 0

	if limitRaw != "" {
		parsed, err := strconv.Atoi(limitRaw)
		if err != nil || parsed <= 0 || parsed > 100 {
			return 0, 0, errInvalidPagination
		}
		limit = parsed
	}
	if offsetRaw != "" {
		parsed, err := strconv.Atoi(offsetRaw)
		if err != nil || parsed < 0 {
			return 0, 0, errInvalidPagination
		}
		offset = parsed
	}
	return limit, offset, nil
}
