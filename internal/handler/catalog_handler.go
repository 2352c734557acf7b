package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/linapteam/linap-api/internal/dto"
	"github.com/linapteam/linap-api/internal/service"
)

// CatalogHandler handles the maps, agents and abilities reference data
type CatalogHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(catalogService service.CatalogService, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// CreateMap creates a map
func (h *CatalogHandler) CreateMap(c *gin.Context) {
	var req dto.CreateMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	m, err := h.catalogService.CreateMap(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, m)
}

// GetMap returns a map by ID or slug
func (h *CatalogHandler) GetMap(c *gin.Context) {
	m, err := h.catalogService.GetMap(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// ListMaps lists maps ordered by name
func (h *CatalogHandler) ListMaps(c *gin.Context) {
	skip, limit := pagination(c)

	maps, err := h.catalogService.ListMaps(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, maps)
}

// UpdateMap applies a patch to a map
func (h *CatalogHandler) UpdateMap(c *gin.Context) {
	var req dto.UpdateMapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	m, err := h.catalogService.UpdateMap(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, m)
}

// DeleteMap removes a map
func (h *CatalogHandler) DeleteMap(c *gin.Context) {
	if err := h.catalogService.DeleteMap(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Map deleted"})
}

// CreateAgent creates an agent
func (h *CatalogHandler) CreateAgent(c *gin.Context) {
	var req dto.CreateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	agent, err := h.catalogService.CreateAgent(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, agent)
}

// GetAgent returns an agent by ID or name
func (h *CatalogHandler) GetAgent(c *gin.Context) {
	agent, err := h.catalogService.GetAgent(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, agent)
}

// ListAgents lists agents ordered by name
func (h *CatalogHandler) ListAgents(c *gin.Context) {
	skip, limit := pagination(c)

	agents, err := h.catalogService.ListAgents(c.Request.Context(), skip, limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, agents)
}

// UpdateAgent applies a patch to an agent
func (h *CatalogHandler) UpdateAgent(c *gin.Context) {
	var req dto.UpdateAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	agent, err := h.catalogService.UpdateAgent(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, agent)
}

// DeleteAgent removes an agent and its abilities
func (h *CatalogHandler) DeleteAgent(c *gin.Context) {
	if err := h.catalogService.DeleteAgent(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Agent deleted"})
}

// CreateAbility creates an ability for an agent
func (h *CatalogHandler) CreateAbility(c *gin.Context) {
	var req dto.CreateAbilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ability, err := h.catalogService.CreateAbility(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, ability)
}

// ListAbilities lists the abilities of an agent
func (h *CatalogHandler) ListAbilities(c *gin.Context) {
	abilities, err := h.catalogService.ListAbilities(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, abilities)
}

// UpdateAbility applies a patch to an ability
func (h *CatalogHandler) UpdateAbility(c *gin.Context) {
	var req dto.UpdateAbilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ability, err := h.catalogService.UpdateAbility(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ability)
}

// DeleteAbility removes an ability
func (h *CatalogHandler) DeleteAbility(c *gin.Context) {
	if err := h.catalogService.DeleteAbility(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuccessResponse{Message: "Ability deleted"})
}
