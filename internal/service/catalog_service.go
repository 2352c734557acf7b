package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/linapteam/linap-api/internal/domain"
	"github.com/linapteam/linap-api/internal/dto"
	"github.com/linapteam/linap-api/internal/repository"
	"github.com/linapteam/linap-api/internal/utils"
)

// catalogService implements CatalogService interface. Maps, agents and
// abilities are reference data maintained by operators, not user content.
type catalogService struct {
	mapRepo   repository.MapRepository
	agentRepo repository.AgentRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(mapRepo repository.MapRepository, agentRepo repository.AgentRepository) CatalogService {
	return &catalogService{mapRepo: mapRepo, agentRepo: agentRepo}
}

// CreateMap creates a map. A missing slug is derived from the name.
func (s *catalogService) CreateMap(ctx context.Context, req *dto.CreateMapRequest) (*domain.Map, error) {
	slug := req.Slug
	if slug == "" {
		slug = utils.Slugify(req.Name)
	}
	if slug == "" {
		return nil, fmt.Errorf("map slug cannot be derived from name: %w", ErrInvalidInput)
	}

	m := &domain.Map{
		Name:         req.Name,
		Slug:         slug,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
	}

	if err := s.mapRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

// GetMap retrieves a map by ID or slug
func (s *catalogService) GetMap(ctx context.Context, idOrSlug string) (*domain.Map, error) {
	if _, err := uuid.Parse(idOrSlug); err == nil {
		return s.mapRepo.GetByID(ctx, idOrSlug)
	}
	return s.mapRepo.GetBySlug(ctx, idOrSlug)
}

// ListMaps lists maps ordered by name
func (s *catalogService) ListMaps(ctx context.Context, skip, limit int) ([]*domain.Map, error) {
	return s.mapRepo.List(ctx, skip, limit)
}

// UpdateMap applies a patch to a map
func (s *catalogService) UpdateMap(ctx context.Context, id string, req *dto.UpdateMapRequest) (*domain.Map, error) {
	patch := repository.MapPatch{
		Name:         req.Name,
		Slug:         req.Slug,
		Description:  req.Description,
		ThumbnailURL: req.ThumbnailURL,
	}

	return s.mapRepo.Update(ctx, id, patch)
}

// DeleteMap removes a map
func (s *catalogService) DeleteMap(ctx context.Context, id string) error {
	return s.mapRepo.Delete(ctx, id)
}

// CreateAgent creates an agent
func (s *catalogService) CreateAgent(ctx context.Context, req *dto.CreateAgentRequest) (*domain.Agent, error) {
	agent := &domain.Agent{
		Name:        req.Name,
		Role:        req.Role,
		Origin:      req.Origin,
		Description: req.Description,
		PortraitURL: req.PortraitURL,
	}

	if err := s.agentRepo.Create(ctx, agent); err != nil {
		return nil, err
	}

	return agent, nil
}

// GetAgent retrieves an agent by ID or name
func (s *catalogService) GetAgent(ctx context.Context, idOrName string) (*domain.Agent, error) {
	if _, err := uuid.Parse(idOrName); err == nil {
		return s.agentRepo.GetByID(ctx, idOrName)
	}
	return s.agentRepo.GetByName(ctx, idOrName)
}

// ListAgents lists agents ordered by name
func (s *catalogService) ListAgents(ctx context.Context, skip, limit int) ([]*domain.Agent, error) {
	return s.agentRepo.List(ctx, skip, limit)
}

// UpdateAgent applies a patch to an agent
func (s *catalogService) UpdateAgent(ctx context.Context, id string, req *dto.UpdateAgentRequest) (*domain.Agent, error) {
	patch := repository.AgentPatch{
		Name:        req.Name,
		Role:        req.Role,
		Origin:      req.Origin,
		Description: req.Description,
		PortraitURL: req.PortraitURL,
	}

	return s.agentRepo.Update(ctx, id, patch)
}

// DeleteAgent removes an agent and its abilities
func (s *catalogService) DeleteAgent(ctx context.Context, id string) error {
	return s.agentRepo.Delete(ctx, id)
}

// CreateAbility creates an ability for an agent
func (s *catalogService) CreateAbility(ctx context.Context, agentID string, req *dto.CreateAbilityRequest) (*domain.Ability, error) {
	if _, err := s.agentRepo.GetByID(ctx, agentID); err != nil {
		return nil, err
	}

	ability := &domain.Ability{
		AgentID:         agentID,
		Name:            req.Name,
		Key:             req.Key,
		Description:     req.Description,
		CooldownSeconds: req.CooldownSeconds,
	}

	if err := s.agentRepo.CreateAbility(ctx, ability); err != nil {
		return nil, err
	}

	return ability, nil
}

// ListAbilities lists the abilities of an agent
func (s *catalogService) ListAbilities(ctx context.Context, agentID string) ([]*domain.Ability, error) {
	if _, err := s.agentRepo.GetByID(ctx, agentID); err != nil {
		return nil, err
	}

	return s.agentRepo.ListAbilities(ctx, agentID)
}

// UpdateAbility applies a patch to an ability
func (s *catalogService) UpdateAbility(ctx context.Context, id string, req *dto.UpdateAbilityRequest) (*domain.Ability, error) {
	patch := repository.AbilityPatch{
		Name:            req.Name,
		Key:             req.Key,
		Description:     req.Description,
		CooldownSeconds: req.CooldownSeconds,
	}

	return s.agentRepo.UpdateAbility(ctx, id, patch)
}

// DeleteAbility removes an ability
func (s *catalogService) DeleteAbility(ctx context.Context, id string) error {
	return s.agentRepo.DeleteAbility(ctx, id)
}
