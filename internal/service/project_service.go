package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"coursecraft/internal/cache"
	"coursecraft/internal/model"
	"coursecraft/internal/registry"
	"coursecraft/internal/store"
)

// ProjectService handles project lifecycle on top of the store, with a
// read-through cache. Cache failures degrade to store reads, never the
// request.
type ProjectService struct {
	store store.Store
	cache cache.ProjectCache
	log   *zap.SugaredLogger
}

// NewProjectService creates a new project service. cache may be nil.
func NewProjectService(st store.Store, pc cache.ProjectCache, log *zap.SugaredLogger) *ProjectService {
	return &ProjectService{store: st, cache: pc, log: log}
}

func (s *ProjectService) Create(ctx context.Context, name, description, ownerID string) (*model.Project, error) {
	if name == "" {
		return nil, &registry.ValidationError{Reason: "project name is required"}
	}
	if ownerID == "" {
		return nil, &registry.ValidationError{Reason: "project owner is required"}
	}

	p, err := s.store.CreateProject(ctx, &model.Project{
		Name:        name,
		Description: description,
		OwnerID:     ownerID,
	})
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.log.Infow("project created", "projectId", p.ID, "name", p.Name)
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*model.Project, error) {
	if s.cache != nil {
		if p, err := s.cache.Get(ctx, id); err == nil {
			return p, nil
		}
	}

	p, err := s.store.GetProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if p != nil && s.cache != nil {
		if err := s.cache.Set(ctx, p); err != nil {
			s.log.Warnw("project cache set failed", "projectId", id, "error", err)
		}
	}
	return p, nil
}

func (s *ProjectService) List(ctx context.Context) ([]*model.Project, error) {
	projects, err := s.store.ListProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, upd store.ProjectUpdate) (*model.Project, error) {
	p, err := s.store.UpdateProject(ctx, id, upd)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	s.invalidate(ctx, id)
	return p, nil
}

func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	s.invalidate(ctx, id)
	s.log.Infow("project deleted", "projectId", id)
	return nil
}

func (s *ProjectService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.Warnw("project cache invalidation failed", "projectId", id, "error", err)
	}
}
