package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"coursecraft/internal/cache"
	"coursecraft/internal/model"
	"coursecraft/internal/store"
)

// ArtifactService handles artifact reads and writes. The store it holds
// is always the migrating decorator, so everything returned here is
// schema-current and everything written is validated.
type ArtifactService struct {
	store store.Store
	cache cache.ArtifactCache
	log   *zap.SugaredLogger
}

// NewArtifactService creates a new artifact service. cache may be nil.
func NewArtifactService(st store.Store, ac cache.ArtifactCache, log *zap.SugaredLogger) *ArtifactService {
	return &ArtifactService{store: st, cache: ac, log: log}
}

func (s *ArtifactService) List(ctx context.Context, projectID string, t model.ArtifactType) ([]*model.Artifact, error) {
	artifacts, err := s.store.ListArtifacts(ctx, projectID, t)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	return artifacts, nil
}

func (s *ArtifactService) Get(ctx context.Context, id string) (*model.Artifact, error) {
	if s.cache != nil {
		if a, err := s.cache.Get(ctx, id); err == nil {
			return a, nil
		}
	}

	a, err := s.store.GetArtifact(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get artifact: %w", err)
	}
	if a != nil && s.cache != nil {
		if err := s.cache.Set(ctx, a); err != nil {
			s.log.Warnw("artifact cache set failed", "artifactId", id, "error", err)
		}
	}
	return a, nil
}

func (s *ArtifactService) Save(ctx context.Context, a *model.Artifact) error {
	if err := s.store.SaveArtifact(ctx, a); err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}
	s.invalidate(ctx, a.ID)
	return nil
}

// Delete removes the artifact and sweeps links referencing it. The store
// contract leaves dangling links alone, so the sweep lives here, in the
// deleting collaborator.
func (s *ArtifactService) Delete(ctx context.Context, id string) error {
	a, err := s.store.GetArtifact(ctx, id)
	if err != nil {
		return fmt.Errorf("get artifact: %w", err)
	}
	if a == nil {
		return fmt.Errorf("artifact %s: %w", id, store.ErrNotFound)
	}

	if err := s.store.DeleteArtifact(ctx, id); err != nil {
		return fmt.Errorf("delete artifact: %w", err)
	}
	s.invalidate(ctx, id)

	links, err := s.store.ListLinks(ctx, a.ProjectID)
	if err != nil {
		s.log.Warnw("dangling link sweep skipped", "artifactId", id, "error", err)
		return nil
	}
	for _, l := range links {
		if l.SourceID != id && l.TargetID != id {
			continue
		}
		if err := s.store.DeleteLink(ctx, l.ID); err != nil {
			s.log.Warnw("dangling link delete failed", "linkId", l.ID, "error", err)
		}
	}
	return nil
}

func (s *ArtifactService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, id); err != nil {
		s.log.Warnw("artifact cache invalidation failed", "artifactId", id, "error", err)
	}
}
