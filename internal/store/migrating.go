package store

import (
	"context"
	"fmt"

	"coursecraft/internal/migration"
	"coursecraft/internal/model"
	"coursecraft/internal/registry"
)

// migrating decorates a concrete adapter with the migrate-on-read policy:
// every artifact leaving the store is resolved to the current schema
// version first, and every artifact entering the store must already be
// current and valid. Wrapping the adapter here keeps the policy in one
// place instead of duplicating it inside each backend.
type migrating struct {
	inner  Store
	reg    *registry.Registry
	engine *migration.Engine
}

// WithMigrations wraps a concrete adapter so that callers only ever see
// current-schema artifacts. All wiring goes through this; nothing should
// hold a bare adapter.
func WithMigrations(inner Store, reg *registry.Registry) Store {
	return &migrating{
		inner:  inner,
		reg:    reg,
		engine: migration.NewEngine(reg),
	}
}

func (s *migrating) ListArtifacts(ctx context.Context, projectID string, t model.ArtifactType) ([]*model.Artifact, error) {
	arts, err := s.inner.ListArtifacts(ctx, projectID, t)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Artifact, 0, len(arts))
	for _, a := range arts {
		resolved, err := s.engine.ResolveToCurrent(a)
		if err != nil {
			return nil, fmt.Errorf("artifact %s: %w", a.ID, err)
		}
		out = append(out, resolved)
	}
	return out, nil
}

func (s *migrating) GetArtifact(ctx context.Context, id string) (*model.Artifact, error) {
	a, err := s.inner.GetArtifact(ctx, id)
	if err != nil || a == nil {
		return nil, err
	}
	resolved, err := s.engine.ResolveToCurrent(a)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", id, err)
	}
	return resolved, nil
}

func (s *migrating) SaveArtifact(ctx context.Context, a *model.Artifact) error {
	if a == nil {
		return &registry.ValidationError{Reason: "artifact is nil"}
	}
	current, err := s.reg.CurrentVersion(a.Type)
	if err != nil {
		return err
	}
	if a.SchemaVersion != current {
		return &registry.ValidationError{
			ArtifactType: a.Type,
			Reason:       fmt.Sprintf("schema version %q is not current (%s); writes never migrate", a.SchemaVersion, current),
		}
	}
	if err := s.reg.Validate(a); err != nil {
		return err
	}

	// Type and project ownership are fixed at creation; an upsert reusing
	// an existing id must not convert the artifact. The bare adapter is
	// enough here: migrations never touch envelope fields.
	existing, err := s.inner.GetArtifact(ctx, a.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Type != a.Type {
			return &registry.ValidationError{
				ArtifactType: a.Type,
				Reason:       fmt.Sprintf("artifact %s is of type %q; type is never reassigned", a.ID, existing.Type),
			}
		}
		if existing.ProjectID != a.ProjectID {
			return &registry.ValidationError{
				ArtifactType: a.Type,
				Reason:       fmt.Sprintf("artifact %s belongs to project %s; ownership is never reassigned", a.ID, existing.ProjectID),
			}
		}
	}
	return s.inner.SaveArtifact(ctx, a)
}

func (s *migrating) DeleteArtifact(ctx context.Context, id string) error {
	return s.inner.DeleteArtifact(ctx, id)
}

func (s *migrating) ListProjects(ctx context.Context) ([]*model.Project, error) {
	return s.inner.ListProjects(ctx)
}

func (s *migrating) GetProject(ctx context.Context, id string) (*model.Project, error) {
	return s.inner.GetProject(ctx, id)
}

func (s *migrating) CreateProject(ctx context.Context, p *model.Project) (*model.Project, error) {
	return s.inner.CreateProject(ctx, p)
}

func (s *migrating) UpdateProject(ctx context.Context, id string, upd ProjectUpdate) (*model.Project, error) {
	return s.inner.UpdateProject(ctx, id, upd)
}

func (s *migrating) DeleteProject(ctx context.Context, id string) error {
	return s.inner.DeleteProject(ctx, id)
}

func (s *migrating) ListLinks(ctx context.Context, projectID string) ([]*model.Link, error) {
	return s.inner.ListLinks(ctx, projectID)
}

func (s *migrating) SaveLink(ctx context.Context, l *model.Link) error {
	if l == nil {
		return &registry.ValidationError{Reason: "link is nil"}
	}
	if !model.ValidRelationship(l.Relationship) {
		return &registry.ValidationError{Reason: fmt.Sprintf("unknown link relationship %q", l.Relationship)}
	}
	return s.inner.SaveLink(ctx, l)
}

func (s *migrating) DeleteLink(ctx context.Context, id string) error {
	return s.inner.DeleteLink(ctx, id)
}
