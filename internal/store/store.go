// Package store defines the backend-agnostic persistence contract for
// projects, artifacts and links. The method set here is the entire
// boundary the rest of the system may use; no caller depends on
// backend-specific query capability.
package store

import (
	"context"
	"time"

	"coursecraft/internal/model"
)

// ProjectUpdate is the partial update accepted by UpdateProject. Nil
// fields are left unchanged.
type ProjectUpdate struct {
	Name        *string
	Description *string
}

// Store is the storage adapter contract. Reads return (nil, nil) or an
// empty slice for missing records; updates and deletes of a nonexistent
// id return ErrNotFound. No method performs a partial write visible to a
// concurrent reader: each call is a single logical transaction from the
// caller's point of view. Concurrent SaveArtifact calls for the same id
// both succeed and the later write wins.
type Store interface {
	ListProjects(ctx context.Context) ([]*model.Project, error)
	GetProject(ctx context.Context, id string) (*model.Project, error)
	CreateProject(ctx context.Context, p *model.Project) (*model.Project, error)
	UpdateProject(ctx context.Context, id string, upd ProjectUpdate) (*model.Project, error)
	// DeleteProject cascades: all artifacts and links with a matching
	// project id are deleted with it. This is the one cascade the
	// contract mandates.
	DeleteProject(ctx context.Context, id string) error

	// ListArtifacts returns the project's artifacts, optionally filtered
	// by type (empty t means all).
	ListArtifacts(ctx context.Context, projectID string, t model.ArtifactType) ([]*model.Artifact, error)
	GetArtifact(ctx context.Context, id string) (*model.Artifact, error)
	// SaveArtifact upserts by id. On update the stored CreatedBy and
	// CreatedAt are preserved even if the caller's copy altered them,
	// and ModifiedAt is advanced to the current time.
	SaveArtifact(ctx context.Context, a *model.Artifact) error
	// DeleteArtifact does not cascade link cleanup; sweeping dangling
	// links is the deleting caller's responsibility.
	DeleteArtifact(ctx context.Context, id string) error

	ListLinks(ctx context.Context, projectID string) ([]*model.Link, error)
	SaveLink(ctx context.Context, l *model.Link) error
	DeleteLink(ctx context.Context, id string) error
}

// StampForSave applies the shared upsert metadata rules: the original
// CreatedBy/CreatedAt survive any update and ModifiedAt advances to now.
// Adapters call this before writing.
func StampForSave(a *model.Artifact, existing *model.Artifact, now time.Time) {
	if existing != nil {
		a.Metadata.CreatedBy = existing.Metadata.CreatedBy
		a.Metadata.CreatedAt = existing.Metadata.CreatedAt
	} else {
		if a.Metadata.CreatedAt.IsZero() {
			a.Metadata.CreatedAt = now
		}
		if a.Metadata.CreatedBy == "" {
			a.Metadata.CreatedBy = a.Metadata.ModifiedBy
		}
	}
	a.Metadata.ModifiedAt = now
}
