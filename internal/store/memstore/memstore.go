// Package memstore is the in-memory reference implementation of the
// storage contract. It backs tests and local development without a
// running database.
package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"coursecraft/internal/model"
	"coursecraft/internal/store"
)

// Store keeps everything in maps behind one mutex, so every contract
// method is a single logical transaction.
type Store struct {
	mu        sync.RWMutex
	projects  map[string]*model.Project
	artifacts map[string]*model.Artifact
	links     map[string]*model.Link
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		projects:  make(map[string]*model.Project),
		artifacts: make(map[string]*model.Artifact),
		links:     make(map[string]*model.Link),
	}
}

func (s *Store) ListProjects(ctx context.Context) ([]*model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Project, 0, len(s.projects))
	for _, p := range s.projects {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (s *Store) GetProject(ctx context.Context, id string) (*model.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *Store) CreateProject(ctx context.Context, p *model.Project) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *p
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now
	s.projects[cp.ID] = &cp

	out := cp
	return &out, nil
}

func (s *Store) UpdateProject(ctx context.Context, id string, upd store.ProjectUpdate) (*model.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.projects[id]
	if !ok {
		return nil, fmt.Errorf("project %s: %w", id, store.ErrNotFound)
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	p.UpdatedAt = time.Now().UTC()

	cp := *p
	return &cp, nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.projects[id]; !ok {
		return fmt.Errorf("project %s: %w", id, store.ErrNotFound)
	}
	delete(s.projects, id)
	for aid, a := range s.artifacts {
		if a.ProjectID == id {
			delete(s.artifacts, aid)
		}
	}
	for lid, l := range s.links {
		if l.ProjectID == id {
			delete(s.links, lid)
		}
	}
	return nil
}

func (s *Store) ListArtifacts(ctx context.Context, projectID string, t model.ArtifactType) ([]*model.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Artifact, 0)
	for _, a := range s.artifacts {
		if a.ProjectID != projectID {
			continue
		}
		if t != "" && a.Type != t {
			continue
		}
		out = append(out, a.Clone())
	}
	return out, nil
}

func (s *Store) GetArtifact(ctx context.Context, id string) (*model.Artifact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.artifacts[id]
	if !ok {
		return nil, nil
	}
	return a.Clone(), nil
}

func (s *Store) SaveArtifact(ctx context.Context, a *model.Artifact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := a.Clone()
	store.StampForSave(cp, s.artifacts[cp.ID], time.Now().UTC())
	s.artifacts[cp.ID] = cp
	return nil
}

func (s *Store) DeleteArtifact(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.artifacts[id]; !ok {
		return fmt.Errorf("artifact %s: %w", id, store.ErrNotFound)
	}
	delete(s.artifacts, id)
	return nil
}

func (s *Store) ListLinks(ctx context.Context, projectID string) ([]*model.Link, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Link, 0)
	for _, l := range s.links {
		if l.ProjectID == projectID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *Store) SaveLink(ctx context.Context, l *model.Link) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *l
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	s.links[cp.ID] = &cp
	return nil
}

func (s *Store) DeleteLink(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.links[id]; !ok {
		return fmt.Errorf("link %s: %w", id, store.ErrNotFound)
	}
	delete(s.links, id)
	return nil
}
