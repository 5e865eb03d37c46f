package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"coursecraft/internal/model"
	"coursecraft/internal/store"
)

// LinkService handles directional artifact-to-artifact relationships.
type LinkService struct {
	store store.Store
	log   *zap.SugaredLogger
}

func NewLinkService(st store.Store, log *zap.SugaredLogger) *LinkService {
	return &LinkService{store: st, log: log}
}

func (s *LinkService) List(ctx context.Context, projectID string) ([]*model.Link, error) {
	links, err := s.store.ListLinks(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}

func (s *LinkService) Save(ctx context.Context, l *model.Link) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	if err := s.store.SaveLink(ctx, l); err != nil {
		return fmt.Errorf("save link: %w", err)
	}
	return nil
}

func (s *LinkService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteLink(ctx, id); err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	return nil
}
