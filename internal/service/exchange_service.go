package service

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"coursecraft/internal/interchange"
	"coursecraft/internal/model"
	"coursecraft/internal/registry"
	"coursecraft/internal/store"
)

// ExchangeService glues the interchange codec to storage: CSV in, saved
// quiz-question artifacts out, and back again. The codec itself never
// touches the store; the save loop here is the only side effect.
type ExchangeService struct {
	store store.Store
	codec *interchange.Codec
	log   *zap.SugaredLogger
}

func NewExchangeService(st store.Store, reg *registry.Registry, log *zap.SugaredLogger) *ExchangeService {
	return &ExchangeService{
		store: st,
		codec: interchange.NewCodec(reg),
		log:   log,
	}
}

// ImportReport is the complete outcome of an import: how many rows came
// in, how many artifacts were persisted, and every row that was not.
// Import never turns one bad row into an all-or-nothing failure.
type ImportReport struct {
	Total    int                    `json:"total"`
	Imported int                    `json:"imported"`
	Errors   []interchange.RowError `json:"errors"`
}

// ImportCSV parses the interchange file and persists one quiz-question
// artifact per valid row into the project. A save failure for one
// artifact is reported alongside the row errors and does not stop the
// rest of the batch; row 0 marks errors not tied to a source row.
func (s *ExchangeService) ImportCSV(ctx context.Context, projectID, author string, r io.Reader) (*ImportReport, error) {
	project, err := s.store.GetProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if project == nil {
		return nil, fmt.Errorf("project %s: %w", projectID, store.ErrNotFound)
	}

	rows, err := interchange.ReadCSV(r)
	if err != nil {
		return nil, err
	}

	result := s.codec.Import(rows, projectID, author)
	report := &ImportReport{Total: len(rows), Errors: result.Errors}

	for _, a := range result.Artifacts {
		if err := s.store.SaveArtifact(ctx, a); err != nil {
			s.log.Warnw("imported question save failed", "artifactId", a.ID, "error", err)
			report.Errors = append(report.Errors, interchange.RowError{
				Code:    interchange.ReasonSaveFailed,
				Message: fmt.Sprintf("artifact %s: %v", a.ID, err),
			})
			continue
		}
		report.Imported++
	}

	s.log.Infow("question import finished",
		"projectId", projectID, "rows", report.Total,
		"imported", report.Imported, "errors", len(report.Errors))
	return report, nil
}

// ExportCSV writes every quiz question of the project in the interchange
// layout. Prose goes out as plain text per the codec's lossy contract.
func (s *ExchangeService) ExportCSV(ctx context.Context, projectID string, w io.Writer) error {
	artifacts, err := s.store.ListArtifacts(ctx, projectID, model.TypeQuizQuestion)
	if err != nil {
		return fmt.Errorf("list questions: %w", err)
	}

	rows, err := s.codec.Export(artifacts)
	if err != nil {
		return err
	}
	return interchange.WriteCSV(w, rows)
}
