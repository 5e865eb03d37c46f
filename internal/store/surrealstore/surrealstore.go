// Package surrealstore is a SurrealDB implementation of the storage
// contract. It exists to keep the contract honest: nothing outside this
// package may depend on which backend holds the data.
package surrealstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/marshal"

	"coursecraft/internal/model"
	"coursecraft/internal/store"
)

// Store talks to SurrealDB over its websocket RPC. Record ids are
// addressed with type::thing so opaque uuids never need escaping in
// query text.
type Store struct {
	db *surrealdb.DB
}

// Config holds the SurrealDB connection settings.
type Config struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
}

// New connects, signs in and selects the namespace/database.
func New(cfg Config) (*Store, error) {
	db, err := surrealdb.New(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect surrealdb: %w", err)
	}
	if _, err := db.Signin(map[string]any{"user": cfg.Username, "pass": cfg.Password}); err != nil {
		return nil, fmt.Errorf("signin surrealdb: %w", err)
	}
	if _, err := db.Use(cfg.Namespace, cfg.Database); err != nil {
		return nil, fmt.Errorf("use %s/%s: %w", cfg.Namespace, cfg.Database, err)
	}
	return &Store{db: db}, nil
}

// Close tears down the websocket connection.
func (s *Store) Close() {
	s.db.Close()
}

func (s *Store) ListProjects(ctx context.Context) ([]*model.Project, error) {
	return queryMany[model.Project](s, "list projects", "SELECT * FROM project", nil)
}

func (s *Store) GetProject(ctx context.Context, id string) (*model.Project, error) {
	return queryOne[model.Project](s, "get project", "project", id)
}

func (s *Store) CreateProject(ctx context.Context, p *model.Project) (*model.Project, error) {
	cp := *p
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now

	if err := s.put("create project", "project", cp.ID, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (s *Store) UpdateProject(ctx context.Context, id string, upd store.ProjectUpdate) (*model.Project, error) {
	p, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("project %s: %w", id, store.ErrNotFound)
	}
	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.put("update project", "project", id, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	p, err := s.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return fmt.Errorf("project %s: %w", id, store.ErrNotFound)
	}

	_, err = s.db.Query(
		"DELETE type::thing('project', $id); DELETE artifact WHERE projectId = $id; DELETE link WHERE projectId = $id",
		map[string]any{"id": id},
	)
	if err != nil {
		return &store.StorageError{Op: "delete project", Err: err}
	}
	return nil
}

func (s *Store) ListArtifacts(ctx context.Context, projectID string, t model.ArtifactType) ([]*model.Artifact, error) {
	sql := "SELECT * FROM artifact WHERE projectId = $projectId"
	vars := map[string]any{"projectId": projectID}
	if t != "" {
		sql += " AND type = $type"
		vars["type"] = string(t)
	}
	return queryMany[model.Artifact](s, "list artifacts", sql, vars)
}

func (s *Store) GetArtifact(ctx context.Context, id string) (*model.Artifact, error) {
	return queryOne[model.Artifact](s, "get artifact", "artifact", id)
}

func (s *Store) SaveArtifact(ctx context.Context, a *model.Artifact) error {
	existing, err := s.GetArtifact(ctx, a.ID)
	if err != nil {
		return err
	}

	cp := a.Clone()
	store.StampForSave(cp, existing, time.Now().UTC())
	return s.put("save artifact", "artifact", cp.ID, cp)
}

func (s *Store) DeleteArtifact(ctx context.Context, id string) error {
	return s.deleteOne("delete artifact", "artifact", id)
}

func (s *Store) ListLinks(ctx context.Context, projectID string) ([]*model.Link, error) {
	return queryMany[model.Link](s, "list links",
		"SELECT * FROM link WHERE projectId = $projectId",
		map[string]any{"projectId": projectID})
}

func (s *Store) SaveLink(ctx context.Context, l *model.Link) error {
	cp := *l
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	return s.put("save link", "link", cp.ID, &cp)
}

func (s *Store) DeleteLink(ctx context.Context, id string) error {
	return s.deleteOne("delete link", "link", id)
}

// put upserts the record at table:id, replacing its content wholesale.
func (s *Store) put(op, table, id string, v any) error {
	content, err := contentMap(v)
	if err != nil {
		return &store.StorageError{Op: op, Err: err}
	}
	_, err = s.db.Query(
		fmt.Sprintf("UPDATE type::thing('%s', $id) CONTENT $content", table),
		map[string]any{"id": id, "content": content},
	)
	if err != nil {
		return &store.StorageError{Op: op, Err: err}
	}
	return nil
}

func (s *Store) deleteOne(op, table, id string) error {
	raw, err := s.db.Query(
		fmt.Sprintf("SELECT id FROM type::thing('%s', $id); DELETE type::thing('%s', $id)", table, table),
		map[string]any{"id": id},
	)
	if err != nil {
		return &store.StorageError{Op: op, Err: err}
	}

	var res []marshal.RawQuery[[]map[string]any]
	if err := marshal.UnmarshalRaw(raw, &res); err != nil {
		return &store.StorageError{Op: op, Err: err}
	}
	if len(res) == 0 || len(res[0].Result) == 0 {
		return fmt.Errorf("%s %s: %w", table, id, store.ErrNotFound)
	}
	return nil
}

// queryMany runs a SELECT and decodes every row of the first statement.
func queryMany[T any](s *Store, op, sql string, vars map[string]any) ([]*T, error) {
	raw, err := s.db.Query(sql, vars)
	if err != nil {
		return nil, &store.StorageError{Op: op, Err: err}
	}

	var res []marshal.RawQuery[[]*T]
	if err := marshal.UnmarshalRaw(raw, &res); err != nil {
		return nil, &store.StorageError{Op: op, Err: err}
	}
	if len(res) == 0 {
		return []*T{}, nil
	}

	out := res[0].Result
	for _, row := range out {
		stripRecordID(row)
	}
	return out, nil
}

// queryOne fetches a single record by id, returning nil when absent.
func queryOne[T any](s *Store, op, table, id string) (*T, error) {
	rows, err := queryMany[T](s, op,
		fmt.Sprintf("SELECT * FROM type::thing('%s', $id)", table),
		map[string]any{"id": id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// contentMap converts a record to the map SurrealDB stores, dropping the
// id field (the record id is fixed by type::thing).
func contentMap(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	delete(m, "id")
	return m, nil
}

// stripRecordID rewrites the SurrealDB record id ("artifact:⟨uuid⟩") back
// to the bare uuid the rest of the system uses.
func stripRecordID(v any) {
	switch t := v.(type) {
	case *model.Project:
		t.ID = bareID(t.ID)
	case *model.Artifact:
		t.ID = bareID(t.ID)
	case *model.Link:
		t.ID = bareID(t.ID)
	}
}

func bareID(id string) string {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		id = id[i+1:]
	}
	return strings.Trim(id, "⟨⟩`")
}
