// Package mongostore is the MongoDB implementation of the storage
// contract.
package mongostore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"coursecraft/internal/model"
	"coursecraft/internal/store"
)

// Store persists projects, artifacts and links in three collections.
type Store struct {
	projects  *mongo.Collection
	artifacts *mongo.Collection
	links     *mongo.Collection
}

// New creates a Mongo-backed store over the given database.
func New(db *mongo.Database) *Store {
	return &Store{
		projects:  db.Collection("projects"),
		artifacts: db.Collection("artifacts"),
		links:     db.Collection("links"),
	}
}

// EnsureIndexes creates the query indexes the adapter relies on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	byProject := mongo.IndexModel{Keys: bson.D{{Key: "projectId", Value: 1}}}
	if _, err := s.artifacts.Indexes().CreateOne(ctx, byProject); err != nil {
		return &store.StorageError{Op: "ensure artifact indexes", Err: err}
	}
	if _, err := s.links.Indexes().CreateOne(ctx, byProject); err != nil {
		return &store.StorageError{Op: "ensure link indexes", Err: err}
	}
	return nil
}

func (s *Store) ListProjects(ctx context.Context) ([]*model.Project, error) {
	cursor, err := s.projects.Find(ctx, bson.M{})
	if err != nil {
		return nil, &store.StorageError{Op: "list projects", Err: err}
	}
	defer cursor.Close(ctx)

	var projects []*model.Project
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, &store.StorageError{Op: "decode projects", Err: err}
	}
	return projects, nil
}

func (s *Store) GetProject(ctx context.Context, id string) (*model.Project, error) {
	var p model.Project
	err := s.projects.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, &store.StorageError{Op: "get project", Err: err}
	}
	return &p, nil
}

func (s *Store) CreateProject(ctx context.Context, p *model.Project) (*model.Project, error) {
	cp := *p
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	cp.CreatedAt = now
	cp.UpdatedAt = now

	if _, err := s.projects.InsertOne(ctx, &cp); err != nil {
		return nil, &store.StorageError{Op: "create project", Err: err}
	}
	return &cp, nil
}

func (s *Store) UpdateProject(ctx context.Context, id string, upd store.ProjectUpdate) (*model.Project, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}

	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var p model.Project
	err := s.projects.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("project %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, &store.StorageError{Op: "update project", Err: err}
	}
	return &p, nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	res, err := s.projects.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return &store.StorageError{Op: "delete project", Err: err}
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("project %s: %w", id, store.ErrNotFound)
	}

	// The mandated cascade: everything owned by the project goes with it.
	if _, err := s.artifacts.DeleteMany(ctx, bson.M{"projectId": id}); err != nil {
		return &store.StorageError{Op: "delete project artifacts", Err: err}
	}
	if _, err := s.links.DeleteMany(ctx, bson.M{"projectId": id}); err != nil {
		return &store.StorageError{Op: "delete project links", Err: err}
	}
	return nil
}

func (s *Store) ListArtifacts(ctx context.Context, projectID string, t model.ArtifactType) ([]*model.Artifact, error) {
	filter := bson.M{"projectId": projectID}
	if t != "" {
		filter["type"] = t
	}

	cursor, err := s.artifacts.Find(ctx, filter)
	if err != nil {
		return nil, &store.StorageError{Op: "list artifacts", Err: err}
	}
	defer cursor.Close(ctx)

	var artifacts []*model.Artifact
	if err := cursor.All(ctx, &artifacts); err != nil {
		return nil, &store.StorageError{Op: "decode artifacts", Err: err}
	}
	for _, a := range artifacts {
		if err := normalizeData(a); err != nil {
			return nil, &store.StorageError{Op: "decode artifact data", Err: err}
		}
	}
	return artifacts, nil
}

func (s *Store) GetArtifact(ctx context.Context, id string) (*model.Artifact, error) {
	var a model.Artifact
	err := s.artifacts.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, &store.StorageError{Op: "get artifact", Err: err}
	}
	if err := normalizeData(&a); err != nil {
		return nil, &store.StorageError{Op: "decode artifact data", Err: err}
	}
	return &a, nil
}

// normalizeData rewrites the opaque payload with plain JSON types. The
// driver decodes nested documents as primitive.M/primitive.A, which the
// registry's migration steps and codecs do not accept.
func normalizeData(a *model.Artifact) error {
	if a.Data == nil {
		return nil
	}
	raw, err := json.Marshal(a.Data)
	if err != nil {
		return err
	}
	var plain map[string]any
	if err := json.Unmarshal(raw, &plain); err != nil {
		return err
	}
	a.Data = plain
	return nil
}

func (s *Store) SaveArtifact(ctx context.Context, a *model.Artifact) error {
	existing, err := s.GetArtifact(ctx, a.ID)
	if err != nil {
		return err
	}

	cp := a.Clone()
	store.StampForSave(cp, existing, time.Now().UTC())

	opts := options.Replace().SetUpsert(true)
	if _, err := s.artifacts.ReplaceOne(ctx, bson.M{"_id": cp.ID}, cp, opts); err != nil {
		return &store.StorageError{Op: "save artifact", Err: err}
	}
	return nil
}

func (s *Store) DeleteArtifact(ctx context.Context, id string) error {
	res, err := s.artifacts.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return &store.StorageError{Op: "delete artifact", Err: err}
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("artifact %s: %w", id, store.ErrNotFound)
	}
	return nil
}

func (s *Store) ListLinks(ctx context.Context, projectID string) ([]*model.Link, error) {
	cursor, err := s.links.Find(ctx, bson.M{"projectId": projectID})
	if err != nil {
		return nil, &store.StorageError{Op: "list links", Err: err}
	}
	defer cursor.Close(ctx)

	var links []*model.Link
	if err := cursor.All(ctx, &links); err != nil {
		return nil, &store.StorageError{Op: "decode links", Err: err}
	}
	return links, nil
}

func (s *Store) SaveLink(ctx context.Context, l *model.Link) error {
	cp := *l
	if cp.ID == "" {
		cp.ID = uuid.NewString()
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := s.links.ReplaceOne(ctx, bson.M{"_id": cp.ID}, &cp, opts); err != nil {
		return &store.StorageError{Op: "save link", Err: err}
	}
	return nil
}

func (s *Store) DeleteLink(ctx context.Context, id string) error {
	res, err := s.links.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return &store.StorageError{Op: "delete link", Err: err}
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("link %s: %w", id, store.ErrNotFound)
	}
	return nil
}
