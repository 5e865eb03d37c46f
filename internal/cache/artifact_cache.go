package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"coursecraft/internal/model"
)

// ArtifactCache holds schema-current artifacts only; services populate it
// after the migrating store has resolved the payload, so a cache hit is
// always safe to hand to callers.
type ArtifactCache interface {
	Set(ctx context.Context, artifact *model.Artifact) error
	Get(ctx context.Context, id string) (*model.Artifact, error)
	Delete(ctx context.Context, id string) error
}

type artifactCache struct {
	client *redis.Client
}

func NewArtifactCache(client *redis.Client) ArtifactCache {
	return &artifactCache{
		client: client,
	}
}

func (c *artifactCache) Set(ctx context.Context, artifact *model.Artifact) error {
	data, err := json.Marshal(artifact)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "artifact:"+artifact.ID, data, 10*time.Minute).Err()
}

func (c *artifactCache) Get(ctx context.Context, id string) (*model.Artifact, error) {
	data, err := c.client.Get(ctx, "artifact:"+id).Result()
	if err != nil {
		return nil, err
	}
	var artifact model.Artifact
	err = json.Unmarshal([]byte(data), &artifact)
	return &artifact, err
}

func (c *artifactCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, "artifact:"+id).Err()
}
