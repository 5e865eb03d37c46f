package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"coursecraft/internal/model"
)

type ProjectCache interface {
	Set(ctx context.Context, project *model.Project) error
	Get(ctx context.Context, id string) (*model.Project, error)
	Delete(ctx context.Context, id string) error
}

type projectCache struct {
	client *redis.Client
}

func NewProjectCache(client *redis.Client) ProjectCache {
	return &projectCache{
		client: client,
	}
}

func (c *projectCache) Set(ctx context.Context, project *model.Project) error {
	data, err := json.Marshal(project)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, "project:"+project.ID, data, 5*time.Minute).Err()
}

func (c *projectCache) Get(ctx context.Context, id string) (*model.Project, error) {
	data, err := c.client.Get(ctx, "project:"+id).Result()
	if err != nil {
		return nil, err
	}
	var project model.Project
	err = json.Unmarshal([]byte(data), &project)
	return &project, err
}

func (c *projectCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, "project:"+id).Err()
}
