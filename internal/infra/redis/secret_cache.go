package redis

import (
	"context"
	"encoding/json"
	"time"

	"innovatehub-platform/internal/domain/model"
)

const secretSnapshotKey = "secrets:snapshot"

// SecretCache holds the availability registry's last snapshot so the checked
// list survives process restarts within a session window. Only availability
// flags are stored, never credential values.
type SecretCache struct {
	client RedisClient
	ttl    time.Duration
}

func NewSecretCache(client RedisClient, ttl time.Duration) *SecretCache {
	return &SecretCache{client: client, ttl: ttl}
}

func (c *SecretCache) Store(ctx context.Context, secrets []model.SecretStatus) error {
	data, err := json.Marshal(secrets)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, secretSnapshotKey, data, c.ttl)
}

func (c *SecretCache) Load(ctx context.Context) ([]model.SecretStatus, error) {
	data, err := c.client.Get(ctx, secretSnapshotKey)
	if err != nil {
		return nil, err
	}
	var secrets []model.SecretStatus
	if err := json.Unmarshal([]byte(data), &secrets); err != nil {
		return nil, err
	}
	return secrets, nil
}

func (c *SecretCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, secretSnapshotKey)
}
