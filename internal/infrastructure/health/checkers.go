package health

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/peachstatevotes/election-data-api/internal/core/ports"
)

// redisHealthChecker wraps the redis client for health checks.
type redisHealthChecker struct{ client *redis.Client }

func (r *redisHealthChecker) Name() string                    { return "redis" }
func (r *redisHealthChecker) Check(ctx context.Context) error { return r.client.Ping(ctx).Err() }

// NewRedisHealthChecker creates a health checker for Redis.
func NewRedisHealthChecker(client *redis.Client) ports.HealthChecker {
	return &redisHealthChecker{client: client}
}

// datasetHealthChecker probes the upstream election dataset endpoint.
type datasetHealthChecker struct {
	client *http.Client
	url    string
}

func (d *datasetHealthChecker) Name() string { return "dataset" }

func (d *datasetHealthChecker) Check(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, d.url, nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	if resp.StatusCode >= 500 {
		return fmt.Errorf("dataset endpoint returned %s", resp.Status)
	}
	return nil
}

// NewDatasetHealthChecker creates a health checker for the dataset CDN.
func NewDatasetHealthChecker(client *http.Client, baseURL string) ports.HealthChecker {
	return &datasetHealthChecker{client: client, url: baseURL + "/metadata/last-updated.json"}
}
