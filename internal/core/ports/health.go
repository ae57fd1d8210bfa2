package ports

import "context"

// HealthChecker probes one external dependency (Redis, the dataset CDN).
// Check returns an error when the dependency is unhealthy.
type HealthChecker interface {
	Name() string
	Check(ctx context.Context) error
}
