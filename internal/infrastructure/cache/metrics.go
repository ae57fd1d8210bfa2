package cache

import (
	"github.com/peachstatevotes/election-data-api/internal/core/ports"
	"github.com/prometheus/client_golang/prometheus"
)

var cacheRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cache_requests_total",
		Help: "The total number of cache reads by storage backend and result",
	},
	[]string{"storage", "result"},
)

func init() {
	prometheus.MustRegister(cacheRequests)
}

func observeCacheRequest(storage ports.CacheStorage, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheRequests.WithLabelValues(string(storage), result).Inc()
}
