package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mex_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// GenerationRequests counts itinerary generation attempts by outcome.
	GenerationRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mex_generation_requests_total",
		Help: "Total number of itinerary generation service calls by outcome",
	}, []string{"outcome"})

	// GeocodeLookups counts geocoding lookups by outcome (ok, miss, error, cached).
	GeocodeLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mex_geocode_lookups_total",
		Help: "Total number of geocoding lookups by outcome",
	}, []string{"outcome"})

	// ActiveWebSockets is the gauge of open notification sockets.
	ActiveWebSockets = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mex_websocket_connections",
		Help: "Number of active WebSocket connections",
	})

	// PointsAwarded tracks points credited to users by source action.
	PointsAwarded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mex_points_awarded_total",
		Help: "Total points awarded by source action",
	}, []string{"action"})
)

var (
	promOnce     sync.Once
	promInstance *fiberprometheus.FiberPrometheus
)

// InitMetrics creates the Prometheus HTTP instrumentation for the service.
// Created once per process; a second registration with the default registry
// would panic.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		promInstance = fiberprometheus.New(serviceName)
	})
	return promInstance
}

// MetricsMiddleware returns the request instrumentation handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
