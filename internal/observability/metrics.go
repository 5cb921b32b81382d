package observability

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis command failures by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tomati_redis_errors_total",
		Help: "Total number of Redis command errors",
	}, []string{"command"})

	// LikesRecorded counts accepted likes.
	LikesRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tomati_likes_recorded_total",
		Help: "Total number of product likes recorded",
	})

	// ProductsPromoted counts products crossing the promotion threshold.
	ProductsPromoted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tomati_products_promoted_total",
		Help: "Total number of products automatically promoted",
	})

	// NotificationsSent counts notifications persisted, by type.
	NotificationsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tomati_notifications_sent_total",
		Help: "Total number of notifications created",
	}, []string{"type"})

	// WebsocketConnections tracks currently open notification sockets.
	WebsocketConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tomati_websocket_connections",
		Help: "Number of open WebSocket connections",
	})
)

var (
	httpMetricsOnce sync.Once
	httpMetrics     *fiberprometheus.FiberPrometheus
)

// InitHTTPMetrics creates the Prometheus HTTP middleware. The server wires it
// into the app and registers the scrape endpoint. The underlying collectors
// live in the default registry, so the middleware is built once per process.
func InitHTTPMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	httpMetricsOnce.Do(func() {
		httpMetrics = fiberprometheus.New(serviceName)
	})
	return httpMetrics
}
