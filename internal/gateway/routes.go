package gateway

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/saransh1220/bucket-events/internal/gateway/middleware"
	digest_http "github.com/saransh1220/bucket-events/internal/modules/digest/interfaces/http"
	thumbnail_http "github.com/saransh1220/bucket-events/internal/modules/thumbnail/interfaces/http"
)

// RouterConfig holds all the handlers and middleware needed for routing
type RouterConfig struct {
	DigestHandler    *digest_http.DigestHandler
	ThumbnailHandler *thumbnail_http.ThumbnailHandler
	InvokeAuth       *middleware.InvokeAuth
}

// SetupRoutes creates and configures all application routes
func SetupRoutes(config RouterConfig) http.Handler {
	router := NewRouter(middleware.PrometheusMiddleware)

	auth := config.InvokeAuth
	if auth == nil {
		auth = middleware.NewInvokeAuth("")
	}

	// Health Check
	router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Prometheus Metrics Endpoint
	router.Handle("GET /metrics", promhttp.Handler())

	// Invoke Routes
	router.Handle("POST /digest", auth.RequireToken(http.HandlerFunc(config.DigestHandler.Run)))
	router.Handle("POST /thumbnail", auth.RequireToken(http.HandlerFunc(config.ThumbnailHandler.Process)))

	return router.Handler()
}
