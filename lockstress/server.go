//go:build !solution

package lockstress

import (
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/Rogov-KS/rwlock/rwlock"
)

// NewHandler serves prometheus metrics from g on /metrics and the current
// lock state as YAML on /debug/lock.
func NewHandler(lock *rwlock.RWLock, g prometheus.Gatherer, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(logRequests(logger))
	r.Handle("/metrics", promhttp.HandlerFor(g, promhttp.HandlerOpts{}))
	r.Get("/debug/lock", func(w http.ResponseWriter, req *http.Request) {
		s := lock.Snapshot()
		data, err := yaml.Marshal(s)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if err := s.Validate(); err != nil {
			w.Header().Set("X-Lock-Invalid", err.Error())
		}
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(data)
	})
	return r
}

// logRequests логирует каждый запрос после обработки
func logRequests(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			m := httpsnoop.CaptureMetrics(next, w, req)
			logger.Debug("request processed",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
				zap.Int("status", m.Code),
				zap.Duration("latency", m.Duration),
				zap.Int64("bytes", m.Written),
			)
		})
	}
}
