// This file is part of Retroreplay.
//
// Retroreplay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Retroreplay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Retroreplay.  If not, see <https://www.gnu.org/licenses/>.

package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jetsetilly/retroreplay/curated"
	"github.com/jetsetilly/retroreplay/logger"
)

const namespace = "retroreplay"

// Metrics for a batch of replays.
type Metrics struct {
	registry *prometheus.Registry

	replays  prometheus.Counter
	frames   prometheus.Counter
	failures *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics is the preferred method of initialisation for the Metrics type.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		replays: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replays_total",
			Help:      "Number of replays completed.",
		}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Number of frames replayed.",
		}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "failures_total",
			Help:      "Number of replays that failed, by stage.",
		}, []string{"stage"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "replay_duration_seconds",
			Help:      "Time taken for each completed replay.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
	}

	m.registry.MustRegister(m.replays, m.frames, m.failures, m.duration)

	return m
}

// Registry returns the registry holding the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Frame counts one replayed frame.
func (m *Metrics) Frame() {
	m.frames.Inc()
}

// Completed counts a completed replay and how long it took.
func (m *Metrics) Completed(d time.Duration) {
	m.replays.Inc()
	m.duration.Observe(d.Seconds())
}

// Failed counts a failed replay. The stage is a short name for the part of
// the replay that failed.
func (m *Metrics) Failed(stage string) {
	m.failures.WithLabelValues(stage).Inc()
}

// Handler returns a HTTP handler serving the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve the metrics at address until the context is cancelled.
func (m *Metrics) Serve(ctx context.Context, address string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())

	srv := &http.Server{
		Addr:              address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	logger.Logf(logger.Allow, "metrics", "serving at %s/metrics", address)

	err := srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return curated.Errorf("metrics: %v", err)
	}

	return nil
}
