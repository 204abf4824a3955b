package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "seductionsync"

// Metrics holds the counters exposed on /metrics.
type Metrics struct {
	registry *prometheus.Registry

	transitions    *prometheus.CounterVec
	rejected       *prometheus.CounterVec
	linksIssued    prometheus.Counter
	linksLoaded    prometheus.Counter
	decodeFailures prometheus.Counter
	cardsDrawn     *prometheus.CounterVec
	sessions       prometheus.Gauge
	liveClients    prometheus.Gauge
}

func newMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "wizard_transitions_total",
			Help:      "Wizard transitions, by step entered.",
		}, []string{"step"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "wizard_rejected_total",
			Help:      "Wizard events rejected by a guard or the current step.",
		}, []string{"event"}),
		linksIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "links_issued_total",
			Help:      "Share links generated by Partner A.",
		}),
		linksLoaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "links_loaded_total",
			Help:      "Share links successfully opened by Partner B.",
		}),
		decodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "link_decode_failures_total",
			Help:      "Share links that failed to decode.",
		}),
		cardsDrawn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cards_drawn_total",
			Help:      "Game cards drawn, by level.",
		}, []string{"level"}),
		sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "sessions",
			Help:      "Browser sessions currently held in memory.",
		}),
		liveClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "live_clients",
			Help:      "Connected game table websockets.",
		}),
	}

	m.registry.MustRegister(
		m.transitions,
		m.rejected,
		m.linksIssued,
		m.linksLoaded,
		m.decodeFailures,
		m.cardsDrawn,
		m.sessions,
		m.liveClients,
	)

	return m
}

func serveMetrics(m *Metrics) httprouter.Handle {
	h := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})

	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		h.ServeHTTP(w, r)
	}
}
