// Package metrics expõe os coletores Prometheus do serviço
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cafe_bi"

// Resultados possíveis de um ciclo de atualização
const (
	OutcomePublished = "published"
	OutcomeFailed    = "failed"
	OutcomeStale     = "stale"
)

var (
	// HTTPRequests conta as requisições servidas por método e status
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Requisições HTTP servidas.",
	}, []string{"method", "status"})

	// DashboardCycles conta os ciclos de atualização por resultado
	DashboardCycles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "dashboard",
		Name:      "cycles_total",
		Help:      "Ciclos de atualização do dashboard por resultado.",
	}, []string{"outcome"})

	// UpstreamDuration mede as chamadas à API analítica
	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Duração das chamadas à API analítica.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"resource", "result"})

	// DashboardSequence expõe a sequência do último snapshot publicado
	DashboardSequence = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "dashboard",
		Name:      "published_sequence",
		Help:      "Sequência do último ciclo aplicado.",
	})

	// StreamSubscribers expõe quantos clientes websocket estão conectados
	StreamSubscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "dashboard",
		Name:      "stream_subscribers",
		Help:      "Clientes conectados ao stream do dashboard.",
	})
)
