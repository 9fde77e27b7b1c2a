package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Install-flow Prometheus metrics. Standalone package so HTTP controllers and
// services can share them without import cycles.

var (
	InstallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "slack_installs_total",
		Help: "Resultados del flujo de instalación OAuth",
	}, []string{"result"})

	TokenExchangeDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "slack_token_exchange_duration_ms",
		Help:    "Latencia de oauth.v2.access en milisegundos",
		Buckets: prometheus.ExponentialBuckets(10, 2, 10),
	})

	EventsReceived = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "slack_events_received_total",
		Help: "Eventos de Slack recibidos por tipo",
	}, []string{"type"})

	AssistantRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assistant_requests_total",
		Help: "Requests a los flows del asistente",
	}, []string{"flow", "result"})
)

// Register registers all metrics on the given registry (or default if nil).
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for _, c := range []prometheus.Collector{
		InstallsTotal,
		TokenExchangeDuration,
		EventsReceived,
		AssistantRequests,
	} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return err
			}
		}
	}
	return nil
}
