package api

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts gateway activity. Register against any prometheus.Registerer
// owned by the embedding application.
type Metrics struct {
	Requests  *prometheus.CounterVec
	Retries   prometheus.Counter
	Refreshes prometheus.Counter
}

// NewMetrics creates and registers the gateway counters.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "whattoeat",
			Subsystem: "api_client",
			Name:      "requests_total",
			Help:      "Outbound API requests by method and status class.",
		}, []string{"method", "status"}),
		Retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "whattoeat",
			Subsystem: "api_client",
			Name:      "retries_total",
			Help:      "Requests replayed after a token refresh.",
		}),
		Refreshes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "whattoeat",
			Subsystem: "api_client",
			Name:      "token_refreshes_total",
			Help:      "Successful access token refreshes.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Retries, m.Refreshes)
	}
	return m
}
