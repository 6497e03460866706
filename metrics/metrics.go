package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsPrefix = "nightshift_dashboard_"

var (
	counters = map[string]*struct {
		Help string
		prom prometheus.Counter
	}{
		"resolve": {
			Help: "The total number of route resolutions",
		},
		"resolve_not_found": {
			Help: "The total number of resolutions matching no route",
		},
		"resolve_load_error": {
			Help: "The total number of resolutions failing to load a view module",
		},
		"navigate": {
			Help: "The total number of reverse lookups by route name",
		},
		"navigate_unknown": {
			Help: "The total number of reverse lookups for unknown route names",
		},
	}

	// views counts view module fetches by view and result
	views = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metricsPrefix + "view_fetches_total",
			Help: "The total number of view module fetches",
		},
		[]string{"view", "result"},
	)

	registry = prometheus.NewRegistry()
)

func init() {
	for id, m := range counters {
		m.prom = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricsPrefix + id + "_total",
			Help: m.Help,
		})
		registry.MustRegister(m.prom)
	}
	registry.MustRegister(views)
}

// Increase will increase given metric with 1.
// Unknown metrics are ignored.
func Increase(metr string) {
	prom, ok := counters[metr]
	if ok && prom.prom != nil {
		prom.prom.Inc()
	}
}

// ViewFetched counts a fetch of the view module for view.
func ViewFetched(view string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	views.With(prometheus.Labels{"view": view, "result": result}).Inc()
}

// Handler exposes the dashboard's metrics in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
