package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DatasetLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "country_browser_dataset_loads_total",
			Help: "Dataset load attempts by result.",
		},
		[]string{"result"},
	)

	WeatherLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "country_browser_weather_lookups_total",
			Help: "Weather lookups by final display state.",
		},
		[]string{"state"},
	)

	SessionEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "country_browser_session_events_total",
			Help: "Inbound live-session events by type and outcome.",
		},
		[]string{"type", "outcome"},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "country_browser_active_sessions",
			Help: "Currently connected live sessions.",
		},
	)
)

func init() {
	prometheus.MustRegister(DatasetLoads, WeatherLookups, SessionEvents, ActiveSessions)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
