package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SessionsLaunched = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stories",
		Name:      "sessions_launched_total",
		Help:      "Playback sessions started from the rail.",
	})

	SessionsEnded = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stories",
		Name:      "sessions_ended_total",
		Help:      "Playback sessions ended, by reason.",
	}, []string{"reason"})

	ViewsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "stories",
		Name:      "views_recorded_total",
		Help:      "Story views written to the data layer.",
	})

	ViewsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stories",
		Name:      "views_failed_total",
		Help:      "Story views dropped, by cause.",
	}, []string{"cause"})

	RailRefreshes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "stories",
		Name:      "rail_refreshes_total",
		Help:      "Story list refreshes, by trigger and result.",
	}, []string{"trigger", "result"})
)
