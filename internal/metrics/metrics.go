// Package metrics registers the pipeline counters on the default
// Prometheus registry, served by the api binary at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ScansReceived counts frames read off the device socket.
	ScansReceived = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scangate_scans_received_total",
		Help: "Frames received from the scan device feed.",
	})

	// ScansDropped counts frames that failed to parse or carried an
	// unrecognized type.
	ScansDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scangate_scans_dropped_total",
		Help: "Frames dropped at the parsing boundary.",
	})

	// Outcomes counts terminal pipeline stages by stage and subject kind.
	Outcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scangate_scan_outcomes_total",
		Help: "Terminal outcomes of processed scan events.",
	}, []string{"stage", "subject"})

	// Reconnects counts device socket reconnect attempts.
	Reconnects = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scangate_device_reconnects_total",
		Help: "Reconnect attempts to the scan device feed.",
	})
)
