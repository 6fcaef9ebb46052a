package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//nolint:gochecknoglobals
var (
	reg = prometheus.NewRegistry()

	listenersOnce sync.Once
	runtimeOnce   sync.Once
)

// RegisterMetric registers prometheus collector
func RegisterMetric(c prometheus.Collector) {
	_ = reg.Register(c)
}

// StartCollection registers the event listeners feeding the audit metrics
func StartCollection() {
	listenersOnce.Do(RegisterEventListeners)
}

// RegisterRuntimeCollectors adds process and go runtime metrics, only useful for long running processes
func RegisterRuntimeCollectors() {
	runtimeOnce.Do(func() {
		RegisterMetric(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		RegisterMetric(collectors.NewGoCollector())
	})
}

// Handler returns the HTTP handler exposing the registry
func Handler() http.Handler {
	return promhttp.InstrumentMetricHandler(reg, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
}

// WriteToTextfile writes the registry in the node_exporter textfile collector format
func WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("can't write metrics to '%s': %w", path, err)
	}

	return nil
}
