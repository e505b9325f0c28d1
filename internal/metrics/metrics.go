// Package metrics exposes daemon counters in Prometheus exposition format.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector aggregates the daemon's operational metrics behind a dedicated
// registry so tests and embedded servers never share global state.
type Collector struct {
	registry *prometheus.Registry

	cycles       prometheus.Counter
	reloads      prometheus.Counter
	reloadErrors prometheus.Counter
	corrections  prometheus.Counter
	skips        prometheus.Counter
	rulesActive  prometheus.Gauge
}

// NewCollector creates a collector with all metrics registered. A nil registry
// allocates a fresh one.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		cycles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tamer",
			Name:      "cycles_total",
			Help:      "Completed scheduler cycles.",
		}),
		reloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tamer",
			Name:      "rule_reloads_total",
			Help:      "Rule set reloads triggered by a changed rule file.",
		}),
		reloadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tamer",
			Name:      "rule_reload_errors_total",
			Help:      "Rule file refreshes that failed to read or parse.",
		}),
		corrections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tamer",
			Name:      "priority_corrections_total",
			Help:      "Successful process priority adjustments.",
		}),
		skips: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "tamer",
			Name:      "process_skips_total",
			Help:      "Matched processes skipped because they could not be read or adjusted.",
		}),
		rulesActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "tamer",
			Name:      "rules_active",
			Help:      "Rules in the currently active rule set.",
		}),
	}

	registry.MustRegister(c.cycles, c.reloads, c.reloadErrors, c.corrections, c.skips, c.rulesActive)
	return c
}

// RecordCycle accounts one completed cycle and its enforcement results.
func (c *Collector) RecordCycle(applied, skipped int) {
	c.cycles.Inc()
	c.corrections.Add(float64(applied))
	c.skips.Add(float64(skipped))
}

// RecordReload accounts one successful rule set swap.
func (c *Collector) RecordReload(ruleCount int) {
	c.reloads.Inc()
	c.rulesActive.Set(float64(ruleCount))
}

// RecordReloadError accounts one failed rule file refresh.
func (c *Collector) RecordReloadError() {
	c.reloadErrors.Inc()
}

// Handler serves the registry in Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
