// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cli

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dalzilio/ruddmc"
	"github.com/dalzilio/ruddmc/reach"
)

// metrics are the gauges written by reach --metrics, in the text format of
// Prometheus.
type metrics struct {
	reg     *prometheus.Registry
	levels  prometheus.Gauge
	states  prometheus.Gauge
	nodes   prometheus.Gauge
	seconds prometheus.Gauge
	gcs     prometheus.Gauge
	table   *prometheus.GaugeVec
}

func newMetrics(model string) *metrics {
	labels := prometheus.Labels{"model": model}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "ruddmc",
			Name:        name,
			Help:        help,
			ConstLabels: labels,
		})
	}
	m := &metrics{
		reg:     prometheus.NewRegistry(),
		levels:  gauge("reach_levels", "Number of breadth-first iterations."),
		states:  gauge("reach_states", "Number of reachable states."),
		nodes:   gauge("reach_nodes", "Number of nodes of the set of reachable states."),
		seconds: gauge("reach_duration_seconds", "Duration of the exploration."),
		gcs:     gauge("bdd_gc_total", "Number of garbage collections of the node table."),
		table: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   "ruddmc",
			Name:        "bdd_table_nodes",
			Help:        "Slots of the node table, by state.",
			ConstLabels: labels,
		}, []string{"state"}),
	}
	m.reg.MustRegister(m.levels, m.states, m.nodes, m.seconds, m.gcs, m.table)
	return m
}

func (m *metrics) observe(res *reach.Result, seconds float64, u ruddmc.Usage) {
	m.levels.Set(float64(res.Levels))
	f, _ := res.Count.Float64()
	m.states.Set(f)
	m.nodes.Set(float64(res.Nodes))
	m.seconds.Set(seconds)
	m.gcs.Set(float64(u.GC))
	m.table.WithLabelValues("used").Set(float64(u.Allocated - u.Free))
	m.table.WithLabelValues("free").Set(float64(u.Free))
}

// write stores the metrics in file path.
func (m *metrics) write(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}
