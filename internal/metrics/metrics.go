// Package metrics exposes gameplay counters to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder counts adoptions, care actions, unlocks, and reaction sources.
type Recorder struct {
	registry  *prometheus.Registry
	adoptions *prometheus.CounterVec
	actions   *prometheus.CounterVec
	unlocks   *prometheus.CounterVec
	reactions *prometheus.CounterVec
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		adoptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wonderpets",
			Name:      "adoptions_total",
			Help:      "Pets adopted, by species.",
		}, []string{"species"}),
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wonderpets",
			Name:      "care_actions_total",
			Help:      "Care actions applied, by kind.",
		}, []string{"kind"}),
		unlocks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wonderpets",
			Name:      "achievements_unlocked_total",
			Help:      "Achievements unlocked, by id.",
		}, []string{"id"}),
		reactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wonderpets",
			Name:      "reactions_total",
			Help:      "Reaction lines served, by source.",
		}, []string{"source"}),
	}
	reg.MustRegister(
		r.adoptions, r.actions, r.unlocks, r.reactions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) RecordAdoption(speciesID string) { r.adoptions.WithLabelValues(speciesID).Inc() }
func (r *Recorder) RecordAction(kind string)        { r.actions.WithLabelValues(kind).Inc() }
func (r *Recorder) RecordUnlock(id string)          { r.unlocks.WithLabelValues(id).Inc() }
func (r *Recorder) RecordReaction(source string)    { r.reactions.WithLabelValues(source).Inc() }

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
