package status

import (
	"fmt"
	"strings"
	"sync/atomic"
)

// Metric keys shared between the simulation and its observers
const (
	SchedulerFired     = "scheduler.fired"
	SchedulerCancelled = "scheduler.cancelled"
	SchedulerSkipped   = "scheduler.skipped"
	EntitiesSpawned    = "entities.spawned"
	EntitiesRemoved    = "entities.removed"
	MinersTransformed  = "miners.transformed"
	OreHarvested       = "ore.harvested"
	VeinsConsumed      = "veins.consumed"
	SpectatorsActive   = "network.spectators"
)

// Registry is the central metrics facade
// Producers cache pointers once; hot paths write directly to atomics
type Registry struct {
	Ints *MetricMap[atomic.Int64]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Ints: NewMetricMap[atomic.Int64](),
	}
}

// Snapshot copies every counter value
func (r *Registry) Snapshot() map[string]int64 {
	out := make(map[string]int64, r.Ints.Count())
	r.Ints.Range(func(key string, v *atomic.Int64) {
		out[key] = v.Load()
	})
	return out
}

// String renders counters as "key=value" pairs in key order
func (r *Registry) String() string {
	var b strings.Builder
	r.Ints.Range(func(key string, v *atomic.Int64) {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%d", key, v.Load())
	})
	return b.String()
}
