// Package metrics exposes per-round and per-algorithm counters as
// Prometheus collectors, the observability layer the ambient stack
// carries regardless of the spec's Non-goals (which exclude
// observability as an algorithmic feature, not as ambient plumbing).
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Rounds counts timed driver runs (one per -rounds repetition of
// ligra-run), labeled by algorithm name.
var Rounds = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "ligra",
	Name:      "rounds_total",
	Help:      "Number of timed algorithm runs executed.",
}, []string{"algorithm"})

// FrontierSize observes the size of the active vertex subset entering
// each round.
var FrontierSize = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "ligra",
	Name:      "frontier_size",
	Help:      "Size of the active vertex subset entering an edge-map round.",
	Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
}, []string{"algorithm"})

// RoundSeconds observes wall-clock time per round.
var RoundSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "ligra",
	Name:      "round_seconds",
	Help:      "Wall-clock time spent in a single round.",
}, []string{"algorithm"})

// AllocatorBlocksInUse reports the block allocator's live block count.
var AllocatorBlocksInUse = prometheus.NewGauge(prometheus.GaugeOpts{
	Namespace: "ligra",
	Name:      "allocator_blocks_in_use",
	Help:      "Blocks currently checked out of the process block allocator.",
})

func init() {
	prometheus.MustRegister(Rounds, FrontierSize, RoundSeconds, AllocatorBlocksInUse)
}
