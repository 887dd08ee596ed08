// Package metrics exposes the Prometheus instruments callers of
// pkg/rbtree and pkg/arena feed to observe tree activity: nodes inserted,
// nodes erased, rotations performed, and rebalancing-walk depth. The core
// tree package itself never imports this package — instrumentation is a
// caller concern.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "rbtree"

// Collectors groups the instruments one tree's caller feeds as it performs
// insertions, erasures, and rebalancing.
type Collectors struct {
	NodesInserted  prometheus.Counter
	NodesErased    prometheus.Counter
	Rotations      prometheus.Counter
	FixupWalkDepth prometheus.Histogram
}

// NewCollectors creates a Collectors set and registers it with registry.
func NewCollectors(registry prometheus.Registerer) *Collectors {
	c := &Collectors{
		NodesInserted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_inserted_total",
			Help:      "Total number of nodes inserted into the tree.",
		}),
		NodesErased: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_erased_total",
			Help:      "Total number of nodes erased from the tree.",
		}),
		Rotations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rotations_total",
			Help:      "Total number of left/right rotations performed during rebalancing.",
		}),
		FixupWalkDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fixup_walk_depth",
			Help:      "Number of ancestor levels visited by an insert or erase fixup walk.",
			Buckets:   prometheus.LinearBuckets(0, 2, 16),
		}),
	}

	registry.MustRegister(c.NodesInserted, c.NodesErased, c.Rotations, c.FixupWalkDepth)

	return c
}

// ObserveInsert records a completed insertion whose fixup walk visited
// walkDepth ancestor levels and performed rotations rotationCount times.
func (c *Collectors) ObserveInsert(walkDepth, rotationCount int) {
	c.NodesInserted.Inc()
	c.FixupWalkDepth.Observe(float64(walkDepth))
	c.Rotations.Add(float64(rotationCount))
}

// ObserveErase records a completed erasure whose fixup walk visited
// walkDepth ancestor levels and performed rotations rotationCount times.
func (c *Collectors) ObserveErase(walkDepth, rotationCount int) {
	c.NodesErased.Inc()
	c.FixupWalkDepth.Observe(float64(walkDepth))
	c.Rotations.Add(float64(rotationCount))
}
