package transform

import (
	"fmt"

	"github.com/TomaszGaweda/hazelcast-jet/dag"
)

// CoAggregate is an N-ary (N≥2) co-aggregation with no keying: an N-ary
// aggregate operation over an optional window, broadcasting every
// upstream to a single aggregating vertex (spec.md §3).
type CoAggregate struct {
	Header
	AggrOp                AggregateOperation
	Window                *WindowDefinition
	ProcessorMetaSupplier dag.ProcessorMetaSupplier
}

// NewCoAggregate builds a CoAggregate transform. When name is empty, it
// defaults to "<N>-way co-aggregate", reproducing the original's naming
// convention (SPEC_FULL.md §10.1).
func NewCoAggregate(name string, upstream []Transform, aggrOp AggregateOperation, window *WindowDefinition,
	metaSupplier dag.ProcessorMetaSupplier) *CoAggregate {
	if name == "" {
		name = fmt.Sprintf("%d-way co-aggregate", len(upstream))
	}
	return &CoAggregate{
		Header:                NewHeader(name, upstream),
		AggrOp:                aggrOp,
		Window:                window,
		ProcessorMetaSupplier: metaSupplier,
	}
}

// AddToDag materializes one vertex with one broadcast edge per upstream,
// since there is no key to partition by (spec.md §4.4).
func (t *CoAggregate) AddToDag(ctx Context) error {
	name := ctx.VertexName(t.Name(), "")
	pv, err := ctx.AddVertex(t, name, t.ProcessorMetaSupplier)
	if err != nil {
		return err
	}
	return ctx.AddEdges(t, pv.Vertex, func(edge *dag.Edge, _ int) {
		edge.Broadcast()
	})
}
