package transform

import (
	"github.com/TomaszGaweda/hazelcast-jet/dag"
	"github.com/TomaszGaweda/hazelcast-jet/errs"
)

// CoGroup is an N-ary (N≥2) keyed co-aggregation: one key function per
// upstream, an N-ary aggregate operation, and an optional window
// definition (spec.md §3, invariant I3: len(KeyFns) == len(upstream)).
type CoGroup struct {
	Header
	KeyFns                []dag.KeyFn
	AggrOp                AggregateOperation
	Window                *WindowDefinition
	ProcessorMetaSupplier dag.ProcessorMetaSupplier
}

// NewCoGroup builds a CoGroup transform. len(keyFns) must equal
// len(upstream); AddToDag validates this before lowering and fails the
// build with an InvalidPipelineError rather than trusting the caller.
func NewCoGroup(name string, upstream []Transform, keyFns []dag.KeyFn, aggrOp AggregateOperation, window *WindowDefinition,
	metaSupplier dag.ProcessorMetaSupplier) *CoGroup {
	return &CoGroup{
		Header:                NewHeader(name, upstream),
		KeyFns:                keyFns,
		AggrOp:                aggrOp,
		Window:                window,
		ProcessorMetaSupplier: metaSupplier,
	}
}

// AddToDag materializes one vertex with M ordinals 0..M-1 (one per
// upstream), each edge partitioned by that upstream's key function
// (spec.md §4.4, invariant I3: len(KeyFns) == len(Upstream())).
func (t *CoGroup) AddToDag(ctx Context) error {
	if len(t.KeyFns) != len(t.Upstream()) {
		return errs.NewInvalidPipeline("co-group %q: %d key functions for %d upstreams", t.Name(), len(t.KeyFns), len(t.Upstream()))
	}
	name := ctx.VertexName(t.Name(), "")
	pv, err := ctx.AddVertex(t, name, t.ProcessorMetaSupplier)
	if err != nil {
		return err
	}
	return ctx.AddEdges(t, pv.Vertex, func(edge *dag.Edge, destOrdinal int) {
		edge.Partitioned(t.KeyFns[destOrdinal])
	})
}
