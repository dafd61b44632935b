package transform

import "github.com/TomaszGaweda/hazelcast-jet/dag"

// Group is a windowed-or-rolling keyed aggregation: one upstream, a key
// function, an aggregate operation, and an optional window definition
// (spec.md §3). A nil Window means "rolling": every event updates a
// running per-key aggregate with no window boundaries.
type Group struct {
	Header
	KeyFn  dag.KeyFn
	AggrOp AggregateOperation
	Window *WindowDefinition

	AccumulatorMetaSupplier dag.ProcessorMetaSupplier
	CombinerMetaSupplier    dag.ProcessorMetaSupplier
}

// NewGroup builds a Group transform. combinerMetaSupplier is only used
// when window is non-nil (spec.md §4.4: the windowed lowering is
// two-stage; the rolling lowering is single-stage).
func NewGroup(name string, upstream Transform, keyFn dag.KeyFn, aggrOp AggregateOperation, window *WindowDefinition,
	accumulatorMetaSupplier, combinerMetaSupplier dag.ProcessorMetaSupplier) *Group {
	return &Group{
		Header:                  NewHeader(name, []Transform{upstream}),
		KeyFn:                   keyFn,
		AggrOp:                  aggrOp,
		Window:                  window,
		AccumulatorMetaSupplier: accumulatorMetaSupplier,
		CombinerMetaSupplier:    combinerMetaSupplier,
	}
}

// AddToDag materializes either one vertex (rolling) or two (windowed): a
// partitioning accumulator fed by a partitioned-by-key edge, and —when
// windowed— a combiner fed by an allToOne edge producing timestamped
// results. The combiner, when present, is the transform's registered
// output vertex (spec.md §4.4).
func (t *Group) AddToDag(ctx Context) error {
	accSuffix := "-accumulate"
	if t.Window == nil {
		// Rolling aggregation: the single vertex carries the transform's name.
		accSuffix = ""
	}
	accName := ctx.VertexName(t.Name(), accSuffix)
	accPv, err := ctx.AddVertex(t, accName, t.AccumulatorMetaSupplier)
	if err != nil {
		return err
	}
	if err := ctx.AddEdges(t, accPv.Vertex, func(edge *dag.Edge, _ int) {
		edge.Partitioned(t.KeyFn)
	}); err != nil {
		return err
	}

	if t.Window == nil {
		// Rolling aggregation: the accumulator is the output vertex.
		return nil
	}

	combName := ctx.VertexName(t.Name(), "-combine")
	combPv, err := ctx.AddVertex(t, combName, t.CombinerMetaSupplier)
	if err != nil {
		return err
	}
	combPv.Vertex.LocalParallelism = 1
	return ctx.ConnectVertices(accPv, combPv.Vertex, 0, func(edge *dag.Edge) {
		edge.AllToOne()
	})
}
