package transform

import "github.com/TomaszGaweda/hazelcast-jet/dag"

// Sink is a transform with exactly one upstream and no downstream: a
// processor-supplier that consumes the stream and produces nothing
// further (spec.md §3). IsSink returns true only for a Sink (or a Peeked
// wrapping one), which the planner and pipeline builder rely on to permit
// a dangling transform (invariant I1).
type Sink struct {
	Header
	ProcessorMetaSupplier dag.ProcessorMetaSupplier
}

// NewSink builds a Sink transform over a single upstream.
func NewSink(name string, upstream Transform, metaSupplier dag.ProcessorMetaSupplier) *Sink {
	return &Sink{
		Header:                NewHeader(name, []Transform{upstream}),
		ProcessorMetaSupplier: metaSupplier,
	}
}

func (t *Sink) IsSink() bool { return true }

// AddToDag materializes one vertex with one plain inbound edge from its
// upstream (spec.md §4.4).
func (t *Sink) AddToDag(ctx Context) error {
	name := ctx.VertexName(t.Name(), "")
	pv, err := ctx.AddVertex(t, name, t.ProcessorMetaSupplier)
	if err != nil {
		return err
	}
	return ctx.AddEdges(t, pv.Vertex, nil)
}
