package transform

import "github.com/TomaszGaweda/hazelcast-jet/dag"

// Merge unions N upstreams of assignment-compatible element type by
// concatenation of streams (spec.md §3).
type Merge struct {
	Header
	ProcessorMetaSupplier dag.ProcessorMetaSupplier
}

// NewMerge builds a Merge transform over upstream, which must have at
// least one entry.
func NewMerge(name string, upstream []Transform, metaSupplier dag.ProcessorMetaSupplier) *Merge {
	return &Merge{
		Header:                NewHeader(name, upstream),
		ProcessorMetaSupplier: metaSupplier,
	}
}

// AddToDag materializes one vertex with one inbound edge per upstream at
// distinct ordinals, all Unicast (spec.md §4.4).
func (t *Merge) AddToDag(ctx Context) error {
	name := ctx.VertexName(t.Name(), "")
	pv, err := ctx.AddVertex(t, name, t.ProcessorMetaSupplier)
	if err != nil {
		return err
	}
	return ctx.AddEdges(t, pv.Vertex, func(edge *dag.Edge, _ int) {
		edge.Routing = dag.Unicast
	})
}
