package transform

import "github.com/TomaszGaweda/hazelcast-jet/dag"

// oneInputKind distinguishes the three stateless single-upstream
// variants, which share an identical lowering (spec.md §4.4: "one
// vertex; one inbound edge per upstream at ordinal 0").
type oneInputKind int

const (
	mapKind oneInputKind = iota
	filterKind
	flatMapKind
)

// OneInput is Map/Filter/FlatMap: one upstream, a stateless user
// function (spec.md §3). Fn is carried opaquely; serializing it for
// cluster distribution is out of scope (spec.md §1).
type OneInput struct {
	Header
	kind                  oneInputKind
	Fn                    any
	ProcessorMetaSupplier dag.ProcessorMetaSupplier
}

// NewMap builds a Map transform over a single upstream.
func NewMap(name string, upstream Transform, fn any, metaSupplier dag.ProcessorMetaSupplier) *OneInput {
	return &OneInput{Header: NewHeader(name, []Transform{upstream}), kind: mapKind, Fn: fn, ProcessorMetaSupplier: metaSupplier}
}

// NewFilter builds a Filter transform over a single upstream.
func NewFilter(name string, upstream Transform, fn any, metaSupplier dag.ProcessorMetaSupplier) *OneInput {
	return &OneInput{Header: NewHeader(name, []Transform{upstream}), kind: filterKind, Fn: fn, ProcessorMetaSupplier: metaSupplier}
}

// NewFlatMap builds a FlatMap transform over a single upstream.
func NewFlatMap(name string, upstream Transform, fn any, metaSupplier dag.ProcessorMetaSupplier) *OneInput {
	return &OneInput{Header: NewHeader(name, []Transform{upstream}), kind: flatMapKind, Fn: fn, ProcessorMetaSupplier: metaSupplier}
}

// AddToDag materializes the single vertex and its single inbound edge at
// ordinal 0.
func (t *OneInput) AddToDag(ctx Context) error {
	name := ctx.VertexName(t.Name(), "")
	pv, err := ctx.AddVertex(t, name, t.ProcessorMetaSupplier)
	if err != nil {
		return err
	}
	return ctx.AddEdges(t, pv.Vertex, nil)
}
