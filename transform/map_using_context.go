package transform

import "github.com/TomaszGaweda/hazelcast-jet/dag"

// MapUsingContext is MapUsingContext (sync or async): one upstream, a
// context factory and a function; the async variant carries a bounded
// concurrency budget (spec.md §3).
type MapUsingContext struct {
	Header
	ContextFactory        any
	Fn                    any
	Async                 bool
	MaxConcurrentOps      int
	ProcessorMetaSupplier dag.ProcessorMetaSupplier
}

// NewMapUsingContext builds a synchronous MapUsingContext transform.
func NewMapUsingContext(name string, upstream Transform, contextFactory, fn any, metaSupplier dag.ProcessorMetaSupplier) *MapUsingContext {
	return &MapUsingContext{
		Header:                NewHeader(name, []Transform{upstream}),
		ContextFactory:        contextFactory,
		Fn:                    fn,
		ProcessorMetaSupplier: metaSupplier,
	}
}

// NewMapUsingContextAsync builds an async MapUsingContext transform
// bounded to maxConcurrentOps in-flight operations per processor
// instance.
func NewMapUsingContextAsync(name string, upstream Transform, contextFactory, fn any, maxConcurrentOps int, metaSupplier dag.ProcessorMetaSupplier) *MapUsingContext {
	return &MapUsingContext{
		Header:                NewHeader(name, []Transform{upstream}),
		ContextFactory:        contextFactory,
		Fn:                    fn,
		Async:                 true,
		MaxConcurrentOps:      maxConcurrentOps,
		ProcessorMetaSupplier: metaSupplier,
	}
}

// AddToDag materializes the single vertex and its single inbound edge at
// ordinal 0, identically to OneInput (spec.md §4.4).
func (t *MapUsingContext) AddToDag(ctx Context) error {
	name := ctx.VertexName(t.Name(), "")
	pv, err := ctx.AddVertex(t, name, t.ProcessorMetaSupplier)
	if err != nil {
		return err
	}
	return ctx.AddEdges(t, pv.Vertex, nil)
}
