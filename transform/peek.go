package transform

import (
	"github.com/TomaszGaweda/hazelcast-jet/dag"
	"github.com/TomaszGaweda/hazelcast-jet/errs"
)

// Peeked wraps any transform to add a logging side-effect without
// changing semantics (spec.md §3, §4.4). Its Upstream mirrors the wrapped
// transform's, so it slots into a pipeline wherever the wrapped transform
// would have.
type Peeked struct {
	Header
	Wrapped Transform
	// PeekFn observes each item flowing through the wrapped vertex; it
	// never transforms or drops items (spec.md: "adds a logging tap;
	// semantics unchanged").
	PeekFn any
}

// NewPeeked wraps `wrapped` with a peek side-effect.
func NewPeeked(wrapped Transform, peekFn any) *Peeked {
	return &Peeked{
		Header:  NewHeader(wrapped.Name(), wrapped.Upstream()),
		Wrapped: wrapped,
		PeekFn:  peekFn,
	}
}

func (t *Peeked) IsSink() bool { return t.Wrapped.IsSink() }

// AddToDag delegates to the wrapped transform, then installs the peek
// decorator on the vertex it produced, and finally registers itself as
// an alias to that same vertex so its own downstream transforms resolve
// correctly (spec.md §4.4).
func (t *Peeked) AddToDag(ctx Context) error {
	if err := t.Wrapped.AddToDag(ctx); err != nil {
		return err
	}
	pv, ok := ctx.VertexFor(t.Wrapped)
	if !ok {
		return errs.NewInternal("peeked transform %q: wrapped transform %q registered no vertex", t.Name(), t.Wrapped.Name())
	}
	pv.Vertex.MetaSupplier = withPeek(pv.Vertex.MetaSupplier, t.PeekFn)
	ctx.RegisterVertex(t, pv)
	return nil
}

// peekingProcessor tags a wrapped Processor with its peek function. Both
// fields are opaque to this package; the execution runtime (out of
// scope, spec.md §1) is the only code that ever unwraps and calls them.
type peekingProcessor struct {
	inner  dag.Processor
	peekFn any
}

// withPeek decorates a meta-supplier so the processor it produces is
// wrapped in a peekingProcessor, without changing the vertex's identity
// or edges.
func withPeek(inner dag.ProcessorMetaSupplier, peekFn any) dag.ProcessorMetaSupplier {
	return func() dag.Processor {
		return peekingProcessor{inner: inner(), peekFn: peekFn}
	}
}
