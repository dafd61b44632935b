// Package transform encodes the pipeline-level transform nodes as a
// tagged variant (spec.md §3, §4.4, Design Notes "Transform polymorphism")
// and their DAG-materialization contract, AddToDag. The planner package
// consumes these; neither package imports the other's concrete types —
// Context is the small planner-operations interface each variant's
// AddToDag is given, keeping the coupling explicit and fake-able for
// tests (Design Notes, "Planner ↔ Transform callback").
package transform

import "github.com/TomaszGaweda/hazelcast-jet/dag"

// Transform is a node in the pipeline graph (spec.md §3). Implementations
// are pointers to structs carrying a common Header plus variant-specific fields;
// AddToDag pattern-matches on the variant by virtue of being implemented
// once per concrete type.
type Transform interface {
	// Name is the transform's human-readable name, also the base for its
	// materialized vertex name(s).
	Name() string
	// Upstream is the ordered list of transforms this one consumes from.
	// Its length is the transform's arity (spec.md invariant I3).
	Upstream() []Transform
	// LocalParallelism is a hint for the execution runtime; -1 means "use
	// the engine default".
	LocalParallelism() int
	// IsSink reports whether this transform is declared terminal: a sink
	// is the only kind of transform allowed to have no downstream
	// (spec.md invariant I1).
	IsSink() bool
	// AddToDag materializes one or more DAG vertices and edges via ctx,
	// registering this transform's output vertex — the one downstream
	// transforms must connect to (spec.md §4.4).
	AddToDag(ctx Context) error
	// String is the transform's stable string representation, used by
	// the planner to break topological-sort ties deterministically
	// (spec.md §4.5.1 step 3).
	String() string
}

// PlannerVertex is the per-transform planning record (spec.md §3): the
// materialized vertex plus the next free outbound ordinal, incremented
// every time an edge is drawn from this vertex.
type PlannerVertex struct {
	Vertex           *dag.Vertex
	AvailableOrdinal int
}

func (pv *PlannerVertex) String() string {
	return pv.Vertex.Name
}

// Context is the planner-operations interface handed to each variant's
// AddToDag (Design Notes, "Planner ↔ Transform callback"): it exposes
// exactly the mutations a lowering needs without handing over the whole
// Planner.
type Context interface {
	// AddVertex allocates a fresh vertex named `name` with the given
	// meta-supplier and registers (or re-registers, for multi-vertex
	// lowerings) it as t's output vertex.
	AddVertex(t Transform, name string, metaSupplier dag.ProcessorMetaSupplier) (*PlannerVertex, error)
	// AddEdges draws one inbound edge per upstream of t into toVertex, at
	// destination ordinals 0..arity-1 in upstream-list order; configureEdge
	// sets routing/distribution policy per edge.
	AddEdges(t Transform, toVertex *dag.Vertex, configureEdge func(edge *dag.Edge, destOrdinal int)) error
	// VertexName returns a unique name formed from baseName and suffix,
	// retrying with a numeric disambiguator (spec.md §4.5.2).
	VertexName(baseName, suffix string) string
	// VertexFor looks up the planner vertex already registered for t.
	VertexFor(t Transform) (*PlannerVertex, bool)
	// ConnectVertices draws a single edge directly between two already
	// allocated vertices, consuming one outbound ordinal of `from`. Used
	// by multi-vertex lowerings (e.g. a windowed Group's
	// accumulator->combiner edge) that wire vertices internal to one
	// transform rather than edges coming from another transform's output.
	ConnectVertices(from *PlannerVertex, to *dag.Vertex, toOrdinal int, configure func(edge *dag.Edge)) error
	// RegisterVertex aliases t to an already-materialized PlannerVertex,
	// without allocating a new DAG vertex. PeekedTransform uses this to
	// make itself resolve to the same vertex as the transform it wraps.
	RegisterVertex(t Transform, pv *PlannerVertex)
}

// Header holds the fields common to every Transform variant (Design
// Notes, "Transform polymorphism": "shared fields... live in a common
// header record").
type Header struct {
	name             string
	upstream         []Transform
	localParallelism int
}

// NewHeader builds a Header with the given name and upstream list and the
// default local-parallelism hint (-1, "use engine default").
func NewHeader(name string, upstream []Transform) Header {
	return Header{name: name, upstream: upstream, localParallelism: -1}
}

func (h Header) Name() string           { return h.name }
func (h Header) Upstream() []Transform  { return h.upstream }
func (h Header) LocalParallelism() int  { return h.localParallelism }
func (h Header) IsSink() bool           { return false }
func (h Header) String() string         { return h.name }

// WithLocalParallelism is a small helper variants can call from their own
// constructors to apply an optional parallelism hint; it returns the
// modified Header by value since Header is itself held by value in every
// variant.
func (h Header) WithLocalParallelism(p int) Header {
	h.localParallelism = p
	return h
}

// TailTransforms returns every transform but the first: for an upstream
// list, all upstreams but the primary one (ported from the original's
// Planner.tailList, SPEC_FULL.md §10.1). None of the lowerings in this
// package calls it.
func TailTransforms(transforms []Transform) []Transform {
	if len(transforms) == 0 {
		return nil
	}
	return transforms[1:]
}
