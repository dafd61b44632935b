// Package dag holds the execution-layer graph a pipeline is lowered into:
// Vertex, Edge and the DAG that owns them. Nothing in this package knows
// about Transforms; the planner package is the only caller that builds a
// DAG from a pipeline. Instantiating and running the graph belongs to the
// cluster-wide execution runtime, which is out of scope here (spec.md §1) —
// a DAG produced by this package is a plan, never executed by this module.
package dag

import (
	"fmt"

	"github.com/TomaszGaweda/hazelcast-jet/errs"
)

// Processor is an opaque runtime unit instantiated by the execution
// runtime from a ProcessorMetaSupplier. This module never constructs or
// calls one; it only threads the supplier through from Transform to
// Vertex.
type Processor interface{}

// ProcessorMetaSupplier produces the per-vertex processor factory. Concrete
// implementations (source readers, sink writers, aggregate processors)
// are external collaborators (spec.md §1); the planner treats every
// supplier as opaque.
type ProcessorMetaSupplier func() Processor

// KeyFn extracts a partitioning key from a stream item. Used by
// Partitioned edges to route items consistently to the same downstream
// instance.
type KeyFn func(item any) any

// RoutingPolicy selects how an edge distributes items from its source
// vertex's instances to its destination vertex's instances.
type RoutingPolicy int

const (
	// Unicast sends each item to exactly one destination instance,
	// chosen arbitrarily but preserving order within that instance.
	Unicast RoutingPolicy = iota
	// Broadcast sends each item to every destination instance; no
	// ordering is implied across receivers (spec.md §5).
	Broadcast
	// Partitioned sends each item to the destination instance owning the
	// key extracted by PartitioningKeyFn, preserving per-key order.
	Partitioned
	// AllToOne sends every item to a single destination instance,
	// regardless of key — used to fan a keyed stream into one combiner.
	AllToOne
	// Isolated behaves like Unicast but forbids the runtime from
	// co-locating source and destination instances on the same member
	// (external runtime concern; recorded here only as a routing tag).
	Isolated
)

func (r RoutingPolicy) String() string {
	switch r {
	case Unicast:
		return "unicast"
	case Broadcast:
		return "broadcast"
	case Partitioned:
		return "partitioned"
	case AllToOne:
		return "allToOne"
	case Isolated:
		return "isolated"
	default:
		return "unknown"
	}
}

// Vertex is a named processing stage. LocalParallelism of -1 defers to the
// engine default.
type Vertex struct {
	Name             string
	MetaSupplier     ProcessorMetaSupplier
	LocalParallelism int
}

func (v *Vertex) String() string {
	return v.Name
}

// Edge connects one outbound ordinal of a source vertex to one inbound
// ordinal of a destination vertex.
type Edge struct {
	SourceVertex  *Vertex
	SourceOrdinal int
	DestVertex    *Vertex
	DestOrdinal   int

	Routing           RoutingPolicy
	PartitioningKeyFn KeyFn
	// Distributed allows the edge to cross cluster-member boundaries;
	// meaningful only to the execution runtime, carried here as a plain
	// flag.
	Distributed bool
	// Priority lets a destination vertex prefer draining one inbound
	// edge before another (e.g. hash-join side inputs before the
	// primary). Lower values are higher priority.
	Priority int
}

// From starts building an edge out of ordinal `ordinal` of `v`.
func From(v *Vertex, ordinal int) *edgeBuilder {
	return &edgeBuilder{edge: &Edge{SourceVertex: v, SourceOrdinal: ordinal}}
}

type edgeBuilder struct {
	edge *Edge
}

// To completes the edge into ordinal `ordinal` of `v`, defaulting to
// Unicast routing until a routing method (Broadcast, Partitioned,
// AllToOne, Isolated) is chained.
func (b *edgeBuilder) To(v *Vertex, ordinal int) *Edge {
	b.edge.DestVertex = v
	b.edge.DestOrdinal = ordinal
	return b.edge
}

// Broadcast sets Broadcast routing and returns the edge for chaining.
func (e *Edge) Broadcast() *Edge {
	e.Routing = Broadcast
	return e
}

// Partitioned sets Partitioned routing with the given key function.
func (e *Edge) Partitioned(keyFn KeyFn) *Edge {
	e.Routing = Partitioned
	e.PartitioningKeyFn = keyFn
	return e
}

// AllToOne sets AllToOne routing.
func (e *Edge) AllToOne() *Edge {
	e.Routing = AllToOne
	return e
}

// Isolated sets Isolated routing.
func (e *Edge) Isolated() *Edge {
	e.Routing = Isolated
	return e
}

// WithDistributed marks the edge as allowed to cross member boundaries.
func (e *Edge) WithDistributed() *Edge {
	e.Distributed = true
	return e
}

// WithPriority sets the edge's drain priority.
func (e *Edge) WithPriority(priority int) *Edge {
	e.Priority = priority
	return e
}

// DAG is the planner's output: a set of uniquely-named vertices and the
// edges between them. It accumulates state until Planner.CreateDag
// returns successfully; a DAG left behind by a failed build is not handed
// to the caller (spec.md §5).
type DAG struct {
	vertices    []*Vertex
	vertexNames map[string]*Vertex
	edges       []*Edge

	outboundOrdinalsUsed map[string]map[int]bool
	inboundOrdinalsUsed  map[string]map[int]bool
}

// New creates an empty DAG.
func New() *DAG {
	return &DAG{
		vertexNames:          map[string]*Vertex{},
		outboundOrdinalsUsed: map[string]map[int]bool{},
		inboundOrdinalsUsed:  map[string]map[int]bool{},
	}
}

// NewVertex allocates and registers a fresh vertex. `name` must be unique
// within the DAG; callers normally obtain a unique name from
// planner.Planner.VertexName first.
func (d *DAG) NewVertex(name string, metaSupplier ProcessorMetaSupplier) (*Vertex, error) {
	if _, taken := d.vertexNames[name]; taken {
		return nil, errs.NewInternal("vertex name %q is already taken", name)
	}
	v := &Vertex{Name: name, MetaSupplier: metaSupplier, LocalParallelism: -1}
	d.vertices = append(d.vertices, v)
	d.vertexNames[name] = v
	return v, nil
}

// AddEdge inserts an edge, enforcing that outbound ordinals at the source
// vertex and inbound ordinals at the destination vertex are never reused
// (spec.md §3, DAG invariants).
func (d *DAG) AddEdge(e *Edge) error {
	outKey := e.SourceVertex.Name
	inKey := e.DestVertex.Name
	if d.outboundOrdinalsUsed[outKey] == nil {
		d.outboundOrdinalsUsed[outKey] = map[int]bool{}
	}
	if d.inboundOrdinalsUsed[inKey] == nil {
		d.inboundOrdinalsUsed[inKey] = map[int]bool{}
	}
	if d.outboundOrdinalsUsed[outKey][e.SourceOrdinal] {
		return errs.NewInternal("ordinal %d already used as an output of vertex %q", e.SourceOrdinal, outKey)
	}
	if d.inboundOrdinalsUsed[inKey][e.DestOrdinal] {
		return errs.NewInternal("ordinal %d already used as an input of vertex %q", e.DestOrdinal, inKey)
	}
	d.outboundOrdinalsUsed[outKey][e.SourceOrdinal] = true
	d.inboundOrdinalsUsed[inKey][e.DestOrdinal] = true
	d.edges = append(d.edges, e)
	return nil
}

// Vertices returns the vertices in creation order.
func (d *DAG) Vertices() []*Vertex {
	return d.vertices
}

// Edges returns the edges in insertion order.
func (d *DAG) Edges() []*Edge {
	return d.edges
}

// VertexByName looks up a vertex, returning false if absent.
func (d *DAG) VertexByName(name string) (*Vertex, bool) {
	v, ok := d.vertexNames[name]
	return v, ok
}

func (d *DAG) String() string {
	return fmt.Sprintf("DAG{vertices=%d, edges=%d}", len(d.vertices), len(d.edges))
}
