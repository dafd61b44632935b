// Package planner lowers a pipeline's transform tree into a dag.DAG
// (spec.md §4.5). Planner implements transform.Context, the small
// planner-operations interface each Transform variant's AddToDag is given
// (Design Notes, "Planner ↔ Transform callback"); transform never imports
// planner, so the two packages compose without a cycle.
package planner

import (
	"fmt"

	"github.com/TomaszGaweda/hazelcast-jet/dag"
	"github.com/TomaszGaweda/hazelcast-jet/errs"
	"github.com/TomaszGaweda/hazelcast-jet/log"
	"github.com/TomaszGaweda/hazelcast-jet/transform"
)

// Planner runs on a single caller thread, start to finish, with no
// concurrent state (spec.md §5). A Planner is single-use: call CreateDag
// once and discard it.
type Planner struct {
	logger       log.Logger
	dag          *dag.DAG
	xform2vertex map[transform.Transform]*transform.PlannerVertex
	usedNames    map[string]bool
}

// New builds an empty Planner.
func New() *Planner {
	return &Planner{
		logger:       log.Global().Named("planner"),
		dag:          dag.New(),
		xform2vertex: map[transform.Transform]*transform.PlannerVertex{},
		usedNames:    map[string]bool{},
	}
}

// CreateDag lowers adjacencyMap — a mapping from each transform to its
// downstream list — into a DAG (spec.md §4.5.1). A DAG is returned only on
// success; a failed build's partial state is discarded (spec.md §5,
// "resource discipline").
func (p *Planner) CreateDag(adjacencyMap map[transform.Transform][]transform.Transform) (*dag.DAG, error) {
	if err := p.validateNoLeakage(adjacencyMap); err != nil {
		return nil, err
	}

	ordered, err := topoSort(adjacencyMap)
	if err != nil {
		return nil, err
	}

	for _, t := range ordered {
		if err := t.AddToDag(p); err != nil {
			switch err.(type) {
			case *errs.InvalidArgumentError, *errs.InternalError:
				// Already the right kind (spec.md §7); rewrapping as
				// InvalidPipelineError would hide it from callers matching
				// on error type.
				return nil, err
			default:
				return nil, errs.WrapInvalidPipeline(err, "lowering transform %q", t.Name())
			}
		}
	}

	p.logger.Infow("planned pipeline", "vertices", len(p.dag.Vertices()), "edges", len(p.dag.Edges()))
	return p.dag, nil
}

// validateNoLeakage fails the build if any non-sink transform has no
// downstream (spec.md §4.5.1 step 2, invariant I1).
func (p *Planner) validateNoLeakage(adjacencyMap map[transform.Transform][]transform.Transform) error {
	var leaked []string
	for t, downstream := range adjacencyMap {
		if len(downstream) == 0 && !t.IsSink() {
			leaked = append(leaked, t.Name())
		}
	}
	if len(leaked) > 0 {
		return errs.NewInvalidPipeline("unattached transforms: %v", leaked)
	}
	return nil
}

// VertexName returns a unique name formed from baseName and suffix,
// retrying with a numeric disambiguator on collision (spec.md §4.5.2).
// The first candidate (index 1) carries no numeric suffix, so the common
// case stays human-readable.
func (p *Planner) VertexName(baseName, suffix string) string {
	for index := 1; ; index++ {
		var candidate string
		if index == 1 {
			candidate = baseName + suffix
		} else {
			candidate = fmt.Sprintf("%s-%d%s", baseName, index, suffix)
		}
		if !p.usedNames[candidate] {
			p.usedNames[candidate] = true
			return candidate
		}
	}
}

// AddVertex allocates a fresh vertex named `name` and registers it as t's
// output vertex with a fresh outbound ordinal counter (spec.md §4.5.4).
// A local-parallelism hint below the "use engine default" sentinel (-1) is
// an invalid argument rather than a silently-ignored value.
func (p *Planner) AddVertex(t transform.Transform, name string, metaSupplier dag.ProcessorMetaSupplier) (*transform.PlannerVertex, error) {
	lp := t.LocalParallelism()
	if lp < -1 {
		return nil, errs.NewInvalidArgument("transform %q: negative local parallelism: %d", t.Name(), lp)
	}

	v, err := p.dag.NewVertex(name, metaSupplier)
	if err != nil {
		return nil, err
	}
	if lp > 0 {
		v.LocalParallelism = lp
	}
	pv := &transform.PlannerVertex{Vertex: v, AvailableOrdinal: 0}
	p.xform2vertex[t] = pv
	return pv, nil
}

// RegisterVertex aliases t to an already-materialized vertex, without
// allocating a new one (spec.md §4.4, PeekedTransform's lowering).
func (p *Planner) RegisterVertex(t transform.Transform, pv *transform.PlannerVertex) {
	p.xform2vertex[t] = pv
}

// VertexFor looks up the planner vertex already registered for t.
func (p *Planner) VertexFor(t transform.Transform) (*transform.PlannerVertex, bool) {
	pv, ok := p.xform2vertex[t]
	return pv, ok
}

// AddEdges draws one inbound edge per upstream of t into toVertex, at
// destination ordinals 0..arity-1 in t's declared upstream-list order
// (spec.md §4.5.3). configureEdge may be nil when every edge stays at its
// zero-value routing (Unicast).
func (p *Planner) AddEdges(t transform.Transform, toVertex *dag.Vertex, configureEdge func(edge *dag.Edge, destOrdinal int)) error {
	for destOrdinal, u := range t.Upstream() {
		fromPv, ok := p.xform2vertex[u]
		if !ok {
			return errs.NewInternal("transform %q: upstream %q has no registered vertex; topological order violated", t.Name(), u.Name())
		}
		edge := dag.From(fromPv.Vertex, fromPv.AvailableOrdinal).To(toVertex, destOrdinal)
		fromPv.AvailableOrdinal++
		if configureEdge != nil {
			configureEdge(edge, destOrdinal)
		}
		if err := p.dag.AddEdge(edge); err != nil {
			return err
		}
	}
	return nil
}

// ConnectVertices draws a single edge directly between two already
// allocated vertices, consuming one outbound ordinal of `from`. Used by
// multi-vertex lowerings that wire vertices internal to one transform
// (e.g. a windowed Group's accumulator->combiner edge) rather than edges
// coming from another transform's output.
func (p *Planner) ConnectVertices(from *transform.PlannerVertex, to *dag.Vertex, toOrdinal int, configure func(edge *dag.Edge)) error {
	edge := dag.From(from.Vertex, from.AvailableOrdinal).To(to, toOrdinal)
	from.AvailableOrdinal++
	if configure != nil {
		configure(edge)
	}
	return p.dag.AddEdge(edge)
}
