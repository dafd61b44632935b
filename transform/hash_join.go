package transform

import "github.com/TomaszGaweda/hazelcast-jet/dag"

// JoinClause describes how one side input joins against the primary
// stream: the key extractor on each side, plus a projection applied to a
// matched pair (spec.md §3).
type JoinClause struct {
	KeyLeftFn  dag.KeyFn
	KeyRightFn dag.KeyFn
	ProjectFn  any
}

// HashJoin is one primary upstream plus K side upstreams, each with its
// own JoinClause (spec.md §3). Upstream()[0] is always the primary;
// Upstream()[1:] are the sides, in JoinClauses order.
type HashJoin struct {
	Header
	JoinClauses           []JoinClause
	ProcessorMetaSupplier dag.ProcessorMetaSupplier
}

// NewHashJoin builds a HashJoin transform. len(joinClauses) must equal
// len(sides).
func NewHashJoin(name string, primary Transform, sides []Transform, joinClauses []JoinClause,
	metaSupplier dag.ProcessorMetaSupplier) *HashJoin {
	upstream := make([]Transform, 0, len(sides)+1)
	upstream = append(upstream, primary)
	upstream = append(upstream, sides...)
	return &HashJoin{
		Header:                NewHeader(name, upstream),
		JoinClauses:           joinClauses,
		ProcessorMetaSupplier: metaSupplier,
	}
}

// AddToDag materializes one vertex: the primary edge at ordinal 0 (plain,
// preserving upstream order), and one broadcast edge per side input at
// ordinals 1..K, following the primary (spec.md §4.4).
func (t *HashJoin) AddToDag(ctx Context) error {
	name := ctx.VertexName(t.Name(), "")
	pv, err := ctx.AddVertex(t, name, t.ProcessorMetaSupplier)
	if err != nil {
		return err
	}
	return ctx.AddEdges(t, pv.Vertex, func(edge *dag.Edge, destOrdinal int) {
		if destOrdinal == 0 {
			// Primary edge: left as Unicast, the default.
			return
		}
		edge.Broadcast()
	})
}
