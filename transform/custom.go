package transform

// Custom is an escape hatch for a transform whose DAG lowering can't be
// expressed by the fixed variants above: it carries a user-supplied
// callback that performs its own vertex/edge wiring against Context
// (spec.md §3, Design Notes "Transform polymorphism" — mirrors Jet's own
// CustomTransform, which hands the planner-operations interface straight
// to caller-supplied lowering code rather than special-casing it in the
// planner).
type Custom struct {
	Header
	// Lower performs this transform's DAG materialization. It must
	// register a vertex for t via ctx.AddVertex or ctx.RegisterVertex
	// before returning nil, the same contract every built-in variant's
	// AddToDag honors.
	Lower func(ctx Context, t *Custom) error
}

// NewCustom builds a Custom transform with arbitrary upstream and an
// arbitrary lowering callback.
func NewCustom(name string, upstream []Transform, lower func(ctx Context, t *Custom) error) *Custom {
	return &Custom{
		Header: NewHeader(name, upstream),
		Lower:  lower,
	}
}

// AddToDag delegates entirely to the caller-supplied Lower callback.
func (t *Custom) AddToDag(ctx Context) error {
	return t.Lower(ctx, t)
}
