package planner

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TomaszGaweda/hazelcast-jet/dag"
	"github.com/TomaszGaweda/hazelcast-jet/errs"
	"github.com/TomaszGaweda/hazelcast-jet/transform"
)

func noopSupplier() dag.ProcessorMetaSupplier {
	return func() dag.Processor { return struct{}{} }
}

func TestPlanner_UniqueVertexNames(t *testing.T) {
	src := transform.NewSource("source", noopSupplier(), nil)
	m1 := transform.NewMap("map", src, func(x int) int { return x }, noopSupplier())
	m2 := transform.NewMap("map", src, func(x int) int { return x }, noopSupplier())
	sink1 := transform.NewSink("sink", m1, noopSupplier())
	sink2 := transform.NewSink("sink", m2, noopSupplier())

	adjacency := map[transform.Transform][]transform.Transform{
		src:   {m1, m2},
		m1:    {sink1},
		m2:    {sink2},
		sink1: {},
		sink2: {},
	}

	d, err := New().CreateDag(adjacency)
	assert.NoError(t, err)

	seen := map[string]bool{}
	for _, v := range d.Vertices() {
		assert.False(t, seen[v.Name], "duplicate vertex name %q", v.Name)
		seen[v.Name] = true
	}
	assert.Len(t, d.Vertices(), 5)
}

func TestPlanner_OrdinalsAreValidAndNeverReused(t *testing.T) {
	src := transform.NewSource("source", noopSupplier(), nil)
	m := transform.NewMap("map", src, func(x int) int { return x }, noopSupplier())
	sink := transform.NewSink("sink", m, noopSupplier())

	adjacency := map[transform.Transform][]transform.Transform{
		src:  {m},
		m:    {sink},
		sink: {},
	}

	d, err := New().CreateDag(adjacency)
	assert.NoError(t, err)

	usedOut := map[string]bool{}
	usedIn := map[string]bool{}
	for _, e := range d.Edges() {
		assert.GreaterOrEqual(t, e.SourceOrdinal, 0)
		assert.GreaterOrEqual(t, e.DestOrdinal, 0)
		outKey := fmt.Sprintf("%s/%d", e.SourceVertex.Name, e.SourceOrdinal)
		inKey := fmt.Sprintf("%s/%d", e.DestVertex.Name, e.DestOrdinal)
		assert.False(t, usedOut[outKey], "outbound ordinal reused: %s", outKey)
		assert.False(t, usedIn[inKey], "inbound ordinal reused: %s", inKey)
		usedOut[outKey] = true
		usedIn[inKey] = true
	}
}

func TestPlanner_TopologicalOrder(t *testing.T) {
	src := transform.NewSource("source", noopSupplier(), nil)
	m := transform.NewMap("map", src, func(x int) int { return x }, noopSupplier())
	sink := transform.NewSink("sink", m, noopSupplier())

	adjacency := map[transform.Transform][]transform.Transform{
		src:  {m},
		m:    {sink},
		sink: {},
	}

	d, err := New().CreateDag(adjacency)
	assert.NoError(t, err)

	createdAt := map[string]int{}
	for i, v := range d.Vertices() {
		createdAt[v.Name] = i
	}
	for _, e := range d.Edges() {
		assert.Less(t, createdAt[e.SourceVertex.Name], createdAt[e.DestVertex.Name],
			"source vertex %q must be created before destination vertex %q", e.SourceVertex.Name, e.DestVertex.Name)
	}
}

func TestPlanner_CycleFailsInvalidPipeline(t *testing.T) {
	src := transform.NewSource("source", noopSupplier(), nil)
	m1 := transform.NewMap("map1", src, func(x int) int { return x }, noopSupplier())
	m2 := transform.NewMap("map2", m1, func(x int) int { return x }, noopSupplier())

	// m2 feeds back into m1's adjacency entry, forming a cycle the
	// topological sort can never fully drain.
	adjacency := map[transform.Transform][]transform.Transform{
		src: {m1},
		m1:  {m2},
		m2:  {m1},
	}

	_, err := New().CreateDag(adjacency)
	assert.Error(t, err)
	assert.IsType(t, &errs.InvalidPipelineError{}, err)
}

func TestPlanner_LeakageFailsInvalidPipeline(t *testing.T) {
	src := transform.NewSource("source", noopSupplier(), nil)
	m := transform.NewMap("dangling-map", src, func(x int) int { return x }, noopSupplier())

	adjacency := map[transform.Transform][]transform.Transform{
		src: {m},
		m:   {}, // not a sink, and nothing downstream: leaked
	}

	_, err := New().CreateDag(adjacency)
	assert.Error(t, err)
	assert.IsType(t, &errs.InvalidPipelineError{}, err)
	assert.Contains(t, err.Error(), "dangling-map")
}

func TestPlanner_VertexNameDisambiguation(t *testing.T) {
	p := New()
	assert.Equal(t, "foo", p.VertexName("foo", ""))
	assert.Equal(t, "foo-2", p.VertexName("foo", ""))
	assert.Equal(t, "foo-3", p.VertexName("foo", ""))
}

func TestPlanner_LocalParallelism(t *testing.T) {
	t.Run("case-1", func(t *testing.T) {
		src := transform.NewSource("source", noopSupplier(), nil)
		src.Header = src.Header.WithLocalParallelism(-5)
		sink := transform.NewSink("sink", src, noopSupplier())
		adjacency := map[transform.Transform][]transform.Transform{
			src:  {sink},
			sink: {},
		}

		_, err := New().CreateDag(adjacency)
		assert.Error(t, err)
		assert.IsType(t, &errs.InvalidArgumentError{}, err)
	})

	t.Run("case-2", func(t *testing.T) {
		src := transform.NewSource("source", noopSupplier(), nil)
		src.Header = src.Header.WithLocalParallelism(4)
		sink := transform.NewSink("sink", src, noopSupplier())
		adjacency := map[transform.Transform][]transform.Transform{
			src:  {sink},
			sink: {},
		}

		d, err := New().CreateDag(adjacency)
		assert.NoError(t, err)
		assert.Equal(t, 4, d.Vertices()[0].LocalParallelism)
	})
}

func TestPlanner_CoGroupOrdinalsFollowUpstreamOrder(t *testing.T) {
	a := transform.NewSource("a", noopSupplier(), nil)
	b := transform.NewSource("b", noopSupplier(), nil)
	c := transform.NewSource("c", noopSupplier(), nil)
	keyFn := func(item any) any { return item }
	coGroup := transform.NewCoGroup("d", []transform.Transform{a, b, c},
		[]dag.KeyFn{keyFn, keyFn, keyFn}, nil, nil, noopSupplier())
	sink := transform.NewSink("sink", coGroup, noopSupplier())

	adjacency := map[transform.Transform][]transform.Transform{
		a:       {coGroup},
		b:       {coGroup},
		c:       {coGroup},
		coGroup: {sink},
		sink:    {},
	}

	d, err := New().CreateDag(adjacency)
	assert.NoError(t, err)

	byDestOrdinal := map[int]*dag.Edge{}
	for _, e := range d.Edges() {
		if e.DestVertex.Name == "d" {
			byDestOrdinal[e.DestOrdinal] = e
		}
	}
	assert.Len(t, byDestOrdinal, 3)
	for destOrd, name := range []string{"a", "b", "c"} {
		if e, ok := byDestOrdinal[destOrd]; assert.True(t, ok, "no edge at ordinal %d", destOrd) {
			assert.Equal(t, name, e.SourceVertex.Name, "ordinal %d must come from upstream %q", destOrd, name)
		}
	}
	for destOrd, e := range byDestOrdinal {
		assert.Equal(t, 0, e.SourceOrdinal, "ordinal %d: fresh source vertices emit on their own ordinal 0", destOrd)
	}
}
