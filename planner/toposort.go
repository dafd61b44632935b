package planner

import (
	"sort"

	"github.com/TomaszGaweda/hazelcast-jet/errs"
	"github.com/TomaszGaweda/hazelcast-jet/transform"
)

// topoSort orders every transform in adjacencyMap so that each transform
// appears after all of its upstreams (spec.md §4.5.1 step 3). Among
// transforms that become ready at the same step, it breaks the tie by the
// transform's string representation, so the same pipeline always plans to
// the same vertex/edge layout (spec.md: "tie-break deterministically by
// the transform's string representation").
//
// adjacencyMap maps each transform to its downstream list; it is the same
// shape Planner.CreateDag receives from the pipeline builder.
func topoSort(adjacencyMap map[transform.Transform][]transform.Transform) ([]transform.Transform, error) {
	inDegree := make(map[transform.Transform]int, len(adjacencyMap))
	for t := range adjacencyMap {
		inDegree[t] = 0
	}
	for _, downstream := range adjacencyMap {
		for _, d := range downstream {
			inDegree[d]++
		}
	}

	var ready []transform.Transform
	for t, deg := range inDegree {
		if deg == 0 {
			ready = append(ready, t)
		}
	}

	var ordered []transform.Transform
	for len(ready) > 0 {
		sort.Slice(ready, func(i, j int) bool { return ready[i].String() < ready[j].String() })
		next := ready[0]
		ready = ready[1:]
		ordered = append(ordered, next)

		for _, d := range adjacencyMap[next] {
			inDegree[d]--
			if inDegree[d] == 0 {
				ready = append(ready, d)
			}
		}
	}

	if len(ordered) != len(adjacencyMap) {
		return nil, errs.NewInvalidPipeline("cycle detected among transforms")
	}
	return ordered, nil
}
