package validate

import "strings"

// checkCycles runs a depth-first search over the graph looking for a
// forbidden directed cycle. The search visits nodes in declaration order
// and each node's edges in declaration order, so the reported cycle is
// deterministic: the first back-edge encountered in that order.
//
// The DFS keeps an explicit frame stack instead of recursing, bounding
// stack growth on adversarial inputs, and an on-stack set for O(1)
// back-edge tests. Total cost is O(V+E).
//
// Cycles whose every node is loop-capable (iteration constructs) are legal
// and skipped; the search continues past them. At most one issue is
// emitted.
func (v *validator) checkCycles() {
	type frame struct {
		id   string
		next int // index of the next neighbor to explore
	}

	visited := make(map[string]bool, len(v.graph.Nodes))
	onStack := make(map[string]bool, len(v.graph.Nodes))

	for _, root := range v.graph.Nodes {
		if visited[root.ID] {
			continue
		}
		visited[root.ID] = true

		stack := []frame{{id: root.ID}}
		path := []string{root.ID}
		onStack[root.ID] = true

		for len(stack) > 0 {
			f := &stack[len(stack)-1]
			neighbors := v.outgoing[f.id]

			if f.next >= len(neighbors) {
				onStack[f.id] = false
				stack = stack[:len(stack)-1]
				path = path[:len(path)-1]
				continue
			}

			nb := neighbors[f.next]
			f.next++

			if onStack[nb] {
				cycle := cyclePath(path, nb)
				if !v.allLoopCapable(cycle) {
					v.errorf(Issue{
						Code:    CodeCycleDetected,
						NodeID:  nb,
						Details: map[string]any{"path": cycle},
					}, "cycle detected: %s", strings.Join(cycle, " -> "))
					return
				}
				continue
			}
			if visited[nb] {
				continue
			}

			visited[nb] = true
			onStack[nb] = true
			stack = append(stack, frame{id: nb})
			path = append(path, nb)
		}
	}
}

// cyclePath slices the active DFS path from the back-edge target to the
// current node and closes it, e.g. [S, A, S].
func cyclePath(path []string, target string) []string {
	for i, id := range path {
		if id == target {
			cycle := make([]string, 0, len(path)-i+1)
			cycle = append(cycle, path[i:]...)
			return append(cycle, target)
		}
	}
	// Target must be on the path when onStack reported it; defensive only.
	return []string{target, target}
}

func (v *validator) allLoopCapable(cycle []string) bool {
	for _, id := range cycle {
		n, ok := v.nodeByID[id]
		if !ok || !n.Type.IsLoopCapable() {
			return false
		}
	}
	return true
}
