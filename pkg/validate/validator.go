package validate

import (
	"fmt"

	"github.com/floweave/floweave/pkg/workflow"
)

// Validate checks every graph invariant against doc and returns the
// accumulated result. It never panics and never mutates doc.
func Validate(doc *workflow.Document) Result {
	v := &validator{graph: &doc.Workflow.Graph}
	v.index()

	v.checkUniqueness()
	v.checkEdgeReferences()
	v.checkStartEndPresence()
	v.checkCycles()
	v.checkReachability()
	v.checkDegreeRules()
	v.checkFieldRules()

	return Result{
		IsValid:  len(v.errors) == 0,
		Errors:   v.errors,
		Warnings: v.warnings,
	}
}

// validator carries the per-run indexes. All maps are rebuilt on every call;
// the engine caches nothing across invocations.
type validator struct {
	graph *workflow.Graph

	nodeByID map[string]workflow.Node
	outgoing map[string][]string // source -> targets, in edge declaration order
	incoming map[string][]string
	starts   []string // start node IDs in declaration order

	errors   []Issue
	warnings []Issue
}

func (v *validator) index() {
	v.nodeByID = make(map[string]workflow.Node, len(v.graph.Nodes))
	v.outgoing = make(map[string][]string)
	v.incoming = make(map[string][]string)

	for _, n := range v.graph.Nodes {
		if _, dup := v.nodeByID[n.ID]; !dup {
			v.nodeByID[n.ID] = n
		}
		if n.Type.IsStart() {
			v.starts = append(v.starts, n.ID)
		}
	}
	for _, e := range v.graph.Edges {
		// Only edges with two resolvable endpoints shape the topology;
		// dangling references are reported separately.
		if _, ok := v.nodeByID[e.Source]; !ok {
			continue
		}
		if _, ok := v.nodeByID[e.Target]; !ok {
			continue
		}
		v.outgoing[e.Source] = append(v.outgoing[e.Source], e.Target)
		v.incoming[e.Target] = append(v.incoming[e.Target], e.Source)
	}
}

func (v *validator) errorf(issue Issue, format string, args ...any) {
	issue.Severity = SeverityError
	issue.Message = fmt.Sprintf(format, args...)
	v.errors = append(v.errors, issue)
}

func (v *validator) warnf(issue Issue, format string, args ...any) {
	issue.Severity = SeverityWarning
	issue.Message = fmt.Sprintf(format, args...)
	v.warnings = append(v.warnings, issue)
}

// =============================================================================
// Uniqueness and Referential Integrity
// =============================================================================

func (v *validator) checkUniqueness() {
	seen := make(map[string]bool, len(v.graph.Nodes))
	for _, n := range v.graph.Nodes {
		if seen[n.ID] {
			v.errorf(Issue{Code: CodeDuplicateNodeID, NodeID: n.ID}, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}

	seenEdges := make(map[string]bool, len(v.graph.Edges))
	for _, e := range v.graph.Edges {
		if seenEdges[e.ID] {
			v.errorf(Issue{Code: CodeDuplicateEdgeID, EdgeID: e.ID}, "duplicate edge id %q", e.ID)
		}
		seenEdges[e.ID] = true
	}
}

func (v *validator) checkEdgeReferences() {
	for _, e := range v.graph.Edges {
		if _, ok := v.nodeByID[e.Source]; !ok {
			v.errorf(Issue{
				Code:    CodeEdgeInvalidSource,
				EdgeID:  e.ID,
				Details: map[string]any{"source": e.Source},
			}, "edge %q references unknown source node %q", e.ID, e.Source)
		}
		if _, ok := v.nodeByID[e.Target]; !ok {
			v.errorf(Issue{
				Code:    CodeEdgeInvalidTarget,
				EdgeID:  e.ID,
				Details: map[string]any{"target": e.Target},
			}, "edge %q references unknown target node %q", e.ID, e.Target)
		}
	}
}

func (v *validator) checkStartEndPresence() {
	var hasStart, hasEnd bool
	for _, n := range v.graph.Nodes {
		if n.Type.IsStart() {
			hasStart = true
		}
		if n.Type.IsEnd() {
			hasEnd = true
		}
	}
	if !hasStart {
		v.errorf(Issue{Code: CodeMissingStart}, "workflow has no start node")
	}
	if !hasEnd {
		v.errorf(Issue{Code: CodeMissingEnd}, "workflow has no end node")
	}
}

// =============================================================================
// Reachability
// =============================================================================

// checkReachability walks forward from the union of all start nodes. Nodes
// outside the reachable set are unreachable; nodes with no edges at all
// (and not start/end) are reported as isolated instead.
func (v *validator) checkReachability() {
	reachable := make(map[string]bool, len(v.graph.Nodes))
	queue := make([]string, 0, len(v.starts))
	for _, id := range v.starts {
		if !reachable[id] {
			reachable[id] = true
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range v.outgoing[id] {
			if !reachable[next] {
				reachable[next] = true
				queue = append(queue, next)
			}
		}
	}

	for _, n := range v.graph.Nodes {
		if reachable[n.ID] || n.Type.IsStart() {
			continue
		}
		if len(v.incoming[n.ID]) == 0 && len(v.outgoing[n.ID]) == 0 {
			if !n.Type.IsEnd() {
				v.errorf(Issue{Code: CodeIsolatedNode, NodeID: n.ID},
					"node %q has no incoming or outgoing edges", n.ID)
				continue
			}
		}
		v.errorf(Issue{Code: CodeUnreachableNode, NodeID: n.ID},
			"node %q is not reachable from any start node", n.ID)
	}
}

// =============================================================================
// Per-Kind Degree Rules
// =============================================================================

func (v *validator) checkDegreeRules() {
	for _, n := range v.graph.Nodes {
		in := len(v.incoming[n.ID])
		out := len(v.outgoing[n.ID])

		switch {
		case n.Type.IsStart():
			if in > 0 {
				v.errorf(Issue{Code: CodeStartHasIncoming, NodeID: n.ID},
					"start node %q must not have incoming edges, found %d", n.ID, in)
			}
			if out == 0 {
				v.errorf(Issue{Code: CodeStartNoOutgoing, NodeID: n.ID},
					"start node %q has no outgoing edges", n.ID)
			}
		case n.Type.IsEnd():
			if out > 0 {
				v.errorf(Issue{Code: CodeEndHasOutgoing, NodeID: n.ID},
					"end node %q must not have outgoing edges, found %d", n.ID, out)
			}
			if in == 0 {
				v.errorf(Issue{Code: CodeEndNoIncoming, NodeID: n.ID},
					"end node %q has no incoming edges", n.ID)
			}
		}

		if n.Type.IsBranch() && out < 2 {
			v.errorf(Issue{Code: CodeBranchEdges, NodeID: n.ID},
				"branch node %q needs at least 2 outgoing edges, found %d", n.ID, out)
		}
		if n.Type.IsAggregator() && in < 2 {
			v.errorf(Issue{Code: CodeAggregatorEdges, NodeID: n.ID},
				"aggregator node %q needs at least 2 incoming edges, found %d", n.ID, in)
		}
	}
}
