// Package layout computes deterministic 2D positions for workflow nodes.
//
// Nodes are assigned levels by breadth-first traversal from the start
// nodes, then each level is placed as a vertically centered column. The
// same document and config always produce bit-identical positions, and
// applying the layout twice is a no-op: positions are a pure function of
// edge topology and config, never of the previous positions.
package layout

import "github.com/floweave/floweave/pkg/workflow"

// Config controls column spacing and the layout origin.
type Config struct {
	DX      float64 `json:"dx" toml:"dx"`             // horizontal distance between levels
	DY      float64 `json:"dy" toml:"dy"`             // vertical distance between siblings
	OriginX float64 `json:"origin_x" toml:"origin_x"` // x of level 0
	OriginY float64 `json:"origin_y" toml:"origin_y"` // vertical center of each level
}

// DefaultConfig returns the spacing used by the reference renderer.
func DefaultConfig() Config {
	return Config{DX: 300, DY: 140, OriginX: 80, OriginY: 300}
}

// Apply returns a position-augmented copy of doc. The input document is
// never mutated.
//
// Levels use max-relaxation: a node's level is one more than the deepest of
// its parents, so a node with parents at different depths settles below all
// of them instead of overlapping a shallower branch. Nodes the traversal
// never reaches (possible only on unvalidated input) are placed in an
// overflow column one level past the deepest assigned level.
func Apply(doc *workflow.Document, cfg Config) *workflow.Document {
	out := doc.Clone()
	nodes := out.Workflow.Graph.Nodes

	levels := assignLevels(out)

	// Group nodes by level in declaration order.
	groups := make(map[int][]int) // level -> node indexes
	maxLevel := 0
	var overflow []int
	for i, n := range nodes {
		lvl, ok := levels[n.ID]
		if !ok {
			overflow = append(overflow, i)
			continue
		}
		groups[lvl] = append(groups[lvl], i)
		if lvl > maxLevel {
			maxLevel = lvl
		}
	}

	for lvl, idxs := range groups {
		for pos, i := range idxs {
			nodes[i].Position = workflow.Position{
				X: cfg.OriginX + float64(lvl)*cfg.DX,
				Y: cfg.OriginY + (float64(pos)-float64(len(idxs)-1)/2)*cfg.DY,
			}
		}
	}

	// Defensive only: a validated document leaves nothing unassigned.
	for pos, i := range overflow {
		nodes[i].Position = workflow.Position{
			X: cfg.OriginX + float64(maxLevel+1)*cfg.DX,
			Y: cfg.OriginY + float64(pos)*cfg.DY,
		}
	}

	return out
}

// Levels returns the level assignment Apply would use, keyed by node ID.
// Exposed for renderers that want rank information without positions.
func Levels(doc *workflow.Document) map[string]int {
	return assignLevels(doc)
}

func assignLevels(doc *workflow.Document) map[string]int {
	nodes := doc.Workflow.Graph.Nodes

	outgoing := make(map[string][]string)
	exists := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		exists[n.ID] = true
	}
	for _, e := range doc.Workflow.Graph.Edges {
		if exists[e.Source] && exists[e.Target] {
			outgoing[e.Source] = append(outgoing[e.Source], e.Target)
		}
	}

	levels := make(map[string]int, len(nodes))
	var queue []string
	for _, n := range nodes {
		if n.Type.IsStart() {
			levels[n.ID] = 0
			queue = append(queue, n.ID)
		}
	}

	// BFS with max-relaxation. Re-enqueues are capped per node so a cyclic
	// (unvalidated) graph still terminates.
	bumps := make(map[string]int)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, next := range outgoing[id] {
			want := levels[id] + 1
			if cur, seen := levels[next]; seen && cur >= want {
				continue
			}
			levels[next] = want
			if bumps[next] < len(nodes) {
				bumps[next]++
				queue = append(queue, next)
			}
		}
	}
	return levels
}
