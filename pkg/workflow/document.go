package workflow

// =============================================================================
// Document - Root Value
// =============================================================================

// DocumentKind is the only accepted value for the top-level "kind" key.
const DocumentKind = "app"

// Document is the root of a parsed workflow graph.
//
// A Document is immutable by convention: every pipeline stage that needs a
// changed Document returns a fresh copy (see Clone) rather than mutating its
// input. Unknown top-level keys are preserved in Extra for lossless export.
type Document struct {
	App      AppMetadata     `yaml:"app" json:"app"`
	Kind     string          `yaml:"kind" json:"kind"`
	Version  string          `yaml:"version" json:"version"`
	Workflow WorkflowSection `yaml:"workflow" json:"workflow"`

	Extra map[string]any `yaml:",inline" json:"-"`
}

// AppMetadata describes the application the workflow belongs to.
type AppMetadata struct {
	Description    string `yaml:"description,omitempty" json:"description,omitempty"`
	Icon           string `yaml:"icon" json:"icon"`
	IconBackground string `yaml:"icon_background" json:"icon_background"`
	Mode           string `yaml:"mode" json:"mode"`
	Name           string `yaml:"name" json:"name"`

	Extra map[string]any `yaml:",inline" json:"-"`
}

// WorkflowSection holds the graph plus sibling keys the engine carries
// through untouched (environment variables, feature flags).
type WorkflowSection struct {
	EnvironmentVariables []any          `yaml:"environment_variables" json:"environment_variables"`
	Features             map[string]any `yaml:"features" json:"features"`
	Graph                Graph          `yaml:"graph" json:"graph"`

	Extra map[string]any `yaml:",inline" json:"-"`
}

// Graph is the node/edge topology of a workflow.
type Graph struct {
	Nodes    []Node    `yaml:"nodes" json:"nodes"`
	Edges    []Edge    `yaml:"edges" json:"edges"`
	Viewport *Viewport `yaml:"viewport,omitempty" json:"viewport,omitempty"`

	Extra map[string]any `yaml:",inline" json:"-"`
}

// Viewport is the editor camera state. The engine never interprets it.
type Viewport struct {
	X    float64 `yaml:"x" json:"x"`
	Y    float64 `yaml:"y" json:"y"`
	Zoom float64 `yaml:"zoom" json:"zoom"`
}

// Position is a 2D canvas coordinate.
type Position struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// =============================================================================
// Node and Edge Records
// =============================================================================

// Node is a vertex in the workflow graph. Data carries the kind-specific
// payload as a raw field map; use [Node.Payload] for the typed view.
type Node struct {
	ID       string         `yaml:"id" json:"id"`
	Type     NodeKind       `yaml:"type" json:"type"`
	Position Position       `yaml:"position" json:"position"`
	Data     map[string]any `yaml:"data" json:"data"`

	Extra map[string]any `yaml:",inline" json:"-"`
}

// Title returns data.title, or the empty string when absent.
func (n Node) Title() string {
	s, _ := n.Data["title"].(string)
	return s
}

// Edge is a directed, typed arc between two nodes.
type Edge struct {
	ID           string   `yaml:"id" json:"id"`
	Source       string   `yaml:"source" json:"source"`
	Target       string   `yaml:"target" json:"target"`
	SourceHandle string   `yaml:"sourceHandle" json:"sourceHandle"`
	TargetHandle string   `yaml:"targetHandle" json:"targetHandle"`
	Type         string   `yaml:"type" json:"type"`
	ZIndex       int      `yaml:"zIndex,omitempty" json:"zIndex,omitempty"`
	Data         EdgeData `yaml:"data" json:"data"`

	Extra map[string]any `yaml:",inline" json:"-"`
}

// EdgeData mirrors the renderer's edge payload.
type EdgeData struct {
	SourceType    string `yaml:"sourceType" json:"sourceType"`
	TargetType    string `yaml:"targetType" json:"targetType"`
	IsInIteration bool   `yaml:"isInIteration" json:"isInIteration"`

	Extra map[string]any `yaml:",inline" json:"-"`
}

// =============================================================================
// Copying
// =============================================================================

// Clone returns a deep copy of the Document. Node data maps and all inline
// extras are copied, so mutating the clone never leaks into the original.
func (d *Document) Clone() *Document {
	out := *d
	out.Extra = copyMap(d.Extra)
	out.App.Extra = copyMap(d.App.Extra)
	out.Workflow.Extra = copyMap(d.Workflow.Extra)
	out.Workflow.Features = copyMap(d.Workflow.Features)
	out.Workflow.EnvironmentVariables = append([]any(nil), d.Workflow.EnvironmentVariables...)
	out.Workflow.Graph.Extra = copyMap(d.Workflow.Graph.Extra)

	if d.Workflow.Graph.Viewport != nil {
		vp := *d.Workflow.Graph.Viewport
		out.Workflow.Graph.Viewport = &vp
	}

	out.Workflow.Graph.Nodes = make([]Node, len(d.Workflow.Graph.Nodes))
	for i, n := range d.Workflow.Graph.Nodes {
		n.Data = copyMap(n.Data)
		n.Extra = copyMap(n.Extra)
		out.Workflow.Graph.Nodes[i] = n
	}

	out.Workflow.Graph.Edges = make([]Edge, len(d.Workflow.Graph.Edges))
	for i, e := range d.Workflow.Graph.Edges {
		e.Data.Extra = copyMap(e.Data.Extra)
		e.Extra = copyMap(e.Extra)
		out.Workflow.Graph.Edges[i] = e
	}

	return &out
}

// NodeByID returns the node with the given ID and true, or a zero Node and
// false when no such node exists.
func (d *Document) NodeByID(id string) (Node, bool) {
	for _, n := range d.Workflow.Graph.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

func copyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
