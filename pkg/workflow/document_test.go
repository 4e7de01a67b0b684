package workflow

import "testing"

func TestCloneIsDeep(t *testing.T) {
	doc := &Document{
		Kind:    DocumentKind,
		Version: "0.1.5",
		Extra:   map[string]any{"x": 1},
	}
	doc.Workflow.Graph.Nodes = []Node{
		{ID: "a", Type: KindStart, Data: map[string]any{"title": "Start"}},
	}
	doc.Workflow.Graph.Edges = []Edge{
		{ID: "e1", Source: "a", Target: "b", Data: EdgeData{Extra: map[string]any{"k": "v"}}},
	}
	doc.Workflow.Graph.Viewport = &Viewport{Zoom: 1}

	clone := doc.Clone()
	clone.Workflow.Graph.Nodes[0].Data["title"] = "changed"
	clone.Workflow.Graph.Nodes[0].Position.X = 99
	clone.Workflow.Graph.Edges[0].Data.Extra["k"] = "changed"
	clone.Workflow.Graph.Viewport.Zoom = 2
	clone.Extra["x"] = 2

	if doc.Workflow.Graph.Nodes[0].Data["title"] != "Start" {
		t.Error("node data shared between clone and original")
	}
	if doc.Workflow.Graph.Nodes[0].Position.X != 0 {
		t.Error("node slice shared between clone and original")
	}
	if doc.Workflow.Graph.Edges[0].Data.Extra["k"] != "v" {
		t.Error("edge extras shared between clone and original")
	}
	if doc.Workflow.Graph.Viewport.Zoom != 1 {
		t.Error("viewport shared between clone and original")
	}
	if doc.Extra["x"] != 1 {
		t.Error("extras shared between clone and original")
	}
}

func TestNodeByID(t *testing.T) {
	doc := &Document{}
	doc.Workflow.Graph.Nodes = []Node{{ID: "a"}, {ID: "b"}}

	if n, ok := doc.NodeByID("b"); !ok || n.ID != "b" {
		t.Errorf("NodeByID(b) = %v %v", n, ok)
	}
	if _, ok := doc.NodeByID("missing"); ok {
		t.Error("NodeByID(missing) should report false")
	}
}

func TestKindClassifiers(t *testing.T) {
	tests := []struct {
		kind        NodeKind
		start, end  bool
		loopCapable bool
		branch      bool
		known       bool
	}{
		{kind: KindStart, start: true, known: true},
		{kind: KindEnd, end: true, known: true},
		{kind: KindIteration, loopCapable: true, known: true},
		{kind: KindLoop, loopCapable: true, known: true},
		{kind: KindIfElse, branch: true, known: true},
		{kind: KindQuestionClassifier, branch: true, known: true},
		{kind: KindLLM, known: true},
		{kind: NodeKind("mystery"), known: false},
	}
	for _, tt := range tests {
		k := tt.kind
		if k.IsStart() != tt.start || k.IsEnd() != tt.end ||
			k.IsLoopCapable() != tt.loopCapable || k.IsBranch() != tt.branch ||
			k.Known() != tt.known {
			t.Errorf("classifiers wrong for %q", k)
		}
	}
}

func TestPayloadDispatch(t *testing.T) {
	llm := Node{ID: "l", Type: KindLLM, Data: map[string]any{
		"title": "Ask",
		"model": map[string]any{"provider": "openai", "name": "gpt-4"},
	}}
	p, ok := llm.Payload().(LLMPayload)
	if !ok {
		t.Fatalf("payload type = %T", llm.Payload())
	}
	if p.Model.Provider != "openai" || p.Model.Name != "gpt-4" || p.Title != "Ask" {
		t.Errorf("payload = %+v", p)
	}

	cond := Node{ID: "c", Type: KindIfElse, Data: map[string]any{
		"conditions": []any{
			map[string]any{
				"variable_selector":   []any{"start", "query"},
				"comparison_operator": "contains",
				"value":               "yes",
			},
		},
	}}
	ip, ok := cond.Payload().(IfElsePayload)
	if !ok || len(ip.Conditions) != 1 {
		t.Fatalf("if-else payload = %+v", cond.Payload())
	}
	if ip.Conditions[0].ComparisonOperator != "contains" || len(ip.Conditions[0].VariableSelector) != 2 {
		t.Errorf("condition = %+v", ip.Conditions[0])
	}

	custom := Node{ID: "t", Type: NodeKind("tool-x"), Data: map[string]any{"title": "T", "cfg": 1}}
	gp, ok := custom.Payload().(GenericPayload)
	if !ok || gp.Kind != "tool-x" || gp.Fields["cfg"] != 1 {
		t.Errorf("generic payload = %+v", custom.Payload())
	}
	if _, hasTitle := gp.Fields["title"]; hasTitle {
		t.Error("generic fields should exclude title")
	}
}

func TestLookup(t *testing.T) {
	m := map[string]any{"a": map[string]any{"b": "v", "n": 1}}

	if v, ok := Lookup(m, "a", "b"); !ok || v != "v" {
		t.Errorf("Lookup = %v %v", v, ok)
	}
	if _, ok := Lookup(m, "a", "missing"); ok {
		t.Error("missing path should be false")
	}
	if _, ok := Lookup(m, "a", "b", "deeper"); ok {
		t.Error("descending through a string should be false")
	}
	if s, ok := LookupString(m, "a", "b"); !ok || s != "v" {
		t.Errorf("LookupString = %q %v", s, ok)
	}
	if _, ok := LookupString(m, "a", "n"); ok {
		t.Error("non-string should be false")
	}
}
