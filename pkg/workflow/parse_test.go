package workflow

import (
	"strings"
	"testing"
)

const validText = `app:
  description: "demo flow"
  icon: "robot"
  icon_background: "#FFEAD5"
  mode: workflow
  name: demo
kind: app
version: 0.1.5
custom_top_level: kept
workflow:
  environment_variables: []
  features:
    file_upload:
      enabled: false
  graph:
    nodes:
      - id: start-1
        type: start
        position:
          x: 80
          y: 300
        data:
          title: Start
          custom: value
      - id: llm-1
        type: llm
        position:
          x: 380
          y: 300
        data:
          title: Ask
          model:
            provider: openai
            name: gpt-4
          prompt_template: []
    edges:
      - id: e1
        source: start-1
        target: llm-1
        sourceHandle: source
        targetHandle: target
`

func TestParseValidDocument(t *testing.T) {
	doc, perrs := Parse(validText)
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	if doc.Kind != DocumentKind || doc.Version != "0.1.5" {
		t.Errorf("kind/version = %q/%q", doc.Kind, doc.Version)
	}
	if doc.App.Name != "demo" || doc.App.Mode != "workflow" {
		t.Errorf("app = %+v", doc.App)
	}
	if len(doc.Workflow.Graph.Nodes) != 2 || len(doc.Workflow.Graph.Edges) != 1 {
		t.Fatalf("graph = %d nodes %d edges", len(doc.Workflow.Graph.Nodes), len(doc.Workflow.Graph.Edges))
	}

	n := doc.Workflow.Graph.Nodes[1]
	if n.ID != "llm-1" || n.Type != KindLLM || n.Position.X != 380 {
		t.Errorf("node = %+v", n)
	}
	if n.Data["custom"] != nil {
		t.Errorf("data leaked between nodes: %v", n.Data)
	}

	// Unknown top-level keys survive into Extra.
	if doc.Extra["custom_top_level"] != "kept" {
		t.Errorf("extra = %v", doc.Extra)
	}
}

func TestParseAccumulatesAllErrors(t *testing.T) {
	text := `app:
  icon: i
  icon_background: b
  mode: workflow
kind: other
version: ""
workflow:
  graph:
    nodes:
      - id: a
        type: start
        position:
          x: 0
          y: two
        data: {}
    edges:
      - id: e1
        source: a
`
	doc, perrs := Parse(text)
	if doc != nil {
		t.Fatal("document should be nil when errors exist")
	}

	wantPaths := []string{
		"app.name",
		"kind",
		"version",
		"workflow.graph.nodes[0].position.y",
		"workflow.graph.nodes[0].data.title",
		"workflow.graph.edges[0].target",
	}
	got := make(map[string]ParseError, len(perrs))
	for _, pe := range perrs {
		got[pe.Path] = pe
	}
	for _, path := range wantPaths {
		pe, ok := got[path]
		if !ok {
			t.Errorf("missing error for %s in %v", path, perrs)
			continue
		}
		if pe.Line == 0 && path != "app.name" {
			t.Errorf("error for %s has no line info: %+v", path, pe)
		}
	}
}

func TestParseNonMappingTopLevel(t *testing.T) {
	doc, perrs := Parse("- just\n- a\n- list\n")
	if doc != nil || len(perrs) != 1 {
		t.Fatalf("doc=%v perrs=%v", doc, perrs)
	}
	if !strings.Contains(perrs[0].Message, "mapping") {
		t.Errorf("message = %q", perrs[0].Message)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	doc, perrs := Parse("")
	if doc != nil || len(perrs) != 1 {
		t.Fatalf("doc=%v perrs=%v", doc, perrs)
	}
}

func TestParseDecodeFailureCarriesLine(t *testing.T) {
	doc, perrs := Parse("app: [unclosed\n")
	if doc != nil || len(perrs) != 1 {
		t.Fatalf("doc=%v perrs=%v", doc, perrs)
	}
	if perrs[0].Line == 0 {
		t.Errorf("expected line info in %+v", perrs[0])
	}
}

func TestParseErrorString(t *testing.T) {
	pe := ParseError{Path: "workflow.graph", Message: "required key is missing", Line: 7}
	got := pe.Error()
	if !strings.Contains(got, "workflow.graph:") || !strings.Contains(got, "line 7") {
		t.Errorf("Error() = %q", got)
	}
}

func TestRoundTripPreservesUnknownFields(t *testing.T) {
	doc, perrs := Parse(validText)
	if len(perrs) != 0 {
		t.Fatalf("parse: %v", perrs)
	}

	data, err := MarshalDocument(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	again, perrs := Parse(string(data))
	if len(perrs) != 0 {
		t.Fatalf("reparse: %v", perrs)
	}

	if again.Extra["custom_top_level"] != "kept" {
		t.Error("unknown top-level key lost in round trip")
	}
	n, ok := again.NodeByID("start-1")
	if !ok || n.Data["custom"] != "value" {
		t.Error("unknown node data lost in round trip")
	}
	if len(again.Workflow.Graph.Edges) != 1 {
		t.Error("edges lost in round trip")
	}
}
