package render

import (
	"strings"
	"testing"

	"github.com/floweave/floweave/pkg/validate"
	"github.com/floweave/floweave/pkg/workflow"
)

func testDoc() *workflow.Document {
	doc := &workflow.Document{}
	doc.Workflow.Graph.Nodes = []workflow.Node{
		{ID: "start-1", Type: workflow.KindStart, Data: map[string]any{"title": "Start"}},
		{ID: "branch-1", Type: workflow.KindIfElse, Data: map[string]any{"title": "Check"}},
		{ID: "end-1", Type: workflow.KindEnd, Data: map[string]any{"title": "End"}},
	}
	doc.Workflow.Graph.Edges = []workflow.Edge{
		{ID: "e1", Source: "start-1", Target: "branch-1"},
		{ID: "e2", Source: "branch-1", Target: "end-1", SourceHandle: "true"},
	}
	return doc
}

func TestToDOTBasicStructure(t *testing.T) {
	dot := ToDOT(testDoc(), validate.Result{IsValid: true}, Options{})

	for _, want := range []string{
		"digraph workflow {",
		`"start-1" [`,
		`label="Start"`,
		`"start-1" -> "branch-1";`,
		"shape=diamond",
		`taillabel="true"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT output missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailedIncludesKind(t *testing.T) {
	dot := ToDOT(testDoc(), validate.Result{IsValid: true}, Options{Detailed: true})
	if !strings.Contains(dot, `(if-else)`) {
		t.Errorf("detailed DOT should include node kinds:\n%s", dot)
	}
}

func TestToDOTMarksIssues(t *testing.T) {
	result := validate.Result{
		Errors: []validate.Issue{
			{Severity: validate.SeverityError, Code: validate.CodeBranchEdges, NodeID: "branch-1"},
		},
		Warnings: []validate.Issue{
			{Severity: validate.SeverityWarning, Code: validate.CodeUnknownNodeKind, NodeID: "end-1"},
		},
	}
	dot := ToDOT(testDoc(), result, Options{})

	if !strings.Contains(dot, "#C62828") {
		t.Errorf("error node should be outlined red:\n%s", dot)
	}
	if !strings.Contains(dot, "#EF6C00") {
		t.Errorf("warning node should be outlined orange:\n%s", dot)
	}
}

func TestToDOTDashesDanglingEdges(t *testing.T) {
	doc := testDoc()
	doc.Workflow.Graph.Edges = append(doc.Workflow.Graph.Edges,
		workflow.Edge{ID: "e3", Source: "branch-1", Target: "ghost"})

	dot := ToDOT(doc, validate.Result{}, Options{})
	if !strings.Contains(dot, `"branch-1" -> "ghost" [`) || !strings.Contains(dot, "style=dashed") {
		t.Errorf("dangling edge should be dashed:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="8pt" height="6pt" viewBox="0.00 0.00 100.50 200.00">rest</svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `viewBox="0 0 100.50 200.00"`) {
		t.Errorf("viewBox not normalized: %s", out)
	}
	if !strings.Contains(out, `width="101"`) && !strings.Contains(out, `width="100"`) {
		t.Errorf("width not set: %s", out)
	}
}
