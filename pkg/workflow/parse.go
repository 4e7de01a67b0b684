package workflow

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// ParseError
// =============================================================================

// ParseError describes one structural violation found during strict parsing.
// Path locates the offending value in dotted form (e.g.
// "workflow.graph.nodes[2].position.x"); Line and Column are 1-based source
// coordinates when the decoder could provide them, zero otherwise.
type ParseError struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
}

// Error implements the error interface.
func (e ParseError) Error() string {
	var b strings.Builder
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", e.Line)
	}
	return b.String()
}

var yamlLineRe = regexp.MustCompile(`(?:^|\s)line (\d+):`)

// decodeFailure converts a raw yaml.v3 error into a single ParseError,
// recovering the line number embedded in the error text when present.
func decodeFailure(err error) ParseError {
	pe := ParseError{Message: fmt.Sprintf("cannot decode document: %v", err)}
	if m := yamlLineRe.FindStringSubmatch(err.Error()); m != nil {
		pe.Line, _ = strconv.Atoi(m[1])
	}
	return pe
}

// =============================================================================
// Parse - Strict Structural Decode
// =============================================================================

// Parse strictly decodes text into a Document.
//
// Parse applies no repair heuristics; feed it the output of the repair
// normalizer. It does not stop at the first violation: every missing key,
// wrong type, and malformed record is accumulated so callers can surface all
// fixable problems in one pass. Exactly one of the return values is non-nil.
func Parse(text string) (*Document, []ParseError) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(text), &root); err != nil {
		return nil, []ParseError{decodeFailure(err)}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, []ParseError{{Message: "document is empty"}}
	}

	top := root.Content[0]
	c := &shapeChecker{}
	if top.Kind != yaml.MappingNode {
		c.addf(top, "", "top level must be a mapping, got %s", kindName(top))
		return nil, c.errs
	}

	c.checkTopLevel(top)
	if len(c.errs) > 0 {
		return nil, c.errs
	}

	var doc Document
	if err := top.Decode(&doc); err != nil {
		return nil, []ParseError{decodeFailure(err)}
	}
	return &doc, nil
}

// shapeChecker walks the decoded tree accumulating violations.
type shapeChecker struct {
	errs []ParseError
}

func (c *shapeChecker) addf(n *yaml.Node, path, format string, args ...any) {
	pe := ParseError{Path: path, Message: fmt.Sprintf(format, args...)}
	if n != nil {
		pe.Line = n.Line
		pe.Column = n.Column
	}
	c.errs = append(c.errs, pe)
}

func (c *shapeChecker) checkTopLevel(top *yaml.Node) {
	app := c.requireKey(top, "", "app", yaml.MappingNode)
	if app != nil {
		c.checkApp(app)
	}

	if kind := c.requireKey(top, "", "kind", yaml.ScalarNode); kind != nil && kind.Value != DocumentKind {
		c.addf(kind, "kind", "must be %q, got %q", DocumentKind, kind.Value)
	}

	if version := c.requireKey(top, "", "version", yaml.ScalarNode); version != nil && version.Value == "" {
		c.addf(version, "version", "must be a non-empty string")
	}

	wf := c.requireKey(top, "", "workflow", yaml.MappingNode)
	if wf == nil {
		return
	}
	graph := c.requireKey(wf, "workflow", "graph", yaml.MappingNode)
	if graph == nil {
		return
	}

	if nodes := c.requireKey(graph, "workflow.graph", "nodes", yaml.SequenceNode); nodes != nil {
		for i, item := range nodes.Content {
			c.checkNode(item, fmt.Sprintf("workflow.graph.nodes[%d]", i))
		}
	}
	if edges := c.requireKey(graph, "workflow.graph", "edges", yaml.SequenceNode); edges != nil {
		for i, item := range edges.Content {
			c.checkEdge(item, fmt.Sprintf("workflow.graph.edges[%d]", i))
		}
	}
}

func (c *shapeChecker) checkApp(app *yaml.Node) {
	for _, key := range []string{"icon", "icon_background", "mode", "name"} {
		c.requireKey(app, "app", key, yaml.ScalarNode)
	}
}

func (c *shapeChecker) checkNode(n *yaml.Node, path string) {
	if n.Kind != yaml.MappingNode {
		c.addf(n, path, "node must be a mapping, got %s", kindName(n))
		return
	}
	c.requireString(n, path, "id")
	c.requireString(n, path, "type")

	if pos := c.requireKey(n, path, "position", yaml.MappingNode); pos != nil {
		c.requireNumber(pos, path+".position", "x")
		c.requireNumber(pos, path+".position", "y")
	}
	if data := c.requireKey(n, path, "data", yaml.MappingNode); data != nil {
		c.requireString(data, path+".data", "title")
	}
}

func (c *shapeChecker) checkEdge(n *yaml.Node, path string) {
	if n.Kind != yaml.MappingNode {
		c.addf(n, path, "edge must be a mapping, got %s", kindName(n))
		return
	}
	c.requireString(n, path, "id")
	c.requireString(n, path, "source")
	c.requireString(n, path, "target")
}

// requireKey returns the value node for key when it exists with the wanted
// kind, recording a violation and returning nil otherwise.
func (c *shapeChecker) requireKey(m *yaml.Node, path, key string, want yaml.Kind) *yaml.Node {
	v := mappingGet(m, key)
	childPath := joinPath(path, key)
	if v == nil {
		c.addf(m, childPath, "required key is missing")
		return nil
	}
	if v.Kind != want {
		c.addf(v, childPath, "must be a %s, got %s", kindWord(want), kindName(v))
		return nil
	}
	return v
}

func (c *shapeChecker) requireString(m *yaml.Node, path, key string) {
	v := c.requireKey(m, path, key, yaml.ScalarNode)
	if v != nil && v.Tag != "!!str" {
		c.addf(v, joinPath(path, key), "must be a string, got %s", strings.TrimPrefix(v.Tag, "!!"))
	}
}

func (c *shapeChecker) requireNumber(m *yaml.Node, path, key string) {
	v := c.requireKey(m, path, key, yaml.ScalarNode)
	if v != nil && v.Tag != "!!int" && v.Tag != "!!float" {
		c.addf(v, joinPath(path, key), "must be a number, got %s", strings.TrimPrefix(v.Tag, "!!"))
	}
}

// =============================================================================
// yaml.Node Helpers
// =============================================================================

// mappingGet returns the value node for key in a mapping, or nil.
func mappingGet(m *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func kindName(n *yaml.Node) string {
	return kindWord(n.Kind)
}

func kindWord(k yaml.Kind) string {
	switch k {
	case yaml.MappingNode:
		return "mapping"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
