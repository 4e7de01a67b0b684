// Package render produces visual output for workflow documents.
//
// # Overview
//
// This package converts a workflow graph into Graphviz DOT source and
// renders it to SVG. Validation findings feed the drawing: nodes with
// errors get a red outline, nodes with warnings an orange one, so a
// rendered document doubles as a lint report.
//
// # Usage
//
// Convert a document to DOT format, then render to SVG:
//
//	dot := render.ToDOT(doc, result, render.Options{})
//	svg, err := render.SVG(dot)
package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/floweave/floweave/pkg/errors"
	"github.com/floweave/floweave/pkg/validate"
	"github.com/floweave/floweave/pkg/workflow"
)

// Options configures diagram rendering.
type Options struct {
	// Detailed includes the node kind under each title.
	// When false, only the title is shown.
	Detailed bool
}

// ToDOT converts a document to Graphviz DOT format. Issues from result are
// projected onto the drawing: error nodes outlined red, warning nodes
// orange, edges with dangling endpoints dashed red.
func ToDOT(doc *workflow.Document, result validate.Result, opts Options) string {
	nodeSeverity := make(map[string]validate.Severity)
	edgeSeverity := make(map[string]validate.Severity)
	for _, issue := range append(append([]validate.Issue{}, result.Warnings...), result.Errors...) {
		// Errors appended last so they win over warnings on the same locus.
		if issue.NodeID != "" {
			nodeSeverity[issue.NodeID] = issue.Severity
		}
		if issue.EdgeID != "" {
			edgeSeverity[issue.EdgeID] = issue.Severity
		}
	}

	var buf bytes.Buffer
	buf.WriteString("digraph workflow {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for _, n := range doc.Workflow.Graph.Nodes {
		attrs := nodeAttrs(n, nodeSeverity[n.ID], opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	known := make(map[string]bool, len(doc.Workflow.Graph.Nodes))
	for _, n := range doc.Workflow.Graph.Nodes {
		known[n.ID] = true
	}
	for _, e := range doc.Workflow.Graph.Edges {
		attrs := edgeAttrs(e, edgeSeverity[e.ID], known)
		if len(attrs) == 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [%s];\n", e.Source, e.Target, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeAttrs(n workflow.Node, sev validate.Severity, detailed bool) []string {
	label := n.Title()
	if label == "" {
		label = n.ID
	}
	if detailed {
		label += "\n(" + string(n.Type) + ")"
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}

	switch {
	case n.Type.IsStart():
		attrs = append(attrs, "shape=oval", "fillcolor=\"#E8F5E9\"")
	case n.Type.IsEnd():
		attrs = append(attrs, "shape=oval", "fillcolor=\"#ECEFF1\"")
	case n.Type.IsBranch():
		attrs = append(attrs, "shape=diamond", "fillcolor=\"#FFF8E1\"")
	case n.Type.IsLoopCapable():
		attrs = append(attrs, "peripheries=2")
	}

	switch sev {
	case validate.SeverityError:
		attrs = append(attrs, "color=\"#C62828\"", "penwidth=2")
	case validate.SeverityWarning:
		attrs = append(attrs, "color=\"#EF6C00\"", "penwidth=2")
	}
	return attrs
}

func edgeAttrs(e workflow.Edge, sev validate.Severity, known map[string]bool) []string {
	var attrs []string
	if !known[e.Source] || !known[e.Target] || sev == validate.SeverityError {
		attrs = append(attrs, "color=\"#C62828\"", "style=dashed")
	}
	if e.SourceHandle != "" && e.SourceHandle != "source" {
		attrs = append(attrs, fmt.Sprintf("taillabel=%q", e.SourceHandle))
	}
	return attrs
}

// SVG renders a DOT graph to SVG using Graphviz.
func SVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRender, err, "render")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root SVG tag so the drawing starts at the
// origin and carries explicit pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
