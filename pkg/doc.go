// Package pkg provides the core libraries for Floweave workflow linting
// and layout.
//
// # Overview
//
// Floweave parses workflow definition YAML, repairs common authoring
// mistakes, validates the node graph, and computes canvas positions. The
// pkg directory is organized along the pipeline stages:
//
//  1. [repair] - Text-level normalization of damaged YAML
//  2. [workflow] - Document model plus strict, error-accumulating parsing
//  3. [validate] - Graph invariant checking (references, cycles, schemas)
//  4. [layout] - Deterministic level-based positioning
//  5. [report] - Stable ordering of validation findings
//  6. [render] - DOT and SVG output via Graphviz
//  7. [pipeline] - Orchestration with caching (normalize → parse → validate → layout)
//  8. [cache], [store], [config], [httpapi] - Infrastructure shared by the
//     CLI and the HTTP server
//
// # Architecture
//
// The typical data flow through Floweave:
//
//	Workflow YAML
//	     ↓
//	[repair] package (optional text normalization)
//	     ↓
//	[workflow] package (strict parse, error accumulation)
//	     ↓
//	[validate] package (graph invariants + per-kind schemas)
//	     ↓
//	[layout] package (deterministic positions)
//	     ↓
//	YAML/DOT/SVG output
//
// # Quick Start
//
// Lint a document and lay it out:
//
//	import (
//	    "context"
//	    "github.com/floweave/floweave/pkg/cache"
//	    "github.com/floweave/floweave/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, nil)
//	result, err := runner.Execute(context.Background(), text, pipeline.Options{
//	    Repair: true,
//	    Layout: true,
//	})
//	if err != nil {
//	    // configuration or backend failure; lint findings live in result
//	}
//	for _, issue := range result.Issues {
//	    fmt.Println(issue.Code, issue.Message)
//	}
//
// The pipeline is total over its input: malformed YAML produces a result
// carrying parse errors, never a Go error.
//
// # Main Packages
//
// [repair] - Six ordered, idempotent text rules that fix the mistakes
// hand-edited workflow files accumulate: unbalanced quotes, missing
// colons, merged lines, orphaned colon fragments, colon spacing, and
// blank-line runs. Every change is reported as a note.
//
// [workflow] - The document model (nodes, edges, viewport, inline extras
// preserved for lossless export) and Parse, which accumulates every
// structural error with line/column positions instead of stopping at the
// first.
//
// [validate] - Structural invariants: ID uniqueness, edge referential
// integrity, start/end presence, cycle detection with an exemption for
// iteration constructs, reachability, per-kind degree rules, and
// required-field schemas. Errors block; warnings advise.
//
// [layout] - Breadth-first leveling with max-relaxation, vertically
// centered columns, and an overflow column for nodes the traversal never
// reaches. Positions are a pure function of topology and config.
//
// [pipeline] - Runs the stages in order and caches lint results and
// layout positions keyed by content hash. Used by the CLI and the HTTP
// server so both entry points behave identically.
//
// [cache] - Null, memory, file, and Redis cache backends behind one
// interface.
//
// [store] - Document persistence (memory and MongoDB) for the HTTP
// server's document endpoints.
//
// [httpapi] - The REST surface: lint, layout, render, and document CRUD.
//
// [repair]: https://pkg.go.dev/github.com/floweave/floweave/pkg/repair
// [workflow]: https://pkg.go.dev/github.com/floweave/floweave/pkg/workflow
// [validate]: https://pkg.go.dev/github.com/floweave/floweave/pkg/validate
// [layout]: https://pkg.go.dev/github.com/floweave/floweave/pkg/layout
// [report]: https://pkg.go.dev/github.com/floweave/floweave/pkg/report
// [render]: https://pkg.go.dev/github.com/floweave/floweave/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/floweave/floweave/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/floweave/floweave/pkg/cache
// [store]: https://pkg.go.dev/github.com/floweave/floweave/pkg/store
// [config]: https://pkg.go.dev/github.com/floweave/floweave/pkg/config
// [httpapi]: https://pkg.go.dev/github.com/floweave/floweave/pkg/httpapi
package pkg
