// Package pipeline provides the core lint pipeline for floweave.
//
// This package implements the complete normalize → parse → validate → layout
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Normalize: Apply mechanical text repairs to malformed YAML
//  2. Parse: Decode the document strictly, accumulating parse errors
//  3. Validate: Check graph invariants and per-kind schemas
//  4. Layout: Compute node positions (optional, parsed documents only)
//
// The pipeline is total: malformed input produces a Result carrying parse
// errors or validation issues, never a pipeline error. Errors are reserved
// for misconfiguration and backend failures.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Source: "app.yml", Repair: true, Layout: true}
//	result, err := runner.Execute(ctx, text, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, issue := range result.Issues {
//	    fmt.Println(issue.Message)
//	}
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/floweave/floweave/pkg/cache"
	"github.com/floweave/floweave/pkg/errors"
	"github.com/floweave/floweave/pkg/layout"
	"github.com/floweave/floweave/pkg/repair"
	"github.com/floweave/floweave/pkg/validate"
	"github.com/floweave/floweave/pkg/workflow"
)

// DefaultSource names input that arrived without a file path.
const DefaultSource = "<input>"

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Source is a display name for the input, usually a file path.
	Source string `json:"source,omitempty"`

	// Repair runs the text normalizer before parsing.
	Repair bool `json:"repair,omitempty"`

	// Layout computes node positions for documents that parse.
	Layout bool `json:"layout,omitempty"`

	// LayoutConfig overrides the default spacing. Zero means defaults.
	LayoutConfig layout.Config `json:"layout_config,omitempty"`

	// Refresh bypasses the cache and recomputes.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Source == "" {
		o.Source = DefaultSource
	}
	if o.LayoutConfig == (layout.Config{}) {
		o.LayoutConfig = layout.DefaultConfig()
	}
	if o.LayoutConfig.DX <= 0 || o.LayoutConfig.DY <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout spacing must be positive")
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// LintKeyOpts returns cache key options for the lint stages.
func (o *Options) LintKeyOpts() cache.LintKeyOpts {
	return cache.LintKeyOpts{Repair: o.Repair}
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{
		DX:      o.LayoutConfig.DX,
		DY:      o.LayoutConfig.DY,
		OriginX: o.LayoutConfig.OriginX,
		OriginY: o.LayoutConfig.OriginY,
	}
}

// =============================================================================
// Result - Pipeline Outputs
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// Text is the input after normalization (the input itself when
	// repair was off or nothing needed fixing).
	Text string

	// RepairNotes describes each line the normalizer changed.
	RepairNotes []repair.Note

	// Document is the decoded document, nil when parsing failed.
	Document *workflow.Document

	// DocumentHash is the content hash of the normalized text.
	DocumentHash string

	// ParseErrors holds structural errors; non-empty means Document is nil.
	ParseErrors []workflow.ParseError

	// Validation is the raw validation outcome for parsed documents.
	Validation validate.Result

	// Issues is the merged, display-ordered issue list.
	Issues []validate.Issue

	// Positioned is a copy of Document with computed positions, set only
	// when layout was requested and the document parsed.
	Positioned *workflow.Document

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// OK reports whether the input parsed and validated cleanly.
// Warnings do not affect it.
func (r *Result) OK() bool {
	return len(r.ParseErrors) == 0 && r.Validation.IsValid
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount     int
	EdgeCount     int
	NormalizeTime time.Duration
	ParseTime     time.Duration
	ValidateTime  time.Duration
	LayoutTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LintHit   bool // Whether normalize/parse/validate came from cache
	LayoutHit bool // Whether positions came from cache
}
