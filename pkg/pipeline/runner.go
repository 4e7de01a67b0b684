package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/floweave/floweave/pkg/cache"
	"github.com/floweave/floweave/pkg/errors"
	"github.com/floweave/floweave/pkg/layout"
	"github.com/floweave/floweave/pkg/observability"
	"github.com/floweave/floweave/pkg/repair"
	"github.com/floweave/floweave/pkg/report"
	"github.com/floweave/floweave/pkg/validate"
	"github.com/floweave/floweave/pkg/workflow"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete normalize → parse → validate → layout pipeline
// with caching. The returned error concerns the pipeline machinery only;
// problems with the input end up in Result.ParseErrors and Result.Issues.
func (r *Runner) Execute(ctx context.Context, text string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options")
	}
	logger := r.logger(opts)

	result, lintHit, err := r.lintWithCacheInfo(ctx, text, opts)
	if err != nil {
		return nil, err
	}
	result.CacheInfo.LintHit = lintHit

	logger.Info("linted document",
		"source", opts.Source,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"parse_errors", len(result.ParseErrors),
		"errors", len(result.Validation.Errors),
		"warnings", len(result.Validation.Warnings),
		"cached", lintHit)

	if opts.Layout && result.Document != nil {
		layoutStart := time.Now()
		positioned, layoutHit, err := r.layoutWithCacheInfo(ctx, result, opts)
		if err != nil {
			return nil, err
		}
		result.Positioned = positioned
		result.Stats.LayoutTime = time.Since(layoutStart)
		result.CacheInfo.LayoutHit = layoutHit

		logger.Info("computed layout",
			"source", opts.Source,
			"duration", result.Stats.LayoutTime,
			"cached", layoutHit)
	}

	return result, nil
}

// Lint runs the pipeline without layout.
func (r *Runner) Lint(ctx context.Context, text string, opts Options) (*Result, error) {
	opts.Layout = false
	return r.Execute(ctx, text, opts)
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// =============================================================================
// Lint Stage (Normalize + Parse + Validate)
// =============================================================================

// lintPayload is the cache encoding of the lint stages. The document is
// carried as YAML so a hit restores the full Result without re-parsing.
type lintPayload struct {
	Text         string                `json:"text"`
	RepairNotes  []repair.Note         `json:"repair_notes,omitempty"`
	DocumentYAML []byte                `json:"document_yaml,omitempty"`
	ParseErrors  []workflow.ParseError `json:"parse_errors,omitempty"`
	Validation   validate.Result       `json:"validation"`
	Issues       []validate.Issue      `json:"issues,omitempty"`
	NodeCount    int                   `json:"node_count"`
	EdgeCount    int                   `json:"edge_count"`
}

func (r *Runner) lintWithCacheInfo(ctx context.Context, text string, opts Options) (*Result, bool, error) {
	key := r.Keyer.LintKey(cache.Hash([]byte(text)), opts.LintKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if result, err := decodeLintPayload(data); err == nil {
				observability.Cache().OnCacheHit(ctx, "lint")
				return result, true, nil
			}
			// Corrupt entry: drop it and recompute.
			_ = r.Cache.Delete(ctx, key)
		}
		observability.Cache().OnCacheMiss(ctx, "lint")
	}

	result := r.lint(ctx, text, opts)

	if data, err := encodeLintPayload(result); err == nil {
		if r.Cache.Set(ctx, key, data, cache.TTLResult) == nil {
			observability.Cache().OnCacheSet(ctx, "lint", len(data))
		}
	}
	return result, false, nil
}

// lint runs normalize, parse, and validate without touching the cache.
func (r *Runner) lint(ctx context.Context, text string, opts Options) *Result {
	result := &Result{Text: text}

	if opts.Repair {
		observability.Pipeline().OnNormalizeStart(ctx, opts.Source)
		start := time.Now()
		normalized, notes := repair.NormalizeWithNotes(text)
		result.Text = normalized
		result.RepairNotes = notes
		result.Stats.NormalizeTime = time.Since(start)
		observability.Pipeline().OnNormalizeComplete(ctx, opts.Source, len(notes), result.Stats.NormalizeTime)
	}
	result.DocumentHash = cache.Hash([]byte(result.Text))

	observability.Pipeline().OnParseStart(ctx, opts.Source)
	parseStart := time.Now()
	doc, perrs := workflow.Parse(result.Text)
	result.Stats.ParseTime = time.Since(parseStart)
	result.ParseErrors = perrs
	observability.Pipeline().OnParseComplete(ctx, opts.Source, len(perrs), result.Stats.ParseTime)

	if len(perrs) > 0 {
		return result
	}
	result.Document = doc
	result.Stats.NodeCount = len(doc.Workflow.Graph.Nodes)
	result.Stats.EdgeCount = len(doc.Workflow.Graph.Edges)

	observability.Pipeline().OnValidateStart(ctx, opts.Source, result.Stats.NodeCount, result.Stats.EdgeCount)
	validateStart := time.Now()
	result.Validation = validate.Validate(doc)
	result.Stats.ValidateTime = time.Since(validateStart)
	result.Issues = report.Report(result.Validation)
	observability.Pipeline().OnValidateComplete(ctx, opts.Source,
		len(result.Validation.Errors), len(result.Validation.Warnings), result.Stats.ValidateTime)

	return result
}

func encodeLintPayload(result *Result) ([]byte, error) {
	p := lintPayload{
		Text:        result.Text,
		RepairNotes: result.RepairNotes,
		ParseErrors: result.ParseErrors,
		Validation:  result.Validation,
		Issues:      result.Issues,
		NodeCount:   result.Stats.NodeCount,
		EdgeCount:   result.Stats.EdgeCount,
	}
	if result.Document != nil {
		data, err := workflow.MarshalDocument(result.Document)
		if err != nil {
			return nil, err
		}
		p.DocumentYAML = data
	}
	return json.Marshal(p)
}

func decodeLintPayload(data []byte) (*Result, error) {
	var p lintPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	result := &Result{
		Text:         p.Text,
		RepairNotes:  p.RepairNotes,
		DocumentHash: cache.Hash([]byte(p.Text)),
		ParseErrors:  p.ParseErrors,
		Validation:   p.Validation,
		Issues:       p.Issues,
	}
	result.Stats.NodeCount = p.NodeCount
	result.Stats.EdgeCount = p.EdgeCount
	if len(p.DocumentYAML) > 0 {
		doc, perrs := workflow.Parse(string(p.DocumentYAML))
		if len(perrs) > 0 {
			return nil, errors.New(errors.ErrCodeInternal, "cached document no longer parses")
		}
		result.Document = doc
	}
	return result, nil
}

// =============================================================================
// Layout Stage
// =============================================================================

func (r *Runner) layoutWithCacheInfo(ctx context.Context, result *Result, opts Options) (*workflow.Document, bool, error) {
	key := r.Keyer.LayoutKey(result.DocumentHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var positions map[string]workflow.Position
			if json.Unmarshal(data, &positions) == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return applyPositions(result.Document, positions), true, nil
			}
			_ = r.Cache.Delete(ctx, key)
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	observability.Pipeline().OnLayoutStart(ctx, opts.Source, result.Stats.NodeCount)
	start := time.Now()
	positioned := layout.Apply(result.Document, opts.LayoutConfig)
	observability.Pipeline().OnLayoutComplete(ctx, opts.Source, time.Since(start))

	positions := make(map[string]workflow.Position, len(positioned.Workflow.Graph.Nodes))
	for _, n := range positioned.Workflow.Graph.Nodes {
		positions[n.ID] = n.Position
	}
	if data, err := json.Marshal(positions); err == nil {
		if r.Cache.Set(ctx, key, data, cache.TTLLayout) == nil {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return positioned, false, nil
}

// applyPositions grafts cached positions onto a fresh copy of doc.
// Node IDs missing from the map keep their original positions.
func applyPositions(doc *workflow.Document, positions map[string]workflow.Position) *workflow.Document {
	out := doc.Clone()
	nodes := out.Workflow.Graph.Nodes
	for i := range nodes {
		if pos, ok := positions[nodes[i].ID]; ok {
			nodes[i].Position = pos
		}
	}
	return out
}
