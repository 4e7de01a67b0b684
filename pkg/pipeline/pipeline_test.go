package pipeline

import (
	"context"
	"strings"
	"testing"

	"github.com/floweave/floweave/pkg/cache"
	"github.com/floweave/floweave/pkg/layout"
)

const validDoc = `app:
  description: ""
  icon: "robot"
  icon_background: "#FFEAD5"
  mode: workflow
  name: demo
kind: app
version: 0.1.5
workflow:
  graph:
    nodes:
      - id: start-1
        type: start
        position:
          x: 0
          y: 0
        data:
          title: Start
      - id: end-1
        type: end
        position:
          x: 0
          y: 0
        data:
          title: End
    edges:
      - id: e1
        source: start-1
        target: end-1
`

func newTestRunner() (*Runner, *cache.MemoryCache) {
	mem := cache.NewMemoryCache()
	return NewRunner(mem, nil, nil), mem
}

func TestExecuteValidDocument(t *testing.T) {
	runner, _ := newTestRunner()

	result, err := runner.Execute(context.Background(), validDoc, Options{Source: "demo.yml"})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !result.OK() {
		t.Errorf("expected clean result, got parse errors %v issues %v", result.ParseErrors, result.Issues)
	}
	if result.Document == nil {
		t.Fatal("expected parsed document")
	}
	if result.Stats.NodeCount != 2 || result.Stats.EdgeCount != 1 {
		t.Errorf("stats = %d nodes %d edges, want 2/1", result.Stats.NodeCount, result.Stats.EdgeCount)
	}
	if result.CacheInfo.LintHit {
		t.Error("first run should not hit the cache")
	}
}

func TestExecuteCachesLintResult(t *testing.T) {
	runner, mem := newTestRunner()
	ctx := context.Background()

	first, err := runner.Execute(ctx, validDoc, Options{})
	if err != nil {
		t.Fatalf("first Execute failed: %v", err)
	}
	if mem.Len() == 0 {
		t.Fatal("expected a cache write")
	}

	second, err := runner.Execute(ctx, validDoc, Options{})
	if err != nil {
		t.Fatalf("second Execute failed: %v", err)
	}
	if !second.CacheInfo.LintHit {
		t.Error("second run should hit the cache")
	}
	if second.Document == nil {
		t.Fatal("cache hit should restore the document")
	}
	if second.Stats.NodeCount != first.Stats.NodeCount {
		t.Errorf("cached node count = %d, want %d", second.Stats.NodeCount, first.Stats.NodeCount)
	}

	// Refresh bypasses the cache.
	third, err := runner.Execute(ctx, validDoc, Options{Refresh: true})
	if err != nil {
		t.Fatalf("refresh Execute failed: %v", err)
	}
	if third.CacheInfo.LintHit {
		t.Error("refresh run should not hit the cache")
	}
}

func TestExecuteWithRepair(t *testing.T) {
	runner, _ := newTestRunner()

	broken := strings.Replace(validDoc, "kind: app", "kind app", 1)
	result, err := runner.Execute(context.Background(), broken, Options{Repair: true})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(result.RepairNotes) == 0 {
		t.Error("expected repair notes for the missing colon")
	}
	if !result.OK() {
		t.Errorf("repaired document should lint clean, got %v %v", result.ParseErrors, result.Issues)
	}
}

func TestExecuteMalformedInputIsTotal(t *testing.T) {
	runner, _ := newTestRunner()

	result, err := runner.Execute(context.Background(), "app: [unclosed\n", Options{})
	if err != nil {
		t.Fatalf("Execute should not fail on malformed input: %v", err)
	}
	if len(result.ParseErrors) == 0 {
		t.Error("expected parse errors")
	}
	if result.Document != nil {
		t.Error("document should be nil when parsing fails")
	}
}

func TestExecuteLayout(t *testing.T) {
	runner, _ := newTestRunner()
	ctx := context.Background()

	opts := Options{Layout: true}
	result, err := runner.Execute(ctx, validDoc, opts)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if result.Positioned == nil {
		t.Fatal("expected positioned document")
	}

	cfg := layout.DefaultConfig()
	start, okStart := result.Positioned.NodeByID("start-1")
	end, okEnd := result.Positioned.NodeByID("end-1")
	if !okStart || !okEnd {
		t.Fatal("positioned document lost nodes")
	}
	if start.Position.X != cfg.OriginX {
		t.Errorf("start x = %v, want %v", start.Position.X, cfg.OriginX)
	}
	if end.Position.X != cfg.OriginX+cfg.DX {
		t.Errorf("end x = %v, want %v", end.Position.X, cfg.OriginX+cfg.DX)
	}

	// Second run restores positions from cache and must agree.
	again, err := runner.Execute(ctx, validDoc, Options{Layout: true})
	if err != nil {
		t.Fatalf("second Execute failed: %v", err)
	}
	if !again.CacheInfo.LayoutHit {
		t.Error("second layout run should hit the cache")
	}
	cached, _ := again.Positioned.NodeByID("end-1")
	if cached.Position != end.Position {
		t.Errorf("cached position %v differs from computed %v", cached.Position, end.Position)
	}
}

func TestOptionsValidation(t *testing.T) {
	runner, _ := newTestRunner()

	_, err := runner.Execute(context.Background(), validDoc, Options{
		LayoutConfig: layout.Config{DX: -1, DY: 140},
	})
	if err == nil {
		t.Error("expected error for negative spacing")
	}
}

func TestOptionsDefaultsAreIdempotent(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults failed: %v", err)
	}
	if opts.Source != DefaultSource {
		t.Errorf("source = %q, want %q", opts.Source, DefaultSource)
	}
	if opts.LayoutConfig != layout.DefaultConfig() {
		t.Errorf("layout config = %+v, want defaults", opts.LayoutConfig)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("second call failed: %v", err)
	}
}
