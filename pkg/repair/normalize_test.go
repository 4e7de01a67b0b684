package repair

import (
	"strings"
	"testing"
)

func TestNormalizeCleanInputUnchanged(t *testing.T) {
	text := "app:\n  name: demo\nkind: app\nversion: 0.1.5\n"
	got, notes := NormalizeWithNotes(text)
	if got != text {
		t.Errorf("clean input changed:\n%q\n%q", text, got)
	}
	if len(notes) != 0 {
		t.Errorf("expected no notes, got %v", notes)
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	messy := strings.Join([]string{
		"app",
		"  name:demo",
		"  description: 'unterminated",
		"kind app",
		"version 0.1.5",
		"workflow",
		"  graph",
		"",
		"",
		"",
		"    nodes:",
		": orphan",
	}, "\n")

	once := Normalize(messy)
	twice := Normalize(once)
	if once != twice {
		t.Errorf("not idempotent:\nonce:\n%s\ntwice:\n%s", once, twice)
	}
}

func TestBalanceQuotes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"closes at end", "  title: 'hello", "  title: 'hello'"},
		{"closes before trailing key", "description: 'broken name:", "description: 'broken' name:"},
		{"even quotes untouched", "  title: 'hello'", "  title: 'hello'"},
		{"no quotes untouched", "  title: hello", "  title: hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _ := balanceQuotes([]string{tt.in})
			if out[0] != tt.want {
				t.Errorf("got %q, want %q", out[0], tt.want)
			}
		})
	}
}

func TestInsertMissingColons(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"workflow", "workflow:"},
		{"  graph", "  graph:"},
		{"kind app", "kind: app"},
		{"version 0.1.5", "version: 0.1.5"},
		{"  mode workflow", "  mode: workflow"},
		// Free-form text is never touched.
		{"  title: my workflow", "  title: my workflow"},
		{"some random text", "some random text"},
	}
	for _, tt := range tests {
		out, _ := insertMissingColons([]string{tt.in})
		if out[0] != tt.want {
			t.Errorf("insertMissingColons(%q) = %q, want %q", tt.in, out[0], tt.want)
		}
	}
}

func TestNormalizeGluedKeyValues(t *testing.T) {
	// Glued key/value lines must come out as proper `key: value` lines.
	// A bad rewrite here would leave `: value` fragments for the
	// orphan-colon rule to merge or drop, corrupting the document.
	got := Normalize("kind app\nversion 0.1.5\n  mode workflow\n")
	want := "kind: app\nversion: 0.1.5\n  mode: workflow\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if strings.Contains(got, "\n:") || strings.HasPrefix(got, ":") {
		t.Errorf("normalization produced an orphan colon line: %q", got)
	}
}

func TestSplitMergedLines(t *testing.T) {
	out, notes := splitMergedLines([]string{"version: 0.1.5 workflow:"})
	if len(out) != 2 || out[0] != "version: 0.1.5" || out[1] != "workflow:" {
		t.Errorf("unexpected split: %q", out)
	}
	if len(notes) != 1 {
		t.Errorf("expected 1 note, got %d", len(notes))
	}

	// Prompt text with a colon mid-line must not be split.
	line := "  prompt: say hello to the user:"
	out, _ = splitMergedLines([]string{line})
	if len(out) != 1 || out[0] != line {
		t.Errorf("prompt text was split: %q", out)
	}
}

func TestRepairOrphanColons(t *testing.T) {
	// Merged into the open key above.
	out, _ := repairOrphanColons([]string{"name:", ": demo"})
	if len(out) != 1 || out[0] != "name: demo" {
		t.Errorf("expected merge, got %q", out)
	}

	// No open key above: dropped, never guessed.
	out, notes := repairOrphanColons([]string{"name: set", ": stray"})
	if len(out) != 1 || out[0] != "name: set" {
		t.Errorf("expected drop, got %q", out)
	}
	if len(notes) != 1 || notes[0].After != "" {
		t.Errorf("drop note should have empty After: %+v", notes)
	}

	// Bare colon line is dropped too.
	out, _ = repairOrphanColons([]string{"  :  "})
	if len(out) != 0 {
		t.Errorf("bare colon line should be dropped, got %q", out)
	}
}

func TestNormalizeColonSpacing(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  name:demo", "  name: demo"},
		{"  name: demo", "  name: demo"},
		{"  url: https://example.com:8080/path", "  url: https://example.com:8080/path"},
		{"  selector: [a, {b:1}]", "  selector: [a, {b:1}]"},
	}
	for _, tt := range tests {
		out, _ := normalizeColonSpacing([]string{tt.in})
		if out[0] != tt.want {
			t.Errorf("normalizeColonSpacing(%q) = %q, want %q", tt.in, out[0], tt.want)
		}
	}
}

func TestCollapseBlankLines(t *testing.T) {
	in := []string{"a:", "", "", "", "b:", "", "c:"}
	out, notes := collapseBlankLines(in)
	want := []string{"a:", "", "b:", "", "c:"}
	if strings.Join(out, "|") != strings.Join(want, "|") {
		t.Errorf("got %q, want %q", out, want)
	}
	if len(notes) != 1 {
		t.Errorf("expected 1 note for the long run, got %d", len(notes))
	}
}

func TestNormalizeBareStructuralKey(t *testing.T) {
	got := Normalize("workflow\n  graph:\n")
	want := "workflow:\n  graph:\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNotesCarryRuleNames(t *testing.T) {
	_, notes := NormalizeWithNotes("kind app\n  name:demo\n")
	rules := make(map[string]bool)
	for _, n := range notes {
		rules[n.Rule] = true
	}
	if !rules["missing-colon"] || !rules["colon-spacing"] {
		t.Errorf("expected missing-colon and colon-spacing notes, got %v", notes)
	}
}
