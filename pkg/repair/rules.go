package repair

import (
	"regexp"
	"strings"
)

// =============================================================================
// Rule 1: Quote Balancing
// =============================================================================

// trailingKeyRe matches a line that ends in a key-looking suffix, splitting
// it into everything before the suffix and the suffix itself.
var trailingKeyRe = regexp.MustCompile(`^(.*?)(\s*\w+:)\s*$`)

// balanceQuotes closes lines with an odd number of single quotes. The
// closing quote lands before a trailing key-looking suffix when one exists
// (the quote was likely meant to end before the next key), at line end
// otherwise.
func balanceQuotes(lines []string) ([]string, []Note) {
	var notes []Note
	out := make([]string, len(lines))
	for i, line := range lines {
		if strings.Count(line, "'")%2 == 0 {
			out[i] = line
			continue
		}
		fixed := line + "'"
		if m := trailingKeyRe.FindStringSubmatch(line); m != nil && m[1] != "" {
			fixed = m[1] + "'" + m[2]
		}
		out[i] = fixed
		notes = append(notes, Note{Line: i + 1, Before: line, After: fixed})
	}
	return out, notes
}

// =============================================================================
// Rule 2: Missing-Colon Repair
// =============================================================================

var missingColonFixes = []struct {
	re   *regexp.Regexp
	repl string
}{
	// Bare structural keys: `workflow` -> `workflow:`.
	{regexp.MustCompile(`^(\s*)(app|workflow|graph|nodes|edges|features|environment_variables)\s*$`), "$1$2:"},
	// Key and value glued without a colon. Braces around the group number
	// keep the key token out of the capture reference ($1kind would read as
	// a reference to a group named "1kind").
	{regexp.MustCompile(`^(\s*)kind\s+(app)\s*$`), "${1}kind: $2"},
	{regexp.MustCompile(`^(\s*)version\s+(\d+(?:\.\d+){1,2})\s*$`), "${1}version: $2"},
	{regexp.MustCompile(`^(\s*)mode\s+(workflow)\s*$`), "${1}mode: $2"},
}

// insertMissingColons restores the colon on known key tokens that lost it.
// Only a fixed vocabulary of structural keys is repaired; free-form text is
// never touched.
func insertMissingColons(lines []string) ([]string, []Note) {
	var notes []Note
	out := make([]string, len(lines))
	for i, line := range lines {
		fixed := line
		for _, f := range missingColonFixes {
			if f.re.MatchString(line) {
				fixed = f.re.ReplaceAllString(line, f.repl)
				break
			}
		}
		out[i] = fixed
		if fixed != line {
			notes = append(notes, Note{Line: i + 1, Before: line, After: fixed})
		}
	}
	return out, notes
}

// =============================================================================
// Rule 3: Merged-Line Splitting
// =============================================================================

// mergedLineRe matches `key: value structural_key:` collapsed onto one line,
// e.g. `version: 0.1.5 workflow:`. The trailing token must be a known
// structural key so prompt text containing colons is left alone.
var mergedLineRe = regexp.MustCompile(`^(\s*)(\w[\w.-]*:\s+[^:]*\S)\s+(app|kind|version|workflow|graph|nodes|edges)(:)\s*$`)

// splitMergedLines breaks merged lines in two, keeping the second as a
// sibling key at the same indentation.
func splitMergedLines(lines []string) ([]string, []Note) {
	var notes []Note
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		m := mergedLineRe.FindStringSubmatch(line)
		if m == nil {
			out = append(out, line)
			continue
		}
		first := m[1] + m[2]
		second := m[1] + m[3] + ":"
		out = append(out, first, second)
		notes = append(notes, Note{Line: i + 1, Before: line, After: first + "\n" + second})
	}
	return out, notes
}

// =============================================================================
// Rule 4: Orphan-Colon-Line Repair
// =============================================================================

var orphanColonRe = regexp.MustCompile(`^\s*:\s*(.*?)\s*$`)

// repairOrphanColons handles lines consisting only of `: value`. When the
// previous line ends with an open key the value is merged up; otherwise the
// line is dropped. Content is never invented for it.
func repairOrphanColons(lines []string) ([]string, []Note) {
	var notes []Note
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		m := orphanColonRe.FindStringSubmatch(line)
		if m == nil {
			out = append(out, line)
			continue
		}
		value := m[1]
		if value != "" && len(out) > 0 && strings.HasSuffix(strings.TrimRight(out[len(out)-1], " \t"), ":") {
			prev := strings.TrimRight(out[len(out)-1], " \t")
			merged := prev + " " + value
			out[len(out)-1] = merged
			notes = append(notes, Note{Line: i + 1, Before: line, After: merged})
			continue
		}
		// Unresolvable: drop, never guess.
		notes = append(notes, Note{Line: i + 1, Before: line, After: ""})
	}
	return out, notes
}

// =============================================================================
// Rule 5: Colon-Spacing Normalization
// =============================================================================

// normalizeColonSpacing rewrites `key:value` as `key: value`. Colons inside
// URLs (anything at or past a `://`) and inside bracketed literals are left
// alone.
func normalizeColonSpacing(lines []string) ([]string, []Note) {
	var notes []Note
	out := make([]string, len(lines))
	for i, line := range lines {
		fixed := fixColonSpacing(line)
		out[i] = fixed
		if fixed != line {
			notes = append(notes, Note{Line: i + 1, Before: line, After: fixed})
		}
	}
	return out, notes
}

func fixColonSpacing(line string) string {
	urlStart := strings.Index(line, "://")
	var b strings.Builder
	depth := 0
	for i := 0; i < len(line); i++ {
		ch := line[i]
		switch ch {
		case '[', '{':
			depth++
		case ']', '}':
			if depth > 0 {
				depth--
			}
		}
		b.WriteByte(ch)
		if ch != ':' || depth > 0 {
			continue
		}
		if urlStart >= 0 && i >= urlStart {
			continue
		}
		if i+1 < len(line) && line[i+1] != ' ' && line[i+1] != '\t' && line[i+1] != '/' {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// =============================================================================
// Rule 6: Blank-Line Collapse
// =============================================================================

// collapseBlankLines reduces runs of 3 or more blank lines to exactly one.
// Runs of one or two are left as written.
func collapseBlankLines(lines []string) ([]string, []Note) {
	var notes []Note
	out := make([]string, 0, len(lines))
	for i := 0; i < len(lines); {
		if strings.TrimSpace(lines[i]) != "" {
			out = append(out, lines[i])
			i++
			continue
		}
		j := i
		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			j++
		}
		run := j - i
		if run >= 3 {
			out = append(out, "")
			notes = append(notes, Note{Line: i + 1, Before: strings.Repeat("\n", run-1), After: ""})
		} else {
			out = append(out, lines[i:j]...)
		}
		i = j
	}
	return out, notes
}
