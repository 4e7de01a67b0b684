package repair

import "strings"

// Note records one repair a rule applied (or a line it had to drop).
// Line is the 1-based line number at the time the rule ran. Dropped lines
// have After == "".
type Note struct {
	Line   int    `json:"line"`
	Rule   string `json:"rule"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// rule is one named repair pass over the whole line slice.
type rule struct {
	name  string
	apply func(lines []string) ([]string, []Note)
}

// rules is the ordered repair pipeline. Later rules assume earlier ones
// already ran: colon-spacing, for example, relies on missing colons having
// been inserted and merged lines having been split.
var rules = []rule{
	{"quote-balance", balanceQuotes},
	{"missing-colon", insertMissingColons},
	{"merged-line", splitMergedLines},
	{"orphan-colon", repairOrphanColons},
	{"colon-spacing", normalizeColonSpacing},
	{"blank-collapse", collapseBlankLines},
}

// Normalize repairs common textual corruption in raw candidate text.
// It is pure and total: it never fails, and Normalize(Normalize(x)) ==
// Normalize(x) for all x.
func Normalize(text string) string {
	out, _ := NormalizeWithNotes(text)
	return out
}

// NormalizeWithNotes is Normalize plus a note per repair applied.
func NormalizeWithNotes(text string) (string, []Note) {
	lines := strings.Split(text, "\n")
	var notes []Note
	for _, r := range rules {
		var ns []Note
		lines, ns = r.apply(lines)
		for i := range ns {
			ns[i].Rule = r.name
		}
		notes = append(notes, ns...)
	}
	return strings.Join(lines, "\n"), notes
}
