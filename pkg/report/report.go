// Package report projects a validation result into a stable, display-ready
// issue list.
package report

import (
	"sort"

	"github.com/floweave/floweave/pkg/validate"
)

// Report merges errors and warnings into one slice sorted for reproducible
// display: errors before warnings, then by code, then by the node or edge
// ID the issue points at. The input result is not mutated.
func Report(result validate.Result) []validate.Issue {
	issues := make([]validate.Issue, 0, len(result.Errors)+len(result.Warnings))
	issues = append(issues, result.Errors...)
	issues = append(issues, result.Warnings...)

	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Severity != b.Severity {
			return a.Severity == validate.SeverityError
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.Locus() < b.Locus()
	})
	return issues
}
