// Package repair performs best-effort textual repair of workflow DSL
// candidates before strict parsing.
//
// LLM-generated YAML is frequently damaged in small, recognizable ways:
// unbalanced quotes, a key missing its colon, two lines merged into one.
// This package fixes those without attempting a full parse. Repair is an
// explicit, ordered list of small pure rules; order matters because later
// rules assume earlier ones already ran, and every rule's precondition is
// false on its own output, which makes [Normalize] idempotent.
//
// Repair never fails and never invents content. A line that cannot be fixed
// safely is dropped and recorded as a non-fatal [Note]; notes are advisory
// and are never surfaced as blocking errors.
package repair
