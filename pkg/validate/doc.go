// Package validate enforces structural and semantic invariants over a
// workflow Document.
//
// [Validate] is total: it never panics and always returns a complete
// [Result], even for an empty or degenerate graph. Checks run in a fixed
// order (uniqueness, referential integrity, start/end presence, cycle
// detection, reachability, per-kind degree rules, per-kind field rules),
// each contributing zero or more coded issues. The result is deterministic
// for a given Document: repeated runs produce identical issue lists.
//
// Cycle detection and reachability use explicit stacks and queues rather
// than recursion, so adversarial graph shapes cannot exhaust the call
// stack. Both run in O(V+E).
package validate
