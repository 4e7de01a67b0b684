// Package workflow defines the typed document model for workflow graphs
// and the strict structural parser that produces it.
//
// A Document is the root value of the workflow DSL: app metadata, a schema
// kind marker, a version string, and a graph of nodes connected by typed
// edges. Documents are produced by [Parse] from normalized text, or by the
// layout engine as a position-augmented copy. Every producer returns a new
// Document; no stage mutates a Document in place.
//
// # Parsing
//
// [Parse] performs a strict decode with no repair heuristics. It delegates
// raw decoding to gopkg.in/yaml.v3 and then walks the decoded tree checking
// shape: required top-level keys, node and edge record fields, and primitive
// types. All violations are accumulated into a []ParseError so a caller can
// report every fixable issue in one pass. Text that cannot be decoded at all
// yields a single ParseError with line information when available.
//
// # Forward compatibility
//
// Fields the engine does not interpret are preserved through inline maps on
// every record, so a Document serializes back into the same textual schema
// losslessly. Node payloads are exposed both as the raw field map (Data) and
// as a typed tagged union (see [Node.Payload]) with a generic fallback for
// unrecognized node kinds.
package workflow
