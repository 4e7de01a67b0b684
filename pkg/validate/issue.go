package validate

// Severity classifies an issue as blocking or advisory.
type Severity string

// Severity levels. Errors force IsValid == false; warnings never block.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue codes emitted by the validator. Codes are stable identifiers:
// callers and tests match on them, so they never change meaning.
const (
	CodeDuplicateNodeID    = "DUPLICATE_NODE_ID"
	CodeDuplicateEdgeID    = "DUPLICATE_EDGE_ID"
	CodeEdgeInvalidSource  = "EDGE_INVALID_SOURCE"
	CodeEdgeInvalidTarget  = "EDGE_INVALID_TARGET"
	CodeMissingStart       = "MISSING_START"
	CodeMissingEnd         = "MISSING_END"
	CodeCycleDetected      = "CYCLE_DETECTED"
	CodeUnreachableNode    = "UNREACHABLE_NODE"
	CodeIsolatedNode       = "ISOLATED_NODE"
	CodeStartHasIncoming   = "START_HAS_INCOMING"
	CodeStartNoOutgoing    = "START_NO_OUTGOING"
	CodeEndHasOutgoing     = "END_HAS_OUTGOING"
	CodeEndNoIncoming      = "END_NO_INCOMING"
	CodeBranchEdges        = "BRANCH_INSUFFICIENT_EDGES"
	CodeAggregatorEdges    = "AGGREGATOR_INSUFFICIENT_EDGES"
	CodeMissingField       = "MISSING_REQUIRED_FIELD"
	CodeUnknownNodeKind    = "UNKNOWN_NODE_KIND"
)

// Issue is one validation finding, located by node or edge ID when the
// finding concerns a specific record.
type Issue struct {
	Severity Severity       `json:"severity"`
	Code     string         `json:"code"`
	Message  string         `json:"message"`
	NodeID   string         `json:"node_id,omitempty"`
	EdgeID   string         `json:"edge_id,omitempty"`
	Details  map[string]any `json:"details,omitempty"`
}

// Result is the complete outcome of validating one Document.
// IsValid is true exactly when Errors is empty.
type Result struct {
	IsValid  bool    `json:"is_valid"`
	Errors   []Issue `json:"errors"`
	Warnings []Issue `json:"warnings"`
}

// Locus returns the node or edge ID an issue points at, preferring the
// node. Used for stable sort ordering in reports.
func (i Issue) Locus() string {
	if i.NodeID != "" {
		return i.NodeID
	}
	return i.EdgeID
}
