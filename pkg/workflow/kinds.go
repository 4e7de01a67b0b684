package workflow

// NodeKind identifies the behavior class of a node. The set of known kinds
// mirrors the renderer's node catalogue; kinds outside this set are carried
// through generically.
type NodeKind string

// Known node kinds.
const (
	KindStart              NodeKind = "start"
	KindEnd                NodeKind = "end"
	KindAnswer             NodeKind = "answer"
	KindLLM                NodeKind = "llm"
	KindCode               NodeKind = "code"
	KindIfElse             NodeKind = "if-else"
	KindHTTPRequest        NodeKind = "http-request"
	KindIteration          NodeKind = "iteration"
	KindLoop               NodeKind = "loop"
	KindVariableAggregator NodeKind = "variable-aggregator"
	KindTemplateTransform  NodeKind = "template-transform"
	KindKnowledgeRetrieval NodeKind = "knowledge-retrieval"
	KindQuestionClassifier NodeKind = "question-classifier"
	KindTool               NodeKind = "tool"
)

var knownKinds = map[NodeKind]bool{
	KindStart:              true,
	KindEnd:                true,
	KindAnswer:             true,
	KindLLM:                true,
	KindCode:               true,
	KindIfElse:             true,
	KindHTTPRequest:        true,
	KindIteration:          true,
	KindLoop:               true,
	KindVariableAggregator: true,
	KindTemplateTransform:  true,
	KindKnowledgeRetrieval: true,
	KindQuestionClassifier: true,
	KindTool:               true,
}

// Known reports whether the kind is part of the recognized catalogue.
// Unknown kinds still receive all generic structural checks, but skip
// kind-specific field validation.
func (k NodeKind) Known() bool { return knownKinds[k] }

// IsStart reports whether the kind is a workflow entry point.
func (k NodeKind) IsStart() bool { return k == KindStart }

// IsEnd reports whether the kind is a workflow exit point.
func (k NodeKind) IsEnd() bool { return k == KindEnd }

// IsLoopCapable reports whether nodes of this kind may legally sit on a
// directed cycle. Only iteration constructs qualify; a cycle made entirely
// of loop-capable nodes is not flagged by the validator.
func (k NodeKind) IsLoopCapable() bool {
	return k == KindIteration || k == KindLoop
}

// IsBranch reports whether the kind fans out to two or more targets
// (if-else arms, classifier classes).
func (k NodeKind) IsBranch() bool {
	return k == KindIfElse || k == KindQuestionClassifier
}

// IsAggregator reports whether the kind merges two or more inbound branches.
func (k NodeKind) IsAggregator() bool {
	return k == KindVariableAggregator
}
