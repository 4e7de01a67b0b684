package validate

import (
	"strconv"

	"github.com/floweave/floweave/pkg/workflow"
)

// fieldRule names one required entry in a node's data bag. Rules with
// wantString set require a non-empty string; others only require presence.
type fieldRule struct {
	path       []string
	wantString bool
}

// kindFields is the required-field schema table, keyed by node kind.
// Kinds absent from the table (including unknown kinds) skip field
// validation entirely but still receive all generic checks.
var kindFields = map[workflow.NodeKind][]fieldRule{
	workflow.KindLLM: {
		{path: []string{"model", "provider"}, wantString: true},
		{path: []string{"model", "name"}, wantString: true},
		{path: []string{"prompt_template"}},
	},
	workflow.KindCode: {
		{path: []string{"code"}, wantString: true},
		{path: []string{"code_language"}, wantString: true},
		{path: []string{"outputs"}},
	},
	workflow.KindHTTPRequest: {
		{path: []string{"method"}, wantString: true},
		{path: []string{"url"}, wantString: true},
	},
}

func (v *validator) checkFieldRules() {
	for _, n := range v.graph.Nodes {
		if !n.Type.Known() {
			v.warnf(Issue{Code: CodeUnknownNodeKind, NodeID: n.ID,
				Details: map[string]any{"kind": string(n.Type)}},
				"node %q has unrecognized kind %q; kind-specific validation skipped", n.ID, n.Type)
			continue
		}

		for _, rule := range kindFields[n.Type] {
			v.checkField(n, rule)
		}
		if n.Type == workflow.KindIfElse {
			v.checkConditions(n)
		}
	}
}

func (v *validator) checkField(n workflow.Node, rule fieldRule) {
	field := joinFieldPath(rule.path)
	if rule.wantString {
		if _, ok := workflow.LookupString(n.Data, rule.path...); !ok {
			v.missingField(n, field)
		}
		return
	}
	if _, ok := workflow.Lookup(n.Data, rule.path...); !ok {
		v.missingField(n, field)
	}
}

// checkConditions enforces the if-else shape: a non-empty conditions list
// where every entry carries a variable selector and a comparison operator.
func (v *validator) checkConditions(n workflow.Node) {
	raw, ok := workflow.Lookup(n.Data, "conditions")
	list, isList := raw.([]any)
	if !ok || !isList || len(list) == 0 {
		v.missingField(n, "conditions")
		return
	}
	for i, c := range decodeConditionMaps(list) {
		if len(c.selector) == 0 {
			v.missingField(n, conditionField(i, "variable_selector"))
		}
		if c.operator == "" {
			v.missingField(n, conditionField(i, "comparison_operator"))
		}
	}
}

type conditionShape struct {
	selector []any
	operator string
}

func decodeConditionMaps(list []any) []conditionShape {
	out := make([]conditionShape, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out[i].selector, _ = m["variable_selector"].([]any)
		out[i].operator, _ = m["comparison_operator"].(string)
	}
	return out
}

func (v *validator) missingField(n workflow.Node, field string) {
	v.errorf(Issue{
		Code:    CodeMissingField,
		NodeID:  n.ID,
		Details: map[string]any{"field": field, "kind": string(n.Type)},
	}, "%s node %q is missing required field %q", n.Type, n.ID, field)
}

func joinFieldPath(path []string) string {
	out := path[0]
	for _, p := range path[1:] {
		out += "." + p
	}
	return out
}

func conditionField(i int, name string) string {
	return "conditions[" + strconv.Itoa(i) + "]." + name
}
