package workflow

// =============================================================================
// Typed Node Payloads
// =============================================================================

// Payload is the typed view of a node's data bag. It is a closed tagged
// union: one struct per recognized kind plus GenericPayload for everything
// else. The raw map on Node.Data remains the source of truth for
// serialization; payloads are decoded views, never written back.
type Payload interface {
	payloadKind() NodeKind
}

// StartPayload is the data of a "start" node.
type StartPayload struct {
	Title     string
	Variables []any
}

// EndPayload is the data of an "end" node.
type EndPayload struct {
	Title   string
	Outputs []any
}

// ModelRef identifies an LLM by provider and model name.
type ModelRef struct {
	Provider string
	Name     string
}

// LLMPayload is the data of an "llm" node.
type LLMPayload struct {
	Title          string
	Model          ModelRef
	PromptTemplate any
}

// CodePayload is the data of a "code" node.
type CodePayload struct {
	Title    string
	Code     string
	Language string
	Outputs  map[string]any
}

// Condition is one branch predicate of an "if-else" node.
type Condition struct {
	VariableSelector   []string
	ComparisonOperator string
	Value              any
}

// IfElsePayload is the data of an "if-else" node.
type IfElsePayload struct {
	Title      string
	Conditions []Condition
}

// HTTPRequestPayload is the data of an "http-request" node.
type HTTPRequestPayload struct {
	Title  string
	Method string
	URL    string
}

// GenericPayload carries the data of any kind the engine does not specially
// recognize. Fields is the node's raw data bag minus the title.
type GenericPayload struct {
	Kind   NodeKind
	Title  string
	Fields map[string]any
}

func (StartPayload) payloadKind() NodeKind       { return KindStart }
func (EndPayload) payloadKind() NodeKind         { return KindEnd }
func (LLMPayload) payloadKind() NodeKind         { return KindLLM }
func (CodePayload) payloadKind() NodeKind        { return KindCode }
func (IfElsePayload) payloadKind() NodeKind      { return KindIfElse }
func (HTTPRequestPayload) payloadKind() NodeKind { return KindHTTPRequest }
func (p GenericPayload) payloadKind() NodeKind   { return p.Kind }

// Payload decodes the node's data bag into its typed form. Decoding is
// best-effort: missing or mistyped fields come back as zero values, since
// required-field enforcement belongs to the validator, not the model.
func (n Node) Payload() Payload {
	switch n.Type {
	case KindStart:
		vars, _ := n.Data["variables"].([]any)
		return StartPayload{Title: n.Title(), Variables: vars}
	case KindEnd:
		outs, _ := n.Data["outputs"].([]any)
		return EndPayload{Title: n.Title(), Outputs: outs}
	case KindLLM:
		provider, _ := LookupString(n.Data, "model", "provider")
		name, _ := LookupString(n.Data, "model", "name")
		tmpl, _ := Lookup(n.Data, "prompt_template")
		return LLMPayload{
			Title:          n.Title(),
			Model:          ModelRef{Provider: provider, Name: name},
			PromptTemplate: tmpl,
		}
	case KindCode:
		code, _ := LookupString(n.Data, "code")
		lang, _ := LookupString(n.Data, "code_language")
		outs, _ := n.Data["outputs"].(map[string]any)
		return CodePayload{Title: n.Title(), Code: code, Language: lang, Outputs: outs}
	case KindIfElse:
		return IfElsePayload{Title: n.Title(), Conditions: decodeConditions(n.Data)}
	case KindHTTPRequest:
		method, _ := LookupString(n.Data, "method")
		url, _ := LookupString(n.Data, "url")
		return HTTPRequestPayload{Title: n.Title(), Method: method, URL: url}
	default:
		fields := make(map[string]any, len(n.Data))
		for k, v := range n.Data {
			if k != "title" {
				fields[k] = v
			}
		}
		return GenericPayload{Kind: n.Type, Title: n.Title(), Fields: fields}
	}
}

func decodeConditions(data map[string]any) []Condition {
	raw, _ := data["conditions"].([]any)
	conds := make([]Condition, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]any)
		if !ok {
			conds = append(conds, Condition{})
			continue
		}
		var c Condition
		if sel, ok := m["variable_selector"].([]any); ok {
			for _, s := range sel {
				if str, ok := s.(string); ok {
					c.VariableSelector = append(c.VariableSelector, str)
				}
			}
		}
		c.ComparisonOperator, _ = m["comparison_operator"].(string)
		c.Value = m["value"]
		conds = append(conds, c)
	}
	return conds
}

// =============================================================================
// Field Map Lookup
// =============================================================================

// Lookup walks nested string-keyed maps along path and returns the value at
// the end, or false when any segment is missing or not a map.
func Lookup(m map[string]any, path ...string) (any, bool) {
	var cur any = m
	for _, key := range path {
		mm, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = mm[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// LookupString is Lookup restricted to non-empty string values.
func LookupString(m map[string]any, path ...string) (string, bool) {
	v, ok := Lookup(m, path...)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
