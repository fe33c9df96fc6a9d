package llm

import (
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"
)

// PayloadKind tells what the judge returned
type PayloadKind int

// payload kinds
const (
	FreeText       PayloadKind = iota // plain text, no action
	StructuredCall                    // action with decoded arguments
	Unparseable                       // action requested but arguments could not be decoded
)

// String returns the metric label of the kind
func (k PayloadKind) String() string {
	switch k {
	case StructuredCall:
		return "structured"
	case Unparseable:
		return "unparseable"
	default:
		return "free_text"
	}
}

// Payload is the judge response as a tagged variant. Only StructuredCall carries Args.
type Payload struct {
	Kind    PayloadKind
	Text    string         // free text, empty when the content was a structured call
	Action  string         // action name, set for StructuredCall and Unparseable
	Args    map[string]any // decoded arguments
	RawArgs string         // arguments as received
}

// Structured returns true if the payload holds a decoded action
func (p Payload) Structured() bool {
	return p.Kind == StructuredCall && p.Args != nil
}

// Decode converts decoded arguments into the typed action args
func (p Payload) Decode(v any) error {
	data, err := json.Marshal(p.Args)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// newCallPayload makes a payload for an action call, decoding its raw arguments
func newCallPayload(action, rawArgs string) Payload {
	res := Payload{Kind: Unparseable, Action: action, RawArgs: rawArgs}
	if args, ok := DecodeArguments(rawArgs); ok {
		res.Kind, res.Args = StructuredCall, args
	}
	return res
}

// contentPayload handles a response without a tool call. Judges sometimes emit the call as
// a JSON body {"name": ..., "arguments": ...} in the content instead of the call mechanism.
func contentPayload(content string) Payload {
	obj, ok := jsonObject(content)
	if !ok {
		return Payload{Kind: FreeText, Text: content}
	}
	name, _ := obj["name"].(string)
	args, found := obj["arguments"]
	if !found {
		args, found = obj["parameters"]
	}
	if name == "" || !found {
		return Payload{Kind: FreeText, Text: content}
	}

	switch v := args.(type) {
	case string:
		return newCallPayload(name, v)
	case map[string]any:
		raw, _ := json.Marshal(v)
		return Payload{Kind: StructuredCall, Action: name, Args: v, RawArgs: string(raw)}
	default:
		raw, _ := json.Marshal(v)
		return Payload{Kind: Unparseable, Action: name, RawArgs: string(raw)}
	}
}

// DecodeArguments parses action arguments tolerantly. It accepts a JSON object, a JSON
// string holding an object, an object embedded in surrounding prose, and finally a
// literal-style object with single quotes or capitalized booleans.
func DecodeArguments(raw string) (map[string]any, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err == nil {
		switch vv := v.(type) {
		case map[string]any:
			return vv, true
		case string:
			return DecodeArguments(vv)
		}
		return nil, false
	}

	if obj, ok := jsonObject(raw); ok {
		return obj, true
	}
	return literalObject(raw)
}

// jsonObject extracts the outermost {...} from text and parses it as JSON
func jsonObject(text string) (map[string]any, bool) {
	start, end := strings.Index(text, "{"), strings.LastIndex(text, "}")
	if start == -1 || end == -1 || start >= end {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(text[start:end+1]), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// literalObject parses a literal-style mapping, e.g. {'relevant': True, 'reason': 'x'}.
// YAML flow mappings accept single quotes and capitalized booleans as is.
func literalObject(text string) (map[string]any, bool) {
	start, end := strings.Index(text, "{"), strings.LastIndex(text, "}")
	if start == -1 || end == -1 || start >= end {
		return nil, false
	}
	var obj map[string]any
	if err := yaml.Unmarshal([]byte(unescapeQuotes(text[start:end+1])), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// unescapeQuotes rewrites backslash escapes of literal-style strings into yaml form:
// \' becomes '' inside single quotes and ' inside double quotes, \\ becomes \ inside single quotes
func unescapeQuotes(text string) string {
	if !strings.Contains(text, `\`) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	var quote byte // 0 outside of a string
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case quote == 0:
			if c == '\'' || c == '"' {
				quote = c
			}
		case c == '\\' && i+1 < len(text):
			next := text[i+1]
			switch {
			case next == '\'' && quote == '\'':
				b.WriteString("''")
				i++
				continue
			case next == '\'':
				b.WriteByte('\'')
				i++
				continue
			case next == '\\' && quote == '\'':
				b.WriteByte('\\')
				i++
				continue
			}
			if quote == '"' { // keep yaml escapes of double-quoted strings intact
				b.WriteByte(c)
				b.WriteByte(next)
				i++
				continue
			}
		case c == quote:
			quote = 0
		}
		b.WriteByte(c)
	}
	return b.String()
}
