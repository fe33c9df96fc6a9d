package llm

import (
	"github.com/invopop/jsonschema"
	"github.com/sashabaranov/go-openai"
)

// action names offered to the judge
const (
	ActionHook = "hook"
	ActionMark = "mark"
)

// HookArgs are arguments of the search plan action
type HookArgs struct {
	Searches []string `json:"searches" jsonschema:"description=The news searches to run. Each is 2-5 words and may contain spaces"`
}

// MarkTitlesArgs are arguments of the coarse marking action
type MarkTitlesArgs struct {
	Titles []string `json:"titles" jsonschema:"description=The titles of the items that might be relevant"`
}

// VerdictArgs are arguments of the fine marking action
type VerdictArgs struct {
	Relevant bool   `json:"relevant" jsonschema:"description=true if the page is relevant to the request and false otherwise"`
	Reason   string `json:"reason" jsonschema:"description=Empty when relevant is false. Otherwise a detailed explanation of about 200 words packed with the specific facts of the page and ending with how it relates to the request"`
}

var (
	planTools = []openai.Tool{
		newTool(ActionHook, "Create news feed searches for the request.", &HookArgs{}),
	}
	markTitlesTools = []openai.Tool{
		newTool(ActionMark, "Mark news items as possibly relevant to the request.", &MarkTitlesArgs{}),
	}
	verdictTools = []openai.Tool{
		newTool(ActionMark, "Mark the article as relevant or not.", &VerdictArgs{}),
	}
)

// newTool makes a strict function tool with parameters reflected from args
func newTool(name, description string, args any) openai.Tool {
	r := jsonschema.Reflector{DoNotReference: true, ExpandedStruct: true, Anonymous: true}
	params := r.Reflect(args)
	params.Version = ""
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        name,
			Description: description,
			Strict:      true,
			Parameters:  params,
		},
	}
}
