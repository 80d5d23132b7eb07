package plugin

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/tmc/langchaingo/tools"
)

// Tool exposes a Function as a langchaingo tools.Tool.
type Tool struct {
	plugin string
	fn     *Function
}

var _ tools.Tool = (*Tool)(nil)

// NewTool wraps fn, naming it after its plugin.
func NewTool(pluginName string, fn *Function) *Tool {
	return &Tool{plugin: pluginName, fn: fn}
}

// Name returns the qualified function name.
func (t *Tool) Name() string {
	return QualifiedName(t.plugin, t.fn.Name)
}

// Description describes the function and, when it has any, its parameters.
func (t *Tool) Description() string {
	if len(t.fn.Parameters) == 0 {
		return t.fn.Description
	}
	var sb strings.Builder
	sb.WriteString(t.fn.Description)
	sb.WriteString(" Parameters:")
	for _, p := range t.fn.Parameters {
		sb.WriteString(" ")
		sb.WriteString(p.Name)
		if p.Description != "" {
			sb.WriteString(" (")
			sb.WriteString(p.Description)
			sb.WriteString(")")
		}
		sb.WriteString(";")
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// Call parses input as a JSON object of named arguments. Any other input is
// bound to the function's first parameter, or to "input" when it has none.
func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	args, ok := ParseArguments(input)
	if !ok {
		name := "input"
		if len(t.fn.Parameters) > 0 {
			name = t.fn.Parameters[0].Name
		}
		args = Arguments{name: input}
	}
	return t.fn.Invoke(ctx, args)
}

// ParseArguments decodes a JSON object into Arguments. Non-string values are
// kept as decoded, with numbers as json.Number.
func ParseArguments(input string) (Arguments, bool) {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(trimmed)))
	dec.UseNumber()
	var args map[string]any
	if err := dec.Decode(&args); err != nil {
		return nil, false
	}
	if args == nil {
		args = map[string]any{}
	}
	return Arguments(args), true
}

// Tools wraps every function in the collection as a tools.Tool.
func (c *Collection) Tools() []tools.Tool {
	var out []tools.Tool
	for _, p := range c.Plugins() {
		for _, fn := range p.Functions() {
			out = append(out, NewTool(p.Name, fn))
		}
	}
	return out
}
