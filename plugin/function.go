package plugin

import (
	"context"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrFunctionNotFound is returned when a plugin or function name does not resolve.
	ErrFunctionNotFound = errors.New("function not found")

	// ErrMissingArgument is returned when a required parameter has no value and no default.
	ErrMissingArgument = errors.New("missing required argument")

	// ErrDuplicatePlugin is returned when a plugin name is registered twice.
	ErrDuplicatePlugin = errors.New("plugin already registered")
)

// Parameter types understood by the model's function calling schema.
const (
	TypeString  = "string"
	TypeNumber  = "number"
	TypeBoolean = "boolean"
)

// Parameter describes one named argument of a Function.
type Parameter struct {
	Name        string
	Description string
	Type        string // TypeString when empty
	Required    bool
	Default     string
}

// Arguments are the named values a function is invoked with.
type Arguments map[string]any

// String returns the argument as text, or "" when missing.
func (a Arguments) String(name string) string {
	v, ok := a[name]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}

// Clone returns a shallow copy of a.
func (a Arguments) Clone() Arguments {
	out := make(Arguments, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Names returns the argument names in sorted order.
func (a Arguments) Names() []string {
	names := make([]string, 0, len(a))
	for k := range a {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Handler is the body of a Function.
type Handler func(ctx context.Context, args Arguments) (string, error)

// Function is a named, described callable a model can select and invoke.
type Function struct {
	Name        string
	Description string
	Parameters  []Parameter

	handler Handler
}

// NewFunction creates a function from a handler and its parameter metadata.
func NewFunction(name, description string, handler Handler, params ...Parameter) *Function {
	return &Function{
		Name:        name,
		Description: description,
		Parameters:  params,
		handler:     handler,
	}
}

// Invoke applies parameter defaults, checks required parameters and runs the handler.
// The caller's args are not modified.
func (f *Function) Invoke(ctx context.Context, args Arguments) (string, error) {
	call := args.Clone()
	for _, p := range f.Parameters {
		if _, ok := call[p.Name]; ok {
			continue
		}
		if p.Default != "" {
			call[p.Name] = p.Default
			continue
		}
		if p.Required {
			return "", fmt.Errorf("%s: %w %q", f.Name, ErrMissingArgument, p.Name)
		}
	}
	return f.handler(ctx, call)
}

// Schema returns the JSON schema object describing the function parameters.
func (f *Function) Schema() map[string]any {
	properties := make(map[string]any, len(f.Parameters))
	required := []string{}
	for _, p := range f.Parameters {
		typ := p.Type
		if typ == "" {
			typ = TypeString
		}
		prop := map[string]any{
			"type":        typ,
			"description": p.Description,
		}
		if p.Default != "" {
			prop["default"] = p.Default
		}
		properties[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
