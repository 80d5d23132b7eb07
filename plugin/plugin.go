package plugin

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// NameSeparator joins plugin and function names in tool definitions.
// Model function names only allow letters, digits, '_' and '-'.
const NameSeparator = "-"

// Plugin groups related functions under one name.
type Plugin struct {
	Name        string
	Description string

	functions map[string]*Function
	order     []string
}

// New creates a plugin holding fns.
func New(name, description string, fns ...*Function) *Plugin {
	p := &Plugin{
		Name:        name,
		Description: description,
		functions:   make(map[string]*Function),
	}
	for _, fn := range fns {
		p.Add(fn)
	}
	return p
}

// Add registers fn, replacing a function with the same name.
func (p *Plugin) Add(fn *Function) {
	if _, ok := p.functions[fn.Name]; !ok {
		p.order = append(p.order, fn.Name)
	}
	p.functions[fn.Name] = fn
}

// Function looks up a function by name.
func (p *Plugin) Function(name string) (*Function, bool) {
	fn, ok := p.functions[name]
	return fn, ok
}

// Functions returns the functions in registration order.
func (p *Plugin) Functions() []*Function {
	out := make([]*Function, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, p.functions[name])
	}
	return out
}

// Collection is the set of plugins known to a kernel. It is safe for concurrent use.
type Collection struct {
	mu      sync.RWMutex
	plugins map[string]*Plugin
	order   []string
}

// NewCollection creates a collection. Duplicate names in ps panic.
func NewCollection(ps ...*Plugin) *Collection {
	c := &Collection{plugins: make(map[string]*Plugin)}
	for _, p := range ps {
		if err := c.Add(p); err != nil {
			panic(err)
		}
	}
	return c
}

// Add registers p. Names must be unique within the collection.
func (c *Collection) Add(p *Plugin) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.plugins[p.Name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePlugin, p.Name)
	}
	c.plugins[p.Name] = p
	c.order = append(c.order, p.Name)
	return nil
}

// Plugin looks up a plugin by name.
func (c *Collection) Plugin(name string) (*Plugin, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.plugins[name]
	return p, ok
}

// Plugins returns the plugins in registration order.
func (c *Collection) Plugins() []*Plugin {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Plugin, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.plugins[name])
	}
	return out
}

// Function resolves a function. An empty pluginName searches every plugin
// and returns the first function with that name.
func (c *Collection) Function(pluginName, functionName string) (*Function, error) {
	if pluginName == "" {
		for _, p := range c.Plugins() {
			if fn, ok := p.Function(functionName); ok {
				return fn, nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrFunctionNotFound, functionName)
	}

	p, ok := c.Plugin(pluginName)
	if !ok {
		return nil, fmt.Errorf("%w: plugin %s", ErrFunctionNotFound, pluginName)
	}
	fn, ok := p.Function(functionName)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrFunctionNotFound, pluginName, functionName)
	}
	return fn, nil
}

// QualifiedName is the name a function is exposed under to the model.
func QualifiedName(pluginName, functionName string) string {
	return pluginName + NameSeparator + functionName
}

// Resolve finds the function behind a qualified tool name.
func (c *Collection) Resolve(qualified string) (*Function, error) {
	pluginName, functionName, ok := strings.Cut(qualified, NameSeparator)
	if !ok {
		return c.Function("", qualified)
	}
	return c.Function(pluginName, functionName)
}

// Definitions returns a function calling definition for every function.
func (c *Collection) Definitions() []llms.Tool {
	var defs []llms.Tool
	for _, p := range c.Plugins() {
		for _, fn := range p.Functions() {
			defs = append(defs, llms.Tool{
				Type: "function",
				Function: &llms.FunctionDefinition{
					Name:        QualifiedName(p.Name, fn.Name),
					Description: fn.Description,
					Parameters:  fn.Schema(),
				},
			})
		}
	}
	return defs
}
