package kernel

import (
	"context"
	"errors"
	"fmt"

	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/llms"

	"github.com/smallnest/kernelplay/log"
	"github.com/smallnest/kernelplay/plugin"
)

var (
	// ErrFunctionNotFound is returned when a template or caller names an unknown function.
	ErrFunctionNotFound = plugin.ErrFunctionNotFound

	// ErrEmptyResponse is returned when the model answers without any choice.
	ErrEmptyResponse = errors.New("model returned no choices")
)

// Kernel binds a model to a set of plugins.
type Kernel struct {
	model     llms.Model
	plugins   *plugin.Collection
	logger    log.Logger
	callbacks callbacks.Handler
	defaults  ExecutionSettings
}

// Option configures a Kernel.
type Option func(*Kernel)

// WithLogger sets the kernel logger. The package default logger is used otherwise.
func WithLogger(logger log.Logger) Option {
	return func(k *Kernel) {
		k.logger = logger
	}
}

// WithPlugins registers plugins at construction. Duplicate names panic.
func WithPlugins(ps ...*plugin.Plugin) Option {
	return func(k *Kernel) {
		for _, p := range ps {
			if err := k.plugins.Add(p); err != nil {
				panic(err)
			}
		}
	}
}

// WithCallbacks reports function invocations made on behalf of the model.
func WithCallbacks(h callbacks.Handler) Option {
	return func(k *Kernel) {
		k.callbacks = h
	}
}

// WithDefaultSettings applies settings to every request made by the kernel.
func WithDefaultSettings(settings ...Setting) Option {
	return func(k *Kernel) {
		k.defaults = k.defaults.apply(settings...)
	}
}

// New creates a kernel around model.
func New(model llms.Model, opts ...Option) *Kernel {
	k := &Kernel{
		model:   model,
		plugins: plugin.NewCollection(),
		logger:  log.GetDefaultLogger(),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Model returns the model the kernel sends prompts to.
func (k *Kernel) Model() llms.Model {
	return k.model
}

// Plugins returns the registered plugins.
func (k *Kernel) Plugins() *plugin.Collection {
	return k.plugins
}

// AddPlugin registers p.
func (k *Kernel) AddPlugin(p *plugin.Plugin) error {
	if err := k.plugins.Add(p); err != nil {
		return err
	}
	k.logger.Debug("registered plugin %s with %d functions", p.Name, len(p.Functions()))
	return nil
}

// AddPluginFromFunctions registers a new plugin made of fns.
func (k *Kernel) AddPluginFromFunctions(name string, fns ...*plugin.Function) (*plugin.Plugin, error) {
	p := plugin.New(name, "", fns...)
	if err := k.AddPlugin(p); err != nil {
		return nil, err
	}
	return p, nil
}

// InvokeFunction looks up pluginName.functionName and runs it with args.
func (k *Kernel) InvokeFunction(ctx context.Context, pluginName, functionName string, args plugin.Arguments) (string, error) {
	fn, err := k.plugins.Function(pluginName, functionName)
	if err != nil {
		return "", err
	}
	return k.Invoke(ctx, fn, args)
}

// Invoke runs fn with args.
func (k *Kernel) Invoke(ctx context.Context, fn *plugin.Function, args plugin.Arguments) (string, error) {
	k.logger.Debug("invoking function %s", fn.Name)
	out, err := fn.Invoke(ctx, args)
	if err != nil {
		k.logger.Error("function %s failed: %v", fn.Name, err)
		return "", err
	}
	return out, nil
}

// InvokePrompt renders template against args, sends it to the model as a
// single user message and returns the answer text.
func (k *Kernel) InvokePrompt(ctx context.Context, template string, args plugin.Arguments, settings ...Setting) (string, error) {
	prompt, err := k.RenderPrompt(ctx, template, args)
	if err != nil {
		return "", err
	}
	return k.complete(ctx, prompt, k.defaults.apply(settings...))
}

func (k *Kernel) complete(ctx context.Context, prompt string, settings ExecutionSettings) (string, error) {
	k.logger.Debug("rendered prompt:\n%s", prompt)

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}
	if settings.AutoInvoke {
		return k.autoInvoke(ctx, messages, settings)
	}

	choice, err := k.generate(ctx, messages, settings.callOptions()...)
	if err != nil {
		return "", err
	}
	return choice.Content, nil
}

func (k *Kernel) generate(ctx context.Context, messages []llms.MessageContent, opts ...llms.CallOption) (*llms.ContentChoice, error) {
	resp, err := k.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}
	return resp.Choices[0], nil
}
