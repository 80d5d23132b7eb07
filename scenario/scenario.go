package scenario

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/llms"

	"github.com/smallnest/kernelplay/kernel"
	"github.com/smallnest/kernelplay/log"
	"github.com/smallnest/kernelplay/plugin"
	"github.com/smallnest/kernelplay/plugins/timeplugin"
	"github.com/smallnest/kernelplay/plugins/todoistplugin"
	"github.com/smallnest/kernelplay/store"
)

var (
	// ErrUnknownScenario is returned by Run for a name that is not registered.
	ErrUnknownScenario = errors.New("unknown scenario")

	// ErrTodoistUnavailable is returned by scenarios that need a Todoist client when Env has none.
	ErrTodoistUnavailable = errors.New("todoist client not configured")

	// ErrNoInput is returned when a scenario needs a line from the user and Env has no reader.
	ErrNoInput = errors.New("no input reader configured")
)

// Output receives what a scenario shows the user.
type Output interface {
	// Heading introduces a step.
	Heading(title string)
	// Println writes plain text.
	Println(text string)
	// Answer writes text produced by the model, which is often markdown.
	Answer(text string)
}

// LineReader asks the user for one line of input.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// Env is everything a scenario runs against.
type Env struct {
	Model     llms.Model
	Store     store.CollectionStore
	Todoist   todoistplugin.Service
	Input     LineReader
	Output    Output
	Logger    log.Logger
	Callbacks callbacks.Handler
	Clock     timeplugin.Clock
}

func (e *Env) logger() log.Logger {
	if e.Logger == nil {
		return log.GetDefaultLogger()
	}
	return e.Logger
}

// newKernel builds a fresh kernel so that each scenario only exposes the
// plugins it registers.
func (e *Env) newKernel(ps ...*plugin.Plugin) *kernel.Kernel {
	opts := []kernel.Option{
		kernel.WithLogger(e.logger()),
		kernel.WithPlugins(ps...),
	}
	if e.Callbacks != nil {
		opts = append(opts, kernel.WithCallbacks(e.Callbacks))
	}
	return kernel.New(e.Model, opts...)
}

func (e *Env) readLine(prompt string) (string, error) {
	if e.Input == nil {
		return "", ErrNoInput
	}
	line, err := e.Input.ReadLine(prompt)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Scenario is one demonstration.
type Scenario struct {
	Name        string
	Description string
	Run         func(ctx context.Context, env *Env) error
}

var registry = map[string]Scenario{}

func register(s Scenario) {
	registry[strings.ToLower(s.Name)] = s
}

// All returns the registered scenarios sorted by name.
func All() []Scenario {
	out := make([]Scenario, 0, len(registry))
	for _, s := range registry {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds a scenario by name, ignoring case.
func Lookup(name string) (Scenario, bool) {
	s, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Run looks up and runs the named scenario.
func Run(ctx context.Context, name string, env *Env) error {
	s, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownScenario, name)
	}
	env.logger().Info("running scenario %s", s.Name)
	if err := s.Run(ctx, env); err != nil {
		return fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	return nil
}

// TextOutput writes everything to W without styling.
type TextOutput struct {
	W io.Writer
}

func (o TextOutput) Heading(title string) {
	fmt.Fprintf(o.W, "== %s ==\n", title)
}

func (o TextOutput) Println(text string) {
	fmt.Fprintln(o.W, text)
}

func (o TextOutput) Answer(text string) {
	fmt.Fprintln(o.W, text)
}
