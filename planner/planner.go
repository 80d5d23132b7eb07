package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/prompts"
	"github.com/tmc/langchaingo/tools"

	"github.com/smallnest/kernelplay/log"
)

// ErrInvalidPlan is returned when the model's plan cannot be parsed or
// refers to tools or variables that do not exist.
var ErrInvalidPlan = errors.New("invalid plan")

// DefaultMaxSteps bounds the length of a generated plan.
const DefaultMaxSteps = 10

const planPrompt = `You are a planner. Create a plan that reaches the goal using only the tools listed below.

Available tools:
{{.tools}}
Goal: {{.goal}}

Respond with a JSON object in the following format:
{
  "steps": [
    {"tool": "<tool name>", "input": "<input text>", "output": "<variable name>"}
  ]
}

Rules:
1. Use only tool names from the list above, spelled exactly as listed
2. A step may use the output of an earlier step by writing $<variable name> in its input
3. $goal refers to the goal
4. When a tool takes several parameters, write its input as a JSON object of parameter names to values
5. The output of the last step is the answer to the goal
6. Use at most {{.max_steps}} steps
7. Return ONLY the JSON object, no additional text`

// Planner asks a model for a step plan over a set of tools.
type Planner struct {
	model       llms.Model
	tools       map[string]tools.Tool
	order       []string
	allowLoops  bool
	maxSteps    int
	logger      log.Logger
	callOptions []llms.CallOption
}

// Option configures a Planner.
type Option func(*Planner)

// WithAllowLoops is accepted for compatibility with planners that emit loops.
// Plans produced here are always a linear list of steps.
func WithAllowLoops(allow bool) Option {
	return func(p *Planner) {
		p.allowLoops = allow
	}
}

// WithMaxSteps rejects plans with more than n steps.
func WithMaxSteps(n int) Option {
	return func(p *Planner) {
		if n > 0 {
			p.maxSteps = n
		}
	}
}

// WithLogger sets the planner logger.
func WithLogger(logger log.Logger) Option {
	return func(p *Planner) {
		p.logger = logger
	}
}

// WithCallOptions passes options to the planning request.
func WithCallOptions(opts ...llms.CallOption) Option {
	return func(p *Planner) {
		p.callOptions = append(p.callOptions, opts...)
	}
}

// New creates a planner over inputTools. Tool names must be unique.
func New(model llms.Model, inputTools []tools.Tool, opts ...Option) *Planner {
	p := &Planner{
		model:    model,
		tools:    make(map[string]tools.Tool, len(inputTools)),
		maxSteps: DefaultMaxSteps,
		logger:   log.GetDefaultLogger(),
	}
	for _, t := range inputTools {
		if _, ok := p.tools[t.Name()]; !ok {
			p.order = append(p.order, t.Name())
		}
		p.tools[t.Name()] = t
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// CreatePlan asks the model for a plan that reaches goal.
func (p *Planner) CreatePlan(ctx context.Context, goal string) (*Plan, error) {
	if len(p.tools) == 0 {
		return nil, fmt.Errorf("%w: no tools available", ErrInvalidPlan)
	}
	if p.allowLoops {
		p.logger.Debug("loops allowed, but plans are executed as a linear list of steps")
	}

	prompt, err := p.buildPrompt(goal)
	if err != nil {
		return nil, err
	}

	p.logger.Info("planning goal: %s", goal)
	text, err := llms.GenerateFromSinglePrompt(ctx, p.model, prompt, p.callOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan: %w", err)
	}
	p.logger.Debug("generated plan:\n%s", text)

	steps, err := parseSteps(text)
	if err != nil {
		return nil, err
	}
	plan := &Plan{
		ID:     uuid.NewString(),
		Goal:   goal,
		Steps:  steps,
		tools:  p.tools,
		logger: p.logger,
	}
	if err := p.validate(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (p *Planner) buildPrompt(goal string) (string, error) {
	var sb strings.Builder
	for _, name := range p.order {
		fmt.Fprintf(&sb, "- %s: %s\n", name, p.tools[name].Description())
	}

	tmpl := prompts.PromptTemplate{
		Template:       planPrompt,
		InputVariables: []string{"tools", "goal", "max_steps"},
		TemplateFormat: prompts.TemplateFormatGoTemplate,
	}
	prompt, err := tmpl.Format(map[string]any{
		"tools":     sb.String(),
		"goal":      strings.TrimSpace(goal),
		"max_steps": p.maxSteps,
	})
	if err != nil {
		return "", fmt.Errorf("format planning prompt: %w", err)
	}
	return prompt, nil
}

func (p *Planner) validate(plan *Plan) error {
	if len(plan.Steps) == 0 {
		return fmt.Errorf("%w: plan has no steps", ErrInvalidPlan)
	}
	if len(plan.Steps) > p.maxSteps {
		return fmt.Errorf("%w: plan has %d steps, limit is %d", ErrInvalidPlan, len(plan.Steps), p.maxSteps)
	}

	// $words that no step produces are left as literal text, e.g. "$USD".
	outputs := map[string]bool{}
	for _, step := range plan.Steps {
		if name := strings.TrimPrefix(step.Output, "$"); name != "" {
			outputs[name] = true
		}
	}

	defined := map[string]bool{"goal": true}
	for i, step := range plan.Steps {
		if _, ok := p.tools[step.Tool]; !ok {
			return fmt.Errorf("%w: step %d uses unknown tool %q", ErrInvalidPlan, i+1, step.Tool)
		}
		for _, ref := range references(step.Input) {
			if outputs[ref] && !defined[ref] {
				return fmt.Errorf("%w: step %d uses $%s before it is produced", ErrInvalidPlan, i+1, ref)
			}
		}
		if name := strings.TrimPrefix(step.Output, "$"); name != "" {
			defined[name] = true
		}
	}
	return nil
}

type planDocument struct {
	Steps []Step `json:"steps"`
}

// parseSteps extracts the plan JSON from the model answer.
func parseSteps(text string) ([]Step, error) {
	jsonText := extractJSON(text)

	var doc planDocument
	if err := json.Unmarshal([]byte(jsonText), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}
	for i := range doc.Steps {
		doc.Steps[i].Output = strings.TrimPrefix(doc.Steps[i].Output, "$")
	}
	return doc.Steps, nil
}

// extractJSON extracts JSON from a text that might contain markdown code blocks
func extractJSON(text string) string {
	codeBlockRegex := regexp.MustCompile("(?s)```(?:json)?\\s*({.*?})\\s*```")
	matches := codeBlockRegex.FindStringSubmatch(text)
	if len(matches) > 1 {
		return matches[1]
	}

	jsonRegex := regexp.MustCompile("(?s){.*}")
	matches = jsonRegex.FindStringSubmatch(text)
	if len(matches) > 0 {
		return matches[0]
	}

	return text
}
