package planner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/tmc/langchaingo/tools"

	"github.com/smallnest/kernelplay/log"
)

// Step is one tool call of a plan.
type Step struct {
	Tool   string `json:"tool"`
	Input  string `json:"input"`
	Output string `json:"output,omitempty"`
}

// UnmarshalJSON accepts an input written as a JSON object as well as a string.
func (s *Step) UnmarshalJSON(data []byte) error {
	var raw struct {
		Tool   string          `json:"tool"`
		Input  json.RawMessage `json:"input"`
		Output string          `json:"output"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.Tool = raw.Tool
	s.Output = raw.Output
	s.Input = ""

	trimmed := bytes.TrimSpace(raw.Input)
	switch {
	case len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")):
	case trimmed[0] == '"':
		return json.Unmarshal(trimmed, &s.Input)
	default:
		s.Input = string(trimmed)
	}
	return nil
}

// Plan is a linear sequence of steps produced by a Planner.
type Plan struct {
	ID    string
	Goal  string
	Steps []Step

	tools  map[string]tools.Tool
	logger log.Logger
}

// String renders the plan one step per line.
func (p *Plan) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Plan %s\nGoal: %s\n", p.ID, strings.TrimSpace(p.Goal))
	for i, s := range p.Steps {
		fmt.Fprintf(&sb, "%d. %s(%s)", i+1, s.Tool, s.Input)
		if s.Output != "" {
			fmt.Fprintf(&sb, " -> $%s", s.Output)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Invoke runs the steps in order and returns the output of the last one.
func (p *Plan) Invoke(ctx context.Context) (string, error) {
	vars := map[string]string{"goal": p.Goal}
	var last string

	for i, step := range p.Steps {
		tool, ok := p.tools[step.Tool]
		if !ok {
			return "", fmt.Errorf("%w: step %d uses unknown tool %q", ErrInvalidPlan, i+1, step.Tool)
		}

		input := substituteInput(step.Input, vars)
		p.logger.Debug("plan step %d: %s(%s)", i+1, step.Tool, input)

		out, err := tool.Call(ctx, input)
		if err != nil {
			return "", fmt.Errorf("plan step %d (%s): %w", i+1, step.Tool, err)
		}
		if step.Output != "" {
			vars[step.Output] = out
		}
		last = out
	}
	return last, nil
}

var referencePattern = regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)

func references(input string) []string {
	var refs []string
	for _, m := range referencePattern.FindAllStringSubmatch(input, -1) {
		refs = append(refs, m[1])
	}
	return refs
}

func substitute(text string, vars map[string]string) string {
	return referencePattern.ReplaceAllStringFunc(text, func(ref string) string {
		if v, ok := vars[ref[1:]]; ok {
			return v
		}
		return ref
	})
}

// substituteInput replaces $references. When the input is a JSON object the
// substitution happens inside its string values, keeping the object valid.
func substituteInput(input string, vars map[string]string) string {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "{") {
		return substitute(input, vars)
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return substitute(input, vars)
	}
	for k, v := range obj {
		if s, ok := v.(string); ok {
			obj[k] = substitute(s, vars)
		}
	}
	out, err := json.Marshal(obj)
	if err != nil {
		return substitute(input, vars)
	}
	return string(out)
}
