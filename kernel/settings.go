package kernel

import "github.com/tmc/langchaingo/llms"

// DefaultMaxAutoInvokeIterations bounds the tool calling loop when
// WithAutoInvoke is given a non-positive limit.
const DefaultMaxAutoInvokeIterations = 5

// ExecutionSettings control a single model request.
type ExecutionSettings struct {
	MaxTokens   int      `json:"max_tokens,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`

	// AutoInvoke lets the model call plugin functions before it answers.
	AutoInvoke              bool `json:"-"`
	MaxAutoInvokeIterations int  `json:"-"`
}

// Setting adjusts ExecutionSettings.
type Setting func(*ExecutionSettings)

// WithMaxTokens caps the length of the answer.
func WithMaxTokens(n int) Setting {
	return func(s *ExecutionSettings) {
		s.MaxTokens = n
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) Setting {
	return func(s *ExecutionSettings) {
		s.Temperature = &t
	}
}

// WithAutoInvoke exposes every registered plugin function to the model and
// runs the functions it calls, for at most maxIterations round trips.
func WithAutoInvoke(maxIterations int) Setting {
	return func(s *ExecutionSettings) {
		if maxIterations <= 0 {
			maxIterations = DefaultMaxAutoInvokeIterations
		}
		s.AutoInvoke = true
		s.MaxAutoInvokeIterations = maxIterations
	}
}

func (s ExecutionSettings) apply(settings ...Setting) ExecutionSettings {
	for _, set := range settings {
		set(&s)
	}
	return s
}

func (s ExecutionSettings) callOptions() []llms.CallOption {
	var opts []llms.CallOption
	if s.MaxTokens > 0 {
		opts = append(opts, llms.WithMaxTokens(s.MaxTokens))
	}
	if s.Temperature != nil {
		opts = append(opts, llms.WithTemperature(*s.Temperature))
	}
	if s.TopP != nil {
		opts = append(opts, llms.WithTopP(*s.TopP))
	}
	return opts
}
