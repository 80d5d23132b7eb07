package log

import (
	"context"

	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/llms"
)

// CallbackHandler forwards langchaingo model and tool events to a Logger.
// Requests and responses go to debug, failures to error.
type CallbackHandler struct {
	callbacks.SimpleHandler
	Logger Logger
}

var _ callbacks.Handler = (*CallbackHandler)(nil)

// NewCallbackHandler returns a handler that logs through logger.
func NewCallbackHandler(logger Logger) *CallbackHandler {
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &CallbackHandler{Logger: logger}
}

func (h *CallbackHandler) HandleLLMGenerateContentStart(_ context.Context, ms []llms.MessageContent) {
	for _, m := range ms {
		for _, part := range m.Parts {
			if text, ok := part.(llms.TextContent); ok {
				h.Logger.Debug("model request [%s]: %s", m.Role, text.Text)
			}
		}
	}
}

func (h *CallbackHandler) HandleLLMGenerateContentEnd(_ context.Context, res *llms.ContentResponse) {
	if res == nil {
		return
	}
	for _, c := range res.Choices {
		if c.Content != "" {
			h.Logger.Debug("model response: %s", c.Content)
		}
		for _, tc := range c.ToolCalls {
			if tc.FunctionCall != nil {
				h.Logger.Debug("model requested tool %s(%s)", tc.FunctionCall.Name, tc.FunctionCall.Arguments)
			}
		}
	}
}

func (h *CallbackHandler) HandleLLMError(_ context.Context, err error) {
	h.Logger.Error("model call failed: %v", err)
}

func (h *CallbackHandler) HandleToolStart(_ context.Context, input string) {
	h.Logger.Debug("tool start: %s", input)
}

func (h *CallbackHandler) HandleToolEnd(_ context.Context, output string) {
	h.Logger.Debug("tool end: %s", output)
}

func (h *CallbackHandler) HandleToolError(_ context.Context, err error) {
	h.Logger.Error("tool failed: %v", err)
}
