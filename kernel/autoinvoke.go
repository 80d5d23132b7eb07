package kernel

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"github.com/smallnest/kernelplay/plugin"
)

// autoInvoke offers every plugin function to the model as a tool and executes
// the calls it makes. Once the iteration limit is reached the model is asked
// one last time without tools so that it has to answer in text.
func (k *Kernel) autoInvoke(ctx context.Context, messages []llms.MessageContent, settings ExecutionSettings) (string, error) {
	base := settings.callOptions()
	opts := append(append([]llms.CallOption{}, base...), llms.WithTools(k.plugins.Definitions()))

	for i := 0; i < settings.MaxAutoInvokeIterations; i++ {
		choice, err := k.generate(ctx, messages, opts...)
		if err != nil {
			return "", err
		}
		if len(choice.ToolCalls) == 0 {
			return choice.Content, nil
		}

		aiMsg := llms.MessageContent{Role: llms.ChatMessageTypeAI}
		if choice.Content != "" {
			aiMsg.Parts = append(aiMsg.Parts, llms.TextPart(choice.Content))
		}
		for _, tc := range choice.ToolCalls {
			aiMsg.Parts = append(aiMsg.Parts, tc)
		}
		messages = append(messages, aiMsg)

		for _, tc := range choice.ToolCalls {
			var name string
			if tc.FunctionCall != nil {
				name = tc.FunctionCall.Name
			}
			messages = append(messages, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{
					llms.ToolCallResponse{
						ToolCallID: tc.ID,
						Name:       name,
						Content:    k.callTool(ctx, tc),
					},
				},
			})
		}
	}

	k.logger.Warn("auto invoke stopped after %d iterations", settings.MaxAutoInvokeIterations)
	choice, err := k.generate(ctx, messages, base...)
	if err != nil {
		return "", err
	}
	return choice.Content, nil
}

// callTool runs one requested function. Failures are reported back to the
// model as the tool result rather than aborting the conversation.
func (k *Kernel) callTool(ctx context.Context, tc llms.ToolCall) string {
	if tc.FunctionCall == nil {
		return "Error: tool call without function"
	}
	name := tc.FunctionCall.Name

	fn, err := k.plugins.Resolve(name)
	if err != nil {
		k.logger.Warn("model requested unknown function %s", name)
		return fmt.Sprintf("Error: %v", err)
	}

	args, ok := plugin.ParseArguments(tc.FunctionCall.Arguments)
	if !ok {
		args = plugin.Arguments{}
	}

	if k.callbacks != nil {
		k.callbacks.HandleToolStart(ctx, name+" "+tc.FunctionCall.Arguments)
	}
	out, err := fn.Invoke(ctx, args)
	if err != nil {
		if k.callbacks != nil {
			k.callbacks.HandleToolError(ctx, err)
		}
		k.logger.Error("function %s failed: %v", name, err)
		return fmt.Sprintf("Error: %v", err)
	}
	if k.callbacks != nil {
		k.callbacks.HandleToolEnd(ctx, out)
	}
	return out
}
