package gpt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/llms"
)

var (
	ErrNotSetAuth    = errors.New("openai API key not set")
	ErrEmptyResponse = errors.New("no response")
)

// LLM is an llms.Model backed by the go-openai chat completions client.
type LLM struct {
	client           *openai.Client
	model            string
	CallbacksHandler callbacks.Handler
}

var _ llms.Model = (*LLM)(nil)

// New returns a chat model.
//
// The API key comes from WithAPIKey or OPENAI_API_KEY, the model from
// WithModel or OPENAI_MODEL.
//
//	llm, err := gpt.New(gpt.WithAPIKey("sk-..."), gpt.WithModel("gpt-4o"))
func New(opts ...Option) (*LLM, error) {
	options := &options{
		apiKey: getEnvOrDefault("OPENAI_API_KEY", ""),
		model:  getEnvOrDefault("OPENAI_MODEL", DefaultModel),
	}

	for _, opt := range opts {
		opt(options)
	}

	if options.apiKey == "" {
		return nil, fmt.Errorf(`%w
You can pass auth info by using gpt.New(gpt.WithAPIKey("{API Key}"))
or
export OPENAI_API_KEY={API Key}`, ErrNotSetAuth)
	}

	cfg := openai.DefaultConfig(options.apiKey)
	if options.baseURL != "" {
		cfg.BaseURL = strings.TrimSuffix(options.baseURL, "/")
	}
	if options.organization != "" {
		cfg.OrgID = options.organization
	}
	if options.httpClient != nil {
		cfg.HTTPClient = options.httpClient
	}

	return &LLM{
		client:           openai.NewClientWithConfig(cfg),
		model:            options.model,
		CallbacksHandler: options.callbacksHandler,
	}, nil
}

// Call generates a response from the LLM for the given prompt.
func (o *LLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, o, prompt, options...)
}

// GenerateContent implements the Model interface.
func (o *LLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if o.CallbacksHandler != nil {
		o.CallbacksHandler.HandleLLMGenerateContentStart(ctx, messages)
	}

	opts := &llms.CallOptions{}
	for _, opt := range options {
		opt(opts)
	}

	req := openai.ChatCompletionRequest{
		Model:       o.model,
		Messages:    convertMessages(messages),
		MaxTokens:   opts.MaxTokens,
		Temperature: float32(opts.Temperature),
		TopP:        float32(opts.TopP),
		Stop:        opts.StopWords,
		Tools:       convertTools(opts.Tools),
	}
	if opts.Model != "" {
		req.Model = opts.Model
	}

	result, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		err = fmt.Errorf("openai chat completion: %w", err)
		if o.CallbacksHandler != nil {
			o.CallbacksHandler.HandleLLMError(ctx, err)
		}
		return nil, err
	}
	if len(result.Choices) == 0 {
		if o.CallbacksHandler != nil {
			o.CallbacksHandler.HandleLLMError(ctx, ErrEmptyResponse)
		}
		return nil, ErrEmptyResponse
	}

	resp := &llms.ContentResponse{}
	for _, c := range result.Choices {
		choice := &llms.ContentChoice{
			Content:    c.Message.Content,
			StopReason: string(c.FinishReason),
			GenerationInfo: map[string]any{
				"prompt_tokens":     result.Usage.PromptTokens,
				"completion_tokens": result.Usage.CompletionTokens,
				"total_tokens":      result.Usage.TotalTokens,
			},
		}
		for _, tc := range c.Message.ToolCalls {
			choice.ToolCalls = append(choice.ToolCalls, llms.ToolCall{
				ID:   tc.ID,
				Type: string(tc.Type),
				FunctionCall: &llms.FunctionCall{
					Name:      tc.Function.Name,
					Arguments: tc.Function.Arguments,
				},
			})
		}
		resp.Choices = append(resp.Choices, choice)
	}

	if o.CallbacksHandler != nil {
		o.CallbacksHandler.HandleLLMGenerateContentEnd(ctx, resp)
	}
	return resp, nil
}

func convertRole(role llms.ChatMessageType) string {
	switch role {
	case llms.ChatMessageTypeAI:
		return openai.ChatMessageRoleAssistant
	case llms.ChatMessageTypeSystem:
		return openai.ChatMessageRoleSystem
	case llms.ChatMessageTypeTool:
		return openai.ChatMessageRoleTool
	default:
		return openai.ChatMessageRoleUser
	}
}

// convertMessages maps langchaingo messages onto chat messages. A tool
// message with several responses becomes one chat message per response.
func convertMessages(messages []llms.MessageContent) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		m := openai.ChatCompletionMessage{Role: convertRole(msg.Role)}

		var content strings.Builder
		var responses []openai.ChatCompletionMessage
		for _, part := range msg.Parts {
			switch p := part.(type) {
			case llms.TextContent:
				content.WriteString(p.Text)
			case llms.ToolCall:
				if p.FunctionCall == nil {
					continue
				}
				m.ToolCalls = append(m.ToolCalls, openai.ToolCall{
					ID:   p.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      p.FunctionCall.Name,
						Arguments: p.FunctionCall.Arguments,
					},
				})
			case llms.ToolCallResponse:
				responses = append(responses, openai.ChatCompletionMessage{
					Role:       openai.ChatMessageRoleTool,
					Name:       p.Name,
					ToolCallID: p.ToolCallID,
					Content:    p.Content,
				})
			}
		}

		if len(responses) > 0 {
			out = append(out, responses...)
			continue
		}
		m.Content = content.String()
		out = append(out, m)
	}
	return out
}

func convertTools(tools []llms.Tool) []openai.Tool {
	if len(tools) == 0 {
		return nil
	}
	out := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		if t.Function == nil {
			continue
		}
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Function.Name,
				Description: t.Function.Description,
				Parameters:  t.Function.Parameters,
			},
		})
	}
	return out
}
