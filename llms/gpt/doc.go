// Package gpt adapts github.com/sashabaranov/go-openai to the langchaingo
// llms.Model interface, so the kernel and planner can run against OpenAI or
// any OpenAI compatible endpoint.
//
// Tool definitions passed with llms.WithTools are forwarded as function
// tools, and tool calls in the response come back as llms.ToolCall values.
package gpt
