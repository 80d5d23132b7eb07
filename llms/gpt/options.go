package gpt

import (
	"net/http"
	"os"

	"github.com/tmc/langchaingo/callbacks"
)

// DefaultModel is used when neither WithModel nor OPENAI_MODEL is set.
const DefaultModel = "gpt-4o-mini"

type options struct {
	apiKey           string
	model            string
	baseURL          string
	organization     string
	httpClient       *http.Client
	callbacksHandler callbacks.Handler
}

// Option is a function that configures an LLM.
type Option func(*options)

// WithAPIKey sets the API key for the LLM.
func WithAPIKey(apiKey string) Option {
	return func(opts *options) {
		opts.apiKey = apiKey
	}
}

// WithModel sets the chat model, e.g. "gpt-4o".
func WithModel(model string) Option {
	return func(opts *options) {
		opts.model = model
	}
}

// WithBaseURL points the client at an OpenAI compatible endpoint.
func WithBaseURL(baseURL string) Option {
	return func(opts *options) {
		opts.baseURL = baseURL
	}
}

// WithOrganization sets the OpenAI organization header.
func WithOrganization(org string) Option {
	return func(opts *options) {
		opts.organization = org
	}
}

// WithHTTPClient sets the HTTP client for the LLM.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *options) {
		opts.httpClient = client
	}
}

// WithCallbacks sets the callbacks handler for the LLM.
func WithCallbacks(handler callbacks.Handler) Option {
	return func(opts *options) {
		opts.callbacksHandler = handler
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
