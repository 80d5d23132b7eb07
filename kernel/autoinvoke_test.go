package kernel

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/callbacks"
	"github.com/tmc/langchaingo/llms"

	"github.com/smallnest/kernelplay/log"
	"github.com/smallnest/kernelplay/plugin"
)

type recordingHandler struct {
	callbacks.SimpleHandler
	starts []string
	ends   []string
	errs   []error
}

func (h *recordingHandler) HandleToolStart(_ context.Context, input string) {
	h.starts = append(h.starts, input)
}

func (h *recordingHandler) HandleToolEnd(_ context.Context, output string) {
	h.ends = append(h.ends, output)
}

func (h *recordingHandler) HandleToolError(_ context.Context, err error) {
	h.errs = append(h.errs, err)
}

func TestKernel_AutoInvoke(t *testing.T) {
	mock := &MockLLM{responses: []llms.ContentResponse{
		toolCallResponse("call-1", "MusicLibraryPlugin-GetRecentPlays", "{}"),
		toolCallResponse("call-2", "MusicLibraryPlugin-Upper", `{"input":"portland"}`),
		textResponse("Go see Tiara in Portland."),
	}}
	handler := &recordingHandler{}
	k := New(mock, WithLogger(&log.NoOpLogger{}), WithPlugins(musicPlugin()), WithCallbacks(handler))

	out, err := k.InvokePrompt(context.Background(), "Which concert do you recommend?", nil, WithAutoInvoke(5))
	require.NoError(t, err)
	assert.Equal(t, "Go see Tiara in Portland.", out)
	assert.Equal(t, 3, mock.callCount)

	// every request offers the plugin functions as tools
	for _, opts := range mock.options {
		require.Len(t, opts.Tools, 3)
		assert.Equal(t, "MusicLibraryPlugin-GetMusicLibrary", opts.Tools[0].Function.Name)
	}

	// the last request carries the whole exchange
	last := mock.calls[2]
	require.Len(t, last, 5)
	assert.Equal(t, llms.ChatMessageTypeHuman, last[0].Role)
	assert.Equal(t, llms.ChatMessageTypeAI, last[1].Role)
	assert.Equal(t, llms.ChatMessageTypeTool, last[2].Role)
	resp, ok := last[2].Parts[0].(llms.ToolCallResponse)
	require.True(t, ok)
	assert.Equal(t, "call-1", resp.ToolCallID)
	assert.Equal(t, `[{"title":"Danse"}]`, resp.Content)

	resp, ok = last[4].Parts[0].(llms.ToolCallResponse)
	require.True(t, ok)
	assert.Equal(t, "PORTLAND", resp.Content)

	assert.Equal(t, []string{"MusicLibraryPlugin-GetRecentPlays {}", `MusicLibraryPlugin-Upper {"input":"portland"}`}, handler.starts)
	assert.Equal(t, []string{`[{"title":"Danse"}]`, "PORTLAND"}, handler.ends)
}

func TestKernel_AutoInvokeToolFailuresGoBackToModel(t *testing.T) {
	mock := &MockLLM{responses: []llms.ContentResponse{
		toolCallResponse("call-1", "Nope-Missing", "{}"),
		toolCallResponse("call-2", "MusicLibraryPlugin-Upper", "{}"),
		textResponse("Sorry, I could not do that."),
	}}
	handler := &recordingHandler{}
	k := New(mock, WithLogger(&log.NoOpLogger{}), WithPlugins(musicPlugin()), WithCallbacks(handler))

	out, err := k.InvokePrompt(context.Background(), "do it", nil, WithAutoInvoke(0))
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I could not do that.", out)

	last := mock.calls[2]
	unknown := last[2].Parts[0].(llms.ToolCallResponse)
	assert.Contains(t, unknown.Content, "Error:")
	assert.Contains(t, unknown.Content, "function not found")

	missing := last[4].Parts[0].(llms.ToolCallResponse)
	assert.Contains(t, missing.Content, "missing required argument")

	require.Len(t, handler.errs, 1)
	assert.True(t, errors.Is(handler.errs[0], plugin.ErrMissingArgument))
}

func TestKernel_AutoInvokeIterationLimit(t *testing.T) {
	mock := &MockLLM{responses: []llms.ContentResponse{
		toolCallResponse("call-1", "MusicLibraryPlugin-GetRecentPlays", "{}"),
		toolCallResponse("call-2", "MusicLibraryPlugin-GetRecentPlays", "{}"),
		textResponse("final answer"),
	}}
	k := newTestKernel(mock)

	out, err := k.InvokePrompt(context.Background(), "loop", nil, WithAutoInvoke(2))
	require.NoError(t, err)
	assert.Equal(t, "final answer", out)
	require.Len(t, mock.options, 3)
	assert.NotEmpty(t, mock.options[1].Tools)
	assert.Empty(t, mock.options[2].Tools, "the closing request offers no tools")
}

func TestWithAutoInvokeDefault(t *testing.T) {
	s := ExecutionSettings{}.apply(WithAutoInvoke(-1))
	assert.True(t, s.AutoInvoke)
	assert.Equal(t, DefaultMaxAutoInvokeIterations, s.MaxAutoInvokeIterations)
}
