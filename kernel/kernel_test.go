package kernel

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/smallnest/kernelplay/log"
	"github.com/smallnest/kernelplay/plugin"
)

// MockLLM implements llms.Model for testing
type MockLLM struct {
	responses []llms.ContentResponse
	callCount int
	err       error

	prompts []string
	options []llms.CallOptions
	calls   [][]llms.MessageContent
}

func (m *MockLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var opts llms.CallOptions
	for _, opt := range options {
		opt(&opts)
	}
	m.options = append(m.options, opts)
	m.calls = append(m.calls, messages)
	for _, part := range messages[0].Parts {
		if text, ok := part.(llms.TextContent); ok {
			m.prompts = append(m.prompts, text.Text)
		}
	}

	if m.err != nil {
		return nil, m.err
	}
	if m.callCount >= len(m.responses) {
		return &llms.ContentResponse{
			Choices: []*llms.ContentChoice{
				{Content: "No more responses"},
			},
		}, nil
	}
	resp := m.responses[m.callCount]
	m.callCount++
	return &resp, nil
}

func (m *MockLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func textResponse(s string) llms.ContentResponse {
	return llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: s}}}
}

func toolCallResponse(id, name, args string) llms.ContentResponse {
	return llms.ContentResponse{Choices: []*llms.ContentChoice{{
		ToolCalls: []llms.ToolCall{{
			ID:           id,
			Type:         "function",
			FunctionCall: &llms.FunctionCall{Name: name, Arguments: args},
		}},
	}}}
}

func musicPlugin() *plugin.Plugin {
	return plugin.New("MusicLibraryPlugin", "",
		plugin.NewFunction("GetMusicLibrary", "Get a list of music available to the user",
			func(ctx context.Context, args plugin.Arguments) (string, error) {
				return `[{"title":"Loose"}]`, nil
			}),
		plugin.NewFunction("GetRecentPlays", "Get a list of music recently played by the user",
			func(ctx context.Context, args plugin.Arguments) (string, error) {
				return `[{"title":"Danse"}]`, nil
			}),
		plugin.NewFunction("Upper", "Uppercase the input",
			func(ctx context.Context, args plugin.Arguments) (string, error) {
				return strings.ToUpper(args.String("input")) + args.String("suffix"), nil
			},
			plugin.Parameter{Name: "input", Required: true}),
	)
}

func newTestKernel(model llms.Model) *Kernel {
	return New(model, WithLogger(&log.NoOpLogger{}), WithPlugins(musicPlugin()))
}

func TestKernel_InvokePrompt(t *testing.T) {
	mock := &MockLLM{responses: []llms.ContentResponse{textResponse("Play Loose next")}}
	k := newTestKernel(mock)

	out, err := k.InvokePrompt(context.Background(), `Library: {{MusicLibraryPlugin.GetMusicLibrary}}
Recent: {{ MusicLibraryPlugin.GetRecentPlays }}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "Play Loose next", out)

	require.Len(t, mock.prompts, 1)
	assert.Equal(t, "Library: [{\"title\":\"Loose\"}]\nRecent: [{\"title\":\"Danse\"}]", mock.prompts[0])
	assert.Equal(t, llms.ChatMessageTypeHuman, mock.calls[0][0].Role)
}

func TestKernel_InvokePromptSettings(t *testing.T) {
	mock := &MockLLM{responses: []llms.ContentResponse{textResponse("ok")}}
	k := newTestKernel(mock)

	_, err := k.InvokePrompt(context.Background(), "hi", nil, WithMaxTokens(100), WithTemperature(0.2))
	require.NoError(t, err)
	require.Len(t, mock.options, 1)
	assert.Equal(t, 100, mock.options[0].MaxTokens)
	assert.InDelta(t, 0.2, mock.options[0].Temperature, 1e-9)
	assert.Empty(t, mock.options[0].Tools)
}

func TestKernel_InvokePromptErrors(t *testing.T) {
	t.Run("model failure", func(t *testing.T) {
		k := newTestKernel(&MockLLM{err: errors.New("rate limited")})
		_, err := k.InvokePrompt(context.Background(), "hi", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limited")
	})

	t.Run("no choices", func(t *testing.T) {
		k := newTestKernel(&MockLLM{responses: []llms.ContentResponse{{}}})
		_, err := k.InvokePrompt(context.Background(), "hi", nil)
		assert.ErrorIs(t, err, ErrEmptyResponse)
	})

	t.Run("unknown function", func(t *testing.T) {
		mock := &MockLLM{}
		k := newTestKernel(mock)
		_, err := k.InvokePrompt(context.Background(), "{{Nope.Missing}}", nil)
		assert.ErrorIs(t, err, ErrFunctionNotFound)
		assert.Empty(t, mock.prompts)
	})
}

func TestKernel_InvokeFunction(t *testing.T) {
	k := newTestKernel(&MockLLM{})

	out, err := k.InvokeFunction(context.Background(), "MusicLibraryPlugin", "Upper", plugin.Arguments{"input": "danse"})
	require.NoError(t, err)
	assert.Equal(t, "DANSE", out)

	_, err = k.InvokeFunction(context.Background(), "MusicLibraryPlugin", "Upper", nil)
	assert.ErrorIs(t, err, plugin.ErrMissingArgument)

	_, err = k.InvokeFunction(context.Background(), "TimePlugin", "Now", nil)
	assert.ErrorIs(t, err, ErrFunctionNotFound)
}

func TestKernel_AddPlugin(t *testing.T) {
	k := newTestKernel(&MockLLM{})

	assert.ErrorIs(t, k.AddPlugin(plugin.New("MusicLibraryPlugin", "")), plugin.ErrDuplicatePlugin)

	fn := k.CreateFunctionFromPrompt("{{$recentlyPlayedSongs}}", PromptConfig{Name: "SuggestSong"})
	p, err := k.AddPluginFromFunctions("SuggestSongPlugin", fn)
	require.NoError(t, err)
	assert.Equal(t, "SuggestSongPlugin", p.Name)

	_, ok := k.Plugins().Plugin("SuggestSongPlugin")
	assert.True(t, ok)
}

func TestKernel_CreateFunctionFromPrompt(t *testing.T) {
	mock := &MockLLM{responses: []llms.ContentResponse{textResponse("Energy is conserved.")}}
	k := newTestKernel(mock)

	fn := k.CreateFunctionFromPrompt("{{$input}}\n\nOne line TLDR with the fewest words.",
		PromptConfig{Description: "Summarize"}, WithMaxTokens(100))

	assert.True(t, strings.HasPrefix(fn.Name, "func"))
	require.Len(t, fn.Parameters, 1)
	assert.Equal(t, "input", fn.Parameters[0].Name)

	out, err := k.Invoke(context.Background(), fn, plugin.Arguments{"input": "1st Law of Thermodynamics"})
	require.NoError(t, err)
	assert.Equal(t, "Energy is conserved.", out)
	assert.Equal(t, "1st Law of Thermodynamics\n\nOne line TLDR with the fewest words.", mock.prompts[0])
	assert.Equal(t, 100, mock.options[0].MaxTokens)
}

func TestKernel_PromptFunctionInsideTemplate(t *testing.T) {
	mock := &MockLLM{responses: []llms.ContentResponse{
		textResponse("vegan who likes spicy food"),
		textResponse("1. Tofu scramble"),
	}}
	k := newTestKernel(mock)

	summarize := k.CreateFunctionFromPrompt("Summarize: {{$input}}", PromptConfig{Name: "SummarizeConversation"})
	_, err := k.AddPluginFromFunctions("ConversationSummaryPlugin", summarize)
	require.NoError(t, err)

	out, err := k.InvokePrompt(context.Background(),
		"User background: {{ConversationSummaryPlugin.SummarizeConversation $input}}\nGiven this, list recipes.",
		plugin.Arguments{"input": "I'm a vegan. I love spicy food!"})
	require.NoError(t, err)
	assert.Equal(t, "1. Tofu scramble", out)

	require.Len(t, mock.prompts, 2)
	assert.Equal(t, "Summarize: I'm a vegan. I love spicy food!", mock.prompts[0])
	assert.Equal(t, "User background: vegan who likes spicy food\nGiven this, list recipes.", mock.prompts[1])
}

func TestKernel_ImportPromptFS(t *testing.T) {
	fsys := fstest.MapFS{
		"SuggestChords/skprompt.txt": {Data: []byte("Suggest chords after {{$startingChords}}")},
		"SuggestChords/config.json": {Data: []byte(`{
			"schema": 1,
			"description": "Suggest chords for a song",
			"execution_settings": {"default": {"max_tokens": 256, "temperature": 0.7}},
			"input_variables": [{"name": "startingChords", "description": "first chords", "is_required": true}]
		}`)},
		"GetIntent/skprompt.txt": {Data: []byte("Intent of: {{$input}}")},
		"TravelPlugins/README.md": {Data: []byte("nested plugin, not a function")},
		"notes.txt":               {Data: []byte("ignored")},
	}

	mock := &MockLLM{responses: []llms.ContentResponse{textResponse("Am, F")}}
	k := newTestKernel(mock)

	p, err := k.ImportPromptFS(fsys, "Prompts")
	require.NoError(t, err)
	require.Len(t, p.Functions(), 2)

	chords, ok := p.Function("SuggestChords")
	require.True(t, ok)
	assert.Equal(t, "Suggest chords for a song", chords.Description)
	require.Len(t, chords.Parameters, 1)
	assert.True(t, chords.Parameters[0].Required)

	out, err := k.InvokeFunction(context.Background(), "Prompts", "SuggestChords", plugin.Arguments{"startingChords": "G, C"})
	require.NoError(t, err)
	assert.Equal(t, "Am, F", out)
	assert.Equal(t, "Suggest chords after G, C", mock.prompts[0])
	assert.Equal(t, 256, mock.options[0].MaxTokens)
	assert.InDelta(t, 0.7, mock.options[0].Temperature, 1e-9)

	_, err = k.InvokeFunction(context.Background(), "Prompts", "SuggestChords", nil)
	assert.ErrorIs(t, err, plugin.ErrMissingArgument)
}

func TestKernel_ImportPromptFSErrors(t *testing.T) {
	k := newTestKernel(&MockLLM{})

	_, err := k.ImportPromptFS(fstest.MapFS{"readme.md": {Data: []byte("x")}}, "Empty")
	assert.Error(t, err)

	_, err = k.ImportPromptFS(fstest.MapFS{
		"Broken/skprompt.txt": {Data: []byte("x")},
		"Broken/config.json":  {Data: []byte("{not json")},
	}, "Broken")
	assert.Error(t, err)
}

func TestKernel_ImportPromptDirectory(t *testing.T) {
	k := newTestKernel(&MockLLM{})

	_, err := k.ImportPromptDirectory(t.TempDir(), "")
	assert.Error(t, err, "a directory without prompt functions is rejected")
}
