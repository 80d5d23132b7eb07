package prompts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"github.com/smallnest/kernelplay/kernel"
	"github.com/smallnest/kernelplay/plugin"
)

// echoLLM answers every request with a fixed text and records the prompt.
type echoLLM struct {
	answer  string
	prompts []string
	options []llms.CallOptions
}

func (m *echoLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	var opts llms.CallOptions
	for _, opt := range options {
		opt(&opts)
	}
	m.options = append(m.options, opts)
	for _, part := range messages[0].Parts {
		if text, ok := part.(llms.TextContent); ok {
			m.prompts = append(m.prompts, text.Text)
		}
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.answer}}}, nil
}

func (m *echoLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func functionNames(p *plugin.Plugin) []string {
	var names []string
	for _, fn := range p.Functions() {
		names = append(names, fn.Name)
	}
	return names
}

func TestSetsLoad(t *testing.T) {
	k := kernel.New(&echoLLM{})

	tests := []struct {
		set   Set
		funcs []string
	}{
		{Library, []string{"GetIntent", "GetTargetCurrencies", "HelpfulPhrases", "SuggestChords", "Translate"}},
		{Travel, []string{"SuggestActivities", "SuggestDestinations"}},
		{Recipes, []string{"FindMissingIngredients", "GetRecipeIngredients"}},
	}
	for _, tt := range tests {
		t.Run(tt.set.Plugin, func(t *testing.T) {
			p, err := tt.set.Create(k)
			require.NoError(t, err)
			assert.Equal(t, tt.set.Plugin, p.Name)
			assert.ElementsMatch(t, tt.funcs, functionNames(p))
			for _, fn := range p.Functions() {
				assert.NotEmpty(t, fn.Description, fn.Name)
			}
		})
	}
}

func TestSuggestChords(t *testing.T) {
	model := &echoLLM{answer: "Am, F, D"}
	k := kernel.New(model)
	p, err := Library.Import(k)
	require.NoError(t, err)

	fn, ok := p.Function("SuggestChords")
	require.True(t, ok)

	out, err := k.Invoke(context.Background(), fn, plugin.Arguments{"startingChords": "G, C"})
	require.NoError(t, err)
	assert.Equal(t, "Am, F, D", out)

	require.Len(t, model.prompts, 1)
	assert.Contains(t, model.prompts[0], "go with G, C?")
	assert.Equal(t, 1000, model.options[0].MaxTokens)
	assert.InDelta(t, 0.2, model.options[0].Temperature, 1e-9)

	_, err = k.Invoke(context.Background(), fn, plugin.Arguments{})
	assert.ErrorIs(t, err, plugin.ErrMissingArgument)
}

func TestTranslateDefaultLanguage(t *testing.T) {
	model := &echoLLM{answer: "Good morning"}
	k := kernel.New(model)
	_, err := Library.Import(k)
	require.NoError(t, err)

	_, err = k.InvokeFunction(context.Background(), "Prompts", "Translate", plugin.Arguments{"input": "Dzień dobry"})
	require.NoError(t, err)
	assert.Contains(t, model.prompts[0], "into English.")
}
