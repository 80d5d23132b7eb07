package scenario

import (
	"context"

	"github.com/smallnest/kernelplay/kernel"
	"github.com/smallnest/kernelplay/plugin"
	"github.com/smallnest/kernelplay/plugins/summary"
	"github.com/smallnest/kernelplay/plugins/timeplugin"
	"github.com/smallnest/kernelplay/plugins/todoistplugin"
)

func init() {
	register(Scenario{Name: "HelloWorld", Description: "One line TLDR of a text", Run: HelloWorld})
	register(Scenario{Name: "CurrentDayTime", Description: "Current date in popular formats via TimePlugin", Run: CurrentDayTime})
	register(Scenario{Name: "ConversationSummary", Description: "Summary, topics and action items of a conversation", Run: ConversationSummary})
	register(Scenario{Name: "TodoistProjects", Description: "Todoist projects as a markdown list", Run: TodoistProjects})
}

const tldrPrompt = `{{$input}}

One line TLDR with the fewest words.`

const thermodynamics = `
1st Law of Thermodynamics - Energy cannot be created or destroyed.
2nd Law of Thermodynamics - For a spontaneous process, the entropy of the universe increases.
3rd Law of Thermodynamics - A perfect crystal at zero Kelvin has zero entropy.`

// HelloWorld summarises the laws of thermodynamics in one line.
func HelloWorld(ctx context.Context, env *Env) error {
	k := env.newKernel()
	summarize := k.CreateFunctionFromPrompt(tldrPrompt, kernel.PromptConfig{Name: "Summarize"}, kernel.WithMaxTokens(100))

	out, err := k.Invoke(ctx, summarize, plugin.Arguments{"input": thermodynamics})
	if err != nil {
		return err
	}
	env.Output.Answer(out)
	return nil
}

const currentDatePrompt = `Current date {{TimePlugin.Now}}
print me current date in most popular formats`

// CurrentDayTime asks the model to format the current date.
func CurrentDayTime(ctx context.Context, env *Env) error {
	k := env.newKernel(timeplugin.New(env.Clock))

	out, err := k.InvokePrompt(ctx, currentDatePrompt, nil)
	if err != nil {
		return err
	}
	env.Output.Answer(out)
	return nil
}

const recipesPrompt = `User background:
{{ConversationSummaryPlugin.SummarizeConversation $input}}
Given this user's background, provide a list of relevant recipes.`

const veganRequest = `I'm a vegan in search of new recipes.
I love spicy food! Can you give me a list of breakfast
recipes that are vegan friendly?`

// ConversationSummary suggests recipes from a summarised request, then runs
// each ConversationSummaryPlugin function on the request directly.
func ConversationSummary(ctx context.Context, env *Env) error {
	k := env.newKernel()
	if err := k.AddPlugin(summary.New(k)); err != nil {
		return err
	}

	args := plugin.Arguments{"input": veganRequest}

	suggestRecipes := k.CreateFunctionFromPrompt(recipesPrompt, kernel.PromptConfig{Name: "SuggestRecipes"})
	out, err := k.Invoke(ctx, suggestRecipes, args)
	if err != nil {
		return err
	}
	env.Output.Heading("Recipes")
	env.Output.Answer(out)

	for _, fn := range []string{"SummarizeConversation", "GetConversationTopics", "GetConversationActionItems"} {
		out, err := k.InvokeFunction(ctx, summary.PluginName, fn, args)
		if err != nil {
			return err
		}
		env.Output.Heading(fn)
		env.Output.Answer(out)
	}
	return nil
}

const projectsPrompt = `{{TodoistPlugin.GetProjects}}
for the given list project names in markdown bullet list. Preserve hierarchy
Projects:`

// TodoistProjects lists the user's Todoist projects through the model.
func TodoistProjects(ctx context.Context, env *Env) error {
	if env.Todoist == nil {
		return ErrTodoistUnavailable
	}
	k := env.newKernel(todoistplugin.New(env.Todoist))

	getProjects := k.CreateFunctionFromPrompt(projectsPrompt, kernel.PromptConfig{Name: "ListProjects"})
	out, err := k.Invoke(ctx, getProjects, nil)
	if err != nil {
		return err
	}
	env.Output.Answer(out)
	return nil
}
