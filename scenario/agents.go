package scenario

import (
	"context"
	"fmt"
	"strings"

	"github.com/smallnest/kernelplay/kernel"
	"github.com/smallnest/kernelplay/planner"
	"github.com/smallnest/kernelplay/plugin"
	"github.com/smallnest/kernelplay/plugins/concerts"
	"github.com/smallnest/kernelplay/plugins/currency"
	"github.com/smallnest/kernelplay/plugins/ingredients"
	"github.com/smallnest/kernelplay/plugins/musiclibrary"
	"github.com/smallnest/kernelplay/plugins/summary"
	"github.com/smallnest/kernelplay/prompts"
)

func init() {
	register(Scenario{Name: "TravelBot", Description: "Routes a travel request by intent, converting currencies when asked", Run: TravelBot})
	register(Scenario{Name: "AutoInvoke", Description: "The model calls the music plugins to recommend a concert", Run: AutoInvoke})
	register(Scenario{Name: "Planner", Description: "Step plans for a song suggestion and a concert recommendation", Run: Planner})
	register(Scenario{Name: "IngredientsPlanner", Description: "A plan that finds the ingredients missing for a recipe", Run: IngredientsPlanner})
}

// Intents returned by the GetIntent prompt.
const (
	IntentConvertCurrency     = "ConvertCurrency"
	IntentSuggestDestinations = "SuggestDestinations"
	IntentSuggestActivities   = "SuggestActivities"
	IntentHelpfulPhrases      = "HelpfulPhrases"
	IntentTranslate           = "Translate"
)

// ParseCurrencyRequest splits the "target|base|amount" answer of
// GetTargetCurrencies.
func ParseCurrencyRequest(text string) (target, base, amount string, err error) {
	parts := strings.Split(strings.TrimSpace(text), "|")
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("expected target|base|amount, got %q", text)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2]), nil
}

// TravelBot reads a request, asks the model for its intent and either
// converts currencies or lets the model answer with the plugins available.
func TravelBot(ctx context.Context, env *Env) error {
	k := env.newKernel(currency.New(env.Store))
	if err := k.AddPlugin(summary.New(k)); err != nil {
		return err
	}
	if _, err := prompts.Library.Import(k); err != nil {
		return err
	}

	input, err := env.readLine("What would you like to do? ")
	if err != nil {
		return err
	}
	args := plugin.Arguments{"input": input}

	intent, err := k.InvokeFunction(ctx, prompts.Library.Plugin, "GetIntent", args)
	if err != nil {
		return err
	}
	intent = strings.TrimSpace(intent)
	env.logger().Info("User's intent: %s", intent)

	if intent == IntentConvertCurrency {
		currencyText, err := k.InvokeFunction(ctx, prompts.Library.Plugin, "GetTargetCurrencies", args)
		if err != nil {
			return err
		}
		target, base, amount, err := ParseCurrencyRequest(currencyText)
		if err != nil {
			return err
		}
		out, err := k.InvokeFunction(ctx, currency.PluginName, "ConvertAmount", plugin.Arguments{
			"targetCurrencyCode": target,
			"baseCurrencyCode":   base,
			"amount":             amount,
		})
		if err != nil {
			return err
		}
		env.Output.Println(out)
		return nil
	}

	switch intent {
	case IntentSuggestDestinations, IntentSuggestActivities, IntentHelpfulPhrases, IntentTranslate:
	default:
		env.Output.Println("Sure, I can help with that.")
	}
	out, err := k.InvokePrompt(ctx, "{{$input}}", args, kernel.WithAutoInvoke(0))
	if err != nil {
		return err
	}
	env.Output.Answer(out)
	return nil
}

const concertPrompt = `I live in Portland OR USA. Based on my recently
played songs and a list of upcoming concerts, which concert
do you recommend?`

// AutoInvoke lets the model fetch recent plays and tour dates on its own.
func AutoInvoke(ctx context.Context, env *Env) error {
	k := env.newKernel(musiclibrary.New(env.Store), concerts.New(env.Store))
	if _, err := prompts.Library.Import(k); err != nil {
		return err
	}

	out, err := k.InvokePrompt(ctx, concertPrompt, nil, kernel.WithAutoInvoke(0))
	if err != nil {
		return err
	}
	env.Output.Answer(out)
	return nil
}

const suggestSongPrompt = `Based on the user's recently played music:
{{$recentlyPlayedSongs}}
recommend a song to the user from the music library:
{{$musicLibrary}}`

// Planner shows the plan for a song suggestion, then plans and runs a
// concert recommendation.
func Planner(ctx context.Context, env *Env) error {
	k := env.newKernel(musiclibrary.New(env.Store), concerts.New(env.Store))
	if _, err := prompts.Library.Import(k); err != nil {
		return err
	}

	suggestSong := k.CreateFunctionFromPrompt(suggestSongPrompt, kernel.PromptConfig{
		Name:        "SuggestSong",
		Description: "Suggest a song to the user",
	})
	if _, err := k.AddPluginFromFunctions("SuggestSongPlugin", suggestSong); err != nil {
		return err
	}

	p := planner.New(env.Model, k.Plugins().Tools(),
		planner.WithAllowLoops(true),
		planner.WithLogger(env.logger()),
	)

	songPlan, err := p.CreatePlan(ctx, `Suggest a song from the
music library to the user based on their recently played songs`)
	if err != nil {
		return err
	}
	env.Output.Heading("Song Plan")
	env.Output.Println(songPlan.String())

	location := "Redmond WA USA"
	goal := fmt.Sprintf(`Based on the user's recently played music, suggest a
concert for the user living in %s`, location)

	plan, err := p.CreatePlan(ctx, goal)
	if err != nil {
		return err
	}
	env.Output.Heading("Concert Plan")
	env.Output.Println(plan.String())

	result, err := plan.Invoke(ctx)
	if err != nil {
		return err
	}
	env.Output.Heading("Results")
	env.Output.Answer(result)
	return nil
}

// IngredientsPlanner plans and runs "which ingredients am I missing for
// blueberry muffins" over IngredientsPlugin and the recipe prompts.
func IngredientsPlanner(ctx context.Context, env *Env) error {
	k := env.newKernel(ingredients.New(env.Store))
	if _, err := prompts.Recipes.Import(k); err != nil {
		return err
	}

	p := planner.New(env.Model, k.Plugins().Tools(),
		planner.WithAllowLoops(true),
		planner.WithLogger(env.logger()),
	)

	plan, err := p.CreatePlan(ctx, `What ingredients is the user missing from their
current ingredients list to make a recipe for blueberry muffins`)
	if err != nil {
		return err
	}
	env.Output.Println(plan.String())

	result, err := plan.Invoke(ctx)
	if err != nil {
		return err
	}
	env.Output.Answer(result)
	return nil
}
