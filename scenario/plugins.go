package scenario

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/memory"

	"github.com/smallnest/kernelplay/plugin"
	"github.com/smallnest/kernelplay/plugins/ingredients"
	"github.com/smallnest/kernelplay/plugins/musiclibrary"
	"github.com/smallnest/kernelplay/plugins/todolist"
	"github.com/smallnest/kernelplay/prompts"
)

func init() {
	register(Scenario{Name: "SuggestChords", Description: "Prompt function loaded from a prompt directory", Run: SuggestChords})
	register(Scenario{Name: "TravelPlugins", Description: "Destination and activity suggestions sharing chat history", Run: TravelPlugins})
	register(Scenario{Name: "CompleteTask", Description: "Mark a to-do list item as complete", Run: CompleteTask})
	register(Scenario{Name: "MusicLibrary", Description: "Add a song to the recently played list", Run: MusicLibrary})
	register(Scenario{Name: "Ingredients", Description: "Recipe suggestion from the user's ingredients", Run: Ingredients})
	register(Scenario{Name: "CombinePromptsWithPlugins", Description: "Song suggestion from the library and recent plays", Run: CombinePromptsWithPlugins})
}

// SuggestChords asks for chords that go with "G, C".
func SuggestChords(ctx context.Context, env *Env) error {
	k := env.newKernel()
	p, err := prompts.Library.Create(k)
	if err != nil {
		return err
	}
	fn, ok := p.Function("SuggestChords")
	if !ok {
		return fmt.Errorf("%w: SuggestChords", plugin.ErrFunctionNotFound)
	}

	out, err := k.Invoke(ctx, fn, plugin.Arguments{"startingChords": "G, C"})
	if err != nil {
		return err
	}
	env.Output.Answer(out)
	return nil
}

const tripDescription = `Planuję podróż do Mediolanu z moją narzeczoną.
Przylot jest zaplanowany na niedzielę wieczór (do Beregamo), a wylot w środę w południe.
Lubimy zwiedzać miasto i jeść pyszne jedzenie`

// TravelPlugins suggests destinations for a trip, asks the user where to go
// and suggests activities there with the conversation so far as context.
func TravelPlugins(ctx context.Context, env *Env) error {
	k := env.newKernel()
	if _, err := prompts.Travel.Import(k); err != nil {
		return err
	}
	history := memory.NewChatMessageHistory()

	out, err := k.InvokeFunction(ctx, prompts.Travel.Plugin, "SuggestDestinations", plugin.Arguments{"input": tripDescription})
	if err != nil {
		return err
	}
	env.Output.Answer(out)

	if err := history.AddUserMessage(ctx, tripDescription); err != nil {
		return err
	}
	if err := history.AddAIMessage(ctx, out); err != nil {
		return err
	}

	destination, err := env.readLine("Where would you like to go? ")
	if err != nil {
		return err
	}

	messages, err := history.Messages(ctx)
	if err != nil {
		return err
	}
	transcript, err := llms.GetBufferString(messages, "User", "Assistant")
	if err != nil {
		return err
	}

	out, err = k.InvokeFunction(ctx, prompts.Travel.Plugin, "SuggestActivities", plugin.Arguments{
		"history":     transcript,
		"destination": destination,
	})
	if err != nil {
		return err
	}
	env.Output.Answer(out)
	return nil
}

// CompleteTask marks "Buy groceries" as complete.
func CompleteTask(ctx context.Context, env *Env) error {
	k := env.newKernel(todolist.New(env.Store))

	out, err := k.InvokeFunction(ctx, todolist.PluginName, "CompleteTask", plugin.Arguments{"task": "Buy groceries"})
	if err != nil {
		return err
	}
	env.Output.Println(out)
	return nil
}

// MusicLibrary adds "Danse" by Tiara to the recently played songs.
func MusicLibrary(ctx context.Context, env *Env) error {
	k := env.newKernel(musiclibrary.New(env.Store))

	out, err := k.InvokeFunction(ctx, musiclibrary.PluginName, "AddToRecentlyPlayed", plugin.Arguments{
		"artist": "Tiara",
		"song":   "Danse",
		"genre":  "French pop, electropop, pop",
	})
	if err != nil {
		return err
	}
	env.Output.Println(out)
	return nil
}

const ingredientsPrompt = `This is a list of ingredients available to the user:
{{IngredientsPlugin.GetIngredients}}

Please suggest a recipe the user could make with
some of the ingredients they have available`

// Ingredients suggests a recipe from the stored ingredients.
func Ingredients(ctx context.Context, env *Env) error {
	k := env.newKernel(ingredients.New(env.Store))

	out, err := k.InvokePrompt(ctx, ingredientsPrompt, nil)
	if err != nil {
		return err
	}
	env.Output.Answer(out)
	return nil
}

const nextSongPrompt = `This is a list of music available to the user:
{{MusicLibraryPlugin.GetMusicLibrary}}

This is a list of music the user has recently played:
{{MusicLibraryPlugin.GetRecentPlays}}

Based on their recently played music, suggest a song from
the list to play next`

// CombinePromptsWithPlugins suggests the next song from the library.
func CombinePromptsWithPlugins(ctx context.Context, env *Env) error {
	k := env.newKernel(musiclibrary.New(env.Store))

	out, err := k.InvokePrompt(ctx, nextSongPrompt, nil)
	if err != nil {
		return err
	}
	env.Output.Answer(out)
	return nil
}
