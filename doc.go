// Package kernelplay is a playground for plugin-driven chat model applications.
//
// A kernel (package kernel) holds a chat model and a set of plugins. Plugin
// functions are either native Go functions or prompt templates, and the
// kernel can render templates that call functions inline, invoke functions
// directly, or let the model call them as tools.
//
// # Packages
//
//   - store: collection persistence with file, memory, Redis, SQLite and Postgres backends
//   - plugin: plugin and function metadata, argument checking, langchaingo tool adapters
//   - kernel: prompt rendering, function invocation, prompt directories and auto-invoke
//   - planner: model-generated step plans over a set of tools
//   - plugins: the built-in plugins (music library, concerts, ingredients, to-do list,
//     currency, time, conversation summary, Todoist)
//   - todoist: a Todoist REST v2 client
//   - llms/gpt: an OpenAI chat connector on go-openai
//   - config, log, seed, prompts: ambient configuration, logging, bundled data and prompts
//   - scenario: the demonstrations run by cmd/playground
//
// # Quick Start
//
//	model, _ := gpt.New(gpt.WithAPIKey(os.Getenv("OPENAI_API_KEY")))
//	s := memory.NewMemoryCollectionStore()
//	seed.Seed(ctx, s)
//
//	k := kernel.New(model, kernel.WithPlugins(musiclibrary.New(s)))
//	answer, err := k.InvokePrompt(ctx,
//		"Recently played: {{MusicLibraryPlugin.GetRecentPlays}}\nSuggest one more song.", nil)
//
// Or run a scenario from the command line:
//
//	go run ./cmd/playground -list
//	go run ./cmd/playground HelloWorld
package kernelplay
