// Package scenario contains the playground demonstrations. Each scenario
// builds its own kernel over Env.Model, registers the plugins it needs and
// writes its results to Env.Output.
//
//	err := scenario.Run(ctx, "CompleteTask", &scenario.Env{
//		Model:  llm,
//		Store:  collections,
//		Output: scenario.TextOutput{W: os.Stdout},
//	})
//
// The scenarios are:
//
//	HelloWorld                 one line TLDR of a text
//	CurrentDayTime             TimePlugin.Now inside a prompt
//	ConversationSummary        the ConversationSummaryPlugin functions
//	TodoistProjects            Todoist projects as a markdown list
//	SuggestChords              a prompt function loaded from a directory
//	TravelPlugins              two prompt functions sharing chat history
//	CompleteTask               marks a to-do item complete
//	MusicLibrary               adds a song to the recently played list
//	Ingredients                recipe ideas from the stored ingredients
//	CombinePromptsWithPlugins  song suggestion from two plugin calls
//	TravelBot                  intent routing with currency conversion
//	AutoInvoke                 the model calls plugin functions itself
//	Planner                    step plans over the music plugins
//	IngredientsPlanner         a plan that finds missing ingredients
package scenario
