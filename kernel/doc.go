// Package kernel sends prompts to a model and lets prompts and the model call
// plugin functions.
//
// A Kernel owns an llms.Model and a plugin.Collection:
//
//	k := kernel.New(model, kernel.WithPlugins(timeplugin.New(clock)))
//	answer, err := k.InvokePrompt(ctx, "Today is {{TimePlugin.Today}}. Which day of the week is it?", nil)
//
// # Templates
//
// Prompt templates contain blocks in double braces. A block is a variable
// ({{$input}}), a quoted literal, or a function call with optional arguments
// ({{ConversationSummaryPlugin.SummarizeConversation $input}},
// {{Plugin.Function name='value'}}). Text outside blocks is sent as is.
//
// # Prompt functions
//
// CreateFunctionFromPrompt wraps a template as a plugin.Function, so prompts
// can be registered next to native functions and called from other
// templates. ImportPromptDirectory loads a directory laid out as
//
//	Prompts/
//	  SuggestChords/
//	    skprompt.txt
//	    config.json   (optional: description, input_variables, execution_settings)
//
// # Auto invoke
//
// With WithAutoInvoke the model receives every registered function as a tool.
// Requested calls are executed and their results returned to the model until
// it answers in text.
package kernel
