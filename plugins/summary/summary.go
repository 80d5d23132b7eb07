// Package summary provides prompt functions that condense a conversation.
package summary

import (
	"github.com/smallnest/kernelplay/kernel"
	"github.com/smallnest/kernelplay/plugin"
)

// PluginName is the name the plugin registers under.
const PluginName = "ConversationSummaryPlugin"

const summarizePrompt = `BEGIN CONTENT TO SUMMARIZE:
{{$input}}

END CONTENT TO SUMMARIZE.

Summarize the conversation in 'CONTENT TO SUMMARIZE', identifying main points of discussion and any conclusions that were reached.
Do not incorporate other general knowledge.
Summary is in plain text, in complete sentences, with no markup or tags.

BEGIN SUMMARY:
`

const topicsPrompt = `Analyze the following extract taken from a conversation transcript.
Determine the topics of the conversation.
Be very brief, using at most 3 words per topic. Return the topics one per line.

[Input]
{{$input}}
[Output]
`

const actionItemsPrompt = `You are an action item extractor. Read the conversation below and list every task someone agreed or was asked to do.
For each action item give the owner, the action and the due date when one was mentioned.
If there are no action items, reply with "No action items".

CONTENT STARTS HERE.
{{$input}}
CONTENT STOPS HERE.

ACTION ITEMS:
`

var input = []kernel.InputVariable{{
	Name:        "input",
	Description: "A long conversation transcript.",
	Required:    true,
}}

// New builds the plugin. Its functions render their prompt through k and
// return the model's answer.
func New(k *kernel.Kernel) *plugin.Plugin {
	settings := map[string]kernel.ExecutionSettings{
		kernel.DefaultServiceID: {MaxTokens: 1024},
	}
	return plugin.New(PluginName, "Summaries of conversations",
		k.CreateFunctionFromPrompt(summarizePrompt, kernel.PromptConfig{
			Name:              "SummarizeConversation",
			Description:       "Given a section of a conversation transcript, summarize the part of the conversation.",
			InputVariables:    input,
			ExecutionSettings: settings,
		}),
		k.CreateFunctionFromPrompt(topicsPrompt, kernel.PromptConfig{
			Name:              "GetConversationTopics",
			Description:       "Analyze a conversation transcript and extract key topics worth remembering.",
			InputVariables:    input,
			ExecutionSettings: settings,
		}),
		k.CreateFunctionFromPrompt(actionItemsPrompt, kernel.PromptConfig{
			Name:              "GetConversationActionItems",
			Description:       "Given a section of a conversation transcript, identify action items.",
			InputVariables:    input,
			ExecutionSettings: settings,
		}),
	)
}
