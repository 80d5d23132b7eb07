// Package plugin describes the functions a kernel can call.
//
// A Plugin groups Functions under a name. Each Function carries a
// description and Parameter metadata, which is enough to build the JSON
// schema a chat model needs for tool calling (Collection.Definitions) and to
// wrap the function as a langchaingo tools.Tool (Collection.Tools).
//
// Functions are addressed as "Plugin.Function" in prompt templates and as
// "Plugin-Function" when exposed to a model:
//
//	p := plugin.New("MusicLibraryPlugin", "The user's music library",
//		plugin.NewFunction("GetRecentPlays", "Recently played songs", handler),
//	)
//	c := plugin.NewCollection(p)
//	fn, err := c.Resolve("MusicLibraryPlugin-GetRecentPlays")
package plugin
