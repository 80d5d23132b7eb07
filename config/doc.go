// Package config loads the playground settings from appsettings.toml (or a
// .json file with the same layout) and the environment.
//
// Example appsettings.toml:
//
//	[openai]
//	api_key = "sk-..."
//	model = "gpt-4o-mini"
//	connector = "gpt"          # or "langchaingo"
//
//	[todoist]
//	api_key = "..."
//
//	[store]
//	backend = "file"           # file, memory, redis, sqlite, postgres
//	base_path = "data"
//
//	[log]
//	level = "info"
//
// OPENAI_API_KEY, OPENAI_MODEL, OPENAI_API_BASE and TODOIST_API_KEY override
// the file. Both API keys are required; Validate reports ErrMissingKey otherwise.
package config
