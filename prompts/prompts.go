// Package prompts bundles the prompt function directories used by the
// scenarios. Each set is a tree of <Function>/skprompt.txt with an optional
// config.json, loaded through kernel.ImportPromptFS.
package prompts

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/smallnest/kernelplay/kernel"
	"github.com/smallnest/kernelplay/plugin"
)

//go:embed library travel recipes
var files embed.FS

// Set is one directory of prompt functions imported as a single plugin.
type Set struct {
	Dir    string
	Plugin string
}

var (
	// Library holds SuggestChords and the TravelBot prompts.
	Library = Set{Dir: "library", Plugin: "Prompts"}

	// Travel holds SuggestDestinations and SuggestActivities.
	Travel = Set{Dir: "travel", Plugin: "TravelPlugins"}

	// Recipes holds the prompts the ingredients planner combines with IngredientsPlugin.
	Recipes = Set{Dir: "recipes", Plugin: "RecipePlugins"}
)

// FS returns the set's directory.
func (s Set) FS() fs.FS {
	sub, err := fs.Sub(files, s.Dir)
	if err != nil {
		panic(fmt.Sprintf("prompts: %v", err))
	}
	return sub
}

// Create builds the plugin without registering it.
func (s Set) Create(k *kernel.Kernel) (*plugin.Plugin, error) {
	return k.CreatePluginFromPromptFS(s.FS(), s.Plugin)
}

// Import builds the plugin and registers it with k.
func (s Set) Import(k *kernel.Kernel) (*plugin.Plugin, error) {
	return k.ImportPromptFS(s.FS(), s.Plugin)
}
