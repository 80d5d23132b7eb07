// Package ingredients lists the ingredients the user has at home.
package ingredients

import (
	"context"

	"github.com/smallnest/kernelplay/plugin"
	"github.com/smallnest/kernelplay/plugins"
	"github.com/smallnest/kernelplay/store"
)

const (
	PluginName = "IngredientsPlugin"
	Collection = "ingredients/ingredients"
)

// New builds the plugin over s.
func New(s store.CollectionStore) *plugin.Plugin {
	return plugin.New(PluginName, "The user's ingredients",
		plugin.NewFunction("GetIngredients", "Get a list of the user's ingredients",
			func(ctx context.Context, _ plugin.Arguments) (string, error) {
				return plugins.LoadJSON(ctx, s, Collection)
			}),
	)
}
