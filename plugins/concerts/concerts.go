// Package concerts lists upcoming concert dates.
package concerts

import (
	"context"

	"github.com/smallnest/kernelplay/plugin"
	"github.com/smallnest/kernelplay/plugins"
	"github.com/smallnest/kernelplay/store"
)

const (
	PluginName = "MusicConcertPlugin"
	Collection = "musicconcert/concertdates"
)

// New builds the plugin over s.
func New(s store.CollectionStore) *plugin.Plugin {
	return plugin.New(PluginName, "Upcoming concerts",
		plugin.NewFunction("GetTours", "Get a list of upcoming concerts",
			func(ctx context.Context, _ plugin.Arguments) (string, error) {
				return plugins.LoadJSON(ctx, s, Collection)
			}),
	)
}
