// Package musiclibrary exposes the user's music library and recently played songs.
package musiclibrary

import (
	"context"
	"fmt"

	"github.com/smallnest/kernelplay/plugin"
	"github.com/smallnest/kernelplay/plugins"
	"github.com/smallnest/kernelplay/store"
)

const (
	// PluginName is the name the plugin registers under.
	PluginName = "MusicLibraryPlugin"

	// LibraryCollection holds every song available to the user.
	LibraryCollection = "musiclibrary/musiclibrary"

	// RecentCollection holds recently played songs, newest first.
	RecentCollection = "musiclibrary/recentlyplayed"
)

// Library reads and updates the song collections.
type Library struct {
	store store.CollectionStore
}

// NewLibrary creates a library backed by s.
func NewLibrary(s store.CollectionStore) *Library {
	return &Library{store: s}
}

// Songs returns the music library.
func (l *Library) Songs(ctx context.Context) (store.Collection, error) {
	return l.store.Load(ctx, LibraryCollection)
}

// RecentPlays returns the recently played songs.
func (l *Library) RecentPlays(ctx context.Context) (store.Collection, error) {
	return l.store.Load(ctx, RecentCollection)
}

// AddToRecentlyPlayed puts a song at the top of the recently played list.
func (l *Library) AddToRecentlyPlayed(ctx context.Context, artist, song, genre string) error {
	return store.Update(ctx, l.store, RecentCollection, func(c store.Collection) (store.Collection, bool, error) {
		entry := store.Record{
			"title":  song,
			"artist": artist,
			"genre":  genre,
		}
		return append(store.Collection{entry}, c...), true, nil
	})
}

// New builds the plugin over s.
func New(s store.CollectionStore) *plugin.Plugin {
	l := NewLibrary(s)
	return plugin.New(PluginName, "The user's music library",
		plugin.NewFunction("GetRecentPlays", "Get a list of music recently played by the user",
			func(ctx context.Context, _ plugin.Arguments) (string, error) {
				return plugins.LoadJSON(ctx, s, RecentCollection)
			}),
		plugin.NewFunction("AddToRecentlyPlayed", "Add a song to the recently played list",
			func(ctx context.Context, args plugin.Arguments) (string, error) {
				song := args.String("song")
				if err := l.AddToRecentlyPlayed(ctx, args.String("artist"), song, args.String("genre")); err != nil {
					return "", err
				}
				return fmt.Sprintf("Added '%s' to recently played", song), nil
			},
			plugin.Parameter{Name: "artist", Description: "The name of the artist", Required: true},
			plugin.Parameter{Name: "song", Description: "The title of the song", Required: true},
			plugin.Parameter{Name: "genre", Description: "The song genre", Required: true},
		),
		plugin.NewFunction("GetMusicLibrary", "Get a list of music available to the user",
			func(ctx context.Context, _ plugin.Arguments) (string, error) {
				return plugins.LoadJSON(ctx, s, LibraryCollection)
			}),
	)
}
