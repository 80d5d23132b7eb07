package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/kernelplay/store"
)

func TestRedisCollectionStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	s := NewRedisCollectionStore(RedisOptions{
		Addr: mr.Addr(),
	})
	defer s.Close()

	ctx := context.Background()

	// Missing key
	_, err = s.Load(ctx, "todolist/todo")
	assert.ErrorIs(t, err, store.ErrNotFound)

	// Save and load
	c := store.Collection{
		{"task": "Buy groceries", "completed": false},
		{"task": "Call mom", "completed": true},
	}
	require.NoError(t, s.Save(ctx, "todolist/todo", c))
	assert.True(t, mr.Exists("kernelplay:collection:todolist/todo"))

	loaded, err := s.Load(ctx, "todolist/todo")
	require.NoError(t, err)
	assert.Equal(t, c, loaded)

	// Malformed document
	require.NoError(t, mr.Set("kernelplay:collection:broken", "not json"))
	_, err = s.Load(ctx, "broken")
	assert.ErrorIs(t, err, store.ErrMalformed)

	// Update goes through Load and Save
	err = store.Update(ctx, s, "todolist/todo", func(c store.Collection) (store.Collection, bool, error) {
		c[0]["completed"] = true
		return c, true, nil
	})
	require.NoError(t, err)
	loaded, err = s.Load(ctx, "todolist/todo")
	require.NoError(t, err)
	assert.Equal(t, true, loaded[0]["completed"])
}

func TestRedisCollectionStore_PrefixAndTTL(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	s := NewRedisCollectionStore(RedisOptions{
		Addr:   mr.Addr(),
		Prefix: "playground:",
		TTL:    time.Minute,
	})
	defer s.Close()

	require.NoError(t, s.Save(context.Background(), "songs", store.Collection{{"title": "Danse"}}))
	assert.True(t, mr.Exists("playground:collection:songs"))
	assert.Equal(t, time.Minute, mr.TTL("playground:collection:songs"))
}

func TestRedisCollectionStore_ServerDown(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	s := NewRedisCollectionStore(RedisOptions{Addr: addr})
	defer s.Close()

	err = s.Save(context.Background(), "songs", store.Collection{})
	assert.ErrorIs(t, err, store.ErrIO)
}
