package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/kernelplay/store"
)

func TestMemoryCollectionStore_New(t *testing.T) {
	t.Parallel()

	ms := NewMemoryCollectionStore()
	require.NotNil(t, ms)

	var _ store.CollectionStore = ms
	assert.Empty(t, ms.Names())
}

func TestMemoryCollectionStore_BasicOperations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("load of unknown collection is not found", func(t *testing.T) {
		t.Parallel()
		ms := NewMemoryCollectionStore()

		_, err := ms.Load(ctx, "concerts")
		assert.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("save and load", func(t *testing.T) {
		t.Parallel()
		ms := NewMemoryCollectionStore()

		c := store.Collection{
			{"artist": "Lisa Taylor", "location": "Seattle, WA, USA", "date": "2/22/2024"},
			{"artist": "Mademoiselle Durand", "location": "Portland, OR, USA", "date": "2/27/2024"},
		}
		require.NoError(t, ms.Save(ctx, "concerts", c))

		loaded, err := ms.Load(ctx, "concerts")
		require.NoError(t, err)
		assert.Equal(t, c, loaded)
		assert.Equal(t, []string{"concerts"}, ms.Names())
	})

	t.Run("loaded collection is a copy", func(t *testing.T) {
		t.Parallel()
		ms := NewMemoryCollectionStore()
		require.NoError(t, ms.Save(ctx, "todo", store.Collection{{"task": "Buy groceries", "completed": false}}))

		loaded, err := ms.Load(ctx, "todo")
		require.NoError(t, err)
		loaded[0]["completed"] = true

		again, err := ms.Load(ctx, "todo")
		require.NoError(t, err)
		assert.Equal(t, false, again[0]["completed"])
	})

	t.Run("nil collection saves as empty", func(t *testing.T) {
		t.Parallel()
		ms := NewMemoryCollectionStore()
		require.NoError(t, ms.Save(ctx, "empty", nil))

		loaded, err := ms.Load(ctx, "empty")
		require.NoError(t, err)
		assert.NotNil(t, loaded)
		assert.Len(t, loaded, 0)
	})
}
