package ingredients

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smallnest/kernelplay/store"
	"github.com/smallnest/kernelplay/store/file"
)

func TestGetIngredients(t *testing.T) {
	base := t.TempDir()
	s := file.NewFileCollectionStore(base)
	fn, ok := New(s).Function("GetIngredients")
	require.True(t, ok)

	require.NoError(t, os.MkdirAll(filepath.Join(base, "ingredients"), 0o755))
	require.NoError(t, os.WriteFile(s.Path(Collection), []byte(`[{"name":"flour","quantity":"2 cups"},{"name":"eggs","quantity":3}]`), 0o644))

	out, err := fn.Invoke(context.Background(), nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"flour","quantity":"2 cups"},{"name":"eggs","quantity":3}]`, out)

	require.NoError(t, os.WriteFile(s.Path(Collection), []byte(`not json`), 0o644))
	_, err = fn.Invoke(context.Background(), nil)
	assert.ErrorIs(t, err, store.ErrMalformed)
}
