//go:build bleve

package search

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBleveEngineIndexesAndSearches(t *testing.T) {
	store := seededStore(t)

	idxPath := filepath.Join(t.TempDir(), "index.bleve")
	eng, err := NewBleveEngine(store, idxPath)
	require.NoError(t, err)

	res, err := eng.Search("transformers", 10)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(res), 1)

	res, err = eng.Search("attention", 10)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(res), 1)

	fi, err := os.Stat(idxPath)
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	statser, ok := eng.(DebugStatser)
	require.True(t, ok)
	count, err := statser.DocCount()
	require.NoError(t, err)
	require.Equal(t, 4, count)
}
