package badger

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend(t *testing.T) {
	t.Run("creates missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "data", "db")

		backend, err := OpenBackend(dir, false)
		require.NoError(t, err)
		defer backend.Close()

		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("rejects file path", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "occupied")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

		_, err := OpenBackend(file, false)
		assert.Error(t, err)
	})
}

func TestBackendUpdate(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	key := []byte("backend-test-key")

	t.Run("commits on success", func(t *testing.T) {
		err := backend.Update(func(tx *badger.Txn) error {
			return tx.Set(key, []byte("value"))
		})
		require.NoError(t, err)

		err = backend.View(func(tx *badger.Txn) error {
			_, err := tx.Get(key)
			return err
		})
		assert.NoError(t, err)
	})

	t.Run("discards on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := backend.Update(func(tx *badger.Txn) error {
			if err := tx.Set([]byte("never-committed"), []byte("value")); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		err = backend.View(func(tx *badger.Txn) error {
			_, err := tx.Get([]byte("never-committed"))
			return err
		})
		assert.ErrorIs(t, err, badger.ErrKeyNotFound)
	})
}
