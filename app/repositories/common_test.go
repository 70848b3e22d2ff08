package repositories

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *badger.DB {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetNextIDSequence(t *testing.T) {
	db := setupTestDB(t)

	for want := 1; want <= 3; want++ {
		err := db.Update(func(txn *badger.Txn) error {
			id, err := getNextID(txn, "seq:test")
			require.NoError(t, err)
			require.Equal(t, want, id)
			return nil
		})
		require.NoError(t, err)
	}
}

func TestSequencesAreIndependent(t *testing.T) {
	db := setupTestDB(t)

	err := db.Update(func(txn *badger.Txn) error {
		a, err := getNextID(txn, PostSeqKey)
		require.NoError(t, err)
		b, err := getNextID(txn, BookSeqKey)
		require.NoError(t, err)
		require.Equal(t, 1, a)
		require.Equal(t, 1, b)
		return nil
	})
	require.NoError(t, err)
}
