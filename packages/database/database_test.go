package database

import (
	"testing"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgersim/ledgersim/packages/ledgerstate"
)

func testSnapshot() *ledgerstate.Snapshot {
	address := ledgerstate.NewED25519Address(ed25519.GenerateKeyPair().PublicKey)

	return ledgerstate.NewSnapshot(7, ledgerstate.NewGenesisIndex(
		ledgerstate.NewOutput(address, ledgerstate.LovelaceValue(100)),
		ledgerstate.NewOutput(address, ledgerstate.LovelaceValue(5)),
	))
}

func TestSnapshot(t *testing.T) {
	for name, newDB := range map[string]func(t *testing.T) DB{
		"MemDB": func(t *testing.T) DB {
			db, err := NewMemDB()
			require.NoError(t, err)
			return db
		},
		"BadgerDB": func(t *testing.T) DB {
			db, err := NewDB(t.TempDir())
			require.NoError(t, err)
			return db
		},
	} {
		t.Run(name, func(t *testing.T) {
			db := newDB(t)
			defer func() {
				assert.NoError(t, db.Close())
			}()

			_, err := LoadSnapshot(db)
			assert.ErrorIs(t, err, ErrDBVersionIncompatible)

			snapshot := testSnapshot()
			require.NoError(t, StoreSnapshot(db, snapshot))

			restored, err := LoadSnapshot(db)
			require.NoError(t, err)
			assert.Equal(t, snapshot.Bytes(), restored.Bytes())
		})
	}
}

func TestCheckVersion(t *testing.T) {
	db, err := NewMemDB()
	require.NoError(t, err)
	store := db.NewStore()

	require.NoError(t, StoreVersion(store))
	assert.NoError(t, CheckVersion(store))

	require.NoError(t, store.Set(dbVersionKey, []byte{DBVersion + 1}))
	assert.ErrorIs(t, CheckVersion(store), ErrDBVersionIncompatible)
}

func TestNew(t *testing.T) {
	memDB, err := New("", true)
	require.NoError(t, err)
	assert.False(t, memDB.RequiresGC())
	assert.NoError(t, memDB.Close())
	assert.NoError(t, memDB.Close())

	badgerDB, err := New(t.TempDir(), false)
	require.NoError(t, err)
	assert.True(t, badgerDB.RequiresGC())
	assert.NoError(t, badgerDB.GC())
	assert.NoError(t, badgerDB.Close())
}
