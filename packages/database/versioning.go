package database

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/kvstore"
)

// DBVersion defines the version of the database schema this version of the simulator supports.
// Every time there's a breaking change regarding the stored data, this version flag should be adjusted.
const DBVersion byte = 1

var (
	// ErrDBVersionIncompatible is returned if the database was written with a different schema version.
	ErrDBVersionIncompatible = errors.New("database version is not compatible. please delete your database folder and restart")

	dbVersionKey = kvstore.Key{PrefixDatabaseVersion}
)

// StoreVersion persists the DBVersion in the given store.
func StoreVersion(store kvstore.KVStore) error {
	if err := store.Set(dbVersionKey, kvstore.Value{DBVersion}); err != nil {
		return errors.Errorf("unable to persist db version number: %w", err)
	}

	return nil
}

// CheckVersion checks whether the store is compatible with the current schema version.
func CheckVersion(store kvstore.KVStore) error {
	value, err := store.Get(dbVersionKey)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			return errors.Errorf("no database version was persisted: %w", ErrDBVersionIncompatible)
		}

		return errors.Errorf("failed to read db version: %w", err)
	}
	if len(value) != 1 || value[0] != DBVersion {
		return errors.Errorf("supported version: %d, version of database: %v: %w", DBVersion, value, ErrDBVersionIncompatible)
	}

	return nil
}
