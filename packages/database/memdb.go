package database

import (
	"sync"

	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/kvstore/mapdb"
)

// memDB keeps everything in a single mapdb.
type memDB struct {
	store kvstore.KVStore
	mutex sync.Mutex
}

// NewMemDB returns a new in-memory (not persisted) DB object.
func NewMemDB() (DB, error) {
	return &memDB{store: mapdb.NewMapDB()}, nil
}

// New opens the badger DB in the given directory or an in-memory DB if inMemory is set.
func New(directory string, inMemory bool) (DB, error) {
	if inMemory {
		return NewMemDB()
	}

	return NewDB(directory)
}

func (db *memDB) NewStore() kvstore.KVStore {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	return db.store
}

// Close drops the content of the DB.
func (db *memDB) Close() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if db.store == nil {
		return nil
	}
	err := db.store.Clear()
	db.store = nil

	return err
}

func (db *memDB) RequiresGC() bool {
	return false
}

func (db *memDB) GC() error {
	return nil
}
