package database

import (
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/dgraph-io/badger/v2"
	"github.com/dgraph-io/badger/v2/options"
	"github.com/iotaledger/hive.go/kvstore"
	badgerstore "github.com/iotaledger/hive.go/kvstore/badger"
)

const valueLogGCDiscardRatio = 0.1

type badgerDB struct {
	*badger.DB
}

// NewDB returns a new persisting DB object.
func NewDB(dirname string) (DB, error) {
	if err := os.MkdirAll(dirname, 0o700); err != nil {
		return nil, errors.Errorf("could not create DB directory %s: %w", dirname, err)
	}

	opts := badger.DefaultOptions(dirname)

	opts.Logger = nil
	opts.SyncWrites = false
	opts.TableLoadingMode = options.MemoryMap
	opts.ValueLogLoadingMode = options.MemoryMap
	opts.CompactL0OnClose = false
	opts.KeepL0InMemory = false
	opts.VerifyValueChecksum = false
	opts.Compression = options.None
	opts.MaxCacheSize = 50000000
	opts.EventLogging = false

	if runtime.GOOS == "windows" {
		opts = opts.WithTruncate(true)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Errorf("could not open DB in %s: %w", dirname, err)
	}

	return &badgerDB{DB: db}, nil
}

func (db *badgerDB) NewStore() kvstore.KVStore {
	return badgerstore.New(db.DB)
}

// Close closes a DB. It's crucial to call it to ensure all the pending updates make their way to disk.
func (db *badgerDB) Close() error {
	return db.DB.Close()
}

func (db *badgerDB) RequiresGC() bool {
	return true
}

func (db *badgerDB) GC() error {
	err := db.RunValueLogGC(valueLogGCDiscardRatio)
	if err != nil && !errors.Is(err, badger.ErrNoRewrite) {
		return err
	}
	// trigger the go garbage collector to release the used memory
	runtime.GC()

	return nil
}
