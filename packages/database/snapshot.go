package database

import (
	"github.com/cockroachdb/errors"

	"github.com/ledgersim/ledgersim/packages/ledgerstate"
)

// StoreSnapshot replaces the content of the DB with the Snapshot and marks it with the current DBVersion.
func StoreSnapshot(db DB, snapshot *ledgerstate.Snapshot) (err error) {
	store := db.NewStore()
	if err = ledgerstate.ExportSnapshot(snapshot, store); err != nil {
		return errors.Errorf("failed to export %s: %w", snapshot, err)
	}
	if err = StoreVersion(store); err != nil {
		return err
	}
	if err = store.Flush(); err != nil {
		return errors.Errorf("failed to flush store: %w", err)
	}

	if db.RequiresGC() {
		if err = db.GC(); err != nil {
			return errors.Errorf("failed to run garbage collection: %w", err)
		}
	}

	return nil
}

// LoadSnapshot restores a Snapshot that was persisted with StoreSnapshot.
func LoadSnapshot(db DB) (snapshot *ledgerstate.Snapshot, err error) {
	store := db.NewStore()
	if err = CheckVersion(store); err != nil {
		return nil, err
	}

	return ledgerstate.ImportSnapshot(store)
}
