package database

const (
	// PrefixDatabaseVersion defines the storage prefix of the schema version. It is chosen so that it never collides
	// with the prefixes of a persisted ledgerstate.Snapshot.
	PrefixDatabaseVersion byte = 0xff
)
