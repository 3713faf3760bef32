package ledgerstate

import (
	"io"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/kvstore"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

const (
	// snapshotPrefixOutput is the storage prefix of the unspent Outputs of a Snapshot.
	snapshotPrefixOutput byte = iota

	// snapshotPrefixMetadata is the storage prefix of the metadata of a Snapshot.
	snapshotPrefixMetadata
)

var snapshotSlotKey = kvstore.Key{snapshotPrefixMetadata, 's', 'l', 'o', 't'}

// Snapshot contains the unspent Outputs of the ledger at a given Slot. It can be used as the genesis of a new ledger.
type Snapshot struct {
	Slot    Slot
	Outputs OutputsByID
}

// NewSnapshot creates a Snapshot of the UTXOIndex.
func NewSnapshot(slot Slot, index *UTXOIndex) *Snapshot {
	return &Snapshot{
		Slot:    slot,
		Outputs: index.Outputs(),
	}
}

// SnapshotFromBytes unmarshals a Snapshot from a sequence of bytes.
func SnapshotFromBytes(bytes []byte) (snapshot *Snapshot, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if snapshot, err = SnapshotFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Snapshot from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// SnapshotFromMarshalUtil unmarshals a Snapshot using a MarshalUtil (for easier unmarshaling).
func SnapshotFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (snapshot *Snapshot, err error) {
	slot, err := marshalUtil.ReadUint64()
	if err != nil {
		err = errors.Errorf("failed to parse Slot (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	outputCount, err := marshalUtil.ReadUint32()
	if err != nil {
		err = errors.Errorf("failed to parse output count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	snapshot = &Snapshot{
		Slot:    Slot(slot),
		Outputs: make(OutputsByID, outputCount),
	}
	for i := uint32(0); i < outputCount; i++ {
		outputID, outputIDErr := OutputIDFromMarshalUtil(marshalUtil)
		if outputIDErr != nil {
			err = errors.Errorf("failed to parse OutputID %d: %w", i, outputIDErr)
			return
		}
		output, outputErr := OutputFromMarshalUtil(marshalUtil)
		if outputErr != nil {
			err = errors.Errorf("failed to parse Output %d: %w", i, outputErr)
			return
		}
		snapshot.Outputs[outputID] = output
	}

	return snapshot, nil
}

// Index returns the UTXOIndex that contains the Outputs of the Snapshot.
func (s *Snapshot) Index() *UTXOIndex {
	return NewUTXOIndex(s.Outputs)
}

// Bytes returns a marshaled version of the Snapshot.
func (s *Snapshot) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteUint64(uint64(s.Slot))
	marshalUtil.WriteUint32(uint32(len(s.Outputs)))
	for _, outputID := range s.Outputs.IDs() {
		marshalUtil.WriteBytes(outputID.Bytes())
		marshalUtil.WriteBytes(s.Outputs[outputID].Bytes())
	}

	return marshalUtil.Bytes()
}

// WriteTo writes the snapshot data to the given writer.
func (s *Snapshot) WriteTo(writer io.Writer) (int64, error) {
	bytesWritten, err := writer.Write(s.Bytes())
	if err != nil {
		return int64(bytesWritten), errors.Errorf("unable to write snapshot: %w", err)
	}

	return int64(bytesWritten), nil
}

// ReadFrom reads the snapshot bytes from the given reader. It overrides the existing content of the Snapshot.
func (s *Snapshot) ReadFrom(reader io.Reader) (int64, error) {
	snapshotBytes, err := io.ReadAll(reader)
	if err != nil {
		return int64(len(snapshotBytes)), errors.Errorf("unable to read snapshot: %w", err)
	}

	snapshot, _, err := SnapshotFromBytes(snapshotBytes)
	if err != nil {
		return int64(len(snapshotBytes)), err
	}
	*s = *snapshot

	return int64(len(snapshotBytes)), nil
}

// String returns a human readable version of the Snapshot.
func (s *Snapshot) String() string {
	return stringify.Struct("Snapshot",
		stringify.StructField("slot", s.Slot),
		stringify.StructField("outputs", len(s.Outputs)),
	)
}

// ExportSnapshot persists the Snapshot in the given KVStore (existing content is removed first).
func ExportSnapshot(snapshot *Snapshot, store kvstore.KVStore) (err error) {
	if err = store.Clear(); err != nil {
		return errors.Errorf("failed to clear store: %w", err)
	}

	if err = store.Set(snapshotSlotKey, marshalutil.New(marshalutil.Uint64Size).WriteUint64(uint64(snapshot.Slot)).Bytes()); err != nil {
		return errors.Errorf("failed to store slot of snapshot: %w", err)
	}

	for outputID, output := range snapshot.Outputs {
		if err = store.Set(byteutils.ConcatBytes([]byte{snapshotPrefixOutput}, outputID.Bytes()), output.Bytes()); err != nil {
			return errors.Errorf("failed to store %s: %w", outputID.Base58(), err)
		}
	}

	return nil
}

// ImportSnapshot loads a Snapshot that was persisted with ExportSnapshot.
func ImportSnapshot(store kvstore.KVStore) (snapshot *Snapshot, err error) {
	slotBytes, err := store.Get(snapshotSlotKey)
	if err != nil {
		return nil, errors.Errorf("failed to load slot of snapshot: %w", err)
	}
	slot, err := marshalutil.New(slotBytes).ReadUint64()
	if err != nil {
		return nil, errors.Errorf("failed to parse slot of snapshot (%v): %w", err, cerrors.ErrParseBytesFailed)
	}

	snapshot = &Snapshot{
		Slot:    Slot(slot),
		Outputs: make(OutputsByID),
	}
	var parseErr error
	if iterationErr := store.Iterate(kvstore.KeyPrefix{snapshotPrefixOutput}, func(key kvstore.Key, value kvstore.Value) bool {
		outputID, _, outputIDErr := OutputIDFromBytes(key[1:])
		if outputIDErr != nil {
			parseErr = errors.Errorf("failed to parse key %x: %w", key, outputIDErr)
			return false
		}
		output, _, outputErr := OutputFromBytes(value)
		if outputErr != nil {
			parseErr = errors.Errorf("failed to parse %s: %w", outputID.Base58(), outputErr)
			return false
		}
		snapshot.Outputs[outputID] = output

		return true
	}); iterationErr != nil {
		return nil, errors.Errorf("failed to iterate snapshot store: %w", iterationErr)
	}
	if parseErr != nil {
		return nil, parseErr
	}

	return snapshot, nil
}
