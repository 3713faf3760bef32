package ledgerstate

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/stringify"
)

// region AddressMap ///////////////////////////////////////////////////////////////////////////////////////////////////

// AddressMap indexes the unspent Outputs by the Address that they are locked at. It is immutable: UpdateAddresses
// returns a new AddressMap that shares all untouched entries with its predecessor.
type AddressMap struct {
	entries map[[AddressLength]byte]*addressEntry
	owners  map[OutputID][AddressLength]byte
}

// NewAddressMap returns an empty AddressMap.
func NewAddressMap() *AddressMap {
	return &AddressMap{
		entries: make(map[[AddressLength]byte]*addressEntry),
		owners:  make(map[OutputID][AddressLength]byte),
	}
}

// AddressMapFromOutputs creates an AddressMap that contains the given Outputs.
func AddressMapFromOutputs(outputs OutputsByID) *AddressMap {
	addressMap := NewAddressMap()
	for outputID, output := range outputs {
		addressMap.add(outputID, output)
	}

	return addressMap
}

// AddressMapFromIndex creates an AddressMap that contains all unspent Outputs of the UTXOIndex.
func AddressMapFromIndex(index *UTXOIndex) *AddressMap {
	return AddressMapFromOutputs(index.outputs)
}

// UpdateAddresses returns the AddressMap that results from applying the Transaction: the consumed Outputs are removed
// and the created Outputs are added.
func (a *AddressMap) UpdateAddresses(tx *Transaction) *AddressMap {
	updated := &AddressMap{
		entries: make(map[[AddressLength]byte]*addressEntry, len(a.entries)),
		owners:  make(map[OutputID][AddressLength]byte, len(a.owners)),
	}
	for key, entry := range a.entries {
		updated.entries[key] = entry
	}
	for outputID, key := range a.owners {
		updated.owners[outputID] = key
	}

	copied := make(map[[AddressLength]byte]bool)
	mutableEntry := func(key [AddressLength]byte, address Address) *addressEntry {
		if copied[key] {
			return updated.entries[key]
		}
		copied[key] = true

		entry, exists := updated.entries[key]
		if !exists {
			entry = newAddressEntry(address)
		} else {
			entry = entry.clone()
		}
		updated.entries[key] = entry

		return entry
	}

	for _, input := range tx.Inputs() {
		key, exists := updated.owners[input.ReferencedOutputID()]
		if !exists {
			continue
		}

		entry := mutableEntry(key, nil)
		delete(entry.outputs, input.ReferencedOutputID())
		delete(updated.owners, input.ReferencedOutputID())
		if len(entry.outputs) == 0 {
			delete(updated.entries, key)
			delete(copied, key)
		}
	}

	for outputID, output := range tx.OutputsByID() {
		key := output.Address().Array()
		mutableEntry(key, output.Address()).outputs[outputID] = output
		updated.owners[outputID] = key
	}

	return updated
}

// OutputsAt returns the unspent Outputs that are locked at the given Address.
func (a *AddressMap) OutputsAt(address Address) OutputsByID {
	entry, exists := a.entries[address.Array()]
	if !exists {
		return make(OutputsByID)
	}

	return entry.outputs.Clone()
}

// Output returns the unspent Output with the given OutputID.
func (a *AddressMap) Output(outputID OutputID) (output *Output, exists bool) {
	key, exists := a.owners[outputID]
	if !exists {
		return nil, false
	}

	output, exists = a.entries[key].outputs[outputID]

	return
}

// Addresses returns all Addresses that hold unspent Outputs, ordered by their marshaled form.
func (a *AddressMap) Addresses() (addresses []Address) {
	keys := make([][AddressLength]byte, 0, len(a.entries))
	for key := range a.entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i][:], keys[j][:]) < 0
	})

	addresses = make([]Address, len(keys))
	for i, key := range keys {
		addresses[i] = a.entries[key].address
	}

	return
}

// Size returns the amount of Outputs in the AddressMap.
func (a *AddressMap) Size() int {
	return len(a.owners)
}

// CheckConsistency returns an error if the AddressMap does not contain exactly the Outputs of the UTXOIndex.
func (a *AddressMap) CheckConsistency(index *UTXOIndex) error {
	if a.Size() != index.Size() {
		return errors.Errorf("address map holds %d outputs but the index holds %d", a.Size(), index.Size())
	}

	for outputID, output := range index.outputs {
		mappedOutput, exists := a.Output(outputID)
		if !exists {
			return errors.Errorf("output %s is missing in the address map", outputID.Base58())
		}
		if !mappedOutput.Equals(output) {
			return errors.Errorf("output %s differs between address map and index", outputID.Base58())
		}
		if a.owners[outputID] != output.Address().Array() {
			return errors.Errorf("output %s is stored at the wrong address", outputID.Base58())
		}
	}

	return nil
}

// AssertConsistent panics if the AddressMap diverged from the UTXOIndex.
func (a *AddressMap) AssertConsistent(index *UTXOIndex) {
	if err := a.CheckConsistency(index); err != nil {
		panic(fmt.Sprintf("address map diverged from utxo index: %s", err))
	}
}

// String returns a human readable version of the AddressMap.
func (a *AddressMap) String() string {
	structBuilder := stringify.StructBuilder("AddressMap")
	for _, address := range a.Addresses() {
		structBuilder.AddField(stringify.StructField(address.Base58(), len(a.entries[address.Array()].outputs)))
	}

	return structBuilder.String()
}

func (a *AddressMap) add(outputID OutputID, output *Output) {
	key := output.Address().Array()
	entry, exists := a.entries[key]
	if !exists {
		entry = newAddressEntry(output.Address())
		a.entries[key] = entry
	}
	entry.outputs[outputID] = output
	a.owners[outputID] = key
}

// code contract (make sure the struct implements all required methods)
var _ OutputResolver = &AddressMap{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region addressEntry /////////////////////////////////////////////////////////////////////////////////////////////////

type addressEntry struct {
	address Address
	outputs OutputsByID
}

func newAddressEntry(address Address) *addressEntry {
	return &addressEntry{
		address: address,
		outputs: make(OutputsByID),
	}
}

func (a *addressEntry) clone() *addressEntry {
	return &addressEntry{
		address: a.address,
		outputs: a.outputs.Clone(),
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
