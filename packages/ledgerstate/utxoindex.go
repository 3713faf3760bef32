package ledgerstate

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/stringify"
)

// UTXOIndex is the immutable set of unspent Outputs. Applying a Transaction returns a new UTXOIndex and leaves the
// original untouched, so an index can be shared freely between goroutines.
type UTXOIndex struct {
	outputs OutputsByID
}

// NewUTXOIndex creates a UTXOIndex that contains the given Outputs.
func NewUTXOIndex(outputs OutputsByID) *UTXOIndex {
	return &UTXOIndex{
		outputs: outputs.Clone(),
	}
}

// NewGenesisIndex creates a UTXOIndex whose Outputs are created by the genesis Transaction, i.e. the Output with
// index i is addressed by (GenesisTransactionID, i).
func NewGenesisIndex(outputs ...*Output) *UTXOIndex {
	genesisOutputs := make(OutputsByID, len(outputs))
	for i, output := range outputs {
		genesisOutputs[NewOutputID(GenesisTransactionID, uint16(i))] = output
	}

	return &UTXOIndex{
		outputs: genesisOutputs,
	}
}

// Output returns the unspent Output with the given OutputID.
func (u *UTXOIndex) Output(outputID OutputID) (output *Output, exists bool) {
	output, exists = u.outputs[outputID]

	return
}

// Contains returns true if the Output with the given OutputID is unspent.
func (u *UTXOIndex) Contains(outputID OutputID) bool {
	_, exists := u.outputs[outputID]

	return exists
}

// Size returns the amount of unspent Outputs.
func (u *UTXOIndex) Size() int {
	return len(u.outputs)
}

// OutputIDs returns the OutputIDs of all unspent Outputs in canonical order.
func (u *UTXOIndex) OutputIDs() []OutputID {
	return u.outputs.IDs()
}

// Outputs returns a copy of all unspent Outputs.
func (u *UTXOIndex) Outputs() OutputsByID {
	return u.outputs.Clone()
}

// ForEach calls the consumer for each unspent Output in canonical order and aborts the iteration if the consumer
// returns false.
func (u *UTXOIndex) ForEach(consumer func(outputID OutputID, output *Output) bool) {
	for _, outputID := range u.outputs.IDs() {
		if !consumer(outputID, u.outputs[outputID]) {
			return
		}
	}
}

// Value returns the total Value of all unspent Outputs.
func (u *UTXOIndex) Value() Value {
	return u.outputs.Value()
}

// ResolveInputs returns the Outputs that are consumed by the Transaction.
func (u *UTXOIndex) ResolveInputs(tx *Transaction) (spentOutputs OutputsByID, err error) {
	spentOutputs = make(OutputsByID, len(tx.Inputs()))
	for _, input := range tx.Inputs() {
		output, exists := u.outputs[input.ReferencedOutputID()]
		if !exists {
			return nil, errors.Errorf("%s: %w", input.ReferencedOutputID().Base58(), ErrTxOutRefNotFound)
		}
		spentOutputs[input.ReferencedOutputID()] = output
	}

	return spentOutputs, nil
}

// ApplyTransaction returns the UTXOIndex without the Outputs consumed by the Transaction and with the Outputs it
// creates. It does not validate the Transaction apart from checking that all consumed Outputs exist.
func (u *UTXOIndex) ApplyTransaction(tx *Transaction) (updatedIndex *UTXOIndex, err error) {
	if _, err = u.ResolveInputs(tx); err != nil {
		return nil, errors.Errorf("failed to apply %s: %w", tx.ID(), err)
	}

	outputs := u.outputs.Clone()
	for _, input := range tx.Inputs() {
		delete(outputs, input.ReferencedOutputID())
	}
	for outputID, output := range tx.OutputsByID() {
		outputs[outputID] = output
	}

	return &UTXOIndex{
		outputs: outputs,
	}, nil
}

// String returns a human readable version of the UTXOIndex.
func (u *UTXOIndex) String() string {
	return stringify.Struct("UTXOIndex",
		stringify.StructField("size", u.Size()),
		stringify.StructField("value", u.Value()),
	)
}

// code contract (make sure the struct implements all required methods)
var _ OutputResolver = &UTXOIndex{}
