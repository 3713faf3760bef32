package emulator

import (
	"github.com/iotaledger/hive.go/generics/event"

	"github.com/ledgersim/ledgersim/packages/ledgerstate"
)

// region Events ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Events is a container that acts as a dictionary for the existing events of an Emulator.
type Events struct {
	// TransactionQueued is triggered whenever a Transaction is added to the pool.
	TransactionQueued *event.Event[*TransactionQueuedEvent]

	// TransactionAccepted is triggered whenever a Transaction is applied to the ledger.
	TransactionAccepted *event.Event[*TransactionAcceptedEvent]

	// TransactionInvalid is triggered whenever a Transaction is rejected.
	TransactionInvalid *event.Event[*TransactionInvalidEvent]

	// BlockCreated is triggered whenever a Block is appended to the Blockchain.
	BlockCreated *event.Event[*BlockCreatedEvent]

	// SlotAdvanced is triggered whenever the current Slot changes.
	SlotAdvanced *event.Event[*SlotAdvancedEvent]
}

// newEvents returns a new Events object.
func newEvents() (new *Events) {
	return &Events{
		TransactionQueued:   event.New[*TransactionQueuedEvent](),
		TransactionAccepted: event.New[*TransactionAcceptedEvent](),
		TransactionInvalid:  event.New[*TransactionInvalidEvent](),
		BlockCreated:        event.New[*BlockCreatedEvent](),
		SlotAdvanced:        event.New[*SlotAdvancedEvent](),
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// TransactionQueuedEvent carries the Transaction that was added to the pool.
type TransactionQueuedEvent struct {
	Transaction *ledgerstate.Transaction
}

// TransactionAcceptedEvent carries the applied Transaction and the Slot it was applied at.
type TransactionAcceptedEvent struct {
	Transaction *ledgerstate.Transaction
	Slot        ledgerstate.Slot
}

// TransactionInvalidEvent carries the rejected Transaction and the reason of the rejection.
type TransactionInvalidEvent struct {
	Transaction *ledgerstate.Transaction
	Slot        ledgerstate.Slot
	Error       error
}

// BlockCreatedEvent carries the Block that was appended.
type BlockCreatedEvent struct {
	Block *ledgerstate.Block
}

// SlotAdvancedEvent carries the new current Slot.
type SlotAdvancedEvent struct {
	Slot ledgerstate.Slot
}
