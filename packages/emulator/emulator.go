package emulator

import (
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/logger"
	"github.com/iotaledger/hive.go/stringify"
	"go.uber.org/atomic"

	"github.com/ledgersim/ledgersim/packages/ledgerstate"
)

// region Emulator /////////////////////////////////////////////////////////////////////////////////////////////////////

// Emulator owns the mutable state of a simulated chain: the UTXOIndex, the AddressMap that mirrors it, the Blockchain
// and the pool of pending Transactions. All state changes go through the TxValidator, one critical section per
// Block, so readers never observe a partially applied Block.
type Emulator struct {
	// Events contains the Events of the Emulator.
	Events *Events

	validator   *ledgerstate.TxValidator
	currentSlot *atomic.Uint64
	index       *ledgerstate.UTXOIndex
	addressMap  *ledgerstate.AddressMap
	blockchain  *ledgerstate.Blockchain
	pool        []*ledgerstate.Transaction
	mutex       sync.RWMutex

	metrics *metrics
	log     *logger.Logger
	options *options
}

// New returns an Emulator that starts with the given genesis UTXOIndex.
func New(genesis *ledgerstate.UTXOIndex, evaluator ledgerstate.ScriptEvaluator, opts ...Option) (emulator *Emulator) {
	options := newOptions(opts...)

	emulator = &Emulator{
		Events:      newEvents(),
		validator:   ledgerstate.NewTxValidator(evaluator, ledgerstate.WithFeePolicy(options.feePolicy)),
		currentSlot: atomic.NewUint64(uint64(options.startSlot)),
		index:       genesis,
		addressMap:  ledgerstate.AddressMapFromIndex(genesis),
		blockchain:  ledgerstate.NewBlockchain(),
		metrics:     newMetrics(options.metricsRegisterer),
		log:         options.logger,
		options:     options,
	}
	emulator.metrics.utxoSetSize.Set(float64(genesis.Size()))
	emulator.metrics.currentSlot.Set(float64(options.startSlot))

	return emulator
}

// NewFromSnapshot returns an Emulator that starts at the Slot and with the Outputs of the Snapshot.
func NewFromSnapshot(snapshot *ledgerstate.Snapshot, evaluator ledgerstate.ScriptEvaluator, opts ...Option) *Emulator {
	return New(snapshot.Index(), evaluator, append([]Option{WithStartSlot(snapshot.Slot)}, opts...)...)
}

// CurrentSlot returns the current Slot.
func (e *Emulator) CurrentSlot() ledgerstate.Slot {
	return ledgerstate.Slot(e.currentSlot.Load())
}

// AdvanceSlot moves the Emulator to the next Slot and returns it.
func (e *Emulator) AdvanceSlot() (slot ledgerstate.Slot) {
	slot = ledgerstate.Slot(e.currentSlot.Inc())
	e.metrics.currentSlot.Set(float64(slot))
	e.Events.SlotAdvanced.Trigger(&SlotAdvancedEvent{Slot: slot})

	return slot
}

// FeePolicy returns the FeePolicy that Transactions have to satisfy.
func (e *Emulator) FeePolicy() ledgerstate.FeePolicy {
	return e.validator.FeePolicy()
}

// Index returns the current UTXOIndex.
func (e *Emulator) Index() *ledgerstate.UTXOIndex {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.index
}

// AddressMap returns the AddressMap of the current UTXOIndex.
func (e *Emulator) AddressMap() *ledgerstate.AddressMap {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.addressMap
}

// Blockchain returns the Blocks that were created so far (without the pruned ones).
func (e *Emulator) Blockchain() *ledgerstate.Blockchain {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return e.blockchain
}

// Output returns the unspent Output with the given OutputID.
func (e *Emulator) Output(outputID ledgerstate.OutputID) (output *ledgerstate.Output, exists bool) {
	return e.Index().Output(outputID)
}

// OutputsAt returns the unspent Outputs that are locked at the given Address.
func (e *Emulator) OutputsAt(address ledgerstate.Address) ledgerstate.OutputsByID {
	return e.AddressMap().OutputsAt(address)
}

// Pool returns the Transactions that wait to be included in a Block.
func (e *Emulator) Pool() []*ledgerstate.Transaction {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return append([]*ledgerstate.Transaction{}, e.pool...)
}

// QueueTransaction adds a Transaction to the pool. It is validated when the next Block is processed.
func (e *Emulator) QueueTransaction(tx *ledgerstate.Transaction) {
	e.mutex.Lock()
	e.pool = append(e.pool, tx)
	e.metrics.pooledTransactions.Set(float64(len(e.pool)))
	e.mutex.Unlock()

	e.Events.TransactionQueued.Trigger(&TransactionQueuedEvent{Transaction: tx})
}

// SubmitTransaction validates the Transaction against the current state and applies it in a Block of its own.
func (e *Emulator) SubmitTransaction(tx *ledgerstate.Transaction) (err error) {
	slot := e.CurrentSlot()

	e.mutex.Lock()
	updatedIndex, err := e.validator.ApplyTransaction(e.index, tx, slot)
	if err != nil {
		e.mutex.Unlock()
		e.rejected(tx, slot, err)

		return errors.Errorf("failed to submit %s: %w", tx.ID(), err)
	}
	block := ledgerstate.NewBlock(slot, tx)
	e.commit(updatedIndex, e.addressMap.UpdateAddresses(tx), block)
	e.mutex.Unlock()

	e.accepted(tx, slot)
	e.blockCreated(block)

	return nil
}

// ProcessBlock validates the pooled Transactions in order at the current Slot and applies the valid ones. Transactions
// whose ValidityInterval only starts in the future stay in the pool, all other invalid Transactions are dropped. The
// resulting Block (which can be empty) is appended to the Blockchain.
func (e *Emulator) ProcessBlock() (block *ledgerstate.Block) {
	slot := e.CurrentSlot()

	var accepted []*ledgerstate.Transaction
	var rejected []*TransactionInvalidEvent

	e.mutex.Lock()
	index, addressMap := e.index, e.addressMap
	remaining := make([]*ledgerstate.Transaction, 0, len(e.pool))
	for _, tx := range e.pool {
		updatedIndex, err := e.validator.ApplyTransaction(index, tx, slot)
		if err != nil {
			if errors.Is(err, ledgerstate.ErrCurrentSlotOutOfRange) && tx.ValidityInterval().Start() > slot && !tx.ValidityInterval().IsEmpty() {
				remaining = append(remaining, tx)
				continue
			}

			rejected = append(rejected, &TransactionInvalidEvent{Transaction: tx, Slot: slot, Error: err})
			continue
		}

		index, addressMap = updatedIndex, addressMap.UpdateAddresses(tx)
		accepted = append(accepted, tx)
	}
	e.pool = remaining
	block = ledgerstate.NewBlock(slot, accepted...)
	e.commit(index, addressMap, block)
	e.mutex.Unlock()

	for _, tx := range accepted {
		e.accepted(tx, slot)
	}
	for _, invalidEvent := range rejected {
		e.rejected(invalidEvent.Transaction, invalidEvent.Slot, invalidEvent.Error)
	}
	e.blockCreated(block)

	return block
}

// PruneBlocks drops all but the newest Blocks (the amount is configured by WithRetainedBlocks).
func (e *Emulator) PruneBlocks() (pruned int) {
	e.mutex.Lock()
	defer e.mutex.Unlock()

	before := e.blockchain.Len()
	e.blockchain = e.blockchain.KeepLatest(e.options.retainedBlocks)

	return before - e.blockchain.Len()
}

// Snapshot returns a Snapshot of the current state.
func (e *Emulator) Snapshot() *ledgerstate.Snapshot {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return ledgerstate.NewSnapshot(e.CurrentSlot(), e.index)
}

// String returns a human readable version of the Emulator.
func (e *Emulator) String() string {
	e.mutex.RLock()
	defer e.mutex.RUnlock()

	return stringify.Struct("Emulator",
		stringify.StructField("currentSlot", e.CurrentSlot()),
		stringify.StructField("utxos", e.index.Size()),
		stringify.StructField("blocks", e.blockchain.Len()),
		stringify.StructField("pool", len(e.pool)),
	)
}

// commit replaces the state (the mutex needs to be locked).
func (e *Emulator) commit(index *ledgerstate.UTXOIndex, addressMap *ledgerstate.AddressMap, block *ledgerstate.Block) {
	addressMap.AssertConsistent(index)

	e.index = index
	e.addressMap = addressMap
	e.blockchain = e.blockchain.Append(block)

	e.metrics.utxoSetSize.Set(float64(index.Size()))
	e.metrics.pooledTransactions.Set(float64(len(e.pool)))
}

func (e *Emulator) accepted(tx *ledgerstate.Transaction, slot ledgerstate.Slot) {
	e.log.Debugf("accepted %s at slot %d", tx.ID(), slot)
	e.metrics.acceptedTransactions.Inc()
	e.Events.TransactionAccepted.Trigger(&TransactionAcceptedEvent{Transaction: tx, Slot: slot})
}

func (e *Emulator) rejected(tx *ledgerstate.Transaction, slot ledgerstate.Slot, err error) {
	e.log.Warnf("rejected %s at slot %d: %s", tx.ID(), slot, err)
	e.metrics.transactionRejected(err)
	e.Events.TransactionInvalid.Trigger(&TransactionInvalidEvent{Transaction: tx, Slot: slot, Error: err})
}

func (e *Emulator) blockCreated(block *ledgerstate.Block) {
	e.metrics.createdBlocks.Inc()
	e.Events.BlockCreated.Trigger(&BlockCreatedEvent{Block: block})
}

// code contract (make sure the struct implements all required methods)
var _ ledgerstate.OutputResolver = &Emulator{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
