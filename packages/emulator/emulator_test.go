package emulator

import (
	"sync"
	"testing"

	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgersim/ledgersim/packages/ledgerstate"
)

type wallet struct {
	keyPair ed25519.KeyPair
	address *ledgerstate.ED25519Address
}

func createWallets(n int) []wallet {
	wallets := make([]wallet, n)
	for i := range wallets {
		keyPair := ed25519.GenerateKeyPair()
		wallets[i] = wallet{
			keyPair: keyPair,
			address: ledgerstate.NewED25519Address(keyPair.PublicKey),
		}
	}

	return wallets
}

func payment(from wallet, outputID ledgerstate.OutputID, to ledgerstate.Address, amount int64) *ledgerstate.Transaction {
	return ledgerstate.UnitTransaction().
		WithInput(ledgerstate.NewPubKeyInput(outputID)).
		WithOutput(ledgerstate.NewOutput(to, ledgerstate.LovelaceValue(amount))).
		Sign(from.keyPair)
}

func newTestEmulator(t *testing.T, genesis ...*ledgerstate.Output) (*Emulator, *prometheus.Registry) {
	registry := prometheus.NewRegistry()
	emulator := New(ledgerstate.NewGenesisIndex(genesis...), ledgerstate.NewScriptRegistry(), WithMetricsRegisterer(registry))
	require.Equal(t, ledgerstate.Slot(0), emulator.CurrentSlot())

	return emulator, registry
}

func TestEmulator_SubmitTransaction(t *testing.T) {
	wallets := createWallets(2)
	alice, bob := wallets[0], wallets[1]
	emulator, _ := newTestEmulator(t, ledgerstate.NewOutput(alice.address, ledgerstate.LovelaceValue(1000)))

	var acceptedEvents []*TransactionAcceptedEvent
	emulator.Events.TransactionAccepted.Attach(event.NewClosure(func(event *TransactionAcceptedEvent) {
		acceptedEvents = append(acceptedEvents, event)
	}))

	tx := payment(alice, ledgerstate.NewOutputID(ledgerstate.GenesisTransactionID, 0), bob.address, 1000)
	require.NoError(t, emulator.SubmitTransaction(tx))

	assert.Empty(t, emulator.OutputsAt(alice.address))
	assert.Len(t, emulator.OutputsAt(bob.address), 1)
	assert.Equal(t, 1, emulator.Blockchain().Len())
	require.Len(t, acceptedEvents, 1)
	assert.Equal(t, tx.ID(), acceptedEvents[0].Transaction.ID())

	indexBefore := emulator.Index()
	err := emulator.SubmitTransaction(tx)
	assert.ErrorIs(t, err, ledgerstate.ErrTxOutRefNotFound)
	assert.Equal(t, indexBefore, emulator.Index())
	assert.Equal(t, 1, emulator.Blockchain().Len())
}

func TestEmulator_ProcessBlock(t *testing.T) {
	wallets := createWallets(3)
	alice, bob, charlie := wallets[0], wallets[1], wallets[2]
	emulator, registry := newTestEmulator(t,
		ledgerstate.NewOutput(alice.address, ledgerstate.LovelaceValue(100)),
		ledgerstate.NewOutput(bob.address, ledgerstate.LovelaceValue(50)),
	)

	var invalidEvents []*TransactionInvalidEvent
	emulator.Events.TransactionInvalid.Attach(event.NewClosure(func(event *TransactionInvalidEvent) {
		invalidEvents = append(invalidEvents, event)
	}))

	toBob := payment(alice, ledgerstate.NewOutputID(ledgerstate.GenesisTransactionID, 0), bob.address, 100)
	forwarded := payment(bob, toBob.OutputID(0), charlie.address, 100)
	doubleSpend := payment(alice, ledgerstate.NewOutputID(ledgerstate.GenesisTransactionID, 0), charlie.address, 100)
	future := ledgerstate.UnitTransaction().
		WithInput(ledgerstate.NewPubKeyInput(ledgerstate.NewOutputID(ledgerstate.GenesisTransactionID, 1))).
		WithOutput(ledgerstate.NewOutput(charlie.address, ledgerstate.LovelaceValue(50))).
		WithValidity(ledgerstate.IntervalFrom(2)).
		Sign(bob.keyPair)

	emulator.QueueTransaction(toBob)
	emulator.QueueTransaction(forwarded)
	emulator.QueueTransaction(doubleSpend)
	emulator.QueueTransaction(future)
	assert.Len(t, emulator.Pool(), 4)

	block := emulator.ProcessBlock()
	assert.Equal(t, ledgerstate.Slot(0), block.Slot())
	require.Len(t, block.Transactions(), 2)
	assert.Equal(t, toBob.ID(), block.Transactions()[0].ID())
	assert.Equal(t, forwarded.ID(), block.Transactions()[1].ID())

	require.Len(t, invalidEvents, 1)
	assert.Equal(t, doubleSpend.ID(), invalidEvents[0].Transaction.ID())
	assert.ErrorIs(t, invalidEvents[0].Error, ledgerstate.ErrTxOutRefNotFound)

	require.Len(t, emulator.Pool(), 1)
	assert.Equal(t, future.ID(), emulator.Pool()[0].ID())

	assert.Empty(t, emulator.ProcessBlock().Transactions())
	assert.Equal(t, ledgerstate.Slot(2), func() ledgerstate.Slot {
		emulator.AdvanceSlot()
		return emulator.AdvanceSlot()
	}())

	block = emulator.ProcessBlock()
	require.Len(t, block.Transactions(), 1)
	assert.Equal(t, future.ID(), block.Transactions()[0].ID())
	assert.Empty(t, emulator.Pool())
	assert.True(t, emulator.Index().Value().Equal(ledgerstate.LovelaceValue(150)))
	assert.Len(t, emulator.OutputsAt(charlie.address), 2)
	assert.NoError(t, emulator.AddressMap().CheckConsistency(emulator.Index()))

	assert.Equal(t, float64(3), testutil.ToFloat64(emulator.metrics.acceptedTransactions))
	assert.Equal(t, float64(1), testutil.ToFloat64(emulator.metrics.rejectedTransactions.WithLabelValues(ledgerstate.StructuralErrorCategory.String())))
	assert.Equal(t, float64(3), testutil.ToFloat64(emulator.metrics.createdBlocks))
	assert.Equal(t, float64(2), testutil.ToFloat64(emulator.metrics.utxoSetSize))
	assert.Equal(t, float64(2), testutil.ToFloat64(emulator.metrics.currentSlot))

	metricFamilies, err := registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, metricFamilies)
}

func TestEmulator_ExpiredTransactionIsDropped(t *testing.T) {
	wallets := createWallets(2)
	emulator, _ := newTestEmulator(t, ledgerstate.NewOutput(wallets[0].address, ledgerstate.LovelaceValue(10)))

	expired := ledgerstate.UnitTransaction().
		WithInput(ledgerstate.NewPubKeyInput(ledgerstate.NewOutputID(ledgerstate.GenesisTransactionID, 0))).
		WithOutput(ledgerstate.NewOutput(wallets[1].address, ledgerstate.LovelaceValue(10))).
		WithValidity(ledgerstate.IntervalTo(1)).
		Sign(wallets[0].keyPair)

	emulator.AdvanceSlot()
	emulator.QueueTransaction(expired)
	assert.Empty(t, emulator.ProcessBlock().Transactions())
	assert.Empty(t, emulator.Pool())
	assert.Equal(t, float64(1), testutil.ToFloat64(emulator.metrics.rejectedTransactions.WithLabelValues(ledgerstate.TemporalErrorCategory.String())))
}

func TestEmulator_PruneBlocks(t *testing.T) {
	emulator := New(ledgerstate.NewGenesisIndex(), ledgerstate.NewScriptRegistry(), WithRetainedBlocks(2))
	for i := 0; i < 5; i++ {
		emulator.ProcessBlock()
		emulator.AdvanceSlot()
	}

	assert.Equal(t, 3, emulator.PruneBlocks())
	assert.Equal(t, 2, emulator.Blockchain().Len())
	tip, exists := emulator.Blockchain().Tip()
	require.True(t, exists)
	assert.Equal(t, ledgerstate.Slot(4), tip.Slot())
	assert.Equal(t, 0, emulator.PruneBlocks())
}

func TestEmulator_Snapshot(t *testing.T) {
	wallets := createWallets(2)
	emulator, _ := newTestEmulator(t, ledgerstate.NewOutput(wallets[0].address, ledgerstate.LovelaceValue(10)))
	require.NoError(t, emulator.SubmitTransaction(payment(wallets[0], ledgerstate.NewOutputID(ledgerstate.GenesisTransactionID, 0), wallets[1].address, 10)))
	emulator.AdvanceSlot()

	restored := NewFromSnapshot(emulator.Snapshot(), ledgerstate.NewScriptRegistry())
	assert.Equal(t, emulator.CurrentSlot(), restored.CurrentSlot())
	assert.Equal(t, emulator.Index().OutputIDs(), restored.Index().OutputIDs())
	assert.Len(t, restored.OutputsAt(wallets[1].address), 1)
}

func TestEmulator_ConcurrentReaders(t *testing.T) {
	wallets := createWallets(2)
	alice, bob := wallets[0], wallets[1]

	genesis := make([]*ledgerstate.Output, 20)
	for i := range genesis {
		genesis[i] = ledgerstate.NewOutput(alice.address, ledgerstate.LovelaceValue(1))
	}
	emulator, _ := newTestEmulator(t, genesis...)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()

		for i := range genesis {
			emulator.QueueTransaction(payment(alice, ledgerstate.NewOutputID(ledgerstate.GenesisTransactionID, uint16(i)), bob.address, 1))
			emulator.ProcessBlock()
		}
	}()
	go func() {
		defer wg.Done()

		for i := 0; i < 100; i++ {
			index, addressMap := emulator.Index(), emulator.AddressMap()
			assert.True(t, index.Value().Equal(ledgerstate.LovelaceValue(20)))
			assert.LessOrEqual(t, addressMap.Size(), 20)
		}
	}()
	wg.Wait()

	assert.Len(t, emulator.OutputsAt(bob.address), 20)
	assert.NoError(t, emulator.AddressMap().CheckConsistency(emulator.Index()))
}
