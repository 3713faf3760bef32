package main

import (
	"context"
	"testing"

	"github.com/iotaledger/hive.go/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgersim/ledgersim/packages/configuration"
	"github.com/ledgersim/ledgersim/packages/database"
	"github.com/ledgersim/ledgersim/packages/emulator"
	"github.com/ledgersim/ledgersim/packages/ledgerstate"
)

func testParameters(t *testing.T, args ...string) *Parameters {
	parameters := &Parameters{}
	config := configuration.New("test")
	config.Define("simulator", &parameters.Simulator)
	config.Define("ledger", &parameters.Ledger)
	config.Define("database", &parameters.Database)
	require.NoError(t, config.Load(args))

	return parameters
}

func TestSimulator_Run(t *testing.T) {
	parameters := testParameters(t,
		"--simulator.wallets=4",
		"--simulator.fundsPerWallet=1000",
		"--simulator.slots=5",
		"--simulator.slotDuration=0s",
		"--simulator.transactionsPerSlot=8",
		"--simulator.workers=2",
		"--simulator.invalidRatio=0.25",
		"--ledger.feeConstant=3",
		"--ledger.retainedBlocks=2",
		"--database.inMemory=true",
	)

	container, err := buildContainer(parameters, logger.NewExampleLogger("Test"))
	require.NoError(t, err)

	require.NoError(t, container.Invoke(func(simulator *Simulator, ledger *emulator.Emulator, db database.DB) {
		require.NoError(t, simulator.Run(context.Background()))

		assert.Equal(t, ledgerstate.Slot(5), ledger.CurrentSlot())
		assert.Equal(t, 2, ledger.Blockchain().Len())
		assert.NoError(t, ledger.AddressMap().CheckConsistency(ledger.Index()))

		lovelace := ledger.Index().Value().Lovelace()
		assert.LessOrEqual(t, lovelace, int64(4000))
		assert.Positive(t, lovelace)
		assert.Zero(t, (4000-lovelace)%3)

		snapshot, err := database.LoadSnapshot(db)
		require.NoError(t, err)
		assert.Equal(t, ledger.Snapshot().Bytes(), snapshot.Bytes())
	}))
}

func TestSimulator_Interrupted(t *testing.T) {
	parameters := testParameters(t, "--simulator.slots=0", "--simulator.transactionsPerSlot=1", "--database.inMemory=true")

	container, err := buildContainer(parameters, logger.NewExampleLogger("Test"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, container.Invoke(func(simulator *Simulator, ledger *emulator.Emulator) {
		require.NoError(t, simulator.Run(ctx))
		assert.Equal(t, ledgerstate.Slot(1), ledger.CurrentSlot())
	}))
}

func TestNewGenerator_RequiresTwoWallets(t *testing.T) {
	parameters := testParameters(t)

	_, err := NewGenerator(nil, NewWallets(1), parameters, logger.NewExampleLogger("Test"))
	assert.Error(t, err)
}

func TestWallets_RandomPair(t *testing.T) {
	wallets := NewWallets(2)
	for i := 0; i < 20; i++ {
		sender, receiver := wallets.RandomPair()
		assert.NotSame(t, sender, receiver)
	}
}
