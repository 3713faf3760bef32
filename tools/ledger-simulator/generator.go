package main

import (
	"math/rand"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/logger"
	"github.com/panjf2000/ants/v2"
	"github.com/paulbellamy/ratecounter"

	"github.com/ledgersim/ledgersim/packages/constraints"
	"github.com/ledgersim/ledgersim/packages/emulator"
	"github.com/ledgersim/ledgersim/packages/ledgerstate"
)

// noScript is the datum and redeemer type of payments that don't involve a typed validator.
type noScript = struct{}

// Generator issues random payments between the Wallets into the pool of the Emulator.
type Generator struct {
	emulator      *emulator.Emulator
	wallets       Wallets
	workerPool    *ants.Pool
	invalidRatio  float64
	validitySlots uint64
	queued        *ratecounter.RateCounter
	log           *logger.Logger
}

// NewGenerator creates a Generator that runs on a pool with the given amount of workers.
func NewGenerator(emulator *emulator.Emulator, wallets Wallets, parameters *Parameters, log *logger.Logger) (generator *Generator, err error) {
	if len(wallets) < 2 {
		return nil, errors.Errorf("at least two wallets are required to generate payments (got %d)", len(wallets))
	}

	workerPool, err := ants.NewPool(parameters.Simulator.Workers)
	if err != nil {
		return nil, errors.Errorf("failed to create worker pool: %w", err)
	}

	return &Generator{
		emulator:      emulator,
		wallets:       wallets,
		workerPool:    workerPool,
		invalidRatio:  parameters.Simulator.InvalidRatio,
		validitySlots: parameters.Simulator.ValiditySlots,
		queued:        ratecounter.NewRateCounter(time.Second),
		log:           log,
	}, nil
}

// Generate queues the given amount of payments and returns when all of them were issued.
func (g *Generator) Generate(count int) (err error) {
	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		if err = g.workerPool.Submit(func() {
			defer wg.Done()

			g.issuePayment()
		}); err != nil {
			wg.Done()
			break
		}
	}
	wg.Wait()

	if err != nil {
		return errors.Errorf("failed to submit payment: %w", err)
	}

	return nil
}

// QueuedPerSecond returns the number of payments that were queued during the last second.
func (g *Generator) QueuedPerSecond() int64 {
	return g.queued.Rate()
}

// Shutdown releases the workers.
func (g *Generator) Shutdown() {
	g.workerPool.Release()
}

func (g *Generator) issuePayment() {
	sender, receiver := g.wallets.RandomPair()

	outputs := g.emulator.OutputsAt(sender.Address())
	if len(outputs) == 0 {
		return
	}
	outputIDs := outputs.IDs()
	outputID := outputIDs[rand.Intn(len(outputIDs))]

	tx, err := g.payment(sender, receiver, outputID, outputs[outputID].Value().Lovelace())
	if err != nil {
		g.log.Debugf("skipped payment from %s: %s", sender.Address().Base58(), err)
		return
	}

	if rand.Float64() < g.invalidRatio {
		tx = receiver.Sign(tx)
	} else {
		tx = sender.Sign(tx)
	}

	g.emulator.QueueTransaction(tx)
	g.queued.Incr(1)
}

// payment sends half of the lovelace of the Output to the receiver and the rest (minus the fee) back to the sender.
func (g *Generator) payment(sender, receiver *Wallet, outputID ledgerstate.OutputID, lovelace int64) (tx *ledgerstate.Transaction, err error) {
	currentSlot := g.emulator.CurrentSlot()
	amount := lovelace / 2
	if amount == 0 {
		return nil, errors.Errorf("%s holds too little lovelace", outputID)
	}

	unbalancedTx, err := constraints.ResolveConstraints(constraints.NewScriptLookups[noScript, noScript](nil), constraints.New[noScript, noScript](
		constraints.MustSpendPubKeyOutput{OutputID: outputID},
		constraints.MustPayToPubKey{PubKeyHash: receiver.PubKeyHash(), Value: ledgerstate.LovelaceValue(amount)},
		constraints.MustValidateIn{Interval: ledgerstate.NewValidityInterval(currentSlot, currentSlot+ledgerstate.Slot(g.validitySlots))},
		constraints.MustBeSignedBy{PubKeyHash: sender.PubKeyHash()},
	), g.emulator)
	if err != nil {
		return nil, errors.Errorf("failed to resolve payment: %w", err)
	}

	// the size of the essence doesn't depend on the amounts, so the fee can be computed on a placeholder
	fee := g.emulator.FeePolicy().MinFee(unbalancedTx.Transaction.WithOutput(ledgerstate.NewOutput(sender.Address(), ledgerstate.LovelaceValue(1))))
	change := lovelace - amount - int64(fee)
	if change <= 0 {
		return nil, errors.Errorf("%s can not cover the fee of %d", outputID, fee)
	}

	return unbalancedTx.Transaction.
		WithOutput(ledgerstate.NewOutput(sender.Address(), ledgerstate.LovelaceValue(change))).
		WithFee(fee), nil
}
