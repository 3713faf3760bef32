package main

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/generics/event"
	"github.com/iotaledger/hive.go/logger"
	"github.com/paulbellamy/ratecounter"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"github.com/ledgersim/ledgersim/packages/database"
	"github.com/ledgersim/ledgersim/packages/emulator"
)

type simulatorDependencies struct {
	dig.In

	Parameters *Parameters
	Emulator   *emulator.Emulator
	Generator  *Generator
	Database   database.DB
	Registry   *prometheus.Registry
	Logger     *logger.Logger
}

// Simulator drives the Emulator: every slot it generates payments, creates a Block and advances the clock.
type Simulator struct {
	parameters *Parameters
	emulator   *emulator.Emulator
	generator  *Generator
	db         database.DB
	registry   *prometheus.Registry
	accepted   *ratecounter.RateCounter
	rejected   *ratecounter.RateCounter
	log        *logger.Logger
}

// NewSimulator creates a Simulator and hooks it to the events of the Emulator.
func NewSimulator(deps simulatorDependencies) (simulator *Simulator) {
	simulator = &Simulator{
		parameters: deps.Parameters,
		emulator:   deps.Emulator,
		generator:  deps.Generator,
		db:         deps.Database,
		registry:   deps.Registry,
		accepted:   ratecounter.NewRateCounter(time.Second),
		rejected:   ratecounter.NewRateCounter(time.Second),
		log:        deps.Logger,
	}

	simulator.emulator.Events.TransactionAccepted.Attach(event.NewClosure(func(_ *emulator.TransactionAcceptedEvent) {
		simulator.accepted.Incr(1)
	}))
	simulator.emulator.Events.TransactionInvalid.Attach(event.NewClosure(func(_ *emulator.TransactionInvalidEvent) {
		simulator.rejected.Incr(1)
	}))

	return simulator
}

// Run simulates the configured number of slots (or until the context is done) and stores the final state in the
// database.
func (s *Simulator) Run(ctx context.Context) (err error) {
	defer s.generator.Shutdown()

	s.log.Infof("starting simulation with %s", s.emulator)

	slots := s.parameters.Simulator.Slots
	for slot := uint64(0); slots == 0 || slot < slots; slot++ {
		if err = s.generator.Generate(s.parameters.Simulator.TransactionsPerSlot); err != nil {
			return err
		}

		block := s.emulator.ProcessBlock()
		s.log.Infof("slot %d: %d transactions applied, %d pooled, %d utxos (%d queued/s, %d accepted/s, %d rejected/s)",
			block.Slot(), len(block.Transactions()), len(s.emulator.Pool()), s.emulator.Index().Size(),
			s.generator.QueuedPerSecond(), s.accepted.Rate(), s.rejected.Rate())

		if pruned := s.emulator.PruneBlocks(); pruned > 0 {
			s.log.Debugf("pruned %d blocks", pruned)
		}
		s.emulator.AdvanceSlot()

		if !s.waitForNextSlot(ctx) {
			s.log.Info("simulation interrupted")
			break
		}
	}

	if err = s.storeSnapshot(); err != nil {
		return err
	}
	s.logMetrics()

	return nil
}

func (s *Simulator) waitForNextSlot(ctx context.Context) bool {
	if s.parameters.Simulator.SlotDuration <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(s.parameters.Simulator.SlotDuration)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func (s *Simulator) storeSnapshot() (err error) {
	snapshot := s.emulator.Snapshot()
	if err = database.StoreSnapshot(s.db, snapshot); err != nil {
		return errors.Errorf("failed to store snapshot: %w", err)
	}

	restored, err := database.LoadSnapshot(s.db)
	if err != nil {
		return errors.Errorf("failed to load stored snapshot: %w", err)
	}
	if len(restored.Outputs) != len(snapshot.Outputs) {
		return errors.Errorf("stored snapshot contains %d outputs instead of %d", len(restored.Outputs), len(snapshot.Outputs))
	}
	s.log.Infof("stored %s", restored)

	return nil
}

func (s *Simulator) logMetrics() {
	metricFamilies, err := s.registry.Gather()
	if err != nil {
		s.log.Warnf("failed to gather metrics: %s", err)
		return
	}

	for _, metricFamily := range metricFamilies {
		for _, metric := range metricFamily.GetMetric() {
			name := metricFamily.GetName()
			for _, label := range metric.GetLabel() {
				name += "{" + label.GetName() + "=" + label.GetValue() + "}"
			}

			switch {
			case metric.GetCounter() != nil:
				s.log.Infof("%s = %.0f", name, metric.GetCounter().GetValue())
			case metric.GetGauge() != nil:
				s.log.Infof("%s = %.0f", name, metric.GetGauge().GetValue())
			}
		}
	}
}
