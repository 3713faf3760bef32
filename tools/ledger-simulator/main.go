package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/iotaledger/hive.go/logger"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"github.com/ledgersim/ledgersim/packages/configuration"
	"github.com/ledgersim/ledgersim/packages/database"
	"github.com/ledgersim/ledgersim/packages/emulator"
	"github.com/ledgersim/ledgersim/packages/ledgerstate"
)

func main() {
	log := logger.NewExampleLogger("Simulator")

	parameters := &Parameters{}
	config := configuration.New("ledgersim")
	config.Define("simulator", &parameters.Simulator)
	config.Define("ledger", &parameters.Ledger)
	config.Define("database", &parameters.Database)
	if err := config.Load(os.Args[1:]); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	container, err := buildContainer(parameters, log)
	if err != nil {
		log.Fatal(err)
	}

	if err = container.Invoke(func(simulator *Simulator, db database.DB) error {
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				log.Errorf("failed to close database: %s", closeErr)
			}
		}()

		return simulator.Run(ctx)
	}); err != nil {
		log.Fatal(err)
	}
}

func buildContainer(parameters *Parameters, log *logger.Logger) (container *dig.Container, err error) {
	container = dig.New()

	for _, constructor := range []interface{}{
		func() *Parameters {
			return parameters
		},
		func() *logger.Logger {
			return log
		},
		prometheus.NewRegistry,
		func(parameters *Parameters) (database.DB, error) {
			return database.New(parameters.Database.Directory, parameters.Database.InMemory)
		},
		func(parameters *Parameters) Wallets {
			return NewWallets(parameters.Simulator.Wallets)
		},
		func(parameters *Parameters, wallets Wallets, registry *prometheus.Registry, log *logger.Logger) *emulator.Emulator {
			return emulator.New(
				ledgerstate.NewGenesisIndex(wallets.GenesisOutputs(parameters.Simulator.FundsPerWallet)...),
				ledgerstate.NewScriptRegistry(),
				emulator.WithLogger(log),
				emulator.WithFeePolicy(parameters.FeePolicy()),
				emulator.WithMetricsRegisterer(registry),
				emulator.WithRetainedBlocks(parameters.Ledger.RetainedBlocks),
			)
		},
		NewGenerator,
		NewSimulator,
	} {
		if err = container.Provide(constructor); err != nil {
			return nil, err
		}
	}

	return container, nil
}
