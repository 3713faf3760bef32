package main

import (
	"time"

	"github.com/ledgersim/ledgersim/packages/ledgerstate"
)

// Parameters contains the configuration of the ledger simulator.
type Parameters struct {
	// Simulator contains the parameters that control the generated load.
	Simulator struct {
		Wallets             int           `default:"10" usage:"the number of wallets that send payments to each other"`
		FundsPerWallet      int64         `default:"1000000" usage:"the lovelace that every wallet receives in the genesis"`
		Slots               uint64        `default:"100" usage:"the number of slots to simulate (0 runs until interrupted)"`
		SlotDuration        time.Duration `default:"100ms" usage:"the time between two blocks"`
		TransactionsPerSlot int           `default:"20" usage:"the number of payments that are generated per slot"`
		Workers             int           `default:"4" usage:"the number of goroutines that generate payments"`
		InvalidRatio        float64       `default:"0.05" usage:"the share of payments that are signed by the wrong key"`
		ValiditySlots       uint64        `default:"5" usage:"the number of slots a payment stays valid"`
	}

	// Ledger contains the parameters of the emulated ledger.
	Ledger struct {
		FeeConstant    uint64 `default:"10" usage:"the constant part of the minimum fee"`
		FeePerByte     uint64 `default:"0" usage:"the minimum fee per byte of the transaction essence"`
		RetainedBlocks int    `default:"1000" usage:"the number of blocks that are kept in memory"`
	}

	// Database contains the parameters of the database that the final snapshot is stored in.
	Database struct {
		Directory string `default:"ledgerdb" usage:"path to the database folder"`
		InMemory  bool   `default:"false" usage:"keep the snapshot in memory instead of writing it to disk"`
	}
}

// FeePolicy returns the FeePolicy that is configured by the Parameters.
func (p *Parameters) FeePolicy() ledgerstate.FeePolicy {
	return ledgerstate.FeePolicy{Constant: p.Ledger.FeeConstant, PerByte: p.Ledger.FeePerByte}
}
