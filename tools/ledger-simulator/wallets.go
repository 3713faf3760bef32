package main

import (
	"math/rand"

	"github.com/iotaledger/hive.go/crypto/ed25519"

	"github.com/ledgersim/ledgersim/packages/ledgerstate"
)

// region Wallet ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Wallet owns a key pair and the address that belongs to it.
type Wallet struct {
	keyPair ed25519.KeyPair
	address *ledgerstate.ED25519Address
}

// NewWallet creates a Wallet with a fresh key pair.
func NewWallet() *Wallet {
	keyPair := ed25519.GenerateKeyPair()

	return &Wallet{
		keyPair: keyPair,
		address: ledgerstate.NewED25519Address(keyPair.PublicKey),
	}
}

// Address returns the address that the Wallet can spend from.
func (w *Wallet) Address() *ledgerstate.ED25519Address {
	return w.address
}

// PubKeyHash returns the hash of the public key of the Wallet.
func (w *Wallet) PubKeyHash() ledgerstate.PubKeyHash {
	return w.address.PubKeyHash()
}

// Sign adds the signature of the Wallet to the Transaction.
func (w *Wallet) Sign(tx *ledgerstate.Transaction) *ledgerstate.Transaction {
	return tx.Sign(w.keyPair)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Wallets //////////////////////////////////////////////////////////////////////////////////////////////////////

// Wallets is the set of Wallets that take part in the simulation.
type Wallets []*Wallet

// NewWallets creates the given amount of Wallets.
func NewWallets(count int) (wallets Wallets) {
	wallets = make(Wallets, count)
	for i := range wallets {
		wallets[i] = NewWallet()
	}

	return wallets
}

// GenesisOutputs returns one Output per Wallet that holds the given amount of lovelace.
func (w Wallets) GenesisOutputs(funds int64) (outputs []*ledgerstate.Output) {
	outputs = make([]*ledgerstate.Output, len(w))
	for i, wallet := range w {
		outputs[i] = ledgerstate.NewOutput(wallet.address, ledgerstate.LovelaceValue(funds))
	}

	return outputs
}

// RandomPair returns two distinct random Wallets.
func (w Wallets) RandomPair() (sender, receiver *Wallet) {
	senderIndex := rand.Intn(len(w))
	receiverIndex := rand.Intn(len(w) - 1)
	if receiverIndex >= senderIndex {
		receiverIndex++
	}

	return w[senderIndex], w[receiverIndex]
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
