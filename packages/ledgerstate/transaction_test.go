package ledgerstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransaction_IDIgnoresWitnesses(t *testing.T) {
	wallets := createWallets(2)
	alice, bob := wallets[0], wallets[1]

	unsigned := UnitTransaction().
		WithInput(NewPubKeyInput(NewOutputID(GenesisTransactionID, 0))).
		WithOutput(NewOutput(bob.address, LovelaceValue(10)))

	signedOnce := unsigned.Sign(alice.keyPair)
	signedTwice := unsigned.Sign(bob.keyPair, alice.keyPair)

	assert.Equal(t, unsigned.ID(), signedOnce.ID())
	assert.Equal(t, unsigned.ID(), signedTwice.ID())
	assert.Equal(t, unsigned.ID(), signedTwice.WithDatum(Datum("extra")).ID())
	assert.NotEqual(t, unsigned.ID(), unsigned.WithFee(1).ID())
}

func TestTransaction_BuildersReturnCopies(t *testing.T) {
	wallets := createWallets(1)

	base := UnitTransaction()
	withInput := base.WithInput(NewPubKeyInput(NewOutputID(GenesisTransactionID, 0)))
	withOutput := withInput.WithOutput(NewOutput(wallets[0].address, LovelaceValue(1)))
	signed := withOutput.Sign(wallets[0].keyPair)

	assert.Empty(t, base.Inputs())
	assert.Len(t, withInput.Inputs(), 1)
	assert.Empty(t, withInput.Outputs())
	assert.Len(t, withOutput.Outputs(), 1)
	assert.Empty(t, withOutput.Signatures())
	assert.Len(t, signed.Signatures(), 1)
	assert.Equal(t, AlwaysValid, base.ValidityInterval())
}

func TestTransaction_CanonicalInputOrder(t *testing.T) {
	first := NewOutputID(TransactionID{1}, 3)
	second := NewOutputID(TransactionID{1}, 7)
	third := NewOutputID(TransactionID{2}, 0)

	a := UnitTransaction().WithInput(NewPubKeyInput(third), NewPubKeyInput(first)).WithInput(NewPubKeyInput(second))
	b := UnitTransaction().WithInput(NewPubKeyInput(second), NewPubKeyInput(third), NewPubKeyInput(first))

	assert.Equal(t, []OutputID{first, second, third}, a.Inputs().OutputIDs())
	assert.Equal(t, a.ID(), b.ID())
	assert.True(t, a.Equals(b))
}

func TestTransaction_Bytes(t *testing.T) {
	wallets := createWallets(2)
	alice, bob := wallets[0], wallets[1]

	registry := NewScriptRegistry()
	game := guessingGame(registry)
	policy := registry.RegisterMintingPolicy("free", func(*ScriptArguments) error { return nil })
	datum := Datum("datum")

	tx := UnitTransaction().
		WithInput(
			NewPubKeyInput(NewOutputID(GenesisTransactionID, 1)),
			NewScriptInput(NewOutputID(GenesisTransactionID, 0), NewScriptWitness(game, datum, Redeemer("datum"))),
		).
		WithOutput(
			NewOutput(bob.address, LovelaceValue(90).Add(SingletonValue(policy.CurrencySymbol(), "coin", 1))),
			NewScriptOutput(game.Address(), LovelaceValue(5), datum.Hash()),
		).
		WithMint(SingletonValue(policy.CurrencySymbol(), "coin", 1)).
		WithMintingWitness(policy, Redeemer("mint")).
		WithFee(5).
		WithValidity(NewValidityInterval(3, 30)).
		WithRequiredSigner(bob.pubKeyHash()).
		WithDatum(Datum("other")).
		Sign(alice.keyPair, bob.keyPair)

	restored, consumedBytes, err := TransactionFromBytes(tx.Bytes())
	require.NoError(t, err)
	assert.Equal(t, len(tx.Bytes()), consumedBytes)
	assert.Equal(t, tx.ID(), restored.ID())
	assert.True(t, tx.Equals(restored))
	assert.Equal(t, tx.ValidSignatories(), restored.ValidSignatories())
	assert.Len(t, restored.ValidSignatories(), 2)

	scriptWitness, ok := restored.Inputs()[0].Witness().(*ScriptWitness)
	if restored.Inputs()[0].ReferencedOutputID() != NewOutputID(GenesisTransactionID, 0) {
		scriptWitness, ok = restored.Inputs()[1].Witness().(*ScriptWitness)
	}
	require.True(t, ok)
	assert.Equal(t, game.Hash(), scriptWitness.Validator().Hash())

	_, exists := restored.Datum(Datum("other").Hash())
	assert.True(t, exists)
	_, exists = restored.MintingWitness(policy.CurrencySymbol())
	assert.True(t, exists)
}

func TestTransaction_OutputsByID(t *testing.T) {
	wallets := createWallets(1)

	tx := UnitTransaction().
		WithInput(NewPubKeyInput(NewOutputID(GenesisTransactionID, 0))).
		WithOutput(NewOutput(wallets[0].address, LovelaceValue(1)), NewOutput(wallets[0].address, LovelaceValue(2)))

	outputs := tx.OutputsByID()
	require.Len(t, outputs, 2)
	assert.Equal(t, int64(1), outputs[NewOutputID(tx.ID(), 0)].Value().Lovelace())
	assert.Equal(t, int64(2), outputs[NewOutputID(tx.ID(), 1)].Value().Lovelace())
}

func TestValidityInterval(t *testing.T) {
	interval := NewValidityInterval(10, 20)

	assert.False(t, interval.Contains(9))
	assert.True(t, interval.Contains(10))
	assert.True(t, interval.Contains(19))
	assert.False(t, interval.Contains(20))

	assert.True(t, AlwaysValid.Includes(interval))
	assert.True(t, interval.Includes(NewValidityInterval(12, 15)))
	assert.False(t, interval.Includes(NewValidityInterval(12, 25)))
	assert.True(t, interval.Includes(NewValidityInterval(30, 30)))

	assert.Equal(t, NewValidityInterval(15, 20), interval.Intersect(IntervalFrom(15)))
	assert.Equal(t, NewValidityInterval(10, 12), interval.Intersect(IntervalTo(12)))
	assert.True(t, interval.Intersect(NewValidityInterval(25, 30)).IsEmpty())
	assert.Equal(t, "[10, 20)", interval.String())
}

func TestAddress_Bytes(t *testing.T) {
	wallets := createWallets(1)
	scriptAddress := NewValidator(Script("validator")).Address()

	for _, address := range []Address{wallets[0].address, scriptAddress} {
		restored, consumedBytes, err := AddressFromBytes(address.Bytes())
		require.NoError(t, err)
		assert.Equal(t, AddressLength, consumedBytes)
		assert.True(t, address.Equals(restored))

		fromBase58, err := AddressFromBase58EncodedString(address.Base58())
		require.NoError(t, err)
		assert.True(t, address.Equals(fromBase58))
	}

	assert.False(t, wallets[0].address.Equals(scriptAddress))
}

func TestED25519Signature(t *testing.T) {
	wallets := createWallets(2)
	message := []byte("message")

	signature := NewED25519Signature(wallets[0].keyPair.PublicKey, Sign(wallets[0].keyPair.PrivateKey, message))
	assert.True(t, signature.SignatureValid(message))
	assert.False(t, signature.SignatureValid([]byte("other message")))
	assert.True(t, signature.AddressSignatureValid(wallets[0].address, message))
	assert.False(t, signature.AddressSignatureValid(wallets[1].address, message))

	restored, _, err := ED25519SignatureFromBytes(signature.Bytes())
	require.NoError(t, err)
	assert.True(t, restored.AddressSignatureValid(wallets[0].address, message))
}
