package ledgerstate

import (
	"math"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTxValidator_SimplePayment(t *testing.T) {
	wallets := createWallets(2)
	alice, bob := wallets[0], wallets[1]

	index := NewGenesisIndex(NewOutput(alice.address, LovelaceValue(1000)))
	genesisOutputID := NewOutputID(GenesisTransactionID, 0)
	validator := NewTxValidator(NewScriptRegistry(), WithFeePolicy(FeePolicy{Constant: 50}))

	tx := payment(alice, genesisOutputID, bob.address, 900, 100)
	require.NoError(t, validator.ValidateTransaction(index, tx, 0))

	updatedIndex, err := validator.ApplyTransaction(index, tx, 0)
	require.NoError(t, err)

	assert.False(t, updatedIndex.Contains(genesisOutputID))
	output, exists := updatedIndex.Output(NewOutputID(tx.ID(), 0))
	require.True(t, exists)
	assert.True(t, output.Address().Equals(bob.address))
	assert.Equal(t, int64(900), output.Value().Lovelace())
	assert.Equal(t, int64(900), updatedIndex.Value().Lovelace())

	// the original index is untouched
	assert.True(t, index.Contains(genesisOutputID))
	assert.Equal(t, 1, index.Size())
}

func TestTxValidator_InsufficientFunds(t *testing.T) {
	wallets := createWallets(2)
	alice, bob := wallets[0], wallets[1]

	index := NewGenesisIndex(NewOutput(alice.address, LovelaceValue(1000)))
	validator := NewTxValidator(NewScriptRegistry(), WithFeePolicy(FeePolicy{Constant: 50}))

	tx := payment(alice, NewOutputID(GenesisTransactionID, 0), bob.address, 950, 100)
	err := validator.ValidateTransaction(index, tx, 0)
	assert.ErrorIs(t, err, ErrValueNotPreserved)
	assert.Equal(t, ConservationErrorCategory, CategoryOf(err))
}

func TestTxValidator_FeeTooSmall(t *testing.T) {
	wallets := createWallets(2)
	alice, bob := wallets[0], wallets[1]

	index := NewGenesisIndex(NewOutput(alice.address, LovelaceValue(1000)))
	validator := NewTxValidator(NewScriptRegistry(), WithFeePolicy(FeePolicy{Constant: 50, PerByte: 1}))

	tx := payment(alice, NewOutputID(GenesisTransactionID, 0), bob.address, 900, 100)
	assert.Greater(t, validator.FeePolicy().MinFee(tx), uint64(100))
	assert.ErrorIs(t, validator.ValidateTransaction(index, tx, 0), ErrFeeTooSmall)

	minFee := validator.FeePolicy().MinFee(tx)
	tx = payment(alice, NewOutputID(GenesisTransactionID, 0), bob.address, 1000-int64(minFee), minFee)
	assert.NoError(t, validator.ValidateTransaction(index, tx, 0))
}

func TestTxValidator_FeeBeyondQuantityRange(t *testing.T) {
	wallets := createWallets(2)
	alice, bob := wallets[0], wallets[1]

	index := NewGenesisIndex(NewOutput(alice.address, LovelaceValue(1000)))
	validator := NewTxValidator(NewScriptRegistry())

	// as a signed quantity the fee would read as -1 and balance the extra lovelace of the output
	tx := payment(alice, NewOutputID(GenesisTransactionID, 0), bob.address, 1001, math.MaxUint64)
	err := validator.ValidateTransaction(index, tx, 0)
	assert.ErrorIs(t, err, ErrValueOverflow)
	assert.Equal(t, ConservationErrorCategory, CategoryOf(err))

	_, err = validator.ApplyTransaction(index, tx, 0)
	assert.Error(t, err)

	tx = payment(alice, NewOutputID(GenesisTransactionID, 0), bob.address, 1001, math.MaxInt64+1)
	assert.ErrorIs(t, validator.ValidateTransaction(index, tx, 0), ErrValueOverflow)
}

func TestTxValidator_MinFeeSaturates(t *testing.T) {
	wallets := createWallets(2)
	alice, bob := wallets[0], wallets[1]

	index := NewGenesisIndex(NewOutput(alice.address, LovelaceValue(1000)))
	tx := payment(alice, NewOutputID(GenesisTransactionID, 0), bob.address, 900, 100)

	assert.Equal(t, uint64(math.MaxUint64), FeePolicy{PerByte: math.MaxUint64}.MinFee(tx))
	assert.Equal(t, uint64(math.MaxUint64), FeePolicy{Constant: math.MaxUint64, PerByte: 1}.MinFee(tx))
	assert.Equal(t, uint64(math.MaxUint64), FeePolicy{Constant: math.MaxUint64}.MinFee(tx))

	validator := NewTxValidator(NewScriptRegistry(), WithFeePolicy(FeePolicy{Constant: 1, PerByte: math.MaxUint64 / 2}))
	assert.ErrorIs(t, validator.ValidateTransaction(index, tx, 0), ErrFeeTooSmall)
}

func TestTxValidator_ExpiredTransaction(t *testing.T) {
	wallets := createWallets(2)
	alice, bob := wallets[0], wallets[1]

	index := NewGenesisIndex(NewOutput(alice.address, LovelaceValue(1000)))
	validator := NewTxValidator(NewScriptRegistry())

	tx := UnitTransaction().
		WithInput(NewPubKeyInput(NewOutputID(GenesisTransactionID, 0))).
		WithOutput(NewOutput(bob.address, LovelaceValue(1000))).
		WithValidity(NewValidityInterval(0, 5)).
		Sign(alice.keyPair)

	assert.NoError(t, validator.ValidateTransaction(index, tx, 4))

	err := validator.ValidateTransaction(index, tx, 5)
	assert.ErrorIs(t, err, ErrCurrentSlotOutOfRange)
	assert.Equal(t, TemporalErrorCategory, CategoryOf(err))
}

func TestTxValidator_ValidityBoundaries(t *testing.T) {
	wallets := createWallets(2)
	alice, bob := wallets[0], wallets[1]

	index := NewGenesisIndex(NewOutput(alice.address, LovelaceValue(1000)))
	validator := NewTxValidator(NewScriptRegistry())

	tx := UnitTransaction().
		WithInput(NewPubKeyInput(NewOutputID(GenesisTransactionID, 0))).
		WithOutput(NewOutput(bob.address, LovelaceValue(1000))).
		WithValidity(NewValidityInterval(10, 20)).
		Sign(alice.keyPair)

	for slot, valid := range map[Slot]bool{9: false, 10: true, 19: true, 20: false} {
		err := validator.ValidateTransaction(index, tx, slot)
		if valid {
			assert.NoError(t, err, "slot %d", slot)
		} else {
			assert.ErrorIs(t, err, ErrCurrentSlotOutOfRange, "slot %d", slot)
		}
	}

	empty := tx.WithValidity(NewValidityInterval(7, 7)).Sign(alice.keyPair)
	assert.ErrorIs(t, validator.ValidateTransaction(index, empty, 7), ErrCurrentSlotOutOfRange)
}

func TestTxValidator_NoDoubleSpend(t *testing.T) {
	wallets := createWallets(3)
	alice, bob, charlie := wallets[0], wallets[1], wallets[2]

	index := NewGenesisIndex(NewOutput(alice.address, LovelaceValue(1000)))
	validator := NewTxValidator(NewScriptRegistry())
	genesisOutputID := NewOutputID(GenesisTransactionID, 0)

	toBob := payment(alice, genesisOutputID, bob.address, 1000, 0)
	toCharlie := payment(alice, genesisOutputID, charlie.address, 1000, 0)

	// both are valid on their own
	require.NoError(t, validator.ValidateTransaction(index, toBob, 0))
	require.NoError(t, validator.ValidateTransaction(index, toCharlie, 0))

	index, err := validator.ApplyTransaction(index, toBob, 0)
	require.NoError(t, err)

	err = validator.ValidateTransaction(index, toCharlie, 0)
	assert.ErrorIs(t, err, ErrTxOutRefNotFound)
	assert.Equal(t, StructuralErrorCategory, CategoryOf(err))

	_, err = index.ApplyTransaction(toCharlie)
	assert.ErrorIs(t, err, ErrTxOutRefNotFound)
}

func TestTxValidator_IdempotentRejection(t *testing.T) {
	wallets := createWallets(2)
	alice, bob := wallets[0], wallets[1]

	index := NewGenesisIndex(NewOutput(alice.address, LovelaceValue(1000)))
	validator := NewTxValidator(NewScriptRegistry())

	invalid := payment(alice, NewOutputID(GenesisTransactionID, 0), bob.address, 2000, 0)
	firstErr := validator.ValidateTransaction(index, invalid, 0)
	secondErr := validator.ValidateTransaction(index, invalid, 0)

	assert.ErrorIs(t, firstErr, ErrValueNotPreserved)
	assert.Equal(t, firstErr.Error(), secondErr.Error())
	assert.Equal(t, 1, index.Size())
	assert.True(t, index.Contains(NewOutputID(GenesisTransactionID, 0)))

	_, err := validator.ApplyTransaction(index, invalid, 0)
	assert.ErrorIs(t, err, ErrValueNotPreserved)
	assert.Equal(t, 1, index.Size())
}

func TestTxValidator_StructuralChecks(t *testing.T) {
	wallets := createWallets(2)
	alice, bob := wallets[0], wallets[1]

	index := NewGenesisIndex(NewOutput(alice.address, LovelaceValue(1000)))
	validator := NewTxValidator(NewScriptRegistry())
	genesisOutputID := NewOutputID(GenesisTransactionID, 0)

	t.Run("no inputs", func(t *testing.T) {
		tx := UnitTransaction().WithOutput(NewOutput(bob.address, LovelaceValue(1)))
		assert.ErrorIs(t, validator.ValidateTransaction(index, tx, 0), ErrNoInputs)
	})

	t.Run("unknown input", func(t *testing.T) {
		tx := payment(alice, NewOutputID(GenesisTransactionID, 1), bob.address, 1000, 0)
		assert.ErrorIs(t, validator.ValidateTransaction(index, tx, 0), ErrTxOutRefNotFound)
	})

	t.Run("duplicate input", func(t *testing.T) {
		tx := UnitTransaction().
			WithInput(NewPubKeyInput(genesisOutputID), NewPubKeyInput(genesisOutputID)).
			WithOutput(NewOutput(bob.address, LovelaceValue(2000))).
			Sign(alice.keyPair)
		assert.Len(t, tx.Inputs(), 2)
		assert.ErrorIs(t, validator.ValidateTransaction(index, tx, 0), ErrDuplicateTxIn)
	})

	t.Run("negative output", func(t *testing.T) {
		tx := UnitTransaction().
			WithInput(NewPubKeyInput(genesisOutputID)).
			WithOutput(NewOutput(bob.address, LovelaceValue(1100)), NewOutput(alice.address, LovelaceValue(-100))).
			Sign(alice.keyPair)
		assert.ErrorIs(t, validator.ValidateTransaction(index, tx, 0), ErrInvalidOutput)
	})

	t.Run("empty output", func(t *testing.T) {
		tx := UnitTransaction().
			WithInput(NewPubKeyInput(genesisOutputID)).
			WithOutput(NewOutput(bob.address, LovelaceValue(1000)), NewOutput(alice.address, Value{})).
			Sign(alice.keyPair)
		assert.ErrorIs(t, validator.ValidateTransaction(index, tx, 0), ErrInvalidOutput)
	})
}

func TestTxValidator_Signatures(t *testing.T) {
	wallets := createWallets(3)
	alice, bob, charlie := wallets[0], wallets[1], wallets[2]

	index := NewGenesisIndex(NewOutput(alice.address, LovelaceValue(1000)))
	validator := NewTxValidator(NewScriptRegistry())

	unsigned := UnitTransaction().
		WithInput(NewPubKeyInput(NewOutputID(GenesisTransactionID, 0))).
		WithOutput(NewOutput(bob.address, LovelaceValue(1000)))

	t.Run("missing signature", func(t *testing.T) {
		err := validator.ValidateTransaction(index, unsigned, 0)
		assert.ErrorIs(t, err, ErrSignatureMissing)
		assert.Equal(t, AuthorizationErrorCategory, CategoryOf(err))
	})

	t.Run("signature of the wrong key", func(t *testing.T) {
		assert.ErrorIs(t, validator.ValidateTransaction(index, unsigned.Sign(bob.keyPair), 0), ErrSignatureMissing)
	})

	t.Run("signature over a different essence", func(t *testing.T) {
		signed := unsigned.Sign(alice.keyPair)
		modified := signed.WithValidity(IntervalTo(100))
		assert.ErrorIs(t, validator.ValidateTransaction(index, modified, 0), ErrSignatureMissing)
	})

	t.Run("required signer", func(t *testing.T) {
		tx := unsigned.WithRequiredSigner(charlie.pubKeyHash())
		assert.ErrorIs(t, validator.ValidateTransaction(index, tx.Sign(alice.keyPair), 0), ErrSignatureMissing)
		assert.NoError(t, validator.ValidateTransaction(index, tx.Sign(alice.keyPair, charlie.keyPair), 0))
	})

	t.Run("script witness on a key output", func(t *testing.T) {
		validatorScript := NewValidator(Script("some validator"))
		tx := UnitTransaction().
			WithInput(NewScriptInput(NewOutputID(GenesisTransactionID, 0), NewScriptWitness(validatorScript, nil, nil))).
			WithOutput(NewOutput(bob.address, LovelaceValue(1000))).
			Sign(alice.keyPair)
		assert.ErrorIs(t, validator.ValidateTransaction(index, tx, 0), ErrWitnessMismatch)
	})
}

func TestTxValidator_ScriptLockedSpend(t *testing.T) {
	wallets := createWallets(2)
	alice, bob := wallets[0], wallets[1]

	registry := NewScriptRegistry()
	game := guessingGame(registry)
	secret := Datum("secret")

	index := NewGenesisIndex(
		NewScriptOutput(game.Address(), LovelaceValue(500), secret.Hash()),
		NewOutput(alice.address, LovelaceValue(1000)),
	)
	validator := NewTxValidator(registry)
	lockedOutputID := NewOutputID(GenesisTransactionID, 0)

	spend := func(witness *ScriptWitness) *Transaction {
		return UnitTransaction().
			WithInput(NewScriptInput(lockedOutputID, witness)).
			WithOutput(NewOutput(bob.address, LovelaceValue(500)))
	}

	t.Run("correct redeemer", func(t *testing.T) {
		assert.NoError(t, validator.ValidateTransaction(index, spend(NewScriptWitness(game, secret, Redeemer("secret"))), 0))
	})

	t.Run("wrong redeemer", func(t *testing.T) {
		err := validator.ValidateTransaction(index, spend(NewScriptWitness(game, secret, Redeemer("guess"))), 0)
		assert.ErrorIs(t, err, ErrScriptFailure)
		assert.Equal(t, ScriptErrorCategory, CategoryOf(err))

		var scriptErr *ScriptError
		require.True(t, errors.As(err, &scriptErr))
		assert.Equal(t, "wrong guess", scriptErr.Reason)
		assert.Equal(t, lockedOutputID, scriptErr.Purpose.OutputID())
	})

	t.Run("wrong datum", func(t *testing.T) {
		err := validator.ValidateTransaction(index, spend(NewScriptWitness(game, Datum("other"), Redeemer("other"))), 0)
		assert.ErrorIs(t, err, ErrInvalidDatumHash)
	})

	t.Run("wrong validator", func(t *testing.T) {
		impostor := registry.RegisterValidator("always", func(*ScriptArguments) error { return nil })
		err := validator.ValidateTransaction(index, spend(NewScriptWitness(impostor, secret, Redeemer("secret"))), 0)
		assert.ErrorIs(t, err, ErrInvalidScriptHash)
	})

	t.Run("pub key witness on a script output", func(t *testing.T) {
		tx := UnitTransaction().
			WithInput(NewPubKeyInput(lockedOutputID)).
			WithOutput(NewOutput(bob.address, LovelaceValue(500))).
			Sign(alice.keyPair)
		assert.ErrorIs(t, validator.ValidateTransaction(index, tx, 0), ErrWitnessMismatch)
	})

	t.Run("unknown validator", func(t *testing.T) {
		unknown := NewValidator(Script("not registered"))
		unknownIndex := NewGenesisIndex(NewScriptOutput(unknown.Address(), LovelaceValue(500), secret.Hash()))
		err := validator.ValidateTransaction(unknownIndex, spend(NewScriptWitness(unknown, secret, nil)), 0)
		assert.ErrorIs(t, err, ErrScriptFailure)
	})
}

func TestTxValidator_ScriptContext(t *testing.T) {
	wallets := createWallets(2)
	alice, bob := wallets[0], wallets[1]

	registry := NewScriptRegistry()
	escrow := registry.RegisterValidator("escrow", func(arguments *ScriptArguments) error {
		ctx := arguments.Context
		ownAddress, exists := ctx.OwnAddress()
		if !exists {
			return errors.New("no own input")
		}
		if ownAddress.Type() != ScriptAddressType {
			return errors.New("own address is not a script address")
		}
		if !ctx.TxSignedBy(NewPubKeyHash(alice.keyPair.PublicKey)) {
			return errors.New("not signed by the beneficiary")
		}
		if ctx.ValuePaidTo(bob.address).Lovelace() < 300 {
			return errors.New("bob is not paid")
		}
		if !ctx.SpendsOutput(ctx.Purpose.OutputID()) {
			return errors.New("own input not spent")
		}
		if !ctx.ValueSpent().Equal(ctx.ValueProduced().Add(ctx.TxInfo.Fee)) {
			return errors.New("unbalanced transaction")
		}

		return nil
	})
	datum := Datum("escrow")

	index := NewGenesisIndex(NewScriptOutput(escrow.Address(), LovelaceValue(500), datum.Hash()))
	validator := NewTxValidator(registry)

	tx := UnitTransaction().
		WithInput(NewScriptInput(NewOutputID(GenesisTransactionID, 0), NewScriptWitness(escrow, datum, nil))).
		WithOutput(NewOutput(bob.address, LovelaceValue(300)), NewOutput(alice.address, LovelaceValue(190))).
		WithFee(10)

	assert.ErrorIs(t, validator.ValidateTransaction(index, tx, 0), ErrScriptFailure)
	assert.NoError(t, validator.ValidateTransaction(index, tx.Sign(alice.keyPair), 0))
}

func TestTxValidator_Minting(t *testing.T) {
	wallets := createWallets(2)
	alice, bob := wallets[0], wallets[1]

	registry := NewScriptRegistry()
	policy := registry.RegisterMintingPolicy("alice-only", func(arguments *ScriptArguments) error {
		if !arguments.IsMinting() {
			return errors.New("not minting")
		}
		if !arguments.Context.TxSignedBy(NewPubKeyHash(alice.keyPair.PublicKey)) {
			return errors.New("alice did not sign")
		}

		return nil
	})
	tokens := SingletonValue(policy.CurrencySymbol(), "coin", 10)

	index := NewGenesisIndex(NewOutput(alice.address, LovelaceValue(1000)))
	validator := NewTxValidator(registry)

	base := UnitTransaction().
		WithInput(NewPubKeyInput(NewOutputID(GenesisTransactionID, 0))).
		WithOutput(NewOutput(bob.address, LovelaceValue(1000).Add(tokens))).
		WithMint(tokens)

	t.Run("missing policy", func(t *testing.T) {
		err := validator.ValidateTransaction(index, base.Sign(alice.keyPair), 0)
		assert.ErrorIs(t, err, ErrMintingPolicyFailure)
	})

	t.Run("policy accepts", func(t *testing.T) {
		tx := base.WithMintingWitness(policy, nil).Sign(alice.keyPair)
		require.NoError(t, validator.ValidateTransaction(index, tx, 0))

		updatedIndex, err := validator.ApplyTransaction(index, tx, 0)
		require.NoError(t, err)
		assert.Equal(t, index.Value().Add(tokens), updatedIndex.Value())
	})

	t.Run("policy rejects", func(t *testing.T) {
		bobsInput := NewGenesisIndex(NewOutput(bob.address, LovelaceValue(1000)))
		tx := base.WithMintingWitness(policy, nil).Sign(bob.keyPair)
		err := validator.ValidateTransaction(bobsInput, tx, 0)
		assert.ErrorIs(t, err, ErrMintingPolicyFailure)

		var scriptErr *ScriptError
		require.True(t, errors.As(err, &scriptErr))
		assert.Equal(t, "alice did not sign", scriptErr.Reason)
	})

	t.Run("minting without matching output", func(t *testing.T) {
		tx := UnitTransaction().
			WithInput(NewPubKeyInput(NewOutputID(GenesisTransactionID, 0))).
			WithOutput(NewOutput(bob.address, LovelaceValue(1000))).
			WithMint(tokens).
			WithMintingWitness(policy, nil).
			Sign(alice.keyPair)
		assert.ErrorIs(t, validator.ValidateTransaction(index, tx, 0), ErrValueNotPreserved)
	})
}

func TestTxValidator_ConservationOverflow(t *testing.T) {
	wallets := createWallets(2)
	alice, bob := wallets[0], wallets[1]

	index := NewGenesisIndex(NewOutput(alice.address, LovelaceValue(1000)))
	validator := NewTxValidator(NewScriptRegistry())

	// the produced lovelace wrap around to exactly the consumed 1000
	tx := UnitTransaction().
		WithInput(NewPubKeyInput(NewOutputID(GenesisTransactionID, 0))).
		WithOutput(
			NewOutput(bob.address, LovelaceValue(math.MaxInt64)),
			NewOutput(bob.address, LovelaceValue(math.MaxInt64)),
			NewOutput(bob.address, LovelaceValue(1002)),
		).
		Sign(alice.keyPair)

	err := validator.ValidateTransaction(index, tx, 0)
	assert.ErrorIs(t, err, ErrValueOverflow)
	assert.Equal(t, ConservationErrorCategory, CategoryOf(err))

	_, err = validator.ApplyTransaction(index, tx, 0)
	assert.Error(t, err)
	assert.Equal(t, int64(1000), index.Value().Lovelace())
}

func TestTxValidator_PanickingEvaluator(t *testing.T) {
	wallets := createWallets(2)
	alice, bob := wallets[0], wallets[1]

	crashing := NewTxValidator(ScriptEvaluatorFunc(func(Script, *ScriptArguments) error {
		panic("vm crashed")
	}))

	t.Run("spending", func(t *testing.T) {
		lock := NewValidator(Script("lock"))
		datum := Datum("datum")
		index := NewGenesisIndex(NewScriptOutput(lock.Address(), LovelaceValue(500), datum.Hash()))

		lockedOutputID := NewOutputID(GenesisTransactionID, 0)
		tx := UnitTransaction().
			WithInput(NewScriptInput(lockedOutputID, NewScriptWitness(lock, datum, nil))).
			WithOutput(NewOutput(bob.address, LovelaceValue(500)))

		var err error
		assert.NotPanics(t, func() { err = crashing.ValidateTransaction(index, tx, 0) })
		assert.ErrorIs(t, err, ErrScriptFailure)

		var scriptErr *ScriptError
		require.True(t, errors.As(err, &scriptErr))
		assert.Contains(t, scriptErr.Reason, "vm crashed")
		assert.Equal(t, lockedOutputID, scriptErr.Purpose.OutputID())
	})

	t.Run("minting", func(t *testing.T) {
		policy := NewMintingPolicy(Script("policy"))
		tokens := SingletonValue(policy.CurrencySymbol(), "coin", 10)
		index := NewGenesisIndex(NewOutput(alice.address, LovelaceValue(1000)))

		tx := UnitTransaction().
			WithInput(NewPubKeyInput(NewOutputID(GenesisTransactionID, 0))).
			WithOutput(NewOutput(bob.address, LovelaceValue(1000).Add(tokens))).
			WithMint(tokens).
			WithMintingWitness(policy, nil).
			Sign(alice.keyPair)

		var err error
		assert.NotPanics(t, func() { err = crashing.ValidateTransaction(index, tx, 0) })
		assert.ErrorIs(t, err, ErrMintingPolicyFailure)
		assert.Equal(t, ScriptErrorCategory, CategoryOf(err))
	})
}

func TestTxValidator_EncodingLimits(t *testing.T) {
	wallets := createWallets(2)
	alice, bob := wallets[0], wallets[1]

	index := NewGenesisIndex(NewOutput(alice.address, LovelaceValue(1000)))
	validator := NewTxValidator(NewScriptRegistry())
	symbol := NewMintingPolicy(Script("policy")).CurrencySymbol()

	oversizedName := TokenName(strings.Repeat("x", math.MaxUint16+1))
	tx := UnitTransaction().
		WithInput(NewPubKeyInput(NewOutputID(GenesisTransactionID, 0))).
		WithOutput(NewOutput(bob.address, LovelaceValue(1000).Add(SingletonValue(symbol, oversizedName, 1)))).
		Sign(alice.keyPair)

	err := validator.ValidateTransaction(index, tx, 0)
	assert.ErrorIs(t, err, ErrEncodingLimitExceeded)
	assert.Equal(t, StructuralErrorCategory, CategoryOf(err))

	oversizedMint := UnitTransaction().
		WithInput(NewPubKeyInput(NewOutputID(GenesisTransactionID, 0))).
		WithOutput(NewOutput(bob.address, LovelaceValue(1000))).
		WithMint(SingletonValue(symbol, oversizedName, 1)).
		Sign(alice.keyPair)
	assert.ErrorIs(t, validator.ValidateTransaction(index, oversizedMint, 0), ErrEncodingLimitExceeded)
}

func TestTxValidator_Conservation(t *testing.T) {
	wallets := createWallets(3)
	validator := NewTxValidator(NewScriptRegistry())

	index := NewGenesisIndex(
		NewOutput(wallets[0].address, LovelaceValue(1000)),
		NewOutput(wallets[1].address, LovelaceValue(2000)),
	)
	totalFees := int64(0)
	initialValue := index.Value()

	owners := map[OutputID]wallet{
		NewOutputID(GenesisTransactionID, 0): wallets[0],
		NewOutputID(GenesisTransactionID, 1): wallets[1],
	}
	for round := 0; round < 6; round++ {
		for _, outputID := range index.OutputIDs() {
			output, _ := index.Output(outputID)
			owner := owners[outputID]
			receiver := wallets[(round+1)%len(wallets)]

			tx := payment(owner, outputID, receiver.address, output.Value().Lovelace()-5, 5)
			updatedIndex, err := validator.ApplyTransaction(index, tx, Slot(round))
			require.NoError(t, err)

			index = updatedIndex
			owners[NewOutputID(tx.ID(), 0)] = receiver
			totalFees += 5

			assert.Equal(t, initialValue.Lovelace()-totalFees, index.Value().Lovelace())
		}
	}
}
