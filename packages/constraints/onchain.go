package constraints

import (
	"bytes"
	"reflect"

	"github.com/cockroachdb/errors"

	"github.com/ledgersim/ledgersim/packages/ledgerstate"
	"github.com/ledgersim/ledgersim/packages/typed"
)

// CheckScriptContext checks that the ScriptContext satisfies all TxConstraints. It is meant to be called from within a
// Validator or MintingPolicy and returns an error wrapping ErrConstraintViolated for the first unsatisfied constraint.
// The datumCodec is used to hash the datums of the own outputs.
func CheckScriptContext[I, O any](constraints *TxConstraints[I, O], datumCodec typed.Codec[O], ctx *ledgerstate.ScriptContext) (err error) {
	for _, constraint := range constraints.Constraints {
		if err = checkConstraint(constraint, ctx); err != nil {
			return err
		}
	}

	for _, ownInput := range constraints.OwnInputs {
		if !ctx.SpendsOutput(ownInput.OutputID) {
			return errors.Errorf("own input %s is not spent: %w", ownInput.OutputID, ErrConstraintViolated)
		}
	}

	if len(constraints.OwnOutputs) == 0 {
		return nil
	}
	ownAddress, exists := ctx.OwnAddress()
	if !exists {
		return errors.Errorf("own outputs can only be checked when spending: %w", ErrConstraintViolated)
	}
	for _, ownOutput := range constraints.OwnOutputs {
		datum, encodeErr := datumCodec.Encode(ownOutput.Datum)
		if encodeErr != nil {
			return errors.Errorf("failed to encode datum of own output: %w", encodeErr)
		}
		if !paysToScript(ctx, ownAddress, datum, ownOutput.Value) {
			return errors.Errorf("missing own output with %s: %w", ownOutput.Value, ErrConstraintViolated)
		}
	}

	return nil
}

// ScriptContextSatisfies returns true if the ScriptContext satisfies all TxConstraints.
func ScriptContextSatisfies[I, O any](constraints *TxConstraints[I, O], datumCodec typed.Codec[O], ctx *ledgerstate.ScriptContext) bool {
	return CheckScriptContext(constraints, datumCodec, ctx) == nil
}

func checkConstraint(constraint TxConstraint, ctx *ledgerstate.ScriptContext) error {
	switch c := constraint.(type) {
	case MustIncludeDatum:
		if !includesDatum(ctx, c.Datum) {
			return violation(c, "datum is missing")
		}
	case MustValidateIn:
		if !c.Interval.Includes(ctx.TxInfo.ValidRange) {
			return violation(c, "validity interval "+ctx.TxInfo.ValidRange.String()+" is not contained")
		}
	case MustBeSignedBy:
		if !ctx.TxSignedBy(c.PubKeyHash) {
			return violation(c, "signature is missing")
		}
	case MustSpendAtLeast:
		if !ctx.ValueSpent().Geq(c.Value) {
			return violation(c, "not enough value spent")
		}
	case MustProduceAtLeast:
		if !ctx.ValueProduced().Geq(c.Value) {
			return violation(c, "not enough value produced")
		}
	case MustSpendPubKeyOutput:
		if !ctx.SpendsOutput(c.OutputID) {
			return violation(c, "output is not spent")
		}
	case MustSpendScriptOutput:
		if !ctx.SpendsOutput(c.OutputID) {
			return violation(c, "output is not spent")
		}
	case MustMintValue:
		assetID := ledgerstate.NewAssetID(ledgerstate.CurrencySymbol(c.PolicyHash), c.TokenName)
		if ctx.TxInfo.Mint.Quantity(assetID) != c.Quantity {
			return violation(c, "minted quantity differs")
		}
	case MustPayToPubKey:
		if !ctx.ValuePaidTo(ledgerstate.NewED25519AddressFromPubKeyHash(c.PubKeyHash)).Geq(c.Value) {
			return violation(c, "not enough value paid")
		}
	case MustPayToOtherScript:
		if !paysToScript(ctx, ledgerstate.NewScriptAddress(c.ValidatorHash), c.Datum, c.Value) {
			return violation(c, "no matching output")
		}
	case MustHashDatum:
		if c.Datum.Hash() != c.DatumHash || !includesDatum(ctx, c.Datum) {
			return violation(c, "datum is missing")
		}
	case MustSatisfyAnyOf:
		for _, alternative := range c.Alternatives {
			if checkAll(alternative, ctx) == nil {
				return nil
			}
		}
		return violation(c, "no alternative is satisfied")
	default:
		return violation(constraint, "unsupported constraint "+reflect.TypeOf(constraint).String())
	}

	return nil
}

func checkAll(constraints []TxConstraint, ctx *ledgerstate.ScriptContext) error {
	for _, constraint := range constraints {
		if err := checkConstraint(constraint, ctx); err != nil {
			return err
		}
	}

	return nil
}

func includesDatum(ctx *ledgerstate.ScriptContext, datum ledgerstate.Datum) bool {
	found, exists := ctx.FindDatum(datum.Hash())

	return exists && bytes.Equal(found, datum)
}

func paysToScript(ctx *ledgerstate.ScriptContext, address ledgerstate.Address, datum ledgerstate.Datum, value ledgerstate.Value) bool {
	if !includesDatum(ctx, datum) {
		return false
	}

	for _, output := range ctx.OutputsAt(address) {
		if datumHash, exists := output.DatumHash(); exists && datumHash == datum.Hash() && output.Value().Geq(value) {
			return true
		}
	}

	return false
}

func violation(constraint TxConstraint, reason string) error {
	return errors.Errorf("%s (%s): %w", constraint.Type(), reason, ErrConstraintViolated)
}
