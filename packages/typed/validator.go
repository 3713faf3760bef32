package typed

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/ledgersim/ledgersim/packages/ledgerstate"
)

// region Validator ////////////////////////////////////////////////////////////////////////////////////////////////////

// Validator binds a datum type D and a redeemer type R to an untyped Validator. The types only exist off-chain: the
// address and the hash of a Validator are derived from the compiled script alone.
type Validator[D, R any] struct {
	validator     *ledgerstate.Validator
	datumCodec    Codec[D]
	redeemerCodec Codec[R]
}

// NewValidator wraps an untyped Validator.
func NewValidator[D, R any](validator *ledgerstate.Validator, datumCodec Codec[D], redeemerCodec Codec[R]) *Validator[D, R] {
	return &Validator[D, R]{
		validator:     validator,
		datumCodec:    datumCodec,
		redeemerCodec: redeemerCodec,
	}
}

// NewValidatorFunc registers a typed check in the ScriptRegistry and returns the corresponding Validator. Datum and
// redeemer are decoded before the check runs, a decoding failure rejects the spend.
func NewValidatorFunc[D, R any](registry *ledgerstate.ScriptRegistry, name string, datumCodec Codec[D], redeemerCodec Codec[R], check func(datum D, redeemer R, ctx *ledgerstate.ScriptContext) error) *Validator[D, R] {
	return NewValidator(registry.RegisterValidator(name, func(arguments *ledgerstate.ScriptArguments) error {
		datum, err := datumCodec.Decode(arguments.Datum)
		if err != nil {
			return errors.Errorf("invalid datum: %w", err)
		}
		redeemer, err := redeemerCodec.Decode(arguments.Redeemer)
		if err != nil {
			return errors.Errorf("invalid redeemer: %w", err)
		}

		return check(datum, redeemer, arguments.Context)
	}), datumCodec, redeemerCodec)
}

// Untyped returns the underlying Validator.
func (v *Validator[D, R]) Untyped() *ledgerstate.Validator {
	return v.validator
}

// Hash returns the ValidatorHash of the compiled script.
func (v *Validator[D, R]) Hash() ledgerstate.ValidatorHash {
	return v.validator.Hash()
}

// Address returns the ScriptAddress that Outputs of the Validator are locked at.
func (v *Validator[D, R]) Address() *ledgerstate.ScriptAddress {
	return v.validator.Address()
}

// DatumCodec returns the Codec of the datum type.
func (v *Validator[D, R]) DatumCodec() Codec[D] {
	return v.datumCodec
}

// EncodeDatum translates a typed datum into a Datum.
func (v *Validator[D, R]) EncodeDatum(datum D) (ledgerstate.Datum, error) {
	encoded, err := v.datumCodec.Encode(datum)
	if err != nil {
		return nil, errors.Errorf("failed to encode datum for %s: %w", v.Hash(), err)
	}

	return encoded, nil
}

// DecodeDatum translates a Datum into the typed datum.
func (v *Validator[D, R]) DecodeDatum(datum ledgerstate.Datum) (D, error) {
	return v.datumCodec.Decode(datum)
}

// EncodeRedeemer translates a typed redeemer into a Redeemer.
func (v *Validator[D, R]) EncodeRedeemer(redeemer R) (ledgerstate.Redeemer, error) {
	encoded, err := v.redeemerCodec.Encode(redeemer)
	if err != nil {
		return nil, errors.Errorf("failed to encode redeemer for %s: %w", v.Hash(), err)
	}

	return encoded, nil
}

// DecodeRedeemer translates a Redeemer into the typed redeemer.
func (v *Validator[D, R]) DecodeRedeemer(redeemer ledgerstate.Redeemer) (R, error) {
	return v.redeemerCodec.Decode(redeemer)
}

// ScriptWitness returns the witness that spends an Output of the Validator with the given datum and redeemer.
func (v *Validator[D, R]) ScriptWitness(datum D, redeemer R) (*ledgerstate.ScriptWitness, error) {
	encodedDatum, err := v.EncodeDatum(datum)
	if err != nil {
		return nil, err
	}
	encodedRedeemer, err := v.EncodeRedeemer(redeemer)
	if err != nil {
		return nil, err
	}

	return ledgerstate.NewScriptWitness(v.validator, encodedDatum, encodedRedeemer), nil
}

// Output returns an Output that locks the Value at the Validator together with the hash of the encoded datum. The
// encoded datum is returned as well since spenders need to provide it.
func (v *Validator[D, R]) Output(datum D, value ledgerstate.Value) (output *ledgerstate.Output, encodedDatum ledgerstate.Datum, err error) {
	if encodedDatum, err = v.EncodeDatum(datum); err != nil {
		return nil, nil, err
	}

	return ledgerstate.NewScriptOutput(v.Address(), value, encodedDatum.Hash()), encodedDatum, nil
}

// String returns a human readable version of the Validator.
func (v *Validator[D, R]) String() string {
	return stringify.Struct("TypedValidator",
		stringify.StructField("hash", v.Hash()),
		stringify.StructField("datumType", typeName[D]()),
		stringify.StructField("redeemerType", typeName[R]()),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TypedOutput //////////////////////////////////////////////////////////////////////////////////////////////////

// TypedOutput interprets an Output as an Output of the typed Validator and returns its decoded datum. It fails with
// ErrWrongOutType if the Output is locked elsewhere, if the datum does not belong to the Output or if the datum can not
// be decoded as D.
func TypedOutput[D, R any](validator *Validator[D, R], output *ledgerstate.Output, datum ledgerstate.Datum) (typedDatum D, err error) {
	if !output.Address().Equals(validator.Address()) {
		return typedDatum, newWrongOutTypeError(errors.Errorf("%s: %w", output.Address(), ErrWrongValidatorAddress))
	}

	datumHash, exists := output.DatumHash()
	if !exists || datumHash != datum.Hash() {
		return typedDatum, newWrongOutTypeError(ErrWrongDatumHash)
	}

	if typedDatum, err = validator.DecodeDatum(datum); err != nil {
		return typedDatum, newWrongOutTypeError(err)
	}

	return typedDatum, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
