package constraints

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrConstraintViolated is returned if a ScriptContext does not satisfy a TxConstraint.
	ErrConstraintViolated = errors.New("constraint violated")

	// ErrTxOutRefNotFound is returned if a referenced Output can not be found.
	ErrTxOutRefNotFound = errors.New("referenced output not found")

	// ErrTxOutRefWrongType is returned if a referenced Output is locked differently than the TxConstraint expects.
	ErrTxOutRefWrongType = errors.New("referenced output has the wrong type")

	// ErrTypedValidatorMissing is returned if own inputs or outputs are required but no typed Validator was provided.
	ErrTypedValidatorMissing = errors.New("typed validator missing")

	// ErrValidatorHashNotFound is returned if the Validator of a script locked Output is not part of the lookups.
	ErrValidatorHashNotFound = errors.New("validator not found")

	// ErrMintingPolicyNotFound is returned if a MintingPolicy is not part of the lookups.
	ErrMintingPolicyNotFound = errors.New("minting policy not found")

	// ErrDatumNotFound is returned if a required Datum is not part of the lookups.
	ErrDatumNotFound = errors.New("datum not found")

	// ErrDatumWrongHash is returned if a Datum does not hash to the DatumHash it is supposed to have.
	ErrDatumWrongHash = errors.New("datum has the wrong hash")

	// ErrAmbiguousRedeemer is returned if different redeemers are required for the same script.
	ErrAmbiguousRedeemer = errors.New("ambiguous redeemer")

	// ErrNoMatchingAlternative is returned if none of the alternatives of a MustSatisfyAnyOf can be resolved.
	ErrNoMatchingAlternative = errors.New("no matching alternative")
)
