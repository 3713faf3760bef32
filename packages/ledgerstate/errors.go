package ledgerstate

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrNoInputs is returned if a Transaction does not consume any Outputs.
	ErrNoInputs = errors.New("transaction has no inputs")

	// ErrTxOutRefNotFound is returned if a consumed Output is not part of the UTXO set.
	ErrTxOutRefNotFound = errors.New("referenced output not found")

	// ErrDuplicateTxIn is returned if a Transaction consumes the same Output more than once.
	ErrDuplicateTxIn = errors.New("duplicate input")

	// ErrInvalidOutput is returned if a created Output holds a negative or an empty Value.
	ErrInvalidOutput = errors.New("invalid output")

	// ErrEncodingLimitExceeded is returned if a Transaction can not be represented by the fixed width length fields of
	// its canonical encoding.
	ErrEncodingLimitExceeded = errors.New("encoding limit exceeded")

	// ErrCurrentSlotOutOfRange is returned if the current Slot lies outside of the ValidityInterval.
	ErrCurrentSlotOutOfRange = errors.New("current slot out of range")

	// ErrFeeTooSmall is returned if the fee is below the minimum defined by the FeePolicy.
	ErrFeeTooSmall = errors.New("fee too small")

	// ErrValueNotPreserved is returned if inputs plus minted Value do not equal outputs plus fee.
	ErrValueNotPreserved = errors.New("value not preserved")

	// ErrValueOverflow is returned if the fee or a sum of quantities does not fit into a signed 64 bit integer.
	ErrValueOverflow = errors.New("value overflow")

	// ErrSignatureMissing is returned if a required signature is missing or invalid.
	ErrSignatureMissing = errors.New("signature missing")

	// ErrWitnessMismatch is returned if the kind of Witness does not fit the Address of the spent Output.
	ErrWitnessMismatch = errors.New("witness does not match spent output")

	// ErrInvalidScriptHash is returned if the provided Validator does not hash to the ScriptAddress.
	ErrInvalidScriptHash = errors.New("invalid script hash")

	// ErrInvalidDatumHash is returned if the provided Datum does not hash to the DatumHash of the spent Output.
	ErrInvalidDatumHash = errors.New("invalid datum hash")

	// ErrScriptFailure is returned if a Validator rejects the spending of an Output.
	ErrScriptFailure = errors.New("script failure")

	// ErrMintingPolicyFailure is returned if a minted CurrencySymbol has no matching MintingPolicy or the policy
	// rejects the Transaction.
	ErrMintingPolicyFailure = errors.New("minting policy failure")
)

// region ScriptError //////////////////////////////////////////////////////////////////////////////////////////////////

// ScriptError carries the reason why a Validator or MintingPolicy rejected a Transaction. It unwraps to
// ErrScriptFailure or ErrMintingPolicyFailure.
type ScriptError struct {
	Purpose ScriptPurpose
	Reason  string

	kind error
}

func newScriptError(kind error, purpose ScriptPurpose, reason string) *ScriptError {
	return &ScriptError{
		Purpose: purpose,
		Reason:  reason,
		kind:    kind,
	}
}

// Error returns the message of the error.
func (s *ScriptError) Error() string {
	return s.kind.Error() + ": " + s.Reason
}

// Unwrap returns the sentinel error that classifies the ScriptError.
func (s *ScriptError) Unwrap() error {
	return s.kind
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ErrorCategory ////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// UnknownErrorCategory is returned for errors that are not produced by the validation.
	UnknownErrorCategory ErrorCategory = iota

	// StructuralErrorCategory groups errors about the shape of a Transaction and its references.
	StructuralErrorCategory

	// TemporalErrorCategory groups errors about the ValidityInterval.
	TemporalErrorCategory

	// AuthorizationErrorCategory groups errors about signatures and witnesses.
	AuthorizationErrorCategory

	// ScriptErrorCategory groups rejections of Validators and MintingPolicies.
	ScriptErrorCategory

	// ConservationErrorCategory groups errors about fees and the balance of a Transaction.
	ConservationErrorCategory
)

// ErrorCategory classifies the errors of the validation.
type ErrorCategory uint8

// String returns a human readable representation of the ErrorCategory.
func (e ErrorCategory) String() string {
	return [...]string{
		"UnknownError",
		"StructuralError",
		"TemporalError",
		"AuthorizationError",
		"ScriptError",
		"ConservationError",
	}[e]
}

var errorCategories = []struct {
	sentinel error
	category ErrorCategory
}{
	{ErrNoInputs, StructuralErrorCategory},
	{ErrTxOutRefNotFound, StructuralErrorCategory},
	{ErrDuplicateTxIn, StructuralErrorCategory},
	{ErrInvalidOutput, StructuralErrorCategory},
	{ErrEncodingLimitExceeded, StructuralErrorCategory},
	{ErrCurrentSlotOutOfRange, TemporalErrorCategory},
	{ErrSignatureMissing, AuthorizationErrorCategory},
	{ErrWitnessMismatch, AuthorizationErrorCategory},
	{ErrInvalidScriptHash, AuthorizationErrorCategory},
	{ErrInvalidDatumHash, AuthorizationErrorCategory},
	{ErrScriptFailure, ScriptErrorCategory},
	{ErrMintingPolicyFailure, ScriptErrorCategory},
	{ErrFeeTooSmall, ConservationErrorCategory},
	{ErrValueNotPreserved, ConservationErrorCategory},
	{ErrValueOverflow, ConservationErrorCategory},
}

// CategoryOf returns the ErrorCategory of an error that was returned by the validation.
func CategoryOf(err error) ErrorCategory {
	for _, entry := range errorCategories {
		if errors.Is(err, entry.sentinel) {
			return entry.category
		}
	}

	return UnknownErrorCategory
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
