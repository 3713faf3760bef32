package ledgerstate

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// region ScriptHash ///////////////////////////////////////////////////////////////////////////////////////////////////

// ScriptHashLength contains the amount of bytes of a ScriptHash.
const ScriptHashLength = 32

// ScriptHash is the blake2b-256 digest of a compiled Script.
type ScriptHash [ScriptHashLength]byte

// ValidatorHash identifies a Validator.
type ValidatorHash = ScriptHash

// MintingPolicyHash identifies a MintingPolicy.
type MintingPolicyHash = ScriptHash

// ScriptHashFromMarshalUtil unmarshals a ScriptHash using a MarshalUtil (for easier unmarshaling).
func ScriptHashFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (scriptHash ScriptHash, err error) {
	hashBytes, err := marshalUtil.ReadBytes(ScriptHashLength)
	if err != nil {
		err = errors.Errorf("failed to parse ScriptHash (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(scriptHash[:], hashBytes)

	return
}

// Bytes returns a marshaled version of the ScriptHash.
func (s ScriptHash) Bytes() []byte {
	return s[:]
}

// Base58 returns a base58 encoded version of the ScriptHash.
func (s ScriptHash) Base58() string {
	return base58.Encode(s[:])
}

// String returns a human readable version of the ScriptHash.
func (s ScriptHash) String() string {
	return "ScriptHash(" + s.Base58() + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Script ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Script is the compiled, opaque representation of an on-chain program.
type Script []byte

// Hash returns the ScriptHash of the Script.
func (s Script) Hash() ScriptHash {
	return blake2b.Sum256(s)
}

// ScriptFromMarshalUtil unmarshals a length prefixed Script using a MarshalUtil (for easier unmarshaling).
func ScriptFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (script Script, err error) {
	scriptBytes, err := readLengthPrefixedBytes(marshalUtil)
	if err != nil {
		err = errors.Errorf("failed to parse Script: %w", err)
		return
	}

	return scriptBytes, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Validator ////////////////////////////////////////////////////////////////////////////////////////////////////

// Validator is a Script that guards the Outputs locked at its ScriptAddress.
type Validator struct {
	script Script
	hash   ValidatorHash
}

// NewValidator creates a Validator from the given compiled Script.
func NewValidator(script Script) *Validator {
	return &Validator{
		script: script,
		hash:   script.Hash(),
	}
}

// Script returns the compiled Script of the Validator.
func (v *Validator) Script() Script {
	return v.script
}

// Hash returns the ValidatorHash.
func (v *Validator) Hash() ValidatorHash {
	return v.hash
}

// Address returns the ScriptAddress that is locked by the Validator.
func (v *Validator) Address() *ScriptAddress {
	return NewScriptAddress(v.hash)
}

// String returns a human readable version of the Validator.
func (v *Validator) String() string {
	return stringify.Struct("Validator",
		stringify.StructField("hash", v.hash),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region MintingPolicy ////////////////////////////////////////////////////////////////////////////////////////////////

// MintingPolicy is a Script that controls the creation and destruction of the assets of its CurrencySymbol.
type MintingPolicy struct {
	script Script
	hash   MintingPolicyHash
}

// NewMintingPolicy creates a MintingPolicy from the given compiled Script.
func NewMintingPolicy(script Script) *MintingPolicy {
	return &MintingPolicy{
		script: script,
		hash:   script.Hash(),
	}
}

// Script returns the compiled Script of the MintingPolicy.
func (m *MintingPolicy) Script() Script {
	return m.script
}

// Hash returns the MintingPolicyHash.
func (m *MintingPolicy) Hash() MintingPolicyHash {
	return m.hash
}

// CurrencySymbol returns the CurrencySymbol of the assets controlled by the MintingPolicy.
func (m *MintingPolicy) CurrencySymbol() CurrencySymbol {
	return CurrencySymbol(m.hash)
}

// String returns a human readable version of the MintingPolicy.
func (m *MintingPolicy) String() string {
	return stringify.Struct("MintingPolicy",
		stringify.StructField("currencySymbol", m.CurrencySymbol()),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Datum ////////////////////////////////////////////////////////////////////////////////////////////////////////

// DatumHashLength contains the amount of bytes of a DatumHash.
const DatumHashLength = 32

// Datum is the opaque, encoded state that is attached to a script Output.
type Datum []byte

// Hash returns the DatumHash of the Datum.
func (d Datum) Hash() DatumHash {
	return blake2b.Sum256(d)
}

// DatumHash is the blake2b-256 digest of a Datum.
type DatumHash [DatumHashLength]byte

// DatumHashFromMarshalUtil unmarshals a DatumHash using a MarshalUtil (for easier unmarshaling).
func DatumHashFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (datumHash DatumHash, err error) {
	hashBytes, err := marshalUtil.ReadBytes(DatumHashLength)
	if err != nil {
		err = errors.Errorf("failed to parse DatumHash (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(datumHash[:], hashBytes)

	return
}

// Bytes returns a marshaled version of the DatumHash.
func (d DatumHash) Bytes() []byte {
	return d[:]
}

// Base58 returns a base58 encoded version of the DatumHash.
func (d DatumHash) Base58() string {
	return base58.Encode(d[:])
}

// String returns a human readable version of the DatumHash.
func (d DatumHash) String() string {
	return "DatumHash(" + d.Base58() + ")"
}

// Redeemer is the opaque, encoded argument that a transaction passes to a Script.
type Redeemer []byte

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ScriptEvaluator //////////////////////////////////////////////////////////////////////////////////////////////

// ScriptEvaluator runs a compiled Script. A nil error means that the Script accepted the arguments, any other error
// rejects them and its message is used as the reason.
type ScriptEvaluator interface {
	EvaluateScript(script Script, arguments *ScriptArguments) error
}

// ScriptEvaluatorFunc is an adapter that allows to use ordinary functions as a ScriptEvaluator.
type ScriptEvaluatorFunc func(script Script, arguments *ScriptArguments) error

// EvaluateScript calls f(script, arguments).
func (f ScriptEvaluatorFunc) EvaluateScript(script Script, arguments *ScriptArguments) error {
	return f(script, arguments)
}

// ScriptArguments contains the arguments that are passed to a Script.
type ScriptArguments struct {
	// Datum is only set when a Validator is run for a spent Output.
	Datum    Datum
	Redeemer Redeemer
	Context  *ScriptContext
}

// NewSpendingArguments returns the arguments of a Validator.
func NewSpendingArguments(datum Datum, redeemer Redeemer, context *ScriptContext) *ScriptArguments {
	return &ScriptArguments{
		Datum:    datum,
		Redeemer: redeemer,
		Context:  context,
	}
}

// NewMintingArguments returns the arguments of a MintingPolicy.
func NewMintingArguments(redeemer Redeemer, context *ScriptContext) *ScriptArguments {
	return &ScriptArguments{
		Redeemer: redeemer,
		Context:  context,
	}
}

// IsMinting returns true if the arguments belong to a MintingPolicy.
func (s *ScriptArguments) IsMinting() bool {
	return s.Context != nil && s.Context.Purpose.Type() == MintingPurposeType
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region utility functions ////////////////////////////////////////////////////////////////////////////////////////////

func writeLengthPrefixedBytes(marshalUtil *marshalutil.MarshalUtil, bytes []byte) {
	marshalUtil.WriteUint32(uint32(len(bytes)))
	marshalUtil.WriteBytes(bytes)
}

func readLengthPrefixedBytes(marshalUtil *marshalutil.MarshalUtil) (bytes []byte, err error) {
	length, err := marshalUtil.ReadUint32()
	if err != nil {
		err = errors.Errorf("failed to parse length (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if bytes, err = marshalUtil.ReadBytes(int(length)); err != nil {
		err = errors.Errorf("failed to parse bytes (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	return
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
