package constraints

import (
	"strconv"

	"github.com/iotaledger/hive.go/stringify"

	"github.com/ledgersim/ledgersim/packages/ledgerstate"
)

// region ConstraintType ///////////////////////////////////////////////////////////////////////////////////////////////

// ConstraintType represents the kind of a TxConstraint.
type ConstraintType uint8

const (
	// MustIncludeDatumType is the type of MustIncludeDatum.
	MustIncludeDatumType ConstraintType = iota

	// MustValidateInType is the type of MustValidateIn.
	MustValidateInType

	// MustBeSignedByType is the type of MustBeSignedBy.
	MustBeSignedByType

	// MustSpendAtLeastType is the type of MustSpendAtLeast.
	MustSpendAtLeastType

	// MustProduceAtLeastType is the type of MustProduceAtLeast.
	MustProduceAtLeastType

	// MustSpendPubKeyOutputType is the type of MustSpendPubKeyOutput.
	MustSpendPubKeyOutputType

	// MustSpendScriptOutputType is the type of MustSpendScriptOutput.
	MustSpendScriptOutputType

	// MustMintValueType is the type of MustMintValue.
	MustMintValueType

	// MustPayToPubKeyType is the type of MustPayToPubKey.
	MustPayToPubKeyType

	// MustPayToOtherScriptType is the type of MustPayToOtherScript.
	MustPayToOtherScriptType

	// MustHashDatumType is the type of MustHashDatum.
	MustHashDatumType

	// MustSatisfyAnyOfType is the type of MustSatisfyAnyOf.
	MustSatisfyAnyOfType
)

// String returns a human readable version of the ConstraintType.
func (c ConstraintType) String() string {
	names := [...]string{
		"MustIncludeDatum",
		"MustValidateIn",
		"MustBeSignedBy",
		"MustSpendAtLeast",
		"MustProduceAtLeast",
		"MustSpendPubKeyOutput",
		"MustSpendScriptOutput",
		"MustMintValue",
		"MustPayToPubKey",
		"MustPayToOtherScript",
		"MustHashDatum",
		"MustSatisfyAnyOf",
	}
	if int(c) >= len(names) {
		return "ConstraintType(" + strconv.Itoa(int(c)) + ")"
	}

	return names[c]
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TxConstraint /////////////////////////////////////////////////////////////////////////////////////////////////

// TxConstraint is a single requirement on a Transaction. The set of implementations is closed: every TxConstraint is
// one of the Must* types of this package.
type TxConstraint interface {
	// Type returns the ConstraintType of the TxConstraint.
	Type() ConstraintType

	// String returns a human readable version of the TxConstraint.
	String() string
}

// MustIncludeDatum requires the Datum to be part of the Transaction.
type MustIncludeDatum struct {
	Datum ledgerstate.Datum
}

// Type returns the ConstraintType of the TxConstraint.
func (m MustIncludeDatum) Type() ConstraintType { return MustIncludeDatumType }

func (m MustIncludeDatum) String() string {
	return stringify.Struct("MustIncludeDatum", stringify.StructField("datumHash", m.Datum.Hash()))
}

// MustValidateIn requires the ValidityInterval of the Transaction to be contained in Interval.
type MustValidateIn struct {
	Interval ledgerstate.ValidityInterval
}

// Type returns the ConstraintType of the TxConstraint.
func (m MustValidateIn) Type() ConstraintType { return MustValidateInType }

func (m MustValidateIn) String() string {
	return stringify.Struct("MustValidateIn", stringify.StructField("interval", m.Interval))
}

// MustBeSignedBy requires a signature of the key with the given PubKeyHash.
type MustBeSignedBy struct {
	PubKeyHash ledgerstate.PubKeyHash
}

// Type returns the ConstraintType of the TxConstraint.
func (m MustBeSignedBy) Type() ConstraintType { return MustBeSignedByType }

func (m MustBeSignedBy) String() string {
	return stringify.Struct("MustBeSignedBy", stringify.StructField("pubKeyHash", m.PubKeyHash))
}

// MustSpendAtLeast requires the consumed Outputs to hold at least the Value.
type MustSpendAtLeast struct {
	Value ledgerstate.Value
}

// Type returns the ConstraintType of the TxConstraint.
func (m MustSpendAtLeast) Type() ConstraintType { return MustSpendAtLeastType }

func (m MustSpendAtLeast) String() string {
	return stringify.Struct("MustSpendAtLeast", stringify.StructField("value", m.Value))
}

// MustProduceAtLeast requires the created Outputs to hold at least the Value.
type MustProduceAtLeast struct {
	Value ledgerstate.Value
}

// Type returns the ConstraintType of the TxConstraint.
func (m MustProduceAtLeast) Type() ConstraintType { return MustProduceAtLeastType }

func (m MustProduceAtLeast) String() string {
	return stringify.Struct("MustProduceAtLeast", stringify.StructField("value", m.Value))
}

// MustSpendPubKeyOutput requires the Transaction to consume the public key locked Output.
type MustSpendPubKeyOutput struct {
	OutputID ledgerstate.OutputID
}

// Type returns the ConstraintType of the TxConstraint.
func (m MustSpendPubKeyOutput) Type() ConstraintType { return MustSpendPubKeyOutputType }

func (m MustSpendPubKeyOutput) String() string {
	return stringify.Struct("MustSpendPubKeyOutput", stringify.StructField("outputID", m.OutputID))
}

// MustSpendScriptOutput requires the Transaction to consume the script locked Output with the given Redeemer.
type MustSpendScriptOutput struct {
	OutputID ledgerstate.OutputID
	Redeemer ledgerstate.Redeemer
}

// Type returns the ConstraintType of the TxConstraint.
func (m MustSpendScriptOutput) Type() ConstraintType { return MustSpendScriptOutputType }

func (m MustSpendScriptOutput) String() string {
	return stringify.Struct("MustSpendScriptOutput",
		stringify.StructField("outputID", m.OutputID),
		stringify.StructField("redeemer", m.Redeemer),
	)
}

// MustMintValue requires the Transaction to mint (or burn if negative) the given quantity of the token of the
// MintingPolicy.
type MustMintValue struct {
	PolicyHash ledgerstate.MintingPolicyHash
	Redeemer   ledgerstate.Redeemer
	TokenName  ledgerstate.TokenName
	Quantity   int64
}

// Type returns the ConstraintType of the TxConstraint.
func (m MustMintValue) Type() ConstraintType { return MustMintValueType }

func (m MustMintValue) String() string {
	return stringify.Struct("MustMintValue",
		stringify.StructField("policyHash", m.PolicyHash),
		stringify.StructField("tokenName", string(m.TokenName)),
		stringify.StructField("quantity", m.Quantity),
	)
}

// MustPayToPubKey requires an Output with at least the Value at the address of the key.
type MustPayToPubKey struct {
	PubKeyHash ledgerstate.PubKeyHash
	Value      ledgerstate.Value
}

// Type returns the ConstraintType of the TxConstraint.
func (m MustPayToPubKey) Type() ConstraintType { return MustPayToPubKeyType }

func (m MustPayToPubKey) String() string {
	return stringify.Struct("MustPayToPubKey",
		stringify.StructField("pubKeyHash", m.PubKeyHash),
		stringify.StructField("value", m.Value),
	)
}

// MustPayToOtherScript requires an Output with at least the Value and the Datum at the address of a Validator that is
// not the one that checks the constraints.
type MustPayToOtherScript struct {
	ValidatorHash ledgerstate.ValidatorHash
	Datum         ledgerstate.Datum
	Value         ledgerstate.Value
}

// Type returns the ConstraintType of the TxConstraint.
func (m MustPayToOtherScript) Type() ConstraintType { return MustPayToOtherScriptType }

func (m MustPayToOtherScript) String() string {
	return stringify.Struct("MustPayToOtherScript",
		stringify.StructField("validatorHash", m.ValidatorHash),
		stringify.StructField("datumHash", m.Datum.Hash()),
		stringify.StructField("value", m.Value),
	)
}

// MustHashDatum requires the Datum with the given DatumHash to be part of the Transaction.
type MustHashDatum struct {
	DatumHash ledgerstate.DatumHash
	Datum     ledgerstate.Datum
}

// Type returns the ConstraintType of the TxConstraint.
func (m MustHashDatum) Type() ConstraintType { return MustHashDatumType }

func (m MustHashDatum) String() string {
	return stringify.Struct("MustHashDatum", stringify.StructField("datumHash", m.DatumHash))
}

// MustSatisfyAnyOf requires at least one of the alternatives to be satisfied completely.
type MustSatisfyAnyOf struct {
	Alternatives [][]TxConstraint
}

// Type returns the ConstraintType of the TxConstraint.
func (m MustSatisfyAnyOf) Type() ConstraintType { return MustSatisfyAnyOfType }

func (m MustSatisfyAnyOf) String() string {
	structBuilder := stringify.StructBuilder("MustSatisfyAnyOf")
	for i, alternative := range m.Alternatives {
		structBuilder.AddField(stringify.StructField(strconv.Itoa(i), alternative))
	}

	return structBuilder.String()
}

// code contract (make sure the types implement all required methods)
var (
	_ TxConstraint = MustIncludeDatum{}
	_ TxConstraint = MustValidateIn{}
	_ TxConstraint = MustBeSignedBy{}
	_ TxConstraint = MustSpendAtLeast{}
	_ TxConstraint = MustProduceAtLeast{}
	_ TxConstraint = MustSpendPubKeyOutput{}
	_ TxConstraint = MustSpendScriptOutput{}
	_ TxConstraint = MustMintValue{}
	_ TxConstraint = MustPayToPubKey{}
	_ TxConstraint = MustPayToOtherScript{}
	_ TxConstraint = MustHashDatum{}
	_ TxConstraint = MustSatisfyAnyOf{}
)

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region InputConstraint / OutputConstraint ///////////////////////////////////////////////////////////////////////////

// InputConstraint requires an Output of the own Validator to be spent with a typed redeemer.
type InputConstraint[I any] struct {
	Redeemer I
	OutputID ledgerstate.OutputID
}

// OutputConstraint requires an Output of the own Validator with a typed datum and at least the given Value.
type OutputConstraint[O any] struct {
	Datum O
	Value ledgerstate.Value
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TxConstraints ////////////////////////////////////////////////////////////////////////////////////////////////

// TxConstraints is an ordered collection of TxConstraints together with the typed constraints on the inputs (redeemer
// type I) and outputs (datum type O) of the own Validator.
type TxConstraints[I, O any] struct {
	Constraints []TxConstraint
	OwnInputs   []InputConstraint[I]
	OwnOutputs  []OutputConstraint[O]
}

// New returns TxConstraints that consist of the given TxConstraints. Without arguments it returns the empty
// TxConstraints that are satisfied by every Transaction.
func New[I, O any](constraints ...TxConstraint) *TxConstraints[I, O] {
	return &TxConstraints[I, O]{
		Constraints: concat[TxConstraint](nil, constraints),
	}
}

// MustSpendOwnOutput returns TxConstraints that require spending the Output of the own Validator with the redeemer.
func MustSpendOwnOutput[I, O any](outputID ledgerstate.OutputID, redeemer I) *TxConstraints[I, O] {
	return &TxConstraints[I, O]{
		OwnInputs: []InputConstraint[I]{{Redeemer: redeemer, OutputID: outputID}},
	}
}

// MustPayToTheScript returns TxConstraints that require an Output of the own Validator with the datum and Value.
func MustPayToTheScript[I, O any](datum O, value ledgerstate.Value) *TxConstraints[I, O] {
	return &TxConstraints[I, O]{
		OwnOutputs: []OutputConstraint[O]{{Datum: datum, Value: value}},
	}
}

// And returns the TxConstraints that require both the constraints of the receiver and of other (in that order).
func (t *TxConstraints[I, O]) And(other *TxConstraints[I, O]) *TxConstraints[I, O] {
	return &TxConstraints[I, O]{
		Constraints: concat(t.Constraints, other.Constraints),
		OwnInputs:   concat(t.OwnInputs, other.OwnInputs),
		OwnOutputs:  concat(t.OwnOutputs, other.OwnOutputs),
	}
}

// With returns a copy of the TxConstraints with the additional TxConstraints appended.
func (t *TxConstraints[I, O]) With(constraints ...TxConstraint) *TxConstraints[I, O] {
	return t.And(New[I, O](constraints...))
}

// IsEmpty returns true if the TxConstraints do not require anything.
func (t *TxConstraints[I, O]) IsEmpty() bool {
	return len(t.Constraints) == 0 && len(t.OwnInputs) == 0 && len(t.OwnOutputs) == 0
}

// String returns a human readable version of the TxConstraints.
func (t *TxConstraints[I, O]) String() string {
	return stringify.Struct("TxConstraints",
		stringify.StructField("constraints", t.Constraints),
		stringify.StructField("ownInputs", len(t.OwnInputs)),
		stringify.StructField("ownOutputs", len(t.OwnOutputs)),
	)
}

func concat[T any](a, b []T) []T {
	if len(a)+len(b) == 0 {
		return nil
	}

	return append(append(make([]T, 0, len(a)+len(b)), a...), b...)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
