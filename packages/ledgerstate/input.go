package ledgerstate

import (
	"sort"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

// region WitnessType //////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// PubKeyWitnessType represents a Witness that is satisfied by a signature of the owner of an ED25519Address.
	PubKeyWitnessType WitnessType = iota

	// ScriptWitnessType represents a Witness that provides the Validator, Datum and Redeemer of a script Output.
	ScriptWitnessType
)

// WitnessType represents the type of a Witness.
type WitnessType uint8

// String returns a human readable representation of the WitnessType.
func (w WitnessType) String() string {
	return [...]string{
		"PubKeyWitnessType",
		"ScriptWitnessType",
	}[w]
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Witness //////////////////////////////////////////////////////////////////////////////////////////////////////

// Witness is the interface for the data that is required to unlock a spent Output.
type Witness interface {
	// Type returns the WitnessType of the Witness.
	Type() WitnessType

	// Bytes returns a marshaled version of the Witness.
	Bytes() []byte

	// String returns a human readable version of the Witness.
	String() string
}

// WitnessFromMarshalUtil unmarshals a Witness using a MarshalUtil (for easier unmarshaling).
func WitnessFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (witness Witness, err error) {
	witnessType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse WitnessType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	switch WitnessType(witnessType) {
	case PubKeyWitnessType:
		return &PubKeyWitness{}, nil
	case ScriptWitnessType:
		return ScriptWitnessFromMarshalUtil(marshalUtil)
	default:
		err = errors.Errorf("unsupported WitnessType (%X): %w", witnessType, cerrors.ErrParseBytesFailed)
		return
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region PubKeyWitness ////////////////////////////////////////////////////////////////////////////////////////////////

// PubKeyWitness marks an Input that spends an Output at an ED25519Address. The signature itself is part of the
// witness set of the Transaction.
type PubKeyWitness struct{}

// Type returns the WitnessType of the Witness.
func (p *PubKeyWitness) Type() WitnessType {
	return PubKeyWitnessType
}

// Bytes returns a marshaled version of the Witness.
func (p *PubKeyWitness) Bytes() []byte {
	return []byte{byte(PubKeyWitnessType)}
}

// String returns a human readable version of the Witness.
func (p *PubKeyWitness) String() string {
	return stringify.Struct("PubKeyWitness")
}

// code contract (make sure the struct implements all required methods)
var _ Witness = &PubKeyWitness{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ScriptWitness ////////////////////////////////////////////////////////////////////////////////////////////////

// ScriptWitness provides everything that is needed to run the Validator of a script Output.
type ScriptWitness struct {
	validator *Validator
	datum     Datum
	redeemer  Redeemer
}

// NewScriptWitness is the constructor of the ScriptWitness.
func NewScriptWitness(validator *Validator, datum Datum, redeemer Redeemer) *ScriptWitness {
	return &ScriptWitness{
		validator: validator,
		datum:     datum,
		redeemer:  redeemer,
	}
}

// ScriptWitnessFromMarshalUtil unmarshals a ScriptWitness (without its type byte) using a MarshalUtil.
func ScriptWitnessFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (witness *ScriptWitness, err error) {
	script, err := ScriptFromMarshalUtil(marshalUtil)
	if err != nil {
		err = errors.Errorf("failed to parse Validator: %w", err)
		return
	}
	datum, err := readLengthPrefixedBytes(marshalUtil)
	if err != nil {
		err = errors.Errorf("failed to parse Datum: %w", err)
		return
	}
	redeemer, err := readLengthPrefixedBytes(marshalUtil)
	if err != nil {
		err = errors.Errorf("failed to parse Redeemer: %w", err)
		return
	}

	return NewScriptWitness(NewValidator(script), datum, redeemer), nil
}

// Validator returns the Validator that locks the spent Output.
func (s *ScriptWitness) Validator() *Validator {
	return s.validator
}

// Datum returns the Datum whose hash is stored in the spent Output.
func (s *ScriptWitness) Datum() Datum {
	return s.datum
}

// Redeemer returns the Redeemer that is passed to the Validator.
func (s *ScriptWitness) Redeemer() Redeemer {
	return s.redeemer
}

// Type returns the WitnessType of the Witness.
func (s *ScriptWitness) Type() WitnessType {
	return ScriptWitnessType
}

// Bytes returns a marshaled version of the Witness.
func (s *ScriptWitness) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteByte(byte(ScriptWitnessType))
	writeLengthPrefixedBytes(marshalUtil, s.validator.Script())
	writeLengthPrefixedBytes(marshalUtil, s.datum)
	writeLengthPrefixedBytes(marshalUtil, s.redeemer)

	return marshalUtil.Bytes()
}

// String returns a human readable version of the Witness.
func (s *ScriptWitness) String() string {
	return stringify.Struct("ScriptWitness",
		stringify.StructField("validator", s.validator),
		stringify.StructField("datumHash", s.datum.Hash()),
		stringify.StructField("redeemer", []byte(s.redeemer)),
	)
}

// code contract (make sure the struct implements all required methods)
var _ Witness = &ScriptWitness{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region MintingWitness ///////////////////////////////////////////////////////////////////////////////////////////////

// MintingWitness provides the MintingPolicy and the Redeemer for a CurrencySymbol that is minted or burned.
type MintingWitness struct {
	policy   *MintingPolicy
	redeemer Redeemer
}

// NewMintingWitness is the constructor of the MintingWitness.
func NewMintingWitness(policy *MintingPolicy, redeemer Redeemer) *MintingWitness {
	return &MintingWitness{
		policy:   policy,
		redeemer: redeemer,
	}
}

// MintingWitnessFromMarshalUtil unmarshals a MintingWitness using a MarshalUtil (for easier unmarshaling).
func MintingWitnessFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (witness *MintingWitness, err error) {
	script, err := ScriptFromMarshalUtil(marshalUtil)
	if err != nil {
		err = errors.Errorf("failed to parse MintingPolicy: %w", err)
		return
	}
	redeemer, err := readLengthPrefixedBytes(marshalUtil)
	if err != nil {
		err = errors.Errorf("failed to parse Redeemer: %w", err)
		return
	}

	return NewMintingWitness(NewMintingPolicy(script), redeemer), nil
}

// Policy returns the MintingPolicy.
func (m *MintingWitness) Policy() *MintingPolicy {
	return m.policy
}

// Redeemer returns the Redeemer that is passed to the MintingPolicy.
func (m *MintingWitness) Redeemer() Redeemer {
	return m.redeemer
}

// Bytes returns a marshaled version of the MintingWitness.
func (m *MintingWitness) Bytes() []byte {
	marshalUtil := marshalutil.New()
	writeLengthPrefixedBytes(marshalUtil, m.policy.Script())
	writeLengthPrefixedBytes(marshalUtil, m.redeemer)

	return marshalUtil.Bytes()
}

// String returns a human readable version of the MintingWitness.
func (m *MintingWitness) String() string {
	return stringify.Struct("MintingWitness",
		stringify.StructField("policy", m.policy),
		stringify.StructField("redeemer", []byte(m.redeemer)),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Input ////////////////////////////////////////////////////////////////////////////////////////////////////////

// Input references the Output that is consumed by a Transaction together with the Witness that unlocks it.
type Input struct {
	referencedOutputID OutputID
	witness            Witness
}

// NewPubKeyInput creates an Input that spends an Output at an ED25519Address.
func NewPubKeyInput(referencedOutputID OutputID) *Input {
	return &Input{
		referencedOutputID: referencedOutputID,
		witness:            &PubKeyWitness{},
	}
}

// NewScriptInput creates an Input that spends an Output at a ScriptAddress.
func NewScriptInput(referencedOutputID OutputID, witness *ScriptWitness) *Input {
	return &Input{
		referencedOutputID: referencedOutputID,
		witness:            witness,
	}
}

// InputFromMarshalUtil unmarshals an Input (OutputID followed by its Witness) using a MarshalUtil.
func InputFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (input *Input, err error) {
	input = &Input{}
	if input.referencedOutputID, err = OutputIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse referenced OutputID: %w", err)
		return
	}
	if input.witness, err = WitnessFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Witness: %w", err)
		return
	}

	return
}

// ReferencedOutputID returns the OutputID of the consumed Output.
func (i *Input) ReferencedOutputID() OutputID {
	return i.referencedOutputID
}

// Witness returns the Witness that unlocks the consumed Output.
func (i *Input) Witness() Witness {
	return i.witness
}

// Bytes returns a marshaled version of the Input including its Witness.
func (i *Input) Bytes() []byte {
	return marshalutil.New().
		WriteBytes(i.referencedOutputID.Bytes()).
		WriteBytes(i.witness.Bytes()).
		Bytes()
}

// String returns a human readable version of the Input.
func (i *Input) String() string {
	return stringify.Struct("Input",
		stringify.StructField("referencedOutputID", i.referencedOutputID.Base58()),
		stringify.StructField("witness", i.witness),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Inputs ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Inputs represents a collection of Inputs ordered by their referenced OutputIDs. Duplicates are kept, so that the
// validation can reject them.
type Inputs []*Input

// NewInputs returns the canonically ordered collection of the given Inputs.
func NewInputs(optionalInputs ...*Input) (inputs Inputs) {
	inputs = make(Inputs, len(optionalInputs))
	copy(inputs, optionalInputs)
	inputs.sort()

	return
}

// OutputIDs returns the referenced OutputIDs in canonical order.
func (i Inputs) OutputIDs() (outputIDs []OutputID) {
	outputIDs = make([]OutputID, len(i))
	for index, input := range i {
		outputIDs[index] = input.ReferencedOutputID()
	}

	return
}

// String returns a human readable version of the Inputs.
func (i Inputs) String() string {
	structBuilder := stringify.StructBuilder("Inputs")
	for index, input := range i {
		structBuilder.AddField(stringify.StructField(strconv.Itoa(index), input))
	}

	return structBuilder.String()
}

func (i Inputs) sort() {
	sort.SliceStable(i, func(a, b int) bool {
		return i[a].referencedOutputID.Compare(i[b].referencedOutputID) < 0
	})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
