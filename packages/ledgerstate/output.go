package ledgerstate

import (
	"bytes"
	"encoding/binary"
	"sort"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/mr-tron/base58"
)

// region OutputID /////////////////////////////////////////////////////////////////////////////////////////////////////

// OutputIDLength contains the amount of bytes that a marshaled version of the OutputID contains.
const OutputIDLength = TransactionIDLength + marshalutil.Uint16Size

// OutputID is the data type that represents the identifier of an Output (which consists of a TransactionID and the
// index of the Output in the Transaction that created it).
type OutputID [OutputIDLength]byte

// EmptyOutputID represents the zero-value of an OutputID.
var EmptyOutputID OutputID

// NewOutputID is the constructor for the OutputID.
func NewOutputID(transactionID TransactionID, outputIndex uint16) (outputID OutputID) {
	copy(outputID[:TransactionIDLength], transactionID.Bytes())
	binary.LittleEndian.PutUint16(outputID[TransactionIDLength:], outputIndex)

	return
}

// OutputIDFromBytes unmarshals an OutputID from a sequence of bytes.
func OutputIDFromBytes(bytes []byte) (outputID OutputID, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if outputID, err = OutputIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse OutputID from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// OutputIDFromBase58 creates an OutputID from a base58 encoded string.
func OutputIDFromBase58(base58String string) (outputID OutputID, err error) {
	bytes, err := base58.Decode(base58String)
	if err != nil {
		err = errors.Errorf("error while decoding base58 encoded OutputID (%v): %w", err, cerrors.ErrBase58DecodeFailed)
		return
	}

	if outputID, _, err = OutputIDFromBytes(bytes); err != nil {
		err = errors.Errorf("failed to parse OutputID from bytes: %w", err)
		return
	}

	return
}

// OutputIDFromMarshalUtil unmarshals an OutputID using a MarshalUtil (for easier unmarshaling).
func OutputIDFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (outputID OutputID, err error) {
	outputIDBytes, err := marshalUtil.ReadBytes(OutputIDLength)
	if err != nil {
		err = errors.Errorf("failed to parse OutputID (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(outputID[:], outputIDBytes)

	return
}

// TransactionID returns the TransactionID part of an OutputID.
func (o OutputID) TransactionID() (transactionID TransactionID) {
	copy(transactionID[:], o[:TransactionIDLength])

	return
}

// OutputIndex returns the Output index part of an OutputID.
func (o OutputID) OutputIndex() uint16 {
	return binary.LittleEndian.Uint16(o[TransactionIDLength:])
}

// Compare imposes the canonical ordering on OutputIDs (TransactionID first, OutputIndex second).
func (o OutputID) Compare(other OutputID) int {
	if result := bytes.Compare(o[:TransactionIDLength], other[:TransactionIDLength]); result != 0 {
		return result
	}

	switch thisIndex, otherIndex := o.OutputIndex(), other.OutputIndex(); {
	case thisIndex < otherIndex:
		return -1
	case thisIndex > otherIndex:
		return 1
	default:
		return 0
	}
}

// Bytes marshals the OutputID into a sequence of bytes.
func (o OutputID) Bytes() []byte {
	return o[:]
}

// Base58 returns a base58 encoded version of the OutputID.
func (o OutputID) Base58() string {
	return base58.Encode(o[:])
}

// String creates a human readable version of the OutputID.
func (o OutputID) String() string {
	return stringify.Struct("OutputID",
		stringify.StructField("transactionID", o.TransactionID()),
		stringify.StructField("outputIndex", o.OutputIndex()),
	)
}

// SortOutputIDs sorts the given OutputIDs in place using the canonical ordering.
func SortOutputIDs(outputIDs []OutputID) {
	sort.Slice(outputIDs, func(i, j int) bool {
		return outputIDs[i].Compare(outputIDs[j]) < 0
	})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Output ///////////////////////////////////////////////////////////////////////////////////////////////////////

// Output locks a Value at an Address. Outputs at a ScriptAddress usually carry the hash of the Datum that is passed
// to the Validator when the Output is spent.
type Output struct {
	address   Address
	value     Value
	datumHash *DatumHash
}

// NewOutput creates an Output that locks the Value at the Address.
func NewOutput(address Address, value Value) *Output {
	return &Output{
		address: address,
		value:   value,
	}
}

// NewScriptOutput creates an Output that locks the Value at the Address and commits to the Datum with the given hash.
func NewScriptOutput(address Address, value Value, datumHash DatumHash) *Output {
	return &Output{
		address:   address,
		value:     value,
		datumHash: &datumHash,
	}
}

// OutputFromBytes unmarshals an Output from a sequence of bytes.
func OutputFromBytes(bytes []byte) (output *Output, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if output, err = OutputFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Output from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// OutputFromMarshalUtil unmarshals an Output using a MarshalUtil (for easier unmarshaling).
func OutputFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (output *Output, err error) {
	output = &Output{}
	if output.address, err = AddressFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Address: %w", err)
		return
	}
	if output.value, err = ValueFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Value: %w", err)
		return
	}
	hasDatum, err := marshalUtil.ReadBool()
	if err != nil {
		err = errors.Errorf("failed to parse datum flag (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if hasDatum {
		datumHash, datumHashErr := DatumHashFromMarshalUtil(marshalUtil)
		if datumHashErr != nil {
			err = errors.Errorf("failed to parse DatumHash: %w", datumHashErr)
			return
		}
		output.datumHash = &datumHash
	}

	return
}

// Address returns the Address that the Output is locked at.
func (o *Output) Address() Address {
	return o.address
}

// Value returns the Value that is locked in the Output.
func (o *Output) Value() Value {
	return o.value
}

// DatumHash returns the hash of the Datum of the Output and a flag that indicates if it is set.
func (o *Output) DatumHash() (datumHash DatumHash, exists bool) {
	if o.datumHash == nil {
		return
	}

	return *o.datumHash, true
}

// IsScriptOutput returns true if the Output is locked by a Validator.
func (o *Output) IsScriptOutput() bool {
	return o.address.Type() == ScriptAddressType
}

// Equals returns true if both Outputs have the same canonical encoding.
func (o *Output) Equals(other *Output) bool {
	return other != nil && bytes.Equal(o.Bytes(), other.Bytes())
}

// Bytes returns the canonical marshaled version of the Output.
func (o *Output) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteBytes(o.address.Bytes())
	marshalUtil.WriteBytes(o.value.Bytes())
	marshalUtil.WriteBool(o.datumHash != nil)
	if o.datumHash != nil {
		marshalUtil.WriteBytes(o.datumHash.Bytes())
	}

	return marshalUtil.Bytes()
}

// String returns a human readable version of the Output.
func (o *Output) String() string {
	structBuilder := stringify.StructBuilder("Output",
		stringify.StructField("address", o.address),
		stringify.StructField("value", o.value),
	)
	if o.datumHash != nil {
		structBuilder.AddField(stringify.StructField("datumHash", *o.datumHash))
	}

	return structBuilder.String()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Outputs //////////////////////////////////////////////////////////////////////////////////////////////////////

// Outputs represents the ordered list of Outputs of a Transaction.
type Outputs []*Output

// OutputsFromMarshalUtil unmarshals a collection of Outputs using a MarshalUtil (for easier unmarshaling).
func OutputsFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (outputs Outputs, err error) {
	outputsCount, err := marshalUtil.ReadUint16()
	if err != nil {
		err = errors.Errorf("failed to parse outputs count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	outputs = make(Outputs, outputsCount)
	for i := uint16(0); i < outputsCount; i++ {
		if outputs[i], err = OutputFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse Output %d: %w", i, err)
			return
		}
	}

	return
}

// Value returns the sum of the Values of all Outputs.
func (o Outputs) Value() (sum Value) {
	for _, output := range o {
		sum = sum.Add(output.Value())
	}

	return
}

// Bytes returns a marshaled version of the Outputs.
func (o Outputs) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteUint16(uint16(len(o)))
	for _, output := range o {
		marshalUtil.WriteBytes(output.Bytes())
	}

	return marshalUtil.Bytes()
}

// String returns a human readable version of the Outputs.
func (o Outputs) String() string {
	structBuilder := stringify.StructBuilder("Outputs")
	for i, output := range o {
		structBuilder.AddField(stringify.StructField(strconv.Itoa(i), output))
	}

	return structBuilder.String()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region OutputsByID //////////////////////////////////////////////////////////////////////////////////////////////////

// OutputsByID represents a map of Outputs where every Output is stored with its corresponding OutputID as the key.
type OutputsByID map[OutputID]*Output

// IDs returns the OutputIDs in canonical order.
func (o OutputsByID) IDs() (outputIDs []OutputID) {
	outputIDs = make([]OutputID, 0, len(o))
	for outputID := range o {
		outputIDs = append(outputIDs, outputID)
	}
	SortOutputIDs(outputIDs)

	return
}

// Value returns the sum of the Values of all Outputs.
func (o OutputsByID) Value() (sum Value) {
	for _, output := range o {
		sum = sum.Add(output.Value())
	}

	return
}

// Clone creates a shallow copy of the OutputsByID (Outputs are immutable).
func (o OutputsByID) Clone() (clonedOutputs OutputsByID) {
	clonedOutputs = make(OutputsByID, len(o))
	for id, output := range o {
		clonedOutputs[id] = output
	}

	return
}

// String returns a human readable version of the OutputsByID.
func (o OutputsByID) String() string {
	structBuilder := stringify.StructBuilder("OutputsByID")
	for _, id := range o.IDs() {
		structBuilder.AddField(stringify.StructField(id.Base58(), o[id]))
	}

	return structBuilder.String()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region OutputResolver ///////////////////////////////////////////////////////////////////////////////////////////////

// OutputResolver is implemented by every component that can look up unspent Outputs by their OutputID.
type OutputResolver interface {
	Output(outputID OutputID) (output *Output, exists bool)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
