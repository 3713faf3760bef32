package ledgerstate

import (
	"bytes"
	"math"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/mr-tron/base58"
)

// region CurrencySymbol ///////////////////////////////////////////////////////////////////////////////////////////////

// CurrencySymbolLength represents the length of a CurrencySymbol (amount of bytes).
const CurrencySymbolLength = 32

// CurrencySymbol identifies the MintingPolicy that controls the supply of an asset class.
type CurrencySymbol [CurrencySymbolLength]byte

// AdaSymbol is the zero value of the CurrencySymbol and represents the base currency.
var AdaSymbol = CurrencySymbol{}

// CurrencySymbolFromMarshalUtil parses a CurrencySymbol from the given MarshalUtil.
func CurrencySymbolFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (symbol CurrencySymbol, err error) {
	symbolBytes, err := marshalUtil.ReadBytes(CurrencySymbolLength)
	if err != nil {
		err = errors.Errorf("failed to parse CurrencySymbol (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(symbol[:], symbolBytes)

	return
}

// Bytes marshals the CurrencySymbol into a sequence of bytes.
func (c CurrencySymbol) Bytes() []byte {
	return c[:]
}

// Base58 returns a base58 encoded version of the CurrencySymbol.
func (c CurrencySymbol) Base58() string {
	return base58.Encode(c.Bytes())
}

// String creates a human readable string of the CurrencySymbol.
func (c CurrencySymbol) String() string {
	if c == AdaSymbol {
		return "ADA"
	}

	return c.Base58()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region AssetID //////////////////////////////////////////////////////////////////////////////////////////////////////

// TokenName distinguishes different assets that are controlled by the same MintingPolicy.
type TokenName string

// AssetID identifies a single asset class.
type AssetID struct {
	CurrencySymbol CurrencySymbol
	TokenName      TokenName
}

// AdaAssetID is the AssetID of the base currency.
var AdaAssetID = AssetID{CurrencySymbol: AdaSymbol}

// NewAssetID is the constructor of the AssetID.
func NewAssetID(symbol CurrencySymbol, name TokenName) AssetID {
	return AssetID{
		CurrencySymbol: symbol,
		TokenName:      name,
	}
}

// Compare imposes the canonical ordering (CurrencySymbol first, TokenName second) on AssetIDs.
func (a AssetID) Compare(other AssetID) int {
	if result := bytes.Compare(a.CurrencySymbol[:], other.CurrencySymbol[:]); result != 0 {
		return result
	}

	switch {
	case a.TokenName < other.TokenName:
		return -1
	case a.TokenName > other.TokenName:
		return 1
	default:
		return 0
	}
}

// String returns a human readable version of the AssetID.
func (a AssetID) String() string {
	if a.TokenName == "" {
		return a.CurrencySymbol.String()
	}

	return a.CurrencySymbol.String() + "." + string(a.TokenName)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Value ////////////////////////////////////////////////////////////////////////////////////////////////////////

// Value is an immutable collection of signed quantities keyed by AssetID. Zero quantities are never stored, so two
// Values are equal if and only if they contain the same non-zero entries.
type Value struct {
	quantities map[AssetID]int64
}

// NewValue creates a Value from the given quantities (entries with a quantity of zero are dropped).
func NewValue(quantities map[AssetID]int64) Value {
	pruned := make(map[AssetID]int64, len(quantities))
	for assetID, quantity := range quantities {
		if quantity != 0 {
			pruned[assetID] = quantity
		}
	}

	return Value{quantities: pruned}
}

// LovelaceValue creates a Value that only holds the given amount of the base currency.
func LovelaceValue(amount int64) Value {
	return SingletonValue(AdaSymbol, "", amount)
}

// SingletonValue creates a Value that holds a single asset class.
func SingletonValue(symbol CurrencySymbol, name TokenName, quantity int64) Value {
	return NewValue(map[AssetID]int64{NewAssetID(symbol, name): quantity})
}

// SafeSumValues adds up all given Values and returns an error wrapping ErrValueOverflow if a quantity overflows.
func SafeSumValues(values ...Value) (sum Value, err error) {
	for _, value := range values {
		if sum, err = sum.SafeAdd(value); err != nil {
			return Value{}, err
		}
	}

	return sum, nil
}

// SumValues adds up all given Values.
func SumValues(values ...Value) (sum Value) {
	for _, value := range values {
		sum = sum.Add(value)
	}

	return
}

// ValueFromBytes unmarshals a Value from a sequence of bytes.
func ValueFromBytes(bytes []byte) (value Value, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if value, err = ValueFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Value from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// ValueFromMarshalUtil unmarshals a Value using a MarshalUtil (for easier unmarshaling).
func ValueFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (value Value, err error) {
	entryCount, err := marshalUtil.ReadUint16()
	if err != nil {
		err = errors.Errorf("failed to parse entry count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	quantities := make(map[AssetID]int64, entryCount)
	var previousAssetID *AssetID
	for i := uint16(0); i < entryCount; i++ {
		symbol, symbolErr := CurrencySymbolFromMarshalUtil(marshalUtil)
		if symbolErr != nil {
			err = errors.Errorf("failed to parse CurrencySymbol of entry %d: %w", i, symbolErr)
			return
		}
		nameLength, nameLengthErr := marshalUtil.ReadUint16()
		if nameLengthErr != nil {
			err = errors.Errorf("failed to parse TokenName length (%v): %w", nameLengthErr, cerrors.ErrParseBytesFailed)
			return
		}
		nameBytes, nameErr := marshalUtil.ReadBytes(int(nameLength))
		if nameErr != nil {
			err = errors.Errorf("failed to parse TokenName (%v): %w", nameErr, cerrors.ErrParseBytesFailed)
			return
		}
		quantity, quantityErr := marshalUtil.ReadInt64()
		if quantityErr != nil {
			err = errors.Errorf("failed to parse quantity (%v): %w", quantityErr, cerrors.ErrParseBytesFailed)
			return
		}

		assetID := NewAssetID(symbol, TokenName(nameBytes))
		if previousAssetID != nil && previousAssetID.Compare(assetID) >= 0 {
			err = errors.Errorf("entries of Value are not sorted or contain duplicates: %w", cerrors.ErrParseBytesFailed)
			return
		}
		if quantity == 0 {
			err = errors.Errorf("Value contains an entry with a quantity of zero: %w", cerrors.ErrParseBytesFailed)
			return
		}
		quantities[assetID] = quantity
		previousAssetID = &assetID
	}

	return Value{quantities: quantities}, nil
}

// Quantity returns the quantity of the given asset class (zero if it is not present).
func (v Value) Quantity(assetID AssetID) int64 {
	return v.quantities[assetID]
}

// Lovelace returns the quantity of the base currency.
func (v Value) Lovelace() int64 {
	return v.quantities[AdaAssetID]
}

// Size returns the amount of non-zero entries.
func (v Value) Size() int {
	return len(v.quantities)
}

// AssetIDs returns the AssetIDs with a non-zero quantity in canonical order.
func (v Value) AssetIDs() (assetIDs []AssetID) {
	assetIDs = make([]AssetID, 0, len(v.quantities))
	for assetID := range v.quantities {
		assetIDs = append(assetIDs, assetID)
	}
	sort.Slice(assetIDs, func(i, j int) bool {
		return assetIDs[i].Compare(assetIDs[j]) < 0
	})

	return assetIDs
}

// ForEach calls the consumer for each entry in canonical order and aborts the iteration if the consumer returns false.
func (v Value) ForEach(consumer func(assetID AssetID, quantity int64) bool) {
	for _, assetID := range v.AssetIDs() {
		if !consumer(assetID, v.quantities[assetID]) {
			return
		}
	}
}

// SafeAdd returns the point-wise sum of both Values or an error wrapping ErrValueOverflow if a quantity does not fit
// into an int64.
func (v Value) SafeAdd(other Value) (sum Value, err error) {
	result := make(map[AssetID]int64, len(v.quantities)+len(other.quantities))
	for assetID, quantity := range v.quantities {
		result[assetID] = quantity
	}
	for assetID, quantity := range other.quantities {
		added, valid := SafeAddInt64(result[assetID], quantity)
		if !valid {
			return Value{}, errors.Errorf("%d + %d of %s: %w", result[assetID], quantity, assetID, ErrValueOverflow)
		}
		result[assetID] = added
	}

	return NewValue(result), nil
}

// Add returns the point-wise sum of both Values. Quantities wrap around on overflow, use SafeAdd for untrusted Values.
func (v Value) Add(other Value) Value {
	result := make(map[AssetID]int64, len(v.quantities)+len(other.quantities))
	for assetID, quantity := range v.quantities {
		result[assetID] = quantity
	}
	for assetID, quantity := range other.quantities {
		result[assetID] += quantity
	}

	return NewValue(result)
}

// Subtract returns the point-wise difference of both Values.
func (v Value) Subtract(other Value) Value {
	return v.Add(other.Negate())
}

// Negate returns the Value with all quantities negated.
func (v Value) Negate() Value {
	return v.Scale(-1)
}

// Scale multiplies all quantities with the given factor (quantities wrap around on overflow).
func (v Value) Scale(factor int64) Value {
	result := make(map[AssetID]int64, len(v.quantities))
	for assetID, quantity := range v.quantities {
		result[assetID] = quantity * factor
	}

	return NewValue(result)
}

// IsZero returns true if the Value contains no entries.
func (v Value) IsZero() bool {
	return len(v.quantities) == 0
}

// IsPositive returns true if the Value contains at least one entry and all entries are positive.
func (v Value) IsPositive() bool {
	if v.IsZero() {
		return false
	}

	return v.IsNonNegative()
}

// IsNonNegative returns true if no entry is negative.
func (v Value) IsNonNegative() bool {
	for _, quantity := range v.quantities {
		if quantity < 0 {
			return false
		}
	}

	return true
}

// Leq returns true if every quantity of v is less than or equal to the corresponding quantity of other.
func (v Value) Leq(other Value) bool {
	for assetID, quantity := range v.quantities {
		if quantity > other.quantities[assetID] {
			return false
		}
	}
	for assetID, quantity := range other.quantities {
		if _, exists := v.quantities[assetID]; !exists && quantity < 0 {
			return false
		}
	}

	return true
}

// Geq returns true if every quantity of v is greater than or equal to the corresponding quantity of other.
func (v Value) Geq(other Value) bool {
	return other.Leq(v)
}

// Equal returns true if both Values contain the same entries.
func (v Value) Equal(other Value) bool {
	if len(v.quantities) != len(other.quantities) {
		return false
	}
	for assetID, quantity := range v.quantities {
		if otherQuantity, exists := other.quantities[assetID]; !exists || otherQuantity != quantity {
			return false
		}
	}

	return true
}

// Split separates the Value into its negative part (returned as a positive Value) and its positive part.
func (v Value) Split() (negative Value, positive Value) {
	negativeQuantities := make(map[AssetID]int64)
	positiveQuantities := make(map[AssetID]int64)
	for assetID, quantity := range v.quantities {
		if quantity < 0 {
			negativeQuantities[assetID] = -quantity
		} else {
			positiveQuantities[assetID] = quantity
		}
	}

	return NewValue(negativeQuantities), NewValue(positiveQuantities)
}

// Filter returns the part of the Value whose entries satisfy the given predicate.
func (v Value) Filter(predicate func(assetID AssetID, quantity int64) bool) Value {
	result := make(map[AssetID]int64)
	for assetID, quantity := range v.quantities {
		if predicate(assetID, quantity) {
			result[assetID] = quantity
		}
	}

	return NewValue(result)
}

// checkEncodingLimits returns an error if the Value does not fit into the length fields of its encoding.
func (v Value) checkEncodingLimits() (err error) {
	if len(v.quantities) > math.MaxUint16 {
		return errors.Errorf("value holds %d entries: %w", len(v.quantities), ErrEncodingLimitExceeded)
	}
	for assetID := range v.quantities {
		if len(assetID.TokenName) > math.MaxUint16 {
			return errors.Errorf("token name of %s has %d bytes: %w", assetID.CurrencySymbol, len(assetID.TokenName), ErrEncodingLimitExceeded)
		}
	}

	return nil
}

// Bytes returns the canonical marshaled version of the Value.
func (v Value) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteUint16(uint16(len(v.quantities)))
	v.ForEach(func(assetID AssetID, quantity int64) bool {
		marshalUtil.WriteBytes(assetID.CurrencySymbol.Bytes())
		marshalUtil.WriteUint16(uint16(len(assetID.TokenName)))
		marshalUtil.WriteBytes([]byte(assetID.TokenName))
		marshalUtil.WriteInt64(quantity)

		return true
	})

	return marshalUtil.Bytes()
}

// String returns a human readable version of the Value.
func (v Value) String() string {
	structBuilder := stringify.StructBuilder("Value")
	v.ForEach(func(assetID AssetID, quantity int64) bool {
		structBuilder.AddField(stringify.StructField(assetID.String(), quantity))

		return true
	})

	return structBuilder.String()
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
