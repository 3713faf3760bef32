package ledgerstate

import (
	"math"
	"strings"
	"testing"

	"github.com/iotaledger/hive.go/cerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_Arithmetic(t *testing.T) {
	symbol := NewMintingPolicy(Script("policy")).CurrencySymbol()

	a := LovelaceValue(10).Add(SingletonValue(symbol, "coin", 5))
	b := LovelaceValue(3).Add(SingletonValue(symbol, "coin", 5))

	assert.Equal(t, int64(13), a.Add(b).Lovelace())
	assert.Equal(t, int64(10), a.Add(b).Quantity(NewAssetID(symbol, "coin")))
	assert.True(t, a.Subtract(a).IsZero())
	assert.True(t, a.Add(a.Negate()).IsZero())
	assert.Equal(t, int64(-15), a.Scale(-3).Quantity(NewAssetID(symbol, "coin")))
	assert.True(t, SumValues(a, b, a.Negate()).Equal(b))
}

func TestValue_ZeroPruning(t *testing.T) {
	value := NewValue(map[AssetID]int64{AdaAssetID: 0})
	assert.True(t, value.IsZero())
	assert.Equal(t, 0, value.Size())

	a := LovelaceValue(7)
	assert.Equal(t, 0, a.Subtract(LovelaceValue(7)).Size())
	assert.True(t, a.Subtract(LovelaceValue(7)).Equal(Value{}))
}

func TestValue_PartialOrder(t *testing.T) {
	symbol := NewMintingPolicy(Script("policy")).CurrencySymbol()

	small := LovelaceValue(5)
	large := LovelaceValue(10).Add(SingletonValue(symbol, "coin", 1))
	incomparable := SingletonValue(symbol, "coin", 2)

	assert.True(t, small.Leq(large))
	assert.True(t, large.Geq(small))
	assert.False(t, large.Leq(small))
	assert.False(t, incomparable.Leq(large))
	assert.False(t, large.Leq(incomparable))
	assert.True(t, Value{}.Leq(small))
	assert.True(t, small.Leq(small))
}

func TestValue_SafeAdd(t *testing.T) {
	symbol := NewMintingPolicy(Script("policy")).CurrencySymbol()

	sum, err := LovelaceValue(math.MaxInt64 - 1).SafeAdd(LovelaceValue(1).Add(SingletonValue(symbol, "coin", 3)))
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), sum.Lovelace())
	assert.Equal(t, int64(3), sum.Quantity(NewAssetID(symbol, "coin")))

	_, err = LovelaceValue(math.MaxInt64).SafeAdd(LovelaceValue(1))
	assert.ErrorIs(t, err, ErrValueOverflow)

	_, err = LovelaceValue(math.MinInt64).SafeAdd(LovelaceValue(-1))
	assert.ErrorIs(t, err, ErrValueOverflow)

	_, err = SafeSumValues(LovelaceValue(math.MaxInt64), LovelaceValue(math.MaxInt64), LovelaceValue(2))
	assert.ErrorIs(t, err, ErrValueOverflow)

	sum, err = SafeSumValues(LovelaceValue(math.MaxInt64), LovelaceValue(-5), LovelaceValue(5))
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), sum.Lovelace())
}

func TestValue_CompareExtremes(t *testing.T) {
	assert.False(t, LovelaceValue(math.MaxInt64).Leq(LovelaceValue(math.MinInt64)))
	assert.True(t, LovelaceValue(math.MinInt64).Leq(LovelaceValue(math.MaxInt64)))
	assert.False(t, LovelaceValue(math.MaxInt64).Equal(LovelaceValue(math.MinInt64)))
	assert.False(t, Value{}.Leq(LovelaceValue(-1)))
	assert.True(t, LovelaceValue(math.MinInt64).Equal(LovelaceValue(math.MinInt64)))
}

func TestValue_EncodingLimits(t *testing.T) {
	symbol := NewMintingPolicy(Script("policy")).CurrencySymbol()

	assert.NoError(t, SingletonValue(symbol, TokenName(strings.Repeat("a", math.MaxUint16)), 1).checkEncodingLimits())
	assert.ErrorIs(t, SingletonValue(symbol, TokenName(strings.Repeat("a", math.MaxUint16+1)), 1).checkEncodingLimits(), ErrEncodingLimitExceeded)
}

func TestSafeArithmetic(t *testing.T) {
	_, valid := SafeAddUint64(math.MaxUint64, 1)
	assert.False(t, valid)
	result, valid := SafeAddUint64(math.MaxUint64-1, 1)
	assert.True(t, valid)
	assert.Equal(t, uint64(math.MaxUint64), result)

	_, valid = SafeMulUint64(math.MaxUint64, 2)
	assert.False(t, valid)
	result, valid = SafeMulUint64(0, math.MaxUint64)
	assert.True(t, valid)
	assert.Equal(t, uint64(0), result)

	_, valid = SafeAddInt64(math.MinInt64, -1)
	assert.False(t, valid)
	sum, valid := SafeAddInt64(math.MinInt64, math.MaxInt64)
	assert.True(t, valid)
	assert.Equal(t, int64(-1), sum)
}

func TestValue_Split(t *testing.T) {
	symbol := NewMintingPolicy(Script("policy")).CurrencySymbol()

	negative, positive := LovelaceValue(-4).Add(SingletonValue(symbol, "coin", 3)).Split()
	assert.True(t, negative.Equal(LovelaceValue(4)))
	assert.True(t, positive.Equal(SingletonValue(symbol, "coin", 3)))
}

func TestValue_Bytes(t *testing.T) {
	first := NewMintingPolicy(Script("first")).CurrencySymbol()
	second := NewMintingPolicy(Script("second")).CurrencySymbol()

	a := SingletonValue(first, "b", 1).Add(SingletonValue(second, "a", 2)).Add(SingletonValue(first, "a", 3)).Add(LovelaceValue(4))
	b := LovelaceValue(4).Add(SingletonValue(first, "a", 3)).Add(SingletonValue(second, "a", 2)).Add(SingletonValue(first, "b", 1))
	assert.Equal(t, a.Bytes(), b.Bytes())

	restored, consumedBytes, err := ValueFromBytes(a.Bytes())
	require.NoError(t, err)
	assert.Equal(t, len(a.Bytes()), consumedBytes)
	assert.True(t, restored.Equal(a))

	assetIDs := a.AssetIDs()
	require.Len(t, assetIDs, 4)
	assert.Equal(t, AdaAssetID, assetIDs[0])
	for i := 1; i < len(assetIDs); i++ {
		assert.Negative(t, assetIDs[i-1].Compare(assetIDs[i]))
	}
}

func TestValue_FromBytesRejectsNonCanonicalInput(t *testing.T) {
	valueBytes := LovelaceValue(1).Bytes()

	_, _, err := ValueFromBytes(append(append([]byte{2, 0}, valueBytes[2:]...), valueBytes[2:]...))
	assert.ErrorIs(t, err, cerrors.ErrParseBytesFailed)

	_, _, err = ValueFromBytes(valueBytes[:len(valueBytes)-1])
	assert.ErrorIs(t, err, cerrors.ErrParseBytesFailed)
}
