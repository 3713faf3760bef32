package typed

import (
	"github.com/cockroachdb/errors"
	"github.com/fxamacker/cbor/v2"
)

// Codec translates between a typed value and its untyped (datum or redeemer) byte representation.
type Codec[T any] interface {
	// Encode returns the byte representation of the value.
	Encode(value T) ([]byte, error)

	// Decode parses a value from its byte representation.
	Decode(data []byte) (T, error)
}

// region CBORCodec ////////////////////////////////////////////////////////////////////////////////////////////////////

// CBORCodec is a Codec that uses the deterministic core encoding of CBOR (RFC 8949), so that the same value always
// results in the same datum hash.
type CBORCodec[T any] struct {
	encMode cbor.EncMode
	decMode cbor.DecMode
}

// NewCBORCodec creates a new CBORCodec for values of type T.
func NewCBORCodec[T any]() *CBORCodec[T] {
	encMode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err := cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic(err)
	}

	return &CBORCodec[T]{
		encMode: encMode,
		decMode: decMode,
	}
}

// Encode returns the deterministic CBOR encoding of the value.
func (c *CBORCodec[T]) Encode(value T) (data []byte, err error) {
	if data, err = c.encMode.Marshal(value); err != nil {
		return nil, errors.Errorf("failed to encode %T: %w", value, err)
	}

	return data, nil
}

// Decode parses a value from its CBOR encoding. Trailing bytes and duplicate map keys are rejected.
func (c *CBORCodec[T]) Decode(data []byte) (value T, err error) {
	if err = c.decMode.Unmarshal(data, &value); err != nil {
		err = errors.Errorf("failed to decode %T: %w", value, err)
	}

	return
}

// code contract (make sure the struct implements all required methods)
var _ Codec[int] = &CBORCodec[int]{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region RawCodec /////////////////////////////////////////////////////////////////////////////////////////////////////

// RawCodec is the identity Codec for scripts that work on the untyped bytes.
type RawCodec struct{}

// Encode returns a copy of the bytes.
func (RawCodec) Encode(value []byte) ([]byte, error) {
	return append([]byte{}, value...), nil
}

// Decode returns a copy of the bytes.
func (RawCodec) Decode(data []byte) ([]byte, error) {
	return append([]byte{}, data...), nil
}

// code contract (make sure the struct implements all required methods)
var _ Codec[[]byte] = RawCodec{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
