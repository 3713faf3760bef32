package ledgerstate

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/byteutils"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// region AddressType //////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// ED25519AddressType represents an Address secured by the ED25519 signature scheme.
	ED25519AddressType AddressType = iota

	// ScriptAddressType represents an Address that is locked by a Validator script.
	ScriptAddressType
)

// AddressLength contains the length of an address (type length = 1, digest length = 32).
const AddressLength = 33

// AddressType represents the type of the Address (different types encode different unlock rules).
type AddressType byte

// String returns a human readable representation of the AddressType.
func (a AddressType) String() string {
	return [...]string{
		"AddressTypeED25519",
		"AddressTypeScript",
	}[a]
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region PubKeyHash ///////////////////////////////////////////////////////////////////////////////////////////////////

// PubKeyHashLength contains the amount of bytes of a PubKeyHash.
const PubKeyHashLength = 32

// PubKeyHash is the blake2b-256 digest of an ED25519 public key.
type PubKeyHash [PubKeyHashLength]byte

// NewPubKeyHash returns the PubKeyHash of the given public key.
func NewPubKeyHash(publicKey ed25519.PublicKey) PubKeyHash {
	return blake2b.Sum256(publicKey[:])
}

// PubKeyHashFromMarshalUtil unmarshals a PubKeyHash using a MarshalUtil (for easier unmarshaling).
func PubKeyHashFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (pubKeyHash PubKeyHash, err error) {
	hashBytes, err := marshalUtil.ReadBytes(PubKeyHashLength)
	if err != nil {
		err = errors.Errorf("failed to parse PubKeyHash (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(pubKeyHash[:], hashBytes)

	return
}

// Bytes returns a marshaled version of the PubKeyHash.
func (p PubKeyHash) Bytes() []byte {
	return p[:]
}

// Base58 returns a base58 encoded version of the PubKeyHash.
func (p PubKeyHash) Base58() string {
	return base58.Encode(p[:])
}

// String returns a human readable version of the PubKeyHash.
func (p PubKeyHash) String() string {
	return "PubKeyHash(" + p.Base58() + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Address //////////////////////////////////////////////////////////////////////////////////////////////////////

// Address is an interface for the different kind of Addresses that are supported by the ledger state.
type Address interface {
	// Type returns the AddressType of the Address.
	Type() AddressType

	// Digest returns the hashed version of the public key or the script that locks the Address.
	Digest() []byte

	// Equals returns true if the two Addresses are equal.
	Equals(other Address) bool

	// Bytes returns a marshaled version of the Address.
	Bytes() []byte

	// Array returns an array of bytes that contains the marshaled version of the Address.
	Array() [AddressLength]byte

	// Base58 returns a base58 encoded version of the Address.
	Base58() string

	// String returns a human readable version of the Address for debug purposes.
	String() string
}

// AddressFromBytes unmarshals an Address from a sequence of bytes.
func AddressFromBytes(bytes []byte) (address Address, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if address, err = AddressFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Address from MarshalUtil: %w", err)
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// AddressFromBase58EncodedString creates an Address from a base58 encoded string.
func AddressFromBase58EncodedString(base58String string) (address Address, err error) {
	bytes, err := base58.Decode(base58String)
	if err != nil {
		err = errors.Errorf("error while decoding base58 encoded Address (%v): %w", err, cerrors.ErrBase58DecodeFailed)
		return
	}

	if address, _, err = AddressFromBytes(bytes); err != nil {
		err = errors.Errorf("failed to parse Address from bytes: %w", err)
		return
	}

	return
}

// AddressFromMarshalUtil reads an Address from the bytes in the given MarshalUtil.
func AddressFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (address Address, err error) {
	addressType, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse AddressType (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	digestBytes, err := marshalUtil.ReadBytes(32)
	if err != nil {
		err = errors.Errorf("error parsing digest (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	switch AddressType(addressType) {
	case ED25519AddressType:
		var pubKeyHash PubKeyHash
		copy(pubKeyHash[:], digestBytes)

		return NewED25519AddressFromPubKeyHash(pubKeyHash), nil
	case ScriptAddressType:
		var validatorHash ValidatorHash
		copy(validatorHash[:], digestBytes)

		return NewScriptAddress(validatorHash), nil
	default:
		err = errors.Errorf("unsupported address type (%X): %w", addressType, cerrors.ErrParseBytesFailed)
		return
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ED25519Address ///////////////////////////////////////////////////////////////////////////////////////////////

// ED25519Address represents an Address that is secured by the ED25519 signature scheme.
type ED25519Address struct {
	pubKeyHash PubKeyHash
}

// NewED25519Address creates a new ED25519Address from the given public key.
func NewED25519Address(publicKey ed25519.PublicKey) *ED25519Address {
	return &ED25519Address{
		pubKeyHash: NewPubKeyHash(publicKey),
	}
}

// NewED25519AddressFromPubKeyHash creates a new ED25519Address from an already hashed public key.
func NewED25519AddressFromPubKeyHash(pubKeyHash PubKeyHash) *ED25519Address {
	return &ED25519Address{
		pubKeyHash: pubKeyHash,
	}
}

// PubKeyHash returns the hash of the public key that controls the Address.
func (e *ED25519Address) PubKeyHash() PubKeyHash {
	return e.pubKeyHash
}

// Type returns the AddressType of the Address.
func (e *ED25519Address) Type() AddressType {
	return ED25519AddressType
}

// Digest returns the hashed version of the Addresses public key.
func (e *ED25519Address) Digest() []byte {
	return e.pubKeyHash[:]
}

// Equals returns true if the two Addresses are equal.
func (e *ED25519Address) Equals(other Address) bool {
	return other != nil && e.Type() == other.Type() && bytes.Equal(e.Digest(), other.Digest())
}

// Bytes returns a marshaled version of the Address.
func (e *ED25519Address) Bytes() []byte {
	return byteutils.ConcatBytes([]byte{byte(ED25519AddressType)}, e.pubKeyHash[:])
}

// Array returns an array of bytes that contains the marshaled version of the Address.
func (e *ED25519Address) Array() (array [AddressLength]byte) {
	copy(array[:], e.Bytes())

	return
}

// Base58 returns a base58 encoded version of the address.
func (e *ED25519Address) Base58() string {
	return base58.Encode(e.Bytes())
}

// String returns a human readable version of the addresses for debug purposes.
func (e *ED25519Address) String() string {
	return stringify.Struct("ED25519Address",
		stringify.StructField("Digest", e.Digest()),
		stringify.StructField("Base58", e.Base58()),
	)
}

// code contract (make sure the struct implements all required methods)
var _ Address = &ED25519Address{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ScriptAddress ////////////////////////////////////////////////////////////////////////////////////////////////

// ScriptAddress represents an Address whose Outputs can only be spent if the Validator with the given hash accepts.
type ScriptAddress struct {
	validatorHash ValidatorHash
}

// NewScriptAddress creates a new ScriptAddress for the Validator with the given hash.
func NewScriptAddress(validatorHash ValidatorHash) *ScriptAddress {
	return &ScriptAddress{
		validatorHash: validatorHash,
	}
}

// ValidatorHash returns the hash of the Validator that locks the Address.
func (s *ScriptAddress) ValidatorHash() ValidatorHash {
	return s.validatorHash
}

// Type returns the AddressType of the Address.
func (s *ScriptAddress) Type() AddressType {
	return ScriptAddressType
}

// Digest returns the hash of the Validator.
func (s *ScriptAddress) Digest() []byte {
	return s.validatorHash[:]
}

// Equals returns true if the two Addresses are equal.
func (s *ScriptAddress) Equals(other Address) bool {
	return other != nil && s.Type() == other.Type() && bytes.Equal(s.Digest(), other.Digest())
}

// Bytes returns a marshaled version of the Address.
func (s *ScriptAddress) Bytes() []byte {
	return byteutils.ConcatBytes([]byte{byte(ScriptAddressType)}, s.validatorHash[:])
}

// Array returns an array of bytes that contains the marshaled version of the Address.
func (s *ScriptAddress) Array() (array [AddressLength]byte) {
	copy(array[:], s.Bytes())

	return
}

// Base58 returns a base58 encoded version of the Address.
func (s *ScriptAddress) Base58() string {
	return base58.Encode(s.Bytes())
}

// String returns a human readable version of the Address for debug purposes.
func (s *ScriptAddress) String() string {
	return stringify.Struct("ScriptAddress",
		stringify.StructField("ValidatorHash", s.validatorHash),
		stringify.StructField("Base58", s.Base58()),
	)
}

// code contract (make sure the struct implements all required methods)
var _ Address = &ScriptAddress{}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
