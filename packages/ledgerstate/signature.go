package ledgerstate

import (
	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
)

// region Signing helpers //////////////////////////////////////////////////////////////////////////////////////////////

// Sign signs the message with the given private key.
func Sign(privateKey ed25519.PrivateKey, message []byte) ed25519.Signature {
	return privateKey.Sign(message)
}

// VerifySignature returns true if the signature over the message was created by the owner of the public key.
func VerifySignature(publicKey ed25519.PublicKey, message []byte, signature ed25519.Signature) bool {
	return publicKey.VerifySignature(message, signature)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ED25519Signature /////////////////////////////////////////////////////////////////////////////////////////////

// ED25519Signature couples an ED25519 signature with the public key that created it.
type ED25519Signature struct {
	publicKey ed25519.PublicKey
	signature ed25519.Signature
}

// NewED25519Signature is the constructor of an ED25519Signature.
func NewED25519Signature(publicKey ed25519.PublicKey, signature ed25519.Signature) *ED25519Signature {
	return &ED25519Signature{
		publicKey: publicKey,
		signature: signature,
	}
}

// ED25519SignatureFromBytes unmarshals an ED25519Signature from a sequence of bytes.
func ED25519SignatureFromBytes(bytes []byte) (signature *ED25519Signature, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if signature, err = ED25519SignatureFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse ED25519Signature from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// ED25519SignatureFromMarshalUtil unmarshals an ED25519Signature using a MarshalUtil (for easier unmarshaling).
func ED25519SignatureFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (signature *ED25519Signature, err error) {
	signature = &ED25519Signature{}

	publicKeyBytes, err := marshalUtil.ReadBytes(ed25519.PublicKeySize)
	if err != nil {
		err = errors.Errorf("failed to read public key bytes (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if signature.publicKey, _, err = ed25519.PublicKeyFromBytes(publicKeyBytes); err != nil {
		err = errors.Errorf("failed to parse public key (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	signatureBytes, err := marshalUtil.ReadBytes(ed25519.SignatureSize)
	if err != nil {
		err = errors.Errorf("failed to read signature bytes (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if signature.signature, _, err = ed25519.SignatureFromBytes(signatureBytes); err != nil {
		err = errors.Errorf("failed to parse signature (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	return
}

// PublicKey returns the public key that created the signature.
func (s *ED25519Signature) PublicKey() ed25519.PublicKey {
	return s.publicKey
}

// Signature returns the raw signature bytes.
func (s *ED25519Signature) Signature() ed25519.Signature {
	return s.signature
}

// PubKeyHash returns the PubKeyHash of the signer.
func (s *ED25519Signature) PubKeyHash() PubKeyHash {
	return NewPubKeyHash(s.publicKey)
}

// SignatureValid returns true if the signature is valid for the given data.
func (s *ED25519Signature) SignatureValid(data []byte) bool {
	return VerifySignature(s.publicKey, data, s.signature)
}

// AddressSignatureValid returns true if the signature is valid for the given data and the public key of the signer
// controls the given Address.
func (s *ED25519Signature) AddressSignatureValid(address Address, data []byte) bool {
	ed25519Address, ok := address.(*ED25519Address)
	if !ok {
		return false
	}

	return ed25519Address.PubKeyHash() == s.PubKeyHash() && s.SignatureValid(data)
}

// Bytes returns a marshaled version of the ED25519Signature.
func (s *ED25519Signature) Bytes() []byte {
	return marshalutil.New(ed25519.PublicKeySize + ed25519.SignatureSize).
		WriteBytes(s.publicKey[:]).
		WriteBytes(s.signature[:]).
		Bytes()
}

// String returns a human readable version of the ED25519Signature.
func (s *ED25519Signature) String() string {
	return stringify.Struct("ED25519Signature",
		stringify.StructField("publicKey", s.publicKey),
		stringify.StructField("signature", s.signature),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
