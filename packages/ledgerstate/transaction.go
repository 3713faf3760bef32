package ledgerstate

import (
	"bytes"
	"math"
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/crypto/ed25519"
	"github.com/iotaledger/hive.go/marshalutil"
	"github.com/iotaledger/hive.go/stringify"
	"github.com/mr-tron/base58"
	"golang.org/x/crypto/blake2b"
)

// region TransactionID ////////////////////////////////////////////////////////////////////////////////////////////////

// TransactionIDLength contains the amount of bytes that a marshaled version of the ID contains.
const TransactionIDLength = 32

// TransactionID is the type that represents the identifier of a Transaction.
type TransactionID [TransactionIDLength]byte

// GenesisTransactionID represents the identifier of the genesis Transaction.
var GenesisTransactionID TransactionID

// TransactionIDFromBytes unmarshals a TransactionID from a sequence of bytes.
func TransactionIDFromBytes(bytes []byte) (transactionID TransactionID, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if transactionID, err = TransactionIDFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse TransactionID from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// TransactionIDFromBase58 creates a TransactionID from a base58 encoded string.
func TransactionIDFromBase58(base58String string) (transactionID TransactionID, err error) {
	bytes, err := base58.Decode(base58String)
	if err != nil {
		err = errors.Errorf("error while decoding base58 encoded TransactionID (%v): %w", err, cerrors.ErrBase58DecodeFailed)
		return
	}

	if transactionID, _, err = TransactionIDFromBytes(bytes); err != nil {
		err = errors.Errorf("failed to parse TransactionID from bytes: %w", err)
		return
	}

	return
}

// TransactionIDFromMarshalUtil unmarshals a TransactionID using a MarshalUtil (for easier unmarshaling).
func TransactionIDFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (transactionID TransactionID, err error) {
	transactionIDBytes, err := marshalUtil.ReadBytes(TransactionIDLength)
	if err != nil {
		err = errors.Errorf("failed to parse TransactionID (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	copy(transactionID[:], transactionIDBytes)

	return
}

// Bytes returns a marshaled version of the TransactionID.
func (i TransactionID) Bytes() []byte {
	return i[:]
}

// Base58 returns a base58 encoded version of the TransactionID.
func (i TransactionID) Base58() string {
	return base58.Encode(i[:])
}

// String creates a human readable version of the TransactionID.
func (i TransactionID) String() string {
	return "TransactionID(" + i.Base58() + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TransactionEssence ///////////////////////////////////////////////////////////////////////////////////////////

// TransactionEssenceVersion represents a version number for the TransactionEssence which can be used to ensure
// backward compatibility if the structure ever needs to get changed.
type TransactionEssenceVersion uint8

// TransactionEssence contains the signed part of a Transaction. Its canonical encoding determines the TransactionID.
type TransactionEssence struct {
	version         TransactionEssenceVersion
	inputs          Inputs
	outputs         Outputs
	mint            Value
	fee             uint64
	validity        ValidityInterval
	requiredSigners []PubKeyHash
}

// Version returns the version of the TransactionEssence.
func (t *TransactionEssence) Version() TransactionEssenceVersion {
	return t.version
}

// Inputs returns the Inputs in canonical order.
func (t *TransactionEssence) Inputs() Inputs {
	return t.inputs
}

// Outputs returns the Outputs in the order in which they are indexed.
func (t *TransactionEssence) Outputs() Outputs {
	return t.outputs
}

// Mint returns the Value that is minted (positive entries) or burned (negative entries).
func (t *TransactionEssence) Mint() Value {
	return t.mint
}

// Fee returns the fee in units of the base currency.
func (t *TransactionEssence) Fee() uint64 {
	return t.fee
}

// ValidityInterval returns the range of Slots in which the Transaction can be included.
func (t *TransactionEssence) ValidityInterval() ValidityInterval {
	return t.validity
}

// RequiredSigners returns the sorted hashes of the keys that have to sign the Transaction.
func (t *TransactionEssence) RequiredSigners() []PubKeyHash {
	return t.requiredSigners
}

// Bytes returns the canonical marshaled version of the TransactionEssence (witnesses are not part of it).
func (t *TransactionEssence) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteByte(byte(t.version))
	marshalUtil.WriteUint16(uint16(len(t.inputs)))
	for _, input := range t.inputs {
		marshalUtil.WriteBytes(input.ReferencedOutputID().Bytes())
	}
	marshalUtil.WriteBytes(t.outputs.Bytes())
	marshalUtil.WriteBytes(t.mint.Bytes())
	marshalUtil.WriteUint64(t.fee)
	marshalUtil.WriteBytes(t.validity.Bytes())
	marshalUtil.WriteUint16(uint16(len(t.requiredSigners)))
	for _, signer := range t.requiredSigners {
		marshalUtil.WriteBytes(signer.Bytes())
	}

	return marshalUtil.Bytes()
}

// String returns a human readable version of the TransactionEssence.
func (t *TransactionEssence) String() string {
	return stringify.Struct("TransactionEssence",
		stringify.StructField("version", t.version),
		stringify.StructField("inputs", t.inputs),
		stringify.StructField("outputs", t.outputs),
		stringify.StructField("mint", t.mint),
		stringify.StructField("fee", t.fee),
		stringify.StructField("validity", t.validity),
		stringify.StructField("requiredSigners", t.requiredSigners),
	)
}

func (t *TransactionEssence) clone() *TransactionEssence {
	cloned := *t
	cloned.inputs = append(Inputs(nil), t.inputs...)
	cloned.outputs = append(Outputs(nil), t.outputs...)
	cloned.requiredSigners = append([]PubKeyHash(nil), t.requiredSigners...)

	return &cloned
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region Transaction //////////////////////////////////////////////////////////////////////////////////////////////////

// Transaction consumes Outputs and creates new ones. It consists of the TransactionEssence and the witness set that
// authorizes it. A Transaction is immutable: all builder methods return a modified copy.
type Transaction struct {
	essence          *TransactionEssence
	mintingWitnesses map[CurrencySymbol]*MintingWitness
	signatures       map[PubKeyHash]*ED25519Signature
	data             map[DatumHash]Datum

	id      *TransactionID
	idMutex sync.RWMutex
}

// UnitTransaction returns the empty Transaction that all other Transactions are built from.
func UnitTransaction() *Transaction {
	return &Transaction{
		essence: &TransactionEssence{
			validity: AlwaysValid,
		},
		mintingWitnesses: make(map[CurrencySymbol]*MintingWitness),
		signatures:       make(map[PubKeyHash]*ED25519Signature),
		data:             make(map[DatumHash]Datum),
	}
}

// TransactionFromBytes unmarshals a Transaction from a sequence of bytes.
func TransactionFromBytes(bytes []byte) (transaction *Transaction, consumedBytes int, err error) {
	marshalUtil := marshalutil.New(bytes)
	if transaction, err = TransactionFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Transaction from MarshalUtil: %w", err)
		return
	}
	consumedBytes = marshalUtil.ReadOffset()

	return
}

// TransactionFromMarshalUtil unmarshals a Transaction using a MarshalUtil (for easier unmarshaling).
func TransactionFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (transaction *Transaction, err error) {
	transaction = UnitTransaction()
	essence := transaction.essence

	version, err := marshalUtil.ReadByte()
	if err != nil {
		err = errors.Errorf("failed to parse TransactionEssenceVersion (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	essence.version = TransactionEssenceVersion(version)

	inputCount, err := marshalUtil.ReadUint16()
	if err != nil {
		err = errors.Errorf("failed to parse input count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	outputIDs := make([]OutputID, inputCount)
	for i := range outputIDs {
		if outputIDs[i], err = OutputIDFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse referenced OutputID %d: %w", i, err)
			return
		}
	}
	if essence.outputs, err = OutputsFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse Outputs: %w", err)
		return
	}
	if essence.mint, err = ValueFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse minted Value: %w", err)
		return
	}
	if essence.fee, err = marshalUtil.ReadUint64(); err != nil {
		err = errors.Errorf("failed to parse fee (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	if essence.validity, err = ValidityIntervalFromMarshalUtil(marshalUtil); err != nil {
		err = errors.Errorf("failed to parse ValidityInterval: %w", err)
		return
	}
	signerCount, err := marshalUtil.ReadUint16()
	if err != nil {
		err = errors.Errorf("failed to parse required signer count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	essence.requiredSigners = make([]PubKeyHash, signerCount)
	for i := range essence.requiredSigners {
		if essence.requiredSigners[i], err = PubKeyHashFromMarshalUtil(marshalUtil); err != nil {
			err = errors.Errorf("failed to parse required signer %d: %w", i, err)
			return
		}
	}

	essence.inputs = make(Inputs, inputCount)
	for i, outputID := range outputIDs {
		witness, witnessErr := WitnessFromMarshalUtil(marshalUtil)
		if witnessErr != nil {
			err = errors.Errorf("failed to parse Witness of Input %d: %w", i, witnessErr)
			return
		}
		essence.inputs[i] = &Input{referencedOutputID: outputID, witness: witness}
	}

	mintingWitnessCount, err := marshalUtil.ReadUint16()
	if err != nil {
		err = errors.Errorf("failed to parse minting witness count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	for i := uint16(0); i < mintingWitnessCount; i++ {
		mintingWitness, mintingWitnessErr := MintingWitnessFromMarshalUtil(marshalUtil)
		if mintingWitnessErr != nil {
			err = errors.Errorf("failed to parse MintingWitness %d: %w", i, mintingWitnessErr)
			return
		}
		transaction.mintingWitnesses[mintingWitness.Policy().CurrencySymbol()] = mintingWitness
	}

	signatureCount, err := marshalUtil.ReadUint16()
	if err != nil {
		err = errors.Errorf("failed to parse signature count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	for i := uint16(0); i < signatureCount; i++ {
		signature, signatureErr := ED25519SignatureFromMarshalUtil(marshalUtil)
		if signatureErr != nil {
			err = errors.Errorf("failed to parse ED25519Signature %d: %w", i, signatureErr)
			return
		}
		transaction.signatures[signature.PubKeyHash()] = signature
	}

	datumCount, err := marshalUtil.ReadUint16()
	if err != nil {
		err = errors.Errorf("failed to parse datum count (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	for i := uint16(0); i < datumCount; i++ {
		datum, datumErr := readLengthPrefixedBytes(marshalUtil)
		if datumErr != nil {
			err = errors.Errorf("failed to parse Datum %d: %w", i, datumErr)
			return
		}
		transaction.data[Datum(datum).Hash()] = datum
	}

	return transaction, nil
}

// ID returns the identifier of the Transaction. It only depends on the TransactionEssence.
func (t *Transaction) ID() TransactionID {
	t.idMutex.RLock()
	if t.id != nil {
		defer t.idMutex.RUnlock()

		return *t.id
	}

	t.idMutex.RUnlock()
	t.idMutex.Lock()
	defer t.idMutex.Unlock()

	if t.id != nil {
		return *t.id
	}

	id := TransactionID(blake2b.Sum256(t.essence.Bytes()))
	t.id = &id

	return id
}

// Essence returns the TransactionEssence of the Transaction.
func (t *Transaction) Essence() *TransactionEssence {
	return t.essence
}

// Inputs returns the Inputs of the Transaction in canonical order.
func (t *Transaction) Inputs() Inputs {
	return t.essence.inputs
}

// Outputs returns the Outputs of the Transaction.
func (t *Transaction) Outputs() Outputs {
	return t.essence.outputs
}

// Mint returns the Value that is minted or burned by the Transaction.
func (t *Transaction) Mint() Value {
	return t.essence.mint
}

// Fee returns the fee of the Transaction.
func (t *Transaction) Fee() uint64 {
	return t.essence.fee
}

// FeeValue returns the fee of the Transaction as a Value.
func (t *Transaction) FeeValue() Value {
	return LovelaceValue(int64(t.essence.fee))
}

// ValidityInterval returns the range of Slots in which the Transaction can be included.
func (t *Transaction) ValidityInterval() ValidityInterval {
	return t.essence.validity
}

// RequiredSigners returns the hashes of the keys that have to sign the Transaction.
func (t *Transaction) RequiredSigners() []PubKeyHash {
	return t.essence.requiredSigners
}

// OutputID returns the OutputID that the Output with the given index will have once the Transaction is applied.
func (t *Transaction) OutputID(index uint16) OutputID {
	return NewOutputID(t.ID(), index)
}

// OutputsByID returns the created Outputs keyed by the OutputIDs that they will have.
func (t *Transaction) OutputsByID() (outputsByID OutputsByID) {
	outputsByID = make(OutputsByID, len(t.essence.outputs))
	for i, output := range t.essence.outputs {
		outputsByID[t.OutputID(uint16(i))] = output
	}

	return
}

// MintingWitness returns the MintingWitness for the given CurrencySymbol.
func (t *Transaction) MintingWitness(symbol CurrencySymbol) (mintingWitness *MintingWitness, exists bool) {
	mintingWitness, exists = t.mintingWitnesses[symbol]

	return
}

// MintingWitnesses returns all MintingWitnesses ordered by CurrencySymbol.
func (t *Transaction) MintingWitnesses() (mintingWitnesses []*MintingWitness) {
	symbols := make([]CurrencySymbol, 0, len(t.mintingWitnesses))
	for symbol := range t.mintingWitnesses {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool {
		return bytes.Compare(symbols[i][:], symbols[j][:]) < 0
	})

	mintingWitnesses = make([]*MintingWitness, len(symbols))
	for i, symbol := range symbols {
		mintingWitnesses[i] = t.mintingWitnesses[symbol]
	}

	return
}

// Signature returns the signature of the key with the given hash.
func (t *Transaction) Signature(pubKeyHash PubKeyHash) (signature *ED25519Signature, exists bool) {
	signature, exists = t.signatures[pubKeyHash]

	return
}

// Signatures returns all signatures ordered by the hash of their public key.
func (t *Transaction) Signatures() (signatures []*ED25519Signature) {
	for _, pubKeyHash := range t.signers() {
		signatures = append(signatures, t.signatures[pubKeyHash])
	}

	return
}

// ValidSignatories returns the hashes of all keys that provided a valid signature over the TransactionID.
func (t *Transaction) ValidSignatories() (signatories []PubKeyHash) {
	id := t.ID()
	for _, pubKeyHash := range t.signers() {
		if t.signatures[pubKeyHash].SignatureValid(id.Bytes()) {
			signatories = append(signatories, pubKeyHash)
		}
	}

	return
}

// Datum returns the Datum with the given hash if it is part of the witness set.
func (t *Transaction) Datum(datumHash DatumHash) (datum Datum, exists bool) {
	datum, exists = t.data[datumHash]

	return
}

// Data returns a copy of all Datums of the witness set (including the Datums of the script Inputs).
func (t *Transaction) Data() (data map[DatumHash]Datum) {
	data = make(map[DatumHash]Datum, len(t.data))
	for datumHash, datum := range t.data {
		data[datumHash] = datum
	}
	for _, input := range t.essence.inputs {
		if scriptWitness, ok := input.Witness().(*ScriptWitness); ok {
			data[scriptWitness.Datum().Hash()] = scriptWitness.Datum()
		}
	}

	return
}

// WithInput returns a copy of the Transaction that additionally consumes the given Inputs.
func (t *Transaction) WithInput(inputs ...*Input) *Transaction {
	return t.modifyEssence(func(essence *TransactionEssence) {
		essence.inputs = NewInputs(append(essence.inputs, inputs...)...)
	})
}

// WithOutput returns a copy of the Transaction that additionally creates the given Outputs.
func (t *Transaction) WithOutput(outputs ...*Output) *Transaction {
	return t.modifyEssence(func(essence *TransactionEssence) {
		essence.outputs = append(essence.outputs, outputs...)
	})
}

// WithMint returns a copy of the Transaction that additionally mints (or burns) the given Value.
func (t *Transaction) WithMint(value Value) *Transaction {
	return t.modifyEssence(func(essence *TransactionEssence) {
		essence.mint = essence.mint.Add(value)
	})
}

// WithFee returns a copy of the Transaction with the given fee.
func (t *Transaction) WithFee(fee uint64) *Transaction {
	return t.modifyEssence(func(essence *TransactionEssence) {
		essence.fee = fee
	})
}

// WithValidity returns a copy of the Transaction with the given ValidityInterval.
func (t *Transaction) WithValidity(validity ValidityInterval) *Transaction {
	return t.modifyEssence(func(essence *TransactionEssence) {
		essence.validity = validity
	})
}

// WithRequiredSigner returns a copy of the Transaction that additionally requires signatures of the given keys.
func (t *Transaction) WithRequiredSigner(pubKeyHashes ...PubKeyHash) *Transaction {
	return t.modifyEssence(func(essence *TransactionEssence) {
		seen := make(map[PubKeyHash]bool, len(essence.requiredSigners))
		for _, pubKeyHash := range essence.requiredSigners {
			seen[pubKeyHash] = true
		}
		for _, pubKeyHash := range pubKeyHashes {
			if !seen[pubKeyHash] {
				seen[pubKeyHash] = true
				essence.requiredSigners = append(essence.requiredSigners, pubKeyHash)
			}
		}
		sortPubKeyHashes(essence.requiredSigners)
	})
}

// WithMintingWitness returns a copy of the Transaction that carries the MintingPolicy and Redeemer for the policy's
// CurrencySymbol.
func (t *Transaction) WithMintingWitness(policy *MintingPolicy, redeemer Redeemer) *Transaction {
	cloned := t.clone(t.essence)
	cloned.mintingWitnesses[policy.CurrencySymbol()] = NewMintingWitness(policy, redeemer)

	return cloned
}

// WithDatum returns a copy of the Transaction that includes the given Datums in its witness set.
func (t *Transaction) WithDatum(data ...Datum) *Transaction {
	cloned := t.clone(t.essence)
	for _, datum := range data {
		cloned.data[datum.Hash()] = datum
	}

	return cloned
}

// WithSignature returns a copy of the Transaction that includes the given signatures.
func (t *Transaction) WithSignature(signatures ...*ED25519Signature) *Transaction {
	cloned := t.clone(t.essence)
	for _, signature := range signatures {
		cloned.signatures[signature.PubKeyHash()] = signature
	}

	return cloned
}

// Sign returns a copy of the Transaction that is signed by the given keys. Signatures cover the TransactionID, so
// the essence must not be modified afterwards.
func (t *Transaction) Sign(keyPairs ...ed25519.KeyPair) *Transaction {
	id := t.ID()
	signatures := make([]*ED25519Signature, len(keyPairs))
	for i, keyPair := range keyPairs {
		signatures[i] = NewED25519Signature(keyPair.PublicKey, Sign(keyPair.PrivateKey, id.Bytes()))
	}

	return t.WithSignature(signatures...)
}

// checkEncodingLimits returns an error if the Transaction does not fit into the fixed width length fields of its
// canonical encoding.
func (t *Transaction) checkEncodingLimits() (err error) {
	for _, count := range []struct {
		name  string
		value int
	}{
		{"inputs", len(t.essence.inputs)},
		{"outputs", len(t.essence.outputs)},
		{"required signers", len(t.essence.requiredSigners)},
		{"minting witnesses", len(t.mintingWitnesses)},
		{"signatures", len(t.signatures)},
		{"data", len(t.data)},
	} {
		if count.value > math.MaxUint16 {
			return errors.Errorf("transaction holds %d %s: %w", count.value, count.name, ErrEncodingLimitExceeded)
		}
	}

	for i, output := range t.essence.outputs {
		if err = output.Value().checkEncodingLimits(); err != nil {
			return errors.Errorf("output %d: %w", i, err)
		}
	}

	return t.essence.mint.checkEncodingLimits()
}

// Equals returns true if both Transactions have the same canonical encoding.
func (t *Transaction) Equals(other *Transaction) bool {
	return other != nil && bytes.Equal(t.Bytes(), other.Bytes())
}

// Bytes returns the marshaled version of the Transaction (essence followed by the witness set).
func (t *Transaction) Bytes() []byte {
	marshalUtil := marshalutil.New()
	marshalUtil.WriteBytes(t.essence.Bytes())
	for _, input := range t.essence.inputs {
		marshalUtil.WriteBytes(input.Witness().Bytes())
	}

	mintingWitnesses := t.MintingWitnesses()
	marshalUtil.WriteUint16(uint16(len(mintingWitnesses)))
	for _, mintingWitness := range mintingWitnesses {
		marshalUtil.WriteBytes(mintingWitness.Bytes())
	}

	signatures := t.Signatures()
	marshalUtil.WriteUint16(uint16(len(signatures)))
	for _, signature := range signatures {
		marshalUtil.WriteBytes(signature.Bytes())
	}

	datumHashes := make([]DatumHash, 0, len(t.data))
	for datumHash := range t.data {
		datumHashes = append(datumHashes, datumHash)
	}
	sort.Slice(datumHashes, func(i, j int) bool {
		return bytes.Compare(datumHashes[i][:], datumHashes[j][:]) < 0
	})
	marshalUtil.WriteUint16(uint16(len(datumHashes)))
	for _, datumHash := range datumHashes {
		writeLengthPrefixedBytes(marshalUtil, t.data[datumHash])
	}

	return marshalUtil.Bytes()
}

// String returns a human readable version of the Transaction.
func (t *Transaction) String() string {
	return stringify.Struct("Transaction",
		stringify.StructField("id", t.ID()),
		stringify.StructField("essence", t.essence),
		stringify.StructField("mintingWitnesses", t.MintingWitnesses()),
		stringify.StructField("signatures", t.Signatures()),
		stringify.StructField("data", len(t.data)),
	)
}

func (t *Transaction) modifyEssence(modify func(essence *TransactionEssence)) *Transaction {
	essence := t.essence.clone()
	modify(essence)

	return t.clone(essence)
}

func (t *Transaction) clone(essence *TransactionEssence) *Transaction {
	cloned := &Transaction{
		essence:          essence,
		mintingWitnesses: make(map[CurrencySymbol]*MintingWitness, len(t.mintingWitnesses)),
		signatures:       make(map[PubKeyHash]*ED25519Signature, len(t.signatures)),
		data:             make(map[DatumHash]Datum, len(t.data)),
	}
	for symbol, mintingWitness := range t.mintingWitnesses {
		cloned.mintingWitnesses[symbol] = mintingWitness
	}
	for pubKeyHash, signature := range t.signatures {
		cloned.signatures[pubKeyHash] = signature
	}
	for datumHash, datum := range t.data {
		cloned.data[datumHash] = datum
	}

	return cloned
}

func (t *Transaction) signers() (pubKeyHashes []PubKeyHash) {
	pubKeyHashes = make([]PubKeyHash, 0, len(t.signatures))
	for pubKeyHash := range t.signatures {
		pubKeyHashes = append(pubKeyHashes, pubKeyHash)
	}
	sortPubKeyHashes(pubKeyHashes)

	return
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region utility functions ////////////////////////////////////////////////////////////////////////////////////////////

func sortPubKeyHashes(pubKeyHashes []PubKeyHash) {
	sort.Slice(pubKeyHashes, func(i, j int) bool {
		return bytes.Compare(pubKeyHashes[i][:], pubKeyHashes[j][:]) < 0
	})
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
