package constraints

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/stringify"

	"github.com/ledgersim/ledgersim/packages/ledgerstate"
	"github.com/ledgersim/ledgersim/packages/typed"
)

// region ScriptLookups ////////////////////////////////////////////////////////////////////////////////////////////////

// ScriptLookups contains the scripts and data that ResolveConstraints may need. TypedValidator is the own Validator
// with datum type D and redeemer type R; it is only required if the TxConstraints have own inputs or outputs.
type ScriptLookups[D, R any] struct {
	TypedValidator  *typed.Validator[D, R]
	OtherScripts    map[ledgerstate.ValidatorHash]*ledgerstate.Validator
	OtherData       map[ledgerstate.DatumHash]ledgerstate.Datum
	MintingPolicies map[ledgerstate.MintingPolicyHash]*ledgerstate.MintingPolicy
}

// NewScriptLookups returns empty ScriptLookups that know the given typed Validator (which can be nil).
func NewScriptLookups[D, R any](typedValidator *typed.Validator[D, R]) *ScriptLookups[D, R] {
	return &ScriptLookups[D, R]{
		TypedValidator:  typedValidator,
		OtherScripts:    make(map[ledgerstate.ValidatorHash]*ledgerstate.Validator),
		OtherData:       make(map[ledgerstate.DatumHash]ledgerstate.Datum),
		MintingPolicies: make(map[ledgerstate.MintingPolicyHash]*ledgerstate.MintingPolicy),
	}
}

// WithOtherScript adds a Validator to the lookups.
func (s *ScriptLookups[D, R]) WithOtherScript(validators ...*ledgerstate.Validator) *ScriptLookups[D, R] {
	for _, validator := range validators {
		s.OtherScripts[validator.Hash()] = validator
	}

	return s
}

// WithDatum adds Data to the lookups.
func (s *ScriptLookups[D, R]) WithDatum(data ...ledgerstate.Datum) *ScriptLookups[D, R] {
	for _, datum := range data {
		s.OtherData[datum.Hash()] = datum
	}

	return s
}

// WithMintingPolicy adds MintingPolicies to the lookups.
func (s *ScriptLookups[D, R]) WithMintingPolicy(policies ...*ledgerstate.MintingPolicy) *ScriptLookups[D, R] {
	for _, policy := range policies {
		s.MintingPolicies[policy.Hash()] = policy
	}

	return s
}

func (s *ScriptLookups[D, R]) validator(validatorHash ledgerstate.ValidatorHash) (validator *ledgerstate.Validator, exists bool) {
	if s.TypedValidator != nil && s.TypedValidator.Hash() == validatorHash {
		return s.TypedValidator.Untyped(), true
	}
	validator, exists = s.OtherScripts[validatorHash]

	return
}

func (s *ScriptLookups[D, R]) datum(datumHash ledgerstate.DatumHash) (datum ledgerstate.Datum, err error) {
	datum, exists := s.OtherData[datumHash]
	if !exists {
		return nil, errors.Errorf("%s: %w", datumHash, ErrDatumNotFound)
	}
	if datum.Hash() != datumHash {
		return nil, errors.Errorf("%s: %w", datumHash, ErrDatumWrongHash)
	}

	return datum, nil
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region UnbalancedTx /////////////////////////////////////////////////////////////////////////////////////////////////

// UnbalancedTx is the result of ResolveConstraints. The Transaction neither pays a fee nor returns change: a balancing
// step has to add inputs, outputs and signatures before it can be submitted.
type UnbalancedTx struct {
	// Transaction is the draft Transaction.
	Transaction *ledgerstate.Transaction

	// RequiredSignatories contains the keys whose Outputs are consumed or whose signature is required.
	RequiredSignatories []ledgerstate.PubKeyHash

	// SpentOutputs contains the Outputs consumed by the Transaction.
	SpentOutputs ledgerstate.OutputsByID

	// ValueSpentInputs is the Value that the consumed Outputs have to hold at least.
	ValueSpentInputs ledgerstate.Value

	// ValueSpentOutputs is the Value that the created Outputs have to hold at least.
	ValueSpentOutputs ledgerstate.Value

	// ValidityRange is the ValidityInterval of the Transaction.
	ValidityRange ledgerstate.ValidityInterval
}

// MissingValue returns the Value that the balancing step has to add to the inputs so that the inputs (together with
// the minted Value) cover the outputs and all MustSpendAtLeast and MustProduceAtLeast requirements are met.
func (u *UnbalancedTx) MissingValue() ledgerstate.Value {
	spent := u.SpentOutputs.Value()
	produced := maxValue(u.Transaction.Outputs().Value(), u.ValueSpentOutputs)

	_, missingForOutputs := produced.Subtract(spent.Add(u.Transaction.Mint())).Split()
	_, missingForInputs := u.ValueSpentInputs.Subtract(spent).Split()

	return maxValue(missingForOutputs, missingForInputs)
}

// String returns a human readable version of the UnbalancedTx.
func (u *UnbalancedTx) String() string {
	return stringify.Struct("UnbalancedTx",
		stringify.StructField("transaction", u.Transaction),
		stringify.StructField("requiredSignatories", u.RequiredSignatories),
		stringify.StructField("spentOutputs", u.SpentOutputs),
		stringify.StructField("valueSpentInputs", u.ValueSpentInputs),
		stringify.StructField("valueSpentOutputs", u.ValueSpentOutputs),
		stringify.StructField("validityRange", u.ValidityRange),
	)
}

func maxValue(a, b ledgerstate.Value) ledgerstate.Value {
	quantities := make(map[ledgerstate.AssetID]int64)
	a.ForEach(func(assetID ledgerstate.AssetID, quantity int64) bool {
		quantities[assetID] = quantity
		return true
	})
	b.ForEach(func(assetID ledgerstate.AssetID, quantity int64) bool {
		if existing, exists := quantities[assetID]; !exists || quantity > existing {
			quantities[assetID] = quantity
		}
		return true
	})
	for assetID, quantity := range quantities {
		if quantity < 0 {
			quantities[assetID] = 0
		}
	}

	return ledgerstate.NewValue(quantities)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ResolveConstraints ///////////////////////////////////////////////////////////////////////////////////////////

// ResolveConstraints turns TxConstraints into an UnbalancedTx. The TxConstraints are processed in order, followed by
// the own inputs and the own outputs. Referenced Outputs are looked up in utxos (usually an AddressMap or UTXOIndex).
// Conflicting requirements fail instead of picking one of them.
func ResolveConstraints[D, R any](lookups *ScriptLookups[D, R], constraints *TxConstraints[R, D], utxos ledgerstate.OutputResolver) (unbalancedTx *UnbalancedTx, err error) {
	resolver := newResolver(lookups, utxos)

	for _, constraint := range constraints.Constraints {
		if err = resolver.resolve(constraint); err != nil {
			return nil, err
		}
	}
	for _, ownInput := range constraints.OwnInputs {
		if err = resolver.resolveOwnInput(ownInput); err != nil {
			return nil, err
		}
	}
	for _, ownOutput := range constraints.OwnOutputs {
		if err = resolver.resolveOwnOutput(ownOutput); err != nil {
			return nil, err
		}
	}

	return resolver.unbalancedTx(), nil
}

// resolver accumulates the parts of the UnbalancedTx.
type resolver[D, R any] struct {
	lookups *ScriptLookups[D, R]
	utxos   ledgerstate.OutputResolver

	inputs            []*ledgerstate.Input
	inputRedeemers    map[ledgerstate.OutputID]ledgerstate.Redeemer
	spentOutputs      ledgerstate.OutputsByID
	outputs           []*ledgerstate.Output
	mint              ledgerstate.Value
	mintingWitnesses  map[ledgerstate.CurrencySymbol]*ledgerstate.MintingWitness
	validity          ledgerstate.ValidityInterval
	requiredSigners   []ledgerstate.PubKeyHash
	signatories       []ledgerstate.PubKeyHash
	data              map[ledgerstate.DatumHash]ledgerstate.Datum
	valueSpentInputs  ledgerstate.Value
	valueSpentOutputs ledgerstate.Value
}

func newResolver[D, R any](lookups *ScriptLookups[D, R], utxos ledgerstate.OutputResolver) *resolver[D, R] {
	return &resolver[D, R]{
		lookups:          lookups,
		utxos:            utxos,
		inputRedeemers:   make(map[ledgerstate.OutputID]ledgerstate.Redeemer),
		spentOutputs:     make(ledgerstate.OutputsByID),
		mintingWitnesses: make(map[ledgerstate.CurrencySymbol]*ledgerstate.MintingWitness),
		validity:         ledgerstate.AlwaysValid,
		data:             make(map[ledgerstate.DatumHash]ledgerstate.Datum),
	}
}

func (r *resolver[D, R]) resolve(constraint TxConstraint) error {
	switch c := constraint.(type) {
	case MustIncludeDatum:
		r.data[c.Datum.Hash()] = c.Datum
	case MustValidateIn:
		r.validity = r.validity.Intersect(c.Interval)
	case MustBeSignedBy:
		r.requiredSigners = appendUnique(r.requiredSigners, c.PubKeyHash)
		r.signatories = appendUnique(r.signatories, c.PubKeyHash)
	case MustSpendAtLeast:
		r.valueSpentInputs = r.valueSpentInputs.Add(c.Value)
	case MustProduceAtLeast:
		r.valueSpentOutputs = r.valueSpentOutputs.Add(c.Value)
	case MustSpendPubKeyOutput:
		return r.spendPubKeyOutput(c.OutputID)
	case MustSpendScriptOutput:
		return r.spendScriptOutput(c.OutputID, c.Redeemer)
	case MustMintValue:
		return r.mintValue(c)
	case MustPayToPubKey:
		r.outputs = append(r.outputs, ledgerstate.NewOutput(ledgerstate.NewED25519AddressFromPubKeyHash(c.PubKeyHash), c.Value))
	case MustPayToOtherScript:
		r.outputs = append(r.outputs, ledgerstate.NewScriptOutput(ledgerstate.NewScriptAddress(c.ValidatorHash), c.Value, c.Datum.Hash()))
		r.data[c.Datum.Hash()] = c.Datum
	case MustHashDatum:
		if c.Datum.Hash() != c.DatumHash {
			return errors.Errorf("%s: %w", c.DatumHash, ErrDatumWrongHash)
		}
		r.data[c.DatumHash] = c.Datum
	case MustSatisfyAnyOf:
		return r.satisfyAnyOf(c)
	default:
		return errors.Errorf("unsupported TxConstraint %T", constraint)
	}

	return nil
}

func (r *resolver[D, R]) spendPubKeyOutput(outputID ledgerstate.OutputID) error {
	output, err := r.output(outputID)
	if err != nil {
		return err
	}
	address, isPubKeyAddress := output.Address().(*ledgerstate.ED25519Address)
	if !isPubKeyAddress {
		return errors.Errorf("%s is locked by a script: %w", outputID, ErrTxOutRefWrongType)
	}

	if _, alreadySpent := r.spentOutputs[outputID]; alreadySpent {
		if _, spentByScript := r.inputRedeemers[outputID]; spentByScript {
			return errors.Errorf("%s: %w", outputID, ErrTxOutRefWrongType)
		}

		return nil
	}

	r.inputs = append(r.inputs, ledgerstate.NewPubKeyInput(outputID))
	r.spentOutputs[outputID] = output
	r.signatories = appendUnique(r.signatories, address.PubKeyHash())

	return nil
}

func (r *resolver[D, R]) spendScriptOutput(outputID ledgerstate.OutputID, redeemer ledgerstate.Redeemer) error {
	output, err := r.output(outputID)
	if err != nil {
		return err
	}
	address, isScriptAddress := output.Address().(*ledgerstate.ScriptAddress)
	if !isScriptAddress {
		return errors.Errorf("%s is locked by a key: %w", outputID, ErrTxOutRefWrongType)
	}
	datumHash, hasDatum := output.DatumHash()
	if !hasDatum {
		return errors.Errorf("%s has no datum hash: %w", outputID, ErrTxOutRefWrongType)
	}

	if _, alreadySpent := r.spentOutputs[outputID]; alreadySpent {
		if existingRedeemer, exists := r.inputRedeemers[outputID]; !exists || !bytes.Equal(existingRedeemer, redeemer) {
			return errors.Errorf("%s: %w", outputID, ErrAmbiguousRedeemer)
		}

		return nil
	}

	validator, exists := r.lookups.validator(address.ValidatorHash())
	if !exists {
		return errors.Errorf("%s: %w", address.ValidatorHash(), ErrValidatorHashNotFound)
	}
	datum, err := r.lookups.datum(datumHash)
	if err != nil {
		return err
	}

	r.inputs = append(r.inputs, ledgerstate.NewScriptInput(outputID, ledgerstate.NewScriptWitness(validator, datum, redeemer)))
	r.inputRedeemers[outputID] = redeemer
	r.spentOutputs[outputID] = output

	return nil
}

func (r *resolver[D, R]) mintValue(constraint MustMintValue) error {
	policy, exists := r.lookups.MintingPolicies[constraint.PolicyHash]
	if !exists {
		return errors.Errorf("%s: %w", constraint.PolicyHash, ErrMintingPolicyNotFound)
	}

	symbol := policy.CurrencySymbol()
	if existingWitness, exists := r.mintingWitnesses[symbol]; exists && !bytes.Equal(existingWitness.Redeemer(), constraint.Redeemer) {
		return errors.Errorf("%s: %w", symbol, ErrAmbiguousRedeemer)
	}

	r.mintingWitnesses[symbol] = ledgerstate.NewMintingWitness(policy, constraint.Redeemer)
	r.mint = r.mint.Add(ledgerstate.SingletonValue(symbol, constraint.TokenName, constraint.Quantity))

	return nil
}

func (r *resolver[D, R]) satisfyAnyOf(constraint MustSatisfyAnyOf) error {
	var lastErr error
	for _, alternative := range constraint.Alternatives {
		candidate := r.clone()
		if lastErr = candidate.resolveAll(alternative); lastErr == nil {
			*r = *candidate
			return nil
		}
	}
	if lastErr == nil {
		return errors.Errorf("no alternatives given: %w", ErrNoMatchingAlternative)
	}

	return errors.Errorf("%s: %w", lastErr.Error(), ErrNoMatchingAlternative)
}

func (r *resolver[D, R]) resolveAll(constraints []TxConstraint) error {
	for _, constraint := range constraints {
		if err := r.resolve(constraint); err != nil {
			return err
		}
	}

	return nil
}

func (r *resolver[D, R]) resolveOwnInput(ownInput InputConstraint[R]) error {
	if r.lookups.TypedValidator == nil {
		return errors.Errorf("own input %s: %w", ownInput.OutputID, ErrTypedValidatorMissing)
	}

	output, err := r.output(ownInput.OutputID)
	if err != nil {
		return err
	}
	if !output.Address().Equals(r.lookups.TypedValidator.Address()) {
		return errors.Errorf("%s is not locked by the own validator: %w", ownInput.OutputID, ErrTxOutRefWrongType)
	}

	redeemer, err := r.lookups.TypedValidator.EncodeRedeemer(ownInput.Redeemer)
	if err != nil {
		return err
	}

	return r.spendScriptOutput(ownInput.OutputID, redeemer)
}

func (r *resolver[D, R]) resolveOwnOutput(ownOutput OutputConstraint[D]) error {
	if r.lookups.TypedValidator == nil {
		return errors.Errorf("own output: %w", ErrTypedValidatorMissing)
	}

	output, datum, err := r.lookups.TypedValidator.Output(ownOutput.Datum, ownOutput.Value)
	if err != nil {
		return err
	}
	r.outputs = append(r.outputs, output)
	r.data[datum.Hash()] = datum

	return nil
}

func (r *resolver[D, R]) output(outputID ledgerstate.OutputID) (output *ledgerstate.Output, err error) {
	output, exists := r.utxos.Output(outputID)
	if !exists {
		return nil, errors.Errorf("%s: %w", outputID, ErrTxOutRefNotFound)
	}

	return output, nil
}

func (r *resolver[D, R]) unbalancedTx() *UnbalancedTx {
	tx := ledgerstate.UnitTransaction().
		WithInput(r.inputs...).
		WithOutput(r.outputs...).
		WithMint(r.mint).
		WithValidity(r.validity).
		WithRequiredSigner(r.requiredSigners...)
	for _, mintingWitness := range r.mintingWitnesses {
		tx = tx.WithMintingWitness(mintingWitness.Policy(), mintingWitness.Redeemer())
	}
	for _, datum := range r.data {
		tx = tx.WithDatum(datum)
	}

	return &UnbalancedTx{
		Transaction:         tx,
		RequiredSignatories: append([]ledgerstate.PubKeyHash{}, r.signatories...),
		SpentOutputs:        r.spentOutputs.Clone(),
		ValueSpentInputs:    r.valueSpentInputs,
		ValueSpentOutputs:   r.valueSpentOutputs,
		ValidityRange:       r.validity,
	}
}

func (r *resolver[D, R]) clone() *resolver[D, R] {
	cloned := *r
	cloned.inputs = append([]*ledgerstate.Input{}, r.inputs...)
	cloned.inputRedeemers = make(map[ledgerstate.OutputID]ledgerstate.Redeemer, len(r.inputRedeemers))
	for outputID, redeemer := range r.inputRedeemers {
		cloned.inputRedeemers[outputID] = redeemer
	}
	cloned.spentOutputs = r.spentOutputs.Clone()
	cloned.outputs = append([]*ledgerstate.Output{}, r.outputs...)
	cloned.mintingWitnesses = make(map[ledgerstate.CurrencySymbol]*ledgerstate.MintingWitness, len(r.mintingWitnesses))
	for symbol, mintingWitness := range r.mintingWitnesses {
		cloned.mintingWitnesses[symbol] = mintingWitness
	}
	cloned.requiredSigners = append([]ledgerstate.PubKeyHash{}, r.requiredSigners...)
	cloned.signatories = append([]ledgerstate.PubKeyHash{}, r.signatories...)
	cloned.data = make(map[ledgerstate.DatumHash]ledgerstate.Datum, len(r.data))
	for datumHash, datum := range r.data {
		cloned.data[datumHash] = datum
	}

	return &cloned
}

func appendUnique(pubKeyHashes []ledgerstate.PubKeyHash, pubKeyHash ledgerstate.PubKeyHash) []ledgerstate.PubKeyHash {
	for _, existing := range pubKeyHashes {
		if existing == pubKeyHash {
			return pubKeyHashes
		}
	}

	return append(pubKeyHashes, pubKeyHash)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
