package ledgerstate

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/generics/dataflow"
	"github.com/iotaledger/hive.go/types"
)

// region TxValidator //////////////////////////////////////////////////////////////////////////////////////////////////

// TxValidator bundles the rules that decide whether a Transaction can be applied to a UTXOIndex.
type TxValidator struct {
	evaluator ScriptEvaluator
	options   *options
}

// NewTxValidator returns a TxValidator that runs Scripts with the given ScriptEvaluator.
func NewTxValidator(evaluator ScriptEvaluator, opts ...Option) *TxValidator {
	return &TxValidator{
		evaluator: evaluator,
		options:   newOptions(opts...),
	}
}

// FeePolicy returns the FeePolicy that is enforced by the TxValidator.
func (v *TxValidator) FeePolicy() FeePolicy {
	return v.options.feePolicy
}

// ValidateTransaction checks the Transaction against the UTXOIndex at the given Slot. The cheap structural checks run
// first, so Scripts are only evaluated for Transactions that are otherwise valid. The UTXOIndex is never modified.
func (v *TxValidator) ValidateTransaction(index *UTXOIndex, tx *Transaction, currentSlot Slot) (err error) {
	return dataflow.New[*validationParams](
		v.checkEncodingLimitsCommand,
		v.checkInputsExistCommand,
		v.checkDuplicateInputsCommand,
		v.checkOutputsCommand,
		v.checkValidityIntervalCommand,
		v.checkFeeCommand,
		v.checkValueConservationCommand,
		v.checkRequiredSignersCommand,
		v.checkInputWitnessesCommand,
		v.checkMintingPoliciesCommand,
	).Run(&validationParams{
		Index:       index,
		Transaction: tx,
		CurrentSlot: currentSlot,
	})
}

// ApplyTransaction validates the Transaction and returns the UTXOIndex that results from applying it.
func (v *TxValidator) ApplyTransaction(index *UTXOIndex, tx *Transaction, currentSlot Slot) (updatedIndex *UTXOIndex, err error) {
	if err = v.ValidateTransaction(index, tx, currentSlot); err != nil {
		return nil, err
	}

	return index.ApplyTransaction(tx)
}

// checkEncodingLimitsCommand is a ChainedCommand that aborts the DataFlow if the Transaction can not be encoded
// without truncating one of its length fields.
func (v *TxValidator) checkEncodingLimitsCommand(params *validationParams, next dataflow.Next[*validationParams]) (err error) {
	if err = params.Transaction.checkEncodingLimits(); err != nil {
		return err
	}

	return next(params)
}

// checkInputsExistCommand is a ChainedCommand that aborts the DataFlow if the Transaction has no Inputs or if any of
// the consumed Outputs is not part of the UTXOIndex.
func (v *TxValidator) checkInputsExistCommand(params *validationParams, next dataflow.Next[*validationParams]) (err error) {
	if len(params.Transaction.Inputs()) == 0 {
		return errors.Errorf("%s: %w", params.Transaction.ID(), ErrNoInputs)
	}

	if params.SpentOutputs, err = params.Index.ResolveInputs(params.Transaction); err != nil {
		return err
	}

	return next(params)
}

// checkDuplicateInputsCommand is a ChainedCommand that aborts the DataFlow if an Output is consumed twice.
func (v *TxValidator) checkDuplicateInputsCommand(params *validationParams, next dataflow.Next[*validationParams]) (err error) {
	seenOutputIDs := make(map[OutputID]types.Empty, len(params.Transaction.Inputs()))
	for _, input := range params.Transaction.Inputs() {
		if _, seen := seenOutputIDs[input.ReferencedOutputID()]; seen {
			return errors.Errorf("%s is consumed more than once: %w", input.ReferencedOutputID().Base58(), ErrDuplicateTxIn)
		}
		seenOutputIDs[input.ReferencedOutputID()] = types.Void
	}

	return next(params)
}

// checkOutputsCommand is a ChainedCommand that aborts the DataFlow if an Output holds a negative or empty Value.
func (v *TxValidator) checkOutputsCommand(params *validationParams, next dataflow.Next[*validationParams]) (err error) {
	for i, output := range params.Transaction.Outputs() {
		if !output.Value().IsPositive() {
			return errors.Errorf("output %d holds %s: %w", i, output.Value(), ErrInvalidOutput)
		}
	}

	return next(params)
}

// checkValidityIntervalCommand is a ChainedCommand that aborts the DataFlow if the current Slot lies outside of the
// ValidityInterval.
func (v *TxValidator) checkValidityIntervalCommand(params *validationParams, next dataflow.Next[*validationParams]) (err error) {
	if validity := params.Transaction.ValidityInterval(); !validity.Contains(params.CurrentSlot) {
		return errors.Errorf("slot %s is not in %s: %w", params.CurrentSlot, validity, ErrCurrentSlotOutOfRange)
	}

	return next(params)
}

// checkFeeCommand is a ChainedCommand that aborts the DataFlow if the fee is below the minimum of the FeePolicy.
func (v *TxValidator) checkFeeCommand(params *validationParams, next dataflow.Next[*validationParams]) (err error) {
	if params.Transaction.Fee() > math.MaxInt64 {
		return errors.Errorf("fee %d does not fit into a quantity: %w", params.Transaction.Fee(), ErrValueOverflow)
	}

	if minFee := v.options.feePolicy.MinFee(params.Transaction); params.Transaction.Fee() < minFee {
		return errors.Errorf("fee %d is below the minimum of %d: %w", params.Transaction.Fee(), minFee, ErrFeeTooSmall)
	}

	return next(params)
}

// checkValueConservationCommand is a ChainedCommand that aborts the DataFlow if inputs plus minted Value do not
// exactly equal outputs plus fee.
func (v *TxValidator) checkValueConservationCommand(params *validationParams, next dataflow.Next[*validationParams]) (err error) {
	spentValues := make([]Value, 0, len(params.SpentOutputs)+1)
	for _, spentOutput := range params.SpentOutputs {
		spentValues = append(spentValues, spentOutput.Value())
	}
	consumed, err := SafeSumValues(append(spentValues, params.Transaction.Mint())...)
	if err != nil {
		return errors.Errorf("failed to sum consumed value: %w", err)
	}

	producedValues := make([]Value, 0, len(params.Transaction.Outputs())+1)
	for _, output := range params.Transaction.Outputs() {
		producedValues = append(producedValues, output.Value())
	}
	produced, err := SafeSumValues(append(producedValues, params.Transaction.FeeValue())...)
	if err != nil {
		return errors.Errorf("failed to sum produced value: %w", err)
	}

	if !consumed.Equal(produced) {
		return errors.Errorf("consumed %s but produced %s: %w", consumed, produced, ErrValueNotPreserved)
	}

	return next(params)
}

// checkRequiredSignersCommand is a ChainedCommand that aborts the DataFlow if a required signer did not provide a
// valid signature.
func (v *TxValidator) checkRequiredSignersCommand(params *validationParams, next dataflow.Next[*validationParams]) (err error) {
	for _, pubKeyHash := range params.Transaction.RequiredSigners() {
		if !v.signedBy(params, pubKeyHash) {
			return errors.Errorf("required signer %s: %w", pubKeyHash.Base58(), ErrSignatureMissing)
		}
	}

	return next(params)
}

// checkInputWitnessesCommand is a ChainedCommand that aborts the DataFlow if any consumed Output is not unlocked by
// its Witness.
func (v *TxValidator) checkInputWitnessesCommand(params *validationParams, next dataflow.Next[*validationParams]) (err error) {
	for _, input := range params.Transaction.Inputs() {
		spentOutput := params.SpentOutputs[input.ReferencedOutputID()]

		switch address := spentOutput.Address().(type) {
		case *ED25519Address:
			err = v.checkPubKeyWitness(params, input, address)
		case *ScriptAddress:
			err = v.checkScriptWitness(params, input, address, spentOutput)
		default:
			err = errors.Errorf("unsupported address type %s: %w", spentOutput.Address().Type(), ErrWitnessMismatch)
		}

		if err != nil {
			return errors.Errorf("failed to unlock %s: %w", input.ReferencedOutputID().Base58(), err)
		}
	}

	return next(params)
}

// checkMintingPoliciesCommand is a ChainedCommand that aborts the DataFlow if a minted CurrencySymbol is not
// authorized by its MintingPolicy.
func (v *TxValidator) checkMintingPoliciesCommand(params *validationParams, next dataflow.Next[*validationParams]) (err error) {
	checkedSymbols := make(map[CurrencySymbol]types.Empty)
	for _, assetID := range params.Transaction.Mint().AssetIDs() {
		if _, checked := checkedSymbols[assetID.CurrencySymbol]; checked {
			continue
		}
		checkedSymbols[assetID.CurrencySymbol] = types.Void

		purpose := NewMintingPurpose(assetID.CurrencySymbol)
		mintingWitness, exists := params.Transaction.MintingWitness(assetID.CurrencySymbol)
		if !exists || mintingWitness.Policy().CurrencySymbol() != assetID.CurrencySymbol {
			return errors.Errorf("failed to mint %s: %w", assetID.CurrencySymbol, newScriptError(ErrMintingPolicyFailure, purpose, "minting policy missing"))
		}

		arguments := NewMintingArguments(mintingWitness.Redeemer(), NewScriptContext(params.txInfo(), purpose))
		if evaluationErr := v.evaluate(mintingWitness.Policy().Script(), arguments); evaluationErr != nil {
			return errors.Errorf("failed to mint %s: %w", assetID.CurrencySymbol, newScriptError(ErrMintingPolicyFailure, purpose, evaluationErr.Error()))
		}
	}

	return next(params)
}

func (v *TxValidator) checkPubKeyWitness(params *validationParams, input *Input, address *ED25519Address) (err error) {
	if input.Witness().Type() != PubKeyWitnessType {
		return errors.Errorf("%s can not unlock an ED25519Address: %w", input.Witness().Type(), ErrWitnessMismatch)
	}

	if !v.signedBy(params, address.PubKeyHash()) {
		return errors.Errorf("no valid signature of %s: %w", address.PubKeyHash().Base58(), ErrSignatureMissing)
	}

	return nil
}

func (v *TxValidator) checkScriptWitness(params *validationParams, input *Input, address *ScriptAddress, spentOutput *Output) (err error) {
	scriptWitness, ok := input.Witness().(*ScriptWitness)
	if !ok {
		return errors.Errorf("%s can not unlock a ScriptAddress: %w", input.Witness().Type(), ErrWitnessMismatch)
	}

	if scriptWitness.Validator().Hash() != address.ValidatorHash() {
		return errors.Errorf("validator %s does not lock %s: %w", scriptWitness.Validator().Hash().Base58(), address.Base58(), ErrInvalidScriptHash)
	}

	datumHash, hasDatum := spentOutput.DatumHash()
	if !hasDatum {
		return errors.Errorf("spent script output carries no datum hash: %w", ErrInvalidDatumHash)
	}
	if scriptWitness.Datum().Hash() != datumHash {
		return errors.Errorf("datum hashes to %s instead of %s: %w", scriptWitness.Datum().Hash().Base58(), datumHash.Base58(), ErrInvalidDatumHash)
	}

	purpose := NewSpendingPurpose(input.ReferencedOutputID())
	arguments := NewSpendingArguments(scriptWitness.Datum(), scriptWitness.Redeemer(), NewScriptContext(params.txInfo(), purpose))
	if evaluationErr := v.evaluate(scriptWitness.Validator().Script(), arguments); evaluationErr != nil {
		return newScriptError(ErrScriptFailure, purpose, evaluationErr.Error())
	}

	return nil
}

// evaluate runs the Script and turns a panicking ScriptEvaluator into an error.
func (v *TxValidator) evaluate(script Script, arguments *ScriptArguments) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("evaluator panicked: %v", r)
		}
	}()

	return v.evaluator.EvaluateScript(script, arguments)
}

func (v *TxValidator) signedBy(params *validationParams, pubKeyHash PubKeyHash) bool {
	signature, exists := params.Transaction.Signature(pubKeyHash)

	return exists && signature.SignatureValid(params.Transaction.ID().Bytes())
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region validationParams /////////////////////////////////////////////////////////////////////////////////////////////

// validationParams is a container for parameters that have to be determined when validating a Transaction.
type validationParams struct {
	Index        *UTXOIndex
	Transaction  *Transaction
	CurrentSlot  Slot
	SpentOutputs OutputsByID

	cachedTxInfo *TxInfo
}

// txInfo returns the TxInfo of the Transaction (it is only built once per validation).
func (v *validationParams) txInfo() *TxInfo {
	if v.cachedTxInfo == nil {
		v.cachedTxInfo = NewTxInfo(v.Transaction, v.SpentOutputs)
	}

	return v.cachedTxInfo
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
