package ledgerstate

import (
	"github.com/iotaledger/hive.go/stringify"
)

// region ScriptPurpose ////////////////////////////////////////////////////////////////////////////////////////////////

const (
	// SpendingPurposeType marks the execution of a Validator for a spent Output.
	SpendingPurposeType ScriptPurposeType = iota

	// MintingPurposeType marks the execution of a MintingPolicy.
	MintingPurposeType
)

// ScriptPurposeType represents the reason why a Script is executed.
type ScriptPurposeType uint8

// String returns a human readable representation of the ScriptPurposeType.
func (s ScriptPurposeType) String() string {
	return [...]string{
		"SpendingPurposeType",
		"MintingPurposeType",
	}[s]
}

// ScriptPurpose tells a Script which part of the Transaction it is validating.
type ScriptPurpose struct {
	purposeType    ScriptPurposeType
	outputID       OutputID
	currencySymbol CurrencySymbol
}

// NewSpendingPurpose returns the ScriptPurpose of a Validator that guards the given Output.
func NewSpendingPurpose(outputID OutputID) ScriptPurpose {
	return ScriptPurpose{
		purposeType: SpendingPurposeType,
		outputID:    outputID,
	}
}

// NewMintingPurpose returns the ScriptPurpose of the MintingPolicy of the given CurrencySymbol.
func NewMintingPurpose(symbol CurrencySymbol) ScriptPurpose {
	return ScriptPurpose{
		purposeType:    MintingPurposeType,
		currencySymbol: symbol,
	}
}

// Type returns the ScriptPurposeType.
func (s ScriptPurpose) Type() ScriptPurposeType {
	return s.purposeType
}

// OutputID returns the OutputID of the spent Output (only set for SpendingPurposeType).
func (s ScriptPurpose) OutputID() OutputID {
	return s.outputID
}

// CurrencySymbol returns the CurrencySymbol that is minted (only set for MintingPurposeType).
func (s ScriptPurpose) CurrencySymbol() CurrencySymbol {
	return s.currencySymbol
}

// String returns a human readable version of the ScriptPurpose.
func (s ScriptPurpose) String() string {
	if s.purposeType == MintingPurposeType {
		return stringify.Struct("ScriptPurpose",
			stringify.StructField("type", s.purposeType),
			stringify.StructField("currencySymbol", s.currencySymbol),
		)
	}

	return stringify.Struct("ScriptPurpose",
		stringify.StructField("type", s.purposeType),
		stringify.StructField("outputID", s.outputID.Base58()),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region TxInfo ///////////////////////////////////////////////////////////////////////////////////////////////////////

// InputInfo couples a consumed OutputID with the Output that it resolves to.
type InputInfo struct {
	OutputID OutputID
	Output   *Output
}

// TxInfo is the view of a Transaction that is visible to Scripts.
type TxInfo struct {
	ID          TransactionID
	Inputs      []*InputInfo
	Outputs     Outputs
	Fee         Value
	Mint        Value
	ValidRange  ValidityInterval
	Signatories []PubKeyHash
	Data        map[DatumHash]Datum
}

// NewTxInfo creates the TxInfo of the Transaction. The consumed Outputs have to be resolved already.
func NewTxInfo(tx *Transaction, spentOutputs OutputsByID) *TxInfo {
	inputs := make([]*InputInfo, 0, len(tx.Inputs()))
	for _, input := range tx.Inputs() {
		inputs = append(inputs, &InputInfo{
			OutputID: input.ReferencedOutputID(),
			Output:   spentOutputs[input.ReferencedOutputID()],
		})
	}

	return &TxInfo{
		ID:          tx.ID(),
		Inputs:      inputs,
		Outputs:     tx.Outputs(),
		Fee:         tx.FeeValue(),
		Mint:        tx.Mint(),
		ValidRange:  tx.ValidityInterval(),
		Signatories: tx.ValidSignatories(),
		Data:        tx.Data(),
	}
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ScriptContext ////////////////////////////////////////////////////////////////////////////////////////////////

// ScriptContext is passed to every Script and contains the TxInfo and the ScriptPurpose.
type ScriptContext struct {
	TxInfo  *TxInfo
	Purpose ScriptPurpose
}

// NewScriptContext is the constructor of the ScriptContext.
func NewScriptContext(txInfo *TxInfo, purpose ScriptPurpose) *ScriptContext {
	return &ScriptContext{
		TxInfo:  txInfo,
		Purpose: purpose,
	}
}

// OwnInput returns the InputInfo of the Output that is being validated.
func (s *ScriptContext) OwnInput() (inputInfo *InputInfo, exists bool) {
	if s.Purpose.Type() != SpendingPurposeType {
		return nil, false
	}

	for _, inputInfo = range s.TxInfo.Inputs {
		if inputInfo.OutputID == s.Purpose.OutputID() {
			return inputInfo, true
		}
	}

	return nil, false
}

// OwnAddress returns the Address of the Output that is being validated.
func (s *ScriptContext) OwnAddress() (address Address, exists bool) {
	inputInfo, exists := s.OwnInput()
	if !exists || inputInfo.Output == nil {
		return nil, false
	}

	return inputInfo.Output.Address(), true
}

// OwnCurrencySymbol returns the CurrencySymbol of the MintingPolicy that is being run.
func (s *ScriptContext) OwnCurrencySymbol() (symbol CurrencySymbol, exists bool) {
	if s.Purpose.Type() != MintingPurposeType {
		return symbol, false
	}

	return s.Purpose.CurrencySymbol(), true
}

// ValueSpent returns the total Value of all consumed Outputs.
func (s *ScriptContext) ValueSpent() (sum Value) {
	for _, inputInfo := range s.TxInfo.Inputs {
		if inputInfo.Output != nil {
			sum = sum.Add(inputInfo.Output.Value())
		}
	}

	return
}

// ValueProduced returns the total Value of all created Outputs.
func (s *ScriptContext) ValueProduced() Value {
	return s.TxInfo.Outputs.Value()
}

// OutputsAt returns the created Outputs that are locked at the given Address.
func (s *ScriptContext) OutputsAt(address Address) (outputs Outputs) {
	for _, output := range s.TxInfo.Outputs {
		if output.Address().Equals(address) {
			outputs = append(outputs, output)
		}
	}

	return
}

// ValuePaidTo returns the total Value that the Transaction locks at the given Address.
func (s *ScriptContext) ValuePaidTo(address Address) Value {
	return s.OutputsAt(address).Value()
}

// ValueLockedBy returns the total Value that the Transaction locks at the Address of the given Validator.
func (s *ScriptContext) ValueLockedBy(validatorHash ValidatorHash) Value {
	return s.ValuePaidTo(NewScriptAddress(validatorHash))
}

// FindDatum returns the Datum with the given hash if it is part of the Transaction.
func (s *ScriptContext) FindDatum(datumHash DatumHash) (datum Datum, exists bool) {
	datum, exists = s.TxInfo.Data[datumHash]

	return
}

// TxSignedBy returns true if the key with the given hash signed the Transaction.
func (s *ScriptContext) TxSignedBy(pubKeyHash PubKeyHash) bool {
	for _, signatory := range s.TxInfo.Signatories {
		if signatory == pubKeyHash {
			return true
		}
	}

	return false
}

// SpendsOutput returns true if the Transaction consumes the given Output.
func (s *ScriptContext) SpendsOutput(outputID OutputID) bool {
	for _, inputInfo := range s.TxInfo.Inputs {
		if inputInfo.OutputID == outputID {
			return true
		}
	}

	return false
}

// String returns a human readable version of the ScriptContext.
func (s *ScriptContext) String() string {
	return stringify.Struct("ScriptContext",
		stringify.StructField("txID", s.TxInfo.ID),
		stringify.StructField("purpose", s.Purpose),
	)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
