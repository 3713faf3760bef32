package ledgerstate

import (
	"math"

	"github.com/iotaledger/hive.go/stringify"
)

// FeePolicy defines the minimum fee that a Transaction has to pay. The minimum is computed as
// Constant + PerByte * len(essence bytes).
type FeePolicy struct {
	Constant uint64
	PerByte  uint64
}

// ZeroFeePolicy accepts any fee.
var ZeroFeePolicy = FeePolicy{}

// MinFee returns the minimum fee for the given Transaction. The result saturates at math.MaxUint64.
func (f FeePolicy) MinFee(tx *Transaction) uint64 {
	sizeFee, valid := SafeMulUint64(f.PerByte, uint64(len(tx.Essence().Bytes())))
	if !valid {
		return math.MaxUint64
	}

	minFee, valid := SafeAddUint64(f.Constant, sizeFee)
	if !valid {
		return math.MaxUint64
	}

	return minFee
}

// String returns a human readable version of the FeePolicy.
func (f FeePolicy) String() string {
	return stringify.Struct("FeePolicy",
		stringify.StructField("constant", f.Constant),
		stringify.StructField("perByte", f.PerByte),
	)
}
