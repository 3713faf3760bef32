package ledgerstate

import (
	"math"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/iotaledger/hive.go/cerrors"
	"github.com/iotaledger/hive.go/marshalutil"
)

// region Slot /////////////////////////////////////////////////////////////////////////////////////////////////////////

// Slot is the discrete unit of time of the ledger.
type Slot uint64

// MaxSlot is used as the open upper bound of an unbounded ValidityInterval.
const MaxSlot Slot = math.MaxUint64

// String returns a human readable version of the Slot.
func (s Slot) String() string {
	if s == MaxSlot {
		return "∞"
	}

	return strconv.FormatUint(uint64(s), 10)
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////

// region ValidityInterval /////////////////////////////////////////////////////////////////////////////////////////////

// ValidityInterval is the half-open range of Slots [start, end) in which a Transaction can be included.
type ValidityInterval struct {
	start Slot
	end   Slot
}

// AlwaysValid is the ValidityInterval that contains every Slot.
var AlwaysValid = ValidityInterval{start: 0, end: MaxSlot}

// NewValidityInterval returns the interval [start, end).
func NewValidityInterval(start, end Slot) ValidityInterval {
	return ValidityInterval{start: start, end: end}
}

// IntervalFrom returns the interval that starts at the given Slot and is unbounded above.
func IntervalFrom(start Slot) ValidityInterval {
	return ValidityInterval{start: start, end: MaxSlot}
}

// IntervalTo returns the interval that ends (exclusively) at the given Slot.
func IntervalTo(end Slot) ValidityInterval {
	return ValidityInterval{start: 0, end: end}
}

// ValidityIntervalFromMarshalUtil unmarshals a ValidityInterval using a MarshalUtil (for easier unmarshaling).
func ValidityIntervalFromMarshalUtil(marshalUtil *marshalutil.MarshalUtil) (interval ValidityInterval, err error) {
	start, err := marshalUtil.ReadUint64()
	if err != nil {
		err = errors.Errorf("failed to parse start of ValidityInterval (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}
	end, err := marshalUtil.ReadUint64()
	if err != nil {
		err = errors.Errorf("failed to parse end of ValidityInterval (%v): %w", err, cerrors.ErrParseBytesFailed)
		return
	}

	return NewValidityInterval(Slot(start), Slot(end)), nil
}

// Start returns the first Slot of the interval.
func (v ValidityInterval) Start() Slot {
	return v.start
}

// End returns the first Slot after the interval.
func (v ValidityInterval) End() Slot {
	return v.end
}

// Contains returns true if the Slot lies within [start, end).
func (v ValidityInterval) Contains(slot Slot) bool {
	return v.start <= slot && slot < v.end
}

// IsEmpty returns true if the interval contains no Slot.
func (v ValidityInterval) IsEmpty() bool {
	return v.start >= v.end
}

// Includes returns true if every Slot of the other interval is contained in this interval.
func (v ValidityInterval) Includes(other ValidityInterval) bool {
	if other.IsEmpty() {
		return true
	}

	return v.start <= other.start && other.end <= v.end
}

// Intersect returns the interval of Slots that are contained in both intervals.
func (v ValidityInterval) Intersect(other ValidityInterval) ValidityInterval {
	result := v
	if other.start > result.start {
		result.start = other.start
	}
	if other.end < result.end {
		result.end = other.end
	}

	return result
}

// Bytes returns a marshaled version of the ValidityInterval.
func (v ValidityInterval) Bytes() []byte {
	return marshalutil.New(2 * marshalutil.Uint64Size).
		WriteUint64(uint64(v.start)).
		WriteUint64(uint64(v.end)).
		Bytes()
}

// String returns a human readable version of the ValidityInterval.
func (v ValidityInterval) String() string {
	return "[" + v.start.String() + ", " + v.end.String() + ")"
}

// endregion ///////////////////////////////////////////////////////////////////////////////////////////////////////////
