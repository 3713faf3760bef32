package ledgerstate

// SafeAddUint64 adds two uint64 values. It returns the result and a valid flag that indicates whether the addition is
// valid without causing an overflow.
func SafeAddUint64(a, b uint64) (result uint64, valid bool) {
	result = a + b
	valid = result >= a
	return
}

// SafeMulUint64 multiplies two uint64 values. It returns the result and a valid flag that indicates whether the
// multiplication is valid without causing an overflow.
func SafeMulUint64(a, b uint64) (result uint64, valid bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	result = a * b
	valid = result/b == a
	return
}

// SafeAddInt64 adds two int64 values. It returns the result and a valid flag that indicates whether the addition is
// valid without causing an overflow.
func SafeAddInt64(a, b int64) (result int64, valid bool) {
	result = a + b
	valid = (b >= 0 && result >= a) || (b < 0 && result < a)
	return
}
