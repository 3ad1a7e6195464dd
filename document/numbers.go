package document

import (
	"bytes"
	"math/big"
	"strconv"
)

// maxNegatableUint64 is the magnitude of math.MinInt64: the one uint64 value
// a negative literal can hold that a positive literal of the same magnitude
// cannot (int64's range is asymmetric).
const maxNegatableUint64 = 1 << 63

// parseInteger parses a decimal, hex, octal, or binary integer literal
// (underscores already validated by the tokenizer) into an int64.
//
// overflowed reports whether the literal's magnitude exceeds what an int64
// can hold. Per SPEC_FULL.md's value model such a literal is not an error —
// the caller stores it as KindFloatRaw, preserving the original text,
// instead of an integer the value model has no arbitrary-precision type to
// hold it in.
func parseInteger(lit []byte, base NumberBase) (value int64, overflowed bool, err error) {
	b := lit
	negative := false
	if len(b) > 0 && (b[0] == '+' || b[0] == '-') {
		negative = b[0] == '-'
		b = b[1:]
	}

	radix := 10
	switch base {
	case Base16:
		radix = 16
		b = b[2:]
	case Base8:
		radix = 8
		b = b[2:]
	case Base2:
		radix = 2
		b = b[2:]
	}

	b = bytes.ReplaceAll(b, []byte{'_'}, nil)

	v, err := strconv.ParseUint(string(b), radix, 64)
	if err != nil {
		// The only way ParseUint can fail here, given the tokenizer already
		// validated digit/underscore placement, is the value overflowing
		// uint64 itself — larger in magnitude than any int64 or float_raw
		// fallback needs to distinguish, so treat it the same as any other
		// int64 overflow.
		return 0, true, nil
	}

	if negative {
		if v > maxNegatableUint64 {
			return 0, true, nil
		}
		return -int64(v), false, nil
	}
	if v > maxNegatableUint64-1 {
		return 0, true, nil
	}
	return int64(v), false, nil
}

// parseFloat parses a decimal float literal into a float64, reporting
// whether that float64 is an exact representation of the literal's decimal
// value (the "IEEE-754 round-trip is exact" test from SPEC_FULL.md's value
// model) rather than a rounded approximation of it. Comparing the literal's
// shortest re-rendered text against itself is not a meaningful test here: a
// float64 always re-parses back to itself bit for bit, so that comparison
// is true even when the original literal carried more decimal precision
// than a float64 can hold. Instead the literal is parsed a second time at
// arbitrary precision (big.Float) and compared against the float64 widened
// back to the same precision; any difference means the literal lost
// precision on the way to float64 and must be kept as KindFloatRaw.
func parseFloat(lit []byte) (f float64, roundTrips bool, err error) {
	clean := bytes.ReplaceAll(lit, []byte{'_'}, nil)
	f, err = strconv.ParseFloat(string(clean), 64)
	if err != nil {
		return 0, false, err
	}

	exact, _, err := big.ParseFloat(string(clean), 10, 200, big.ToNearestEven)
	if err != nil {
		return f, false, nil
	}
	widened := new(big.Float).SetPrec(200).SetFloat64(f)
	return f, exact.Cmp(widened) == 0, nil
}
