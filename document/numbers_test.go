package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInteger(t *testing.T) {
	tests := map[string]struct {
		lit  string
		base NumberBase
		want int64
	}{
		"decimal":          {"255", Base10, 255},
		"negative decimal":  {"-255", Base10, -255},
		"hex":              {"0xFF", Base16, 255},
		"octal":            {"0o17", Base8, 15},
		"binary":           {"0b101", Base2, 5},
		"underscored":      {"1_000_000", Base10, 1000000},
		"signed hex":       {"-0x1A", Base16, -26},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, overflowed, err := parseInteger([]byte(tt.lit), tt.base)
			require.NoError(t, err)
			require.False(t, overflowed)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIntegerOverflowBeyondUint64(t *testing.T) {
	_, overflowed, err := parseInteger([]byte("99999999999999999999999999"), Base10)
	require.NoError(t, err)
	assert.True(t, overflowed)
}

func TestParseIntegerOverflowPositiveBeyondMaxInt64(t *testing.T) {
	// 2^63, one past math.MaxInt64, fits in uint64 but not int64.
	_, overflowed, err := parseInteger([]byte("9223372036854775808"), Base10)
	require.NoError(t, err)
	assert.True(t, overflowed)
}

func TestParseIntegerMaxInt64Fits(t *testing.T) {
	got, overflowed, err := parseInteger([]byte("9223372036854775807"), Base10)
	require.NoError(t, err)
	require.False(t, overflowed)
	assert.EqualValues(t, 9223372036854775807, got)
}

func TestParseIntegerMinInt64Fits(t *testing.T) {
	got, overflowed, err := parseInteger([]byte("-9223372036854775808"), Base10)
	require.NoError(t, err)
	require.False(t, overflowed)
	assert.EqualValues(t, -9223372036854775808, got)
}

func TestParseIntegerNegativeBeyondMinInt64Overflows(t *testing.T) {
	_, overflowed, err := parseInteger([]byte("-9223372036854775809"), Base10)
	require.NoError(t, err)
	assert.True(t, overflowed)
}

func TestParseFloat(t *testing.T) {
	f, roundTrips, err := parseFloat([]byte("1.5"))
	require.NoError(t, err)
	assert.InDelta(t, 1.5, f, 0.0000001)
	assert.True(t, roundTrips)
}

func TestParseFloatExponent(t *testing.T) {
	f, roundTrips, err := parseFloat([]byte("1.5E2"))
	require.NoError(t, err)
	assert.InDelta(t, 150.0, f, 0.0000001)
	assert.True(t, roundTrips)
}

func TestParseFloatUnderscored(t *testing.T) {
	f, _, err := parseFloat([]byte("1_000.5"))
	require.NoError(t, err)
	assert.InDelta(t, 1000.5, f, 0.0000001)
}

func TestParseFloatPrecisionLossIsNotRoundTrip(t *testing.T) {
	f, roundTrips, err := parseFloat([]byte("1.00000000000000000000001"))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, f, 0.0000001)
	assert.False(t, roundTrips)
}
