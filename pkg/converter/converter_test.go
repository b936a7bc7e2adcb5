package converter

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEther_TrimsTrailingZeros(t *testing.T) {
	tests := []struct {
		wei      string
		expected string
	}{
		{"0", "0"},
		{"1000000000000000000", "1"},
		{"1500000000000000000", "1.5"},
		{"1000000000000000", "0.001"},
		{"1", "0.000000000000000001"},
		{"-2500000000000000000", "-2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			wei, ok := new(big.Int).SetString(tt.wei, 10)
			require.True(t, ok)
			assert.Equal(t, tt.expected, FormatEther(wei))
		})
	}
	assert.Equal(t, "0", FormatEther(nil))
}

func TestParseEther_ValidAmounts(t *testing.T) {
	wei, err := ParseEther("0.001")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000", wei.String())

	wei, err = ParseEther("2")
	require.NoError(t, err)
	assert.Equal(t, "2000000000000000000", wei.String())

	wei, err = ParseEther(".5")
	require.NoError(t, err)
	assert.Equal(t, "500000000000000000", wei.String())
}

func TestParseEther_InvalidAmounts_ReturnError(t *testing.T) {
	for _, in := range []string{"", "abc", "1.0000000000000000001", "1.2.3"} {
		_, err := ParseEther(in)
		assert.Error(t, err, in)
	}
}

func TestWeiToEtherFloat(t *testing.T) {
	assert.InDelta(t, 0.0012, WeiToEtherFloat(big.NewInt(1_200_000_000_000_000)), 1e-12)
	assert.Equal(t, 0.0, WeiToEtherFloat(nil))
}

func TestConvertBigIntToStrings(t *testing.T) {
	assert.Equal(t, []string{"1", "42"}, ConvertBigIntToStrings([]*big.Int{big.NewInt(1), big.NewInt(42)}))
}
