package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinorUnits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int64
	}{
		{"25.5", 2550},
		{"25", 2500},
		{" 0 ", 0},
		{"0.29", 29},
		{"1250.75", 125075},
	}
	for _, tt := range tests {
		got, err := ToMinorUnits(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestToMinorUnitsRejects(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "abc", "-1", "NaN", "Inf", "-0.5", "1e400"} {
		_, err := ToMinorUnits(in)
		assert.ErrorIs(t, err, ErrInvalidAmount, in)
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int64
		want string
	}{
		{2550, "MWK 25.50"},
		{2500, "MWK 25"},
		{0, "MWK 0"},
		{125075, "MWK 1,250.75"},
		{150000000, "MWK 1,500,000"},
		{5, "MWK 0.05"},
		{-2550, "-MWK 25.50"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.in))
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"0", "0.01", "0.1", "25.5", "99.99", "1234.56", "7"} {
		minor, err := ToMinorUnits(in)
		require.NoError(t, err)
		back, err := ToMinorUnits(Decimal(minor))
		require.NoError(t, err)
		assert.Equal(t, minor, back, in)
	}
}

func TestPriceScenario(t *testing.T) {
	minor, err := ToMinorUnits("25.5")
	require.NoError(t, err)
	assert.Equal(t, int64(2550), minor)
	assert.Equal(t, "MWK 25.50", Format(minor))
}
