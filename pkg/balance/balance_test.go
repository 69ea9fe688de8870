package balance

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromTaoRoundTrip(t *testing.T) {
	b := FromTao(1.5)
	assert.Equal(t, int64(1_500_000_000), b.Rao())
	assert.InDelta(t, 1.5, b.Tao(), 1e-12)
}

func TestFromTaoRounding(t *testing.T) {
	// 0.1 TAO is not exactly representable as a float; rounding must land on
	// the nearest rao rather than truncating.
	b := FromTao(0.1)
	assert.Equal(t, int64(100_000_000), b.Rao())

	b = FromTao(0.0000000004)
	assert.Equal(t, int64(0), b.Rao())
	b = FromTao(0.0000000006)
	assert.Equal(t, int64(1), b.Rao())
}

func TestArithmetic(t *testing.T) {
	a := FromTao(2.5)
	b := FromTao(0.5)
	assert.Equal(t, FromTao(3.0), a+b)
	assert.Equal(t, FromTao(2.0), a-b)
	assert.True(t, a > b)
}

func TestString(t *testing.T) {
	cases := []struct {
		in   Balance
		want string
	}{
		{FromTao(0), "τ 0.0000"},
		{FromTao(1.5), "τ 1.5000"},
		{FromTao(1234.5678), "τ 1,234.5678"},
		{FromTao(21_000_000), "τ 21,000,000.0000"},
		{FromRao(-1_500_000_000), "τ -1.5000"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.in.String())
	}
}

func TestRaoString(t *testing.T) {
	assert.Equal(t, "ρ1500000000", FromTao(1.5).RaoString())
}

func TestFormatUnit(t *testing.T) {
	b := FromTao(12.25)
	assert.Equal(t, "12.2500 α", b.FormatUnit("α"))
	assert.Equal(t, "τ 12.2500", b.FormatUnit(""))
	assert.Equal(t, "τ 12.2500", b.FormatUnit(TaoSymbol))
}

func TestJSONRoundTrip(t *testing.T) {
	out, err := sonic.Marshal(FromTao(1.5))
	require.NoError(t, err)
	assert.Equal(t, "1500000000", string(out))

	var b Balance
	require.NoError(t, sonic.Unmarshal([]byte("1500000000"), &b))
	assert.Equal(t, FromTao(1.5), b)

	// Quoted u64 amounts from the gateway.
	require.NoError(t, sonic.Unmarshal([]byte(`"2500000000"`), &b))
	assert.Equal(t, FromTao(2.5), b)

	require.NoError(t, sonic.Unmarshal([]byte("null"), &b))
	assert.Equal(t, Balance(0), b)
}

func TestJSONInvalid(t *testing.T) {
	var b Balance
	err := b.UnmarshalJSON([]byte(`"not-a-number"`))
	require.Error(t, err)
}
