package taifex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormText(t *testing.T) {
	assert.Equal(t, "a b c", NormText("  a  b \n\t c "))
	assert.Equal(t, "", NormText("   "))
	assert.Equal(t, "最後 成交價", NormText("最後　成交價"))
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in    string
		want  float64
		valid bool
	}{
		{"1,234", 1234, true},
		{"12.5", 12.5, true},
		{" 17,500 ", 17500, true},
		{"+50", 50, true},
		{"-12", -12, true},
		{"-", 0, false},
		{"--", 0, false},
		{"—", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"+0.5%", 0, false},
	}
	for _, tc := range cases {
		got := ParseNumber(tc.in)
		require.Equal(t, tc.valid, got.Valid, "input %q", tc.in)
		if tc.valid {
			assert.InDelta(t, tc.want, got.Float64, 1e-9, "input %q", tc.in)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2025-01-02", NormalizeDate("2025/1/2"))
	assert.Equal(t, "2025-01-02", NormalizeDate(" 2025-01-02 "))
	assert.Equal(t, "2025-11-28", NormalizeDate("2025/11/28"))
	assert.Equal(t, "20250102", NormalizeDate("20250102"))
	assert.Equal(t, "", NormalizeDate("  "))
}

func TestIsMonthToken(t *testing.T) {
	assert.True(t, IsMonthToken("202501"))
	assert.False(t, IsMonthToken("202501/202502"))
	assert.False(t, IsMonthToken("20250"))
	assert.False(t, IsMonthToken("202501W1"))
}
