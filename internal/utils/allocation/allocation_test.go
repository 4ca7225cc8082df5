package allocation_test

import (
	"testing"

	"github.com/rusingacademy/ledger-service/internal/utils/allocation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weights(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

func sum(parts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, p := range parts {
		total = total.Add(p)
	}
	return total
}

func TestSplit_PartsAlwaysRecomposeTotal(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		weights []decimal.Decimal
	}{
		{"even split", "100.00", weights("1", "1")},
		{"uneven cents", "100.00", weights("1", "1", "1")},
		{"tiny total", "0.01", weights("1", "1", "1")},
		{"skewed weights", "99.99", weights("7", "2", "1")},
		{"zero weight line", "50.00", weights("1", "0", "1")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := decimal.RequireFromString(tt.total)
			parts, err := allocation.Split(total, tt.weights)
			require.NoError(t, err)
			require.Len(t, parts, len(tt.weights))
			assert.True(t, sum(parts).Equal(total), "parts sum to %s, want %s", sum(parts), total)
		})
	}
}

func TestSplit_LargestRemainderTieBreaksByIndex(t *testing.T) {
	// 0.01 over three equal weights: every remainder ties, so the first line
	// gets the cent.
	parts, err := allocation.Split(decimal.RequireFromString("0.01"), weights("1", "1", "1"))
	require.NoError(t, err)
	assert.True(t, parts[0].Equal(decimal.RequireFromString("0.01")))
	assert.True(t, parts[1].IsZero())
	assert.True(t, parts[2].IsZero())
}

func TestSplit_Deterministic(t *testing.T) {
	total := decimal.RequireFromString("123.45")
	w := weights("3", "3", "4")
	first, err := allocation.Split(total, w)
	require.NoError(t, err)
	second, err := allocation.Split(total, w)
	require.NoError(t, err)
	for i := range first {
		assert.True(t, first[i].Equal(second[i]))
	}
}

func TestSplit_Rejections(t *testing.T) {
	_, err := allocation.Split(decimal.RequireFromString("10.00"), nil)
	assert.Error(t, err)

	_, err = allocation.Split(decimal.RequireFromString("-10.00"), weights("1"))
	assert.Error(t, err)

	_, err = allocation.Split(decimal.RequireFromString("10.00"), weights("1", "-1"))
	assert.Error(t, err)

	_, err = allocation.Split(decimal.RequireFromString("10.00"), weights("0", "0"))
	assert.Error(t, err)
}

func TestSplitTax(t *testing.T) {
	net, tax, err := allocation.SplitTax(decimal.RequireFromString("115.00"), decimal.RequireFromString("15.00"))
	require.NoError(t, err)
	assert.True(t, net.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, tax.Equal(decimal.RequireFromString("15.00")))

	net, tax, err = allocation.SplitTax(decimal.RequireFromString("50.00"), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, net.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, tax.IsZero())
}

func TestSplitTaxRate(t *testing.T) {
	net, tax, err := allocation.SplitTaxRate(decimal.RequireFromString("115.00"), decimal.RequireFromString("0.15"))
	require.NoError(t, err)
	assert.True(t, net.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, tax.Equal(decimal.RequireFromString("15.00")))

	// The exact shares are not whole cents; the leftover cent goes to the part
	// with the largest remainder.
	net, tax, err = allocation.SplitTaxRate(decimal.RequireFromString("1.00"), decimal.RequireFromString("0.07"))
	require.NoError(t, err)
	assert.True(t, net.Equal(decimal.RequireFromString("0.93")))
	assert.True(t, tax.Equal(decimal.RequireFromString("0.07")))
	assert.True(t, net.Add(tax).Equal(decimal.RequireFromString("1.00")))

	net, tax, err = allocation.SplitTaxRate(decimal.RequireFromString("80.00"), decimal.Zero)
	require.NoError(t, err)
	assert.True(t, net.Equal(decimal.RequireFromString("80.00")))
	assert.True(t, tax.IsZero())
}

func TestSplitTaxRate_Rejections(t *testing.T) {
	_, _, err := allocation.SplitTaxRate(decimal.RequireFromString("100.00"), decimal.RequireFromString("-0.05"))
	assert.Error(t, err)

	_, _, err = allocation.SplitTaxRate(decimal.RequireFromString("-100.00"), decimal.RequireFromString("0.05"))
	assert.Error(t, err)
}

func TestSplitTax_Rejections(t *testing.T) {
	_, _, err := allocation.SplitTax(decimal.RequireFromString("100.00"), decimal.RequireFromString("-1.00"))
	assert.Error(t, err)

	_, _, err = allocation.SplitTax(decimal.RequireFromString("100.00"), decimal.RequireFromString("101.00"))
	assert.Error(t, err)
}
