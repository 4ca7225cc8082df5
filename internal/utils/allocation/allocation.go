// Package allocation splits a source-document total across ledger lines
// without losing or inventing cents. Proportional shares are rounded with the
// largest-remainder method at minor-unit precision; remainder ties break
// toward the lowest line index, so the split is fully deterministic.
package allocation

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

var cent = decimal.New(1, -2)

// Split distributes total across len(weights) parts proportionally to the
// weights. The parts always sum to exactly total. Total and weights must be
// non-negative and the weights must not all be zero.
func Split(total decimal.Decimal, weights []decimal.Decimal) ([]decimal.Decimal, error) {
	if len(weights) == 0 {
		return nil, fmt.Errorf("allocation requires at least one weight")
	}
	if total.IsNegative() {
		return nil, fmt.Errorf("allocation total must be non-negative, got %s", total)
	}

	weightSum := decimal.Zero
	for i, w := range weights {
		if w.IsNegative() {
			return nil, fmt.Errorf("allocation weight %d must be non-negative, got %s", i, w)
		}
		weightSum = weightSum.Add(w)
	}
	if weightSum.IsZero() {
		return nil, fmt.Errorf("allocation weights must not all be zero")
	}

	// Work in integer cents: floor each proportional share, then hand the
	// leftover cents to the lines with the largest remainders.
	totalCents := total.Mul(decimal.New(100, 0))
	parts := make([]decimal.Decimal, len(weights))
	type remainder struct {
		index int
		frac  decimal.Decimal
	}
	remainders := make([]remainder, len(weights))

	allocated := decimal.Zero
	for i, w := range weights {
		exact := totalCents.Mul(w).Div(weightSum)
		floored := exact.Floor()
		parts[i] = floored.Mul(cent)
		remainders[i] = remainder{index: i, frac: exact.Sub(floored)}
		allocated = allocated.Add(floored)
	}

	leftover := int(totalCents.Sub(allocated).IntPart())
	sort.SliceStable(remainders, func(a, b int) bool {
		if !remainders[a].frac.Equal(remainders[b].frac) {
			return remainders[a].frac.GreaterThan(remainders[b].frac)
		}
		return remainders[a].index < remainders[b].index
	})
	for i := 0; i < leftover; i++ {
		idx := remainders[i%len(remainders)].index
		parts[idx] = parts[idx].Add(cent)
	}

	return parts, nil
}

// SplitTaxRate divides a tax-inclusive total into its net and tax portions at
// the given rate (0.15 for 15%). The portions are allocated with Split on the
// 1:rate weight ratio, so they always recompose to total exactly.
func SplitTaxRate(total, rate decimal.Decimal) (net, tax decimal.Decimal, err error) {
	if rate.IsNegative() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("tax rate must be non-negative, got %s", rate)
	}

	parts, err := Split(total, []decimal.Decimal{decimal.New(1, 0), rate})
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return parts[0], parts[1], nil
}

// SplitTax divides a tax-inclusive total into its net and tax portions.
// The caller supplies the tax amount (single flat-rate tax line); the net is
// whatever remains, so the two always recompose to total exactly.
func SplitTax(total, taxAmount decimal.Decimal) (net, tax decimal.Decimal, err error) {
	if taxAmount.IsNegative() {
		return decimal.Zero, decimal.Zero, fmt.Errorf("tax amount must be non-negative, got %s", taxAmount)
	}
	if taxAmount.GreaterThan(total) {
		return decimal.Zero, decimal.Zero, fmt.Errorf("tax amount %s exceeds total %s", taxAmount, total)
	}
	return total.Sub(taxAmount), taxAmount, nil
}
