// Package tax decomposes tax-inclusive prices into per-rate totals.
// It is pure: no persistence, no rendering, no clock.
package tax

import "math"

// DefaultPercentage applies when a product carries no explicit rate.
const DefaultPercentage = 21.0

// Line is one priced invoice line paired with its tax rate. Percentage
// nil means DefaultPercentage.
type Line struct {
	Price      float64
	Percentage *float64
}

// Group is the accumulated tax for all lines sharing a rate. Never
// persisted; rebuilt on every render.
type Group struct {
	// Key is the percentage rounded to two decimals and scaled by 100,
	// so grouping is stable against floating-point rate noise.
	Key        int64
	Percentage float64
	Amount     float64
}

// Amount returns the tax portion contained in a tax-inclusive price:
// price * pct / (100 + pct). This is a decomposition, not a surcharge.
func Amount(price, percentage float64) float64 {
	return price * percentage / (100.0 + percentage)
}

// RoundKey converts a percentage to its stable integer grouping key.
func RoundKey(percentage float64) int64 {
	return int64(math.Round(percentage * 100.0))
}

// Decompose groups the lines by rounded rate and sums the tax amount per
// group. Groups come back in the order their rate first appeared, which
// keeps the receipt ordering deterministic.
func Decompose(lines []Line) []Group {
	var groups []Group
	index := make(map[int64]int)

	for _, line := range lines {
		pct := DefaultPercentage
		if line.Percentage != nil {
			pct = *line.Percentage
		}
		key := RoundKey(pct)
		amount := Amount(line.Price, pct)

		if i, ok := index[key]; ok {
			groups[i].Amount += amount
			continue
		}
		index[key] = len(groups)
		groups = append(groups, Group{Key: key, Percentage: pct, Amount: amount})
	}

	return groups
}
