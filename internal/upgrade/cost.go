package upgrade

import "math"

const (
	merchantCostGrowth      = 1.5
	reincarnationCostGrowth = 1.2
)

// itemPersistenceCosts is a fixed ladder rather than exponential growth.
var itemPersistenceCosts = [ItemPersistenceMaxLevel]float64{1e7, 1e9, 1e11}

// MerchantCost is the gold price of the next level of a merchant upgrade.
// Formula: floor(floor(base * 1.5^level) * (1 - discount)).
// The base price floors before the discount applies, so the two floors can
// differ by one gold from a single final floor.
func MerchantCost(key MerchantKey, level, discountLevel int) float64 {
	item, ok := MerchantItemFor(key)
	if !ok {
		return math.Inf(1)
	}
	base := math.Floor(item.BaseCost * math.Pow(merchantCostGrowth, float64(level)))
	discount := DiscountPercent(discountLevel) / 100
	return math.Floor(base * (1 - discount))
}

// ReincarnationCost is the stone price of the next level of a permanent
// upgrade. Item persistence follows a fixed three step ladder; everything
// else grows at 1.2^level.
func ReincarnationCost(key ReincarnationKey, level int) float64 {
	if key == ItemPersistence {
		if level >= ItemPersistenceMaxLevel {
			return math.Inf(1)
		}
		return itemPersistenceCosts[level]
	}
	item, ok := ReincarnationItemFor(key)
	if !ok {
		return math.Inf(1)
	}
	return math.Floor(item.BaseCost * math.Pow(reincarnationCostGrowth, float64(level)))
}
