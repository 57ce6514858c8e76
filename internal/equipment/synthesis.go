package equipment

import (
	"fmt"
	"sort"
)

// maxSynthesisPasses bounds the fixed-point loop. Each pass can double up an
// entire inventory, so 50 passes is far beyond any reachable chain.
const maxSynthesisPasses = 50

// SynthesisResult is the outcome of a bulk synthesis run. Passes counts loop
// iterations including the final no-change pass, so Passes <= 1 means
// nothing merged.
type SynthesisResult struct {
	Inventory []*Equipment
	Equipped  map[Slot]*Equipment
	Passes    int
}

// Merged reports whether the run changed anything.
func (r SynthesisResult) Merged() bool {
	return r.Passes > 1
}

// PerformBulkSynthesis repeatedly merges identical item pairs until no pair
// is left. A merge of two +5 items promotes the rank and resets plus to 0;
// S+5 items are terminal. Equipped items survive merges as the base, keeping
// their slot.
func PerformBulkSynthesis(inventory []*Equipment, equipped map[Slot]*Equipment) SynthesisResult {
	// Inventory also holds equipped copies; dedupe by ID into one pool.
	seen := make(map[string]bool, len(inventory))
	pool := make([]*Equipment, 0, len(inventory))
	for _, item := range inventory {
		if item != nil && !seen[item.ID] {
			seen[item.ID] = true
			pool = append(pool, item)
		}
	}
	for _, item := range equipped {
		if item != nil && !seen[item.ID] {
			seen[item.ID] = true
			pool = append(pool, item)
		}
	}

	passes := 0
	changed := true
	for changed && passes < maxSynthesisPasses {
		changed = false
		passes++

		groups := make(map[string][]*Equipment)
		var order []string
		for _, item := range pool {
			key := fmt.Sprintf("%s-%d-%s-%s-%d", item.Type, item.Tier, item.Name, item.Rank, item.Plus)
			if _, ok := groups[key]; !ok {
				order = append(order, key)
			}
			groups[key] = append(groups[key], item)
		}

		nextPool := make([]*Equipment, 0, len(pool))
		for _, key := range order {
			items := groups[key]
			// Equipped items sort first so they become the surviving base
			sort.SliceStable(items, func(i, j int) bool {
				return items[i].IsEquipped && !items[j].IsEquipped
			})

			for len(items) >= 2 {
				base, mat := items[0], items[1]

				if base.Rank == RankS && base.Plus >= MaxPlus {
					// Terminal; return to the pool unmerged
					nextPool = append(nextPool, base)
					items = items[1:]
					continue
				}

				items = items[2:]

				merged := *base
				if base.Plus < MaxPlus {
					merged.Plus = base.Plus + 1
				} else {
					next, ok := base.Rank.Next()
					if !ok {
						nextPool = append(nextPool, base, mat)
						continue
					}
					merged.Rank = next
					merged.Plus = 0
				}
				merged.Power = ItemPower(merged.BasePower, merged.Rank, merged.Plus)
				merged.IsEquipped = base.IsEquipped || mat.IsEquipped
				nextPool = append(nextPool, &merged)
				changed = true
			}
			nextPool = append(nextPool, items...)
		}
		pool = nextPool
	}

	newInventory := make([]*Equipment, 0, len(pool))
	newEquipped := make(map[Slot]*Equipment)
	for _, item := range pool {
		if item.IsEquipped {
			newEquipped[item.Type] = item
		}
		newInventory = append(newInventory, item)
	}

	return SynthesisResult{Inventory: newInventory, Equipped: newEquipped, Passes: passes}
}
