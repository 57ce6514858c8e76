package equipment

import "math"

// SetBonus is the combat bonus for wearing multiple pieces of one tier.
// Exactly one tier group is active at a time; partial sets across different
// tiers never combine.
type SetBonus struct {
	AttackMult float64
	SkillMult  float64
	CritAdd    float64 // Percentage points added to crit rate
	ActiveTier int
	Count      int
}

// CalcSetBonus determines the active set bonus from currently equipped gear.
// The tier with the most equipped pieces wins; ties go to the higher tier.
func CalcSetBonus(equipped map[Slot]*Equipment) SetBonus {
	tierCounts := make(map[int]int)
	for _, item := range equipped {
		if item != nil {
			tierCounts[item.Tier]++
		}
	}

	maxCount, bestTier := 0, 0
	for tier, count := range tierCounts {
		if count > maxCount || (count == maxCount && tier > bestTier) {
			maxCount = count
			bestTier = tier
		}
	}

	bonus := SetBonus{AttackMult: 1.0, SkillMult: 1.0, ActiveTier: bestTier, Count: maxCount}
	switch {
	case maxCount >= 4:
		bonus.AttackMult = 1.5
		bonus.SkillMult = 1.5
		bonus.CritAdd = 10
	case maxCount >= 3:
		bonus.AttackMult = 1.2
		bonus.SkillMult = 1.2
	case maxCount >= 2:
		bonus.AttackMult = 1.1
	}
	return bonus
}

// CollectionBonus is flat attack from everything the player owns: one fifth
// of the summed power of every distinct item, equipped or not. Items are
// deduplicated by ID because equipped items also appear in the inventory
// list.
func CollectionBonus(inventory []*Equipment, equipped map[Slot]*Equipment) float64 {
	var totalPower float64
	counted := make(map[string]bool, len(inventory))

	for _, item := range inventory {
		if item == nil || counted[item.ID] {
			continue
		}
		counted[item.ID] = true
		totalPower += item.Power
	}
	for _, item := range equipped {
		if item == nil || counted[item.ID] {
			continue
		}
		counted[item.ID] = true
		totalPower += item.Power
	}

	return math.Floor(totalPower / 5)
}
