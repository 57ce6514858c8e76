package tower

import (
	"fmt"
	"math"
)

// Enemy is the combat target for the current floor. It is discarded and
// regenerated every time it dies or the boss timer expires.
type Enemy struct {
	Name       string  `json:"name"`
	MaxHP      float64 `json:"maxHp"`
	CurrentHP  float64 `json:"currentHp"`
	GoldReward float64 `json:"goldReward"`
	XPReward   float64 `json:"xpReward"`
	IsBoss     bool    `json:"isBoss"`
}

// GenerateEnemy builds the enemy for a floor. hpReductionLevel is the
// player's enemy-HP-down upgrade level; it shrinks HP but never the rewards.
func GenerateEnemy(floor int, hpReductionLevel int) *Enemy {
	if floor < 1 {
		floor = 1
	}

	hpReductionMultiplier := 1 - HPReductionPercent(hpReductionLevel)/100

	var rawHP, rawGold, rawXP float64
	var name string
	isBoss := false

	if IsBossFloor(floor) {
		stats := CalculateBossStats(floor)
		archetype := BossArchetype(floor)

		if IsFloorBoss(floor) {
			rawHP = stats.HP * 5
			rawGold = stats.Gold * 10
			rawXP = stats.XP * 10
		} else {
			rawHP = stats.HP
			rawGold = stats.Gold
			rawXP = stats.XP
		}
		isBoss = true
		name = archetype.Name
		if IsSuperFloorBoss(floor) {
			name = "True " + name
		}
	} else {
		baseHP, baseGold, baseXP := 50.0, 10.0, 20.0
		if prevBossFloor := (floor - 1) / BossInterval * BossInterval; prevBossFloor >= BossInterval {
			stats := CalculateBossStats(prevBossFloor)
			baseHP = stats.HP
			baseGold = stats.Gold
			baseXP = stats.XP
		}

		// Normal enemies ramp from 50% to 95% of the previous boss's
		// baseline as the player climbs toward the next boss.
		offset := floor % BossInterval
		ratio := 0.5 + float64(offset-1)*0.05
		typeIndex := ((floor - 1) % 20) / 2
		if typeIndex >= len(enemyTypes) {
			typeIndex = len(enemyTypes) - 1
		}
		archetype := enemyTypes[typeIndex]
		loop := (floor-1)/20 + 1

		if floor < BossInterval {
			rawHP = archetype.HP * float64(loop) * 1.2
			rawGold = archetype.Gold * float64(loop)
			rawXP = archetype.XP * float64(loop)
		} else {
			rawHP = baseHP * ratio
			rawGold = baseGold * ratio * 0.2
			rawXP = baseXP * ratio * 0.2
		}

		name = archetype.Name
		if loop > 1 {
			name = fmt.Sprintf("%s Lv%d", archetype.Name, floor)
		}
	}

	finalHP := math.Max(1, math.Floor(rawHP*hpReductionMultiplier))

	return &Enemy{
		Name:       name,
		MaxHP:      finalHP,
		CurrentHP:  finalHP,
		GoldReward: math.Floor(rawGold),
		XPReward:   math.Floor(rawXP),
		IsBoss:     isBoss,
	}
}
