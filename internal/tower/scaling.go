// Package tower contains difficulty scaling formulas for tower floors and
// the enemy generator built on top of them.
package tower

import (
	"math"
	"sync"
)

const (
	// FloorsPerTier is the width of one equipment/difficulty tier band.
	FloorsPerTier = 500

	// BossCycle is the repeating boss pattern length: one boss every
	// BossInterval floors, ten archetypes per cycle.
	BossCycle    = 100
	BossInterval = 10
)

// Tier returns the tier for a given floor.
// Formula: ceil(floor / 500), minimum 1
func Tier(floor int) int {
	if floor <= 1 {
		return 1
	}
	return (floor + FloorsPerTier - 1) / FloorsPerTier
}

// IsBossFloor returns true if the floor number is a boss floor
func IsBossFloor(floor int) bool {
	return floor > 0 && floor%BossInterval == 0
}

// IsFloorBoss returns true for the stronger boss at every 100th floor
func IsFloorBoss(floor int) bool {
	return floor > 0 && floor%BossCycle == 0
}

// IsSuperFloorBoss returns true for the tier-capping boss at every 500th
// floor. Only these bosses can drop rank-A equipment.
func IsSuperFloorBoss(floor int) bool {
	return floor > 0 && floor%FloorsPerTier == 0
}

// IsBossApproach returns true during the last 100 floors of a tier
// (401-500, 901-1000, ...). Presentation layers use this as a music cue.
func IsBossApproach(floor int) bool {
	return (floor-1)%FloorsPerTier >= 400
}

// BossStats holds the scaled baseline stats for the boss of a floor.
type BossStats struct {
	HP   float64
	Gold float64
	XP   float64
}

var bossStatsMemo = struct {
	sync.Mutex
	m map[int]BossStats
}{m: make(map[int]BossStats)}

// CalculateBossStats computes the baseline boss stats for a target floor.
// Stats on non-100-boundary boss floors accumulate on top of the previous
// 100-boundary boss's HP; results are memoized since high floors are
// recomputed every spawn.
func CalculateBossStats(targetFloor int) BossStats {
	bossStatsMemo.Lock()
	if stats, ok := bossStatsMemo.m[targetFloor]; ok {
		bossStatsMemo.Unlock()
		return stats
	}
	bossStatsMemo.Unlock()

	stats := calculateBossStats(targetFloor)

	bossStatsMemo.Lock()
	bossStatsMemo.m[targetFloor] = stats
	bossStatsMemo.Unlock()
	return stats
}

func calculateBossStats(targetFloor int) BossStats {
	baseScaler := math.Max(1, float64(targetFloor)/20)
	tierScaler := math.Pow(100.0, float64((targetFloor-1)/FloorsPerTier))
	ultraHighScaler := 1.0
	if targetFloor > 1000 {
		ultraHighScaler = 1 + math.Pow(float64(targetFloor-1000)/200, 4)
	}
	totalScaler := baseScaler * tierScaler * ultraHighScaler

	superBossMultiplier := 1.0
	if IsSuperFloorBoss(targetFloor) {
		superBossMultiplier = 100
	}

	// Difficulty profile within the 500-floor cycle: the first sub-boss
	// eases off, the middle three spike, the tier capstone spikes harder.
	difficultyMultiplier := 1.0
	switch targetFloor % FloorsPerTier {
	case 100:
		difficultyMultiplier = 0.8
	case 200, 300, 400:
		difficultyMultiplier = 3.0
	case 0:
		difficultyMultiplier = 4.0
	}

	archetype := BossArchetype(targetFloor)

	if targetFloor%BossCycle == 0 {
		return BossStats{
			HP:   math.Floor(archetype.HP * totalScaler * superBossMultiplier * difficultyMultiplier),
			Gold: math.Floor(archetype.Gold * totalScaler),
			XP:   math.Floor(archetype.XP * totalScaler * superBossMultiplier * difficultyMultiplier),
		}
	}

	// Carry the previous 100-boundary boss's HP forward so each cycle keeps
	// climbing instead of resetting.
	var baseHP float64
	if prevHundred := (targetFloor - 1) / BossCycle * BossCycle; prevHundred > 0 {
		baseHP = CalculateBossStats(prevHundred).HP
	}

	return BossStats{
		HP:   baseHP + math.Floor(archetype.HP*totalScaler),
		Gold: math.Floor(archetype.Gold * totalScaler),
		XP:   math.Floor(archetype.XP * totalScaler),
	}
}

// HPReductionPercent converts an enemy-HP-down upgrade level into the
// percentage stripped from all enemy HP.
// Formula: min(99, level * (level+1) / 2)
func HPReductionPercent(level int) float64 {
	if level <= 0 {
		return 0
	}
	return math.Min(99, float64(level*(level+1))/2)
}
