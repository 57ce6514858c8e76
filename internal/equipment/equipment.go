// Package equipment defines the equipment model: slots, ranks, the power
// formula, drop generation and synthesis.
package equipment

import (
	"fmt"
	"math"
)

// Slot represents where a piece of equipment is worn
type Slot string

const (
	Weapon Slot = "weapon"
	Helm   Slot = "helm"
	Armor  Slot = "armor"
	Shield Slot = "shield"
)

// Slots lists all equipment slots in display order
var Slots = []Slot{Weapon, Helm, Armor, Shield}

// IsValid returns true if the slot is a known slot
func (s Slot) IsValid() bool {
	switch s {
	case Weapon, Helm, Armor, Shield:
		return true
	default:
		return false
	}
}

// Rank represents an equipment rank, ordered D < C < B < A < S
type Rank string

const (
	RankD Rank = "D"
	RankC Rank = "C"
	RankB Rank = "B"
	RankA Rank = "A"
	RankS Rank = "S"
)

// Ranks lists all ranks from lowest to highest
var Ranks = []Rank{RankD, RankC, RankB, RankA, RankS}

// rankMultipliers are tuned so that a freshly promoted rank at +0 beats the
// previous rank at +5 (e.g. C+0 = D+5 x 4).
var rankMultipliers = map[Rank]float64{
	RankD: 1.0,
	RankC: 128.0,
	RankB: 32768.0,
	RankA: 20971520.0,
	RankS: 67108864000.0,
}

// Multiplier returns the power multiplier for a rank, 1.0 for unknown ranks
func (r Rank) Multiplier() float64 {
	if m, ok := rankMultipliers[r]; ok {
		return m
	}
	return 1.0
}

// Next returns the rank above r, or false if r is rank S (or unknown)
func (r Rank) Next() (Rank, bool) {
	for i, candidate := range Ranks {
		if candidate == r && i < len(Ranks)-1 {
			return Ranks[i+1], true
		}
	}
	return "", false
}

// AtLeast returns true if r is the same rank as other or higher
func (r Rank) AtLeast(other Rank) bool {
	return rankIndex(r) >= rankIndex(other)
}

func rankIndex(r Rank) int {
	for i, candidate := range Ranks {
		if candidate == r {
			return i
		}
	}
	return -1
}

// MaxPlus is the enhancement ceiling reachable through synthesis. Drops are
// independently capped at +2.
const (
	MaxPlus     = 5
	MaxDropPlus = 2
)

// Equipment is a single piece of gear. Power is always derived from
// basePower, rank and plus; it is never mutated independently.
type Equipment struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Type       Slot    `json:"type"`
	BasePower  float64 `json:"basePower"`
	Power      float64 `json:"power"`
	IsEquipped bool    `json:"isEquipped"`
	Rank       Rank    `json:"rank"`
	Tier       int     `json:"tier"`
	Plus       int     `json:"plus"`
}

// String returns a short display form, e.g. "[T2] Iron Sword C+3"
func (e *Equipment) String() string {
	return fmt.Sprintf("[T%d] %s %s+%d", e.Tier, e.Name, e.Rank, e.Plus)
}

// EnhancementMultiplier returns the power multiplier for an enhancement
// level: 2^plus for plus >= 1, otherwise 1.
func EnhancementMultiplier(plus int) float64 {
	if plus <= 0 {
		return 1
	}
	return math.Pow(2, float64(plus))
}

// ItemPower computes final item power.
// Formula: floor(basePower * rankMultiplier * 2^plus)
func ItemPower(basePower float64, rank Rank, plus int) float64 {
	return math.Floor(basePower * rank.Multiplier() * EnhancementMultiplier(plus))
}

// BasePowerForTier returns the fixed base power of any item of a tier.
// Formula: tier^2 * 5 + 10
func BasePowerForTier(tier int) float64 {
	return float64(tier*tier*5 + 10)
}
