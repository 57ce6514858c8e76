package equipment

import (
	"github.com/google/uuid"

	"github.com/lawnchairsociety/towerclimb/internal/tower"
)

// Source is the randomness needed by the drop generator. *rand.Rand
// satisfies it.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// DropChance is the flat gate applied to non-forced drops.
const DropChance = 0.3

// RareDropChance is the rank-A roll available only on super-floor-boss
// kills.
const RareDropChance = 0.001

// DropOptions controls a single drop roll.
type DropOptions struct {
	// ForceDrop skips the flat 30% drop gate.
	ForceDrop bool

	// AllowRareRank enables the 0.1% rank-A roll (super floor bosses only).
	AllowRareRank bool

	// FilterUnlocked reports whether the player owns the drop-filter
	// upgrade. Preferences are ignored until it is owned.
	FilterUnlocked bool

	// Preferences maps slots to opt-in flags. A nil map keeps every slot.
	Preferences map[Slot]bool
}

// GenerateDrop rolls a single equipment drop for a floor. It returns nil
// when the drop gate fails or when preferences exclude every slot.
func GenerateDrop(rng Source, floor int, opts DropOptions) *Equipment {
	if !opts.ForceDrop && rng.Float64() > DropChance {
		return nil
	}

	availableSlots := Slots
	if opts.FilterUnlocked && opts.Preferences != nil {
		availableSlots = nil
		for _, slot := range Slots {
			if opts.Preferences[slot] {
				availableSlots = append(availableSlots, slot)
			}
		}
	}
	if len(availableSlots) == 0 {
		return nil
	}

	slot := availableSlots[rng.Intn(len(availableSlots))]

	tier := tower.Tier(floor)
	progressInTier := float64((floor-1)%tower.FloorsPerTier) / float64(tower.FloorsPerTier-1)
	basePower := BasePowerForTier(tier)
	name := NameForTier(slot, tier)

	if opts.AllowRareRank && rng.Float64() < RareDropChance {
		return &Equipment{
			ID:        uuid.NewString(),
			Name:      name,
			Type:      slot,
			BasePower: basePower,
			Power:     ItemPower(basePower, RankA, 0),
			Rank:      RankA,
			Tier:      tier,
			Plus:      0,
		}
	}

	// Only D and C drop; B and up exist solely through synthesis. The D/C
	// split shifts from 98/2 to 40/60 across the tier.
	weightD := lerp(98, 40, progressInTier)
	weightC := lerp(2, 60, progressInTier)
	rank := RankD
	if rng.Float64()*(weightD+weightC) >= weightD {
		rank = RankC
	}

	// Enhancement shifts from 90/9/1 to 50/40/10 across the tier.
	w0 := lerp(90, 50, progressInTier)
	w1 := lerp(9, 40, progressInTier)
	w2 := lerp(1, 10, progressInTier)
	plusRoll := rng.Float64() * (w0 + w1 + w2)
	plus := 0
	switch {
	case plusRoll < w0:
		plus = 0
	case plusRoll < w0+w1:
		plus = 1
	default:
		plus = 2
	}

	return &Equipment{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      slot,
		BasePower: basePower,
		Power:     ItemPower(basePower, rank, plus),
		Rank:      rank,
		Tier:      tier,
		Plus:      plus,
	}
}

func lerp(start, end, progress float64) float64 {
	return start + (end-start)*progress
}
