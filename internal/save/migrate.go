package save

import (
	"github.com/lawnchairsociety/towerclimb/internal/engine"
	"github.com/lawnchairsociety/towerclimb/internal/equipment"
	"github.com/lawnchairsociety/towerclimb/internal/job"
	"github.com/lawnchairsociety/towerclimb/internal/upgrade"
)

// Normalize fills defaults into a loaded state so saves written by older
// versions keep working. Every fix is additive; normalization never fails.
func Normalize(s *engine.GameState) {
	p := &s.Player

	if p.Level < 1 {
		p.Level = 1
	}
	if p.RequiredXP <= 0 {
		p.RequiredXP = 50
	}
	if p.CurrentXP < 0 {
		p.CurrentXP = 0
	}
	if !p.Job.IsValid() {
		p.Job = job.Novice
	}
	if p.JobLevel < 1 {
		p.JobLevel = 1
	}
	if p.Floor < 1 {
		p.Floor = 1
	}
	if p.MaxFloorReached < p.Floor {
		p.MaxFloorReached = p.Floor
	}
	if p.BaseAttack <= 0 {
		p.BaseAttack = 10
	}
	if p.Gold < 0 {
		p.Gold = 0
	}
	if p.ReincarnationStones < 0 {
		p.ReincarnationStones = 0
	}

	if p.SkillMastery == nil {
		p.SkillMastery = make(map[string]engine.Mastery)
	}
	if p.AutoMerchantKeys == nil {
		p.AutoMerchantKeys = make(map[upgrade.MerchantKey]bool)
	}
	if p.DropPreferences == nil {
		p.DropPreferences = make(map[equipment.Slot]bool)
	}

	if s.Inventory == nil {
		s.Inventory = []*equipment.Equipment{}
	}
	if s.Equipped == nil {
		s.Equipped = make(map[equipment.Slot]*equipment.Equipment)
	}
	if s.Logs == nil {
		s.Logs = []engine.LogEntry{}
	}

	for _, item := range s.Inventory {
		normalizeItem(item)
	}
	for _, item := range s.Equipped {
		normalizeItem(item)
	}
	if s.RareDropItem != nil {
		normalizeItem(s.RareDropItem)
	}

	if s.Enemy != nil {
		if s.Enemy.MaxHP <= 0 {
			s.Enemy = nil
		} else if s.Enemy.CurrentHP > s.Enemy.MaxHP {
			s.Enemy.CurrentHP = s.Enemy.MaxHP
		}
	}
	// Only a live boss fight keeps its timer. A stale timer against a
	// normal enemy would expire and knock the player back floors.
	if s.Enemy == nil || !s.Enemy.IsBoss {
		s.BossTimer = nil
	}

	if s.FarmingMode != nil {
		if s.FarmingMode.Min < 1 || s.FarmingMode.Max < s.FarmingMode.Min {
			s.FarmingMode = nil
		}
	}
}

// normalizeItem backfills legacy equipment records: missing ranks become D
// and power is always recomputed from its inputs.
func normalizeItem(item *equipment.Equipment) {
	if item == nil {
		return
	}
	if !rankKnown(item.Rank) {
		item.Rank = equipment.RankD
	}
	if item.Tier < 1 {
		item.Tier = 1
	}
	if item.Plus < 0 {
		item.Plus = 0
	}
	if item.Plus > equipment.MaxPlus {
		item.Plus = equipment.MaxPlus
	}
	if item.BasePower <= 0 {
		item.BasePower = equipment.BasePowerForTier(item.Tier)
	}
	item.Power = equipment.ItemPower(item.BasePower, item.Rank, item.Plus)
}

func rankKnown(r equipment.Rank) bool {
	for _, known := range equipment.Ranks {
		if r == known {
			return true
		}
	}
	return false
}
