package engine

import (
	"fmt"

	"github.com/lawnchairsociety/towerclimb/internal/equipment"
	"github.com/lawnchairsociety/towerclimb/internal/job"
	"github.com/lawnchairsociety/towerclimb/internal/upgrade"
)

// Action handlers. Every handler is a pure transition: it returns a new
// state, or the input state untouched when a precondition fails. The UI is
// expected to disable invalid actions, but the engine never trusts that.

// Equip puts the identified inventory item into its slot, unequipping any
// previous occupant.
func (e *Engine) Equip(prev *GameState, itemID string) *GameState {
	var target *equipment.Equipment
	for _, item := range prev.Inventory {
		if item.ID == itemID {
			target = item
			break
		}
	}
	if target == nil {
		return prev
	}

	s := prev.Clone()

	equipped := *target
	equipped.IsEquipped = true
	old := s.Equipped[equipped.Type]
	s.Equipped[equipped.Type] = &equipped
	replaceOrAppend(&s.Inventory, &equipped)

	if old != nil && old.ID != equipped.ID {
		unequipped := *old
		unequipped.IsEquipped = false
		replaceOrAppend(&s.Inventory, &unequipped)
	}

	s.bumpInventory()
	s.Logs = appendLogs(s.Logs, []LogEntry{
		newLog(fmt.Sprintf("Equipped %s", equipped.Name), LogInfo, e.nowMillis()),
	})
	return s
}

// Synthesize merges the identified item with the first identical material
// in the inventory: +1 enhancement below +5, a rank promotion at +5.
func (e *Engine) Synthesize(prev *GameState, baseID string) *GameState {
	var base *equipment.Equipment
	for _, item := range prev.Inventory {
		if item.ID == baseID {
			base = item
			break
		}
	}
	if base == nil {
		return prev
	}

	// Equipped items never serve as material: the inventory holds the
	// equipped copies too, and consuming one would strand a dangling
	// reference in the equipped map.
	var material *equipment.Equipment
	for _, item := range prev.Inventory {
		if item.ID != base.ID &&
			!item.IsEquipped &&
			item.Type == base.Type &&
			item.Tier == base.Tier &&
			item.Rank == base.Rank &&
			item.Plus == base.Plus &&
			item.Name == base.Name {
			material = item
			break
		}
	}
	if material == nil {
		return prev
	}

	merged := *base
	var msg string
	if base.Plus < equipment.MaxPlus {
		merged.Plus = base.Plus + 1
		msg = fmt.Sprintf("Enhanced %s to +%d!", base.Name, merged.Plus)
	} else {
		next, ok := base.Rank.Next()
		if !ok {
			return prev
		}
		merged.Rank = next
		merged.Plus = 0
		msg = fmt.Sprintf("%s rose to rank %s!", base.Name, next)
	}
	merged.Power = equipment.ItemPower(merged.BasePower, merged.Rank, merged.Plus)

	s := prev.Clone()

	filtered := s.Inventory[:0]
	for _, item := range s.Inventory {
		if item.ID == material.ID {
			continue
		}
		if item.ID == merged.ID {
			item = &merged
		}
		filtered = append(filtered, item)
	}
	s.Inventory = filtered

	if merged.IsEquipped {
		s.Equipped[merged.Type] = &merged
	}

	s.bumpInventory()
	s.Logs = appendLogs(s.Logs, []LogEntry{newLog(msg, LogGain, e.nowMillis())})
	return s
}

// BulkSynthesize runs the fixed-point merge over the whole inventory.
func (e *Engine) BulkSynthesize(prev *GameState) *GameState {
	result := equipment.PerformBulkSynthesis(prev.Inventory, prev.Equipped)

	s := prev.Clone()
	var entry LogEntry
	if result.Merged() {
		s.Inventory = result.Inventory
		s.Equipped = result.Equipped
		s.bumpInventory()
		entry = newLog(
			fmt.Sprintf("Bulk synthesis merged equipment across %d passes!", result.Passes-1),
			LogGain, e.nowMillis())
	} else {
		entry = newLog("Nothing to synthesize", LogInfo, e.nowMillis())
	}
	s.Logs = appendLogs(s.Logs, []LogEntry{entry})
	return s
}

// ChangeJob promotes the player to the next job on the ladder. Excess job
// levels beyond the unlock requirement carry into the new job.
func (e *Engine) ChangeJob(prev *GameState, newJob job.Job) *GameState {
	if !newJob.IsValid() || newJob != job.Next(prev.Player.Job) {
		return prev
	}
	required := job.UnlockLevel(newJob)
	if prev.Player.JobLevel < required {
		return prev
	}

	s := prev.Clone()
	excess := s.Player.JobLevel - required
	s.Player.Job = newJob
	s.Player.JobLevel = 1 + excess
	s.Logs = appendLogs(s.Logs, []LogEntry{
		newLog(fmt.Sprintf("Promoted to %s!", job.Definitions[newJob].DisplayName), LogGain, e.nowMillis()),
	})
	return s
}

// BuyMerchantUpgrade buys one level of a merchant upgrade with gold.
func (e *Engine) BuyMerchantUpgrade(prev *GameState, key upgrade.MerchantKey) *GameState {
	item, ok := upgrade.MerchantItemFor(key)
	if !ok || prev.Player.Merchant.AtCap(key) {
		return prev
	}
	level := prev.Player.Merchant.Level(key)
	cost := upgrade.MerchantCost(key, level, prev.Player.Reincarnation.PriceDiscount)
	if prev.Player.Gold < cost {
		return prev
	}

	s := prev.Clone()
	s.Player.Gold -= cost
	s.Player.Merchant.SetLevel(key, level+1)
	s.Logs = appendLogs(s.Logs, []LogEntry{
		newLog(fmt.Sprintf("%s raised to Lv.%d", item.Name, level+1), LogGain, e.nowMillis()),
	})
	return s
}

// BuyMaxMerchantUpgrade buys as many levels as the player can afford.
func (e *Engine) BuyMaxMerchantUpgrade(prev *GameState, key upgrade.MerchantKey) *GameState {
	item, ok := upgrade.MerchantItemFor(key)
	if !ok {
		return prev
	}

	gold := prev.Player.Gold
	level := prev.Player.Merchant.Level(key)
	discount := prev.Player.Reincarnation.PriceDiscount

	bought := 0
	for {
		if key == upgrade.CritRate && level+bought >= upgrade.CritRateMaxLevel {
			break
		}
		cost := upgrade.MerchantCost(key, level+bought, discount)
		if gold < cost {
			break
		}
		gold -= cost
		bought++
	}
	if bought == 0 {
		return prev
	}

	s := prev.Clone()
	s.Player.Gold = gold
	s.Player.Merchant.SetLevel(key, level+bought)
	s.Logs = appendLogs(s.Logs, []LogEntry{
		newLog(fmt.Sprintf("%s raised by %d (Lv.%d)", item.Name, bought, level+bought), LogGain, e.nowMillis()),
	})
	return s
}

// BuyReincarnationUpgrade buys one level of a permanent upgrade with
// stones. Buying the auto-merchant unlock switches every per-upgrade
// auto-buy flag on.
func (e *Engine) BuyReincarnationUpgrade(prev *GameState, key upgrade.ReincarnationKey) *GameState {
	item, ok := upgrade.ReincarnationItemFor(key)
	if !ok || prev.Player.Reincarnation.AtCap(key) {
		return prev
	}
	level := prev.Player.Reincarnation.Level(key)
	cost := upgrade.ReincarnationCost(key, level)
	if prev.Player.ReincarnationStones < cost {
		return prev
	}

	s := prev.Clone()
	s.Player.ReincarnationStones -= cost
	s.Player.Reincarnation.SetLevel(key, level+1)

	if key == upgrade.AutoMerchant {
		for _, m := range upgrade.MerchantCatalog {
			s.Player.AutoMerchantKeys[m.Key] = true
		}
	}

	s.Logs = appendLogs(s.Logs, []LogEntry{
		newLog(fmt.Sprintf("%s raised to Lv.%d", item.Name, level+1), LogGain, e.nowMillis()),
	})
	return s
}

// ToggleAutoMerchant flips the per-upgrade auto-buy flag.
func (e *Engine) ToggleAutoMerchant(prev *GameState, key upgrade.MerchantKey) *GameState {
	if _, ok := upgrade.MerchantItemFor(key); !ok {
		return prev
	}
	s := prev.Clone()
	s.Player.AutoMerchantKeys[key] = !s.Player.AutoMerchantKeys[key]
	return s
}

// ToggleDropPreference flips the opt-in flag for one equipment slot.
func (e *Engine) ToggleDropPreference(prev *GameState, slot equipment.Slot) *GameState {
	if !slot.IsValid() {
		return prev
	}
	s := prev.Clone()
	s.Player.DropPreferences[slot] = !s.Player.DropPreferences[slot]
	return s
}

// ActivateSkill starts one of the four activatable skills if it is owned
// and off cooldown. Duration scales with the upgrade level; the cooldown
// is a flat minute from activation.
func (e *Engine) ActivateSkill(prev *GameState, key upgrade.ReincarnationKey) *GameState {
	level := prev.Player.Reincarnation.Level(key)
	if level <= 0 {
		return prev
	}
	if prev.ActiveSkillFor(key) == nil {
		return prev
	}

	now := e.nowMillis()
	if now < prev.ActiveSkillFor(key).CooldownEnd {
		return prev
	}

	durationSec := 10 + level
	var msg string
	switch key {
	case upgrade.HyperSpeed:
		durationSec = 10 + (level-1)*5
		msg = fmt.Sprintf("Hyper Speed! Attack speed x10 for %d seconds!", durationSec)
	case upgrade.Concentration:
		msg = "Concentration! Skill trigger rate +30%"
	case upgrade.VitalSpot:
		msg = "Vital Spot! Critical rate +20%"
	case upgrade.Awakening:
		msg = "Awakening! Double attack, crit +25%, skill rate +15%"
	}

	durationMs := int64(durationSec) * 1000

	s := prev.Clone()
	skill := s.ActiveSkillFor(key)
	skill.IsActive = true
	skill.EndTime = now + durationMs
	skill.CooldownEnd = now + 60*1000
	skill.Duration = durationMs
	s.Logs = appendLogs(s.Logs, []LogEntry{newLog(msg, LogInfo, now)})
	return s
}

// SetFarmingMode sets or clears the floor loop. Setting a range requires
// the farming upgrade and a sane range.
func (e *Engine) SetFarmingMode(prev *GameState, mode *FarmingMode) *GameState {
	if mode != nil {
		if prev.Player.Reincarnation.Farming <= 0 {
			return prev
		}
		if mode.Min < 1 || mode.Max < mode.Min {
			return prev
		}
	}
	s := prev.Clone()
	if mode == nil {
		s.FarmingMode = nil
	} else {
		fm := *mode
		s.FarmingMode = &fm
	}
	return s
}

// AcknowledgeRareDrop clears the one-shot rare drop celebration.
func (e *Engine) AcknowledgeRareDrop(prev *GameState) *GameState {
	if prev.RareDropItem == nil {
		return prev
	}
	s := prev.Clone()
	s.RareDropItem = nil
	return s
}

// SetAutoBattle toggles whether ticks simulate combat. Disabling it makes
// every tick a no-op without stopping the timer.
func (e *Engine) SetAutoBattle(prev *GameState, enabled bool) *GameState {
	if prev.AutoBattle == enabled {
		return prev
	}
	s := prev.Clone()
	s.AutoBattle = enabled
	return s
}
