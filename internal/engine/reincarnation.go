package engine

import (
	"fmt"
	"math"

	"github.com/lawnchairsociety/towerclimb/internal/equipment"
	"github.com/lawnchairsociety/towerclimb/internal/tower"
	"github.com/lawnchairsociety/towerclimb/internal/upgrade"
)

// ReincarnationStones converts the floor reached into prestige currency.
// Formula: floor >= 100 yields 100 + 10d + floor(d^3/4) with d = floor-100,
// scaled by the stone boost multiplier; below floor 100 nothing is earned.
func ReincarnationStones(floor int, boostLevel int) float64 {
	if floor < 100 {
		return 0
	}
	d := float64(floor - 100)
	stones := 100 + d*10 + math.Floor(math.Pow(d, 3)/4)
	return math.Floor(stones * upgrade.GainBoost(boostLevel))
}

// MaxStartFloor is the highest floor a reincarnated run may begin on: the
// start-floor upgrade unlocks 100 floors per level, but never above the
// last 100-floor boundary the player has actually cleared.
func MaxStartFloor(startFloorLevel, maxFloorReached int) int {
	if maxFloorReached < 1 {
		maxFloorReached = 1
	}
	potential := 1 + startFloorLevel*100
	allowed := (maxFloorReached-1)/100*100 + 1
	if potential < allowed {
		return potential
	}
	return allowed
}

// persistenceThreshold returns the minimum rank that survives
// reincarnation at an item persistence level, or false below level 1.
func persistenceThreshold(level int) (equipment.Rank, bool) {
	switch {
	case level >= 3:
		return equipment.RankS, true
	case level == 2:
		return equipment.RankA, true
	case level == 1:
		return equipment.RankB, true
	default:
		return "", false
	}
}

// Reincarnate resets the run. Stones, permanent upgrades, toggles and the
// floor high-water mark survive; merchant upgrades, level, gold and (below
// the persistence threshold) equipment do not.
func (e *Engine) Reincarnate(prev *GameState, requestedStartFloor int) *GameState {
	p := &prev.Player

	stones := ReincarnationStones(p.Floor, p.Reincarnation.StoneBoost)

	maxStart := MaxStartFloor(p.Reincarnation.StartFloor, p.MaxFloorReached)
	newFloor := requestedStartFloor
	if newFloor > maxStart {
		newFloor = maxStart
	}
	if newFloor < 1 {
		newFloor = 1
	}

	// Equipment inheritance: keep items at or above the unlocked rank,
	// unequipped unless auto-equip immediately restores the best per slot.
	var inventory []*equipment.Equipment
	equipped := make(map[equipment.Slot]*equipment.Equipment)
	if threshold, ok := persistenceThreshold(p.Reincarnation.ItemPersistence); ok {
		seen := make(map[string]bool)
		keep := func(item *equipment.Equipment) {
			if item == nil || seen[item.ID] || !item.Rank.AtLeast(threshold) {
				return
			}
			seen[item.ID] = true
			kept := *item
			kept.IsEquipped = false
			inventory = append(inventory, &kept)
		}
		for _, item := range prev.Inventory {
			keep(item)
		}
		for _, item := range prev.Equipped {
			keep(item)
		}

		if p.Reincarnation.AutoEquip > 0 {
			best := make(map[equipment.Slot]*equipment.Equipment)
			for _, item := range inventory {
				if current := best[item.Type]; current == nil || item.Power > current.Power {
					best[item.Type] = item
				}
			}
			for slot, item := range best {
				item.IsEquipped = true
				equipped[slot] = item
			}
		}
	}

	player := NewPlayer()
	player.ReincarnationStones = p.ReincarnationStones + stones
	player.Reincarnation = p.Reincarnation
	player.Floor = newFloor
	player.MaxFloorReached = p.MaxFloorReached
	for k, v := range p.AutoMerchantKeys {
		player.AutoMerchantKeys[k] = v
	}
	for k, v := range p.DropPreferences {
		player.DropPreferences[k] = v
	}

	s := NewGameState()
	s.Player = player
	s.Inventory = inventory
	s.Equipped = equipped
	s.InventoryVersion = prev.InventoryVersion + 1

	s.Enemy = tower.GenerateEnemy(newFloor, player.Reincarnation.EnemyHPDown)
	if s.Enemy.IsBoss {
		t := e.bossTimeLimit
		s.BossTimer = &t
	}

	now := e.nowMillis()
	logs := []LogEntry{
		newLog(fmt.Sprintf("Reincarnated! Gained %.0f stones.", stones), LogInfo, now),
		newLog(fmt.Sprintf("%s appeared!", s.Enemy.Name), LogInfo, now),
	}
	if len(inventory) > 0 {
		logs = append(logs, newLog(
			fmt.Sprintf("Inherited %d pieces of equipment", len(inventory)),
			LogInfo, now))
	}
	s.Logs = logs
	return s
}
