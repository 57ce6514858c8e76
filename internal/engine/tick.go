package engine

import (
	"fmt"
	"math"

	"github.com/lawnchairsociety/towerclimb/internal/equipment"
	"github.com/lawnchairsociety/towerclimb/internal/format"
	"github.com/lawnchairsociety/towerclimb/internal/job"
	"github.com/lawnchairsociety/towerclimb/internal/tower"
	"github.com/lawnchairsociety/towerclimb/internal/upgrade"
)

// hyperSpeedAttacks is the attacks-per-tick burst while hyper speed runs.
const hyperSpeedAttacks = 10

// Tick advances the game by one simulated second. The input state is never
// mutated; the returned state is a fresh value. With auto battle disabled
// the tick is a no-op and the input state is returned as-is.
func (e *Engine) Tick(prev *GameState) *GameState {
	if !prev.AutoBattle {
		return prev
	}

	s := prev.Clone()
	var logs []LogEntry

	e.expireActiveSkills(s, &logs)
	e.autoPromote(s, &logs)
	e.autoMerchant(s)

	// Boss timer runs down even while the player is attacking. Expiry
	// knocks the player back and ends the tick.
	if s.BossTimer != nil {
		*s.BossTimer--
		if *s.BossTimer <= 0 {
			target := s.Player.Floor - bossTimeoutPenalty
			if target < 1 {
				target = 1
			}
			logs = append(logs, newLog(
				fmt.Sprintf("Out of time! Knocked back to floor %d...", target),
				LogDanger, e.nowMillis()))
			s.Player.Floor = target
			e.spawnEnemy(s)
			s.Logs = appendLogs(s.Logs, logs)
			return s
		}
	}

	attacksPerTick := 1
	if s.ActiveSkills.HyperSpeed.IsActive {
		attacksPerTick = hyperSpeedAttacks
	}

	ctx := e.prepareAttack(s)

	var (
		totalDamageInTick float64
		dropsThisTick     []*equipment.Equipment
		inventoryChanged  bool
	)

	for attack := 0; attack < attacksPerTick; attack++ {
		if s.Enemy == nil {
			e.spawnEnemy(s)
			if attack == 0 || s.Enemy.IsBoss {
				logs = append(logs, newLog(fmt.Sprintf("%s appeared!", s.Enemy.Name), LogInfo, e.nowMillis()))
			}
		}

		res := e.resolveAttack(s, ctx, s.Enemy.IsBoss, &logs)

		hit := *s.Enemy
		hit.CurrentHP = math.Max(0, hit.CurrentHP-res.damage)
		s.Enemy = &hit

		totalDamageInTick += res.damage

		if attacksPerTick == 1 {
			msg := fmt.Sprintf("Dealt %s damage", format.Number(res.damage))
			if len(res.skillsTriggered) > 0 {
				msg = fmt.Sprintf("%s! Dealt %s damage", joinNames(res.skillsTriggered), format.Number(res.damage))
			}
			typ := LogDamage
			if res.isCrit {
				msg += " (critical!)"
				typ = LogCrit
			}
			logs = append(logs, newLog(msg, typ, e.nowMillis()))
			totalDamageInTick = 0
		}

		if s.Enemy.CurrentHP > 0 {
			continue
		}

		if attacksPerTick > 1 && totalDamageInTick > 0 {
			logs = append(logs, newLog(
				fmt.Sprintf("Rapid assault! %s total damage!", format.Number(totalDamageInTick)),
				LogDamage, e.nowMillis()))
			totalDamageInTick = 0
		}

		e.grantKillRewards(s, &logs)
		kills := e.generateKillDrops(s, &logs)
		dropsThisTick = append(dropsThisTick, kills...)

		if s.Enemy.IsBoss {
			logs = append(logs, newLog("Boss defeated! Climbing to the next floor", LogBoss, e.nowMillis()))
		}

		e.advanceFloor(s, &logs)
		e.spawnEnemy(s)
		if s.Enemy.IsBoss {
			logs = append(logs, newLog(
				fmt.Sprintf("Floor %d boss %s appeared!", s.Player.Floor, s.Enemy.Name),
				LogDanger, e.nowMillis()))
		}
	}

	if attacksPerTick > 1 && totalDamageInTick > 0 {
		logs = append(logs, newLog(
			fmt.Sprintf("Rapid assault! %s total damage!", format.Number(totalDamageInTick)),
			LogDamage, e.nowMillis()))
	}

	if len(dropsThisTick) > 0 {
		e.stashDrops(s, dropsThisTick)
		inventoryChanged = true
	}

	if inventoryChanged && s.Player.Reincarnation.AutoEnhance > 0 {
		result := equipment.PerformBulkSynthesis(s.Inventory, s.Equipped)
		if result.Merged() {
			s.Inventory = result.Inventory
			s.Equipped = result.Equipped
			logs = append(logs, newLog(
				fmt.Sprintf("Auto synthesis merged equipment across %d passes!", result.Passes-1),
				LogGain, e.nowMillis()))
		}
	}

	if inventoryChanged {
		s.bumpInventory()
	}

	s.Logs = appendLogs(s.Logs, logs)
	return s
}

// expireActiveSkills deactivates any skill whose window has passed.
func (e *Engine) expireActiveSkills(s *GameState, logs *[]LogEntry) {
	now := e.nowMillis()
	for _, key := range []upgrade.ReincarnationKey{
		upgrade.Concentration, upgrade.VitalSpot, upgrade.HyperSpeed, upgrade.Awakening,
	} {
		skill := s.ActiveSkillFor(key)
		if skill.IsActive && now > skill.EndTime {
			skill.IsActive = false
			*logs = append(*logs, newLog(
				fmt.Sprintf("%s wore off", activeSkillName(key)),
				LogInfo, now))
		}
	}
}

// autoPromote advances the job when the auto-promote upgrade is owned and
// the next job's unlock level is met. Excess job levels carry over.
func (e *Engine) autoPromote(s *GameState, logs *[]LogEntry) {
	if s.Player.Reincarnation.AutoPromote <= 0 {
		return
	}
	next := job.Next(s.Player.Job)
	if next == "" {
		return
	}
	required := job.UnlockLevel(next)
	if s.Player.JobLevel < required {
		return
	}
	excess := s.Player.JobLevel - required
	s.Player.Job = next
	s.Player.JobLevel = 1 + excess
	*logs = append(*logs, newLog(
		fmt.Sprintf("[auto] Promoted to %s!", job.Definitions[next].DisplayName),
		LogGain, e.nowMillis()))
}

// autoMerchant buys at most one level of every auto-enabled merchant
// upgrade, in catalog order, while gold lasts.
func (e *Engine) autoMerchant(s *GameState) {
	if s.Player.Reincarnation.AutoMerchant <= 0 {
		return
	}
	for _, item := range upgrade.MerchantCatalog {
		if !s.Player.AutoMerchantKeys[item.Key] {
			continue
		}
		level := s.Player.Merchant.Level(item.Key)
		if s.Player.Merchant.AtCap(item.Key) {
			continue
		}
		cost := upgrade.MerchantCost(item.Key, level, s.Player.Reincarnation.PriceDiscount)
		if s.Player.Gold < cost {
			continue
		}
		s.Player.Gold -= cost
		s.Player.Merchant.SetLevel(item.Key, level+1)
	}
}

// grantKillRewards applies gold/XP for the dead enemy and runs the level-up
// loop. Each level raises required XP by 30%, grants +2 base attack and a
// job level.
func (e *Engine) grantKillRewards(s *GameState, logs *[]LogEntry) {
	p := &s.Player

	goldGain := math.Floor(s.Enemy.GoldReward * upgrade.GainBoost(p.Reincarnation.GoldBoost))
	xpGain := math.Floor(s.Enemy.XPReward * upgrade.GainBoost(p.Reincarnation.XPBoost))

	p.Gold += goldGain
	p.CurrentXP += xpGain
	*logs = append(*logs, newLog(
		fmt.Sprintf("Defeated %s! Gained %sXP, %sG", s.Enemy.Name, format.Number(xpGain), format.Number(goldGain)),
		LogGain, e.nowMillis()))

	for p.CurrentXP >= p.RequiredXP {
		p.Level++
		p.CurrentXP -= p.RequiredXP
		p.RequiredXP = math.Floor(p.RequiredXP * 1.3)
		p.BaseAttack += 2
		p.JobLevel++
		*logs = append(*logs, newLog(
			fmt.Sprintf("Level up! Reached Lv.%d", p.Level),
			LogGain, e.nowMillis()))
	}
}

// generateKillDrops rolls the drops for the enemy just killed. Boss kills
// on the 10/100/500 boundaries force 10/30/50 guaranteed rolls; the
// 500-boundary boss may additionally yield the rare rank-A item.
func (e *Engine) generateKillDrops(s *GameState, logs *[]LogEntry) []*equipment.Equipment {
	floor := s.Player.Floor

	dropCount := 1
	forceDrop := false
	allowRare := false
	if s.Enemy.IsBoss {
		switch {
		case floor%tower.FloorsPerTier == 0:
			dropCount, forceDrop, allowRare = 50, true, true
		case floor%tower.BossCycle == 0:
			dropCount, forceDrop = 30, true
		case floor%tower.BossInterval == 0:
			dropCount, forceDrop = 10, true
		}
	}

	opts := equipment.DropOptions{
		ForceDrop:      forceDrop,
		AllowRareRank:  allowRare,
		FilterUnlocked: s.Player.Reincarnation.ItemFilter > 0,
		Preferences:    s.Player.DropPreferences,
	}

	var drops []*equipment.Equipment
	for i := 0; i < dropCount; i++ {
		drop := equipment.GenerateDrop(e.rng, floor, opts)
		if drop == nil {
			continue
		}
		if allowRare && drop.Rank == equipment.RankA {
			s.RareDropItem = drop
		}
		drops = append(drops, drop)
	}

	if len(drops) == 1 {
		*logs = append(*logs, newLog("Equipment dropped!", LogGain, e.nowMillis()))
	} else if len(drops) > 1 {
		*logs = append(*logs, newLog(
			fmt.Sprintf("%d pieces of equipment dropped!", len(drops)),
			LogGain, e.nowMillis()))
	}
	return drops
}

// advanceFloor climbs one floor, wrapping inside an active farming range
// and raising the high-water mark.
func (e *Engine) advanceFloor(s *GameState, logs *[]LogEntry) {
	s.Player.Floor++

	if s.FarmingMode != nil && s.Player.Floor > s.FarmingMode.Max {
		s.Player.Floor = s.FarmingMode.Min
		*logs = append(*logs, newLog(
			fmt.Sprintf("Farming loop: returning to floor %d", s.FarmingMode.Min),
			LogInfo, e.nowMillis()))
	}

	if s.Player.Floor > s.Player.MaxFloorReached {
		s.Player.MaxFloorReached = s.Player.Floor
	}
}

// spawnEnemy replaces the current enemy with the one for the player's
// floor and arms the boss timer when needed.
func (e *Engine) spawnEnemy(s *GameState) {
	enemy := tower.GenerateEnemy(s.Player.Floor, s.Player.Reincarnation.EnemyHPDown)
	s.Enemy = enemy
	if enemy.IsBoss {
		t := e.bossTimeLimit
		s.BossTimer = &t
	} else {
		s.BossTimer = nil
	}
}

// stashDrops adds the tick's drops to the inventory, auto-equipping any
// strict upgrade when the auto-equip prestige upgrade is owned.
func (e *Engine) stashDrops(s *GameState, drops []*equipment.Equipment) {
	autoEquip := s.Player.Reincarnation.AutoEquip > 0

	for _, drop := range drops {
		if autoEquip {
			current := s.Equipped[drop.Type]
			if current == nil || drop.Power > current.Power {
				equipped := *drop
				equipped.IsEquipped = true
				s.Equipped[drop.Type] = &equipped

				if current != nil {
					unequipped := *current
					unequipped.IsEquipped = false
					replaceOrAppend(&s.Inventory, &unequipped)
				}
				s.Inventory = append(s.Inventory, &equipped)
				continue
			}
		}
		s.Inventory = append(s.Inventory, drop)
	}
}

// replaceOrAppend swaps the inventory entry with the same ID, or appends
// when the item is missing from the list.
func replaceOrAppend(inventory *[]*equipment.Equipment, item *equipment.Equipment) {
	for i, existing := range *inventory {
		if existing.ID == item.ID {
			(*inventory)[i] = item
			return
		}
	}
	*inventory = append(*inventory, item)
}

func joinNames(names []string) string {
	out := ""
	for i, name := range names {
		if i > 0 {
			out += " & "
		}
		out += name
	}
	return out
}

func activeSkillName(key upgrade.ReincarnationKey) string {
	switch key {
	case upgrade.Concentration:
		return "Concentration"
	case upgrade.VitalSpot:
		return "Vital Spot"
	case upgrade.HyperSpeed:
		return "Hyper Speed"
	case upgrade.Awakening:
		return "Awakening"
	default:
		return string(key)
	}
}
