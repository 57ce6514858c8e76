package engine

import (
	"fmt"
	"math"

	"github.com/lawnchairsociety/towerclimb/internal/equipment"
	"github.com/lawnchairsociety/towerclimb/internal/job"
	"github.com/lawnchairsociety/towerclimb/internal/upgrade"
)

// skillTriggerCap is the hard ceiling on any skill's effective trigger
// rate. Rate above the cap is converted into extra damage instead.
const skillTriggerCap = 0.5

// attackContext carries the per-tick damage inputs that do not change
// between the attacks of a single tick.
type attackContext struct {
	baseDamage           float64
	setBonus             equipment.SetBonus
	critRate             float64
	critMultiplier       float64
	giantKilling         float64
	skillPowerMultiplier float64
	triggerBonus         float64
}

// slotBoostLevel maps an equipment slot to its merchant boost level.
func slotBoostLevel(m *upgrade.MerchantUpgrades, slot equipment.Slot) int {
	switch slot {
	case equipment.Weapon:
		return m.WeaponBoost
	case equipment.Helm:
		return m.HelmBoost
	case equipment.Armor:
		return m.ArmorBoost
	case equipment.Shield:
		return m.ShieldBoost
	default:
		return 0
	}
}

// TotalBaseAttack sums every additive attack source before multipliers:
// player base attack, merchant and reincarnation flat bonuses, boosted
// equipment power and the collection bonus.
func (e *Engine) TotalBaseAttack(s *GameState) float64 {
	p := &s.Player

	total := p.BaseAttack
	total += upgrade.MerchantAttackBonus(p.Merchant.AttackBonus)
	total += upgrade.ReincAttackBonus(p.Reincarnation.BaseAttackBoost)

	for slot, item := range s.Equipped {
		if item == nil {
			continue
		}
		boost := upgrade.SlotBoostPercent(slotBoostLevel(&p.Merchant, slot))
		total += item.Power * (1 + boost)
	}

	total += e.collectionBonus(s)
	return total
}

// prepareAttack computes the damage inputs once per tick. The base damage
// already folds in the job multiplier, set bonus and awakening doubling.
func (e *Engine) prepareAttack(s *GameState) attackContext {
	p := &s.Player
	setBonus := equipment.CalcSetBonus(s.Equipped)

	base := math.Floor(e.TotalBaseAttack(s) * job.Multiplier(p.Job) * setBonus.AttackMult)
	if s.ActiveSkills.Awakening.IsActive {
		base = math.Floor(base * 2.0)
	}

	critRate := 0.05 + float64(p.Merchant.CritRate)*0.01 + setBonus.CritAdd*0.01
	if s.ActiveSkills.VitalSpot.IsActive {
		critRate += 0.2
	}
	if s.ActiveSkills.Awakening.IsActive {
		critRate += 0.25
	}

	triggerBonus := 0.0
	if s.ActiveSkills.Concentration.IsActive {
		triggerBonus += 0.3
	}
	if s.ActiveSkills.Awakening.IsActive {
		triggerBonus += 0.15
	}

	return attackContext{
		baseDamage:           base,
		setBonus:             setBonus,
		critRate:             math.Min(1.0, critRate),
		critMultiplier:       upgrade.CritDamageMultiplier(p.Merchant.CritDamage),
		giantKilling:         upgrade.GiantKillingMultiplier(p.Merchant.GiantKilling),
		skillPowerMultiplier: upgrade.SkillDamageMultiplier(p.Reincarnation.SkillDamageBoost),
		triggerBonus:         triggerBonus,
	}
}

// attackResult is one resolved attack.
type attackResult struct {
	damage          float64
	isCrit          bool
	skillsTriggered []string
}

// resolveAttack rolls skills and the critical hit for one attack and
// returns the final damage. It updates skill mastery on the state and may
// append mastery level-up logs.
func (e *Engine) resolveAttack(s *GameState, ctx attackContext, isBoss bool, logs *[]LogEntry) attackResult {
	p := &s.Player
	skills := job.Skills(p.Job)

	damageMultiplier := 1.0
	var triggered []string

	// Highest-tier skills roll first.
	for i := len(skills) - 1; i >= 0; i-- {
		skill := skills[i]
		mastery := p.SkillMastery[skill.Name]
		effectiveRate := skill.TriggerRate + float64(mastery.Level)*0.01 + ctx.triggerBonus

		excess := 0.0
		rollRate := effectiveRate
		if effectiveRate > skillTriggerCap {
			excess = effectiveRate - skillTriggerCap
			rollRate = skillTriggerCap
		}

		if e.rng.Float64() >= rollRate {
			continue
		}

		damageMultiplier *= skill.DamageMultiplier * ctx.skillPowerMultiplier * (1.0 + excess)
		triggered = append(triggered, skill.Name)

		mastery.Count++
		if mastery.Count >= 10 {
			mastery.Level++
			mastery.Count = 0
			*logs = append(*logs, newLog(
				fmt.Sprintf("%s mastery rose to Lv.%d!", skill.Name, mastery.Level),
				LogGain, e.nowMillis()))
		}
		p.SkillMastery[skill.Name] = mastery
	}

	isCrit := e.rng.Float64() < ctx.critRate

	damage := ctx.baseDamage * damageMultiplier
	if isCrit {
		damage *= ctx.critMultiplier
	}
	damage = math.Floor(damage)
	if isBoss && ctx.giantKilling > 1 {
		damage = math.Floor(damage * ctx.giantKilling)
	}

	return attackResult{damage: damage, isCrit: isCrit, skillsTriggered: triggered}
}
