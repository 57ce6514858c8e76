package save

import (
	"testing"

	"github.com/lawnchairsociety/towerclimb/internal/engine"
	"github.com/lawnchairsociety/towerclimb/internal/equipment"
	"github.com/lawnchairsociety/towerclimb/internal/job"
	"github.com/lawnchairsociety/towerclimb/internal/tower"
)

func TestNormalizeFillsPlayerDefaults(t *testing.T) {
	s := &engine.GameState{}
	Normalize(s)

	p := s.Player
	if p.Level != 1 {
		t.Errorf("level = %d, want 1", p.Level)
	}
	if p.RequiredXP != 50 {
		t.Errorf("requiredXp = %v, want 50", p.RequiredXP)
	}
	if p.Job != job.Novice {
		t.Errorf("job = %s, want novice", p.Job)
	}
	if p.Floor != 1 || p.MaxFloorReached != 1 {
		t.Errorf("floor = %d maxFloor = %d, want 1/1", p.Floor, p.MaxFloorReached)
	}
	if p.BaseAttack != 10 {
		t.Errorf("baseAttack = %v, want 10", p.BaseAttack)
	}
	if p.SkillMastery == nil || p.AutoMerchantKeys == nil || p.DropPreferences == nil {
		t.Error("maps should be initialized")
	}
	if s.Inventory == nil || s.Equipped == nil || s.Logs == nil {
		t.Error("collections should be initialized")
	}
}

func TestNormalizeRaisesMaxFloorToFloor(t *testing.T) {
	s := engine.NewGameState()
	s.Player.Floor = 250
	s.Player.MaxFloorReached = 10
	Normalize(s)
	if s.Player.MaxFloorReached != 250 {
		t.Errorf("maxFloorReached = %d, want raised to 250", s.Player.MaxFloorReached)
	}
}

func TestNormalizeBackfillsEquipmentRank(t *testing.T) {
	s := engine.NewGameState()
	legacy := &equipment.Equipment{
		ID: "legacy", Name: "Old Sword", Type: equipment.Weapon,
		Tier: 2, Plus: 1,
		// no rank, no basePower, stale power
		Power: 999999,
	}
	s.Inventory = append(s.Inventory, legacy)
	Normalize(s)

	if legacy.Rank != equipment.RankD {
		t.Errorf("rank = %s, want backfilled D", legacy.Rank)
	}
	wantBase := equipment.BasePowerForTier(2)
	if legacy.BasePower != wantBase {
		t.Errorf("basePower = %v, want %v", legacy.BasePower, wantBase)
	}
	wantPower := equipment.ItemPower(wantBase, equipment.RankD, 1)
	if legacy.Power != wantPower {
		t.Errorf("power = %v, want recomputed %v", legacy.Power, wantPower)
	}
}

func TestNormalizeDropsBrokenEnemyAndFarming(t *testing.T) {
	s := engine.NewGameState()
	s.Enemy = nil
	timer := 10
	s.BossTimer = &timer
	s.FarmingMode = &engine.FarmingMode{Min: 300, Max: 200}
	Normalize(s)

	if s.BossTimer != nil {
		t.Error("boss timer without an enemy should clear")
	}
	if s.FarmingMode != nil {
		t.Error("inverted farming range should clear")
	}
}

func TestNormalizeClearsBossTimerForNormalEnemy(t *testing.T) {
	s := engine.NewGameState()
	s.Enemy = tower.GenerateEnemy(1, 0)
	timer := 90
	s.BossTimer = &timer
	Normalize(s)
	if s.BossTimer != nil {
		t.Error("boss timer against a normal enemy should clear")
	}
}

func TestNormalizeKeepsBossTimerForBoss(t *testing.T) {
	s := engine.NewGameState()
	s.Enemy = tower.GenerateEnemy(10, 0)
	timer := 90
	s.BossTimer = &timer
	Normalize(s)
	if s.BossTimer == nil || *s.BossTimer != 90 {
		t.Error("boss timer during a boss fight should survive")
	}
}

func TestNormalizeClampsEnemyHP(t *testing.T) {
	s := engine.NewGameState()
	s.Enemy = tower.GenerateEnemy(1, 0)
	s.Enemy.CurrentHP = s.Enemy.MaxHP * 2
	Normalize(s)
	if s.Enemy.CurrentHP != s.Enemy.MaxHP {
		t.Errorf("currentHp = %v, want clamped to maxHp %v", s.Enemy.CurrentHP, s.Enemy.MaxHP)
	}
}
