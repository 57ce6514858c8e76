package upgrade

import (
	"math"
	"testing"
)

func TestMerchantCost(t *testing.T) {
	tests := []struct {
		key      MerchantKey
		level    int
		discount int
		want     float64
	}{
		{AttackBonus, 0, 0, 1000},
		{AttackBonus, 1, 0, 1500},
		{AttackBonus, 2, 0, 2250},
		{AttackBonus, 3, 0, 3375},
		{CritDamage, 0, 0, 1e7},
		{GiantKilling, 0, 0, 1e32},
		// discount level 2 is Quad(2)/2 = 3%
		{AttackBonus, 0, 2, 970},
		// 1000 * 1.5^7 = 17085.9375 floors to 17085 before the 3%
		// discount, so floor(17085 * 0.97) = 16572 rather than 16573
		{AttackBonus, 7, 2, 16572},
	}

	for _, tt := range tests {
		got := MerchantCost(tt.key, tt.level, tt.discount)
		if got != tt.want {
			t.Errorf("MerchantCost(%s, %d, %d) = %v, want %v", tt.key, tt.level, tt.discount, got, tt.want)
		}
	}
}

func TestMerchantCostDiscountCap(t *testing.T) {
	// Quad(20)/2 = 210, clamped to 99%
	got := MerchantCost(AttackBonus, 0, 20)
	want := math.Floor(1000 * 0.01)
	if got != want {
		t.Errorf("MerchantCost with capped discount = %v, want %v", got, want)
	}
}

func TestReincarnationCost(t *testing.T) {
	tests := []struct {
		key   ReincarnationKey
		level int
		want  float64
	}{
		{XPBoost, 0, 100},
		{XPBoost, 1, 120},
		{XPBoost, 2, 144},
		{StartFloor, 0, 500},
		{Awakening, 0, 1e9},
		{ItemPersistence, 0, 1e7},
		{ItemPersistence, 1, 1e9},
		{ItemPersistence, 2, 1e11},
	}

	for _, tt := range tests {
		got := ReincarnationCost(tt.key, tt.level)
		if got != tt.want {
			t.Errorf("ReincarnationCost(%s, %d) = %v, want %v", tt.key, tt.level, got, tt.want)
		}
	}
}

func TestItemPersistenceCapped(t *testing.T) {
	if got := ReincarnationCost(ItemPersistence, ItemPersistenceMaxLevel); !math.IsInf(got, 1) {
		t.Errorf("ReincarnationCost(ItemPersistence, %d) = %v, want +Inf", ItemPersistenceMaxLevel, got)
	}
	r := &ReincarnationUpgrades{ItemPersistence: ItemPersistenceMaxLevel}
	if !r.AtCap(ItemPersistence) {
		t.Error("expected item persistence to be capped at level 3")
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestQuadEffects(t *testing.T) {
	if got := Quad(3); got != 12 {
		t.Errorf("Quad(3) = %v, want 12", got)
	}
	if got := MerchantAttackBonus(3); got != 120 {
		t.Errorf("MerchantAttackBonus(3) = %v, want 120", got)
	}
	if got := CritDamageMultiplier(0); got != 1.3 {
		t.Errorf("CritDamageMultiplier(0) = %v, want 1.3", got)
	}
	if got := CritDamageMultiplier(2); !approxEqual(got, 1.42) {
		t.Errorf("CritDamageMultiplier(2) = %v, want 1.42", got)
	}
	if got := SlotBoostPercent(4); !approxEqual(got, 0.2) {
		t.Errorf("SlotBoostPercent(4) = %v, want 0.2", got)
	}
	if got := GiantKillingMultiplier(5); !approxEqual(got, 1.1) {
		t.Errorf("GiantKillingMultiplier(5) = %v, want 1.1", got)
	}
	if got := ReincAttackBonus(2); got != 300 {
		t.Errorf("ReincAttackBonus(2) = %v, want 300", got)
	}
	if got := GainBoost(10); !approxEqual(got, 2.1) {
		t.Errorf("GainBoost(10) = %v, want 2.1", got)
	}
	if got := SkillDamageMultiplier(4); got != 2 {
		t.Errorf("SkillDamageMultiplier(4) = %v, want 2", got)
	}
}

func TestLevelSetLevelRoundTrip(t *testing.T) {
	m := &MerchantUpgrades{}
	for _, item := range MerchantCatalog {
		m.SetLevel(item.Key, 7)
		if got := m.Level(item.Key); got != 7 {
			t.Errorf("merchant Level(%s) = %d, want 7", item.Key, got)
		}
	}

	r := &ReincarnationUpgrades{}
	for _, item := range ReincarnationCatalog {
		r.SetLevel(item.Key, 3)
		if got := r.Level(item.Key); got != 3 {
			t.Errorf("reincarnation Level(%s) = %d, want 3", item.Key, got)
		}
	}
}

func TestCritRateCap(t *testing.T) {
	m := &MerchantUpgrades{CritRate: CritRateMaxLevel}
	if !m.AtCap(CritRate) {
		t.Error("expected crit rate to be capped at level 50")
	}
	m.CritRate = CritRateMaxLevel - 1
	if m.AtCap(CritRate) {
		t.Error("crit rate should not be capped below level 50")
	}
}
