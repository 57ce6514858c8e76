package equipment

import "testing"

func TestBulkSynthesisPairPromotes(t *testing.T) {
	// Two identical D+5 weapons become a single C+0
	a := makeItem("a", Weapon, 1, RankD, 5, false)
	b := makeItem("b", Weapon, 1, RankD, 5, false)

	result := PerformBulkSynthesis([]*Equipment{a, b}, nil)
	if !result.Merged() {
		t.Fatal("expected a merge")
	}
	if len(result.Inventory) != 1 {
		t.Fatalf("pool size = %d, want 1", len(result.Inventory))
	}
	got := result.Inventory[0]
	if got.Rank != RankC || got.Plus != 0 {
		t.Errorf("merged item = %s+%d, want C+0", got.Rank, got.Plus)
	}
	if got.Power != ItemPower(got.BasePower, RankC, 0) {
		t.Errorf("merged power = %v, want %v", got.Power, ItemPower(got.BasePower, RankC, 0))
	}
}

func TestBulkSynthesisEnhances(t *testing.T) {
	a := makeItem("a", Helm, 1, RankD, 0, false)
	b := makeItem("b", Helm, 1, RankD, 0, false)

	result := PerformBulkSynthesis([]*Equipment{a, b}, nil)
	got := result.Inventory[0]
	if got.Rank != RankD || got.Plus != 1 {
		t.Errorf("merged item = %s+%d, want D+1", got.Rank, got.Plus)
	}
}

func TestBulkSynthesisChains(t *testing.T) {
	// Four identical items chain: two merges, then the results merge again
	pool := []*Equipment{
		makeItem("a", Armor, 1, RankD, 0, false),
		makeItem("b", Armor, 1, RankD, 0, false),
		makeItem("c", Armor, 1, RankD, 0, false),
		makeItem("d", Armor, 1, RankD, 0, false),
	}

	result := PerformBulkSynthesis(pool, nil)
	if len(result.Inventory) != 1 {
		t.Fatalf("pool size = %d, want 1", len(result.Inventory))
	}
	if got := result.Inventory[0]; got.Plus != 2 {
		t.Errorf("chained item = %s+%d, want D+2", got.Rank, got.Plus)
	}
}

func TestBulkSynthesisIdempotent(t *testing.T) {
	pool := []*Equipment{
		makeItem("a", Weapon, 1, RankD, 0, false),
		makeItem("b", Weapon, 1, RankD, 0, false),
		makeItem("c", Weapon, 1, RankD, 1, false),
	}

	first := PerformBulkSynthesis(pool, nil)
	second := PerformBulkSynthesis(first.Inventory, first.Equipped)
	if second.Merged() {
		t.Errorf("second run merged again: passes = %d", second.Passes)
	}
	if len(second.Inventory) != len(first.Inventory) {
		t.Errorf("second run changed pool size: %d -> %d", len(first.Inventory), len(second.Inventory))
	}
}

func TestBulkSynthesisConservation(t *testing.T) {
	pool := []*Equipment{
		makeItem("a", Weapon, 1, RankD, 0, false),
		makeItem("b", Weapon, 1, RankD, 0, false),
		makeItem("c", Helm, 1, RankD, 0, false),
		makeItem("d", Shield, 2, RankC, 1, false),
		makeItem("e", Shield, 2, RankC, 1, false),
		makeItem("f", Armor, 1, RankD, 2, false),
	}

	result := PerformBulkSynthesis(pool, nil)
	if len(result.Inventory) > len(pool) {
		t.Errorf("pool grew: %d -> %d", len(pool), len(result.Inventory))
	}
	inputIDs := make(map[string]bool)
	for _, item := range pool {
		inputIDs[item.ID] = true
	}
	for _, item := range result.Inventory {
		if !inputIDs[item.ID] {
			t.Errorf("output item %s has an unknown ID", item.ID)
		}
	}
}

func TestBulkSynthesisKeepsEquippedBase(t *testing.T) {
	worn := makeItem("worn", Weapon, 1, RankD, 0, true)
	spare := makeItem("spare", Weapon, 1, RankD, 0, false)

	result := PerformBulkSynthesis([]*Equipment{worn, spare}, map[Slot]*Equipment{Weapon: worn})
	if len(result.Inventory) != 1 {
		t.Fatalf("pool size = %d, want 1", len(result.Inventory))
	}
	merged := result.Inventory[0]
	if merged.ID != "worn" || !merged.IsEquipped {
		t.Errorf("equipped item did not survive as base: %+v", merged)
	}
	if result.Equipped[Weapon] == nil || result.Equipped[Weapon].ID != "worn" {
		t.Error("equipped map lost the merged item")
	}
	if result.Equipped[Weapon] != merged {
		t.Error("equipped map and inventory diverged")
	}
}

func TestBulkSynthesisTerminalItems(t *testing.T) {
	a := makeItem("a", Weapon, 1, RankS, 5, false)
	b := makeItem("b", Weapon, 1, RankS, 5, false)

	result := PerformBulkSynthesis([]*Equipment{a, b}, nil)
	if result.Merged() {
		t.Error("S+5 items must not merge")
	}
	if len(result.Inventory) != 2 {
		t.Errorf("pool size = %d, want 2", len(result.Inventory))
	}
}

func TestBulkSynthesisEmptyPool(t *testing.T) {
	result := PerformBulkSynthesis(nil, nil)
	if result.Merged() || len(result.Inventory) != 0 {
		t.Errorf("empty pool result: %+v", result)
	}
}
