package domain

import (
	"testing"

	"pgregory.net/rapid"
)

func TestClampHP(t *testing.T) {
	cases := []struct {
		name        string
		current     int
		max         int
		wantCurrent int
		wantMax     int
	}{
		{"negative current floors to zero", -5, 50, 0, 50},
		{"current above max clamps to max", 999, 50, 50, 50},
		{"zero max floors to one", 10, 0, 1, 1},
		{"negative max floors to one", 3, -7, 1, 1},
		{"in range passes through", 25, 50, 25, 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			current, max := ClampHP(tc.current, tc.max)
			if current != tc.wantCurrent || max != tc.wantMax {
				t.Fatalf("ClampHP(%d, %d) = (%d, %d), want (%d, %d)",
					tc.current, tc.max, current, max, tc.wantCurrent, tc.wantMax)
			}
		})
	}
}

func TestClampHPInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		current := rapid.IntRange(-1000, 1000).Draw(t, "current")
		max := rapid.IntRange(-1000, 1000).Draw(t, "max")

		gotCurrent, gotMax := ClampHP(current, max)
		if gotMax < 1 {
			t.Fatalf("max %d below 1", gotMax)
		}
		if gotCurrent < 0 || gotCurrent > gotMax {
			t.Fatalf("current %d outside [0, %d]", gotCurrent, gotMax)
		}
	})
}

func TestClampStat(t *testing.T) {
	if got := ClampStat(-1); got != 0 {
		t.Fatalf("expected stat floor 0, got %d", got)
	}
	if got := ClampStat(101); got != 100 {
		t.Fatalf("expected stat cap 100, got %d", got)
	}
	if got := ClampStat(42); got != 42 {
		t.Fatalf("expected stat passthrough, got %d", got)
	}
}

func TestAdjustCoinsNeverNegative(t *testing.T) {
	if got := AdjustCoins(50, -1000); got != 0 {
		t.Fatalf("expected floored balance 0, got %d", got)
	}
	if got := AdjustCoins(50, 25); got != 75 {
		t.Fatalf("expected balance 75, got %d", got)
	}

	rapid.Check(t, func(t *rapid.T) {
		coins := rapid.IntRange(0, 100000).Draw(t, "coins")
		delta := rapid.IntRange(-100000, 100000).Draw(t, "delta")
		if got := AdjustCoins(coins, delta); got < 0 {
			t.Fatalf("balance went negative: %d", got)
		}
	})
}

func TestMergeStackIncrementsExisting(t *testing.T) {
	inventory := []InventoryItem{
		{ID: "stack-1", Name: "Potion", Rarity: RarityF, Quantity: 2},
	}
	item := ShopItem{Name: "Potion", Rarity: RarityF, Price: 5}

	merged := MergeStack(inventory, item, "unused-id")

	if len(merged) != 1 {
		t.Fatalf("expected a single stack, got %d entries", len(merged))
	}
	if merged[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", merged[0].Quantity)
	}
	if merged[0].ID != "stack-1" {
		t.Fatalf("expected existing stack id preserved, got %q", merged[0].ID)
	}
	// Input must remain untouched.
	if inventory[0].Quantity != 2 {
		t.Fatalf("input slice mutated: quantity %d", inventory[0].Quantity)
	}
}

func TestMergeStackAppendsNewStack(t *testing.T) {
	inventory := []InventoryItem{
		{ID: "stack-1", Name: "Potion", Rarity: RarityF, Quantity: 2},
	}
	// Same name, different rarity: a distinct stack.
	item := ShopItem{Name: "Potion", Description: "shiny", Rarity: RarityS, Price: 100}

	merged := MergeStack(inventory, item, "stack-2")

	if len(merged) != 2 {
		t.Fatalf("expected two stacks, got %d", len(merged))
	}
	added := merged[1]
	if added.ID != "stack-2" || added.Quantity != 1 {
		t.Fatalf("expected fresh stack with quantity 1, got %+v", added)
	}
	if added.Rarity != RarityS || added.Description != "shiny" {
		t.Fatalf("expected shop item fields copied, got %+v", added)
	}
}

func TestNormalizeInventoryDropsEmptyStacks(t *testing.T) {
	inventory := []InventoryItem{
		{ID: "a", Name: "Rope", Rarity: RarityF, Quantity: 1},
		{ID: "b", Name: "Dust", Rarity: RarityE, Quantity: 0},
		{ID: "c", Name: "Ash", Rarity: RarityD, Quantity: -2},
	}

	kept := NormalizeInventory(inventory)

	if len(kept) != 1 || kept[0].ID != "a" {
		t.Fatalf("expected only the positive stack kept, got %+v", kept)
	}
}

func TestPlayerCloneIsDeep(t *testing.T) {
	player := Player{
		ID:        7,
		Name:      "Yoo Joonghyuk",
		Inventory: []InventoryItem{{ID: "a", Name: "Sword", Rarity: RarityS, Quantity: 1}},
		Abilities: []Ability{{ID: "b", Name: "Regression", Level: 3}},
		Skills:    DefaultSkills(),
	}

	clone := player.Clone()
	clone.Inventory[0].Quantity = 99
	clone.Abilities[0].Level = 99
	clone.Skills[0].Ranks = 99

	if player.Inventory[0].Quantity != 1 {
		t.Fatal("inventory shared between clone and original")
	}
	if player.Abilities[0].Level != 3 {
		t.Fatal("abilities shared between clone and original")
	}
	if player.Skills[0].Ranks != 0 {
		t.Fatal("skills shared between clone and original")
	}
}

func TestAttributesValue(t *testing.T) {
	attrs := Attributes{Strength: 18, Dexterity: 14, Constitution: 12, Intelligence: 16, Wisdom: 8, Charisma: 10}

	cases := map[AttributeKey]int{
		AttrFOR: 18,
		AttrDES: 14,
		AttrCON: 12,
		AttrINT: 16,
		AttrSAB: 8,
		AttrCAR: 10,
	}
	for key, want := range cases {
		if got := attrs.Value(key); got != want {
			t.Fatalf("Value(%s) = %d, want %d", key, got, want)
		}
	}
	if got := attrs.Value("HUH"); got != 10 {
		t.Fatalf("expected unknown key fallback 10, got %d", got)
	}
}
