package storage

import (
	"reflect"
	"testing"

	"github.com/louisbranch/constellation/internal/panel/domain"
)

func TestPlayerFromRecordDefaults(t *testing.T) {
	record := PlayerRecord{ID: 1, Name: "Kim Dokja", CurrentHP: 10, MaxHP: 20}

	player := PlayerFromRecord(record)

	if player.ArmorClass != 10 {
		t.Fatalf("expected default armor class 10, got %d", player.ArmorClass)
	}
	if player.MovementSpeed != 30 {
		t.Fatalf("expected default movement speed 30, got %d", player.MovementSpeed)
	}
	if len(player.Skills) == 0 {
		t.Fatal("expected default skill sheet for a row without skills")
	}
	for _, s := range player.Skills {
		if s.IsCustom {
			t.Fatalf("default sheet contains custom skill %q", s.DisplayName())
		}
	}
}

func TestPlayerFromRecordExplicitOptionalColumns(t *testing.T) {
	ac := 17
	speed := 25
	record := PlayerRecord{
		ID:            2,
		CurrentHP:     5,
		MaxHP:         5,
		ArmorClass:    &ac,
		MovementSpeed: &speed,
		Skills:        []SkillRow{},
	}

	player := PlayerFromRecord(record)

	if player.ArmorClass != 17 || player.MovementSpeed != 25 {
		t.Fatalf("expected explicit combat stats kept, got ac=%d speed=%d",
			player.ArmorClass, player.MovementSpeed)
	}
	// An empty (but present) skill list must not be replaced by the defaults.
	if len(player.Skills) != 0 {
		t.Fatalf("expected empty skill sheet kept, got %d entries", len(player.Skills))
	}
}

func TestPlayerFromRecordClampsHP(t *testing.T) {
	player := PlayerFromRecord(PlayerRecord{ID: 3, CurrentHP: 80, MaxHP: 0})

	if player.MaxHP != 1 || player.CurrentHP != 1 {
		t.Fatalf("expected clamped HP (1, 1), got (%d, %d)", player.CurrentHP, player.MaxHP)
	}
}

func TestPlayerFromRecordNormalizesRarity(t *testing.T) {
	record := PlayerRecord{
		ID:        4,
		CurrentHP: 1,
		MaxHP:     1,
		Inventory: []InventoryRow{
			{ID: "a", Name: "Relic", Rarity: "S", Quantity: 1},
			{ID: "b", Name: "Scrap", Rarity: "mythic", Quantity: 2},
		},
	}

	player := PlayerFromRecord(record)

	if player.Inventory[0].Rarity != domain.RarityS {
		t.Fatalf("expected rarity S kept, got %s", player.Inventory[0].Rarity)
	}
	if player.Inventory[1].Rarity != domain.RarityF {
		t.Fatalf("expected unknown rarity defaulted to F, got %s", player.Inventory[1].Rarity)
	}
}

func TestPlayerFromRecordIdempotent(t *testing.T) {
	record := PlayerRecord{
		ID:        5,
		Name:      "Yoo Joonghyuk",
		CurrentHP: 30,
		MaxHP:     40,
		Coins:     120,
		Abilities: []AbilityRow{{ID: "x", Name: "Regression", Level: 3}},
	}

	first := PlayerFromRecord(record)
	second := PlayerFromRecord(record)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("mapping not idempotent:\n%+v\n%+v", first, second)
	}
}

func TestPlayerRecordRoundTrip(t *testing.T) {
	player := domain.Player{
		ID:            6,
		Name:          "Han Sooyoung",
		CurrentHP:     12,
		MaxHP:         18,
		Coins:         77,
		Attributes:    domain.Attributes{Strength: 8, Dexterity: 14, Constitution: 12, Intelligence: 18, Wisdom: 10, Charisma: 15},
		ArmorClass:    13,
		MovementSpeed: 30,
		Inventory:     []domain.InventoryItem{{ID: "inv", Name: "Pen", Rarity: domain.RarityA, Quantity: 1}},
		Skills:        domain.DefaultSkills(),
	}

	got := PlayerFromRecord(RecordFromPlayer(player))

	if !reflect.DeepEqual(got, player) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", got, player)
	}
}

func TestShopItemFromRecordNormalizes(t *testing.T) {
	item := ShopItemFromRecord(ShopItemRecord{
		ID:       9,
		Name:     "Mystery Box",
		Rarity:   "??",
		ItemType: "weapon",
		Price:    50,
		Stock:    -1,
	})

	if item.Rarity != domain.RarityF {
		t.Fatalf("expected unknown rarity defaulted to F, got %s", item.Rarity)
	}
	if item.Type != domain.ItemTypeDiversos {
		t.Fatalf("expected unknown type defaulted to diversos, got %s", item.Type)
	}
	if !item.Unlimited() {
		t.Fatal("expected stock -1 to read as unlimited")
	}
}

func TestLogRecordRoundTrip(t *testing.T) {
	entry := domain.LogEntry{
		ID:        11,
		Text:      "[System Broadcast to All Players] The gate opens.",
		Type:      domain.LogTypeSystem,
		Target:    domain.TargetAll,
		Timestamp: "21:14:03",
	}

	if got := LogFromRecord(RecordFromLog(entry)); got != entry {
		t.Fatalf("round trip mismatch: %+v vs %+v", got, entry)
	}
}
