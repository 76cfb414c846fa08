package domain

import "testing"

func TestRarityDisplayRankTotalOrder(t *testing.T) {
	descending := []Rarity{RarityX, RarityS, RarityA, RarityB, RarityC, RarityD, RarityE, RarityF}

	for i := 1; i < len(descending); i++ {
		if descending[i-1].DisplayRank() >= descending[i].DisplayRank() {
			t.Fatalf("expected %s to rank before %s", descending[i-1], descending[i])
		}
	}
}

func TestParseRarityDefaultsUnknown(t *testing.T) {
	if got := ParseRarity("S"); got != RarityS {
		t.Fatalf("expected S, got %s", got)
	}
	if got := ParseRarity("ZZ"); got != RarityF {
		t.Fatalf("expected unknown rarity to default to F, got %s", got)
	}
	if got := ParseRarity(""); got != RarityF {
		t.Fatalf("expected empty rarity to default to F, got %s", got)
	}
}

func TestUnknownRaritySortsLast(t *testing.T) {
	if Rarity("??").DisplayRank() <= RarityF.DisplayRank() {
		t.Fatal("expected unknown rarity to sort after F")
	}
}

func TestParseItemTypeDefaultsDiversos(t *testing.T) {
	if got := ParseItemType("equipamento"); got != ItemTypeEquipamento {
		t.Fatalf("expected equipamento, got %s", got)
	}
	if got := ParseItemType(""); got != ItemTypeDiversos {
		t.Fatalf("expected empty type to default to diversos, got %s", got)
	}
	if got := ParseItemType("weapon"); got != ItemTypeDiversos {
		t.Fatalf("expected unknown type to default to diversos, got %s", got)
	}
}
