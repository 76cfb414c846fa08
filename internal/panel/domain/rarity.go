// Package domain defines the GM panel entities and the pure rules that
// govern them: clamping, inventory stacking, skill math, and log addressing.
// Nothing in this package performs I/O.
package domain

// Rarity is one of eight ordered classification tiers, F lowest to X highest.
type Rarity string

const (
	RarityF Rarity = "F"
	RarityE Rarity = "E"
	RarityD Rarity = "D"
	RarityC Rarity = "C"
	RarityB Rarity = "B"
	RarityA Rarity = "A"
	RarityS Rarity = "S"
	RarityX Rarity = "X"
)

// displayRank orders tiers for presentation, highest rarity first.
var displayRank = map[Rarity]int{
	RarityX: 0,
	RarityS: 1,
	RarityA: 2,
	RarityB: 3,
	RarityC: 4,
	RarityD: 5,
	RarityE: 6,
	RarityF: 7,
}

// Valid reports whether the rarity is a known tier.
func (r Rarity) Valid() bool {
	_, ok := displayRank[r]
	return ok
}

// DisplayRank returns the sort position for rarity-descending views.
// Unknown tiers sort after F.
func (r Rarity) DisplayRank() int {
	rank, ok := displayRank[r]
	if !ok {
		return len(displayRank)
	}
	return rank
}

// ParseRarity normalizes a persisted rarity string, defaulting unknown
// values to the lowest tier.
func ParseRarity(value string) Rarity {
	r := Rarity(value)
	if !r.Valid() {
		return RarityF
	}
	return r
}

// ItemType classifies shop items into the panel's fixed categories.
type ItemType string

const (
	ItemTypeUtilitario  ItemType = "utilitario"
	ItemTypeEquipamento ItemType = "equipamento"
	ItemTypeDiversos    ItemType = "diversos"
)

// Valid reports whether the item type is a known category.
func (t ItemType) Valid() bool {
	switch t {
	case ItemTypeUtilitario, ItemTypeEquipamento, ItemTypeDiversos:
		return true
	}
	return false
}

// ParseItemType normalizes a persisted item type string, defaulting unknown
// values to diversos.
func ParseItemType(value string) ItemType {
	t := ItemType(value)
	if !t.Valid() {
		return ItemTypeDiversos
	}
	return t
}
