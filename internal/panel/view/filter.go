// Package view holds the derived-view filters applied on top of reconciled
// collections. Filtering is pure: the same collection and filter state
// always produce the same ordered result, so callers can recompute on every
// read without caching.
package view

import (
	"sort"
	"strings"

	"github.com/louisbranch/constellation/internal/panel/domain"
)

// InventoryFilter narrows a player's inventory. Empty fields pass everything.
type InventoryFilter struct {
	Search   string
	Rarities []domain.Rarity
}

// Reset clears the search text and rarity selection.
func (f *InventoryFilter) Reset() {
	f.Search = ""
	f.Rarities = nil
}

// ShopFilter narrows the shop listing. Empty fields pass everything.
type ShopFilter struct {
	Search   string
	Rarities []domain.Rarity
	Types    []domain.ItemType
}

// Reset clears the search text and both selection sets.
func (f *ShopFilter) Reset() {
	f.Search = ""
	f.Rarities = nil
	f.Types = nil
}

// FilterInventory returns the stacks passing the filter, sorted by rarity
// descending (X first, F last). Within equal rarity the input order is kept.
func FilterInventory(items []domain.InventoryItem, filter InventoryFilter) []domain.InventoryItem {
	out := make([]domain.InventoryItem, 0, len(items))
	for _, item := range items {
		if !matchesSearch(filter.Search, item.Name, item.Description) {
			continue
		}
		if !raritysAdmit(filter.Rarities, item.Rarity) {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rarity.DisplayRank() < out[j].Rarity.DisplayRank()
	})
	return out
}

// FilterShop returns the items passing the filter, sorted by rarity
// descending. Within equal rarity the input order is kept.
func FilterShop(items []domain.ShopItem, filter ShopFilter) []domain.ShopItem {
	out := make([]domain.ShopItem, 0, len(items))
	for _, item := range items {
		if !matchesSearch(filter.Search, item.Name, item.Description) {
			continue
		}
		if !raritysAdmit(filter.Rarities, item.Rarity) {
			continue
		}
		if !typesAdmit(filter.Types, item.Type) {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rarity.DisplayRank() < out[j].Rarity.DisplayRank()
	})
	return out
}

func matchesSearch(search, name, description string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(name), needle) ||
		strings.Contains(strings.ToLower(description), needle)
}

func raritysAdmit(selected []domain.Rarity, rarity domain.Rarity) bool {
	if len(selected) == 0 {
		return true
	}
	for _, r := range selected {
		if r == rarity {
			return true
		}
	}
	return false
}

func typesAdmit(selected []domain.ItemType, itemType domain.ItemType) bool {
	if len(selected) == 0 {
		return true
	}
	for _, t := range selected {
		if t == itemType {
			return true
		}
	}
	return false
}
