package domain

// UnlimitedStock is the sentinel stock value for items that never run out.
const UnlimitedStock = -1

// ShopItem is an item offered by the GM shop.
//
// Stock semantics: UnlimitedStock means purchases never decrement, zero means
// the item is listed but unavailable, any positive value is the remaining
// count.
type ShopItem struct {
	ID          int64
	Name        string
	Description string
	Rarity      Rarity
	Type        ItemType
	Price       int
	Stock       int
}

// Purchasable reports whether the item can currently be bought.
func (s ShopItem) Purchasable() bool {
	return s.Stock != 0
}

// Unlimited reports whether the item uses the unlimited-stock sentinel.
func (s ShopItem) Unlimited() bool {
	return s.Stock == UnlimitedStock
}
