package domain

// Default values supplied when a persisted player row omits optional fields.
const (
	DefaultArmorClass    = 10
	DefaultMovementSpeed = 30
)

// Stat clamp bounds for the six ability scores.
const (
	StatMin = 0
	StatMax = 100
)

// Attributes holds the six ability scores.
type Attributes struct {
	Strength     int
	Dexterity    int
	Constitution int
	Intelligence int
	Wisdom       int
	Charisma     int
}

// AttributeKey names one of the six ability scores using the panel's
// abbreviated labels.
type AttributeKey string

const (
	AttrFOR AttributeKey = "FOR" // strength
	AttrDES AttributeKey = "DES" // dexterity
	AttrCON AttributeKey = "CON" // constitution
	AttrINT AttributeKey = "INT" // intelligence
	AttrSAB AttributeKey = "SAB" // wisdom
	AttrCAR AttributeKey = "CAR" // charisma
)

// Valid reports whether the key names a known attribute.
func (k AttributeKey) Valid() bool {
	switch k {
	case AttrFOR, AttrDES, AttrCON, AttrINT, AttrSAB, AttrCAR:
		return true
	}
	return false
}

// Value returns the score for the given attribute key, or 10 for unknown keys.
func (a Attributes) Value(key AttributeKey) int {
	switch key {
	case AttrFOR:
		return a.Strength
	case AttrDES:
		return a.Dexterity
	case AttrCON:
		return a.Constitution
	case AttrINT:
		return a.Intelligence
	case AttrSAB:
		return a.Wisdom
	case AttrCAR:
		return a.Charisma
	default:
		return 10
	}
}

// Ability is a learned player ability.
type Ability struct {
	ID          string
	Name        string
	Description string
	Level       int
	Cooldown    int
}

// InventoryItem is a stack of identical items in a player's inventory.
// Two entries belong to the same stack iff name and rarity match.
type InventoryItem struct {
	ID          string
	Name        string
	Description string
	Rarity      Rarity
	Quantity    int
}

// Player is the in-memory player representation owned by the reconciliation
// engine. RecentlyChanged is transient view state and is never persisted.
type Player struct {
	ID            int64
	Name          string
	CurrentHP     int
	MaxHP         int
	Coins         int
	Attributes    Attributes
	ArmorClass    int
	MovementSpeed int
	Abilities     []Ability
	Inventory     []InventoryItem
	Skills        []Skill

	RecentlyChanged bool
}

// Clone returns a deep copy safe to hand to observers.
func (p Player) Clone() Player {
	clone := p
	clone.Abilities = append([]Ability(nil), p.Abilities...)
	clone.Inventory = append([]InventoryItem(nil), p.Inventory...)
	clone.Skills = append([]Skill(nil), p.Skills...)
	return clone
}

// ClampHP normalizes an HP pair: max is floored to 1, current is clamped
// into [0, max]. Every code path that sets HP goes through this.
func ClampHP(current, max int) (int, int) {
	if max < 1 {
		max = 1
	}
	if current < 0 {
		current = 0
	}
	if current > max {
		current = max
	}
	return current, max
}

// ClampStat clamps an ability score into [StatMin, StatMax].
func ClampStat(value int) int {
	if value < StatMin {
		return StatMin
	}
	if value > StatMax {
		return StatMax
	}
	return value
}

// ClampNonNegative floors combat values (armor class, movement speed) at zero.
func ClampNonNegative(value int) int {
	if value < 0 {
		return 0
	}
	return value
}

// AdjustCoins applies a signed coin delta, flooring the balance at zero.
func AdjustCoins(coins, delta int) int {
	balance := coins + delta
	if balance < 0 {
		return 0
	}
	return balance
}

// MergeStack adds one purchased unit of item into inventory. An existing
// stack with matching name and rarity is incremented; otherwise a new stack
// with quantity 1 and the supplied id is appended. The input slice is not
// modified.
func MergeStack(inventory []InventoryItem, item ShopItem, newID string) []InventoryItem {
	merged := append([]InventoryItem(nil), inventory...)
	for i := range merged {
		if merged[i].Name == item.Name && merged[i].Rarity == item.Rarity {
			merged[i].Quantity++
			return merged
		}
	}
	return append(merged, InventoryItem{
		ID:          newID,
		Name:        item.Name,
		Description: item.Description,
		Rarity:      item.Rarity,
		Quantity:    1,
	})
}

// NormalizeInventory drops stacks that reached zero or negative quantity.
// A stack is never persisted at quantity <= 0.
func NormalizeInventory(inventory []InventoryItem) []InventoryItem {
	kept := make([]InventoryItem, 0, len(inventory))
	for _, stack := range inventory {
		if stack.Quantity > 0 {
			kept = append(kept, stack)
		}
	}
	return kept
}
