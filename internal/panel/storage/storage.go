// Package storage defines the persistence boundary for the GM panel: row
// records as they exist in the remote store, partial-update patches, and the
// store interfaces the reconciliation and command layers consume.
package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/constellation/internal/platform/errors"
)

// ErrNotFound indicates a requested persistence record is missing.
// Callers use this to differentiate between legitimate "no such entity"
// states and transport or data corruption failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// AbilityRow is the persisted JSON shape of one ability entry.
type AbilityRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       int    `json:"level"`
	Cooldown    int    `json:"cooldown"`
}

// InventoryRow is the persisted JSON shape of one inventory stack.
type InventoryRow struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      string `json:"rarity"`
	Quantity    int    `json:"quantity"`
}

// SkillRow is the persisted JSON shape of one skill sheet entry.
type SkillRow struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CustomName string `json:"customName,omitempty"`
	Attribute  string `json:"attribute"`
	Trained    bool   `json:"trained"`
	Ranks      int    `json:"ranks"`
	MiscBonus  int    `json:"miscBonus"`
	IsCustom   bool   `json:"isCustom,omitempty"`
}

// PlayerRecord is the persisted player row. Optional columns use pointers so
// mapping can distinguish "absent" from zero and supply defaults.
type PlayerRecord struct {
	ID            int64
	Name          string
	CurrentHP     int
	MaxHP         int
	Coins         int
	Strength      int
	Dexterity     int
	Constitution  int
	Intelligence  int
	Wisdom        int
	Charisma      int
	ArmorClass    *int
	MovementSpeed *int
	Abilities     []AbilityRow
	Inventory     []InventoryRow
	Skills        []SkillRow
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ShopItemRecord is the persisted shop item row.
type ShopItemRecord struct {
	ID          int64
	Name        string
	Description string
	Rarity      string
	ItemType    string
	Price       int
	Stock       int
	CreatedAt   time.Time
}

// LogRecord is the persisted scenario log row.
type LogRecord struct {
	ID        int64
	Text      string
	Type      string
	Target    string
	Timestamp string
	CreatedAt time.Time
}

// PlayerPatch describes a partial player update. Nil fields are untouched;
// set fields overwrite the stored column (row-level last write wins).
type PlayerPatch struct {
	Name          *string
	CurrentHP     *int
	MaxHP         *int
	Coins         *int
	Strength      *int
	Dexterity     *int
	Constitution  *int
	Intelligence  *int
	Wisdom        *int
	Charisma      *int
	ArmorClass    *int
	MovementSpeed *int
	Abilities     *[]AbilityRow
	Inventory     *[]InventoryRow
	Skills        *[]SkillRow
}

// SetStat assigns one of the six ability-score columns by its persisted
// column name. It reports whether the name was recognized.
func (p *PlayerPatch) SetStat(column string, value int) bool {
	switch column {
	case "strength":
		p.Strength = &value
	case "dexterity":
		p.Dexterity = &value
	case "constitution":
		p.Constitution = &value
	case "intelligence":
		p.Intelligence = &value
	case "wisdom":
		p.Wisdom = &value
	case "charisma":
		p.Charisma = &value
	default:
		return false
	}
	return true
}

// ShopItemPatch describes a partial shop item update.
type ShopItemPatch struct {
	Name        *string
	Description *string
	Rarity      *string
	ItemType    *string
	Price       *int
	Stock       *int
}

// LogFilter narrows log listing to entries visible to one player.
// The zero value admits every entry.
type LogFilter struct {
	// Target, when non-empty, admits only rows addressed to "all" or to
	// this exact target value.
	Target string
}

// PlayerStore owns player row persistence.
type PlayerStore interface {
	// ListPlayers returns all players ordered by id ascending.
	ListPlayers(ctx context.Context) ([]PlayerRecord, error)
	// GetPlayer returns one player or ErrNotFound.
	GetPlayer(ctx context.Context, id int64) (PlayerRecord, error)
	// PutPlayer inserts or replaces a full player row.
	PutPlayer(ctx context.Context, record PlayerRecord) error
	// UpdatePlayer applies a partial update and returns the stored row.
	UpdatePlayer(ctx context.Context, id int64, patch PlayerPatch) (PlayerRecord, error)
	// DeletePlayer removes a player row. Missing rows are not an error.
	DeletePlayer(ctx context.Context, id int64) error
}

// ShopStore owns shop item row persistence.
type ShopStore interface {
	// ListShopItems returns all items ordered by creation time ascending.
	ListShopItems(ctx context.Context) ([]ShopItemRecord, error)
	// InsertShopItem stores a new item and returns it with its assigned id.
	InsertShopItem(ctx context.Context, record ShopItemRecord) (ShopItemRecord, error)
	// UpdateShopItem applies a partial update and returns the stored row.
	UpdateShopItem(ctx context.Context, id int64, patch ShopItemPatch) (ShopItemRecord, error)
	// DeleteShopItem removes an item row. Missing rows are not an error.
	DeleteShopItem(ctx context.Context, id int64) error
}

// LogStore owns scenario log persistence. Logs are append-only except for
// the GM-wide purge.
type LogStore interface {
	// ListLogs returns log rows ordered by creation time ascending,
	// narrowed by the filter.
	ListLogs(ctx context.Context, filter LogFilter) ([]LogRecord, error)
	// InsertLog appends one entry and returns it with its assigned id.
	InsertLog(ctx context.Context, record LogRecord) (LogRecord, error)
	// DeleteAllLogs removes every log row and returns the deleted ids.
	DeleteAllLogs(ctx context.Context) ([]int64, error)
}

// Store is the composite persistence interface the panel runs against.
type Store interface {
	PlayerStore
	ShopStore
	LogStore
	Close() error
}
