// Package seed loads YAML fixtures into the panel store. It exists so a
// fresh database can be stocked with players and shop items before the
// first session.
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/louisbranch/constellation/internal/panel/storage"
)

// Fixture is the root of a seed file.
type Fixture struct {
	Players   []PlayerFixture   `yaml:"players"`
	ShopItems []ShopItemFixture `yaml:"shop_items"`
}

// PlayerFixture is one seeded player row. Optional columns omitted from the
// file stay absent and pick up defaults on read.
type PlayerFixture struct {
	ID            int64              `yaml:"id"`
	Name          string             `yaml:"name"`
	CurrentHP     int                `yaml:"current_hp"`
	MaxHP         int                `yaml:"max_hp"`
	Coins         int                `yaml:"coins"`
	Strength      int                `yaml:"strength"`
	Dexterity     int                `yaml:"dexterity"`
	Constitution  int                `yaml:"constitution"`
	Intelligence  int                `yaml:"intelligence"`
	Wisdom        int                `yaml:"wisdom"`
	Charisma      int                `yaml:"charisma"`
	ArmorClass    *int               `yaml:"armor_class"`
	MovementSpeed *int               `yaml:"movement_speed"`
	Abilities     []AbilityFixture   `yaml:"abilities"`
	Inventory     []InventoryFixture `yaml:"inventory"`
}

// AbilityFixture is one seeded ability entry.
type AbilityFixture struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Level       int    `yaml:"level"`
	Cooldown    int    `yaml:"cooldown"`
}

// InventoryFixture is one seeded inventory stack.
type InventoryFixture struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Rarity      string `yaml:"rarity"`
	Quantity    int    `yaml:"quantity"`
}

// ShopItemFixture is one seeded shop item.
type ShopItemFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Rarity      string `yaml:"rarity"`
	Type        string `yaml:"type"`
	Price       int    `yaml:"price"`
	Stock       int    `yaml:"stock"`
}

// Load reads and decodes a fixture file.
func Load(path string) (Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read seed file: %w", err)
	}
	var fixture Fixture
	if err := yaml.Unmarshal(raw, &fixture); err != nil {
		return Fixture{}, fmt.Errorf("decode seed file: %w", err)
	}
	return fixture, nil
}

// Apply writes the fixture through the store. Player rows require explicit
// ids; shop items get theirs assigned on insert.
func Apply(ctx context.Context, store storage.Store, fixture Fixture) error {
	for _, p := range fixture.Players {
		record := storage.PlayerRecord{
			ID:            p.ID,
			Name:          p.Name,
			CurrentHP:     p.CurrentHP,
			MaxHP:         p.MaxHP,
			Coins:         p.Coins,
			Strength:      p.Strength,
			Dexterity:     p.Dexterity,
			Constitution:  p.Constitution,
			Intelligence:  p.Intelligence,
			Wisdom:        p.Wisdom,
			Charisma:      p.Charisma,
			ArmorClass:    p.ArmorClass,
			MovementSpeed: p.MovementSpeed,
		}
		for _, a := range p.Abilities {
			record.Abilities = append(record.Abilities, storage.AbilityRow{
				ID:          a.ID,
				Name:        a.Name,
				Description: a.Description,
				Level:       a.Level,
				Cooldown:    a.Cooldown,
			})
		}
		for _, item := range p.Inventory {
			record.Inventory = append(record.Inventory, storage.InventoryRow{
				ID:          item.ID,
				Name:        item.Name,
				Description: item.Description,
				Rarity:      item.Rarity,
				Quantity:    item.Quantity,
			})
		}
		if err := store.PutPlayer(ctx, record); err != nil {
			return fmt.Errorf("seed player %q: %w", p.Name, err)
		}
	}

	for _, item := range fixture.ShopItems {
		record := storage.ShopItemRecord{
			Name:        item.Name,
			Description: item.Description,
			Rarity:      item.Rarity,
			ItemType:    item.Type,
			Price:       item.Price,
			Stock:       item.Stock,
		}
		if _, err := store.InsertShopItem(ctx, record); err != nil {
			return fmt.Errorf("seed shop item %q: %w", item.Name, err)
		}
	}
	return nil
}
