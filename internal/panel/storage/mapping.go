package storage

import (
	"github.com/louisbranch/constellation/internal/panel/domain"
)

// PlayerFromRecord converts a persisted row into the in-memory player,
// supplying defaults for omitted columns. Mapping the same record twice
// yields structurally equal players.
func PlayerFromRecord(r PlayerRecord) domain.Player {
	player := domain.Player{
		ID:    r.ID,
		Name:  r.Name,
		Coins: r.Coins,
		Attributes: domain.Attributes{
			Strength:     r.Strength,
			Dexterity:    r.Dexterity,
			Constitution: r.Constitution,
			Intelligence: r.Intelligence,
			Wisdom:       r.Wisdom,
			Charisma:     r.Charisma,
		},
		ArmorClass:    domain.DefaultArmorClass,
		MovementSpeed: domain.DefaultMovementSpeed,
	}
	player.CurrentHP, player.MaxHP = domain.ClampHP(r.CurrentHP, r.MaxHP)
	if r.ArmorClass != nil {
		player.ArmorClass = *r.ArmorClass
	}
	if r.MovementSpeed != nil {
		player.MovementSpeed = *r.MovementSpeed
	}

	if len(r.Abilities) > 0 {
		player.Abilities = make([]domain.Ability, 0, len(r.Abilities))
		for _, row := range r.Abilities {
			player.Abilities = append(player.Abilities, domain.Ability{
				ID:          row.ID,
				Name:        row.Name,
				Description: row.Description,
				Level:       row.Level,
				Cooldown:    row.Cooldown,
			})
		}
	}

	if len(r.Inventory) > 0 {
		player.Inventory = make([]domain.InventoryItem, 0, len(r.Inventory))
		for _, row := range r.Inventory {
			player.Inventory = append(player.Inventory, domain.InventoryItem{
				ID:          row.ID,
				Name:        row.Name,
				Description: row.Description,
				Rarity:      domain.ParseRarity(row.Rarity),
				Quantity:    row.Quantity,
			})
		}
	}

	if r.Skills == nil {
		player.Skills = domain.DefaultSkills()
	} else {
		player.Skills = make([]domain.Skill, 0, len(r.Skills))
		for _, row := range r.Skills {
			player.Skills = append(player.Skills, domain.Skill{
				ID:         row.ID,
				Name:       row.Name,
				CustomName: row.CustomName,
				Attribute:  domain.AttributeKey(row.Attribute),
				Trained:    row.Trained,
				Ranks:      row.Ranks,
				MiscBonus:  row.MiscBonus,
				IsCustom:   row.IsCustom,
			})
		}
	}

	return player
}

// RecordFromPlayer converts an in-memory player back to its row shape.
// Transient view state is dropped; optional columns are written explicitly.
func RecordFromPlayer(p domain.Player) PlayerRecord {
	armorClass := p.ArmorClass
	movementSpeed := p.MovementSpeed
	record := PlayerRecord{
		ID:            p.ID,
		Name:          p.Name,
		CurrentHP:     p.CurrentHP,
		MaxHP:         p.MaxHP,
		Coins:         p.Coins,
		Strength:      p.Attributes.Strength,
		Dexterity:     p.Attributes.Dexterity,
		Constitution:  p.Attributes.Constitution,
		Intelligence:  p.Attributes.Intelligence,
		Wisdom:        p.Attributes.Wisdom,
		Charisma:      p.Attributes.Charisma,
		ArmorClass:    &armorClass,
		MovementSpeed: &movementSpeed,
		Abilities:     AbilityRows(p.Abilities),
		Inventory:     InventoryRows(p.Inventory),
		Skills:        SkillRows(p.Skills),
	}
	return record
}

// AbilityRows converts abilities to their persisted shape.
func AbilityRows(abilities []domain.Ability) []AbilityRow {
	if abilities == nil {
		return nil
	}
	rows := make([]AbilityRow, 0, len(abilities))
	for _, a := range abilities {
		rows = append(rows, AbilityRow{
			ID:          a.ID,
			Name:        a.Name,
			Description: a.Description,
			Level:       a.Level,
			Cooldown:    a.Cooldown,
		})
	}
	return rows
}

// InventoryRows converts inventory stacks to their persisted shape.
func InventoryRows(inventory []domain.InventoryItem) []InventoryRow {
	if inventory == nil {
		return nil
	}
	rows := make([]InventoryRow, 0, len(inventory))
	for _, item := range inventory {
		rows = append(rows, InventoryRow{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Rarity:      string(item.Rarity),
			Quantity:    item.Quantity,
		})
	}
	return rows
}

// SkillRows converts a skill sheet to its persisted shape.
func SkillRows(skills []domain.Skill) []SkillRow {
	if skills == nil {
		return nil
	}
	rows := make([]SkillRow, 0, len(skills))
	for _, s := range skills {
		rows = append(rows, SkillRow{
			ID:         s.ID,
			Name:       s.Name,
			CustomName: s.CustomName,
			Attribute:  string(s.Attribute),
			Trained:    s.Trained,
			Ranks:      s.Ranks,
			MiscBonus:  s.MiscBonus,
			IsCustom:   s.IsCustom,
		})
	}
	return rows
}

// ShopItemFromRecord converts a persisted shop row into the domain item,
// normalizing rarity and type.
func ShopItemFromRecord(r ShopItemRecord) domain.ShopItem {
	return domain.ShopItem{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Rarity:      domain.ParseRarity(r.Rarity),
		Type:        domain.ParseItemType(r.ItemType),
		Price:       r.Price,
		Stock:       r.Stock,
	}
}

// RecordFromShopItem converts a domain shop item back to its row shape.
func RecordFromShopItem(item domain.ShopItem) ShopItemRecord {
	return ShopItemRecord{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		Rarity:      string(item.Rarity),
		ItemType:    string(item.Type),
		Price:       item.Price,
		Stock:       item.Stock,
	}
}

// LogFromRecord converts a persisted log row into the domain entry.
func LogFromRecord(r LogRecord) domain.LogEntry {
	return domain.LogEntry{
		ID:        r.ID,
		Text:      r.Text,
		Type:      domain.LogType(r.Type),
		Target:    r.Target,
		Timestamp: r.Timestamp,
	}
}

// RecordFromLog converts a domain log entry back to its row shape.
func RecordFromLog(e domain.LogEntry) LogRecord {
	return LogRecord{
		ID:        e.ID,
		Text:      e.Text,
		Type:      string(e.Type),
		Target:    e.Target,
		Timestamp: e.Timestamp,
	}
}
