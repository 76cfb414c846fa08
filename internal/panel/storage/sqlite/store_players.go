package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/louisbranch/constellation/internal/panel/storage"
)

const playerColumns = `id, name, current_hp, max_hp, coins,
strength, dexterity, constitution, intelligence, wisdom, charisma,
armor_class, movement_speed, abilities, inventory, skills,
created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row rowScanner) (storage.PlayerRecord, error) {
	var record storage.PlayerRecord
	var armorClass, movementSpeed sql.NullInt64
	var abilities, inventory, skills sql.NullString
	var createdAt, updatedAt int64

	err := row.Scan(
		&record.ID, &record.Name, &record.CurrentHP, &record.MaxHP, &record.Coins,
		&record.Strength, &record.Dexterity, &record.Constitution,
		&record.Intelligence, &record.Wisdom, &record.Charisma,
		&armorClass, &movementSpeed, &abilities, &inventory, &skills,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return storage.PlayerRecord{}, err
	}

	record.ArmorClass = fromNullInt(armorClass)
	record.MovementSpeed = fromNullInt(movementSpeed)
	if err := fromJSONColumn(abilities, &record.Abilities); err != nil {
		return storage.PlayerRecord{}, fmt.Errorf("player abilities: %w", err)
	}
	if err := fromJSONColumn(inventory, &record.Inventory); err != nil {
		return storage.PlayerRecord{}, fmt.Errorf("player inventory: %w", err)
	}
	if err := fromJSONColumn(skills, &record.Skills); err != nil {
		return storage.PlayerRecord{}, fmt.Errorf("player skills: %w", err)
	}
	record.CreatedAt = fromMillis(createdAt)
	record.UpdatedAt = fromMillis(updatedAt)
	return record, nil
}

func playerJSONColumns(record storage.PlayerRecord) (abilities, inventory, skills sql.NullString, err error) {
	abilities, err = toJSONColumn(record.Abilities, record.Abilities == nil)
	if err != nil {
		return
	}
	inventory, err = toJSONColumn(record.Inventory, record.Inventory == nil)
	if err != nil {
		return
	}
	skills, err = toJSONColumn(record.Skills, record.Skills == nil)
	return
}

// ListPlayers returns all players ordered by id ascending.
func (s *Store) ListPlayers(ctx context.Context) ([]storage.PlayerRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT "+playerColumns+" FROM players ORDER BY id ASC")
	if err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}
	defer rows.Close()

	var records []storage.PlayerRecord
	for rows.Next() {
		record, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan player: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read players: %w", err)
	}
	return records, nil
}

// GetPlayer returns one player or storage.ErrNotFound.
func (s *Store) GetPlayer(ctx context.Context, id int64) (storage.PlayerRecord, error) {
	row := s.sqlDB.QueryRowContext(ctx,
		"SELECT "+playerColumns+" FROM players WHERE id = ?", id)
	record, err := scanPlayer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return storage.PlayerRecord{}, storage.ErrNotFound
		}
		return storage.PlayerRecord{}, fmt.Errorf("get player: %w", err)
	}
	return record, nil
}

// PutPlayer inserts or replaces a full player row. The record must carry an
// explicit id; rows are created by seeding, never by the panel itself.
func (s *Store) PutPlayer(ctx context.Context, record storage.PlayerRecord) error {
	if record.ID == 0 {
		return fmt.Errorf("player id is required")
	}

	now := time.Now().UTC()
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := record.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}

	abilities, inventory, skills, err := playerJSONColumns(record)
	if err != nil {
		return fmt.Errorf("put player: %w", err)
	}

	_, err = s.sqlDB.ExecContext(ctx, `
INSERT OR REPLACE INTO players (
    id, name, current_hp, max_hp, coins,
    strength, dexterity, constitution, intelligence, wisdom, charisma,
    armor_class, movement_speed, abilities, inventory, skills,
    created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Name, record.CurrentHP, record.MaxHP, record.Coins,
		record.Strength, record.Dexterity, record.Constitution,
		record.Intelligence, record.Wisdom, record.Charisma,
		toNullInt(record.ArmorClass), toNullInt(record.MovementSpeed),
		abilities, inventory, skills,
		toMillis(createdAt), toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("put player: %w", err)
	}
	return nil
}

// UpdatePlayer applies a partial update inside a transaction and returns the
// stored row so callers can publish the complete post-write state.
func (s *Store) UpdatePlayer(ctx context.Context, id int64, patch storage.PlayerPatch) (storage.PlayerRecord, error) {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return storage.PlayerRecord{}, fmt.Errorf("begin player update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx,
		"SELECT "+playerColumns+" FROM players WHERE id = ?", id)
	record, err := scanPlayer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return storage.PlayerRecord{}, storage.ErrNotFound
		}
		return storage.PlayerRecord{}, fmt.Errorf("load player for update: %w", err)
	}

	applyPlayerPatch(&record, patch)
	record.UpdatedAt = time.Now().UTC()

	abilities, inventory, skills, err := playerJSONColumns(record)
	if err != nil {
		return storage.PlayerRecord{}, fmt.Errorf("update player: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
UPDATE players SET
    name = ?, current_hp = ?, max_hp = ?, coins = ?,
    strength = ?, dexterity = ?, constitution = ?,
    intelligence = ?, wisdom = ?, charisma = ?,
    armor_class = ?, movement_speed = ?,
    abilities = ?, inventory = ?, skills = ?,
    updated_at = ?
WHERE id = ?`,
		record.Name, record.CurrentHP, record.MaxHP, record.Coins,
		record.Strength, record.Dexterity, record.Constitution,
		record.Intelligence, record.Wisdom, record.Charisma,
		toNullInt(record.ArmorClass), toNullInt(record.MovementSpeed),
		abilities, inventory, skills,
		toMillis(record.UpdatedAt), id,
	)
	if err != nil {
		return storage.PlayerRecord{}, fmt.Errorf("update player: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return storage.PlayerRecord{}, fmt.Errorf("commit player update: %w", err)
	}
	return record, nil
}

// DeletePlayer removes a player row. Deleting a missing row is not an error.
func (s *Store) DeletePlayer(ctx context.Context, id int64) error {
	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM players WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete player: %w", err)
	}
	return nil
}

func applyPlayerPatch(record *storage.PlayerRecord, patch storage.PlayerPatch) {
	if patch.Name != nil {
		record.Name = *patch.Name
	}
	if patch.CurrentHP != nil {
		record.CurrentHP = *patch.CurrentHP
	}
	if patch.MaxHP != nil {
		record.MaxHP = *patch.MaxHP
	}
	if patch.Coins != nil {
		record.Coins = *patch.Coins
	}
	if patch.Strength != nil {
		record.Strength = *patch.Strength
	}
	if patch.Dexterity != nil {
		record.Dexterity = *patch.Dexterity
	}
	if patch.Constitution != nil {
		record.Constitution = *patch.Constitution
	}
	if patch.Intelligence != nil {
		record.Intelligence = *patch.Intelligence
	}
	if patch.Wisdom != nil {
		record.Wisdom = *patch.Wisdom
	}
	if patch.Charisma != nil {
		record.Charisma = *patch.Charisma
	}
	if patch.ArmorClass != nil {
		record.ArmorClass = patch.ArmorClass
	}
	if patch.MovementSpeed != nil {
		record.MovementSpeed = patch.MovementSpeed
	}
	if patch.Abilities != nil {
		record.Abilities = *patch.Abilities
	}
	if patch.Inventory != nil {
		record.Inventory = *patch.Inventory
	}
	if patch.Skills != nil {
		record.Skills = *patch.Skills
	}
}
