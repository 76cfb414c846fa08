package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/louisbranch/constellation/internal/panel/storage"
)

const shopItemColumns = "id, name, description, rarity, item_type, price, stock, created_at"

func scanShopItem(row rowScanner) (storage.ShopItemRecord, error) {
	var record storage.ShopItemRecord
	var createdAt int64
	err := row.Scan(
		&record.ID, &record.Name, &record.Description,
		&record.Rarity, &record.ItemType, &record.Price, &record.Stock,
		&createdAt,
	)
	if err != nil {
		return storage.ShopItemRecord{}, err
	}
	record.CreatedAt = fromMillis(createdAt)
	return record, nil
}

// ListShopItems returns all items ordered by creation time ascending.
func (s *Store) ListShopItems(ctx context.Context) ([]storage.ShopItemRecord, error) {
	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT "+shopItemColumns+" FROM shop_items ORDER BY created_at ASC, id ASC")
	if err != nil {
		return nil, fmt.Errorf("list shop items: %w", err)
	}
	defer rows.Close()

	var records []storage.ShopItemRecord
	for rows.Next() {
		record, err := scanShopItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shop item: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read shop items: %w", err)
	}
	return records, nil
}

// InsertShopItem stores a new item and returns it with its assigned id.
func (s *Store) InsertShopItem(ctx context.Context, record storage.ShopItemRecord) (storage.ShopItemRecord, error) {
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	if record.ID != 0 {
		_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO shop_items (id, name, description, rarity, item_type, price, stock, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			record.ID, record.Name, record.Description, record.Rarity,
			record.ItemType, record.Price, record.Stock, toMillis(record.CreatedAt),
		)
		if err != nil {
			return storage.ShopItemRecord{}, fmt.Errorf("insert shop item: %w", err)
		}
		return record, nil
	}

	result, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO shop_items (name, description, rarity, item_type, price, stock, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.Name, record.Description, record.Rarity,
		record.ItemType, record.Price, record.Stock, toMillis(record.CreatedAt),
	)
	if err != nil {
		return storage.ShopItemRecord{}, fmt.Errorf("insert shop item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return storage.ShopItemRecord{}, fmt.Errorf("shop item insert id: %w", err)
	}
	record.ID = id
	return record, nil
}

// UpdateShopItem applies a partial update inside a transaction and returns
// the stored row.
func (s *Store) UpdateShopItem(ctx context.Context, id int64, patch storage.ShopItemPatch) (storage.ShopItemRecord, error) {
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return storage.ShopItemRecord{}, fmt.Errorf("begin shop item update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	row := tx.QueryRowContext(ctx,
		"SELECT "+shopItemColumns+" FROM shop_items WHERE id = ?", id)
	record, err := scanShopItem(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return storage.ShopItemRecord{}, storage.ErrNotFound
		}
		return storage.ShopItemRecord{}, fmt.Errorf("load shop item for update: %w", err)
	}

	if patch.Name != nil {
		record.Name = *patch.Name
	}
	if patch.Description != nil {
		record.Description = *patch.Description
	}
	if patch.Rarity != nil {
		record.Rarity = *patch.Rarity
	}
	if patch.ItemType != nil {
		record.ItemType = *patch.ItemType
	}
	if patch.Price != nil {
		record.Price = *patch.Price
	}
	if patch.Stock != nil {
		record.Stock = *patch.Stock
	}

	_, err = tx.ExecContext(ctx, `
UPDATE shop_items SET name = ?, description = ?, rarity = ?, item_type = ?, price = ?, stock = ?
WHERE id = ?`,
		record.Name, record.Description, record.Rarity,
		record.ItemType, record.Price, record.Stock, id,
	)
	if err != nil {
		return storage.ShopItemRecord{}, fmt.Errorf("update shop item: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return storage.ShopItemRecord{}, fmt.Errorf("commit shop item update: %w", err)
	}
	return record, nil
}

// DeleteShopItem removes an item row. Deleting a missing row is not an error.
func (s *Store) DeleteShopItem(ctx context.Context, id int64) error {
	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM shop_items WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete shop item: %w", err)
	}
	return nil
}
