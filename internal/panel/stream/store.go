package stream

import (
	"context"

	"github.com/louisbranch/constellation/internal/panel/storage"
)

// Store decorates a storage.Store so every committed write is published to
// the feed as a row event. Reads pass through untouched.
type Store struct {
	storage.Store
	feed *Feed
}

// NewStore wraps inner so its writes publish to feed.
func NewStore(inner storage.Store, feed *Feed) *Store {
	return &Store{Store: inner, feed: feed}
}

// Feed exposes the feed writes are published to.
func (s *Store) Feed() *Feed {
	return s.feed
}

// PutPlayer stores the row and publishes an insert event carrying it.
func (s *Store) PutPlayer(ctx context.Context, record storage.PlayerRecord) error {
	if err := s.Store.PutPlayer(ctx, record); err != nil {
		return err
	}
	s.feed.Publish(Event{Op: OpInsert, Table: TablePlayers, Key: record.ID, Row: record})
	return nil
}

// UpdatePlayer applies the patch and publishes an update event carrying the
// full post-write row.
func (s *Store) UpdatePlayer(ctx context.Context, id int64, patch storage.PlayerPatch) (storage.PlayerRecord, error) {
	record, err := s.Store.UpdatePlayer(ctx, id, patch)
	if err != nil {
		return storage.PlayerRecord{}, err
	}
	s.feed.Publish(Event{Op: OpUpdate, Table: TablePlayers, Key: record.ID, Row: record})
	return record, nil
}

// DeletePlayer removes the row and publishes a delete event.
func (s *Store) DeletePlayer(ctx context.Context, id int64) error {
	if err := s.Store.DeletePlayer(ctx, id); err != nil {
		return err
	}
	s.feed.Publish(Event{Op: OpDelete, Table: TablePlayers, Key: id})
	return nil
}

// InsertShopItem stores the item and publishes an insert event.
func (s *Store) InsertShopItem(ctx context.Context, record storage.ShopItemRecord) (storage.ShopItemRecord, error) {
	inserted, err := s.Store.InsertShopItem(ctx, record)
	if err != nil {
		return storage.ShopItemRecord{}, err
	}
	s.feed.Publish(Event{Op: OpInsert, Table: TableShopItems, Key: inserted.ID, Row: inserted})
	return inserted, nil
}

// UpdateShopItem applies the patch and publishes an update event.
func (s *Store) UpdateShopItem(ctx context.Context, id int64, patch storage.ShopItemPatch) (storage.ShopItemRecord, error) {
	record, err := s.Store.UpdateShopItem(ctx, id, patch)
	if err != nil {
		return storage.ShopItemRecord{}, err
	}
	s.feed.Publish(Event{Op: OpUpdate, Table: TableShopItems, Key: record.ID, Row: record})
	return record, nil
}

// DeleteShopItem removes the item and publishes a delete event.
func (s *Store) DeleteShopItem(ctx context.Context, id int64) error {
	if err := s.Store.DeleteShopItem(ctx, id); err != nil {
		return err
	}
	s.feed.Publish(Event{Op: OpDelete, Table: TableShopItems, Key: id})
	return nil
}

// InsertLog appends the entry and publishes an insert event.
func (s *Store) InsertLog(ctx context.Context, record storage.LogRecord) (storage.LogRecord, error) {
	inserted, err := s.Store.InsertLog(ctx, record)
	if err != nil {
		return storage.LogRecord{}, err
	}
	s.feed.Publish(Event{Op: OpInsert, Table: TableScenarioLogs, Key: inserted.ID, Row: inserted})
	return inserted, nil
}

// DeleteAllLogs purges the log table and publishes one delete event per
// removed row, matching how the remote channel reports bulk deletes.
func (s *Store) DeleteAllLogs(ctx context.Context) ([]int64, error) {
	ids, err := s.Store.DeleteAllLogs(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		s.feed.Publish(Event{Op: OpDelete, Table: TableScenarioLogs, Key: id})
	}
	return ids, nil
}
