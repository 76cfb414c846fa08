// Package command implements the GM's mutating operations against the
// store. Commands validate domain invariants, perform the remote writes, and
// rely on the change stream to reflect results back into reconciled state;
// they never mutate engine collections directly.
package command

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/louisbranch/constellation/internal/panel/domain"
	"github.com/louisbranch/constellation/internal/panel/storage"
	apperrors "github.com/louisbranch/constellation/internal/platform/errors"
	"github.com/louisbranch/constellation/internal/platform/id"
)

// SnapshotReader is the reconciled-state view commands validate against.
// Validation runs against the caller's currently known state; the store
// remains the final arbiter at its own last-write-wins granularity.
type SnapshotReader interface {
	Player(id int64) (domain.Player, bool)
	ShopItem(id int64) (domain.ShopItem, bool)
	Players() []domain.Player
}

// Option configures a Commander.
type Option func(*Commander)

// WithClock overrides the wall clock used for log timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Commander) {
		c.now = now
	}
}

// WithIDGenerator overrides the generator for client-side entry ids.
func WithIDGenerator(newID func() string) Option {
	return func(c *Commander) {
		c.newID = newID
	}
}

// Commander issues mutating commands. The store should be the stream
// decorator so every write is reflected back through the feed.
type Commander struct {
	store storage.Store
	view  SnapshotReader
	now   func() time.Time
	newID func() string
}

// New returns a Commander writing through store and validating against view.
func New(store storage.Store, view SnapshotReader, opts ...Option) *Commander {
	c := &Commander{
		store: store,
		view:  view,
		now:   time.Now,
		newID: id.MustNewID,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// UpdateHP writes a clamped HP pair: max floors to 1, current lands in
// [0, max].
func (c *Commander) UpdateHP(ctx context.Context, playerID int64, current, max int) error {
	current, max = domain.ClampHP(current, max)
	patch := storage.PlayerPatch{CurrentHP: &current, MaxHP: &max}
	if _, err := c.store.UpdatePlayer(ctx, playerID, patch); err != nil {
		return fmt.Errorf("update hp: %w", err)
	}
	return nil
}

// UpdateStat writes one ability score clamped into [0, 100]. The stat is
// addressed by its persisted column name.
func (c *Commander) UpdateStat(ctx context.Context, playerID int64, stat string, value int) error {
	var patch storage.PlayerPatch
	if !patch.SetStat(stat, domain.ClampStat(value)) {
		return apperrors.WithMetadata(apperrors.CodePlayerInvalidStat,
			"unknown ability score", map[string]string{"stat": stat})
	}
	if _, err := c.store.UpdatePlayer(ctx, playerID, patch); err != nil {
		return fmt.Errorf("update stat: %w", err)
	}
	return nil
}

// UpdateCombatStats writes armor class and movement speed, floored at zero.
func (c *Commander) UpdateCombatStats(ctx context.Context, playerID int64, armorClass, speed int) error {
	armorClass = domain.ClampNonNegative(armorClass)
	speed = domain.ClampNonNegative(speed)
	patch := storage.PlayerPatch{ArmorClass: &armorClass, MovementSpeed: &speed}
	if _, err := c.store.UpdatePlayer(ctx, playerID, patch); err != nil {
		return fmt.Errorf("update combat stats: %w", err)
	}
	return nil
}

// UpdateAbilities replaces the whole ability list. The caller is expected to
// have merged locally; the write is row-level last write wins.
func (c *Commander) UpdateAbilities(ctx context.Context, playerID int64, abilities []domain.Ability) error {
	rows := storage.AbilityRows(abilities)
	if rows == nil {
		rows = []storage.AbilityRow{}
	}
	patch := storage.PlayerPatch{Abilities: &rows}
	if _, err := c.store.UpdatePlayer(ctx, playerID, patch); err != nil {
		return fmt.Errorf("update abilities: %w", err)
	}
	return nil
}

// UpdateInventory replaces the whole inventory, dropping emptied stacks
// before the write.
func (c *Commander) UpdateInventory(ctx context.Context, playerID int64, items []domain.InventoryItem) error {
	rows := storage.InventoryRows(domain.NormalizeInventory(items))
	if rows == nil {
		rows = []storage.InventoryRow{}
	}
	patch := storage.PlayerPatch{Inventory: &rows}
	if _, err := c.store.UpdatePlayer(ctx, playerID, patch); err != nil {
		return fmt.Errorf("update inventory: %w", err)
	}
	return nil
}

// UpdateSkills replaces the whole skill sheet, enforcing the custom-slot cap.
func (c *Commander) UpdateSkills(ctx context.Context, playerID int64, skills []domain.Skill) error {
	if count := domain.CountCustomSkills(skills); count > domain.MaxCustomSkills {
		return apperrors.WithMetadata(apperrors.CodeSkillLimitExceeded,
			"too many custom skills", map[string]string{
				"count": fmt.Sprintf("%d", count),
				"limit": fmt.Sprintf("%d", domain.MaxCustomSkills),
			})
	}
	rows := storage.SkillRows(skills)
	if rows == nil {
		rows = []storage.SkillRow{}
	}
	patch := storage.PlayerPatch{Skills: &rows}
	if _, err := c.store.UpdatePlayer(ctx, playerID, patch); err != nil {
		return fmt.Errorf("update skills: %w", err)
	}
	return nil
}

// PurchaseReason explains a rejected purchase.
type PurchaseReason string

const (
	ReasonInsufficientCoins PurchaseReason = "insufficient_coins"
	ReasonOutOfStock        PurchaseReason = "out_of_stock"
)

// PurchaseResult reports the outcome of a purchase attempt. A rejected
// purchase carries a reason and made no writes.
type PurchaseResult struct {
	OK     bool
	Reason PurchaseReason
}

// Purchase runs the buy sequence: validate against known state, deduct
// coins, merge the item into the inventory, then decrement finite stock.
//
// The steps span two tables without a transaction; a failure after the coin
// write leaves coins deducted with no item granted. That window is a known
// gap carried over from the store's non-transactional contract.
func (c *Commander) Purchase(ctx context.Context, playerID, itemID int64) (PurchaseResult, error) {
	player, ok := c.view.Player(playerID)
	if !ok {
		return PurchaseResult{}, apperrors.New(apperrors.CodeNotFound, "player not found")
	}
	item, ok := c.view.ShopItem(itemID)
	if !ok {
		return PurchaseResult{}, apperrors.New(apperrors.CodeNotFound, "shop item not found")
	}

	if player.Coins < item.Price {
		return PurchaseResult{Reason: ReasonInsufficientCoins}, nil
	}
	if !item.Purchasable() {
		return PurchaseResult{Reason: ReasonOutOfStock}, nil
	}

	coins := domain.AdjustCoins(player.Coins, -item.Price)
	if _, err := c.store.UpdatePlayer(ctx, playerID, storage.PlayerPatch{Coins: &coins}); err != nil {
		return PurchaseResult{}, fmt.Errorf("purchase deduct coins: %w", err)
	}

	merged := storage.InventoryRows(domain.MergeStack(player.Inventory, item, c.newID()))
	if _, err := c.store.UpdatePlayer(ctx, playerID, storage.PlayerPatch{Inventory: &merged}); err != nil {
		return PurchaseResult{}, fmt.Errorf("purchase grant item: %w", err)
	}

	if item.Stock > 0 {
		stock := item.Stock - 1
		if _, err := c.store.UpdateShopItem(ctx, itemID, storage.ShopItemPatch{Stock: &stock}); err != nil {
			return PurchaseResult{}, fmt.Errorf("purchase decrement stock: %w", err)
		}
	}

	return PurchaseResult{OK: true}, nil
}

// AwardCoins adjusts a player's balance, floored at zero, and appends a log
// entry describing the adjustment addressed to that player.
func (c *Commander) AwardCoins(ctx context.Context, playerID int64, amount int) error {
	player, ok := c.view.Player(playerID)
	if !ok {
		return apperrors.New(apperrors.CodeNotFound, "player not found")
	}

	balance := domain.AdjustCoins(player.Coins, amount)
	if _, err := c.store.UpdatePlayer(ctx, playerID, storage.PlayerPatch{Coins: &balance}); err != nil {
		return fmt.Errorf("award coins: %w", err)
	}

	entry := storage.LogRecord{
		Text:      domain.CoinAwardText(amount, player.Name),
		Type:      string(domain.LogTypeSystem),
		Target:    domain.PlayerTarget(playerID),
		Timestamp: domain.ClockTimestamp(c.now()),
	}
	if _, err := c.store.InsertLog(ctx, entry); err != nil {
		return fmt.Errorf("award coins log: %w", err)
	}
	return nil
}

// SendMessage appends a log entry with the synthesized broadcast prefix for
// the channel and resolved target name. Target is "all" or a player id.
func (c *Commander) SendMessage(ctx context.Context, text, target string, logType domain.LogType) error {
	if !logType.Valid() {
		return apperrors.WithMetadata(apperrors.CodeLogInvalidType,
			"unknown log type", map[string]string{"type": string(logType)})
	}
	label, err := c.targetLabel(target)
	if err != nil {
		return err
	}

	entry := storage.LogRecord{
		Text:      domain.MessagePrefix(logType, label) + " " + text,
		Type:      string(logType),
		Target:    target,
		Timestamp: domain.ClockTimestamp(c.now()),
	}
	if _, err := c.store.InsertLog(ctx, entry); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func (c *Commander) targetLabel(target string) (string, error) {
	if target == domain.TargetAll {
		return "All Players", nil
	}
	playerID, err := strconv.ParseInt(target, 10, 64)
	if err != nil || playerID <= 0 {
		return "", apperrors.WithMetadata(apperrors.CodeLogInvalidTarget,
			"unknown log target", map[string]string{"target": target})
	}
	if player, ok := c.view.Player(playerID); ok {
		return player.Name, nil
	}
	return fmt.Sprintf("Player %d", playerID), nil
}

// ClearLogsRemote deletes every persisted log row. This is the destructive,
// shared clear; per-observer cosmetic clearing lives on the engine.
func (c *Commander) ClearLogsRemote(ctx context.Context) error {
	if _, err := c.store.DeleteAllLogs(ctx); err != nil {
		return fmt.Errorf("clear logs: %w", err)
	}
	return nil
}

// AddShopItem creates a shop item and returns it with its assigned id.
func (c *Commander) AddShopItem(ctx context.Context, item domain.ShopItem) (domain.ShopItem, error) {
	inserted, err := c.store.InsertShopItem(ctx, storage.RecordFromShopItem(item))
	if err != nil {
		return domain.ShopItem{}, fmt.Errorf("add shop item: %w", err)
	}
	return storage.ShopItemFromRecord(inserted), nil
}

// RemoveShopItem deletes a shop item.
func (c *Commander) RemoveShopItem(ctx context.Context, itemID int64) error {
	if err := c.store.DeleteShopItem(ctx, itemID); err != nil {
		return fmt.Errorf("remove shop item: %w", err)
	}
	return nil
}

// UpdateShopItem applies a partial shop item update. Price and stock bounds
// are expected to be pre-clamped by the caller; this layer does not
// re-validate them on write.
func (c *Commander) UpdateShopItem(ctx context.Context, itemID int64, patch storage.ShopItemPatch) (domain.ShopItem, error) {
	record, err := c.store.UpdateShopItem(ctx, itemID, patch)
	if err != nil {
		return domain.ShopItem{}, fmt.Errorf("update shop item: %w", err)
	}
	return storage.ShopItemFromRecord(record), nil
}
