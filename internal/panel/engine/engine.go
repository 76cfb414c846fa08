// Package engine reconciles remote row state into per-scope in-memory
// collections. One engine instance owns the collections for one scope (the
// GM dashboard, or a single player view); it performs the initial bulk load,
// applies streamed change events through a single entry point, and hands out
// immutable snapshots to observers.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/louisbranch/constellation/internal/panel/domain"
	"github.com/louisbranch/constellation/internal/panel/storage"
	"github.com/louisbranch/constellation/internal/panel/stream"
)

// DefaultPulseDuration is how long a player's RecentlyChanged flag stays set
// after an update event.
const DefaultPulseDuration = 700 * time.Millisecond

// Scope selects which rows an engine instance observes: every player, or a
// single player plus the log entries addressed to them.
type Scope struct {
	playerID int64
}

// GMScope observes all players and every log entry.
func GMScope() Scope {
	return Scope{}
}

// PlayerScope observes one player and the log entries addressed to them
// or to everyone.
func PlayerScope(playerID int64) Scope {
	return Scope{playerID: playerID}
}

// PlayerScoped reports whether the scope is narrowed to a single player.
func (s Scope) PlayerScoped() bool {
	return s.playerID != 0
}

// PlayerID returns the scoped player id, zero for the GM scope.
func (s Scope) PlayerID() int64 {
	return s.playerID
}

func (s Scope) admitsPlayer(id int64) bool {
	return !s.PlayerScoped() || id == s.playerID
}

func (s Scope) admitsLog(entry domain.LogEntry) bool {
	return !s.PlayerScoped() || entry.AddressedTo(s.playerID)
}

// Snapshot is a deep-copied view of the reconciled collections.
type Snapshot struct {
	Players   []domain.Player
	ShopItems []domain.ShopItem
	Logs      []domain.LogEntry
}

// Option configures an engine.
type Option func(*Engine)

// WithPulseDuration overrides how long RecentlyChanged stays set.
func WithPulseDuration(d time.Duration) Option {
	return func(e *Engine) {
		e.pulse = d
	}
}

// Engine reconciles one scope's state. All collection mutations funnel
// through applyLocked; observers only ever see copies.
type Engine struct {
	store storage.Store
	feed  *stream.Feed
	scope Scope
	pulse time.Duration

	mu           sync.Mutex
	players      *collection[domain.Player]
	shop         *collection[domain.ShopItem]
	logs         *collection[domain.LogEntry]
	loaded       bool
	pending      []stream.Event
	subs         []*stream.Subscription
	observers    map[int64]func()
	nextObserver int64
	pulseTimers  map[int64]*time.Timer
}

// New returns an engine for the given scope. Load must complete before
// snapshots are meaningful; Subscribe may be called before or after Load.
func New(store storage.Store, feed *stream.Feed, scope Scope, opts ...Option) *Engine {
	e := &Engine{
		store:       store,
		feed:        feed,
		scope:       scope,
		pulse:       DefaultPulseDuration,
		players:     newCollection[domain.Player](),
		shop:        newCollection[domain.ShopItem](),
		logs:        newCollection[domain.LogEntry](),
		observers:   make(map[int64]func()),
		pulseTimers: make(map[int64]*time.Timer),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e
}

// Load performs the parallel bulk reads for the scope and installs the
// result. Change events that arrived before Load completes are buffered and
// replayed on top of the loaded rows, so a racing event is never lost.
//
// For a player scope, a missing player surfaces storage.ErrNotFound so
// callers can distinguish "no such player" from a transient failure.
func (e *Engine) Load(ctx context.Context) (Snapshot, error) {
	var (
		playerRows []storage.PlayerRecord
		itemRows   []storage.ShopItemRecord
		logRows    []storage.LogRecord

		playersErr error
		itemsErr   error
		logsErr    error
	)

	logFilter := storage.LogFilter{}
	if e.scope.PlayerScoped() {
		logFilter.Target = domain.PlayerTarget(e.scope.PlayerID())
	}

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		if e.scope.PlayerScoped() {
			record, err := e.store.GetPlayer(ctx, e.scope.PlayerID())
			if err != nil {
				playersErr = err
				return
			}
			playerRows = []storage.PlayerRecord{record}
			return
		}
		playerRows, playersErr = e.store.ListPlayers(ctx)
	}()
	go func() {
		defer wg.Done()
		itemRows, itemsErr = e.store.ListShopItems(ctx)
	}()
	go func() {
		defer wg.Done()
		logRows, logsErr = e.store.ListLogs(ctx, logFilter)
	}()
	wg.Wait()

	for _, err := range []error{playersErr, itemsErr, logsErr} {
		if err != nil {
			return Snapshot{}, fmt.Errorf("load scope state: %w", err)
		}
	}

	e.mu.Lock()
	e.players.reset()
	e.shop.reset()
	e.logs.reset()
	for _, row := range playerRows {
		e.players.insert(row.ID, storage.PlayerFromRecord(row))
	}
	for _, row := range itemRows {
		e.shop.insert(row.ID, storage.ShopItemFromRecord(row))
	}
	for _, row := range logRows {
		e.logs.insert(row.ID, storage.LogFromRecord(row))
	}
	e.loaded = true

	replayed := false
	for _, evt := range e.pending {
		if e.applyLocked(evt) {
			replayed = true
		}
	}
	e.pending = nil

	snapshot := e.snapshotLocked()
	observers := e.observerListLocked()
	e.mu.Unlock()

	if replayed {
		notify(observers)
	}
	return snapshot, nil
}

// Subscribe registers onChange to run after every applied change event. The
// first observer opens the underlying stream subscriptions; removing the
// last one cancels them. The returned function is idempotent and guarantees
// no callback fires after it returns.
func (e *Engine) Subscribe(onChange func()) func() {
	e.mu.Lock()
	id := e.nextObserver
	e.nextObserver++
	e.observers[id] = onChange
	if len(e.observers) == 1 {
		e.subs = []*stream.Subscription{
			e.feed.Subscribe(stream.TablePlayers, e.handleEvent),
			e.feed.Subscribe(stream.TableShopItems, e.handleEvent),
			e.feed.Subscribe(stream.TableScenarioLogs, e.handleEvent),
		}
	}
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			delete(e.observers, id)
			var subs []*stream.Subscription
			if len(e.observers) == 0 {
				subs = e.subs
				e.subs = nil
				for key, timer := range e.pulseTimers {
					timer.Stop()
					delete(e.pulseTimers, key)
				}
			}
			e.mu.Unlock()
			for _, sub := range subs {
				sub.Cancel()
			}
		})
	}
}

// Snapshot returns a deep copy of the current collections.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Player returns a copy of one reconciled player.
func (e *Engine) Player(id int64) (domain.Player, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	player, ok := e.players.get(id)
	if !ok {
		return domain.Player{}, false
	}
	return player.Clone(), true
}

// Players returns copies of all reconciled players in arrival order.
func (e *Engine) Players() []domain.Player {
	e.mu.Lock()
	defer e.mu.Unlock()
	values := e.players.values()
	out := make([]domain.Player, 0, len(values))
	for _, p := range values {
		out = append(out, p.Clone())
	}
	return out
}

// ShopItem returns a copy of one reconciled shop item.
func (e *Engine) ShopItem(id int64) (domain.ShopItem, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	item, ok := e.shop.get(id)
	return item, ok
}

// ClearLogsLocal empties this scope's log view without touching the store.
// Other observers of the same remote state are unaffected.
func (e *Engine) ClearLogsLocal() {
	e.mu.Lock()
	e.logs.reset()
	observers := e.observerListLocked()
	e.mu.Unlock()
	notify(observers)
}

func (e *Engine) handleEvent(evt stream.Event) {
	e.mu.Lock()
	if !e.loaded {
		e.pending = append(e.pending, evt)
		e.mu.Unlock()
		return
	}
	changed := e.applyLocked(evt)
	observers := e.observerListLocked()
	e.mu.Unlock()

	if changed {
		notify(observers)
	}
}

// applyLocked is the single entry point for collection mutation. It reports
// whether the event changed visible state.
func (e *Engine) applyLocked(evt stream.Event) bool {
	switch evt.Table {
	case stream.TablePlayers:
		return e.applyPlayerLocked(evt)
	case stream.TableShopItems:
		return e.applyShopLocked(evt)
	case stream.TableScenarioLogs:
		return e.applyLogLocked(evt)
	}
	return false
}

func (e *Engine) applyPlayerLocked(evt stream.Event) bool {
	if !e.scope.admitsPlayer(evt.Key) {
		return false
	}
	switch evt.Op {
	case stream.OpInsert:
		record, ok := evt.Row.(storage.PlayerRecord)
		if !ok {
			return false
		}
		return e.players.insert(evt.Key, storage.PlayerFromRecord(record))
	case stream.OpUpdate:
		record, ok := evt.Row.(storage.PlayerRecord)
		if !ok {
			return false
		}
		player := storage.PlayerFromRecord(record)
		player.RecentlyChanged = true
		e.players.replace(evt.Key, player)
		e.schedulePulseLocked(evt.Key)
		return true
	case stream.OpDelete:
		if _, ok := e.players.get(evt.Key); !ok {
			return false
		}
		if timer, ok := e.pulseTimers[evt.Key]; ok {
			timer.Stop()
			delete(e.pulseTimers, evt.Key)
		}
		e.players.remove(evt.Key)
		return true
	}
	return false
}

func (e *Engine) applyShopLocked(evt stream.Event) bool {
	switch evt.Op {
	case stream.OpInsert:
		record, ok := evt.Row.(storage.ShopItemRecord)
		if !ok {
			return false
		}
		return e.shop.insert(evt.Key, storage.ShopItemFromRecord(record))
	case stream.OpUpdate:
		record, ok := evt.Row.(storage.ShopItemRecord)
		if !ok {
			return false
		}
		e.shop.replace(evt.Key, storage.ShopItemFromRecord(record))
		return true
	case stream.OpDelete:
		if _, ok := e.shop.get(evt.Key); !ok {
			return false
		}
		e.shop.remove(evt.Key)
		return true
	}
	return false
}

func (e *Engine) applyLogLocked(evt stream.Event) bool {
	switch evt.Op {
	case stream.OpInsert, stream.OpUpdate:
		record, ok := evt.Row.(storage.LogRecord)
		if !ok {
			return false
		}
		entry := storage.LogFromRecord(record)
		if !e.scope.admitsLog(entry) {
			return false
		}
		if evt.Op == stream.OpInsert {
			return e.logs.insert(evt.Key, entry)
		}
		e.logs.replace(evt.Key, entry)
		return true
	case stream.OpDelete:
		if _, ok := e.logs.get(evt.Key); !ok {
			return false
		}
		e.logs.remove(evt.Key)
		return true
	}
	return false
}

// schedulePulseLocked arms the RecentlyChanged clear timer for a player,
// cancelling any pending one first so rapid successive updates extend the
// pulse instead of flickering it.
func (e *Engine) schedulePulseLocked(id int64) {
	if timer, ok := e.pulseTimers[id]; ok {
		timer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(e.pulse, func() {
		e.clearPulse(id, timer)
	})
	e.pulseTimers[id] = timer
}

func (e *Engine) clearPulse(id int64, timer *time.Timer) {
	e.mu.Lock()
	// A newer pulse or a teardown superseded this timer.
	if current, ok := e.pulseTimers[id]; !ok || current != timer {
		e.mu.Unlock()
		return
	}
	delete(e.pulseTimers, id)
	if player, ok := e.players.get(id); ok {
		player.RecentlyChanged = false
		e.players.replace(id, player)
	}
	observers := e.observerListLocked()
	e.mu.Unlock()
	notify(observers)
}

func (e *Engine) snapshotLocked() Snapshot {
	players := e.players.values()
	snapshot := Snapshot{
		Players:   make([]domain.Player, 0, len(players)),
		ShopItems: e.shop.values(),
		Logs:      e.logs.values(),
	}
	for _, p := range players {
		snapshot.Players = append(snapshot.Players, p.Clone())
	}
	return snapshot
}

func (e *Engine) observerListLocked() []func() {
	observers := make([]func(), 0, len(e.observers))
	for _, fn := range e.observers {
		observers = append(observers, fn)
	}
	return observers
}

func notify(observers []func()) {
	for _, fn := range observers {
		fn()
	}
}
