// Package stream delivers row-change events from the store to subscribers.
// It stands in for the hosted realtime channel: every committed write is
// published as an insert, update, or delete event carrying the full row.
package stream

import (
	"sync"
)

// Op classifies a row change.
type Op string

const (
	OpInsert Op = "insert"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Table names events are published under.
const (
	TablePlayers      = "players"
	TableShopItems    = "shop_items"
	TableScenarioLogs = "scenario_logs"
)

// Event is one row change. Row carries the full post-write record for
// inserts and updates and is nil for deletes; Key always identifies the row.
type Event struct {
	Op    Op
	Table string
	Key   int64
	Row   any
}

// Handler receives events for one subscription. Handlers for a single
// subscription are invoked sequentially in publish order.
type Handler func(Event)

// Feed fans row events out to per-table subscribers. Publish preserves
// per-subscription ordering; distinct subscriptions run independently.
type Feed struct {
	mu   sync.Mutex
	subs map[string]map[*Subscription]struct{}
}

// NewFeed returns an empty feed.
func NewFeed() *Feed {
	return &Feed{subs: make(map[string]map[*Subscription]struct{})}
}

// Subscribe registers handler for events on table. The returned subscription
// must be cancelled to release its delivery goroutine.
func (f *Feed) Subscribe(table string, handler Handler) *Subscription {
	sub := &Subscription{
		feed:    f,
		table:   table,
		handler: handler,
		queue:   make(chan Event, 64),
		done:    make(chan struct{}),
	}

	f.mu.Lock()
	if f.subs[table] == nil {
		f.subs[table] = make(map[*Subscription]struct{})
	}
	f.subs[table][sub] = struct{}{}
	f.mu.Unlock()

	go sub.run()
	return sub
}

// Publish delivers an event to every subscription on its table. Delivery to
// a cancelled subscription is dropped.
func (f *Feed) Publish(evt Event) {
	f.mu.Lock()
	targets := make([]*Subscription, 0, len(f.subs[evt.Table]))
	for sub := range f.subs[evt.Table] {
		targets = append(targets, sub)
	}
	f.mu.Unlock()

	for _, sub := range targets {
		select {
		case sub.queue <- evt:
		case <-sub.done:
		}
	}
}

func (f *Feed) remove(sub *Subscription) {
	f.mu.Lock()
	if set := f.subs[sub.table]; set != nil {
		delete(set, sub)
	}
	f.mu.Unlock()
}

// Subscription is one registered handler on a feed table.
type Subscription struct {
	feed    *Feed
	table   string
	handler Handler
	queue   chan Event
	done    chan struct{}

	cancelOnce sync.Once

	mu        sync.Mutex
	cancelled bool
}

func (s *Subscription) run() {
	for {
		select {
		case <-s.done:
			return
		case evt := <-s.queue:
			s.mu.Lock()
			if !s.cancelled {
				s.handler(evt)
			}
			s.mu.Unlock()
		}
	}
}

// Cancel detaches the subscription. When Cancel returns, the handler is not
// running and will never be invoked again.
func (s *Subscription) Cancel() {
	s.cancelOnce.Do(func() {
		s.feed.remove(s)
		close(s.done)
		s.mu.Lock()
		s.cancelled = true
		s.mu.Unlock()
	})
}
