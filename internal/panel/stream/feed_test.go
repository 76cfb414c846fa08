package stream

import (
	"sync"
	"testing"
	"time"
)

func TestFeedPreservesPerSubscriptionOrder(t *testing.T) {
	feed := NewFeed()

	var mu sync.Mutex
	var keys []int64
	delivered := make(chan struct{}, 10)

	sub := feed.Subscribe(TablePlayers, func(evt Event) {
		mu.Lock()
		keys = append(keys, evt.Key)
		mu.Unlock()
		delivered <- struct{}{}
	})
	defer sub.Cancel()

	for i := int64(1); i <= 5; i++ {
		feed.Publish(Event{Op: OpUpdate, Table: TablePlayers, Key: i})
	}
	for i := 0; i < 5; i++ {
		select {
		case <-delivered:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for delivery")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	for i, key := range keys {
		if key != int64(i+1) {
			t.Fatalf("position %d: expected key %d, got %d", i, i+1, key)
		}
	}
}

func TestFeedRoutesByTable(t *testing.T) {
	feed := NewFeed()

	players := make(chan Event, 1)
	sub := feed.Subscribe(TablePlayers, func(evt Event) { players <- evt })
	defer sub.Cancel()

	feed.Publish(Event{Op: OpInsert, Table: TableShopItems, Key: 9})
	feed.Publish(Event{Op: OpInsert, Table: TablePlayers, Key: 1})

	select {
	case evt := <-players:
		if evt.Table != TablePlayers || evt.Key != 1 {
			t.Fatalf("unexpected event %+v", evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for player event")
	}
	select {
	case evt := <-players:
		t.Fatalf("received event for foreign table: %+v", evt)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestCancelStopsDelivery(t *testing.T) {
	feed := NewFeed()

	var mu sync.Mutex
	count := 0
	sub := feed.Subscribe(TablePlayers, func(Event) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	feed.Publish(Event{Op: OpInsert, Table: TablePlayers, Key: 1})
	sub.Cancel()
	feed.Publish(Event{Op: OpInsert, Table: TablePlayers, Key: 2})

	// Cancel guarantees the handler never fires again once it returns, so
	// any count observed now is final.
	mu.Lock()
	after := count
	mu.Unlock()
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if count != after {
		t.Fatalf("handler fired after cancel: %d -> %d", after, count)
	}
}

func TestCancelIsIdempotent(t *testing.T) {
	feed := NewFeed()
	sub := feed.Subscribe(TablePlayers, func(Event) {})

	sub.Cancel()
	sub.Cancel()

	// Publishing after a double cancel must not block or panic.
	feed.Publish(Event{Op: OpInsert, Table: TablePlayers, Key: 1})
}

func TestPublishDoesNotBlockOnCancelledSubscriber(t *testing.T) {
	feed := NewFeed()
	sub := feed.Subscribe(TablePlayers, func(Event) {
		time.Sleep(time.Hour)
	})
	sub.Cancel()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 200; i++ {
			feed.Publish(Event{Op: OpInsert, Table: TablePlayers, Key: int64(i)})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on cancelled subscription")
	}
}
