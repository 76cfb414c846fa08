package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/louisbranch/constellation/internal/panel/storage"
	"github.com/louisbranch/constellation/internal/panel/storage/sqlite"
	"github.com/louisbranch/constellation/internal/panel/stream"
)

func newTestServer(t *testing.T) (*stream.Store, *httptest.Server) {
	t.Helper()
	inner, err := sqlite.Open(filepath.Join(t.TempDir(), "panel.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = inner.Close() })

	store := stream.NewStore(inner, stream.NewFeed())
	hub := NewHub(store, store.Feed())
	mux := http.NewServeMux()
	hub.Routes(mux)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return store, server
}

func wsURL(server *httptest.Server, path string) string {
	return "ws" + strings.TrimPrefix(server.URL, "http") + path
}

func readState(t *testing.T, conn *websocket.Conn) stateMessage {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg stateMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read state: %v", err)
	}
	if msg.Type != "state" {
		t.Fatalf("unexpected message type %q", msg.Type)
	}
	return msg
}

func TestObserverReceivesInitialAndLiveState(t *testing.T) {
	store, server := newTestServer(t)
	ctx := context.Background()

	err := store.PutPlayer(ctx, storage.PlayerRecord{ID: 1, Name: "Kim Dokja", CurrentHP: 10, MaxHP: 10, Coins: 100})
	if err != nil {
		t.Fatalf("put player: %v", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, "/ws"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	initial := readState(t, conn)
	if len(initial.Players) != 1 || initial.Players[0].Name != "Kim Dokja" {
		t.Fatalf("unexpected initial state: %+v", initial.Players)
	}
	if initial.Players[0].Attributes["FOR"] != 0 {
		t.Fatalf("unexpected attribute payload: %+v", initial.Players[0].Attributes)
	}

	coins := 250
	if _, err := store.UpdatePlayer(ctx, 1, storage.PlayerPatch{Coins: &coins}); err != nil {
		t.Fatalf("update player: %v", err)
	}

	// The write reconciles into the connection's engine and is pushed out.
	deadline := time.Now().Add(2 * time.Second)
	for {
		msg := readState(t, conn)
		if len(msg.Players) == 1 && msg.Players[0].Coins == 250 {
			if !msg.Players[0].RecentlyChanged {
				t.Fatalf("expected pulse flag on pushed update: %+v", msg.Players[0])
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("never observed updated coins, last: %+v", msg.Players)
		}
	}
}

func TestPlayerScopeFiltersState(t *testing.T) {
	store, server := newTestServer(t)
	ctx := context.Background()

	for id, name := range map[int64]string{7: "Kim Dokja", 3: "Yoo Joonghyuk"} {
		if err := store.PutPlayer(ctx, storage.PlayerRecord{ID: id, Name: name, CurrentHP: 1, MaxHP: 1}); err != nil {
			t.Fatalf("put player: %v", err)
		}
	}
	for _, target := range []string{"all", "7", "3"} {
		if _, err := store.InsertLog(ctx, storage.LogRecord{Text: "m", Type: "system", Target: target, Timestamp: "10:00:00"}); err != nil {
			t.Fatalf("insert log: %v", err)
		}
	}

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, "/ws?player=7"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	msg := readState(t, conn)
	if len(msg.Players) != 1 || msg.Players[0].ID != 7 {
		t.Fatalf("expected only player 7, got %+v", msg.Players)
	}
	if len(msg.Logs) != 2 {
		t.Fatalf("expected broadcast plus direct log, got %d", len(msg.Logs))
	}
}

func TestUnknownPlayerCloses(t *testing.T) {
	_, server := newTestServer(t)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server, "/ws?player=42"), nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	if err == nil {
		t.Fatal("expected close for unknown player")
	}
	if !websocket.IsCloseError(err, websocket.ClosePolicyViolation) {
		t.Fatalf("expected policy violation close, got %v", err)
	}
}

func TestInvalidPlayerParamRejected(t *testing.T) {
	_, server := newTestServer(t)

	resp, err := http.Get(server.URL + "/ws?player=abc")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	_, server := newTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
