// Package gateway exposes reconciled state to browser observers over
// websockets. Each connection owns one engine scope; every applied change
// event pushes a fresh full snapshot to the socket.
package gateway

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/louisbranch/constellation/internal/panel/domain"
	"github.com/louisbranch/constellation/internal/panel/engine"
	"github.com/louisbranch/constellation/internal/panel/storage"
	"github.com/louisbranch/constellation/internal/panel/stream"
	apperrors "github.com/louisbranch/constellation/internal/platform/errors"
	"github.com/louisbranch/constellation/internal/platform/errors/i18n"
)

const writeWait = 10 * time.Second

// Hub upgrades observer connections and streams snapshots at them. A GM
// connection observes everything; a player connection observes one player
// plus the logs addressed to them.
type Hub struct {
	store    storage.Store
	feed     *stream.Feed
	upgrader websocket.Upgrader
}

// NewHub returns a hub serving scopes over the given store and feed.
func NewHub(store storage.Store, feed *stream.Feed) *Hub {
	return &Hub{
		store: store,
		feed:  feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Routes registers the hub's HTTP handlers on mux.
func (h *Hub) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/ws", h.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// subscriber serializes writes to one connection.
type subscriber struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (s *subscriber) send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	scope := engine.GMScope()
	if raw := r.URL.Query().Get("player"); raw != "" {
		playerID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || playerID <= 0 {
			http.Error(w, "invalid player id", http.StatusBadRequest)
			return
		}
		scope = engine.PlayerScope(playerID)
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrade failed: %v", err)
		return
	}
	sub := &subscriber{conn: conn}

	eng := engine.New(h.store, h.feed, scope)

	// Subscribe before loading so no event between the two is lost; the
	// engine buffers events until the load lands.
	unsubscribe := eng.Subscribe(func() {
		h.push(sub, eng)
	})

	if _, err := eng.Load(r.Context()); err != nil {
		unsubscribe()
		catalog := i18n.GetCatalog(r.Header.Get("Accept-Language"))
		reason := catalog.Format(i18n.CodeUnavailable, nil)
		code := websocket.CloseInternalServerErr
		if apperrors.CodeOf(err) == apperrors.CodeNotFound {
			reason = catalog.Format(i18n.CodeNotFound, nil)
			code = websocket.ClosePolicyViolation
		}
		message := websocket.FormatCloseMessage(code, reason)
		_ = conn.WriteMessage(websocket.CloseMessage, message)
		_ = conn.Close()
		return
	}

	h.push(sub, eng)

	// Observers are read-only; the read loop only detects disconnect.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			unsubscribe()
			_ = conn.Close()
			return
		}
	}
}

func (h *Hub) push(sub *subscriber, eng *engine.Engine) {
	data, err := json.Marshal(statePayload(eng.Snapshot()))
	if err != nil {
		log.Printf("marshal state: %v", err)
		return
	}
	if err := sub.send(data); err != nil {
		log.Printf("push state: %v", err)
	}
}

// Wire payloads. The snapshot is flattened into stable lowerCamel keys so
// observers do not depend on server-side struct names.

type stateMessage struct {
	Type       string          `json:"type"`
	Players    []playerPayload `json:"players"`
	ShopItems  []shopPayload   `json:"shopItems"`
	Logs       []logPayload    `json:"logs"`
	ServerTime int64           `json:"serverTime"`
}

type playerPayload struct {
	ID              int64              `json:"id"`
	Name            string             `json:"name"`
	CurrentHP       int                `json:"currentHp"`
	MaxHP           int                `json:"maxHp"`
	Coins           int                `json:"coins"`
	Attributes      map[string]int     `json:"attributes"`
	ArmorClass      int                `json:"armorClass"`
	MovementSpeed   int                `json:"movementSpeed"`
	Abilities       []abilityPayload   `json:"abilities"`
	Inventory       []inventoryPayload `json:"inventory"`
	Skills          []skillPayload     `json:"skills"`
	RecentlyChanged bool               `json:"recentlyChanged"`
}

type abilityPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Level       int    `json:"level"`
	Cooldown    int    `json:"cooldown"`
}

type inventoryPayload struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      string `json:"rarity"`
	Quantity    int    `json:"quantity"`
}

type skillPayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Attribute string `json:"attribute"`
	Trained   bool   `json:"trained"`
	Ranks     int    `json:"ranks"`
	MiscBonus int    `json:"miscBonus"`
	IsCustom  bool   `json:"isCustom"`
	Total     int    `json:"total"`
}

type shopPayload struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      string `json:"rarity"`
	Type        string `json:"type"`
	Price       int    `json:"price"`
	Stock       int    `json:"stock"`
}

type logPayload struct {
	ID        int64  `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`
	Target    string `json:"target"`
	Timestamp string `json:"timestamp"`
}

func statePayload(snapshot engine.Snapshot) stateMessage {
	msg := stateMessage{
		Type:       "state",
		Players:    make([]playerPayload, 0, len(snapshot.Players)),
		ShopItems:  make([]shopPayload, 0, len(snapshot.ShopItems)),
		Logs:       make([]logPayload, 0, len(snapshot.Logs)),
		ServerTime: time.Now().UnixMilli(),
	}
	for _, p := range snapshot.Players {
		msg.Players = append(msg.Players, playerWire(p))
	}
	for _, item := range snapshot.ShopItems {
		msg.ShopItems = append(msg.ShopItems, shopPayload{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Rarity:      string(item.Rarity),
			Type:        string(item.Type),
			Price:       item.Price,
			Stock:       item.Stock,
		})
	}
	for _, entry := range snapshot.Logs {
		msg.Logs = append(msg.Logs, logPayload{
			ID:        entry.ID,
			Text:      entry.Text,
			Type:      string(entry.Type),
			Target:    entry.Target,
			Timestamp: entry.Timestamp,
		})
	}
	return msg
}

func playerWire(p domain.Player) playerPayload {
	payload := playerPayload{
		ID:        p.ID,
		Name:      p.Name,
		CurrentHP: p.CurrentHP,
		MaxHP:     p.MaxHP,
		Coins:     p.Coins,
		Attributes: map[string]int{
			string(domain.AttrFOR): p.Attributes.Strength,
			string(domain.AttrDES): p.Attributes.Dexterity,
			string(domain.AttrCON): p.Attributes.Constitution,
			string(domain.AttrINT): p.Attributes.Intelligence,
			string(domain.AttrSAB): p.Attributes.Wisdom,
			string(domain.AttrCAR): p.Attributes.Charisma,
		},
		ArmorClass:      p.ArmorClass,
		MovementSpeed:   p.MovementSpeed,
		Abilities:       make([]abilityPayload, 0, len(p.Abilities)),
		Inventory:       make([]inventoryPayload, 0, len(p.Inventory)),
		Skills:          make([]skillPayload, 0, len(p.Skills)),
		RecentlyChanged: p.RecentlyChanged,
	}
	for _, a := range p.Abilities {
		payload.Abilities = append(payload.Abilities, abilityPayload{
			ID: a.ID, Name: a.Name, Description: a.Description,
			Level: a.Level, Cooldown: a.Cooldown,
		})
	}
	for _, item := range p.Inventory {
		payload.Inventory = append(payload.Inventory, inventoryPayload{
			ID: item.ID, Name: item.Name, Description: item.Description,
			Rarity: string(item.Rarity), Quantity: item.Quantity,
		})
	}
	for _, s := range p.Skills {
		payload.Skills = append(payload.Skills, skillPayload{
			ID:        s.ID,
			Name:      s.DisplayName(),
			Attribute: string(s.Attribute),
			Trained:   s.Trained,
			Ranks:     s.Ranks,
			MiscBonus: s.MiscBonus,
			IsCustom:  s.IsCustom,
			Total:     domain.SkillTotal(s, p.Attributes),
		})
	}
	return payload
}
