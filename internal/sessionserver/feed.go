package sessionserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/udisondev/monbattle/internal/session"
)

// Feed event types.
const (
	EventOpened    = "opened"
	EventCompleted = "completed"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	sendBufferSize = 64
)

// Event is pushed to feed subscribers when a session opens or completes.
type Event struct {
	Type        string           `json:"type"`
	SessionID   string           `json:"battleSessionId"`
	OpponentID  string           `json:"opponentId,omitempty"`
	CombatantID string           `json:"combatantId,omitempty"`
	Won         bool             `json:"won,omitempty"`
	Rewards     *session.Rewards `json:"rewards,omitempty"`
}

type subscriber struct {
	conn *websocket.Conn
	send chan []byte
}

// Feed broadcasts session events to websocket subscribers.
// A subscriber that cannot keep up is dropped.
type Feed struct {
	mu       sync.Mutex
	subs     map[*subscriber]struct{}
	closed   bool
	upgrader websocket.Upgrader
}

// NewFeed creates a feed with no subscribers.
func NewFeed() *Feed {
	return &Feed{
		subs: make(map[*subscriber]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Publish sends ev to every subscriber without blocking.
func (f *Feed) Publish(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		slog.Error("encoding feed event", "type", ev.Type, "error", err)
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for sub := range f.subs {
		select {
		case sub.send <- data:
		default:
			slog.Warn("dropping slow feed subscriber", "remote", sub.conn.RemoteAddr())
			f.removeLocked(sub)
		}
	}
}

// Subscribers returns the number of connected subscribers.
func (f *Feed) Subscribers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.subs)
}

// Close disconnects every subscriber and rejects new ones.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	for sub := range f.subs {
		f.removeLocked(sub)
	}
}

// ServeHTTP upgrades the request and streams events until the client leaves.
func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := f.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Debug("feed upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	sub := &subscriber{conn: conn, send: make(chan []byte, sendBufferSize)}

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		_ = conn.Close()
		return
	}
	f.subs[sub] = struct{}{}
	f.mu.Unlock()

	slog.Debug("feed subscriber connected", "remote", conn.RemoteAddr())

	go f.writePump(sub)
	f.readPump(sub)
}

func (f *Feed) removeLocked(sub *subscriber) {
	if _, ok := f.subs[sub]; !ok {
		return
	}
	delete(f.subs, sub)
	close(sub.send)
}

// readPump discards client messages and keeps the read deadline alive.
func (f *Feed) readPump(sub *subscriber) {
	defer func() {
		f.mu.Lock()
		f.removeLocked(sub)
		f.mu.Unlock()
		slog.Debug("feed subscriber disconnected", "remote", sub.conn.RemoteAddr())
	}()

	sub.conn.SetReadLimit(512)
	_ = sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	sub.conn.SetPongHandler(func(string) error {
		return sub.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := sub.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (f *Feed) writePump(sub *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = sub.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-sub.send:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = sub.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := sub.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sub.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
