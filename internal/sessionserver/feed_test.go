package sessionserver

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/monbattle/internal/config"
	"github.com/udisondev/monbattle/internal/session"
)

func dialFeed(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + PathFeed
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(raw, &ev))
	return ev
}

func TestFeed_StreamsSessionEvents(t *testing.T) {
	srv := New(NewMemoryStore(), config.DefaultRewards())
	ts := httptest.NewServer(srv)
	defer ts.Close()
	defer srv.Close()

	conn := dialFeed(t, ts)
	require.Eventually(t, func() bool { return srv.Feed().Subscribers() == 1 },
		2*time.Second, 10*time.Millisecond)

	client := session.NewHTTPClient(ts.URL, 2*time.Second)
	ctx := context.Background()

	begin, err := client.BeginBattle(ctx, "rival", "ember")
	require.NoError(t, err)

	opened := readEvent(t, conn)
	assert.Equal(t, EventOpened, opened.Type)
	assert.Equal(t, begin.BattleSessionID, opened.SessionID)
	assert.Equal(t, "ember", opened.CombatantID)

	_, err = client.CompleteBattle(ctx, session.CompleteRequest{
		BattleSessionID: begin.BattleSessionID,
		Won:             true,
		DamageDealt:     50,
	})
	require.NoError(t, err)

	completed := readEvent(t, conn)
	assert.Equal(t, EventCompleted, completed.Type)
	assert.True(t, completed.Won)
	require.NotNil(t, completed.Rewards)
	assert.Equal(t, 40, completed.Rewards.Experience)
}

func TestFeed_CloseDisconnects(t *testing.T) {
	srv := New(NewMemoryStore(), config.DefaultRewards())
	ts := httptest.NewServer(srv)
	defer ts.Close()

	conn := dialFeed(t, ts)
	require.Eventually(t, func() bool { return srv.Feed().Subscribers() == 1 },
		2*time.Second, 10*time.Millisecond)

	srv.Close()
	assert.Zero(t, srv.Feed().Subscribers())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)

	// после Close новые подписчики не регистрируются
	late := dialFeed(t, ts)
	require.NoError(t, late.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = late.ReadMessage()
	assert.Error(t, err)
	assert.Zero(t, srv.Feed().Subscribers())
}

func TestFeed_PublishWithoutSubscribers(t *testing.T) {
	f := NewFeed()
	f.Publish(Event{Type: EventOpened, SessionID: "s"})
	assert.Zero(t, f.Subscribers())
}
