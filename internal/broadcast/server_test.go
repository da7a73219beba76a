package broadcast

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/gridironlabs/gridiron/internal/game"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, s *Server, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if s.ClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	require.Equal(t, want, s.ClientCount())
}

func TestSubscriberReceivesEvents(t *testing.T) {
	s := NewServer(testLogger())
	srv := httptest.NewServer(s)
	defer srv.Close()

	conn := dial(t, srv)
	waitForClients(t, s, 1)

	ts := time.Date(2026, 1, 4, 13, 0, 0, 0, time.UTC)
	s.OnEvent(game.NewScoreEvent("t1", game.SlotHome, 6, game.OutcomeTouchdown, 6, 0, ts))

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var env struct {
		Type      string          `json:"type"`
		Timestamp time.Time       `json:"timestamp"`
		Event     json.RawMessage `json:"event"`
	}
	require.NoError(t, json.Unmarshal(payload, &env))
	require.Equal(t, string(game.EventTypeScore), env.Type)
	require.True(t, env.Timestamp.Equal(ts))

	var ev game.ScoreEvent
	require.NoError(t, json.Unmarshal(env.Event, &ev))
	require.Equal(t, "t1", ev.TransitionID)
	require.Equal(t, 6, ev.Points)
}

func TestAllSubscribersReceiveEachEvent(t *testing.T) {
	s := NewServer(testLogger())
	srv := httptest.NewServer(s)
	defer srv.Close()

	a := dial(t, srv)
	b := dial(t, srv)
	waitForClients(t, s, 2)

	ts := time.Now()
	s.OnEvent(game.NewQuarterEndEvent(1, 2, ts))

	for _, conn := range []*websocket.Conn{a, b} {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, payload, err := conn.ReadMessage()
		require.NoError(t, err)
		require.Contains(t, string(payload), string(game.EventTypeQuarterEnd))
	}
}

func TestSlowSubscriberIsDropped(t *testing.T) {
	s := NewServer(testLogger())

	// A client with no write pump and no channel capacity can never accept
	// a message, which is the stalled-consumer case.
	stalled := &client{remote: "test", send: make(chan []byte)}
	s.mu.Lock()
	s.clients[stalled] = struct{}{}
	s.mu.Unlock()

	s.OnEvent(game.NewQuarterEndEvent(1, 2, time.Now()))

	require.Equal(t, 0, s.ClientCount())
	_, open := <-stalled.send
	require.False(t, open, "send channel should be closed on drop")
}

func TestDisconnectRemovesClient(t *testing.T) {
	s := NewServer(testLogger())
	srv := httptest.NewServer(s)
	defer srv.Close()

	conn := dial(t, srv)
	waitForClients(t, s, 1)

	require.NoError(t, conn.Close())
	waitForClients(t, s, 0)
}
