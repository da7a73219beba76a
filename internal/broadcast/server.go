// Package broadcast streams committed play-by-play events to websocket
// subscribers. It is a downstream consumer of the engine's event bus; the
// engine itself never performs I/O.
package broadcast

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/gridironlabs/gridiron/internal/game"
)

const (
	writeWait = 10 * time.Second

	// sendBuffer bounds how far a subscriber may fall behind before it is
	// dropped. The engine publishes synchronously, so a full buffer must
	// never block it.
	sendBuffer = 64
)

// Envelope is the wire form of one game event.
type Envelope struct {
	Type      string         `json:"type"`
	Timestamp time.Time      `json:"timestamp"`
	Event     game.GameEvent `json:"event"`
}

// Server fans game events out to connected websocket clients. It implements
// game.EventSubscriber and is safe to register on an engine event bus.
type Server struct {
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	conn   *websocket.Conn
	remote string
	send   chan []byte
}

// NewServer creates a broadcast server.
func NewServer(logger *log.Logger) *Server {
	return &Server{
		logger: logger.WithPrefix("broadcast"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// OnEvent implements game.EventSubscriber. Slow subscribers are dropped
// rather than ever back-pressuring the engine.
func (s *Server) OnEvent(event game.GameEvent) {
	payload, err := json.Marshal(Envelope{
		Type:      string(event.EventType()),
		Timestamp: event.Timestamp(),
		Event:     event,
	})
	if err != nil {
		s.logger.Error("failed to encode event", "type", event.EventType(), "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		select {
		case c.send <- payload:
		default:
			s.logger.Warn("dropping slow subscriber", "remote", c.remote)
			delete(s.clients, c)
			close(c.send)
		}
	}
}

// ClientCount returns the number of connected subscribers.
func (s *Server) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

// ServeHTTP upgrades the connection and registers the client for the feed.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		conn:   conn,
		remote: conn.RemoteAddr().String(),
		send:   make(chan []byte, sendBuffer),
	}
	s.mu.Lock()
	s.clients[c] = struct{}{}
	s.mu.Unlock()
	s.logger.Info("subscriber connected", "remote", c.remote)

	go c.writePump()
	go s.readPump(c)
}

// Run serves the feed at /watch until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/watch", s)

	srv := &http.Server{Addr: addr, Handler: mux}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("serving play-by-play feed", "addr", addr, "path", "/watch")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// readPump discards inbound messages and tears the client down when the
// connection drops.
func (s *Server) readPump(c *client) {
	defer s.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Debug("subscriber read error", "error", err)
			}
			return
		}
	}
}

func (s *Server) remove(c *client) {
	s.mu.Lock()
	if _, ok := s.clients[c]; ok {
		delete(s.clients, c)
		close(c.send)
	}
	s.mu.Unlock()
	_ = c.conn.Close()
}

func (c *client) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
