// Package telemetry streams the game state to read-only websocket
// spectators.
package telemetry

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/jtestard/campong/internal/monitoring"
)

// Hub fans snapshots out to connected clients. Each client holds at most one
// pending snapshot; a client that falls behind only ever sees the latest.
type Hub struct {
	session uuid.UUID

	mu      sync.Mutex
	clients map[uuid.UUID]*client
	last    *Snapshot

	done      chan struct{}
	closeOnce sync.Once
}

type client struct {
	id      uuid.UUID
	mailbox chan Snapshot
}

// offer replaces any pending snapshot with s. Only one goroutine may offer
// to a client at a time.
func (c *client) offer(s Snapshot) {
	for {
		select {
		case c.mailbox <- s:
			return
		default:
		}
		select {
		case <-c.mailbox:
		default:
		}
	}
}

// NewHub creates a hub for a new game session.
func NewHub() *Hub {
	return &Hub{
		session: uuid.New(),
		clients: make(map[uuid.UUID]*client),
		done:    make(chan struct{}),
	}
}

// Close disconnects every client and refuses new ones.
func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.done) })
}

// Session identifies this game run in every snapshot.
func (h *Hub) Session() string {
	return h.session.String()
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish queues s for every client without blocking.
func (h *Hub) Publish(s Snapshot) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = &s
	for _, c := range h.clients {
		c.offer(s)
	}
}

func (h *Hub) register() *client {
	c := &client{id: uuid.New(), mailbox: make(chan Snapshot, 1)}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c.id] = c
	if h.last != nil {
		c.offer(*h.last)
	}
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, c.id)
}

// Handler returns the websocket endpoint.
func (h *Hub) Handler() http.Handler {
	return websocket.Handler(h.serve)
}

func (h *Hub) serve(ws *websocket.Conn) {
	defer ws.Close()
	c := h.register()
	defer h.unregister(c)
	monitoring.Logf("telemetry: client %s connected from %s", c.id, ws.Request().RemoteAddr)

	// Spectators have nothing to say; reading only detects the hang up.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		var discard []byte
		for {
			if err := websocket.Message.Receive(ws, &discard); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-h.done:
			monitoring.Debugf("telemetry: closing client %s", c.id)
			return
		case <-gone:
			monitoring.Logf("telemetry: client %s disconnected", c.id)
			return
		case s := <-c.mailbox:
			if err := websocket.JSON.Send(ws, s); err != nil {
				monitoring.Debugf("telemetry: send to %s: %v", c.id, err)
				return
			}
		}
	}
}

// ListenAndServe serves the hub on addr until ctx is cancelled.
func (h *Hub) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/", h.Handler())
	server := &http.Server{Addr: addr, Handler: mux}

	errc := make(chan error, 1)
	go func() {
		monitoring.Logf("starting telemetry server on %s", addr)
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	// Shutdown does not wait for hijacked websocket connections.
	h.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		monitoring.Logf("telemetry server shutdown error: %v", err)
		server.Close()
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
