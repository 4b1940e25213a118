package ws

import (
	"context"
	"errors"
	"maps"
	"sync"

	"github.com/Temutjin2k/batoda/pkg/logger"
	wrap "github.com/Temutjin2k/batoda/pkg/logger/wrapper"
	"github.com/google/uuid"
)

var (
	ErrEmptyConn      = errors.New("connection is empty")
	ErrConnIsNotFound = errors.New("connection not found")
)

// ConnectionHub keeps one live WebSocket connection per entity.
type ConnectionHub struct {
	clients map[uuid.UUID]*Conn
	l       logger.Logger
	mu      sync.Mutex
	wg      sync.WaitGroup
	onCount func(n int)
}

func NewConnHub(l logger.Logger) *ConnectionHub {
	return &ConnectionHub{
		clients: make(map[uuid.UUID]*Conn),
		l:       l,
	}
}

// OnCountChange registers a callback that receives the number of connections
// after every change.
func (h *ConnectionHub) OnCountChange(fn func(n int)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onCount = fn
}

// Add registers a connection. An existing connection for the same entity is closed.
func (h *ConnectionHub) Add(newConn *Conn) error {
	if newConn == nil {
		return ErrEmptyConn
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "add_ws_connection")

	if existing, ok := h.clients[newConn.entityID]; ok {
		h.l.Warn(ctx, "replacing existing connection", "entity_id", existing.entityID)
		if err := existing.Close(); err != nil {
			h.l.Warn(ctx, "failed to close existing conn", "entity_id", existing.entityID, "err", err.Error())
		}
	} else {
		h.wg.Add(1)
	}

	h.clients[newConn.entityID] = newConn
	h.notifyLocked()

	return nil
}

// Remove drops conn if it is still the registered connection of its entity.
func (h *ConnectionHub) Remove(conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if current, ok := h.clients[conn.entityID]; ok && current == conn {
		delete(h.clients, conn.entityID)
		h.wg.Done()
		h.notifyLocked()
	}
	_ = conn.Close()
}

// Delete removes and closes the connection of an entity.
func (h *ConnectionHub) Delete(entityID uuid.UUID) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	ctx := wrap.WithAction(context.Background(), "ws_connection_delete")

	conn, ok := h.clients[entityID]
	if !ok {
		return ErrConnIsNotFound
	}

	if err := conn.Close(); err != nil {
		h.l.Warn(ctx, "failed to close conn", "entity_id", conn.entityID, "err", err.Error())
	}

	delete(h.clients, entityID)
	h.wg.Done()
	h.notifyLocked()

	return nil
}

// SendTo sends msg to one entity. Returns ErrConnIsNotFound if it is not connected.
func (h *ConnectionHub) SendTo(id uuid.UUID, msg any) error {
	conn, err := h.GetConn(id)
	if err != nil {
		return err
	}
	return conn.Send(msg)
}

// Close closes every connection and waits for their handlers to finish.
func (h *ConnectionHub) Close() {
	ctx := wrap.WithAction(context.Background(), "hub_close")

	for id := range h.Clients() {
		_ = h.Delete(id)
	}

	h.wg.Wait()

	h.l.Info(ctx, "all websocket connections closed gracefully")
}

func (h *ConnectionHub) Clients() map[uuid.UUID]*Conn {
	h.mu.Lock()
	defer h.mu.Unlock()
	return maps.Clone(h.clients)
}

func (h *ConnectionHub) GetConn(id uuid.UUID) (*Conn, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conn, ok := h.clients[id]
	if !ok {
		return nil, ErrConnIsNotFound
	}
	return conn, nil
}

func (h *ConnectionHub) notifyLocked() {
	if h.onCount != nil {
		h.onCount(len(h.clients))
	}
}
