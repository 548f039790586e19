package server

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Hub fans one reload notification out to every connected dev client.
type Hub struct {
	mu   sync.Mutex
	subs map[string]chan string
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]chan string)}
}

// Subscribe registers a listener and returns its id and channel. The
// channel is buffered so a slow client never stalls the broadcaster.
func (h *Hub) Subscribe() (string, <-chan string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := uuid.NewString()
	ch := make(chan string, 4)
	h.subs[id] = ch
	return id, ch
}

func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subs[id]; ok {
		delete(h.subs, id)
		close(ch)
	}
}

// Broadcast delivers event to every subscriber, dropping it for any whose
// buffer is full.
func (h *Hub) Broadcast(event string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// handleReloadStream is the dev live-reload endpoint: a server-sent event
// stream that emits one event per detected site change.
func (s *Server) handleReloadStream(c *gin.Context) {
	id, updates := s.hub.Subscribe()
	defer s.hub.Unsubscribe(id)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-c.Request.Context().Done():
			return
		case event, ok := <-updates:
			if !ok {
				return
			}
			if _, err := fmt.Fprintf(c.Writer, "event: %s\ndata: {}\n\n", event); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
