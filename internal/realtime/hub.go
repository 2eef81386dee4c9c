// internal/realtime/hub.go
package realtime

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"
)

type Client struct {
	ID     string
	UserID uint
	Send   chan []byte
}

// Hub menyalurkan event notifikasi ke klien websocket yang sedang terhubung.
// Baris Message di database tetap jadi sumber kebenaran; pengiriman di sini
// best-effort.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (h *Hub) RegisterClient(client *Client)   { h.register <- client }
func (h *Hub) UnregisterClient(client *Client) { h.unregister <- client }

// SendToUser mengirim event ke semua koneksi milik satu user.
func (h *Hub) SendToUser(userID uint, data interface{}) {
	payload, err := json.Marshal(data)
	if err != nil {
		logrus.WithError(err).Warn("gagal marshal payload notifikasi")
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, client := range h.clients {
		if client.UserID == userID {
			select {
			case client.Send <- payload:
			default:
				// channel penuh, skip (jangan block)
			}
		}
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.ID] = client
			h.mu.Unlock()
			logrus.WithFields(logrus.Fields{"client": client.ID, "user_id": client.UserID}).
				Info("klien websocket terhubung")

		case client := <-h.unregister:
			h.mu.Lock()
			if old, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(old.Send)
				logrus.WithField("client", client.ID).Info("klien websocket terputus")
			}
			h.mu.Unlock()
		}
	}
}
