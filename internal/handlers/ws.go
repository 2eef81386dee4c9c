package handlers

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/realtime"
	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/utils"
)

// NotificationSocket menerima koneksi websocket untuk notifikasi pesan.
// Autentikasi via query param token (koneksi ws tidak lewat middleware JWT).
func NotificationSocket(hub *realtime.Hub, jwtSecret string) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			logrus.Warn("websocket: parameter token kosong")
			c.Close()
			return
		}

		claims, err := utils.ParseJWT(jwtSecret, tokenStr)
		if err != nil {
			logrus.WithError(err).Warn("websocket: token tidak valid")
			c.Close()
			return
		}

		client := &realtime.Client{
			ID:     uuid.New().String(),
			UserID: claims.UserID,
			Send:   make(chan []byte, 256),
		}

		hub.RegisterClient(client)
		defer hub.UnregisterClient(client)

		// tulis: event dari hub ke klien
		go func() {
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}()

		// baca: jaga koneksi tetap hidup sampai klien menutup
		for {
			var payload map[string]interface{}
			if err := c.ReadJSON(&payload); err != nil {
				break
			}
			if t, ok := payload["type"].(string); ok && t == "pong" {
				continue
			}
		}
	}
}
