package handlers

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/crud"
	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/models"
	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/realtime"
)

type MessageReq struct {
	RecipientID uint   `json:"recipient_id"`
	Content     string `json:"content"`
}

func NewMessageResource(gdb *gorm.DB, hub *realtime.Hub, rdb *redis.Client) *Resource[models.Message] {
	eng := crud.NewEngine(gdb, crud.Descriptor[models.Message]{
		Label: "Pesan",
		OwnerID: func(_ *gorm.DB, m *models.Message) (uint, error) {
			return m.SenderID, nil
		},
		AssignOwner: func(m *models.Message, caller crud.Caller) {
			m.SenderID = caller.UserID
		},
		Validate: func(db *gorm.DB, m *models.Message) error {
			if strings.TrimSpace(m.Content) == "" {
				return crud.Validation("Isi pesan wajib diisi")
			}
			if m.RecipientID == m.SenderID {
				return crud.Validation("Tidak bisa mengirim pesan ke diri sendiri")
			}
			var recipient models.User
			if err := db.First(&recipient, "id = ?", m.RecipientID).Error; err != nil {
				return crud.Validation("Penerima tidak ditemukan")
			}
			return nil
		},
		Updatable: map[string]string{
			"content": "content",
			"is_read": "is_read",
		},
		DefaultOrder: "timestamp DESC",
	})

	return &Resource[models.Message]{
		Engine: eng,
		Filters: func(c *fiber.Ctx) []crud.Scope {
			var scopes []crud.Scope
			for _, key := range []string{"sender_id", "recipient_id"} {
				key := key
				if v := c.Query(key); v != "" {
					if id, err := strconv.Atoi(v); err == nil {
						scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
							return q.Where(key+" = ?", id)
						})
					}
				}
			}
			if v := c.Query("is_read"); v != "" {
				scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
					return q.Where("is_read = ?", v == "true" || v == "1")
				})
			}
			return scopes
		},
		Decode: func(c *fiber.Ctx, _ crud.Caller) (*models.Message, error) {
			var req MessageReq
			if err := c.BodyParser(&req); err != nil {
				return nil, crud.Validation("Body request tidak valid")
			}
			return &models.Message{
				RecipientID: req.RecipientID,
				Content:     strings.TrimSpace(req.Content),
			}, nil
		},
		// notifikasi best-effort ke penerima; baris pesan tetap sumber kebenaran
		AfterCreate: func(_ *fiber.Ctx, m *models.Message) {
			event := fiber.Map{"type": "message.new", "data": m}
			if hub != nil {
				hub.SendToUser(m.RecipientID, event)
			}
			if payload, err := json.Marshal(event); err == nil {
				realtime.PublishToUser(context.Background(), rdb, m.RecipientID, payload)
			}
		},
	}
}
