package handlers

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/crud"
	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/models"
)

type PaymentReq struct {
	ProposalID uint           `json:"proposal_id"`
	Amount     float64        `json:"amount"`
	Currency   string         `json:"currency"`
	Meta       map[string]any `json:"meta"`
}

func NewPaymentResource(gdb *gorm.DB) *Resource[models.Payment] {
	eng := crud.NewEngine(gdb, crud.Descriptor[models.Payment]{
		Label: "Pembayaran",
		// pembayaran dimiliki klien proyek di balik proposalnya
		OwnerID: func(db *gorm.DB, p *models.Payment) (uint, error) {
			var prop models.Proposal
			if err := db.First(&prop, "id = ?", p.ProposalID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return 0, nil
				}
				return 0, err
			}
			var proj models.Project
			if err := db.First(&proj, "id = ?", prop.ProjectID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return 0, nil
				}
				return 0, err
			}
			return proj.ClientID, nil
		},
		Validate: func(db *gorm.DB, p *models.Payment) error {
			if p.Amount <= 0 {
				return crud.Validation("Jumlah pembayaran harus lebih dari 0")
			}
			if p.Currency == "" {
				p.Currency = "USD"
			}
			if len(p.Currency) != 3 {
				return crud.Validation("Kode mata uang harus 3 huruf")
			}
			var prop models.Proposal
			if err := db.First(&prop, "id = ?", p.ProposalID).Error; err != nil {
				return crud.Validation("Proposal tidak ditemukan")
			}
			if p.Status == "" {
				p.Status = models.PaymentPending
			}
			if !p.Status.Valid() {
				return crud.Validation("Status pembayaran tidak valid")
			}
			return nil
		},
		Updatable: map[string]string{
			"status":       "status",
			"payment_date": "payment_date",
			"meta":         "meta",
		},
		ValidatePatch: func(cols map[string]any) error {
			if v, ok := cols["status"]; ok {
				s, _ := v.(string)
				if !models.PaymentStatus(s).Valid() {
					return crud.Validation("Status pembayaran tidak valid")
				}
			}
			if v, ok := cols["payment_date"]; ok {
				s, _ := v.(string)
				t, err := time.Parse(time.RFC3339, s)
				if err != nil {
					return crud.Validation("Format tanggal pembayaran tidak valid")
				}
				cols["payment_date"] = t
			}
			// map hasil decode JSON tidak bisa di-bind driver; simpan sebagai datatypes.JSON
			if v, ok := cols["meta"]; ok && v != nil {
				b, err := json.Marshal(v)
				if err != nil {
					return crud.Validation("Meta tidak valid")
				}
				cols["meta"] = datatypes.JSON(b)
			}
			return nil
		},
		DefaultOrder: "CASE WHEN status = 'pending' THEN 0 ELSE 1 END, created_at DESC",
	})

	return &Resource[models.Payment]{
		Engine: eng,
		Filters: func(c *fiber.Ctx) []crud.Scope {
			var scopes []crud.Scope
			if status := c.Query("status"); status != "" {
				scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
					return q.Where("status = ?", status)
				})
			}
			if cur := c.Query("currency"); cur != "" {
				scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
					return q.Where("currency = ?", strings.ToUpper(cur))
				})
			}
			if v := c.Query("proposal_id"); v != "" {
				if id, err := strconv.Atoi(v); err == nil {
					scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
						return q.Where("proposal_id = ?", id)
					})
				}
			}
			return scopes
		},
		Decode: func(c *fiber.Ctx, _ crud.Caller) (*models.Payment, error) {
			var req PaymentReq
			if err := c.BodyParser(&req); err != nil {
				return nil, crud.Validation("Body request tidak valid")
			}

			var meta datatypes.JSON
			if req.Meta != nil {
				b, err := json.Marshal(req.Meta)
				if err != nil {
					return nil, crud.Validation("Meta tidak valid")
				}
				meta = datatypes.JSON(b)
			}

			return &models.Payment{
				ProposalID: req.ProposalID,
				Amount:     req.Amount,
				Currency:   strings.ToUpper(strings.TrimSpace(req.Currency)),
				Meta:       meta,
				Status:     models.PaymentPending,
			}, nil
		},
	}
}
