package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/crud"
	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/models"
)

type ProposalReq struct {
	ProjectID     uint    `json:"project_id"`
	CoverMessage  string  `json:"cover_message"`
	ProposedPrice float64 `json:"proposed_price"`
}

func NewProposalResource(gdb *gorm.DB) *Resource[models.Proposal] {
	eng := crud.NewEngine(gdb, crud.Descriptor[models.Proposal]{
		Label: "Proposal",
		// pemilik proposal adalah user di balik profil freelancer
		OwnerID: func(db *gorm.DB, p *models.Proposal) (uint, error) {
			var fl models.Freelancer
			if err := db.First(&fl, "id = ?", p.FreelancerID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return 0, nil
				}
				return 0, err
			}
			return fl.UserID, nil
		},
		Validate: func(db *gorm.DB, p *models.Proposal) error {
			if strings.TrimSpace(p.CoverMessage) == "" {
				return crud.Validation("Cover message wajib diisi")
			}
			if p.ProposedPrice < 0 {
				return crud.Validation("Harga penawaran tidak boleh negatif")
			}
			var proj models.Project
			if err := db.First(&proj, "id = ?", p.ProjectID).Error; err != nil {
				return crud.Validation("Proyek tidak ditemukan")
			}
			if p.Status == "" {
				p.Status = models.ProposalPending
			}
			if !p.Status.Valid() {
				return crud.Validation("Status proposal tidak valid")
			}
			return nil
		},
		Updatable: map[string]string{
			"cover_message":  "cover_message",
			"proposed_price": "proposed_price",
			"status":         "status",
		},
		ValidatePatch: func(cols map[string]any) error {
			if v, ok := cols["proposed_price"]; ok {
				f, ok := v.(float64)
				if !ok || f < 0 {
					return crud.Validation("Harga penawaran tidak boleh negatif")
				}
			}
			if v, ok := cols["status"]; ok {
				s, _ := v.(string)
				if !models.ProposalStatus(s).Valid() {
					return crud.Validation("Status proposal tidak valid")
				}
			}
			return nil
		},
		DefaultOrder: "CASE WHEN status = 'pending' THEN 0 ELSE 1 END, submitted_at DESC",
		Cascade: func(tx *gorm.DB, p *models.Proposal) error {
			return tx.Where("proposal_id = ?", p.ID).Delete(&models.Payment{}).Error
		},
	})

	return &Resource[models.Proposal]{
		Engine: eng,
		Filters: func(c *fiber.Ctx) []crud.Scope {
			var scopes []crud.Scope
			if status := c.Query("status"); status != "" {
				scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
					return q.Where("status = ?", status)
				})
			}
			for _, key := range []string{"project_id", "freelancer_id"} {
				key := key
				if v := c.Query(key); v != "" {
					if id, err := strconv.Atoi(v); err == nil {
						scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
							return q.Where(key+" = ?", id)
						})
					}
				}
			}
			if v := c.Query("min_price"); v != "" {
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
						return q.Where("proposed_price >= ?", f)
					})
				}
			}
			if v := c.Query("max_price"); v != "" {
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
						return q.Where("proposed_price <= ?", f)
					})
				}
			}
			return scopes
		},
		Decode: func(c *fiber.Ctx, caller crud.Caller) (*models.Proposal, error) {
			var req ProposalReq
			if err := c.BodyParser(&req); err != nil {
				return nil, crud.Validation("Body request tidak valid")
			}

			// proposal selalu diajukan atas nama profil freelancer caller
			var fl models.Freelancer
			if err := gdb.Where("user_id = ?", caller.UserID).First(&fl).Error; err != nil {
				return nil, crud.Validation("Profil freelancer belum dibuat")
			}

			return &models.Proposal{
				ProjectID:     req.ProjectID,
				FreelancerID:  fl.ID,
				CoverMessage:  strings.TrimSpace(req.CoverMessage),
				ProposedPrice: req.ProposedPrice,
				Status:        models.ProposalPending,
			}, nil
		},
	}
}
