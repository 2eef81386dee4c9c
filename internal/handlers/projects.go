package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/crud"
	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/models"
)

type ProjectReq struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Budget      float64    `json:"budget"`
	Deadline    *time.Time `json:"deadline"`
	Status      string     `json:"status"`
}

func NewProjectResource(gdb *gorm.DB) *Resource[models.Project] {
	eng := crud.NewEngine(gdb, crud.Descriptor[models.Project]{
		Label: "Proyek",
		OwnerID: func(_ *gorm.DB, p *models.Project) (uint, error) {
			return p.ClientID, nil
		},
		AssignOwner: func(p *models.Project, caller crud.Caller) {
			p.ClientID = caller.UserID
		},
		Validate: func(_ *gorm.DB, p *models.Project) error {
			if strings.TrimSpace(p.Title) == "" {
				return crud.Validation("Judul proyek wajib diisi")
			}
			if strings.TrimSpace(p.Description) == "" {
				return crud.Validation("Deskripsi proyek wajib diisi")
			}
			if p.Budget < 0 {
				return crud.Validation("Budget tidak boleh negatif")
			}
			if p.Status == "" {
				p.Status = models.ProjectOpen
			}
			if !p.Status.Valid() {
				return crud.Validation("Status proyek tidak valid")
			}
			return nil
		},
		Updatable: map[string]string{
			"title":       "title",
			"description": "description",
			"budget":      "budget",
			"deadline":    "deadline",
			"status":      "status",
		},
		ValidatePatch: func(cols map[string]any) error {
			if v, ok := cols["budget"]; ok {
				f, ok := v.(float64)
				if !ok || f < 0 {
					return crud.Validation("Budget tidak boleh negatif")
				}
			}
			if v, ok := cols["status"]; ok {
				s, _ := v.(string)
				if !models.ProjectStatus(s).Valid() {
					return crud.Validation("Status proyek tidak valid")
				}
			}
			if v, ok := cols["deadline"]; ok && v != nil {
				// null berarti deadline dihapus; selain itu wajib RFC3339
				s, _ := v.(string)
				t, err := time.Parse(time.RFC3339, s)
				if err != nil {
					return crud.Validation("Format deadline tidak valid")
				}
				cols["deadline"] = t
			}
			return nil
		},
		// proyek open tampil duluan, lalu yang terbaru
		DefaultOrder: "CASE WHEN status = 'open' THEN 0 ELSE 1 END, created_at DESC",
		Cascade: func(tx *gorm.DB, p *models.Project) error {
			sub := tx.Model(&models.Proposal{}).Select("id").Where("project_id = ?", p.ID)
			if err := tx.Where("proposal_id IN (?)", sub).Delete(&models.Payment{}).Error; err != nil {
				return err
			}
			return tx.Where("project_id = ?", p.ID).Delete(&models.Proposal{}).Error
		},
	})

	return &Resource[models.Project]{
		Engine: eng,
		Filters: func(c *fiber.Ctx) []crud.Scope {
			var scopes []crud.Scope
			if status := c.Query("status"); status != "" {
				scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
					return q.Where("status = ?", status)
				})
			}
			if v := c.Query("min_budget"); v != "" {
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
						return q.Where("budget >= ?", f)
					})
				}
			}
			if v := c.Query("max_budget"); v != "" {
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
						return q.Where("budget <= ?", f)
					})
				}
			}
			if s := c.Query("search"); s != "" {
				pat := "%" + strings.ToLower(s) + "%"
				scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
					return q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pat, pat)
				})
			}
			return scopes
		},
		Decode: func(c *fiber.Ctx, _ crud.Caller) (*models.Project, error) {
			var req ProjectReq
			if err := c.BodyParser(&req); err != nil {
				return nil, crud.Validation("Body request tidak valid")
			}
			return &models.Project{
				Title:       strings.TrimSpace(req.Title),
				Description: strings.TrimSpace(req.Description),
				Budget:      req.Budget,
				Deadline:    req.Deadline,
				Status:      models.ProjectStatus(req.Status),
			}, nil
		},
	}
}
