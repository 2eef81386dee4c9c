package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/crud"
	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/models"
)

type SkillReq struct {
	Name string `json:"name"`
}

func NewSkillResource(gdb *gorm.DB) *Resource[models.Skill] {
	eng := crud.NewEngine(gdb, crud.Descriptor[models.Skill]{
		Label: "Skill",
		// skill tidak punya pemilik; semua caller terautentikasi boleh mengelola
		Validate: func(_ *gorm.DB, s *models.Skill) error {
			if strings.TrimSpace(s.Name) == "" {
				return crud.Validation("Nama skill wajib diisi")
			}
			return nil
		},
		Updatable: map[string]string{
			"name": "name",
		},
		ValidatePatch: func(cols map[string]any) error {
			if v, ok := cols["name"]; ok {
				s, _ := v.(string)
				if strings.TrimSpace(s) == "" {
					return crud.Validation("Nama skill wajib diisi")
				}
			}
			return nil
		},
		DefaultOrder: "name ASC",
		Cascade: func(tx *gorm.DB, s *models.Skill) error {
			return tx.Where("skill_id = ?", s.ID).Delete(&models.FreelancerSkill{}).Error
		},
	})

	return &Resource[models.Skill]{
		Engine: eng,
		Filters: func(c *fiber.Ctx) []crud.Scope {
			var scopes []crud.Scope
			if s := c.Query("search"); s != "" {
				pat := "%" + strings.ToLower(s) + "%"
				scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
					return q.Where("LOWER(name) LIKE ?", pat)
				})
			}
			return scopes
		},
		Decode: func(c *fiber.Ctx, _ crud.Caller) (*models.Skill, error) {
			var req SkillReq
			if err := c.BodyParser(&req); err != nil {
				return nil, crud.Validation("Body request tidak valid")
			}
			return &models.Skill{Name: strings.TrimSpace(req.Name)}, nil
		},
	}
}
