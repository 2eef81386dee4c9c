package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/crud"
	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/models"
)

type ReviewReq struct {
	ProjectID    uint   `json:"project_id"`
	FreelancerID uint   `json:"freelancer_id"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
}

func NewReviewResource(gdb *gorm.DB) *Resource[models.Review] {
	eng := crud.NewEngine(gdb, crud.Descriptor[models.Review]{
		Label: "Ulasan",
		OwnerID: func(_ *gorm.DB, r *models.Review) (uint, error) {
			return r.ReviewerID, nil
		},
		AssignOwner: func(r *models.Review, caller crud.Caller) {
			r.ReviewerID = caller.UserID
		},
		Validate: func(db *gorm.DB, r *models.Review) error {
			if r.Rating < 1 || r.Rating > 5 {
				return crud.Validation("Rating harus antara 1 sampai 5")
			}
			var proj models.Project
			if err := db.First(&proj, "id = ?", r.ProjectID).Error; err != nil {
				return crud.Validation("Proyek tidak ditemukan")
			}
			var fl models.Freelancer
			if err := db.First(&fl, "id = ?", r.FreelancerID).Error; err != nil {
				return crud.Validation("Freelancer tidak ditemukan")
			}
			return nil
		},
		Updatable: map[string]string{
			"rating":  "rating",
			"comment": "comment",
		},
		ValidatePatch: func(cols map[string]any) error {
			if v, ok := cols["rating"]; ok {
				f, ok := v.(float64)
				if !ok || f < 1 || f > 5 {
					return crud.Validation("Rating harus antara 1 sampai 5")
				}
			}
			return nil
		},
		DefaultOrder: "created_at DESC",
	})

	return &Resource[models.Review]{
		Engine: eng,
		Filters: func(c *fiber.Ctx) []crud.Scope {
			var scopes []crud.Scope
			for _, key := range []string{"project_id", "freelancer_id", "rating"} {
				key := key
				if v := c.Query(key); v != "" {
					if n, err := strconv.Atoi(v); err == nil {
						scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
							return q.Where(key+" = ?", n)
						})
					}
				}
			}
			return scopes
		},
		Decode: func(c *fiber.Ctx, _ crud.Caller) (*models.Review, error) {
			var req ReviewReq
			if err := c.BodyParser(&req); err != nil {
				return nil, crud.Validation("Body request tidak valid")
			}
			return &models.Review{
				ProjectID:    req.ProjectID,
				FreelancerID: req.FreelancerID,
				Rating:       req.Rating,
				Comment:      strings.TrimSpace(req.Comment),
			}, nil
		},
	}
}
