package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/crud"
	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/models"
)

type FreelancerReq struct {
	Bio          string  `json:"bio"`
	HourlyRate   float64 `json:"hourly_rate"`
	PortfolioURL string  `json:"portfolio_url"`
}

func NewFreelancerResource(gdb *gorm.DB) *Resource[models.Freelancer] {
	eng := crud.NewEngine(gdb, crud.Descriptor[models.Freelancer]{
		Label: "Profil freelancer",
		OwnerID: func(_ *gorm.DB, f *models.Freelancer) (uint, error) {
			return f.UserID, nil
		},
		AssignOwner: func(f *models.Freelancer, caller crud.Caller) {
			// profil dibuat untuk caller sendiri; uniqueIndex user_id menjaga 1:1
			f.UserID = caller.UserID
		},
		Validate: func(_ *gorm.DB, f *models.Freelancer) error {
			if f.HourlyRate < 0 {
				return crud.Validation("Tarif per jam tidak boleh negatif")
			}
			return nil
		},
		Updatable: map[string]string{
			"bio":           "bio",
			"hourly_rate":   "hourly_rate",
			"portfolio_url": "portfolio_url",
		},
		ValidatePatch: func(cols map[string]any) error {
			if v, ok := cols["hourly_rate"]; ok {
				f, ok := v.(float64)
				if !ok || f < 0 {
					return crud.Validation("Tarif per jam tidak boleh negatif")
				}
			}
			return nil
		},
		DefaultOrder: "created_at DESC",
		Cascade: func(tx *gorm.DB, f *models.Freelancer) error {
			if err := tx.Where("freelancer_id = ?", f.ID).Delete(&models.FreelancerSkill{}).Error; err != nil {
				return err
			}
			sub := tx.Model(&models.Proposal{}).Select("id").Where("freelancer_id = ?", f.ID)
			if err := tx.Where("proposal_id IN (?)", sub).Delete(&models.Payment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("freelancer_id = ?", f.ID).Delete(&models.Proposal{}).Error; err != nil {
				return err
			}
			return tx.Where("freelancer_id = ?", f.ID).Delete(&models.Review{}).Error
		},
	})

	return &Resource[models.Freelancer]{
		Engine: eng,
		Filters: func(c *fiber.Ctx) []crud.Scope {
			var scopes []crud.Scope
			if v := c.Query("min_rate"); v != "" {
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
						return q.Where("hourly_rate >= ?", f)
					})
				}
			}
			if v := c.Query("max_rate"); v != "" {
				if f, err := strconv.ParseFloat(v, 64); err == nil {
					scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
						return q.Where("hourly_rate <= ?", f)
					})
				}
			}
			if s := c.Query("search"); s != "" {
				pat := "%" + strings.ToLower(s) + "%"
				scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
					return q.Where("LOWER(bio) LIKE ?", pat)
				})
			}
			return scopes
		},
		Decode: func(c *fiber.Ctx, _ crud.Caller) (*models.Freelancer, error) {
			var req FreelancerReq
			if err := c.BodyParser(&req); err != nil {
				return nil, crud.Validation("Body request tidak valid")
			}
			return &models.Freelancer{
				Bio:          req.Bio,
				HourlyRate:   req.HourlyRate,
				PortfolioURL: strings.TrimSpace(req.PortfolioURL),
			}, nil
		},
	}
}
