package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/models"
)

type AdminHandler struct {
	DB *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

// Stats mengembalikan jumlah record per resource untuk dashboard admin.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	counts := map[string]int64{}
	tables := map[string]interface{}{
		"users":       &models.User{},
		"freelancers": &models.Freelancer{},
		"projects":    &models.Project{},
		"proposals":   &models.Proposal{},
		"payments":    &models.Payment{},
		"reviews":     &models.Review{},
		"messages":    &models.Message{},
		"skills":      &models.Skill{},
	}

	for name, model := range tables {
		var n int64
		if err := h.DB.Model(model).Count(&n).Error; err != nil {
			return fail(c, err)
		}
		counts[name] = n
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    counts,
	})
}
