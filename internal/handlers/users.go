package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/crud"
	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/models"
	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/utils"
)

type UserReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleID   uint   `json:"role_id"`
}

func NewUserResource(gdb *gorm.DB) *Resource[models.User] {
	eng := crud.NewEngine(gdb, crud.Descriptor[models.User]{
		Label: "Pengguna",
		// user adalah pemilik record dirinya sendiri
		OwnerID: func(_ *gorm.DB, u *models.User) (uint, error) {
			return u.ID, nil
		},
		Validate: func(db *gorm.DB, u *models.User) error {
			if strings.TrimSpace(u.Name) == "" {
				return crud.Validation("Nama wajib diisi")
			}
			if u.Email == "" {
				return crud.Validation("Email wajib diisi")
			}
			if !strings.Contains(u.Email, "@") {
				return crud.Validation("Format email tidak valid")
			}
			if u.Password == "" {
				return crud.Validation("Password wajib diisi")
			}
			var role models.Role
			if err := db.First(&role, "id = ?", u.RoleID).Error; err != nil {
				return crud.Validation("Role tidak valid")
			}
			// role admin tidak bisa diberikan lewat endpoint ini, sama seperti register
			if role.Name != models.RoleClient && role.Name != models.RoleFreelancer {
				return crud.Validation("Role harus client atau freelancer")
			}
			return nil
		},
		Updatable: map[string]string{
			"name":  "name",
			"email": "email",
		},
		ValidatePatch: func(cols map[string]any) error {
			if v, ok := cols["email"]; ok {
				s, _ := v.(string)
				if !strings.Contains(s, "@") {
					return crud.Validation("Format email tidak valid")
				}
				cols["email"] = strings.ToLower(strings.TrimSpace(s))
			}
			return nil
		},
		DefaultOrder: "created_at DESC",
	})

	return &Resource[models.User]{
		Engine: eng,
		Filters: func(c *fiber.Ctx) []crud.Scope {
			var scopes []crud.Scope
			if v := c.Query("role_id"); v != "" {
				if id, err := strconv.Atoi(v); err == nil {
					scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
						return q.Where("role_id = ?", id)
					})
				}
			}
			if s := c.Query("search"); s != "" {
				pat := "%" + strings.ToLower(s) + "%"
				scopes = append(scopes, func(q *gorm.DB) *gorm.DB {
					return q.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pat, pat)
				})
			}
			return scopes
		},
		Decode: func(c *fiber.Ctx, _ crud.Caller) (*models.User, error) {
			var req UserReq
			if err := c.BodyParser(&req); err != nil {
				return nil, crud.Validation("Body request tidak valid")
			}

			hashed := ""
			if req.Password != "" {
				var err error
				hashed, err = utils.HashPassword(strings.TrimSpace(req.Password))
				if err != nil {
					return nil, err
				}
			}

			return &models.User{
				Name:     strings.TrimSpace(req.Name),
				Email:    strings.ToLower(strings.TrimSpace(req.Email)),
				Password: hashed,
				RoleID:   req.RoleID,
				IsActive: true,
			}, nil
		},
	}
}
