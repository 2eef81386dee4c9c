package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/crud"
	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/models"
)

// FreelancerSkillHandler mengelola tabel asosiasi freelancer<->skill.
// Kuncinya composite (freelancer_id, skill_id), jadi resource ini tidak
// lewat engine generik yang berkunci id tunggal.
type FreelancerSkillHandler struct {
	DB *gorm.DB
}

func NewFreelancerSkillHandler(db *gorm.DB) *FreelancerSkillHandler {
	return &FreelancerSkillHandler{DB: db}
}

func (h *FreelancerSkillHandler) RegisterRoutes(r fiber.Router) {
	g := r.Group("/freelancer-skills")
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Delete("/:freelancer_id/:skill_id", h.Delete)
}

func (h *FreelancerSkillHandler) List(c *fiber.Ctx) error {
	skip := c.QueryInt("skip", 0)
	limit := c.QueryInt("limit", crud.MaxLimit)
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > crud.MaxLimit {
		limit = crud.MaxLimit
	}

	q := h.DB.Model(&models.FreelancerSkill{})
	if v := c.Query("freelancer_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			q = q.Where("freelancer_id = ?", id)
		}
	}
	if v := c.Query("skill_id"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			q = q.Where("skill_id = ?", id)
		}
	}

	var links []models.FreelancerSkill
	if err := q.Order("freelancer_id, skill_id").Offset(skip).Limit(limit).Find(&links).Error; err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    links,
	})
}

type FreelancerSkillReq struct {
	FreelancerID uint `json:"freelancer_id"`
	SkillID      uint `json:"skill_id"`
}

func (h *FreelancerSkillHandler) Create(c *fiber.Ctx) error {
	caller := callerFrom(c)

	var req FreelancerSkillReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, crud.Validation("Body request tidak valid"))
	}

	// default: skill dipasang ke profil freelancer milik caller
	var fl models.Freelancer
	if req.FreelancerID == 0 {
		if err := h.DB.Where("user_id = ?", caller.UserID).First(&fl).Error; err != nil {
			return fail(c, crud.Validation("Profil freelancer belum dibuat"))
		}
	} else {
		if err := h.DB.First(&fl, "id = ?", req.FreelancerID).Error; err != nil {
			return fail(c, crud.Validation("Freelancer tidak ditemukan"))
		}
		if !crud.CanWrite(caller, fl.UserID) {
			return fail(c, crud.Forbidden("Anda tidak punya akses ke profil freelancer ini"))
		}
	}

	var skill models.Skill
	if err := h.DB.First(&skill, "id = ?", req.SkillID).Error; err != nil {
		return fail(c, crud.Validation("Skill tidak ditemukan"))
	}

	link := models.FreelancerSkill{FreelancerID: fl.ID, SkillID: skill.ID}

	var existing models.FreelancerSkill
	err := h.DB.Where("freelancer_id = ? AND skill_id = ?", fl.ID, skill.ID).First(&existing).Error
	if err == nil {
		return fail(c, crud.Conflict("Skill sudah terpasang pada freelancer ini"))
	}
	if err != gorm.ErrRecordNotFound {
		return fail(c, err)
	}

	if err := h.DB.Create(&link).Error; err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    link,
	})
}

func (h *FreelancerSkillHandler) Delete(c *fiber.Ctx) error {
	caller := callerFrom(c)

	fid, err := c.ParamsInt("freelancer_id")
	if err != nil || fid < 1 {
		return fail(c, crud.Validation("ID tidak valid"))
	}
	sid, err := c.ParamsInt("skill_id")
	if err != nil || sid < 1 {
		return fail(c, crud.Validation("ID tidak valid"))
	}

	var link models.FreelancerSkill
	if err := h.DB.Where("freelancer_id = ? AND skill_id = ?", fid, sid).First(&link).Error; err != nil {
		return fail(c, crud.NotFound("Relasi skill tidak ditemukan"))
	}

	var fl models.Freelancer
	if err := h.DB.First(&fl, "id = ?", link.FreelancerID).Error; err == nil {
		if !crud.CanWrite(caller, fl.UserID) {
			return fail(c, crud.Forbidden("Anda tidak punya akses ke profil freelancer ini"))
		}
	}

	if err := h.DB.Where("freelancer_id = ? AND skill_id = ?", fid, sid).
		Delete(&models.FreelancerSkill{}).Error; err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Data berhasil dihapus",
	})
}
