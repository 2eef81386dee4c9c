package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/crud"
)

// Resource mengadaptasi Engine CRUD generik ke endpoint fiber. Satu instance
// per resource; perilaku spesifik resource dioper lewat closure.
type Resource[T any] struct {
	Engine *crud.Engine[T]

	// Filters menerjemahkan query param ke scope GORM.
	Filters func(c *fiber.Ctx) []crud.Scope

	// Decode membangun record baru dari body request.
	Decode func(c *fiber.Ctx, caller crud.Caller) (*T, error)

	// AfterCreate opsional, dipanggil setelah create sukses (mis. notifikasi).
	AfterCreate func(c *fiber.Ctx, rec *T)
}

// Register memasang kelima route standar di bawah router terproteksi.
func Register[T any](r fiber.Router, path string, res *Resource[T]) {
	g := r.Group("/" + path)
	g.Get("/", res.List)
	g.Get("/:id", res.GetOne)
	g.Post("/", res.Create)
	g.Put("/:id", res.Update)
	g.Delete("/:id", res.Delete)
}

func (r *Resource[T]) List(c *fiber.Ctx) error {
	p := crud.ListParams{
		Skip:  c.QueryInt("skip", 0),
		Limit: c.QueryInt("limit", crud.MaxLimit),
	}

	var scopes []crud.Scope
	if r.Filters != nil {
		scopes = r.Filters(c)
	}

	items, err := r.Engine.List(p, scopes...)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    items,
	})
}

func (r *Resource[T]) GetOne(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "ID tidak valid",
		})
	}

	rec, err := r.Engine.Get(uint(id))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    rec,
	})
}

func (r *Resource[T]) Create(c *fiber.Ctx) error {
	caller := callerFrom(c)

	rec, err := r.Decode(c, caller)
	if err != nil {
		return fail(c, err)
	}

	if err := r.Engine.Create(caller, rec); err != nil {
		return fail(c, err)
	}
	if r.AfterCreate != nil {
		r.AfterCreate(c, rec)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    rec,
	})
}

func (r *Resource[T]) Update(c *fiber.Ctx) error {
	caller := callerFrom(c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "ID tidak valid",
		})
	}

	fields := map[string]any{}
	if len(c.Body()) > 0 {
		if err := json.Unmarshal(c.Body(), &fields); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Body request tidak valid",
			})
		}
	}

	rec, err := r.Engine.Update(caller, uint(id), fields)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    rec,
	})
}

func (r *Resource[T]) Delete(c *fiber.Ctx) error {
	caller := callerFrom(c)

	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "ID tidak valid",
		})
	}

	if err := r.Engine.Delete(caller, uint(id)); err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Data berhasil dihapus",
	})
}

func callerFrom(c *fiber.Ctx) crud.Caller {
	uid, _ := c.Locals("userId").(uint)
	role, _ := c.Locals("role").(string)
	return crud.Caller{UserID: uid, Role: role}
}

// fail menerjemahkan taxonomy error engine ke status HTTP + envelope standar.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "Terjadi kesalahan server"

	switch crud.KindOf(err) {
	case crud.KindNotFound:
		status = fiber.StatusNotFound
		msg = err.Error()
	case crud.KindForbidden:
		status = fiber.StatusForbidden
		msg = err.Error()
	case crud.KindValidation:
		status = fiber.StatusBadRequest
		msg = err.Error()
	case crud.KindConflict:
		status = fiber.StatusConflict
		msg = err.Error()
	default:
		logrus.WithError(err).WithField("path", c.Path()).Error("kesalahan storage")
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": msg,
	})
}
