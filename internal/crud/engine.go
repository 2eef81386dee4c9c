package crud

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/models"
)

// Caller adalah identitas hasil autentikasi (dari JWT).
type Caller struct {
	UserID uint
	Role   string
}

// CanWrite: hanya pemilik record (atau admin) yang boleh mengubah/menghapus.
// ownerID 0 berarti record tidak punya pemilik dan bebas diubah caller
// terautentikasi mana pun.
func CanWrite(caller Caller, ownerID uint) bool {
	if caller.Role == models.RoleAdmin {
		return true
	}
	if ownerID == 0 {
		return true
	}
	return caller.UserID == ownerID
}

// MaxLimit adalah batas atas sekaligus default untuk limit listing.
const MaxLimit = 100

type ListParams struct {
	Skip  int
	Limit int
}

func (p *ListParams) normalize() {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit < 1 || p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Scope adalah filter query gaya GORM.
type Scope = func(*gorm.DB) *gorm.DB

// Descriptor menggambarkan satu resource untuk Engine generik.
type Descriptor[T any] struct {
	// Label dipakai di pesan error, mis. "Proyek".
	Label string

	// OwnerID mengembalikan user id pemilik record (0 = tanpa pemilik).
	OwnerID func(db *gorm.DB, rec *T) (uint, error)

	// AssignOwner mengisi kolom pemilik dari identitas caller sebelum create.
	AssignOwner func(rec *T, caller Caller)

	// Validate dipanggil sebelum create.
	Validate func(db *gorm.DB, rec *T) error

	// Updatable memetakan field JSON -> kolom yang boleh diubah parsial.
	Updatable map[string]string

	// ValidatePatch memvalidasi kolom hasil whitelist sebelum update.
	ValidatePatch func(cols map[string]any) error

	// DefaultOrder dipakai kalau listing tidak minta urutan lain.
	DefaultOrder string

	// Cascade dijalankan di dalam transaksi delete, sebelum record dihapus.
	Cascade func(tx *gorm.DB, rec *T) error
}

// Engine adalah mesin CRUD generik: satu implementasi untuk semua resource,
// diparameterkan lewat Descriptor.
type Engine[T any] struct {
	DB   *gorm.DB
	Desc Descriptor[T]
}

func NewEngine[T any](db *gorm.DB, desc Descriptor[T]) *Engine[T] {
	return &Engine[T]{DB: db, Desc: desc}
}

// List mengembalikan record sesuai filter + pagination. Hasil kosong bukan
// error.
func (e *Engine[T]) List(p ListParams, scopes ...Scope) ([]T, error) {
	p.normalize()

	q := e.DB.Model(new(T))
	for _, s := range scopes {
		q = s(q)
	}
	if e.Desc.DefaultOrder != "" {
		q = q.Order(e.Desc.DefaultOrder)
	}

	var out []T
	if err := q.Offset(p.Skip).Limit(p.Limit).Find(&out).Error; err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func (e *Engine[T]) Get(id uint) (*T, error) {
	var rec T
	if err := e.DB.First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound(e.Desc.Label + " tidak ditemukan")
		}
		return nil, err
	}
	return &rec, nil
}

// Create memvalidasi lalu menyimpan record baru. Caller terautentikasi selalu
// boleh create; pemilik diisi dari identitasnya.
func (e *Engine[T]) Create(caller Caller, rec *T) error {
	if e.Desc.AssignOwner != nil {
		e.Desc.AssignOwner(rec, caller)
	}
	if e.Desc.Validate != nil {
		if err := e.Desc.Validate(e.DB, rec); err != nil {
			return err
		}
	}
	if err := e.DB.Create(rec).Error; err != nil {
		if isUniqueViolation(err) {
			return Conflict(e.Desc.Label + " sudah terdaftar")
		}
		return err
	}
	return nil
}

// Update menerapkan perubahan parsial: hanya field yang dikirim (dan masuk
// whitelist Updatable) yang diubah. Urutan cek: 404 dulu, baru 403.
func (e *Engine[T]) Update(caller Caller, id uint, fields map[string]any) (*T, error) {
	rec, err := e.Get(id)
	if err != nil {
		return nil, err
	}

	if err := e.checkOwner(caller, rec); err != nil {
		return nil, err
	}

	cols := map[string]any{}
	for k, v := range fields {
		if col, ok := e.Desc.Updatable[k]; ok {
			cols[col] = v
		}
	}
	if len(cols) == 0 {
		// patch kosong: record dibiarkan apa adanya
		return rec, nil
	}
	if e.Desc.ValidatePatch != nil {
		if err := e.Desc.ValidatePatch(cols); err != nil {
			return nil, err
		}
	}

	res := e.DB.Model(rec).Updates(cols)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return nil, Conflict(e.Desc.Label + " sudah terdaftar")
		}
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// record hilang di antara cek dan tulis
		return nil, NotFound(e.Desc.Label + " tidak ditemukan")
	}

	return e.Get(id)
}

// Delete menghapus record beserta turunannya (Cascade) dalam satu transaksi.
func (e *Engine[T]) Delete(caller Caller, id uint) error {
	rec, err := e.Get(id)
	if err != nil {
		return err
	}

	if err := e.checkOwner(caller, rec); err != nil {
		return err
	}

	return e.DB.Transaction(func(tx *gorm.DB) error {
		if e.Desc.Cascade != nil {
			if err := e.Desc.Cascade(tx, rec); err != nil {
				return err
			}
		}
		res := tx.Delete(rec)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return NotFound(e.Desc.Label + " tidak ditemukan")
		}
		return nil
	})
}

func (e *Engine[T]) checkOwner(caller Caller, rec *T) error {
	var owner uint
	if e.Desc.OwnerID != nil {
		var err error
		owner, err = e.Desc.OwnerID(e.DB, rec)
		if err != nil {
			return err
		}
	}
	if !CanWrite(caller, owner) {
		return Forbidden("Anda tidak punya akses ke " + strings.ToLower(e.Desc.Label) + " ini")
	}
	return nil
}

// Deteksi pelanggaran unique lintas driver (postgres & sqlite untuk test).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "unique constraint")
}
