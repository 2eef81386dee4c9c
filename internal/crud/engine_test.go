package crud_test

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/crud"
	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/db"
	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, name, email string) models.User {
	t.Helper()

	var role models.Role
	require.NoError(t, gdb.Where("name = ?", models.RoleClient).First(&role).Error)

	u := models.User{Name: name, Email: email, Password: "x", RoleID: role.ID, IsActive: true}
	require.NoError(t, gdb.Create(&u).Error)
	return u
}

func projectEngine(gdb *gorm.DB) *crud.Engine[models.Project] {
	return crud.NewEngine(gdb, crud.Descriptor[models.Project]{
		Label: "Proyek",
		OwnerID: func(_ *gorm.DB, p *models.Project) (uint, error) {
			return p.ClientID, nil
		},
		AssignOwner: func(p *models.Project, caller crud.Caller) {
			p.ClientID = caller.UserID
		},
		Validate: func(_ *gorm.DB, p *models.Project) error {
			if p.Title == "" {
				return crud.Validation("Judul proyek wajib diisi")
			}
			if p.Status == "" {
				p.Status = models.ProjectOpen
			}
			return nil
		},
		Updatable: map[string]string{
			"title":  "title",
			"budget": "budget",
			"status": "status",
		},
		DefaultOrder: "CASE WHEN status = 'open' THEN 0 ELSE 1 END, created_at DESC, id DESC",
		Cascade: func(tx *gorm.DB, p *models.Project) error {
			return tx.Where("project_id = ?", p.ID).Delete(&models.Proposal{}).Error
		},
	})
}

func TestCreateGetRoundTrip(t *testing.T) {
	gdb := newTestDB(t)
	u := seedUser(t, gdb, "Andi", "andi@example.com")
	eng := projectEngine(gdb)

	rec := &models.Project{Title: "Bangun website", Description: "Landing page", Budget: 500}
	require.NoError(t, eng.Create(crud.Caller{UserID: u.ID, Role: models.RoleClient}, rec))
	require.NotZero(t, rec.ID)

	got, err := eng.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, "Bangun website", got.Title)
	assert.Equal(t, u.ID, got.ClientID)
	assert.Equal(t, models.ProjectOpen, got.Status)
}

func TestGetNotFound(t *testing.T) {
	gdb := newTestDB(t)
	eng := projectEngine(gdb)

	_, err := eng.Get(9999)
	require.Error(t, err)
	assert.Equal(t, crud.KindNotFound, crud.KindOf(err))
}

func TestListSkipLimit(t *testing.T) {
	gdb := newTestDB(t)
	u := seedUser(t, gdb, "Andi", "andi@example.com")
	eng := projectEngine(gdb)
	caller := crud.Caller{UserID: u.ID, Role: models.RoleClient}

	for i := 0; i < 7; i++ {
		rec := &models.Project{Title: "Proyek", Description: "d", Budget: float64(i)}
		require.NoError(t, eng.Create(caller, rec))
	}

	all, err := eng.List(crud.ListParams{})
	require.NoError(t, err)
	assert.Len(t, all, 7)

	page, err := eng.List(crud.ListParams{Skip: 2, Limit: 3})
	require.NoError(t, err)
	require.Len(t, page, 3)
	// skip melewati tepat 2 record pertama dalam urutan default
	assert.Equal(t, all[2].ID, page[0].ID)
	assert.Equal(t, all[4].ID, page[2].ID)

	// skip negatif dinormalisasi ke 0, limit di luar rentang ke default
	norm, err := eng.List(crud.ListParams{Skip: -5, Limit: 0})
	require.NoError(t, err)
	assert.Len(t, norm, 7)
}

func TestListOpenFirst(t *testing.T) {
	gdb := newTestDB(t)
	u := seedUser(t, gdb, "Andi", "andi@example.com")
	eng := projectEngine(gdb)
	caller := crud.Caller{UserID: u.ID, Role: models.RoleClient}

	closed := &models.Project{Title: "Lama", Description: "d", Status: models.ProjectCompleted}
	require.NoError(t, eng.Create(caller, closed))
	open := &models.Project{Title: "Baru", Description: "d", Status: models.ProjectOpen}
	require.NoError(t, eng.Create(caller, open))

	got, err := eng.List(crud.ListParams{})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, models.ProjectOpen, got[0].Status)
}

func TestListEmptyIsNotError(t *testing.T) {
	gdb := newTestDB(t)
	eng := projectEngine(gdb)

	got, err := eng.List(crud.ListParams{}, func(q *gorm.DB) *gorm.DB {
		return q.Where("status = ?", "cancelled")
	})
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Len(t, got, 0)
}

func TestUpdatePartial(t *testing.T) {
	gdb := newTestDB(t)
	u := seedUser(t, gdb, "Andi", "andi@example.com")
	eng := projectEngine(gdb)
	caller := crud.Caller{UserID: u.ID, Role: models.RoleClient}

	rec := &models.Project{Title: "Awal", Description: "tetap", Budget: 100}
	require.NoError(t, eng.Create(caller, rec))

	got, err := eng.Update(caller, rec.ID, map[string]any{"title": "Diubah"})
	require.NoError(t, err)
	assert.Equal(t, "Diubah", got.Title)
	// field yang tidak dikirim tidak berubah
	assert.Equal(t, "tetap", got.Description)
	assert.Equal(t, float64(100), got.Budget)
}

func TestUpdateEmptyPatchIsNoop(t *testing.T) {
	gdb := newTestDB(t)
	u := seedUser(t, gdb, "Andi", "andi@example.com")
	eng := projectEngine(gdb)
	caller := crud.Caller{UserID: u.ID, Role: models.RoleClient}

	rec := &models.Project{Title: "Awal", Description: "d", Budget: 100}
	require.NoError(t, eng.Create(caller, rec))

	got, err := eng.Update(caller, rec.ID, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "Awal", got.Title)

	// field di luar whitelist juga diabaikan
	got, err = eng.Update(caller, rec.ID, map[string]any{"client_id": 999})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ClientID)
}

func TestUpdateOwnership(t *testing.T) {
	gdb := newTestDB(t)
	owner := seedUser(t, gdb, "Andi", "andi@example.com")
	other := seedUser(t, gdb, "Budi", "budi@example.com")
	eng := projectEngine(gdb)

	rec := &models.Project{Title: "Milik Andi", Description: "d"}
	require.NoError(t, eng.Create(crud.Caller{UserID: owner.ID, Role: models.RoleClient}, rec))

	// bukan pemilik: forbidden
	_, err := eng.Update(crud.Caller{UserID: other.ID, Role: models.RoleClient}, rec.ID, map[string]any{"title": "X"})
	require.Error(t, err)
	assert.Equal(t, crud.KindForbidden, crud.KindOf(err))

	// id tidak ada: not found menang atas forbidden, siapa pun callernya
	_, err = eng.Update(crud.Caller{UserID: other.ID, Role: models.RoleClient}, 9999, map[string]any{"title": "X"})
	require.Error(t, err)
	assert.Equal(t, crud.KindNotFound, crud.KindOf(err))

	// admin boleh
	_, err = eng.Update(crud.Caller{UserID: other.ID, Role: models.RoleAdmin}, rec.ID, map[string]any{"title": "X"})
	require.NoError(t, err)
}

func TestDeleteCascade(t *testing.T) {
	gdb := newTestDB(t)
	owner := seedUser(t, gdb, "Andi", "andi@example.com")
	flUser := seedUser(t, gdb, "Citra", "citra@example.com")
	eng := projectEngine(gdb)
	caller := crud.Caller{UserID: owner.ID, Role: models.RoleClient}

	rec := &models.Project{Title: "Dengan proposal", Description: "d"}
	require.NoError(t, eng.Create(caller, rec))

	fl := models.Freelancer{UserID: flUser.ID, HourlyRate: 10}
	require.NoError(t, gdb.Create(&fl).Error)
	prop := models.Proposal{ProjectID: rec.ID, FreelancerID: fl.ID, CoverMessage: "halo", ProposedPrice: 450, Status: models.ProposalPending}
	require.NoError(t, gdb.Create(&prop).Error)

	require.NoError(t, eng.Delete(caller, rec.ID))

	_, err := eng.Get(rec.ID)
	assert.Equal(t, crud.KindNotFound, crud.KindOf(err))

	var count int64
	require.NoError(t, gdb.Model(&models.Proposal{}).Where("id = ?", prop.ID).Count(&count).Error)
	assert.Zero(t, count)

	// delete kedua kali: not found, bukan sukses diam-diam
	err = eng.Delete(caller, rec.ID)
	assert.Equal(t, crud.KindNotFound, crud.KindOf(err))
}

func TestDeleteForbiddenForNonOwner(t *testing.T) {
	gdb := newTestDB(t)
	owner := seedUser(t, gdb, "Andi", "andi@example.com")
	other := seedUser(t, gdb, "Budi", "budi@example.com")
	eng := projectEngine(gdb)

	rec := &models.Project{Title: "Milik Andi", Description: "d"}
	require.NoError(t, eng.Create(crud.Caller{UserID: owner.ID, Role: models.RoleClient}, rec))

	err := eng.Delete(crud.Caller{UserID: other.ID, Role: models.RoleClient}, rec.ID)
	assert.Equal(t, crud.KindForbidden, crud.KindOf(err))

	// record masih ada
	_, err = eng.Get(rec.ID)
	require.NoError(t, err)
}

func TestUniqueViolationIsConflict(t *testing.T) {
	gdb := newTestDB(t)
	u := seedUser(t, gdb, "Andi", "andi@example.com")

	eng := crud.NewEngine(gdb, crud.Descriptor[models.Skill]{Label: "Skill"})
	caller := crud.Caller{UserID: u.ID, Role: models.RoleClient}

	require.NoError(t, eng.Create(caller, &models.Skill{Name: "Go"}))

	err := eng.Create(caller, &models.Skill{Name: "Go"})
	require.Error(t, err)
	assert.Equal(t, crud.KindConflict, crud.KindOf(err))
}

func TestCanWrite(t *testing.T) {
	assert.True(t, crud.CanWrite(crud.Caller{UserID: 1}, 1))
	assert.False(t, crud.CanWrite(crud.Caller{UserID: 2}, 1))
	assert.True(t, crud.CanWrite(crud.Caller{UserID: 2, Role: models.RoleAdmin}, 1))
	// record tanpa pemilik bebas diubah caller terautentikasi
	assert.True(t, crud.CanWrite(crud.Caller{UserID: 2}, 0))
}
