package db

import (
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/freelance_marketplace_be/internal/models"
)

// Connect membuka koneksi postgres. Handle-nya dimiliki proses dan dioper ke
// handler, bukan diakses sebagai global.
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// Migrate menjalankan AutoMigrate untuk semua model lalu seed tabel roles.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Freelancer{},
		&models.Project{},
		&models.Proposal{},
		&models.Payment{},
		&models.Review{},
		&models.Message{},
		&models.Skill{},
		&models.FreelancerSkill{},
	); err != nil {
		return err
	}
	return SeedRoles(gdb)
}

// SeedRoles memastikan tiga role dasar selalu ada.
func SeedRoles(gdb *gorm.DB) error {
	roles := []models.Role{
		{Name: models.RoleAdmin, Description: "Administrator platform"},
		{Name: models.RoleClient, Description: "Pemilik proyek"},
		{Name: models.RoleFreelancer, Description: "Pekerja lepas"},
	}
	for _, r := range roles {
		var existing models.Role
		err := gdb.Where("name = ?", r.Name).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := gdb.Create(&r).Error; err != nil {
				return err
			}
			logrus.WithField("role", r.Name).Info("role dibuat")
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}
