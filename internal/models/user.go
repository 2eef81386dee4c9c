// internal/models/user.go
package models

import "time"

type Role struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"type:varchar(30);uniqueIndex;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

const (
	RoleAdmin      = "admin"
	RoleClient     = "client"
	RoleFreelancer = "freelancer"
)

type User struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"type:varchar(120);not null" json:"name"`
	Email string `gorm:"type:varchar(150);uniqueIndex;not null" json:"email"`

	Password string `gorm:"not null" json:"-"`
	RoleID   uint   `gorm:"not null;index" json:"role_id"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Role *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`

	// HAS ONE freelancer (freelancers.user_id -> users.id)
	Freelancer *Freelancer `gorm:"foreignKey:UserID;references:ID" json:"freelancer,omitempty"`
}
