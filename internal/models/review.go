// internal/models/review.go
package models

import "time"

type Review struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Rating  int    `gorm:"not null" json:"rating"` // 1-5
	Comment string `gorm:"type:text" json:"comment"`

	ProjectID    uint `gorm:"not null;index" json:"project_id"`
	ReviewerID   uint `gorm:"not null;index" json:"reviewer_id"`
	FreelancerID uint `gorm:"not null;index" json:"freelancer_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Project    *Project    `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Reviewer   *User       `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
	Freelancer *Freelancer `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
}
