// internal/models/freelancer.go
package models

import "time"

type Freelancer struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user_id"`

	Bio          string  `gorm:"type:text" json:"bio"`
	HourlyRate   float64 `json:"hourly_rate"`
	PortfolioURL string  `gorm:"type:varchar(255)" json:"portfolio_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User       *User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Proposals  []Proposal       `gorm:"foreignKey:FreelancerID" json:"proposals,omitempty"`
	Reviews    []Review         `gorm:"foreignKey:FreelancerID" json:"reviews,omitempty"`
	SkillLinks []FreelancerSkill `gorm:"foreignKey:FreelancerID" json:"skill_links,omitempty"`
}
