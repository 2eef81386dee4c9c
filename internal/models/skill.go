// internal/models/skill.go
package models

type Skill struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

// FreelancerSkill adalah tabel asosiasi many-to-many (composite key).
type FreelancerSkill struct {
	FreelancerID uint `gorm:"primaryKey" json:"freelancer_id"`
	SkillID      uint `gorm:"primaryKey" json:"skill_id"`

	Freelancer *Freelancer `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
	Skill      *Skill      `gorm:"foreignKey:SkillID" json:"skill,omitempty"`
}
