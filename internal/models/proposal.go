// internal/models/proposal.go
package models

import "time"

type ProposalStatus string

const (
	ProposalPending  ProposalStatus = "pending"
	ProposalAccepted ProposalStatus = "accepted"
	ProposalRejected ProposalStatus = "rejected"
)

func (s ProposalStatus) Valid() bool {
	switch s {
	case ProposalPending, ProposalAccepted, ProposalRejected:
		return true
	}
	return false
}

type Proposal struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CoverMessage  string         `gorm:"type:text;not null" json:"cover_message"`
	ProposedPrice float64        `json:"proposed_price"`
	Status        ProposalStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	SubmittedAt   time.Time      `gorm:"autoCreateTime" json:"submitted_at"`

	ProjectID    uint `gorm:"not null;index" json:"project_id"`
	FreelancerID uint `gorm:"not null;index" json:"freelancer_id"`

	UpdatedAt time.Time `json:"updated_at"`

	Project    *Project    `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Freelancer *Freelancer `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
}
