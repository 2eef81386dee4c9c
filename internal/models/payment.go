// internal/models/payment.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

type Payment struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Reference   string        `gorm:"type:varchar(50);uniqueIndex" json:"reference"`
	Amount      float64       `gorm:"not null" json:"amount"`
	Currency    string        `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	Status      PaymentStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	PaymentDate *time.Time    `json:"payment_date,omitempty"`

	// Payload mentah dari gateway pembayaran, disimpan apa adanya.
	Meta datatypes.JSON `json:"meta,omitempty"`

	ProposalID uint `gorm:"not null;index" json:"proposal_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Proposal *Proposal `gorm:"foreignKey:ProposalID" json:"proposal,omitempty"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.Reference == "" {
		p.Reference = "PAY-" + uuid.NewString()
	}
	return
}
