// internal/models/message.go
package models

import "time"

type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Timestamp time.Time `gorm:"autoCreateTime" json:"timestamp"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`

	SenderID    uint `gorm:"not null;index" json:"sender_id"`
	RecipientID uint `gorm:"not null;index" json:"recipient_id"`

	Sender    *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Recipient *User `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
}
