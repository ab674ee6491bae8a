package model

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

const MaxMessageLength = 140

type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Text      string    `gorm:"size:140;not null" json:"text"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"user,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}

// BeforeSave rejects rows the schema would otherwise accept as zero values.
func (m *Message) BeforeSave(tx *gorm.DB) error {
	if strings.TrimSpace(m.Text) == "" {
		return fmt.Errorf("%w: messages.text", ErrNullField)
	}
	if m.UserID == 0 {
		return fmt.Errorf("%w: messages.user_id", ErrNullField)
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	return nil
}
