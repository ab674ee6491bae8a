package model

import "time"

type ActivityKind string

const (
	ActivityFollowed   ActivityKind = "followed"
	ActivityUnfollowed ActivityKind = "unfollowed"
	ActivityPosted     ActivityKind = "posted"
)

// Activity records something ActorID did that RecipientID should hear about.
type Activity struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	ActorID     uint         `gorm:"not null;index" json:"actor_id"`
	RecipientID uint         `gorm:"not null;index" json:"recipient_id"`
	Kind        ActivityKind `gorm:"size:16;not null" json:"kind"`
	MessageID   *uint        `json:"message_id,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`

	Actor     *User `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE" json:"-"`
	Recipient *User `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Activity) TableName() string {
	return "activities"
}
