package model

import "time"

const (
	DefaultImageURL       = "/static/images/default-pic.png"
	DefaultHeaderImageURL = "/static/images/warbler-hero.jpg"
)

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"size:128;not null;uniqueIndex" json:"-"` // only the account's own views expose it
	Username       string    `gorm:"size:64;not null;uniqueIndex" json:"username"`
	ImageURL       string    `gorm:"size:512" json:"image_url"`
	HeaderImageURL string    `gorm:"size:512" json:"header_image_url"`
	Bio            string    `gorm:"type:text" json:"bio"`
	Location       string    `gorm:"size:128" json:"location"`
	Password       string    `gorm:"size:255;not null" json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserStats holds the counters shown on profile pages.
type UserStats struct {
	Messages  int64 `json:"messages"`
	Following int64 `json:"following"`
	Followers int64 `json:"followers"`
}
