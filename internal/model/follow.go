package model

// Follow is a directed edge: UserFollowingID follows UserBeingFollowedID.
type Follow struct {
	UserBeingFollowedID uint `gorm:"primaryKey;autoIncrement:false" json:"user_being_followed_id"`
	UserFollowingID     uint `gorm:"primaryKey;autoIncrement:false;index" json:"user_following_id"`

	UserBeingFollowed *User `gorm:"foreignKey:UserBeingFollowedID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	UserFollowing     *User `gorm:"foreignKey:UserFollowingID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Follow) TableName() string {
	return "follows"
}
