package models

import "gorm.io/gorm"

// Follow 关注关系，follower 不允许等于 followee
type Follow struct {
	gorm.Model
	FollowerID uint `gorm:"not null;uniqueIndex:idx_follower_followee" json:"follower_id"`
	FolloweeID uint `gorm:"not null;index;uniqueIndex:idx_follower_followee" json:"followee_id"`
}
