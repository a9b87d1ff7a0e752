package models

import "time"

// Follow is a follower edge (PostgreSQL).
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index:idx_follow_pair,unique"`
	FollowingID uint      `json:"following_id" gorm:"index:idx_follow_pair,unique"`
	CreatedAt   time.Time `json:"created_at"`
}
