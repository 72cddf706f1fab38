package models

import (
	"time"
)

// Follow 关注关系 - user 关注 author，同一对只能存在一条
type Follow struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index;uniqueIndex:idx_user_author" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	AuthorID  uint      `gorm:"not null;index;uniqueIndex:idx_user_author" json:"author_id"`
	Author    User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	CreatedAt time.Time `json:"created_at"`
}
