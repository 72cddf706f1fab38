package models

import (
	"time"
)

type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Text     string `gorm:"type:text;not null" json:"text"`
	AuthorID uint   `gorm:"not null;index" json:"author_id"`
	Author   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	// Optional group. Deleting the group keeps the post and clears the reference.
	GroupID *uint  `gorm:"index" json:"group_id"`
	Group   *Group `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"group"`
	// Relative path below the media root, e.g. "posts/xxxx.png". Empty when no image.
	Image     string    `json:"image"`
	CreatedAt time.Time `gorm:"index" json:"created_at"` // Set once, never updated

	// 非数据库字段，用于查询时填充
	CommentCount int `gorm:"-" json:"comment_count"`
}

func (p Post) String() string {
	return p.Text
}
