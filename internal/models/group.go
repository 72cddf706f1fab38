package models

import (
	"time"
)

// Group 帖子分组，管理员预设，用户发帖时可选
type Group struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Slug        string    `gorm:"uniqueIndex;size:50;not null" json:"slug"` // Used in /group/:slug/ URLs
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
