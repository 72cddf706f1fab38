package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"` // Hash
	CreatedAt time.Time `json:"created_at"`
	// No DeletedAt for hard delete
}
