package models

import (
	"time"

	"gorm.io/gorm"
)

// PasswordReset is a single-use reset token handed to the mailer.
type PasswordReset struct {
	gorm.Model
	UserID    uint       `json:"user_id" gorm:"index"`
	Token     string     `json:"-" gorm:"uniqueIndex"`
	ExpiresAt time.Time  `json:"expires_at"`
	UsedAt    *time.Time `json:"used_at"`
}
