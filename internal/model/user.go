package model

import "time"

// User represents a registered account. Users are never deleted; the only
// mutation after registration is a profile edit.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:64;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FullName     string    `json:"full_name,omitempty" gorm:"size:255"`
	Email        string    `json:"email,omitempty" gorm:"size:255"`
	AvatarPath   string    `json:"avatar_path,omitempty" gorm:"size:255"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
