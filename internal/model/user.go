package model

import "time"

// User represents a registered account.
//
// Tasks are not linked to users: authentication guards the task routes, but
// every signed-in user works on the same shared list.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"size:150;not null"`
	Password  string    `json:"-" gorm:"size:255;not null"` // bcrypt hash, never exposed in JSON
	CreatedAt time.Time `json:"created_at"`
}
