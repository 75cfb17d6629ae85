package model

import "time"

// Task represents a single item on the to-do list.
// CreatedAt is set once on insert and never touched afterwards.
type Task struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	Title     string     `json:"title" gorm:"size:200;not null"`
	Priority  string     `json:"priority" gorm:"size:20;default:'Medium'"`
	Done      bool       `json:"done" gorm:"default:false"`
	DueDate   *time.Time `json:"due_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
