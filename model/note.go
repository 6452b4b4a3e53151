package model

import (
	"time"
)

// Moderation states a note moves through. Every note starts out pending
// and becomes visible in the public feed only once approved.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

type Note struct {
	ID              string    `bson:"_id,omitempty" json:"id"`
	UserID          string    `bson:"user_id" json:"user_id"`
	Title           string    `bson:"title" json:"title" binding:"required"`
	Content         string    `bson:"content" json:"content" binding:"required"`
	Images          []string  `bson:"image" json:"image"`
	Video           string    `bson:"video,omitempty" json:"video"`
	Location        string    `bson:"location,omitempty" json:"location,omitempty"`
	Status          string    `bson:"status" json:"status"`
	RejectionReason string    `bson:"rejection_reason,omitempty" json:"rejection_reason,omitempty"`
	IsDeleted       bool      `bson:"is_deleted" json:"is_deleted"`
	Comments        []Comment `bson:"comments" json:"comments"`
	CreatedAt       time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time `bson:"updated_at" json:"updated_at"`
}

// Comment is embedded in its note and immutable once created.
type Comment struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Content   string    `bson:"content" json:"content"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
