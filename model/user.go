package model

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	UserID           string    `bson:"user_id" json:"user_id"`
	Email            string    `bson:"email" json:"email" validate:"required,email"`
	Password         string    `bson:"password" json:"-"` // argon2id hash, never serialized
	Nickname         string    `bson:"nickname" json:"nickname" validate:"required,min=2,max=20"`
	Avatar           string    `bson:"avatar" json:"avatar"`
	Gender           string    `bson:"gender,omitempty" json:"gender"`
	Birthday         string    `bson:"birthday,omitempty" json:"birthday"`
	City             string    `bson:"city,omitempty" json:"city"`
	Signature        string    `bson:"signature,omitempty" json:"signature"`
	Follow           []string  `bson:"follow" json:"follow"`
	Fans             []string  `bson:"fans" json:"fans"`
	Role             string    `bson:"role" json:"role"`
	TwoFactorSecret  string    `bson:"two_factor_secret,omitempty" json:"-"`
	TwoFactorEnabled bool      `bson:"two_factor_enabled" json:"two_factor_enabled"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}
