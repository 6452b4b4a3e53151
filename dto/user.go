package dto

import "tonotes/model"

// UserProfile is a user plus their authored notes, the shape served by
// GET /api/user.
type UserProfile struct {
	model.User
	Notes []*model.Note `json:"notes"`
}

// UpdateUserRequest updates profile fields, or changes the password when
// both password fields are present. Zero-valued fields are left untouched.
type UpdateUserRequest struct {
	Nickname    string `json:"nickname"`
	Avatar      string `json:"avatar"`
	Gender      string `json:"gender"`
	Birthday    string `json:"birthday"`
	City        string `json:"city"`
	Signature   string `json:"signature"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type FollowRequest struct {
	UserID   string `json:"userId" binding:"required"`
	FollowID string `json:"followId" binding:"required"`
}
