package handler

import (
	"context"
	"errors"

	"tonotes/dto"
	"tonotes/usecase"
	"tonotes/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	Users *usecase.UserService
}

// GetUser serves a public profile with the user's notes.
func (h *UserHandler) GetUser(c *gin.Context) {
	userID := c.Query("id")
	if userID == "" {
		utils.BadRequest(c, "user id is required")
		return
	}

	profile, err := h.Users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			utils.NotFound(c, "user not found")
			return
		}
		utils.Logger.Error("failed to load profile", zap.Error(err))
		utils.InternalError(c, "failed to load user")
		return
	}
	utils.Success(c, profile)
}

// UpdateUser modifies the caller's own profile, optionally changing the
// password when both password fields are present.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	err := h.Users.UpdateUser(c.Request.Context(), c.GetString("user_id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			utils.NotFound(c, "user not found")
		case errors.Is(err, usecase.ErrWrongPassword):
			utils.BadRequest(c, err.Error())
		case errors.Is(err, usecase.ErrConflict):
			utils.Conflict(c, "nickname already taken")
		default:
			utils.BadRequest(c, err.Error())
		}
		return
	}
	utils.Success(c, nil)
}

func (h *UserHandler) Follow(c *gin.Context) {
	h.changeFollow(c, h.Users.Follow)
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	h.changeFollow(c, h.Users.Unfollow)
}

func (h *UserHandler) changeFollow(c *gin.Context, apply func(ctx context.Context, userID, followID string) error) {
	var req dto.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "userId and followId are required")
		return
	}

	if err := apply(c.Request.Context(), req.UserID, req.FollowID); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			utils.NotFound(c, "user not found")
			return
		}
		utils.Logger.Error("failed to update follow edge", zap.Error(err))
		utils.InternalError(c, "failed to update follow relationship")
		return
	}
	utils.Success(c, nil)
}

// IsFollowing reports whether userId currently follows followId.
func (h *UserHandler) IsFollowing(c *gin.Context) {
	userID := c.Query("userId")
	followID := c.Query("followId")
	if userID == "" || followID == "" {
		utils.BadRequest(c, "userId and followId are required")
		return
	}

	following, err := h.Users.IsFollowing(c.Request.Context(), userID, followID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			utils.NotFound(c, "user not found")
			return
		}
		utils.Logger.Error("failed to check follow edge", zap.Error(err))
		utils.InternalError(c, "failed to check follow relationship")
		return
	}
	utils.Success(c, gin.H{"isFollowing": following})
}
