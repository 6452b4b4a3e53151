package handler

import (
	"errors"
	"time"

	"tonotes/dto"
	"tonotes/model"
	"tonotes/services"
	"tonotes/usecase"
	"tonotes/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Users    *usecase.UserService
	Sessions usecase.SessionRepository
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "email, nickname and a valid password are required")
		return
	}

	user, err := h.Users.Register(c.Request.Context(), req.Email, req.Nickname, req.Password)
	if err != nil {
		if errors.Is(err, usecase.ErrConflict) {
			utils.Conflict(c, "email or nickname already registered")
			return
		}
		utils.Logger.Error("registration failed", zap.Error(err))
		utils.InternalError(c, "registration failed")
		return
	}
	utils.Created(c, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "nickname and password are required")
		return
	}

	user, err := h.Users.Authenticate(c.Request.Context(), req.Nickname, req.Password, req.TwoFactorCode)
	if err != nil {
		utils.TrackAuthAttempt("failure", "password")
		switch {
		case errors.Is(err, usecase.ErrTwoFactorRequired):
			utils.Unauthorized(c, err.Error())
		case errors.Is(err, usecase.ErrInvalidTwoFactor):
			utils.Unauthorized(c, err.Error())
		case errors.Is(err, usecase.ErrInvalidCredentials):
			utils.Unauthorized(c, err.Error())
		default:
			utils.Logger.Error("login failed", zap.Error(err))
			utils.InternalError(c, "login failed")
		}
		return
	}

	accessToken, err := services.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		utils.Logger.Error("failed to issue access token", zap.Error(err))
		utils.InternalError(c, "failed to issue tokens")
		return
	}
	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.Logger.Error("failed to issue refresh token", zap.Error(err))
		utils.InternalError(c, "failed to issue tokens")
		return
	}

	h.recordSession(c, user.UserID)
	utils.TrackAuthAttempt("success", "password")

	utils.Success(c, &dto.LoginData{
		UserID:       user.UserID,
		Role:         user.Role,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// recordSession is bookkeeping only; a failed insert does not fail the
// login.
func (h *AuthHandler) recordSession(c *gin.Context, userID string) {
	now := time.Now()
	session := &model.Session{
		SessionID:      utils.GenerateID("session"),
		UserID:         userID,
		DeviceInfo:     utils.DescribeUserAgent(c.GetHeader("User-Agent")),
		IPAddress:      c.ClientIP(),
		CreatedAt:      now,
		ExpiresAt:      now.Add(services.AccessTokenTTL()),
		LastActivityAt: now,
		IsActive:       true,
	}
	if err := h.Sessions.CreateSession(c.Request.Context(), session); err != nil {
		utils.Logger.Warn("failed to record session",
			zap.String("user_id", userID), zap.Error(err))
	}
}

// Refresh rotates the token pair from a valid, non-blacklisted refresh
// token. The role is re-read from storage, not from the old token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "refresh_token is required")
		return
	}

	if services.IsTokenBlacklisted(req.RefreshToken) {
		utils.Unauthorized(c, "token has been invalidated")
		return
	}

	userID, err := services.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		utils.TrackAuthAttempt("failure", "refresh")
		utils.Unauthorized(c, "invalid refresh token")
		return
	}

	user, err := h.Users.UserRepo.FindUserByID(c.Request.Context(), userID)
	if err != nil || user == nil {
		utils.Unauthorized(c, "invalid refresh token")
		return
	}

	accessToken, err := services.GenerateAccessToken(user.UserID, user.Role)
	if err != nil {
		utils.InternalError(c, "failed to issue tokens")
		return
	}
	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "failed to issue tokens")
		return
	}

	utils.TrackAuthAttempt("success", "refresh")
	utils.Success(c, &dto.LoginData{
		UserID:       user.UserID,
		Role:         user.Role,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// Logout blacklists the current token pair and ends the caller's
// sessions.
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	_ = c.ShouldBindJSON(&req)

	accessToken := c.GetString("access_token")
	if err := services.BlacklistTokens(accessToken, req.RefreshToken); err != nil {
		utils.Logger.Error("failed to blacklist tokens", zap.Error(err))
		utils.InternalError(c, "logout failed")
		return
	}

	userID := c.GetString("user_id")
	if err := h.Sessions.EndUserSessions(c.Request.Context(), userID); err != nil {
		utils.Logger.Warn("failed to end sessions",
			zap.String("user_id", userID), zap.Error(err))
	}
	utils.Success(c, nil)
}

// EnableTwoFactor runs the two-step TOTP setup: without a code it
// provisions a secret, with a code it verifies and turns 2FA on.
func (h *AuthHandler) EnableTwoFactor(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.TwoFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		secret, url, err := h.Users.SetupTwoFactor(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, usecase.ErrUserNotFound) {
				utils.NotFound(c, "user not found")
				return
			}
			utils.Logger.Error("2fa setup failed", zap.Error(err))
			utils.InternalError(c, "failed to set up two-factor auth")
			return
		}
		utils.Success(c, gin.H{"secret": secret, "otpauth_url": url})
		return
	}

	if err := h.Users.ConfirmTwoFactor(c.Request.Context(), userID, req.Code); err != nil {
		if errors.Is(err, usecase.ErrInvalidTwoFactor) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, "failed to enable two-factor auth")
		return
	}
	utils.Success(c, gin.H{"two_factor_enabled": true})
}

func (h *AuthHandler) DisableTwoFactor(c *gin.Context) {
	var req dto.TwoFactorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "code is required")
		return
	}

	if err := h.Users.DisableTwoFactor(c.Request.Context(), c.GetString("user_id"), req.Code); err != nil {
		if errors.Is(err, usecase.ErrInvalidTwoFactor) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, "failed to disable two-factor auth")
		return
	}
	utils.Success(c, gin.H{"two_factor_enabled": false})
}
