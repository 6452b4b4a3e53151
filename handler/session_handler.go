package handler

import (
	"tonotes/usecase"
	"tonotes/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SessionHandler struct {
	Sessions usecase.SessionRepository
}

// GetSessions lists the caller's active login sessions.
func (h *SessionHandler) GetSessions(c *gin.Context) {
	sessions, err := h.Sessions.GetUserActiveSessions(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.Logger.Error("failed to list sessions", zap.Error(err))
		utils.InternalError(c, "failed to load sessions")
		return
	}
	utils.Success(c, sessions)
}
