package handler

import (
	"tonotes/usecase"
	"tonotes/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StatsHandler struct {
	NoteRepo usecase.NoteRepository
	UserRepo usecase.UserRepository
}

// GetStats reports note counts by status, the user count, and host
// resource usage.
func (h *StatsHandler) GetStats(c *gin.Context) {
	noteCounts, err := h.NoteRepo.CountByStatus(c.Request.Context())
	if err != nil {
		utils.Logger.Error("failed to count notes", zap.Error(err))
		utils.InternalError(c, "failed to collect stats")
		return
	}

	userCount, err := h.UserRepo.CountUsers(c.Request.Context())
	if err != nil {
		utils.Logger.Error("failed to count users", zap.Error(err))
		utils.InternalError(c, "failed to collect stats")
		return
	}

	utils.Success(c, gin.H{
		"notes":  noteCounts,
		"users":  userCount,
		"system": utils.CollectSystemStats(),
	})
}
