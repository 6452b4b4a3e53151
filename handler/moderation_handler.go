package handler

import (
	"errors"

	"tonotes/dto"
	"tonotes/usecase"
	"tonotes/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ModerationHandler struct {
	Moderation *usecase.ModerationService
}

// Queue lists the moderation queue, optionally narrowed by status.
func (h *ModerationHandler) Queue(c *gin.Context) {
	notes, err := h.Moderation.Queue(c.Request.Context(), c.Query("status"))
	if err != nil {
		utils.Logger.Error("failed to load moderation queue", zap.Error(err))
		utils.InternalError(c, "failed to load notes")
		return
	}
	utils.Success(c, notes)
}

func (h *ModerationHandler) Approve(c *gin.Context) {
	var req dto.ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "note id is required")
		return
	}

	if err := h.Moderation.Approve(c.Request.Context(), req.ID); err != nil {
		h.failTransition(c, err)
		return
	}
	utils.TrackModeration("approve")
	utils.Success(c, nil)
}

func (h *ModerationHandler) Reject(c *gin.Context) {
	var req dto.ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "note id is required")
		return
	}

	if err := h.Moderation.Reject(c.Request.Context(), req.ID, req.RejectionReason); err != nil {
		h.failTransition(c, err)
		return
	}
	utils.TrackModeration("reject")
	utils.Success(c, nil)
}

func (h *ModerationHandler) Delete(c *gin.Context) {
	var req dto.ModerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "note id is required")
		return
	}

	if err := h.Moderation.Delete(c.Request.Context(), req.ID); err != nil {
		h.failTransition(c, err)
		return
	}
	utils.TrackModeration("delete")
	utils.Success(c, nil)
}

func (h *ModerationHandler) failTransition(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrEmptyReason):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, usecase.ErrNoteNotFound):
		utils.NotFound(c, "note not found")
	default:
		utils.Logger.Error("moderation transition failed", zap.Error(err))
		utils.InternalError(c, "moderation operation failed")
	}
}
