package handler

import (
	"errors"
	"strconv"

	"tonotes/dto"
	"tonotes/services"
	"tonotes/usecase"
	"tonotes/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type NotesHandler struct {
	Notes   *usecase.NoteService
	Uploads *services.UploadStore
}

// GetFeed serves the public feed in page or cursor mode. Anything other
// than type=cursor falls back to page mode.
func (h *NotesHandler) GetFeed(c *gin.Context) {
	opts := usecase.FeedOptions{
		Status: c.Query("status"),
		Cursor: c.Query("cursor"),
		Mode:   usecase.FeedModePage,
	}
	if c.Query("type") == usecase.FeedModeCursor {
		opts.Mode = usecase.FeedModeCursor
	}
	opts.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	opts.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(usecase.DefaultPageSize)))

	result, err := h.Notes.GetFeed(c.Request.Context(), opts)
	if err != nil {
		if errors.Is(err, usecase.ErrCursorNotFound) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.Logger.Error("failed to load feed", zap.Error(err))
		utils.InternalError(c, "failed to load notes")
		return
	}
	utils.Success(c, result)
}

func (h *NotesHandler) GetNoteDetail(c *gin.Context) {
	noteID := c.Query("id")
	if noteID == "" {
		utils.BadRequest(c, "note id is required")
		return
	}

	detail, err := h.Notes.GetNoteDetail(c.Request.Context(), noteID)
	if err != nil {
		if errors.Is(err, usecase.ErrNoteNotFound) {
			utils.NotFound(c, "note not found")
			return
		}
		utils.Logger.Error("failed to load note detail", zap.Error(err))
		utils.InternalError(c, "failed to load note")
		return
	}
	utils.Success(c, detail)
}

func (h *NotesHandler) Search(c *gin.Context) {
	notes, err := h.Notes.Search(c.Request.Context(), c.Query("keyword"))
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyKeyword):
			utils.BadRequest(c, err.Error())
		case errors.Is(err, usecase.ErrNoSearchResult):
			utils.NotFound(c, err.Error())
		default:
			utils.Logger.Error("search failed", zap.Error(err))
			utils.InternalError(c, "search failed")
		}
		return
	}
	utils.Success(c, notes)
}

func (h *NotesHandler) AddComment(c *gin.Context) {
	var req dto.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "noteId, userId and comment are required")
		return
	}

	comment, err := h.Notes.AddComment(c.Request.Context(), req.NoteID, req.UserID, req.Comment)
	if err != nil {
		if errors.Is(err, usecase.ErrNoteNotFound) {
			utils.NotFound(c, "note not found")
			return
		}
		utils.Logger.Error("failed to add comment", zap.Error(err))
		utils.InternalError(c, "failed to add comment")
		return
	}
	utils.Created(c, comment)
}

// Publish accepts a multipart form with title, content, location, any
// number of image files and at most one video file.
func (h *NotesHandler) Publish(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequest(c, "multipart form is required")
		return
	}

	imageURLs, videoURL, err := h.Uploads.SaveNoteFiles(form.File["image"], form.File["video"])
	if err != nil {
		if errors.Is(err, services.ErrMultipleVideos) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.Logger.Error("failed to store uploads", zap.Error(err))
		utils.InternalError(c, "failed to store uploaded files")
		return
	}

	note, err := h.Notes.Publish(c.Request.Context(), usecase.PublishInput{
		UserID:   c.GetString("user_id"),
		Title:    c.PostForm("title"),
		Content:  c.PostForm("content"),
		Location: c.PostForm("location"),
		Images:   imageURLs,
		Video:    videoURL,
	})
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, &dto.PublishedNote{
		NoteID:    note.ID,
		Status:    note.Status,
		Images:    note.Images,
		Video:     note.Video,
		CreatedAt: note.CreatedAt,
	})
}
