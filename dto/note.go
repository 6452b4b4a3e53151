package dto

import (
	"time"

	"tonotes/model"
)

// PagedNotes mirrors the page-mode envelope of the original API.
type PagedNotes struct {
	Data         []*model.Note `json:"data"`
	CurrentPage  int           `json:"currentPage"`
	TotalPages   int           `json:"totalPages"`
	TotalItems   int           `json:"totalItems"`
	ItemsPerPage int           `json:"itemsPerPage"`
}

// CursorNotes mirrors the cursor-mode envelope. NextCursor is null once
// the window reaches the end of the collection.
type CursorNotes struct {
	Data            []*model.Note `json:"data"`
	NextCursor      *string       `json:"nextCursor"`
	HasMore         bool          `json:"hasMore"`
	Total           int           `json:"total"`
	CurrentPageSize int           `json:"currentPageSize"`
}

type CommentRequest struct {
	NoteID  string `json:"noteId" binding:"required"`
	UserID  string `json:"userId" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// EnrichedComment is a comment plus its author's public profile bits.
type EnrichedComment struct {
	model.Comment
	UserInfo *CommentUserInfo `json:"user_info"`
}

type CommentUserInfo struct {
	Nickname string `json:"nickname"`
	Avatar   string `json:"avatar"`
}

// NoteDetail is a note whose comments carry commenter profiles.
type NoteDetail struct {
	model.Note
	Comments []EnrichedComment `json:"comments"`
}

type ModerationRequest struct {
	ID              string `json:"id" binding:"required"`
	RejectionReason string `json:"rejection_reason"`
}

type PublishedNote struct {
	NoteID    string    `json:"note_id"`
	Status    string    `json:"status"`
	Images    []string  `json:"image"`
	Video     string    `json:"video"`
	CreatedAt time.Time `json:"created_at"`
}
