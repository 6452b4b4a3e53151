package usecase

import (
	"context"
	"errors"

	"tonotes/model"
)

// Storage errors shared by every backend. Handlers translate these into
// HTTP statuses in one place.
var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

// NoteFilter narrows a listing. Deleted notes are never returned by any
// repository method; soft-deleted records only exist in storage.
type NoteFilter struct {
	Status string // empty = any status
	UserID string // empty = any author
}

// NoteRepository is the storage contract for travel notes. Implementations
// return results in stable creation order so pagination windows line up
// across calls.
type NoteRepository interface {
	CreateNote(ctx context.Context, note *model.Note) error
	GetNote(ctx context.Context, noteID string) (*model.Note, error)
	ListNotes(ctx context.Context, filter NoteFilter) ([]*model.Note, error)
	SearchByTitle(ctx context.Context, keyword string) ([]*model.Note, error)
	AppendComment(ctx context.Context, noteID string, comment *model.Comment) error
	UpdateStatus(ctx context.Context, noteID, status, reason string) error
	MarkDeleted(ctx context.Context, noteID string) error
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	FindUserByID(ctx context.Context, userID string) (*model.User, error)
	FindUserByNickname(ctx context.Context, nickname string) (*model.User, error)
	FindUserByEmail(ctx context.Context, email string) (*model.User, error)
	SearchByNickname(ctx context.Context, keyword string) ([]*model.User, error)
	UpdateProfile(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, userID, hashedPassword string) error
	AddFollow(ctx context.Context, userID, followID string) error
	AddFan(ctx context.Context, userID, fanID string) error
	RemoveFollow(ctx context.Context, userID, followID string) error
	RemoveFan(ctx context.Context, userID, fanID string) error
	SetTwoFactor(ctx context.Context, userID, secret string, enabled bool) error
	CountUsers(ctx context.Context) (int, error)
}

type SessionRepository interface {
	CreateSession(ctx context.Context, session *model.Session) error
	GetUserActiveSessions(ctx context.Context, userID string) ([]*model.Session, error)
	EndUserSessions(ctx context.Context, userID string) error
}
