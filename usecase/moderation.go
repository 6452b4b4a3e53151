package usecase

import (
	"context"
	"errors"
	"strings"

	"tonotes/model"
)

// ErrEmptyReason rejects a rejection without a stated reason; a rejected
// note must always carry one.
var ErrEmptyReason = errors.New("rejection reason is required")

// ModerationService drives the note status machine:
// pending -> approved | rejected, with repeated transitions allowed.
// Soft deletion is orthogonal to status.
type ModerationService struct {
	NoteRepo NoteRepository
}

// Queue lists non-deleted notes for the moderation console, optionally
// narrowed to one status.
func (svc *ModerationService) Queue(ctx context.Context, status string) ([]*model.Note, error) {
	return svc.NoteRepo.ListNotes(ctx, NoteFilter{Status: status})
}

// Approve sets status=approved and clears any earlier rejection reason.
func (svc *ModerationService) Approve(ctx context.Context, noteID string) error {
	err := svc.NoteRepo.UpdateStatus(ctx, noteID, model.StatusApproved, "")
	if errors.Is(err, ErrNotFound) {
		return ErrNoteNotFound
	}
	return err
}

// Reject sets status=rejected with a mandatory reason.
func (svc *ModerationService) Reject(ctx context.Context, noteID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrEmptyReason
	}
	err := svc.NoteRepo.UpdateStatus(ctx, noteID, model.StatusRejected, reason)
	if errors.Is(err, ErrNotFound) {
		return ErrNoteNotFound
	}
	return err
}

// Delete flags the note as deleted regardless of status. The record stays
// in storage but disappears from every read path.
func (svc *ModerationService) Delete(ctx context.Context, noteID string) error {
	err := svc.NoteRepo.MarkDeleted(ctx, noteID)
	if errors.Is(err, ErrNotFound) {
		return ErrNoteNotFound
	}
	return err
}
