package filestore

import (
	"context"
	"strings"
	"time"

	"tonotes/model"
	"tonotes/usecase"
)

func cloneNote(n *model.Note) *model.Note {
	out := *n
	out.Images = append([]string{}, n.Images...)
	out.Comments = append([]model.Comment{}, n.Comments...)
	return &out
}

func (s *Store) findNote(noteID string) *model.Note {
	for _, n := range s.data.Notes {
		if n.ID == noteID {
			return n
		}
	}
	return nil
}

func (s *Store) CreateNote(ctx context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findNote(note.ID) != nil {
		return usecase.ErrConflict
	}
	s.data.Notes = append(s.data.Notes, cloneNote(note))
	return s.save()
}

func (s *Store) GetNote(ctx context.Context, noteID string) (*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := s.findNote(noteID)
	if n == nil {
		return nil, nil
	}
	return cloneNote(n), nil
}

// ListNotes preserves document order, which is creation order, so page
// and cursor windows stay stable across calls.
func (s *Store) ListNotes(ctx context.Context, filter usecase.NoteFilter) ([]*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := []*model.Note{}
	for _, n := range s.data.Notes {
		if n.IsDeleted {
			continue
		}
		if filter.Status != "" && n.Status != filter.Status {
			continue
		}
		if filter.UserID != "" && n.UserID != filter.UserID {
			continue
		}
		notes = append(notes, cloneNote(n))
	}
	return notes, nil
}

func (s *Store) SearchByTitle(ctx context.Context, keyword string) ([]*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(keyword)
	notes := []*model.Note{}
	for _, n := range s.data.Notes {
		if n.IsDeleted {
			continue
		}
		if strings.Contains(strings.ToLower(n.Title), needle) {
			notes = append(notes, cloneNote(n))
		}
	}
	return notes, nil
}

func (s *Store) AppendComment(ctx context.Context, noteID string, comment *model.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.findNote(noteID)
	if n == nil || n.IsDeleted {
		return usecase.ErrNotFound
	}
	n.Comments = append(n.Comments, *comment)
	n.UpdatedAt = time.Now()
	return s.save()
}

func (s *Store) UpdateStatus(ctx context.Context, noteID, status, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.findNote(noteID)
	if n == nil {
		return usecase.ErrNotFound
	}
	n.Status = status
	if status == model.StatusRejected {
		n.RejectionReason = reason
	} else {
		n.RejectionReason = ""
	}
	n.UpdatedAt = time.Now()
	return s.save()
}

func (s *Store) MarkDeleted(ctx context.Context, noteID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.findNote(noteID)
	if n == nil {
		return usecase.ErrNotFound
	}
	n.IsDeleted = true
	n.UpdatedAt = time.Now()
	return s.save()
}

func (s *Store) CountByStatus(ctx context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := map[string]int{
		model.StatusPending:  0,
		model.StatusApproved: 0,
		model.StatusRejected: 0,
	}
	for _, n := range s.data.Notes {
		if n.IsDeleted {
			continue
		}
		counts[n.Status]++
	}
	return counts, nil
}
