package filestore

import (
	"context"

	"tonotes/model"
)

func (s *Store) CreateSession(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	s.data.Sessions = append(s.data.Sessions, &copied)
	return s.save()
}

func (s *Store) GetUserActiveSessions(ctx context.Context, userID string) ([]*model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := []*model.Session{}
	for _, sess := range s.data.Sessions {
		if sess.UserID == userID && sess.IsActive {
			copied := *sess
			sessions = append(sessions, &copied)
		}
	}
	return sessions, nil
}

func (s *Store) EndUserSessions(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sess := range s.data.Sessions {
		if sess.UserID == userID {
			sess.IsActive = false
		}
	}
	return s.save()
}
