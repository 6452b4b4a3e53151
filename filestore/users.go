package filestore

import (
	"context"
	"strings"
	"time"

	"tonotes/model"
	"tonotes/usecase"
)

func cloneUser(u *model.User) *model.User {
	out := *u
	out.Follow = append([]string{}, u.Follow...)
	out.Fans = append([]string{}, u.Fans...)
	return &out
}

func (s *Store) findUser(userID string) *model.User {
	for _, u := range s.data.Users {
		if u.UserID == userID {
			return u
		}
	}
	return nil
}

func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.data.Users {
		if u.UserID == user.UserID || u.Email == user.Email || u.Nickname == user.Nickname {
			return usecase.ErrConflict
		}
	}
	s.data.Users = append(s.data.Users, cloneUser(user))
	return s.save()
}

func (s *Store) FindUserByID(ctx context.Context, userID string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.findUser(userID)
	if u == nil {
		return nil, nil
	}
	return cloneUser(u), nil
}

func (s *Store) FindUserByNickname(ctx context.Context, nickname string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.data.Users {
		if u.Nickname == nickname {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (s *Store) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.data.Users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (s *Store) SearchByNickname(ctx context.Context, keyword string) ([]*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(keyword)
	users := []*model.User{}
	for _, u := range s.data.Users {
		if strings.Contains(strings.ToLower(u.Nickname), needle) {
			users = append(users, cloneUser(u))
		}
	}
	return users, nil
}

func (s *Store) UpdateProfile(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(user.UserID)
	if u == nil {
		return usecase.ErrNotFound
	}
	u.Nickname = user.Nickname
	u.Avatar = user.Avatar
	u.Gender = user.Gender
	u.Birthday = user.Birthday
	u.City = user.City
	u.Signature = user.Signature
	u.UpdatedAt = user.UpdatedAt
	return s.save()
}

func (s *Store) UpdatePassword(ctx context.Context, userID, hashedPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(userID)
	if u == nil {
		return usecase.ErrNotFound
	}
	u.Password = hashedPassword
	u.UpdatedAt = time.Now()
	return s.save()
}

func contains(items []string, v string) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}

func remove(items []string, v string) []string {
	out := items[:0]
	for _, item := range items {
		if item != v {
			out = append(out, item)
		}
	}
	return out
}

// Follow edges behave as sets: adding twice is a no-op, removing an
// absent edge is a no-op.
func (s *Store) AddFollow(ctx context.Context, userID, followID string) error {
	return s.mutateUser(userID, func(u *model.User) {
		if !contains(u.Follow, followID) {
			u.Follow = append(u.Follow, followID)
		}
	})
}

func (s *Store) AddFan(ctx context.Context, userID, fanID string) error {
	return s.mutateUser(userID, func(u *model.User) {
		if !contains(u.Fans, fanID) {
			u.Fans = append(u.Fans, fanID)
		}
	})
}

func (s *Store) RemoveFollow(ctx context.Context, userID, followID string) error {
	return s.mutateUser(userID, func(u *model.User) {
		u.Follow = remove(u.Follow, followID)
	})
}

func (s *Store) RemoveFan(ctx context.Context, userID, fanID string) error {
	return s.mutateUser(userID, func(u *model.User) {
		u.Fans = remove(u.Fans, fanID)
	})
}

func (s *Store) mutateUser(userID string, apply func(*model.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := s.findUser(userID)
	if u == nil {
		return usecase.ErrNotFound
	}
	apply(u)
	return s.save()
}

func (s *Store) SetTwoFactor(ctx context.Context, userID, secret string, enabled bool) error {
	return s.mutateUser(userID, func(u *model.User) {
		u.TwoFactorSecret = secret
		u.TwoFactorEnabled = enabled
	})
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data.Users), nil
}
