package memory

import (
	"context"

	"soundwave/internal/models"
	"soundwave/internal/store"
)

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.ID]; exists {
		return store.ErrConflict
	}
	for _, r := range s.users {
		if r.value.Email == user.Email {
			return store.ErrConflict
		}
	}

	s.stamp(&user.CreatedAt, &user.UpdatedAt)
	user.Playlists = cloneStrings(user.Playlists)
	s.users[user.ID] = record[models.User]{seq: s.nextSeq(), value: cloneUser(*user)}
	return nil
}

func (s *Store) GetUser(_ context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	user := cloneUser(r.value)
	return &user, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.users {
		if r.value.Email == email {
			user := cloneUser(r.value)
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) UpdatePassword(_ context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	r.value.Password = passwordHash
	r.value.UpdatedAt = s.now()
	s.users[id] = r
	return nil
}

func (s *Store) CountUsers(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.users)), nil
}
