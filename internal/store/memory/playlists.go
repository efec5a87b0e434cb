package memory

import (
	"context"
	"slices"
	"time"

	"soundwave/internal/models"
	"soundwave/internal/store"
)

func (s *Store) CreatePlaylist(_ context.Context, playlist *models.Playlist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.users[playlist.UserID]
	if !ok {
		return store.ErrNotFound
	}
	if _, exists := s.playlists[playlist.ID]; exists {
		return store.ErrConflict
	}

	s.stamp(&playlist.CreatedAt, &playlist.UpdatedAt)
	playlist.Songs = cloneStrings(playlist.Songs)
	s.playlists[playlist.ID] = record[models.Playlist]{seq: s.nextSeq(), value: clonePlaylist(*playlist)}

	owner.value.Playlists = append(cloneStrings(owner.value.Playlists), playlist.ID)
	owner.value.UpdatedAt = s.now()
	s.users[owner.value.ID] = owner
	return nil
}

func (s *Store) GetPlaylist(_ context.Context, id string) (*models.Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.playlists[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	playlist := clonePlaylist(r.value)
	return &playlist, nil
}

func (s *Store) ListPlaylistsByUser(_ context.Context, userID string) ([]models.Playlist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := sortedValues(s.playlists, func(p models.Playlist) time.Time { return p.CreatedAt })
	out := make([]models.Playlist, 0)
	for _, p := range all {
		if p.UserID == userID {
			out = append(out, clonePlaylist(p))
		}
	}
	return out, nil
}

func (s *Store) AddPlaylistSong(_ context.Context, playlistID, songID string) (*models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.playlists[playlistID]
	if !ok {
		return nil, store.ErrNotFound
	}
	if slices.Contains(r.value.Songs, songID) {
		return nil, store.ErrConflict
	}
	r.value.Songs = append(cloneStrings(r.value.Songs), songID)
	r.value.UpdatedAt = s.now()
	s.playlists[playlistID] = r

	playlist := clonePlaylist(r.value)
	return &playlist, nil
}

func (s *Store) RemovePlaylistSong(_ context.Context, playlistID, songID string) (*models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.playlists[playlistID]
	if !ok {
		return nil, store.ErrNotFound
	}
	idx := slices.Index(r.value.Songs, songID)
	if idx < 0 {
		return nil, store.ErrNotFound
	}
	r.value.Songs = slices.Delete(cloneStrings(r.value.Songs), idx, idx+1)
	r.value.UpdatedAt = s.now()
	s.playlists[playlistID] = r

	playlist := clonePlaylist(r.value)
	return &playlist, nil
}

func (s *Store) RenamePlaylist(_ context.Context, id, name string) (*models.Playlist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.playlists[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	r.value.Name = name
	r.value.UpdatedAt = s.now()
	s.playlists[id] = r

	playlist := clonePlaylist(r.value)
	return &playlist, nil
}

func (s *Store) DeletePlaylist(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.playlists[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.playlists, id)
	return nil
}

func (s *Store) CountPlaylists(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.playlists)), nil
}
