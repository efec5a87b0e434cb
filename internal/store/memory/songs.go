package memory

import (
	"context"
	"slices"
	"time"

	"soundwave/internal/models"
	"soundwave/internal/store"
)

func (s *Store) CreateSong(_ context.Context, song *models.Song) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.songs[song.ID]; exists {
		return store.ErrConflict
	}
	s.stamp(&song.CreatedAt, &song.UpdatedAt)
	*song = cloneSong(*song)
	s.songs[song.ID] = record[models.Song]{seq: s.nextSeq(), value: cloneSong(*song)}
	return nil
}

func (s *Store) GetSong(_ context.Context, id string) (*models.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.songs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	song := cloneSong(r.value)
	return &song, nil
}

func (s *Store) GetSongs(_ context.Context, ids []string) ([]models.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	songs := make([]models.Song, 0, len(ids))
	for _, id := range ids {
		if r, ok := s.songs[id]; ok {
			songs = append(songs, cloneSong(r.value))
		}
	}
	return songs, nil
}

func (s *Store) ListSongs(context.Context) ([]models.Song, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	songs := sortedValues(s.songs, func(song models.Song) time.Time { return song.CreatedAt })
	for i := range songs {
		songs[i] = cloneSong(songs[i])
	}
	return songs, nil
}

func (s *Store) UpdateSong(_ context.Context, id string, fields models.SongFields) (*models.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.songs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	song := cloneSong(r.value)
	song.Name = fields.Name
	song.ImageURL = fields.ImageURL
	song.SongURL = fields.SongURL
	song.Artist = fields.Artist
	song.Album = fields.Album
	song.ArtistID = fields.ArtistID
	song.AlbumID = fields.AlbumID
	song.Language = fields.Language
	song.Genre = fields.Genre
	song.UpdatedAt = s.now()
	r.value = song
	s.songs[id] = r

	out := cloneSong(song)
	return &out, nil
}

func (s *Store) DeleteSong(_ context.Context, id string) (*models.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.songs[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	delete(s.songs, id)
	song := cloneSong(r.value)
	return &song, nil
}

func (s *Store) ToggleLike(_ context.Context, songID, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.songs[songID]
	if !ok {
		return false, store.ErrNotFound
	}

	likes := cloneStrings(r.value.Likes)
	liked := false
	if idx := slices.Index(likes, userID); idx >= 0 {
		likes = slices.Delete(likes, idx, idx+1)
	} else {
		likes = append(likes, userID)
		liked = true
	}
	r.value.Likes = likes
	r.value.UpdatedAt = s.now()
	s.songs[songID] = r
	return liked, nil
}

func (s *Store) AppendComment(_ context.Context, songID string, comment models.Comment) (*models.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.songs[songID]
	if !ok {
		return nil, store.ErrNotFound
	}
	song := cloneSong(r.value)
	song.Comments = append(song.Comments, comment)
	song.UpdatedAt = s.now()
	r.value = song
	s.songs[songID] = r

	out := cloneSong(song)
	return &out, nil
}

func (s *Store) CountSongs(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.songs)), nil
}
