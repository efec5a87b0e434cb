package memory

import (
	"context"
	"time"

	"soundwave/internal/models"
	"soundwave/internal/store"
)

func (s *Store) CreateArtist(_ context.Context, artist *models.Artist) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.artists[artist.ID]; exists {
		return store.ErrConflict
	}
	s.stamp(&artist.CreatedAt, &artist.UpdatedAt)
	s.artists[artist.ID] = record[models.Artist]{seq: s.nextSeq(), value: *artist}
	return nil
}

func (s *Store) GetArtist(_ context.Context, id string) (*models.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.artists[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	artist := r.value
	return &artist, nil
}

func (s *Store) ListArtists(context.Context) ([]models.Artist, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedValues(s.artists, func(a models.Artist) time.Time { return a.CreatedAt }), nil
}

func (s *Store) UpdateArtist(_ context.Context, id, name, imageURL string) (*models.Artist, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.artists[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	r.value.Name = name
	r.value.ImageURL = imageURL
	r.value.UpdatedAt = s.now()
	s.artists[id] = r
	artist := r.value
	return &artist, nil
}

func (s *Store) DeleteArtist(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.artists[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.artists, id)
	return nil
}

func (s *Store) CountArtists(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.artists)), nil
}

func (s *Store) CreateAlbum(_ context.Context, album *models.Album) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.albums[album.ID]; exists {
		return store.ErrConflict
	}
	s.stamp(&album.CreatedAt, &album.UpdatedAt)
	album.Songs = cloneStrings(album.Songs)
	s.albums[album.ID] = record[models.Album]{seq: s.nextSeq(), value: cloneAlbum(*album)}
	return nil
}

func (s *Store) GetAlbum(_ context.Context, id string) (*models.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.albums[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	album := cloneAlbum(r.value)
	return &album, nil
}

func (s *Store) ListAlbums(context.Context) ([]models.Album, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	albums := sortedValues(s.albums, func(a models.Album) time.Time { return a.CreatedAt })
	for i := range albums {
		albums[i] = cloneAlbum(albums[i])
	}
	return albums, nil
}

func (s *Store) UpdateAlbum(_ context.Context, id, name, imageURL string) (*models.Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.albums[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	r.value.Name = name
	r.value.ImageURL = imageURL
	r.value.UpdatedAt = s.now()
	s.albums[id] = r
	album := cloneAlbum(r.value)
	return &album, nil
}

func (s *Store) PushAlbumSong(_ context.Context, albumID, songID string) (*models.Album, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.albums[albumID]
	if !ok {
		return nil, store.ErrNotFound
	}
	r.value.Songs = append(cloneStrings(r.value.Songs), songID)
	r.value.UpdatedAt = s.now()
	s.albums[albumID] = r
	album := cloneAlbum(r.value)
	return &album, nil
}

func (s *Store) DeleteAlbum(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.albums[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.albums, id)
	return nil
}

func (s *Store) CountAlbums(context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.albums)), nil
}
