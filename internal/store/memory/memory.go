// Package memory implements store.Store with in-process maps. It is safe for
// concurrent use and intended for development and tests.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"soundwave/internal/models"
	"soundwave/internal/store"
)

type record[T any] struct {
	seq   int64
	value T
}

// Store keeps every collection behind a single RWMutex so multi-record
// writes (playlist create + owner link) are applied atomically.
type Store struct {
	mu        sync.RWMutex
	seq       int64
	now       func() time.Time
	users     map[string]record[models.User]
	artists   map[string]record[models.Artist]
	albums    map[string]record[models.Album]
	songs     map[string]record[models.Song]
	playlists map[string]record[models.Playlist]
}

var _ store.Store = (*Store)(nil)

// New constructs an empty in-memory store.
func New() *Store {
	return &Store{
		now:       func() time.Time { return time.Now().UTC() },
		users:     make(map[string]record[models.User]),
		artists:   make(map[string]record[models.Artist]),
		albums:    make(map[string]record[models.Album]),
		songs:     make(map[string]record[models.Song]),
		playlists: make(map[string]record[models.Playlist]),
	}
}

// Ping always reports success for the in-memory store.
func (s *Store) Ping(context.Context) error {
	return nil
}

// Close is a no-op.
func (s *Store) Close(context.Context) error {
	return nil
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// stamp fills zero timestamps, leaving caller-provided ones untouched.
func (s *Store) stamp(createdAt, updatedAt *time.Time) {
	now := s.now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	if updatedAt.IsZero() {
		*updatedAt = *createdAt
	}
}

func sortedValues[T any](m map[string]record[T], createdAt func(T) time.Time) []T {
	records := make([]record[T], 0, len(m))
	for _, r := range m {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		ci, cj := createdAt(records[i].value), createdAt(records[j].value)
		if !ci.Equal(cj) {
			return ci.Before(cj)
		}
		return records[i].seq < records[j].seq
	})
	out := make([]T, 0, len(records))
	for _, r := range records {
		out = append(out, r.value)
	}
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return []string{}
	}
	return slices.Clone(in)
}

func cloneUser(u models.User) models.User {
	u.Playlists = cloneStrings(u.Playlists)
	return u
}

func cloneAlbum(a models.Album) models.Album {
	a.Songs = cloneStrings(a.Songs)
	return a
}

func cloneSong(song models.Song) models.Song {
	song.Likes = cloneStrings(song.Likes)
	if song.Comments == nil {
		song.Comments = []models.Comment{}
	} else {
		song.Comments = slices.Clone(song.Comments)
	}
	return song
}

func clonePlaylist(p models.Playlist) models.Playlist {
	p.Songs = cloneStrings(p.Songs)
	return p
}
