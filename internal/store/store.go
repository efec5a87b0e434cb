// Package store declares the persistence contracts used by the services.
//
// Each entity gets its own interface; a backend (memory, mongostore, postgres)
// implements all of them and is handed to the services as a Store.
package store

import (
	"context"
	"errors"

	"soundwave/internal/models"
)

var (
	// ErrNotFound is returned when the addressed record (or array member) is absent.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a uniqueness rule would be broken.
	ErrConflict = errors.New("record already exists")
)

type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	CountUsers(ctx context.Context) (int64, error)
}

type ArtistStore interface {
	CreateArtist(ctx context.Context, artist *models.Artist) error
	GetArtist(ctx context.Context, id string) (*models.Artist, error)
	ListArtists(ctx context.Context) ([]models.Artist, error)
	UpdateArtist(ctx context.Context, id, name, imageURL string) (*models.Artist, error)
	DeleteArtist(ctx context.Context, id string) error
	CountArtists(ctx context.Context) (int64, error)
}

type AlbumStore interface {
	CreateAlbum(ctx context.Context, album *models.Album) error
	GetAlbum(ctx context.Context, id string) (*models.Album, error)
	ListAlbums(ctx context.Context) ([]models.Album, error)
	UpdateAlbum(ctx context.Context, id, name, imageURL string) (*models.Album, error)
	// PushAlbumSong appends songID without checking for duplicates.
	PushAlbumSong(ctx context.Context, albumID, songID string) (*models.Album, error)
	DeleteAlbum(ctx context.Context, id string) error
	CountAlbums(ctx context.Context) (int64, error)
}

type SongStore interface {
	CreateSong(ctx context.Context, song *models.Song) error
	GetSong(ctx context.Context, id string) (*models.Song, error)
	// GetSongs returns the songs for ids in the order given, skipping ids
	// that do not resolve.
	GetSongs(ctx context.Context, ids []string) ([]models.Song, error)
	ListSongs(ctx context.Context) ([]models.Song, error)
	UpdateSong(ctx context.Context, id string, fields models.SongFields) (*models.Song, error)
	// DeleteSong removes the song and returns it as it was.
	DeleteSong(ctx context.Context, id string) (*models.Song, error)
	// ToggleLike flips userID's membership in the song's likes and reports
	// whether the user likes the song afterwards.
	ToggleLike(ctx context.Context, songID, userID string) (bool, error)
	AppendComment(ctx context.Context, songID string, comment models.Comment) (*models.Song, error)
	CountSongs(ctx context.Context) (int64, error)
}

type PlaylistStore interface {
	// CreatePlaylist stores the playlist and appends its id to the owner's
	// playlist list. ErrNotFound means the owner does not exist.
	CreatePlaylist(ctx context.Context, playlist *models.Playlist) error
	GetPlaylist(ctx context.Context, id string) (*models.Playlist, error)
	ListPlaylistsByUser(ctx context.Context, userID string) ([]models.Playlist, error)
	// AddPlaylistSong returns ErrConflict when songID is already a member.
	AddPlaylistSong(ctx context.Context, playlistID, songID string) (*models.Playlist, error)
	// RemovePlaylistSong returns ErrNotFound when songID is not a member.
	RemovePlaylistSong(ctx context.Context, playlistID, songID string) (*models.Playlist, error)
	RenamePlaylist(ctx context.Context, id, name string) (*models.Playlist, error)
	DeletePlaylist(ctx context.Context, id string) error
	CountPlaylists(ctx context.Context) (int64, error)
}

// Store is the full persistence surface of one backend.
type Store interface {
	UserStore
	ArtistStore
	AlbumStore
	SongStore
	PlaylistStore

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
