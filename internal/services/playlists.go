package services

import (
	"context"
	"errors"
	"strings"

	"soundwave/internal/models"
	"soundwave/internal/store"
	"soundwave/internal/utils"
)

// PlaylistStore is the persistence the playlist service needs.
type PlaylistStore interface {
	store.PlaylistStore
	store.SongStore
}

// Playlists manages user playlists and their song membership.
type Playlists struct {
	store PlaylistStore
}

func NewPlaylists(s PlaylistStore) *Playlists {
	return &Playlists{store: s}
}

const (
	playlistNotFound   = "Playlist not found"
	userNotFound       = "User not found"
	songNotInPlaylist  = "Song not found in playlist"
	songAlreadyInList  = "Song already exists in the playlist"
	playlistNameNeeded = "Playlist name is required"
)

// Create stores an empty playlist for userID and links it to the user.
func (p *Playlists) Create(ctx context.Context, userID, name string) (*models.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError(playlistNameNeeded)
	}
	if !utils.IsValidID(userID) {
		return nil, notFoundError(userNotFound)
	}

	playlist := &models.Playlist{
		ID:     utils.NewID(),
		Name:   name,
		UserID: userID,
		Songs:  []string{},
	}
	if err := p.store.CreatePlaylist(ctx, playlist); err != nil {
		return nil, storeError("create playlist", err, userNotFound)
	}
	return playlist, nil
}

// ListForUser returns the user's playlists with songs resolved. Songs that no
// longer exist are skipped. An unknown user simply has no playlists.
func (p *Playlists) ListForUser(ctx context.Context, userID string) ([]models.PopulatedPlaylist, error) {
	out := make([]models.PopulatedPlaylist, 0)
	if !utils.IsValidID(userID) {
		return out, nil
	}

	playlists, err := p.store.ListPlaylistsByUser(ctx, userID)
	if err != nil {
		return nil, internalError("list playlists", err)
	}
	for _, playlist := range playlists {
		songs, err := p.store.GetSongs(ctx, playlist.Songs)
		if err != nil {
			return nil, internalError("resolve playlist songs", err)
		}
		out = append(out, playlist.Populate(songs))
	}
	return out, nil
}

func (p *Playlists) get(ctx context.Context, playlistID string) (*models.Playlist, error) {
	if !utils.IsValidID(playlistID) {
		return nil, notFoundError(playlistNotFound)
	}
	playlist, err := p.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		return nil, storeError("get playlist", err, playlistNotFound)
	}
	return playlist, nil
}

// AddSong appends songID once. A second add of the same song is a conflict.
func (p *Playlists) AddSong(ctx context.Context, playlistID, songID string) (*models.Playlist, error) {
	if _, err := p.get(ctx, playlistID); err != nil {
		return nil, err
	}
	if !utils.IsValidID(songID) {
		return nil, notFoundError(songNotFound)
	}
	if _, err := p.store.GetSong(ctx, songID); err != nil {
		return nil, storeError("get song", err, songNotFound)
	}

	playlist, err := p.store.AddPlaylistSong(ctx, playlistID, songID)
	switch {
	case err == nil:
		return playlist, nil
	case errors.Is(err, store.ErrConflict):
		return nil, conflictError(songAlreadyInList)
	default:
		return nil, storeError("add playlist song", err, playlistNotFound)
	}
}

func (p *Playlists) RemoveSong(ctx context.Context, playlistID, songID string) (*models.Playlist, error) {
	if _, err := p.get(ctx, playlistID); err != nil {
		return nil, err
	}
	playlist, err := p.store.RemovePlaylistSong(ctx, playlistID, songID)
	if err != nil {
		return nil, storeError("remove playlist song", err, songNotInPlaylist)
	}
	return playlist, nil
}

// ListSongs resolves the playlist's songs in playlist order.
func (p *Playlists) ListSongs(ctx context.Context, playlistID string) ([]models.Song, error) {
	playlist, err := p.get(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	songs, err := p.store.GetSongs(ctx, playlist.Songs)
	if err != nil {
		return nil, internalError("resolve playlist songs", err)
	}
	return songs, nil
}

// Delete removes the playlist. The owner's playlist list keeps its id.
func (p *Playlists) Delete(ctx context.Context, playlistID string) error {
	if !utils.IsValidID(playlistID) {
		return notFoundError(playlistNotFound)
	}
	if err := p.store.DeletePlaylist(ctx, playlistID); err != nil {
		return storeError("delete playlist", err, playlistNotFound)
	}
	return nil
}

func (p *Playlists) Rename(ctx context.Context, playlistID, name string) (*models.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationError(playlistNameNeeded)
	}
	if !utils.IsValidID(playlistID) {
		return nil, notFoundError(playlistNotFound)
	}
	playlist, err := p.store.RenamePlaylist(ctx, playlistID, name)
	if err != nil {
		return nil, storeError("rename playlist", err, playlistNotFound)
	}
	return playlist, nil
}
