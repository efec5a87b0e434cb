package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"soundwave/internal/models"
	"soundwave/internal/store"
	"soundwave/internal/utils"
)

// CatalogStore is the persistence the catalog needs.
type CatalogStore interface {
	store.ArtistStore
	store.AlbumStore
	store.SongStore
}

// Catalog runs artist, album and song CRUD plus likes and comments.
type Catalog struct {
	store CatalogStore
	now   func() time.Time
}

func NewCatalog(s CatalogStore) *Catalog {
	return &Catalog{
		store: s,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// EntryInput is the writable part of an artist or album.
type EntryInput struct {
	Name     string
	ImageURL string
}

func (in EntryInput) normalize() (EntryInput, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.ImageURL = strings.TrimSpace(in.ImageURL)
	if in.Name == "" || in.ImageURL == "" {
		return in, validationError(allFieldsRequired)
	}
	return in, nil
}

const (
	artistNotFound = "Artist not found"
	albumNotFound  = "Album not found"
	songNotFound   = "Song not found"
)

func (c *Catalog) SaveArtist(ctx context.Context, in EntryInput) (*models.Artist, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	artist := &models.Artist{ID: utils.NewID(), Name: in.Name, ImageURL: in.ImageURL}
	if err := c.store.CreateArtist(ctx, artist); err != nil {
		return nil, internalError("create artist", err)
	}
	return artist, nil
}

func (c *Catalog) GetArtist(ctx context.Context, id string) (*models.Artist, error) {
	if !utils.IsValidID(id) {
		return nil, notFoundError(artistNotFound)
	}
	artist, err := c.store.GetArtist(ctx, id)
	if err != nil {
		return nil, storeError("get artist", err, artistNotFound)
	}
	return artist, nil
}

func (c *Catalog) ListArtists(ctx context.Context) ([]models.Artist, error) {
	artists, err := c.store.ListArtists(ctx)
	if err != nil {
		return nil, internalError("list artists", err)
	}
	return artists, nil
}

func (c *Catalog) UpdateArtist(ctx context.Context, id string, in EntryInput) (*models.Artist, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	if !utils.IsValidID(id) {
		return nil, notFoundError(artistNotFound)
	}
	artist, err := c.store.UpdateArtist(ctx, id, in.Name, in.ImageURL)
	if err != nil {
		return nil, storeError("update artist", err, artistNotFound)
	}
	return artist, nil
}

func (c *Catalog) DeleteArtist(ctx context.Context, id string) error {
	if !utils.IsValidID(id) {
		return notFoundError(artistNotFound)
	}
	if err := c.store.DeleteArtist(ctx, id); err != nil {
		return storeError("delete artist", err, artistNotFound)
	}
	return nil
}

func (c *Catalog) SaveAlbum(ctx context.Context, in EntryInput) (*models.Album, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	album := &models.Album{ID: utils.NewID(), Name: in.Name, ImageURL: in.ImageURL, Songs: []string{}}
	if err := c.store.CreateAlbum(ctx, album); err != nil {
		return nil, internalError("create album", err)
	}
	return album, nil
}

func (c *Catalog) GetAlbum(ctx context.Context, id string) (*models.Album, error) {
	if !utils.IsValidID(id) {
		return nil, notFoundError(albumNotFound)
	}
	album, err := c.store.GetAlbum(ctx, id)
	if err != nil {
		return nil, storeError("get album", err, albumNotFound)
	}
	return album, nil
}

func (c *Catalog) ListAlbums(ctx context.Context) ([]models.Album, error) {
	albums, err := c.store.ListAlbums(ctx)
	if err != nil {
		return nil, internalError("list albums", err)
	}
	return albums, nil
}

func (c *Catalog) UpdateAlbum(ctx context.Context, id string, in EntryInput) (*models.Album, error) {
	in, err := in.normalize()
	if err != nil {
		return nil, err
	}
	if !utils.IsValidID(id) {
		return nil, notFoundError(albumNotFound)
	}
	album, err := c.store.UpdateAlbum(ctx, id, in.Name, in.ImageURL)
	if err != nil {
		return nil, storeError("update album", err, albumNotFound)
	}
	return album, nil
}

func (c *Catalog) DeleteAlbum(ctx context.Context, id string) error {
	if !utils.IsValidID(id) {
		return notFoundError(albumNotFound)
	}
	if err := c.store.DeleteAlbum(ctx, id); err != nil {
		return storeError("delete album", err, albumNotFound)
	}
	return nil
}

// AddSongToAlbum appends songID to the album. Duplicates are kept and the
// song itself is not looked up.
func (c *Catalog) AddSongToAlbum(ctx context.Context, albumID, songID string) (*models.Album, error) {
	songID = strings.TrimSpace(songID)
	if songID == "" {
		return nil, validationError(allFieldsRequired)
	}
	if !utils.IsValidID(albumID) {
		return nil, notFoundError(albumNotFound)
	}
	album, err := c.store.PushAlbumSong(ctx, albumID, songID)
	if err != nil {
		return nil, storeError("push album song", err, albumNotFound)
	}
	return album, nil
}

func normalizeSong(fields models.SongFields) models.SongFields {
	fields.Name = strings.TrimSpace(fields.Name)
	fields.ImageURL = strings.TrimSpace(fields.ImageURL)
	fields.SongURL = strings.TrimSpace(fields.SongURL)
	fields.Artist = strings.TrimSpace(fields.Artist)
	fields.Album = strings.TrimSpace(fields.Album)
	fields.ArtistID = strings.TrimSpace(fields.ArtistID)
	fields.AlbumID = strings.TrimSpace(fields.AlbumID)
	fields.Language = strings.TrimSpace(fields.Language)
	fields.Genre = strings.TrimSpace(fields.Genre)
	return fields
}

// checkSong validates required fields and the optional artist/album
// references.
func (c *Catalog) checkSong(ctx context.Context, fields models.SongFields) error {
	if fields.Name == "" || fields.ImageURL == "" || fields.SongURL == "" ||
		fields.Artist == "" || fields.Language == "" {
		return validationError(allFieldsRequired)
	}

	if fields.ArtistID != "" {
		if err := c.referenceExists(ctx, fields.ArtistID, "Referenced artist does not exist", func(ctx context.Context, id string) error {
			_, err := c.store.GetArtist(ctx, id)
			return err
		}); err != nil {
			return err
		}
	}
	if fields.AlbumID != "" {
		if err := c.referenceExists(ctx, fields.AlbumID, "Referenced album does not exist", func(ctx context.Context, id string) error {
			_, err := c.store.GetAlbum(ctx, id)
			return err
		}); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) referenceExists(ctx context.Context, id, msg string, lookup func(context.Context, string) error) error {
	if !utils.IsValidID(id) {
		return validationError(msg)
	}
	err := lookup(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return validationError(msg)
	default:
		return internalError("check reference", err)
	}
}

func (c *Catalog) SaveSong(ctx context.Context, fields models.SongFields) (*models.Song, error) {
	fields = normalizeSong(fields)
	if err := c.checkSong(ctx, fields); err != nil {
		return nil, err
	}

	song := &models.Song{
		ID:       utils.NewID(),
		Name:     fields.Name,
		ImageURL: fields.ImageURL,
		SongURL:  fields.SongURL,
		Artist:   fields.Artist,
		Album:    fields.Album,
		ArtistID: fields.ArtistID,
		AlbumID:  fields.AlbumID,
		Language: fields.Language,
		Genre:    fields.Genre,
		Likes:    []string{},
		Comments: []models.Comment{},
	}
	if err := c.store.CreateSong(ctx, song); err != nil {
		return nil, internalError("create song", err)
	}
	return song, nil
}

func (c *Catalog) GetSong(ctx context.Context, id string) (*models.Song, error) {
	if !utils.IsValidID(id) {
		return nil, notFoundError(songNotFound)
	}
	song, err := c.store.GetSong(ctx, id)
	if err != nil {
		return nil, storeError("get song", err, songNotFound)
	}
	return song, nil
}

func (c *Catalog) ListSongs(ctx context.Context) ([]models.Song, error) {
	songs, err := c.store.ListSongs(ctx)
	if err != nil {
		return nil, internalError("list songs", err)
	}
	return songs, nil
}

func (c *Catalog) UpdateSong(ctx context.Context, id string, fields models.SongFields) (*models.Song, error) {
	fields = normalizeSong(fields)
	if err := c.checkSong(ctx, fields); err != nil {
		return nil, err
	}
	if !utils.IsValidID(id) {
		return nil, notFoundError(songNotFound)
	}
	song, err := c.store.UpdateSong(ctx, id, fields)
	if err != nil {
		return nil, storeError("update song", err, songNotFound)
	}
	return song, nil
}

func (c *Catalog) DeleteSong(ctx context.Context, id string) (*models.Song, error) {
	if !utils.IsValidID(id) {
		return nil, notFoundError(songNotFound)
	}
	song, err := c.store.DeleteSong(ctx, id)
	if err != nil {
		return nil, storeError("delete song", err, songNotFound)
	}
	return song, nil
}

const invalidUserID = "Invalid userId format"

// ToggleLike flips userID's like on the song and reports the new state.
func (c *Catalog) ToggleLike(ctx context.Context, songID, userID string) (bool, error) {
	if !utils.IsValidID(userID) {
		return false, validationError(invalidUserID)
	}
	if !utils.IsValidID(songID) {
		return false, notFoundError(songNotFound)
	}
	liked, err := c.store.ToggleLike(ctx, songID, userID)
	if err != nil {
		return false, storeError("toggle like", err, songNotFound)
	}
	return liked, nil
}

// AddComment appends a comment stamped with the current time. The text is
// stored as given.
func (c *Catalog) AddComment(ctx context.Context, songID, userID, text string) (*models.Song, error) {
	if !utils.IsValidID(userID) {
		return nil, validationError(invalidUserID)
	}
	if !utils.IsValidID(songID) {
		return nil, notFoundError(songNotFound)
	}
	comment := models.Comment{UserID: userID, Text: text, Timestamp: c.now()}
	song, err := c.store.AppendComment(ctx, songID, comment)
	if err != nil {
		return nil, storeError("append comment", err, songNotFound)
	}
	return song, nil
}
