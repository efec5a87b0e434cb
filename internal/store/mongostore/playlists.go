package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"soundwave/internal/models"
	"soundwave/internal/store"
)

// CreatePlaylist inserts the playlist and then pushes its id onto the owner.
// The two writes are separate documents; if the link fails the playlist is
// removed again so no unowned playlist is left behind.
func (s *Store) CreatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now()
	playlist.CreatedAt, playlist.UpdatedAt = now, now
	playlist.Songs = nonNil(playlist.Songs)

	playlists := s.collection(playlistsCollection)
	if _, err := playlists.InsertOne(ctx, playlist); err != nil {
		return translate("insert playlist", err)
	}

	link := bson.D{
		{Key: "$push", Value: bson.D{{Key: "playlists", Value: playlist.ID}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: now}}},
	}
	res, err := s.collection(usersCollection).UpdateOne(ctx, byID(playlist.UserID), link)
	var linkErr error
	switch {
	case err != nil:
		linkErr = fmt.Errorf("link playlist to user: %w", err)
	case res.MatchedCount == 0:
		linkErr = store.ErrNotFound
	default:
		return nil
	}

	if _, delErr := playlists.DeleteOne(ctx, byID(playlist.ID)); delErr != nil {
		return errors.Join(linkErr, fmt.Errorf("remove unlinked playlist: %w", delErr))
	}
	return linkErr
}

func (s *Store) GetPlaylist(ctx context.Context, id string) (*models.Playlist, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var playlist models.Playlist
	if err := s.collection(playlistsCollection).FindOne(ctx, byID(id)).Decode(&playlist); err != nil {
		return nil, translate("find playlist", err)
	}
	playlist.Songs = nonNil(playlist.Songs)
	return &playlist, nil
}

func (s *Store) ListPlaylistsByUser(ctx context.Context, userID string) ([]models.Playlist, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	filter := bson.D{{Key: "userId", Value: userID}}
	cursor, err := s.collection(playlistsCollection).Find(ctx, filter, sortByCreation())
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	playlists := make([]models.Playlist, 0)
	if err := cursor.All(ctx, &playlists); err != nil {
		return nil, fmt.Errorf("decode playlists: %w", err)
	}
	for i := range playlists {
		playlists[i].Songs = nonNil(playlists[i].Songs)
	}
	return playlists, nil
}

func (s *Store) AddPlaylistSong(ctx context.Context, playlistID, songID string) (*models.Playlist, error) {
	filter := bson.D{
		{Key: "_id", Value: playlistID},
		{Key: "songs", Value: bson.D{{Key: "$ne", Value: songID}}},
	}
	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "songs", Value: songID}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: s.now()}}},
	}
	playlist, err := s.updatePlaylist(ctx, filter, update)
	if !errors.Is(err, store.ErrNotFound) {
		return playlist, err
	}

	// The guarded update matched nothing: either the playlist is missing or
	// the song is already a member.
	ok, existsErr := s.playlistExists(ctx, playlistID)
	if existsErr != nil {
		return nil, existsErr
	}
	if ok {
		return nil, store.ErrConflict
	}
	return nil, store.ErrNotFound
}

func (s *Store) RemovePlaylistSong(ctx context.Context, playlistID, songID string) (*models.Playlist, error) {
	filter := bson.D{
		{Key: "_id", Value: playlistID},
		{Key: "songs", Value: songID},
	}
	update := bson.D{
		{Key: "$pull", Value: bson.D{{Key: "songs", Value: songID}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: s.now()}}},
	}
	return s.updatePlaylist(ctx, filter, update)
}

func (s *Store) RenamePlaylist(ctx context.Context, id, name string) (*models.Playlist, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: name},
		{Key: "updatedAt", Value: s.now()},
	}}}
	return s.updatePlaylist(ctx, byID(id), update)
}

func (s *Store) updatePlaylist(ctx context.Context, filter, update bson.D) (*models.Playlist, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var playlist models.Playlist
	err := s.collection(playlistsCollection).FindOneAndUpdate(ctx, filter, update, returnAfter()).Decode(&playlist)
	if err != nil {
		return nil, translate("update playlist", err)
	}
	playlist.Songs = nonNil(playlist.Songs)
	return &playlist, nil
}

func (s *Store) playlistExists(ctx context.Context, id string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.exists(ctx, playlistsCollection, id)
}

func (s *Store) DeletePlaylist(ctx context.Context, id string) error {
	return s.deleteOne(ctx, playlistsCollection, id)
}

func (s *Store) CountPlaylists(ctx context.Context) (int64, error) {
	return s.count(ctx, playlistsCollection)
}
