package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"soundwave/internal/models"
	"soundwave/internal/store"
)

// toggleAttempts bounds the like/unlike retries when a concurrent toggle
// flips the membership between the two conditional updates.
const toggleAttempts = 3

func normalizeSong(song *models.Song) {
	song.Likes = nonNil(song.Likes)
	if song.Comments == nil {
		song.Comments = []models.Comment{}
	}
}

func (s *Store) CreateSong(ctx context.Context, song *models.Song) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now()
	song.CreatedAt, song.UpdatedAt = now, now
	normalizeSong(song)
	_, err := s.collection(songsCollection).InsertOne(ctx, song)
	return translate("insert song", err)
}

func (s *Store) GetSong(ctx context.Context, id string) (*models.Song, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var song models.Song
	if err := s.collection(songsCollection).FindOne(ctx, byID(id)).Decode(&song); err != nil {
		return nil, translate("find song", err)
	}
	normalizeSong(&song)
	return &song, nil
}

func (s *Store) GetSongs(ctx context.Context, ids []string) ([]models.Song, error) {
	if len(ids) == 0 {
		return []models.Song{}, nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}
	cursor, err := s.collection(songsCollection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find songs: %w", err)
	}
	var found []models.Song
	if err := cursor.All(ctx, &found); err != nil {
		return nil, fmt.Errorf("decode songs: %w", err)
	}

	byKey := make(map[string]models.Song, len(found))
	for _, song := range found {
		normalizeSong(&song)
		byKey[song.ID] = song
	}
	songs := make([]models.Song, 0, len(ids))
	for _, id := range ids {
		if song, ok := byKey[id]; ok {
			songs = append(songs, song)
		}
	}
	return songs, nil
}

func (s *Store) ListSongs(ctx context.Context) ([]models.Song, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cursor, err := s.collection(songsCollection).Find(ctx, bson.D{}, sortByCreation())
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	songs := make([]models.Song, 0)
	if err := cursor.All(ctx, &songs); err != nil {
		return nil, fmt.Errorf("decode songs: %w", err)
	}
	for i := range songs {
		normalizeSong(&songs[i])
	}
	return songs, nil
}

func (s *Store) UpdateSong(ctx context.Context, id string, fields models.SongFields) (*models.Song, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: fields.Name},
		{Key: "imageURL", Value: fields.ImageURL},
		{Key: "songURL", Value: fields.SongURL},
		{Key: "artist", Value: fields.Artist},
		{Key: "album", Value: fields.Album},
		{Key: "artistId", Value: fields.ArtistID},
		{Key: "albumId", Value: fields.AlbumID},
		{Key: "language", Value: fields.Language},
		{Key: "genre", Value: fields.Genre},
		{Key: "updatedAt", Value: s.now()},
	}}}
	return s.updateSong(ctx, byID(id), update)
}

func (s *Store) updateSong(ctx context.Context, filter, update bson.D) (*models.Song, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var song models.Song
	err := s.collection(songsCollection).FindOneAndUpdate(ctx, filter, update, returnAfter()).Decode(&song)
	if err != nil {
		return nil, translate("update song", err)
	}
	normalizeSong(&song)
	return &song, nil
}

func (s *Store) DeleteSong(ctx context.Context, id string) (*models.Song, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var song models.Song
	if err := s.collection(songsCollection).FindOneAndDelete(ctx, byID(id)).Decode(&song); err != nil {
		return nil, translate("delete song", err)
	}
	normalizeSong(&song)
	return &song, nil
}

// ToggleLike first tries to add the like guarded by "not already liked",
// then to remove it guarded by "liked". Neither matching means the song is
// gone or another toggle won the race, in which case it tries again.
func (s *Store) ToggleLike(ctx context.Context, songID, userID string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	coll := s.collection(songsCollection)
	for attempt := 0; attempt < toggleAttempts; attempt++ {
		like := bson.D{
			{Key: "$push", Value: bson.D{{Key: "likes", Value: userID}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: s.now()}}},
		}
		notLiked := bson.D{
			{Key: "_id", Value: songID},
			{Key: "likes", Value: bson.D{{Key: "$ne", Value: userID}}},
		}
		res, err := coll.UpdateOne(ctx, notLiked, like)
		if err != nil {
			return false, fmt.Errorf("like song: %w", err)
		}
		if res.MatchedCount > 0 {
			return true, nil
		}

		unlike := bson.D{
			{Key: "$pull", Value: bson.D{{Key: "likes", Value: userID}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: s.now()}}},
		}
		liked := bson.D{
			{Key: "_id", Value: songID},
			{Key: "likes", Value: userID},
		}
		res, err = coll.UpdateOne(ctx, liked, unlike)
		if err != nil {
			return false, fmt.Errorf("unlike song: %w", err)
		}
		if res.MatchedCount > 0 {
			return false, nil
		}

		ok, err := s.exists(ctx, songsCollection, songID)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, store.ErrNotFound
		}
	}
	return false, fmt.Errorf("toggle like on %s: too much contention", songID)
}

func (s *Store) AppendComment(ctx context.Context, songID string, comment models.Comment) (*models.Song, error) {
	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "comments", Value: comment}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: s.now()}}},
	}
	return s.updateSong(ctx, byID(songID), update)
}

func (s *Store) CountSongs(ctx context.Context) (int64, error) {
	return s.count(ctx, songsCollection)
}
