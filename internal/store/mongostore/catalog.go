package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"soundwave/internal/models"
	"soundwave/internal/store"
)

func (s *Store) CreateArtist(ctx context.Context, artist *models.Artist) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now()
	artist.CreatedAt, artist.UpdatedAt = now, now
	_, err := s.collection(artistsCollection).InsertOne(ctx, artist)
	return translate("insert artist", err)
}

func (s *Store) GetArtist(ctx context.Context, id string) (*models.Artist, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var artist models.Artist
	if err := s.collection(artistsCollection).FindOne(ctx, byID(id)).Decode(&artist); err != nil {
		return nil, translate("find artist", err)
	}
	return &artist, nil
}

func (s *Store) ListArtists(ctx context.Context) ([]models.Artist, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cursor, err := s.collection(artistsCollection).Find(ctx, bson.D{}, sortByCreation())
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	artists := make([]models.Artist, 0)
	if err := cursor.All(ctx, &artists); err != nil {
		return nil, fmt.Errorf("decode artists: %w", err)
	}
	return artists, nil
}

func (s *Store) UpdateArtist(ctx context.Context, id, name, imageURL string) (*models.Artist, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: name},
		{Key: "imageURL", Value: imageURL},
		{Key: "updatedAt", Value: s.now()},
	}}}
	var artist models.Artist
	err := s.collection(artistsCollection).FindOneAndUpdate(ctx, byID(id), update, returnAfter()).Decode(&artist)
	if err != nil {
		return nil, translate("update artist", err)
	}
	return &artist, nil
}

func (s *Store) DeleteArtist(ctx context.Context, id string) error {
	return s.deleteOne(ctx, artistsCollection, id)
}

func (s *Store) CountArtists(ctx context.Context) (int64, error) {
	return s.count(ctx, artistsCollection)
}

func (s *Store) CreateAlbum(ctx context.Context, album *models.Album) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now()
	album.CreatedAt, album.UpdatedAt = now, now
	album.Songs = nonNil(album.Songs)
	_, err := s.collection(albumsCollection).InsertOne(ctx, album)
	return translate("insert album", err)
}

func (s *Store) GetAlbum(ctx context.Context, id string) (*models.Album, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var album models.Album
	if err := s.collection(albumsCollection).FindOne(ctx, byID(id)).Decode(&album); err != nil {
		return nil, translate("find album", err)
	}
	album.Songs = nonNil(album.Songs)
	return &album, nil
}

func (s *Store) ListAlbums(ctx context.Context) ([]models.Album, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cursor, err := s.collection(albumsCollection).Find(ctx, bson.D{}, sortByCreation())
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	albums := make([]models.Album, 0)
	if err := cursor.All(ctx, &albums); err != nil {
		return nil, fmt.Errorf("decode albums: %w", err)
	}
	for i := range albums {
		albums[i].Songs = nonNil(albums[i].Songs)
	}
	return albums, nil
}

func (s *Store) UpdateAlbum(ctx context.Context, id, name, imageURL string) (*models.Album, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: name},
		{Key: "imageURL", Value: imageURL},
		{Key: "updatedAt", Value: s.now()},
	}}}
	return s.updateAlbum(ctx, id, update)
}

func (s *Store) PushAlbumSong(ctx context.Context, albumID, songID string) (*models.Album, error) {
	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "songs", Value: songID}}},
		{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: s.now()}}},
	}
	return s.updateAlbum(ctx, albumID, update)
}

func (s *Store) updateAlbum(ctx context.Context, id string, update bson.D) (*models.Album, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var album models.Album
	err := s.collection(albumsCollection).FindOneAndUpdate(ctx, byID(id), update, returnAfter()).Decode(&album)
	if err != nil {
		return nil, translate("update album", err)
	}
	album.Songs = nonNil(album.Songs)
	return &album, nil
}

func (s *Store) DeleteAlbum(ctx context.Context, id string) error {
	return s.deleteOne(ctx, albumsCollection, id)
}

func (s *Store) CountAlbums(ctx context.Context) (int64, error) {
	return s.count(ctx, albumsCollection)
}

func (s *Store) deleteOne(ctx context.Context, name, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.collection(name).DeleteOne(ctx, byID(id))
	if err != nil {
		return fmt.Errorf("delete from %s: %w", name, err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
