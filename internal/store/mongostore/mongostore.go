// Package mongostore implements store.Store on top of a MongoDB database.
//
// Every document keeps its id as the ObjectID hex string in _id. Array
// bookkeeping (likes, playlist songs, album songs, comments) is done with
// single-document update operators, so each change is atomic on its own.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"soundwave/internal/store"
)

const (
	usersCollection     = "users"
	artistsCollection   = "artists"
	albumsCollection    = "albums"
	songsCollection     = "songs"
	playlistsCollection = "playlists"

	// DefaultTimeout bounds each store round trip.
	DefaultTimeout = 10 * time.Second
)

// Store is the MongoDB backend.
type Store struct {
	db      *mongo.Database
	timeout time.Duration
	now     func() time.Time
}

var _ store.Store = (*Store)(nil)

// New wraps an already connected database handle.
func New(db *mongo.Database, timeout time.Duration) *Store {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Store{
		db:      db,
		timeout: timeout,
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.timeout)
}

// Ping checks connectivity of the underlying client.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.db.Client().Ping(ctx, nil)
}

// Close disconnects the underlying client.
func (s *Store) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

func byID(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

func returnAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

func sortByCreation() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
}

// translate maps driver errors onto the store sentinels.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return store.ErrConflict
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func (s *Store) count(ctx context.Context, name string) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	n, err := s.collection(name).CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", name, err)
	}
	return n, nil
}

func (s *Store) exists(ctx context.Context, name, id string) (bool, error) {
	n, err := s.collection(name).CountDocuments(ctx, byID(id), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check %s: %w", name, err)
	}
	return n > 0, nil
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
