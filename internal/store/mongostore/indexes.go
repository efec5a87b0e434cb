package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the unique email index and the indexes backing the
// creation-ordered listings. Existing indexes are left alone.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	byCreation := bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}}
	indexes := []struct {
		collection string
		models     []mongo.IndexModel
	}{
		{usersCollection, []mongo.IndexModel{{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		}}},
		{artistsCollection, []mongo.IndexModel{{Keys: byCreation}}},
		{albumsCollection, []mongo.IndexModel{{Keys: byCreation}}},
		{songsCollection, []mongo.IndexModel{{Keys: byCreation}}},
		{playlistsCollection, []mongo.IndexModel{{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}},
		}}},
	}

	for _, idx := range indexes {
		if _, err := s.collection(idx.collection).Indexes().CreateMany(ctx, idx.models); err != nil {
			return fmt.Errorf("create %s indexes: %w", idx.collection, err)
		}
	}
	return nil
}
