package mongostore

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	"soundwave/internal/models"
	"soundwave/internal/store"
)

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	now := s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	user.Playlists = nonNil(user.Playlists)

	_, err := s.collection(usersCollection).InsertOne(ctx, user)
	return translate("insert user", err)
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.findUser(ctx, byID(id))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findUser(ctx, bson.D{{Key: "email", Value: email}})
}

func (s *Store) findUser(ctx context.Context, filter bson.D) (*models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var user models.User
	if err := s.collection(usersCollection).FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translate("find user", err)
	}
	user.Playlists = nonNil(user.Playlists)
	return &user, nil
}

func (s *Store) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "password", Value: passwordHash},
		{Key: "updatedAt", Value: s.now()},
	}}}
	res, err := s.collection(usersCollection).UpdateOne(ctx, byID(id), update)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	return s.count(ctx, usersCollection)
}
