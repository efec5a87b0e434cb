package mongostore

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"soundwave/internal/models"
	"soundwave/internal/store"
	"soundwave/internal/utils"
)

func newMockT(t *testing.T) *mtest.T {
	t.Helper()
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func ns(mt *mtest.T, collection string) string {
	return mt.DB.Name() + "." + collection
}

func updated(n int32) bson.D {
	return mtest.CreateSuccessResponse(
		bson.E{Key: "n", Value: n},
		bson.E{Key: "nModified", Value: n},
	)
}

func TestGetSongNotFound(t *testing.T) {
	mt := newMockT(t)
	mt.Run("empty cursor", func(mt *mtest.T) {
		s := New(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns(mt, songsCollection), mtest.FirstBatch))

		if _, err := s.GetSong(context.Background(), utils.NewID()); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	mt := newMockT(t)
	mt.Run("duplicate key", func(mt *mtest.T) {
		s := New(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: users index: email_1",
		}))

		err := s.CreateUser(context.Background(), &models.User{ID: utils.NewID(), Email: "a@b.c"})
		if !errors.Is(err, store.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}

func TestListArtistsDecodes(t *testing.T) {
	mt := newMockT(t)
	mt.Run("two artists", func(mt *mtest.T) {
		s := New(mt.DB, time.Second)
		first := mtest.CreateCursorResponse(0, ns(mt, artistsCollection), mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "507f1f77bcf86cd799439011"}, {Key: "name", Value: "A"}, {Key: "imageURL", Value: "a.png"}},
			bson.D{{Key: "_id", Value: "507f1f77bcf86cd799439012"}, {Key: "name", Value: "B"}, {Key: "imageURL", Value: "b.png"}},
		)
		mt.AddMockResponses(first)

		artists, err := s.ListArtists(context.Background())
		if err != nil {
			t.Fatalf("ListArtists: %v", err)
		}
		if len(artists) != 2 || artists[0].Name != "A" || artists[1].ImageURL != "b.png" {
			t.Fatalf("unexpected artists: %+v", artists)
		}
	})
}

func TestToggleLike(t *testing.T) {
	mt := newMockT(t)

	mt.Run("like", func(mt *mtest.T) {
		s := New(mt.DB, time.Second)
		mt.AddMockResponses(updated(1))

		liked, err := s.ToggleLike(context.Background(), utils.NewID(), utils.NewID())
		if err != nil || !liked {
			t.Fatalf("liked=%v err=%v", liked, err)
		}
	})

	mt.Run("unlike", func(mt *mtest.T) {
		s := New(mt.DB, time.Second)
		mt.AddMockResponses(updated(0), updated(1))

		liked, err := s.ToggleLike(context.Background(), utils.NewID(), utils.NewID())
		if err != nil || liked {
			t.Fatalf("liked=%v err=%v", liked, err)
		}
	})

	mt.Run("missing song", func(mt *mtest.T) {
		s := New(mt.DB, time.Second)
		mt.AddMockResponses(
			updated(0),
			updated(0),
			mtest.CreateCursorResponse(0, ns(mt, songsCollection), mtest.FirstBatch),
		)

		if _, err := s.ToggleLike(context.Background(), utils.NewID(), utils.NewID()); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestAddPlaylistSongDuplicate(t *testing.T) {
	mt := newMockT(t)
	mt.Run("already member", func(mt *mtest.T) {
		s := New(mt.DB, time.Second)
		mt.AddMockResponses(
			mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}),
			mtest.CreateCursorResponse(0, ns(mt, playlistsCollection), mtest.FirstBatch,
				bson.D{{Key: "n", Value: int32(1)}}),
		)

		_, err := s.AddPlaylistSong(context.Background(), utils.NewID(), utils.NewID())
		if !errors.Is(err, store.ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})
}

func TestDeleteArtistNotFound(t *testing.T) {
	mt := newMockT(t)
	mt.Run("nothing deleted", func(mt *mtest.T) {
		s := New(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}))

		if err := s.DeleteArtist(context.Background(), utils.NewID()); !errors.Is(err, store.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestEnsureIndexes(t *testing.T) {
	mt := newMockT(t)
	mt.Run("all collections", func(mt *mtest.T) {
		s := New(mt.DB, time.Second)
		for i := 0; i < 5; i++ {
			mt.AddMockResponses(mtest.CreateSuccessResponse())
		}

		if err := s.EnsureIndexes(context.Background()); err != nil {
			t.Fatalf("EnsureIndexes: %v", err)
		}
	})

	mt.Run("command error", func(mt *mtest.T) {
		s := New(mt.DB, time.Second)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Message: "not authorized",
		}))

		if err := s.EnsureIndexes(context.Background()); err == nil {
			t.Fatal("expected error")
		}
	})
}
