package services

import (
	"context"
	"testing"

	"soundwave/internal/models"
	"soundwave/internal/store/memory"
	"soundwave/internal/utils"
)

const testJWTSecret = "soundwave_test_jwt_secret_key_1234567890"

type fixture struct {
	store     *memory.Store
	auth      *Auth
	catalog   *Catalog
	playlists *Playlists
	tokens    *utils.TokenManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	tokens, err := utils.NewTokenManager(testJWTSecret, utils.DefaultTokenTTL)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	st := memory.New()
	return &fixture{
		store:     st,
		auth:      NewAuth(st, tokens),
		catalog:   NewCatalog(st),
		playlists: NewPlaylists(st),
		tokens:    tokens,
	}
}

func mustKind(t *testing.T, err error, want Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := KindOf(err); got != want {
		t.Fatalf("expected %s error, got %s (%v)", want, got, err)
	}
}

func (f *fixture) song(t *testing.T, name string) *models.Song {
	t.Helper()
	song, err := f.catalog.SaveSong(context.Background(), models.SongFields{
		Name:     name,
		ImageURL: "https://img.example/" + name + ".png",
		SongURL:  "https://cdn.example/" + name + ".mp3",
		Artist:   "Someone",
		Language: "en",
	})
	if err != nil {
		t.Fatalf("SaveSong(%s): %v", name, err)
	}
	return song
}

func (f *fixture) user(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := f.auth.Register(context.Background(), "Listener", email, "secret123")
	if err != nil {
		t.Fatalf("Register(%s): %v", email, err)
	}
	return user
}
