package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Ids are application generated ObjectID hex strings, so every key column is
// VARCHAR(24). Child tables keep array order through their serial id.
var tableStatements = []struct {
	name  string
	query string
}{
	{"users", `
	CREATE TABLE IF NOT EXISTS users (
		id VARCHAR(24) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`},
	{"user_playlists", `
	CREATE TABLE IF NOT EXISTS user_playlists (
		id BIGSERIAL PRIMARY KEY,
		user_id VARCHAR(24) NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		playlist_id VARCHAR(24) NOT NULL
	);`},
	{"artists", `
	CREATE TABLE IF NOT EXISTS artists (
		id VARCHAR(24) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		image_url TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`},
	{"albums", `
	CREATE TABLE IF NOT EXISTS albums (
		id VARCHAR(24) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		image_url TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`},
	{"album_songs", `
	CREATE TABLE IF NOT EXISTS album_songs (
		id BIGSERIAL PRIMARY KEY,
		album_id VARCHAR(24) NOT NULL REFERENCES albums(id) ON DELETE CASCADE,
		song_id VARCHAR(24) NOT NULL
	);`},
	{"songs", `
	CREATE TABLE IF NOT EXISTS songs (
		id VARCHAR(24) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		image_url TEXT NOT NULL,
		song_url TEXT NOT NULL,
		artist VARCHAR(255) NOT NULL,
		album VARCHAR(255) NOT NULL DEFAULT '',
		artist_id VARCHAR(24) NOT NULL DEFAULT '',
		album_id VARCHAR(24) NOT NULL DEFAULT '',
		language VARCHAR(100) NOT NULL,
		genre VARCHAR(100) NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`},
	{"song_likes", `
	CREATE TABLE IF NOT EXISTS song_likes (
		id BIGSERIAL PRIMARY KEY,
		song_id VARCHAR(24) NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
		user_id VARCHAR(24) NOT NULL,
		UNIQUE(song_id, user_id)
	);`},
	{"song_comments", `
	CREATE TABLE IF NOT EXISTS song_comments (
		id BIGSERIAL PRIMARY KEY,
		song_id VARCHAR(24) NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
		user_id VARCHAR(24) NOT NULL,
		text TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`},
	{"playlists", `
	CREATE TABLE IF NOT EXISTS playlists (
		id VARCHAR(24) PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		user_id VARCHAR(24) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`},
	{"playlist_songs", `
	CREATE TABLE IF NOT EXISTS playlist_songs (
		id BIGSERIAL PRIMARY KEY,
		playlist_id VARCHAR(24) NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
		song_id VARCHAR(24) NOT NULL,
		UNIQUE(playlist_id, song_id)
	);`},
}

var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS user_playlists_user_idx ON user_playlists(user_id, id)`,
	`CREATE INDEX IF NOT EXISTS album_songs_album_idx ON album_songs(album_id, id)`,
	`CREATE INDEX IF NOT EXISTS song_comments_song_idx ON song_comments(song_id, id)`,
	`CREATE INDEX IF NOT EXISTS playlists_user_created_idx ON playlists(user_id, created_at, id)`,
	`CREATE INDEX IF NOT EXISTS playlist_songs_playlist_idx ON playlist_songs(playlist_id, id)`,
}

// CreateTables creates every PostgreSQL table and index. It is idempotent.
func CreateTables(ctx context.Context, db *sql.DB) error {
	for _, table := range tableStatements {
		if _, err := db.ExecContext(ctx, table.query); err != nil {
			return fmt.Errorf("create %s table: %w", table.name, err)
		}
	}
	for _, query := range indexStatements {
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}
	return nil
}
