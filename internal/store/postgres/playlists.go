package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"soundwave/internal/models"
	"soundwave/internal/store"
)

const (
	playlistColumns    = `id, name, user_id, created_at, updated_at`
	playlistSongsQuery = `SELECT song_id FROM playlist_songs WHERE playlist_id = $1 ORDER BY id ASC`
)

func scanPlaylist(row interface{ Scan(...any) error }) (*models.Playlist, error) {
	var playlist models.Playlist
	if err := row.Scan(&playlist.ID, &playlist.Name, &playlist.UserID, &playlist.CreatedAt, &playlist.UpdatedAt); err != nil {
		return nil, err
	}
	return &playlist, nil
}

// CreatePlaylist inserts the playlist and links it to the owner in one
// transaction.
func (s *Store) CreatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	now := s.now()
	playlist.CreatedAt, playlist.UpdatedAt = now, now
	playlist.Songs = orEmpty(playlist.Songs)

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var ownerID string
		err := tx.QueryRowContext(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, playlist.UserID).Scan(&ownerID)
		if err != nil {
			return translate("lock owner", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO playlists (`+playlistColumns+`) VALUES ($1, $2, $3, $4, $5)`,
			playlist.ID, playlist.Name, playlist.UserID, playlist.CreatedAt, playlist.UpdatedAt,
		); err != nil {
			return translate("insert playlist", err)
		}
		for _, songID := range playlist.Songs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO playlist_songs (playlist_id, song_id) VALUES ($1, $2)`, playlist.ID, songID,
			); err != nil {
				return translate("insert playlist song", err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_playlists (user_id, playlist_id) VALUES ($1, $2)`, playlist.UserID, playlist.ID,
		); err != nil {
			return fmt.Errorf("link playlist to user: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET updated_at = $1 WHERE id = $2`, now, playlist.UserID,
		); err != nil {
			return fmt.Errorf("touch user: %w", err)
		}
		return nil
	})
}

func (s *Store) GetPlaylist(ctx context.Context, id string) (*models.Playlist, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.getPlaylist(ctx, s.db, `SELECT `+playlistColumns+` FROM playlists WHERE id = $1`, id)
}

func (s *Store) getPlaylist(ctx context.Context, q querier, query string, args ...any) (*models.Playlist, error) {
	playlist, err := scanPlaylist(q.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, translate("find playlist", err)
	}
	playlist.Songs, err = childIDs(ctx, q, playlistSongsQuery, playlist.ID)
	if err != nil {
		return nil, fmt.Errorf("load playlist songs: %w", err)
	}
	return playlist, nil
}

func (s *Store) ListPlaylistsByUser(ctx context.Context, userID string) ([]models.Playlist, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+playlistColumns+` FROM playlists WHERE user_id = $1 ORDER BY created_at ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	playlists := make([]models.Playlist, 0)
	ids := make([]string, 0)
	for rows.Next() {
		playlist, err := scanPlaylist(rows)
		if err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, *playlist)
		ids = append(ids, playlist.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	songs, err := groupedChildIDs(ctx, s.db,
		`SELECT playlist_id, song_id FROM playlist_songs WHERE playlist_id = ANY($1) ORDER BY id ASC`, ids)
	if err != nil {
		return nil, fmt.Errorf("load playlist songs: %w", err)
	}
	for i := range playlists {
		playlists[i].Songs = orEmpty(songs[playlists[i].ID])
	}
	return playlists, nil
}

func (s *Store) AddPlaylistSong(ctx context.Context, playlistID, songID string) (*models.Playlist, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.mutatePlaylist(ctx, playlistID, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`INSERT INTO playlist_songs (playlist_id, song_id) VALUES ($1, $2)
			 ON CONFLICT (playlist_id, song_id) DO NOTHING`,
			playlistID, songID,
		)
		if err != nil {
			return fmt.Errorf("insert playlist song: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return store.ErrConflict
		}
		return nil
	})
}

func (s *Store) RemovePlaylistSong(ctx context.Context, playlistID, songID string) (*models.Playlist, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.mutatePlaylist(ctx, playlistID, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM playlist_songs WHERE playlist_id = $1 AND song_id = $2`, playlistID, songID)
		if err != nil {
			return fmt.Errorf("delete playlist song: %w", err)
		}
		return requireAffected(res)
	})
}

// mutatePlaylist locks the playlist row, applies change and returns the
// playlist as committed.
func (s *Store) mutatePlaylist(ctx context.Context, playlistID string, change func(tx *sql.Tx) error) (*models.Playlist, error) {
	var playlist *models.Playlist
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var id string
		err := tx.QueryRowContext(ctx, `SELECT id FROM playlists WHERE id = $1 FOR UPDATE`, playlistID).Scan(&id)
		if err != nil {
			return translate("lock playlist", err)
		}
		if err := change(tx); err != nil {
			return err
		}
		playlist, err = s.getPlaylist(ctx, tx,
			`UPDATE playlists SET updated_at = $1 WHERE id = $2 RETURNING `+playlistColumns, s.now(), playlistID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return playlist, nil
}

func (s *Store) RenamePlaylist(ctx context.Context, id, name string) (*models.Playlist, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.getPlaylist(ctx, s.db,
		`UPDATE playlists SET name = $1, updated_at = $2 WHERE id = $3 RETURNING `+playlistColumns,
		name, s.now(), id,
	)
}

func (s *Store) DeletePlaylist(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	res, err := s.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	return requireAffected(res)
}

func (s *Store) CountPlaylists(ctx context.Context) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.count(ctx, "playlists")
}
