package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"soundwave/internal/models"
)

const songColumns = `id, name, image_url, song_url, artist, album, artist_id, album_id, language, genre, created_at, updated_at`

func scanSong(row interface{ Scan(...any) error }) (*models.Song, error) {
	var song models.Song
	err := row.Scan(
		&song.ID,
		&song.Name,
		&song.ImageURL,
		&song.SongURL,
		&song.Artist,
		&song.Album,
		&song.ArtistID,
		&song.AlbumID,
		&song.Language,
		&song.Genre,
		&song.CreatedAt,
		&song.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	song.Likes = []string{}
	song.Comments = []models.Comment{}
	return &song, nil
}

func (s *Store) CreateSong(ctx context.Context, song *models.Song) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	now := s.now()
	song.CreatedAt, song.UpdatedAt = now, now
	song.Likes = orEmpty(song.Likes)
	if song.Comments == nil {
		song.Comments = []models.Comment{}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO songs (`+songColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		song.ID, song.Name, song.ImageURL, song.SongURL, song.Artist, song.Album,
		song.ArtistID, song.AlbumID, song.Language, song.Genre, song.CreatedAt, song.UpdatedAt,
	)
	return translate("insert song", err)
}

func (s *Store) GetSong(ctx context.Context, id string) (*models.Song, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.getSong(ctx, s.db, id)
}

func (s *Store) getSong(ctx context.Context, q querier, id string) (*models.Song, error) {
	song, err := scanSong(q.QueryRowContext(ctx, `SELECT `+songColumns+` FROM songs WHERE id = $1`, id))
	if err != nil {
		return nil, translate("find song", err)
	}
	songs := []models.Song{*song}
	if err := attachSongChildren(ctx, q, songs); err != nil {
		return nil, err
	}
	return &songs[0], nil
}

func (s *Store) GetSongs(ctx context.Context, ids []string) ([]models.Song, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if len(ids) == 0 {
		return []models.Song{}, nil
	}
	found, err := s.querySongs(ctx, `SELECT `+songColumns+` FROM songs WHERE id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, err
	}

	byID := make(map[string]models.Song, len(found))
	for _, song := range found {
		byID[song.ID] = song
	}
	songs := make([]models.Song, 0, len(ids))
	for _, id := range ids {
		if song, ok := byID[id]; ok {
			songs = append(songs, song)
		}
	}
	return songs, nil
}

func (s *Store) ListSongs(ctx context.Context) ([]models.Song, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.querySongs(ctx, `SELECT `+songColumns+` FROM songs ORDER BY created_at ASC, id ASC`)
}

func (s *Store) querySongs(ctx context.Context, query string, args ...any) ([]models.Song, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query songs: %w", err)
	}
	defer rows.Close()

	songs := make([]models.Song, 0)
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, *song)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := attachSongChildren(ctx, s.db, songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// attachSongChildren fills likes and comments for every song with one query
// per child table.
func attachSongChildren(ctx context.Context, q querier, songs []models.Song) error {
	if len(songs) == 0 {
		return nil
	}
	ids := make([]string, len(songs))
	index := make(map[string]int, len(songs))
	for i, song := range songs {
		ids[i] = song.ID
		index[song.ID] = i
	}

	likes, err := groupedChildIDs(ctx, q,
		`SELECT song_id, user_id FROM song_likes WHERE song_id = ANY($1) ORDER BY id ASC`, ids)
	if err != nil {
		return fmt.Errorf("load likes: %w", err)
	}
	for songID, users := range likes {
		songs[index[songID]].Likes = users
	}

	rows, err := q.QueryContext(ctx,
		`SELECT song_id, user_id, text, created_at FROM song_comments WHERE song_id = ANY($1) ORDER BY id ASC`,
		pq.Array(ids),
	)
	if err != nil {
		return fmt.Errorf("load comments: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var songID string
		var comment models.Comment
		if err := rows.Scan(&songID, &comment.UserID, &comment.Text, &comment.Timestamp); err != nil {
			return fmt.Errorf("scan comment: %w", err)
		}
		i := index[songID]
		songs[i].Comments = append(songs[i].Comments, comment)
	}
	return rows.Err()
}

func (s *Store) UpdateSong(ctx context.Context, id string, fields models.SongFields) (*models.Song, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	row := s.db.QueryRowContext(ctx,
		`UPDATE songs SET name = $1, image_url = $2, song_url = $3, artist = $4, album = $5,
		 artist_id = $6, album_id = $7, language = $8, genre = $9, updated_at = $10
		 WHERE id = $11 RETURNING `+songColumns,
		fields.Name, fields.ImageURL, fields.SongURL, fields.Artist, fields.Album,
		fields.ArtistID, fields.AlbumID, fields.Language, fields.Genre, s.now(), id,
	)
	song, err := scanSong(row)
	if err != nil {
		return nil, translate("update song", err)
	}
	songs := []models.Song{*song}
	if err := attachSongChildren(ctx, s.db, songs); err != nil {
		return nil, err
	}
	return &songs[0], nil
}

// DeleteSong reads the song with its likes and comments before removing it.
// The child rows go with it through ON DELETE CASCADE.
func (s *Store) DeleteSong(ctx context.Context, id string) (*models.Song, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	var deleted *models.Song
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		song, err := s.getSong(ctx, tx, id)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM songs WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete song: %w", err)
		}
		if err := requireAffected(res); err != nil {
			return err
		}
		deleted = song
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *Store) ToggleLike(ctx context.Context, songID, userID string) (bool, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	var liked bool
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var id string
		err := tx.QueryRowContext(ctx, `SELECT id FROM songs WHERE id = $1 FOR UPDATE`, songID).Scan(&id)
		if err != nil {
			return translate("lock song", err)
		}

		res, err := tx.ExecContext(ctx,
			`DELETE FROM song_likes WHERE song_id = $1 AND user_id = $2`, songID, userID)
		if err != nil {
			return fmt.Errorf("remove like: %w", err)
		}
		removed, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if removed > 0 {
			liked = false
			return nil
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO song_likes (song_id, user_id) VALUES ($1, $2)`, songID, userID,
		); err != nil {
			return fmt.Errorf("add like: %w", err)
		}
		liked = true
		return nil
	})
	return liked, err
}

func (s *Store) AppendComment(ctx context.Context, songID string, comment models.Comment) (*models.Song, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	var song *models.Song
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE songs SET updated_at = $1 WHERE id = $2`, s.now(), songID)
		if err != nil {
			return fmt.Errorf("touch song: %w", err)
		}
		if err := requireAffected(res); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO song_comments (song_id, user_id, text, created_at) VALUES ($1, $2, $3, $4)`,
			songID, comment.UserID, comment.Text, comment.Timestamp,
		); err != nil {
			return fmt.Errorf("insert comment: %w", err)
		}

		song, err = s.getSong(ctx, tx, songID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return song, nil
}

func (s *Store) CountSongs(ctx context.Context) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.count(ctx, "songs")
}
