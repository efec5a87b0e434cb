package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"soundwave/internal/models"
)

func (s *Store) CreateArtist(ctx context.Context, artist *models.Artist) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	now := s.now()
	artist.CreatedAt, artist.UpdatedAt = now, now

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO artists (id, name, image_url, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
		artist.ID, artist.Name, artist.ImageURL, artist.CreatedAt, artist.UpdatedAt,
	)
	return translate("insert artist", err)
}

func (s *Store) GetArtist(ctx context.Context, id string) (*models.Artist, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	var artist models.Artist
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, image_url, created_at, updated_at FROM artists WHERE id = $1`, id,
	).Scan(&artist.ID, &artist.Name, &artist.ImageURL, &artist.CreatedAt, &artist.UpdatedAt)
	if err != nil {
		return nil, translate("find artist", err)
	}
	return &artist, nil
}

func (s *Store) ListArtists(ctx context.Context) ([]models.Artist, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, image_url, created_at, updated_at FROM artists ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list artists: %w", err)
	}
	defer rows.Close()

	artists := make([]models.Artist, 0)
	for rows.Next() {
		var artist models.Artist
		if err := rows.Scan(&artist.ID, &artist.Name, &artist.ImageURL, &artist.CreatedAt, &artist.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan artist: %w", err)
		}
		artists = append(artists, artist)
	}
	return artists, rows.Err()
}

func (s *Store) UpdateArtist(ctx context.Context, id, name, imageURL string) (*models.Artist, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	var artist models.Artist
	err := s.db.QueryRowContext(ctx,
		`UPDATE artists SET name = $1, image_url = $2, updated_at = $3 WHERE id = $4
		 RETURNING id, name, image_url, created_at, updated_at`,
		name, imageURL, s.now(), id,
	).Scan(&artist.ID, &artist.Name, &artist.ImageURL, &artist.CreatedAt, &artist.UpdatedAt)
	if err != nil {
		return nil, translate("update artist", err)
	}
	return &artist, nil
}

func (s *Store) DeleteArtist(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	res, err := s.db.ExecContext(ctx, `DELETE FROM artists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete artist: %w", err)
	}
	return requireAffected(res)
}

func (s *Store) CountArtists(ctx context.Context) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.count(ctx, "artists")
}

const albumSongsQuery = `SELECT song_id FROM album_songs WHERE album_id = $1 ORDER BY id ASC`

func (s *Store) CreateAlbum(ctx context.Context, album *models.Album) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	now := s.now()
	album.CreatedAt, album.UpdatedAt = now, now

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO albums (id, name, image_url, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)`,
			album.ID, album.Name, album.ImageURL, album.CreatedAt, album.UpdatedAt,
		)
		if err != nil {
			return translate("insert album", err)
		}
		for _, songID := range album.Songs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO album_songs (album_id, song_id) VALUES ($1, $2)`, album.ID, songID,
			); err != nil {
				return fmt.Errorf("insert album song: %w", err)
			}
		}
		album.Songs = orEmpty(album.Songs)
		return nil
	})
}

func scanAlbum(row interface{ Scan(...any) error }) (*models.Album, error) {
	var album models.Album
	if err := row.Scan(&album.ID, &album.Name, &album.ImageURL, &album.CreatedAt, &album.UpdatedAt); err != nil {
		return nil, err
	}
	return &album, nil
}

func (s *Store) loadAlbum(ctx context.Context, q querier, row *sql.Row, op string) (*models.Album, error) {
	album, err := scanAlbum(row)
	if err != nil {
		return nil, translate(op, err)
	}
	album.Songs, err = childIDs(ctx, q, albumSongsQuery, album.ID)
	if err != nil {
		return nil, fmt.Errorf("load album songs: %w", err)
	}
	return album, nil
}

func (s *Store) GetAlbum(ctx context.Context, id string) (*models.Album, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, image_url, created_at, updated_at FROM albums WHERE id = $1`, id)
	return s.loadAlbum(ctx, s.db, row, "find album")
}

func (s *Store) ListAlbums(ctx context.Context) ([]models.Album, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, image_url, created_at, updated_at FROM albums ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	albums := make([]models.Album, 0)
	ids := make([]string, 0)
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, fmt.Errorf("scan album: %w", err)
		}
		albums = append(albums, *album)
		ids = append(ids, album.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	songs, err := groupedChildIDs(ctx, s.db,
		`SELECT album_id, song_id FROM album_songs WHERE album_id = ANY($1) ORDER BY id ASC`, ids)
	if err != nil {
		return nil, fmt.Errorf("load album songs: %w", err)
	}
	for i := range albums {
		albums[i].Songs = orEmpty(songs[albums[i].ID])
	}
	return albums, nil
}

func (s *Store) UpdateAlbum(ctx context.Context, id, name, imageURL string) (*models.Album, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	row := s.db.QueryRowContext(ctx,
		`UPDATE albums SET name = $1, image_url = $2, updated_at = $3 WHERE id = $4
		 RETURNING id, name, image_url, created_at, updated_at`,
		name, imageURL, s.now(), id,
	)
	return s.loadAlbum(ctx, s.db, row, "update album")
}

func (s *Store) PushAlbumSong(ctx context.Context, albumID, songID string) (*models.Album, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	var album *models.Album
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`UPDATE albums SET updated_at = $1 WHERE id = $2
			 RETURNING id, name, image_url, created_at, updated_at`,
			s.now(), albumID,
		)
		found, err := scanAlbum(row)
		if err != nil {
			return translate("touch album", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO album_songs (album_id, song_id) VALUES ($1, $2)`, albumID, songID,
		); err != nil {
			return fmt.Errorf("insert album song: %w", err)
		}
		found.Songs, err = childIDs(ctx, tx, albumSongsQuery, albumID)
		if err != nil {
			return fmt.Errorf("load album songs: %w", err)
		}
		album = found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return album, nil
}

func (s *Store) DeleteAlbum(ctx context.Context, id string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	res, err := s.db.ExecContext(ctx, `DELETE FROM albums WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	return requireAffected(res)
}

func (s *Store) CountAlbums(ctx context.Context) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.count(ctx, "albums")
}
