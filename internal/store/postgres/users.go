package postgres

import (
	"context"
	"fmt"

	"soundwave/internal/models"
)

const selectUserColumns = `SELECT id, name, email, password, created_at, updated_at FROM users`

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	now := s.now()
	user.CreatedAt, user.UpdatedAt = now, now
	user.Playlists = orEmpty(user.Playlists)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		user.ID, user.Name, user.Email, user.Password, user.CreatedAt, user.UpdatedAt,
	)
	return translate("insert user", err)
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.findUser(ctx, selectUserColumns+` WHERE id = $1`, id)
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.findUser(ctx, selectUserColumns+` WHERE email = $1`, email)
}

func (s *Store) findUser(ctx context.Context, query, arg string) (*models.User, error) {
	var user models.User
	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, translate("find user", err)
	}

	user.Playlists, err = childIDs(ctx, s.db,
		`SELECT playlist_id FROM user_playlists WHERE user_id = $1 ORDER BY id ASC`, user.ID)
	if err != nil {
		return nil, fmt.Errorf("load user playlists: %w", err)
	}
	return &user, nil
}

func (s *Store) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET password = $1, updated_at = $2 WHERE id = $3`,
		passwordHash, s.now(), id,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return requireAffected(res)
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.count(ctx, "users")
}
