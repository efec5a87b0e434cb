package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"soundwave/internal/models"
	"soundwave/internal/store"
	"soundwave/internal/utils"
)

const minPasswordLength = 6

const (
	passwordTooShort = "Password must be at least 6 characters"
	passwordTooLong  = "Password must be at most 72 bytes"
)

func checkPasswordLength(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return validationError(passwordTooShort)
	}
	if len(password) > utils.MaxPasswordBytes {
		return validationError(passwordTooLong)
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := utils.HashPassword(password)
	if errors.Is(err, utils.ErrPasswordTooLong) {
		return "", validationError(passwordTooLong)
	}
	if err != nil {
		return "", internalError("hash password", err)
	}
	return hash, nil
}

// Auth handles registration, login and password resets.
type Auth struct {
	users  store.UserStore
	tokens *utils.TokenManager
}

func NewAuth(users store.UserStore, tokens *utils.TokenManager) *Auth {
	return &Auth{users: users, tokens: tokens}
}

// Session is the result of a successful login.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

func (a *Auth) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = utils.NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, validationError(allFieldsRequired)
	}
	if len(password) > utils.MaxPasswordBytes {
		return nil, validationError(passwordTooLong)
	}

	_, err := a.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, conflictError("User already exists")
	case !errors.Is(err, store.ErrNotFound):
		return nil, internalError("lookup user", err)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        utils.NewID(),
		Name:      name,
		Email:     email,
		Password:  hash,
		Playlists: []string{},
	}
	if err := a.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrConflict) {
			return nil, conflictError("User already exists")
		}
		return nil, internalError("create user", err)
	}
	return user, nil
}

func (a *Auth) Login(ctx context.Context, email, password string) (*Session, error) {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, validationError(allFieldsRequired)
	}

	user, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, storeError("lookup user", err, "User does not exist")
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, authError("Invalid password")
	}

	token, expiresAt, err := a.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, internalError("generate token", err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// ForgotPassword replaces the stored hash after checking the new password.
// Input checks run before the user lookup.
func (a *Auth) ForgotPassword(ctx context.Context, email, password, confirmPassword string) error {
	email = utils.NormalizeEmail(email)
	if email == "" || password == "" || confirmPassword == "" {
		return validationError(allFieldsRequired)
	}
	if err := checkPasswordLength(password); err != nil {
		return err
	}
	if password != confirmPassword {
		return validationError("Passwords do not match")
	}

	user, err := a.users.GetUserByEmail(ctx, email)
	if err != nil {
		return storeError("lookup user", err, "User does not exist")
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	if err := a.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		return storeError("update password", err, "User does not exist")
	}
	return nil
}
