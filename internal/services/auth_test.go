package services

import (
	"context"
	"strings"
	"testing"

	"soundwave/internal/utils"
)

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := f.user(t, "ada@example.com")
	if user.Password == "secret123" || !utils.CheckPasswordHash("secret123", user.Password) {
		t.Fatal("expected stored password to be a bcrypt hash")
	}

	_, err := f.auth.Register(ctx, "Other", "  ADA@example.com ", "another")
	mustKind(t, err, KindConflict)
}

func TestRegisterRequiresAllFields(t *testing.T) {
	f := newFixture(t)

	_, err := f.auth.Register(context.Background(), "Ada", "", "secret123")
	mustKind(t, err, KindValidation)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.user(t, "ada@example.com")

	t.Run("success", func(t *testing.T) {
		session, err := f.auth.Login(ctx, "Ada@Example.com", "secret123")
		if err != nil {
			t.Fatalf("Login: %v", err)
		}
		claims, err := f.tokens.ValidateToken(session.Token)
		if err != nil {
			t.Fatalf("ValidateToken: %v", err)
		}
		if claims.UserID != user.ID || claims.Email != user.Email {
			t.Fatalf("unexpected claims: %+v", claims)
		}
		if session.ExpiresAt.IsZero() {
			t.Fatal("expected expiry")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := f.auth.Login(ctx, "ada@example.com", "nope")
		mustKind(t, err, KindAuth)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := f.auth.Login(ctx, "bob@example.com", "secret123")
		mustKind(t, err, KindNotFound)
	})

	t.Run("missing field", func(t *testing.T) {
		_, err := f.auth.Login(ctx, "ada@example.com", "")
		mustKind(t, err, KindValidation)
	})
}

func TestForgotPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "ada@example.com")

	cases := []struct {
		name     string
		email    string
		password string
		confirm  string
		want     Kind
	}{
		{"missing confirm", "ada@example.com", "newpass", "", KindValidation},
		{"too short", "ada@example.com", "abc", "abc", KindValidation},
		{"three runes in six bytes", "ada@example.com", "ééé", "ééé", KindValidation},
		{"over bcrypt limit", "ada@example.com", strings.Repeat("a", 73), strings.Repeat("a", 73), KindValidation},
		{"mismatch", "ada@example.com", "newpass1", "newpass2", KindValidation},
		{"unknown email", "bob@example.com", "newpass", "newpass", KindNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := f.auth.ForgotPassword(ctx, tc.email, tc.password, tc.confirm)
			mustKind(t, err, tc.want)
		})
	}

	if err := f.auth.ForgotPassword(ctx, "ada@example.com", "newpass", "newpass"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if _, err := f.auth.Login(ctx, "ada@example.com", "secret123"); KindOf(err) != KindAuth {
		t.Fatalf("old password should be rejected, got %v", err)
	}
	if _, err := f.auth.Login(ctx, "ada@example.com", "newpass"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestForgotPasswordCountsCharacters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.user(t, "ada@example.com")

	if err := f.auth.ForgotPassword(ctx, "ada@example.com", "éééééé", "éééééé"); err != nil {
		t.Fatalf("six characters should be accepted: %v", err)
	}
	if _, err := f.auth.Login(ctx, "ada@example.com", "éééééé"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestRegisterPasswordLengthLimit(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "Ada", "ada@example.com", strings.Repeat("a", 73))
	mustKind(t, err, KindValidation)
	if MessageOf(err) != passwordTooLong {
		t.Fatalf("unexpected message %q", MessageOf(err))
	}

	if _, err := f.auth.Register(ctx, "Ada", "ada@example.com", strings.Repeat("a", 72)); err != nil {
		t.Fatalf("72 bytes should be accepted: %v", err)
	}
}

func TestHashPasswordTooLongIsValidation(t *testing.T) {
	_, err := hashPassword(strings.Repeat("a", 73))
	mustKind(t, err, KindValidation)
}
