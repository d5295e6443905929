package usecase_test

import (
	"context"
	"fmt"
	"github.com/ajdiallo/chopnow/internal/usecase"
	"testing"

	domainErrors "github.com/ajdiallo/chopnow/internal/domain/errors"
	pkgAuth "github.com/ajdiallo/chopnow/internal/pkg/auth"
	"github.com/ajdiallo/chopnow/internal/pkg/ratelimit"
	testhelpers "github.com/ajdiallo/chopnow/internal/test"
)

func newStrategyStub() testhelpers.StrategyStub {
	return testhelpers.StrategyStub{
		IssueFn: func(userID int64) (string, error) {
			return fmt.Sprintf("token-%d", userID), nil
		},
		ParseFn: func(token string) (int64, error) {
			var id int64
			if _, err := fmt.Sscanf(token, "token-%d", &id); err != nil {
				return 0, pkgAuth.ErrInvalidToken
			}
			return id, nil
		},
	}
}

func newAuthUseCase(repo *testhelpers.UserRepositoryStub) *usecase.AuthUseCase {
	return usecase.NewAuthUseCase(repo, testhelpers.HasherStub{}, newStrategyStub(), ratelimit.NewMemoryStore())
}

func TestAuthUseCaseRegisterSuccess(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo)

	ctx := context.Background()
	user, token, err := uc.Register(ctx, "alice@example.com", "password")
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected user to have ID assigned")
	}
	if token != "token-1" {
		t.Fatalf("unexpected token %q", token)
	}
	stored, err := repo.GetByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("expected user in repository: %v", err)
	}
	if stored.PasswordHash != "hash:password" {
		t.Fatalf("password hash not stored: %v", stored.PasswordHash)
	}
}

func TestAuthUseCaseRegisterValidation(t *testing.T) {
	uc := newAuthUseCase(testhelpers.NewUserRepositoryStub())
	ctx := context.Background()

	if _, _, err := uc.Register(ctx, "not-an-email", "secret"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for malformed email, got %v", err)
	}
	if _, _, err := uc.Register(ctx, "bob@example.com", ""); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for empty password, got %v", err)
	}
}

func TestAuthUseCaseRegisterDuplicate(t *testing.T) {
	uc := newAuthUseCase(testhelpers.NewUserRepositoryStub())

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "bob@example.com", "secret"); err != nil {
		t.Fatalf("unexpected error on first register: %v", err)
	}
	if _, _, err := uc.Register(ctx, "bob@example.com", "secret"); err != domainErrors.ErrAlreadyExists {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestAuthUseCaseRegisterNormalizesEmail(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo)

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "  Carol@Example.COM ", "secret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := repo.GetByEmail(ctx, "carol@example.com"); err != nil {
		t.Fatalf("expected lowercased email stored: %v", err)
	}
}

func TestAuthUseCaseRegisterAssignsDistinctIDs(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo)

	ctx := context.Background()
	seen := map[int64]bool{}
	for i := 0; i < 5; i++ {
		user, _, err := uc.Register(ctx, testhelpers.RandomEmail(), testhelpers.RandomASCIIString(8, 16))
		if err != nil {
			t.Fatalf("register %d failed: %v", i, err)
		}
		if seen[user.ID] {
			t.Fatalf("duplicate user id %d", user.ID)
		}
		seen[user.ID] = true
	}
}

func TestAuthUseCaseAuthenticate(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo)

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "carol@example.com", "123456"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	if _, _, err := uc.Authenticate(ctx, "carol@example.com", "bad"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected invalid credentials error, got %v", err)
	}

	_, token, err := uc.Authenticate(ctx, "carol@example.com", "123456")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "token-1" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestAuthUseCaseAuthenticateUnknownUser(t *testing.T) {
	uc := newAuthUseCase(testhelpers.NewUserRepositoryStub())

	if _, _, err := uc.Authenticate(context.Background(), "ghost@example.com", "secret"); err != domainErrors.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthUseCaseAuthenticateThrottled(t *testing.T) {
	repo := testhelpers.NewUserRepositoryStub()
	uc := newAuthUseCase(repo)

	ctx := context.Background()
	if _, _, err := uc.Register(ctx, "dave@example.com", "secret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for i := 0; i < usecase.LoginAttemptLimit; i++ {
		if _, _, err := uc.Authenticate(ctx, "dave@example.com", "wrong"); err != domainErrors.ErrInvalidCredentials {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i, err)
		}
	}

	// Even the correct password is rejected once the limit is exceeded.
	if _, _, err := uc.Authenticate(ctx, "dave@example.com", "secret"); err != domainErrors.ErrTooManyAttempts {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthUseCaseParseToken(t *testing.T) {
	uc := newAuthUseCase(testhelpers.NewUserRepositoryStub())

	id, err := uc.ParseToken("token-42")
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected id 42, got %d", id)
	}

	if _, err := uc.ParseToken(""); err != pkgAuth.ErrInvalidToken {
		t.Fatalf("expected invalid token error for empty token, got %v", err)
	}
	if _, err := uc.ParseToken("bad-token"); err != pkgAuth.ErrInvalidToken {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}
