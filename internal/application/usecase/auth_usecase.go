// backend/internal/application/usecase/auth_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	userdom "github.com/Lanor-Jephthah1/gurlhub/internal/domain/user"
	"github.com/Lanor-Jephthah1/gurlhub/internal/platform/apperr"
)

// PasswordHasher hashes and verifies passwords. Compare returns an error on mismatch.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer signs first-party access tokens.
type TokenIssuer interface {
	Issue(userID int64, email string, ttl time.Duration) (string, time.Time, error)
}

// Session is an authenticated user plus the token that proves it.
type Session struct {
	User      userdom.User
	Token     string
	ExpiresAt time.Time
}

const forgotPasswordMessage = "If the email exists, a reset link has been sent"

// AuthUsecase handles registration, login and password changes.
type AuthUsecase struct {
	users       userdom.Repository
	hasher      PasswordHasher
	tokens      TokenIssuer
	clock       Clock
	ttl         time.Duration
	rememberTTL time.Duration
}

func NewAuthUsecase(users userdom.Repository, hasher PasswordHasher, tokens TokenIssuer, ttl, rememberTTL time.Duration) *AuthUsecase {
	return NewAuthUsecaseWithClock(users, hasher, tokens, ttl, rememberTTL, nil)
}

func NewAuthUsecaseWithClock(users userdom.Repository, hasher PasswordHasher, tokens TokenIssuer, ttl, rememberTTL time.Duration, clock Clock) *AuthUsecase {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if rememberTTL < ttl {
		rememberTTL = ttl
	}
	return &AuthUsecase{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		clock:       clockOrSystem(clock),
		ttl:         ttl,
		rememberTTL: rememberTTL,
	}
}

// Register creates an account and signs the user in.
func (uc *AuthUsecase) Register(ctx context.Context, name, email, password string) (Session, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
		return Session{}, apperr.InvalidArgument("Missing required fields")
	}
	email = userdom.NormalizeEmail(email)
	if !userdom.ValidEmail(email) {
		return Session{}, translate("auth_usecase", userdom.ErrInvalidEmail)
	}
	if err := userdom.ValidatePassword(password); err != nil {
		return Session{}, translate("auth_usecase", err)
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return Session{}, translate("auth_usecase", err)
	}
	u, err := userdom.New(name, email, hash, uc.clock.Now())
	if err != nil {
		return Session{}, translate("auth_usecase", err)
	}
	u, err = uc.users.Create(ctx, u)
	if err != nil {
		return Session{}, translate("auth_usecase", err)
	}

	log.Printf("[auth_usecase] registered user=%d", u.ID)
	return uc.issue(u, uc.ttl)
}

// Login verifies credentials. Unknown email and wrong password are indistinguishable.
func (uc *AuthUsecase) Login(ctx context.Context, email, password string, rememberMe bool) (Session, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return Session{}, apperr.InvalidArgument("Email and password required")
	}

	u, err := uc.users.GetByEmail(ctx, userdom.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, userdom.ErrNotFound) {
			return Session{}, apperr.Unauthenticated("Invalid email or password")
		}
		return Session{}, translate("auth_usecase", err)
	}
	if err := uc.hasher.Compare(u.PasswordHash, password); err != nil {
		return Session{}, apperr.Wrap(apperr.KindUnauthenticated, "Invalid email or password", err)
	}

	ttl := uc.ttl
	if rememberMe {
		ttl = uc.rememberTTL
	}
	return uc.issue(u, ttl)
}

// Me returns the signed-in user.
func (uc *AuthUsecase) Me(ctx context.Context, userID int64) (userdom.User, error) {
	if userID <= 0 {
		return userdom.User{}, apperr.Unauthenticated("Not authenticated")
	}
	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return userdom.User{}, translate("auth_usecase", err)
	}
	return u, nil
}

// UserForEmail resolves an externally verified email (Firebase) to a local account.
func (uc *AuthUsecase) UserForEmail(ctx context.Context, email string) (userdom.User, error) {
	u, err := uc.users.GetByEmail(ctx, userdom.NormalizeEmail(email))
	if err != nil {
		return userdom.User{}, translate("auth_usecase", err)
	}
	return u, nil
}

// ForgotPassword never reveals whether the email is registered. No email is sent.
func (uc *AuthUsecase) ForgotPassword(ctx context.Context, email string) (string, error) {
	email = userdom.NormalizeEmail(email)
	if email == "" {
		return "", apperr.InvalidArgument("Email required")
	}
	if _, err := uc.users.GetByEmail(ctx, email); err != nil && !errors.Is(err, userdom.ErrNotFound) {
		return "", translate("auth_usecase", err)
	}
	return forgotPasswordMessage, nil
}

// ChangePassword replaces the password after checking the current one.
func (uc *AuthUsecase) ChangePassword(ctx context.Context, userID int64, current, next string) error {
	if userID <= 0 {
		return apperr.Unauthenticated("Not authenticated")
	}
	if current == "" || next == "" {
		return apperr.InvalidArgument("All fields required")
	}

	u, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return translate("auth_usecase", err)
	}
	if err := uc.hasher.Compare(u.PasswordHash, current); err != nil {
		return apperr.Wrap(apperr.KindUnauthenticated, "Current password is incorrect", err)
	}
	if err := userdom.ValidatePassword(next); err != nil {
		return translate("auth_usecase", err)
	}

	hash, err := uc.hasher.Hash(next)
	if err != nil {
		return translate("auth_usecase", err)
	}
	u.PasswordHash = hash
	u.UpdatedAt = uc.clock.Now()
	if _, err := uc.users.Save(ctx, u); err != nil {
		return translate("auth_usecase", err)
	}
	return nil
}

func (uc *AuthUsecase) issue(u userdom.User, ttl time.Duration) (Session, error) {
	tok, exp, err := uc.tokens.Issue(u.ID, u.Email, ttl)
	if err != nil {
		return Session{}, translate("auth_usecase", err)
	}
	return Session{User: u, Token: tok, ExpiresAt: exp}, nil
}
