package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/beauty_portal/internal/events"
	"github.com/Skotchmaster/beauty_portal/internal/hash"
	"github.com/Skotchmaster/beauty_portal/internal/logging"
	"github.com/Skotchmaster/beauty_portal/internal/models"
	"github.com/Skotchmaster/beauty_portal/internal/repo"
	"github.com/Skotchmaster/beauty_portal/internal/tokens"
)

const minPasswordLen = 6

type Identity struct {
	UserID      uuid.UUID
	Email       string
	DisplayName string
	IsAdmin     bool
}

// Name is what the layout shows for the signed-in user.
func (i Identity) Name() string {
	if i.DisplayName != "" {
		return i.DisplayName
	}
	return i.Email
}

type AuthService struct {
	Repo          *repo.GormRepo
	AccessSecret  []byte
	RefreshSecret []byte
	Events        events.Publisher
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	Identity     Identity
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) SignUp(ctx context.Context, email, password, displayName string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.sign_up")

	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, invalid("Missing email or password")
	}
	if !strings.Contains(email, "@") {
		return nil, invalid("Invalid email address")
	}
	if len(password) < minPasswordLen {
		return nil, invalid(fmt.Sprintf("Password should be at least %d characters", minPasswordLen))
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("sign_up_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{Email: email, PasswordHash: pwHash}
	profile, err := s.Repo.CreateUser(ctx, &user, strings.TrimSpace(displayName))
	if err != nil {
		if errors.Is(err, repo.ErrUserExists) {
			l.Warn("sign_up_error", "status", 409, "reason", "user already exists")
			return nil, ErrConflict
		}
		return nil, storage("create user", err)
	}

	publish(ctx, s.Events, events.Event{Type: events.UserSignedUp, UserID: user.ID.String(), Paths: []string{"/admin"}})
	return s.issue(ctx, identityOf(&user, profile))
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (*LoginResult, error) {
	email = normalizeEmail(email)
	l := logging.FromContext(ctx).With("svc", "auth.sign_in", "email", email)

	if email == "" || password == "" {
		return nil, invalid("Missing email or password")
	}

	user, err := s.Repo.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(storage("find user", err), ErrNotFound) {
			l.Warn("sign_in_failed", "status", 401, "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, storage("find user", err)
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("sign_in_failed", "status", 401, "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}

	profile, err := s.Repo.ProfileByID(ctx, user.ID)
	if err != nil && !errors.Is(storage("find profile", err), ErrNotFound) {
		return nil, storage("find profile", err)
	}
	return s.issue(ctx, identityOf(user, profile))
}

// Refresh rotates the refresh token and returns a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrUnauthorized)
	}

	id, err := s.Lookup(ctx, userID)
	if err != nil {
		return nil, err
	}

	res, next, err := s.tokens(*id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.RotateRefreshToken(ctx, claims.ID, refreshToken, next); err != nil {
		if errors.Is(err, repo.ErrTokenRotated) {
			return nil, fmt.Errorf("%w: %w", ErrUnauthorized, ErrSessionRotated)
		}
		if errors.Is(err, repo.ErrTokenNotUsable) || errors.Is(storage("rotate", err), ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
		}
		return nil, storage("rotate refresh token", err)
	}
	return res, nil
}

func (s *AuthService) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return storage("revoke refresh token", s.Repo.RevokeRefreshToken(ctx, refreshToken))
}

// CurrentUser resolves the identity behind an access token.
// Expired tokens yield an error wrapping jwt.ErrTokenExpired.
func (s *AuthService) CurrentUser(ctx context.Context, accessToken string) (*Identity, error) {
	if accessToken == "" {
		return nil, ErrUnauthorized
	}
	claims, err := tokens.AccessClaimsFromToken(accessToken, s.AccessSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrUnauthorized)
	}
	return s.Lookup(ctx, userID)
}

// Lookup loads the user with a fresh read of the profile's admin flag.
func (s *AuthService) Lookup(ctx context.Context, userID uuid.UUID) (*Identity, error) {
	user, err := s.Repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(storage("find user", err), ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrUnauthorized)
		}
		return nil, storage("find user", err)
	}
	profile, err := s.Repo.ProfileByID(ctx, userID)
	if err != nil && !errors.Is(storage("find profile", err), ErrNotFound) {
		return nil, storage("find profile", err)
	}
	id := identityOf(user, profile)
	return &id, nil
}

func identityOf(u *models.User, p *models.Profile) Identity {
	id := Identity{UserID: u.ID, Email: u.Email}
	if p != nil {
		id.DisplayName = p.DisplayName
		id.IsAdmin = p.IsAdmin
	}
	return id
}

func (s *AuthService) issue(ctx context.Context, id Identity) (*LoginResult, error) {
	res, row, err := s.tokens(id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SaveRefreshToken(ctx, row); err != nil {
		return nil, storage("save refresh token", err)
	}
	return res, nil
}

func (s *AuthService) tokens(id Identity) (*LoginResult, *models.RefreshToken, error) {
	now := time.Now()
	accessExp := now.Add(tokens.AccessTTL)
	refreshExp := now.Add(tokens.RefreshTTL)

	access, err := tokens.CreateAccessToken(s.AccessSecret, id.UserID.String(), id.IsAdmin, accessExp)
	if err != nil {
		return nil, nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, jti, err := tokens.CreateRefreshToken(s.RefreshSecret, id.UserID.String(), refreshExp)
	if err != nil {
		return nil, nil, fmt.Errorf("sign refresh token: %w", err)
	}

	row := &models.RefreshToken{
		JTI:       jti,
		Token:     tokens.Sha256Hex(refresh),
		UserID:    id.UserID,
		ExpiresAt: refreshExp.Unix(),
	}
	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		Identity:     id,
	}, row, nil
}
