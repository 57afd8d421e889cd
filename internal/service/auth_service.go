package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tasktracker/internal/models"
	"tasktracker/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
	tokenTypeBearer  = "bearer"

	defaultAccessTTL  = 30 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour

	maxUsernameLen = 50
)

// AuthConfig carries the knobs main() reads from configuration.
type AuthConfig struct {
	SigningKey []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Policy     PasswordPolicy
}

// AuthService owns credential verification and the stateless token
// lifecycle. Tokens are self-contained signed JWTs; nothing is kept
// server-side between requests.
type AuthService struct {
	users      repository.Users
	signingKey []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	policy     PasswordPolicy
}

func NewAuthService(users repository.Users, cfg AuthConfig) *AuthService {
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = defaultAccessTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = defaultRefreshTTL
	}
	return &AuthService{
		users:      users,
		signingKey: cfg.SigningKey,
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
		policy:     cfg.Policy,
	}
}

// Claims defines JWT claims: registered set plus the access/refresh type tag.
type Claims struct {
	jwt.RegisteredClaims
	TokenType string `json:"type"`
}

// Register validates inputs, hashes the password and creates the user.
func (s *AuthService) Register(ctx context.Context, name, password string) (models.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.User{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if len(name) > maxUsernameLen {
		return models.User{}, &ValidationError{
			Field:  "name",
			Reason: fmt.Sprintf("must be at most %d characters", maxUsernameLen),
		}
	}
	if err := s.policy.Validate(password); err != nil {
		return models.User{}, err
	}

	hash, err := hashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("invalid password: %w", err)
	}

	id, err := s.users.Create(ctx, name, hash)
	if err != nil {
		if errors.Is(err, repository.ErrNameTaken) {
			return models.User{}, ErrNameTaken
		}
		return models.User{}, err
	}
	return models.User{ID: id, Name: name}, nil
}

// Login verifies credentials and returns a fresh token pair. The error is
// the same whether the name or the password was wrong.
func (s *AuthService) Login(ctx context.Context, name, password string) (TokenPair, error) {
	u, err := s.users.GetByName(ctx, name)
	if err != nil {
		return TokenPair{}, err
	}
	if u == nil {
		return TokenPair{}, ErrInvalidCredentials
	}

	ok, legacy := verifyCredential(u.Credential, password)
	if !ok {
		return TokenPair{}, ErrInvalidCredentials
	}
	if legacy {
		s.migrateCredential(ctx, u.ID, password)
	}

	return s.issuePair(u.Name)
}

// migrateCredential rehashes a legacy plaintext credential to bcrypt after
// a successful login. Best-effort: a failed migration must not block the
// login that just verified.
func (s *AuthService) migrateCredential(ctx context.Context, userID int, password string) {
	hash, err := hashPassword(password)
	if err != nil {
		return
	}
	_ = s.users.UpdateCredential(ctx, userID, hash)
}

// Refresh mints a new token pair from a valid refresh token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	name, err := s.parseToken(refreshToken, tokenTypeRefresh)
	if err != nil {
		return TokenPair{}, err
	}
	u, err := s.users.GetByName(ctx, name)
	if err != nil {
		return TokenPair{}, err
	}
	if u == nil {
		return TokenPair{}, ErrUnknownUser
	}
	return s.issuePair(u.Name)
}

// Authenticate validates an access token and resolves the bound user.
// Fails with ErrUnknownUser if the account was deleted after issuance.
func (s *AuthService) Authenticate(ctx context.Context, accessToken string) (models.User, error) {
	name, err := s.parseToken(accessToken, tokenTypeAccess)
	if err != nil {
		return models.User{}, err
	}
	u, err := s.users.GetByName(ctx, name)
	if err != nil {
		return models.User{}, err
	}
	if u == nil {
		return models.User{}, ErrUnknownUser
	}
	return *u, nil
}

// DeleteAccount removes the user row; tasks cascade in the store. Every
// outstanding token for the account fails on next use since validation
// re-resolves the user.
func (s *AuthService) DeleteAccount(ctx context.Context, userID int) error {
	deleted, err := s.users.Delete(ctx, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrUnknownUser
	}
	return nil
}

func (s *AuthService) issuePair(name string) (TokenPair, error) {
	access, err := s.issueToken(name, tokenTypeAccess, s.accessTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.issueToken(name, tokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, TokenType: tokenTypeBearer}, nil
}

// issueToken signs a JWT bound to name. The jti comes from a CSPRNG-backed
// UUID, so no two issued tokens are ever byte-equal.
func (s *AuthService) issueToken(name, typ string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   name,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
		TokenType: typ,
	})
	return token.SignedString(s.signingKey)
}

// parseToken verifies signature, expiry and token type, returning the
// username the token was issued for.
func (s *AuthService) parseToken(raw, wantType string) (string, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return "", ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		default:
			return "", ErrTokenUnknown
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", ErrTokenUnknown
	}
	if claims.TokenType != wantType {
		return "", ErrWrongTokenType
	}
	if claims.Subject == "" {
		return "", ErrTokenMalformed
	}
	return claims.Subject, nil
}
