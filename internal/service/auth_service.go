package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stemsi/academic-portal/internal/model"
)

// CredentialStore lists stored login pairs for an ID.
type CredentialStore interface {
	ListByID(ctx context.Context, id string) ([]model.Credential, error)
}

// PortalClaims identifies a signed-in dashboard user. The token only
// drives what the dashboard shows; the JSON API never requires it.
type PortalClaims struct {
	jwt.RegisteredClaims
	LoginID string `json:"login_id"`
}

// AuthService checks login pairs and signs dashboard session tokens.
type AuthService struct {
	store  CredentialStore
	secret []byte
	ttl    time.Duration
	log    zerolog.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(store CredentialStore, secret string, ttl time.Duration, log zerolog.Logger) *AuthService {
	return &AuthService{
		store:  store,
		secret: []byte(secret),
		ttl:    ttl,
		log:    log.With().Str("component", "auth_service").Logger(),
	}
}

// Authenticate reports whether the exact (ID, password) pair exists.
// Returns ErrInvalidCredentials on mismatch.
func (s *AuthService) Authenticate(ctx context.Context, loginID, password string) error {
	id := strings.TrimSpace(loginID)

	creds, err := s.store.ListByID(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to read login file")
		return fmt.Errorf("authenticate: %w", err)
	}

	for _, c := range creds {
		if subtle.ConstantTimeCompare([]byte(c.Password), []byte(password)) == 1 {
			s.log.Info().Str("login_id", id).Msg("login succeeded")
			return nil
		}
	}

	s.log.Info().Str("login_id", id).Msg("login rejected")
	return ErrInvalidCredentials
}

// IssuePortalToken signs a short-lived HS256 token for loginID.
func (s *AuthService) IssuePortalToken(loginID string) (string, error) {
	now := time.Now()

	claims := PortalClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   loginID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		LoginID: loginID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidatePortalToken parses a token issued by IssuePortalToken.
func (s *AuthService) ValidatePortalToken(tokenStr string) (*PortalClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &PortalClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*PortalClaims)
	if !ok || !token.Valid || claims.LoginID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// SessionTTL is the lifetime of portal tokens.
func (s *AuthService) SessionTTL() time.Duration {
	return s.ttl
}
