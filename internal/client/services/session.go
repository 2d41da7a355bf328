// Package services holds the client-side application services: session
// management and note reconciliation.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/raidellg/blocnotes/internal/client/models"
	"github.com/raidellg/blocnotes/internal/client/repositories/state"
	"github.com/raidellg/blocnotes/internal/common"
	"github.com/raidellg/blocnotes/internal/logging"
)

type sessionClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type session struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// SessionService stores the authenticated identity extracted from an access
// token. When a signing secret is configured the token signature is verified;
// otherwise the claims are taken as-is, which is enough to namespace remote
// data for a trusted token source.
type SessionService struct {
	repo   state.Repository
	secret string
	log    logging.Logger
}

func NewSessionService(repo state.Repository, secret string, log logging.Logger) *SessionService {
	return &SessionService{repo: repo, secret: secret, log: log}
}

// SignIn parses the access token and persists the session.
func (s *SessionService) SignIn(ctx context.Context, accessToken string) (models.Owner, error) {
	var claims sessionClaims

	if s.secret != "" {
		_, err := jwt.ParseWithClaims(accessToken, &claims, func(t *jwt.Token) (any, error) {
			return []byte(s.secret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil {
			return models.Owner{}, fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
		}
	} else {
		if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err != nil {
			return models.Owner{}, fmt.Errorf("%w: %v", common.ErrorUnauthorized, err)
		}
	}

	if claims.Subject == "" {
		return models.Owner{}, fmt.Errorf("%w: token has no subject", common.ErrorUnauthorized)
	}

	sess := session{
		UserID: claims.Subject,
		Email:  claims.Email,
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return models.Owner{}, fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.repo.Set(ctx, state.SessionKey, data); err != nil {
		return models.Owner{}, fmt.Errorf("failed to persist session: %w", err)
	}

	s.log.Info(ctx, "signed in", "user", sess.UserID, "email", sess.Email)
	return models.Owner{ID: sess.UserID, Email: sess.Email}, nil
}

// CurrentOwner returns the authenticated identity, or ErrorUnauthorized when
// no session exists and ErrorSessionExpired when the stored token ran out.
func (s *SessionService) CurrentOwner(ctx context.Context) (models.Owner, error) {
	data, err := s.repo.Get(ctx, state.SessionKey)
	if err != nil {
		return models.Owner{}, fmt.Errorf("failed to load session: %w", err)
	}
	if data == nil {
		return models.Owner{}, common.ErrorUnauthorized
	}

	var sess session
	if err := json.Unmarshal(data, &sess); err != nil {
		return models.Owner{}, fmt.Errorf("failed to decode session: %w", err)
	}

	if !sess.ExpiresAt.IsZero() && time.Now().After(sess.ExpiresAt) {
		return models.Owner{}, common.ErrorSessionExpired
	}

	return models.Owner{ID: sess.UserID, Email: sess.Email}, nil
}

// SignOut discards the stored session.
func (s *SessionService) SignOut(ctx context.Context) error {
	if err := s.repo.Delete(ctx, state.SessionKey); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.log.Info(ctx, "signed out")
	return nil
}
