// Package auth orchestrates admin sessions: boot, login, logout and
// access-denied expiry.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/domain/session"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/api"
	"github.com/MuhammadDarmawanFadilah/webafan-portfolio-sub000/internal/infrastructure/logger"
)

// ValidatedAtKey is the store key holding when the token was last validated
const ValidatedAtKey = "validatedAt"

// LoginObserver records login attempts
type LoginObserver interface {
	ObserveLogin(success bool)
}

// ServiceConfig contains configuration for the auth service
type ServiceConfig struct {
	// ValidateTTL is how long a positive validation is trusted. Zero
	// validates on every boot.
	ValidateTTL time.Duration
}

// Service handles admin session lifecycle
type Service struct {
	store    session.TokenStore
	backend  session.Backend
	config   ServiceConfig
	observer LoginObserver
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures a Service
type Option func(*Service)

// WithLoginObserver sets the login metrics observer
func WithLoginObserver(o LoginObserver) Option {
	return func(s *Service) { s.observer = o }
}

// NewService creates the auth service over the backend's auth endpoints
func NewService(store session.TokenStore, authAPI *api.AuthService, cfg ServiceConfig, log *zap.Logger, opts ...Option) *Service {
	return newService(store, NewBackend(authAPI), cfg, log, opts...)
}

func newService(store session.TokenStore, backend session.Backend, cfg ServiceConfig, log *zap.Logger, opts ...Option) *Service {
	s := &Service{
		store:   store,
		backend: backend,
		config:  cfg,
		logger:  log,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Boot loads the session of sessionID and resolves its state. A token
// validated within ValidateTTL is trusted without a backend call. The
// returned session is usable even when err is non-nil.
func (s *Service) Boot(ctx context.Context, sessionID string) (*session.Session, error) {
	sess := session.New(sessionID, s.store)
	log := logger.FromContextOr(ctx, s.logger)

	if token, ok := s.recentlyValidated(ctx, sessionID); ok {
		if err := sess.Resume(token); err == nil {
			return sess, nil
		}
	}

	state, err := sess.Boot(ctx, s.backend)
	if state == session.Authenticated {
		s.markValidated(ctx, sessionID)
		return sess, err
	}

	_ = s.store.Delete(ctx, sessionID, ValidatedAtKey)
	if err != nil {
		log.Warn("Admin token rejected", zap.String("state", state.String()), zap.Error(err))
	}
	return sess, err
}

func (s *Service) recentlyValidated(ctx context.Context, sessionID string) (string, bool) {
	if s.config.ValidateTTL <= 0 {
		return "", false
	}
	at, err := s.store.Get(ctx, sessionID, ValidatedAtKey)
	if err != nil {
		return "", false
	}
	validatedAt, err := time.Parse(time.RFC3339Nano, at)
	if err != nil || s.now().Sub(validatedAt) >= s.config.ValidateTTL {
		return "", false
	}
	token, err := s.store.Get(ctx, sessionID, session.TokenKey)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

func (s *Service) markValidated(ctx context.Context, sessionID string) {
	if s.config.ValidateTTL <= 0 {
		return
	}
	if err := s.store.Set(ctx, sessionID, ValidatedAtKey, s.now().UTC().Format(time.RFC3339Nano)); err != nil {
		logger.FromContextOr(ctx, s.logger).Warn("Failed to cache token validation", zap.Error(err))
	}
}

// Login exchanges credentials for a token and authenticates sess
func (s *Service) Login(ctx context.Context, sess *session.Session, username, password string) error {
	log := logger.FromContextOr(ctx, s.logger)
	log.Info("Admin login attempt", zap.String("username", username))

	err := sess.Login(ctx, s.backend, username, password)
	if s.observer != nil {
		s.observer.ObserveLogin(err == nil)
	}
	if err != nil {
		log.Warn("Admin login failed", zap.String("username", username), zap.Error(err))
		return err
	}

	s.markValidated(ctx, sess.ID())
	log.Info("Admin logged in", zap.String("username", username))
	return nil
}

// Logout clears the token of sess
func (s *Service) Logout(ctx context.Context, sess *session.Session) error {
	_ = s.store.Delete(ctx, sess.ID(), ValidatedAtKey)
	return sess.Logout(ctx)
}

// Rotate gives sess a fresh ID. The token, validation stamp and pending
// flash move to the new ID; nothing stays readable under the old one.
func (s *Service) Rotate(ctx context.Context, sess *session.Session) error {
	oldID := sess.ID()
	carried := make(map[string]string, 2)
	for _, key := range []string{ValidatedAtKey, FlashKey} {
		if v, err := s.store.Get(ctx, oldID, key); err == nil && v != "" {
			carried[key] = v
		}
	}

	if err := sess.Rotate(ctx, uuid.NewString()); err != nil {
		return fmt.Errorf("rotate session: %w", err)
	}

	newID := sess.ID()
	for key, v := range carried {
		if err := s.store.Set(ctx, newID, key, v); err != nil {
			logger.FromContextOr(ctx, s.logger).Warn("Failed to carry session value", zap.String("key", key), zap.Error(err))
		}
		_ = s.store.Delete(ctx, oldID, key)
	}
	return nil
}

// Expire ends a session whose token the backend rejected
func (s *Service) Expire(ctx context.Context, sess *session.Session) error {
	logger.FromContextOr(ctx, s.logger).Info("Admin token no longer accepted, ending session")
	return s.Logout(ctx, sess)
}

// LoginMessage turns a Login error into text for the login form
func LoginMessage(err error) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := api.AsError(err); ok && apiErr.Message != "" {
		if apiErr.Kind == api.KindNetwork {
			return "Cannot reach the server. Please try again later."
		}
		return apiErr.Message
	}
	if errors.Is(err, session.ErrEmptyToken) {
		return "Login failed: no token received"
	}
	return "Login failed. Please try again."
}

// Username returns the sub claim of a JWT token, or "" for opaque tokens.
// The signature is not verified; the backend is the authority.
func Username(token string) string {
	if token == "" {
		return ""
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}

// FlashKey is the store key of the banner shown on the next page
const FlashKey = "flash"

// SetFlash stores a one-shot banner for the session's next page
func (s *Service) SetFlash(ctx context.Context, sessionID, message string) {
	if err := s.store.Set(ctx, sessionID, FlashKey, message); err != nil {
		logger.FromContextOr(ctx, s.logger).Warn("Failed to store flash message", zap.Error(err))
	}
}

// TakeFlash returns and clears the session's banner, or ""
func (s *Service) TakeFlash(ctx context.Context, sessionID string) string {
	msg, err := s.store.Get(ctx, sessionID, FlashKey)
	if err != nil || msg == "" {
		return ""
	}
	_ = s.store.Delete(ctx, sessionID, FlashKey)
	return msg
}
