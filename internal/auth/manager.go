// Package auth implements the magic-link session lifecycle: short-lived
// single-use verification sessions, long-lived authenticated sessions with
// sliding expiration, and expiry sweeping.
package auth

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/Domi31tls/valentine/internal/config"
	"github.com/Domi31tls/valentine/internal/models"
	"github.com/Domi31tls/valentine/internal/store"
)

// Manager drives session state transitions. Verification-pending and
// authenticated sessions share one table; the only terminal transition is
// deletion, either explicit (revoke, single-use verify) or lazy on expiry.
type Manager struct {
	cfg      config.SessionConfig
	sessions *store.SessionStore
	users    *store.UserStore

	mu        sync.Mutex
	lastSweep time.Time
}

// NewManager wires the lifecycle over the given stores. Zero config values
// fall back to the product defaults.
func NewManager(cfg config.SessionConfig, sessions *store.SessionStore, users *store.UserStore) *Manager {
	if cfg.VerificationTTL <= 0 {
		cfg.VerificationTTL = 15 * time.Minute
	}
	if cfg.AuthTTL <= 0 {
		cfg.AuthTTL = 30 * 24 * time.Hour
	}
	if cfg.RenewalThreshold <= 0 {
		cfg.RenewalThreshold = time.Hour
	}
	if cfg.RenewalExtension <= 0 {
		cfg.RenewalExtension = 24 * time.Hour
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Hour
	}
	return &Manager{cfg: cfg, sessions: sessions, users: users}
}

// CreateVerification issues a short-lived session for a magic link.
func (m *Manager) CreateVerification(userID string) (*models.Session, error) {
	return m.create(userID, m.cfg.VerificationTTL)
}

// CreateAuthenticated issues a long-lived logged-in session.
func (m *Manager) CreateAuthenticated(userID string) (*models.Session, error) {
	return m.create(userID, m.cfg.AuthTTL)
}

func (m *Manager) create(userID string, ttl time.Duration) (*models.Session, error) {
	now := time.Now()
	sess := &models.Session{
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := m.sessions.Create(sess); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return sess, nil
}

// lookup finds a live session by token. Expired rows are deleted on sight;
// both unknown and expired tokens come back as ErrInvalidOrExpiredToken.
func (m *Manager) lookup(token string) (*models.Session, error) {
	if token == "" {
		return nil, ErrInvalidOrExpiredToken
	}

	sess, err := m.sessions.FindByToken(token)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrInvalidOrExpiredToken
	}
	if err != nil {
		return nil, err
	}

	if !sess.Valid(time.Now()) {
		if _, delErr := m.sessions.Delete(sess.ID); delErr != nil {
			// the expiry verdict stands, but the cleanup failure must not
			// vanish
			return nil, fmt.Errorf("%w (expired session cleanup: %v)", ErrInvalidOrExpiredToken, delErr)
		}
		return nil, ErrInvalidOrExpiredToken
	}

	return sess, nil
}

// Verify consumes a verification session: the magic-link token is checked,
// the session deleted (single use) and a fresh authenticated session
// issued. The user's last login is stamped on the way through.
func (m *Manager) Verify(token string) (*models.User, *models.Session, error) {
	sess, err := m.lookup(token)
	if err != nil {
		return nil, nil, err
	}

	user, err := m.users.FindByID(sess.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, ErrUserNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	// single use: a failed delete would leave the magic link replayable,
	// so it is a hard failure
	if _, err := m.sessions.Delete(sess.ID); err != nil {
		return nil, nil, fmt.Errorf("consume verification session: %w", err)
	}

	now := time.Now()
	if err := m.users.Update(user.ID, store.UserUpdate{LastLoginAt: &now}); err != nil {
		log.Printf("auth: stamp last login for %s: %v", user.ID, err)
	} else {
		user.LastLoginAt = &now
	}

	authSess, err := m.CreateAuthenticated(user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, authSess, nil
}

// Resolve maps a bearer token to its user and session. When the session is
// within the renewal threshold of expiring, its expiry slides forward by
// the renewal extension; concurrent resolvers may both extend, and the
// later write wins, which only ever lengthens the session.
func (m *Manager) Resolve(token string) (*models.User, *models.Session, error) {
	sess, err := m.lookup(token)
	if err != nil {
		return nil, nil, err
	}

	user, err := m.users.FindByID(sess.UserID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil, ErrUserNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	if sess.ExpiringSoon(time.Now(), m.cfg.RenewalThreshold) {
		renewed := sess.ExpiresAt.Add(m.cfg.RenewalExtension)
		if err := m.sessions.UpdateExpiry(sess.ID, renewed); err != nil {
			// the resolve verdict is unaffected, the session just stays on
			// its old clock
			log.Printf("auth: extend session %s: %v", sess.ID, err)
		} else {
			sess.ExpiresAt = renewed
		}
	}

	return user, sess, nil
}

// Revoke deletes a session by token. Idempotent.
func (m *Manager) Revoke(token string) error {
	_, err := m.sessions.DeleteByToken(token)
	return err
}

// RevokeByID deletes a session by id. Idempotent.
func (m *Manager) RevokeByID(id string) error {
	_, err := m.sessions.Delete(id)
	return err
}

// RevokeAllForUser deletes every session of a user and reports the count.
func (m *Manager) RevokeAllForUser(userID string) (int64, error) {
	return m.sessions.DeleteAllForUser(userID)
}

// SweepExpired deletes every expired session row.
func (m *Manager) SweepExpired() (int64, error) {
	return m.sessions.DeleteExpired(time.Now())
}

// SweepIfDue runs SweepExpired at most once per sweep interval. Intended to
// be called opportunistically from the request path.
func (m *Manager) SweepIfDue() {
	m.mu.Lock()
	if time.Since(m.lastSweep) < m.cfg.SweepInterval {
		m.mu.Unlock()
		return
	}
	m.lastSweep = time.Now()
	m.mu.Unlock()

	n, err := m.SweepExpired()
	if err != nil {
		log.Printf("auth: sweep expired sessions: %v", err)
		return
	}
	if n > 0 {
		log.Printf("auth: swept %d expired sessions", n)
	}
}
